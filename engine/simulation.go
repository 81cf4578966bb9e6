package engine

import (
	"math/rand"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/vmath"
)

// EventListener is notified after the active cosmic event changes
type EventListener func(prev, next CosmicEvent)

// Simulation is the context owned by the driver loop
// Every method must be called from the goroutine that runs Tick
type Simulation struct {
	World  *World
	State  State
	Camera *camera.Controller

	pointerX, pointerY float64
	rng                *rand.Rand
	listeners          []EventListener
}

// New builds the scene from the catalog with the given seed
func New(seed int64) *Simulation {
	rng := rand.New(rand.NewSource(seed))
	return &Simulation{
		World:  Build(catalog.Planets(), catalog.Comets(), rng),
		State:  DefaultState(),
		Camera: camera.NewController(),
		rng:    rng,
	}
}

// AddEventListener registers a callback for event changes
func (s *Simulation) AddEventListener(fn EventListener) {
	s.listeners = append(s.listeners, fn)
}

// Pointer returns the normalized pointer position
func (s *Simulation) Pointer() (x, y float64) {
	return s.pointerX, s.pointerY
}

// Tick advances one display frame, dt is the wall-clock interval in seconds
// Nothing moves while paused
func (s *Simulation) Tick(dt float64) {
	if !s.State.Playing {
		return
	}
	s.State.Clock.Advance(dt)

	s.World.Sun.Rotation += SunSpin
	s.twinkle()

	fx := applyEvent(s.State.Event, s.State.EventTime, s.World, s.rng)
	s.updatePlanets(fx)
	s.updateAsteroids(fx)
	s.updateComets(fx)

	s.Camera.Update(camera.Input{
		Mode:     s.State.View,
		Time:     s.State.Time,
		PointerX: s.pointerX,
		PointerY: s.pointerY,
		Zoom:     s.State.Zoom,
		Follow:   s.followTarget(),
	})
}

// followTarget resolves the selection for follow mode, nil on any miss
func (s *Simulation) followTarget() *camera.Target {
	if s.State.View != camera.ViewFollow {
		return nil
	}
	idx := s.World.PlanetIndex(s.State.Selected)
	if idx < 0 {
		return nil
	}
	p := &s.World.Planets[idx]
	return &camera.Target{Position: p.Position, Size: p.Desc.Size}
}

// twinkle occasionally re-tints one star's blue channel
func (s *Simulation) twinkle() {
	if len(s.World.Stars) == 0 || s.rng.Float64() <= 0.98 {
		return
	}
	idx := s.rng.Intn(len(s.World.Stars))
	s.World.Stars[idx].B = s.rng.Float64()*0.5 + 0.5
}

// Selected returns the selected planet instance, nil when none
func (s *Simulation) Selected() *PlanetInstance {
	idx := s.World.PlanetIndex(s.State.Selected)
	if idx < 0 {
		return nil
	}
	return &s.World.Planets[idx]
}

// CameraPose is the pose the renderer should draw from
func (s *Simulation) CameraPose() camera.Pose {
	return s.Camera.Pose()
}

// randomAngle draws a fresh orbital angle
func (s *Simulation) randomAngle() float64 {
	return s.rng.Float64() * vmath.TwoPi
}
