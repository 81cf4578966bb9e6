package engine

import (
	"math"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

// TogglePlayPause flips playback, accumulated angles are untouched
func (s *Simulation) TogglePlayPause() {
	s.State.Playing = !s.State.Playing
}

// VisibilityLost pauses when the display is hidden
func (s *Simulation) VisibilityLost() {
	s.State.Playing = false
}

// Reset re-randomizes planet angles and clears selection, event and view
// Zoom, playback and overlay flags are kept
func (s *Simulation) Reset() {
	prev := s.State.Event

	s.State.Selected = ""
	s.State.View = camera.ViewFree
	s.State.Event = EventNone
	s.State.Clock.ResetEvent()
	s.Camera.SetMode(camera.ViewFree)

	for i := range s.World.Planets {
		p := &s.World.Planets[i]
		p.Angle = s.randomAngle()
		p.Scale = 1
		p.Emissive = PlanetEmissive
		p.YOffset = 0
		p.Tilt = vmath.Vec3F{}
		p.Position = vmath.OrbitPoint(p.Angle, p.Desc.Distance, 0)
	}
	for i := range s.World.Asteroids {
		s.World.Asteroids[i].Velocity = vmath.Vec3F{}
	}
	s.World.Sun.Emissive = SunEmissive
	s.World.Sun.Light = SunLight

	s.notify(prev, EventNone)
}

// ToggleOrbits flips orbit guide visibility
func (s *Simulation) ToggleOrbits() {
	s.State.ShowOrbits = !s.State.ShowOrbits
}

// ToggleInfo flips the info panel flag, the panel also needs a selection
func (s *Simulation) ToggleInfo() {
	s.State.ShowInfo = !s.State.ShowInfo
}

// ToggleComets flips comet group visibility
func (s *Simulation) ToggleComets() {
	s.State.ShowComets = !s.State.ShowComets
}

// ZoomCamera multiplies the zoom factor and clamps it to [MinZoom, MaxZoom]
func (s *Simulation) ZoomCamera(factor float64) {
	z := s.State.Zoom * factor
	if math.IsNaN(z) {
		return
	}
	s.State.Zoom = vmath.Clamp(z, MinZoom, MaxZoom)
}

// ResetZoom restores zoom factor 1
func (s *Simulation) ResetZoom() {
	s.State.Zoom = 1
}

// SetView switches the camera strategy, invalid modes are ignored
func (s *Simulation) SetView(mode camera.ViewMode) {
	if !mode.Valid() {
		return
	}
	s.State.View = mode
	s.Camera.SetMode(mode)
}

// ToggleCinematic switches between cinematic and free
func (s *Simulation) ToggleCinematic() {
	if s.State.View == camera.ViewCinematic {
		s.SetView(camera.ViewFree)
		return
	}
	s.SetView(camera.ViewCinematic)
}

// SetCosmicEvent toggles ev, selecting the active event turns it off
// Event time restarts and leftovers of the previous event are cleared
func (s *Simulation) SetCosmicEvent(ev CosmicEvent) {
	prev := s.State.Event
	if prev == ev {
		s.State.Event = EventNone
	} else {
		s.State.Event = ev
	}
	s.State.Clock.ResetEvent()
	clearEventResidue(s.State.Event, s.World)
	s.notify(prev, s.State.Event)
}

// SetPointer stores the normalized pointer position used by the free camera
func (s *Simulation) SetPointer(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	s.pointerX = vmath.Clamp(x, -1, 1)
	s.pointerY = vmath.Clamp(y, -1, 1)
}

// SelectBody picks the nearest planet hit by ray, a miss clears the selection
func (s *Simulation) SelectBody(ray vmath.Ray) bool {
	best := -1
	bestDist := math.Inf(1)
	for i := range s.World.Planets {
		p := &s.World.Planets[i]
		if d, ok := ray.IntersectSphere(p.Position, p.Radius()); ok && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		s.State.Selected = ""
		return false
	}
	s.State.Selected = s.World.Planets[best].Desc.Name
	return true
}

// SelectByName selects a planet directly, empty name clears, unknown names are ignored
func (s *Simulation) SelectByName(name string) bool {
	if name == "" {
		s.State.Selected = ""
		return true
	}
	idx := s.World.PlanetIndex(name)
	if idx < 0 {
		return false
	}
	s.State.Selected = s.World.Planets[idx].Desc.Name
	return true
}

// InfoVisible reports whether the info panel should be shown
func (s *Simulation) InfoVisible() bool {
	return s.State.ShowInfo && s.Selected() != nil
}

// EventAlert returns the banner text for the active event, empty when none
func (s *Simulation) EventAlert() string {
	return s.State.Event.Alert()
}

func (s *Simulation) notify(prev, next CosmicEvent) {
	if prev == next {
		return
	}
	for _, fn := range s.listeners {
		fn(prev, next)
	}
}
