package engine

import (
	"math"
	"testing"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

func TestZoomAlwaysClamped(t *testing.T) {
	factors := []float64{0.8, 1.2, 0, -1, -1000, 1e9, 1e-9, math.Inf(1), math.Inf(-1), math.NaN(), 0.5, 3, 1.0001}
	s := New(1)
	for _, f := range factors {
		for i := 0; i < 20; i++ {
			s.ZoomCamera(f)
			if z := s.State.Zoom; z < MinZoom || z > MaxZoom || math.IsNaN(z) {
				t.Fatalf("zoom %v out of range after factor %v", z, f)
			}
		}
	}

	s.ResetZoom()
	if s.State.Zoom != 1 {
		t.Errorf("ResetZoom left %v", s.State.Zoom)
	}
}

func TestZoomSteps(t *testing.T) {
	s := New(1)
	s.ZoomCamera(0.8)
	if math.Abs(s.State.Zoom-0.8) > 1e-12 {
		t.Errorf("zoom = %v", s.State.Zoom)
	}
	for i := 0; i < 20; i++ {
		s.ZoomCamera(1.2)
	}
	if s.State.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want max", s.State.Zoom)
	}
}

func TestCosmicEventToggleScenario(t *testing.T) {
	s := New(2)
	s.Tick(0.05)

	if s.State.Event != EventNone {
		t.Fatalf("initial event %v", s.State.Event)
	}

	s.SetCosmicEvent(EventSolarStorm)
	if s.State.Event != EventSolarStorm || s.State.EventTime != 0 {
		t.Fatalf("after first toggle: event=%v time=%v", s.State.Event, s.State.EventTime)
	}

	s.Tick(0.05)
	if s.State.EventTime == 0 {
		t.Fatal("event time did not advance")
	}

	s.SetCosmicEvent(EventSolarStorm)
	if s.State.Event != EventNone || s.State.EventTime != 0 {
		t.Fatalf("after second toggle: event=%v time=%v", s.State.Event, s.State.EventTime)
	}
}

func TestSwitchingEventsClearsResidue(t *testing.T) {
	s := New(3)

	s.SetCosmicEvent(EventOrbitalResonance)
	for i := 0; i < 30; i++ {
		s.Tick(frame)
	}
	s.SetCosmicEvent(EventAsteroidImpact)
	for _, p := range s.World.Planets {
		if p.Scale != 1 {
			t.Fatalf("%s scale %v after leaving resonance", p.Desc.Name, p.Scale)
		}
	}

	for i := 0; i < 60; i++ {
		s.Tick(frame)
	}
	s.SetCosmicEvent(EventGravityWaves)
	for i, a := range s.World.Asteroids {
		if a.Velocity != (vmath.Vec3F{}) {
			t.Fatalf("asteroid %d velocity %+v after leaving impact", i, a.Velocity)
		}
	}
	for _, p := range s.World.Planets {
		if p.Tilt != (vmath.Vec3F{}) {
			t.Fatalf("%s tilt %+v after leaving impact", p.Desc.Name, p.Tilt)
		}
	}

	// Entering resonance keeps whatever scale it set
	s.SetCosmicEvent(EventOrbitalResonance)
	s.Tick(0.5)
	scaled := s.World.Planets[0].Scale
	s.SetCosmicEvent(EventOrbitalResonance)
	if s.World.Planets[0].Scale != 1 {
		t.Errorf("scale %v after turning resonance off (was %v)", s.World.Planets[0].Scale, scaled)
	}
}

func TestEventListeners(t *testing.T) {
	s := New(4)
	var seen [][2]CosmicEvent
	s.AddEventListener(func(prev, next CosmicEvent) {
		seen = append(seen, [2]CosmicEvent{prev, next})
	})

	s.SetCosmicEvent(EventTimeLapse)
	s.SetCosmicEvent(EventRoguePlanet)
	s.SetCosmicEvent(EventRoguePlanet)
	s.SetCosmicEvent(EventNone) // already none, no change

	want := [][2]CosmicEvent{
		{EventNone, EventTimeLapse},
		{EventTimeLapse, EventRoguePlanet},
		{EventRoguePlanet, EventNone},
	}
	if len(seen) != len(want) {
		t.Fatalf("listener calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestResetPostconditions(t *testing.T) {
	s := New(5)
	s.SelectByName("Saturn")
	s.SetView(camera.ViewTop)
	s.SetCosmicEvent(EventAsteroidImpact)
	for i := 0; i < 40; i++ {
		s.Tick(frame)
	}
	s.SetCosmicEvent(EventGravityWaves)
	for i := 0; i < 10; i++ {
		s.Tick(frame)
	}
	s.ZoomCamera(2)

	s.Reset()

	if s.State.Selected != "" || s.Selected() != nil {
		t.Errorf("selection survived reset: %q", s.State.Selected)
	}
	if s.State.Event != EventNone || s.State.EventTime != 0 {
		t.Errorf("event=%v event time=%v", s.State.Event, s.State.EventTime)
	}
	if s.State.View != camera.ViewFree {
		t.Errorf("view = %v", s.State.View)
	}
	for i, a := range s.World.Asteroids {
		if a.Velocity != (vmath.Vec3F{}) {
			t.Fatalf("asteroid %d velocity %+v", i, a.Velocity)
		}
	}
	for _, p := range s.World.Planets {
		if p.Scale != 1 || p.Emissive != PlanetEmissive || p.YOffset != 0 || p.Position.Y != 0 {
			t.Errorf("%s not restored: scale=%v emissive=%v y=%v", p.Desc.Name, p.Scale, p.Emissive, p.YOffset)
		}
	}
	if s.State.Zoom != 2 {
		t.Errorf("reset changed zoom to %v", s.State.Zoom)
	}
	if s.Camera.TargetPosition() != vmath.V3F(0, 150, 300) {
		t.Errorf("camera target %+v", s.Camera.TargetPosition())
	}
}

func TestResetRandomizesAngles(t *testing.T) {
	s := New(6)
	before := make([]float64, len(s.World.Planets))
	for i, p := range s.World.Planets {
		before[i] = p.Angle
	}
	s.Reset()
	same := 0
	for i, p := range s.World.Planets {
		if p.Angle == before[i] {
			same++
		}
		if p.Angle < 0 || p.Angle >= vmath.TwoPi {
			t.Errorf("%s angle %v out of range", p.Desc.Name, p.Angle)
		}
	}
	if same == len(before) {
		t.Error("reset did not change any planet angle")
	}
}

func TestOverlayToggles(t *testing.T) {
	s := New(7)
	s.ToggleOrbits()
	s.ToggleComets()
	if s.State.ShowOrbits || s.State.ShowComets {
		t.Errorf("toggles did not flip: %+v", s.State)
	}
	s.ToggleOrbits()
	s.ToggleComets()
	if !s.State.ShowOrbits || !s.State.ShowComets {
		t.Errorf("toggles did not flip back: %+v", s.State)
	}
}

func TestInfoVisibilityGating(t *testing.T) {
	s := New(8)
	if s.InfoVisible() {
		t.Error("info visible without selection")
	}
	s.SelectByName("Earth")
	if !s.InfoVisible() {
		t.Error("info hidden with selection and flag on")
	}
	s.ToggleInfo()
	if s.InfoVisible() {
		t.Error("info visible with flag off")
	}
}

func TestSelectBody(t *testing.T) {
	s := New(9)
	earth := &s.World.Planets[s.World.PlanetIndex("Earth")]
	for i := range s.World.Planets {
		if &s.World.Planets[i] != earth {
			s.World.Planets[i].Position = vmath.V3F(0, -1000, float64(i)*50)
		}
	}

	eye := vmath.V3F(0, 150, 300)
	hit := vmath.NewRay(eye, vmath.V3F(earth.Position.X-eye.X, earth.Position.Y-eye.Y, earth.Position.Z-eye.Z))
	if !s.SelectBody(hit) || s.State.Selected != "Earth" {
		t.Fatalf("ray at Earth selected %q", s.State.Selected)
	}

	miss := vmath.NewRay(eye, vmath.V3F(0, 1, 0))
	if s.SelectBody(miss) || s.State.Selected != "" {
		t.Errorf("miss kept selection %q", s.State.Selected)
	}
}

func TestSelectBodyNearestWins(t *testing.T) {
	s := New(10)
	// Line up Mercury and Mars on +X, ray from far out along -X
	for i := range s.World.Planets {
		p := &s.World.Planets[i]
		p.Position = vmath.V3F(-p.Desc.Distance, 0, 1000) // park everything off-axis
	}
	merc := &s.World.Planets[s.World.PlanetIndex("Mercury")]
	mars := &s.World.Planets[s.World.PlanetIndex("Mars")]
	merc.Position = vmath.V3F(40, 0, 0)
	mars.Position = vmath.V3F(115, 0, 0)

	s.SelectBody(vmath.NewRay(vmath.V3F(1000, 0, 0), vmath.V3F(-1, 0, 0)))
	if s.State.Selected != "Mars" {
		t.Errorf("selected %q, want the nearer Mars", s.State.Selected)
	}
}

func TestSelectByName(t *testing.T) {
	s := New(11)
	if !s.SelectByName("Venus") || s.State.Selected != "Venus" {
		t.Fatal("select Venus failed")
	}
	if s.SelectByName("Pluto") || s.State.Selected != "Venus" {
		t.Error("unknown name changed the selection")
	}
	if !s.SelectByName("") || s.State.Selected != "" {
		t.Error("empty name did not clear")
	}
}

func TestViewModes(t *testing.T) {
	s := New(12)
	s.SetView(camera.ViewSide)
	if s.State.View != camera.ViewSide {
		t.Fatalf("view = %v", s.State.View)
	}
	s.SetView(camera.ViewMode(42))
	if s.State.View != camera.ViewSide {
		t.Error("invalid mode accepted")
	}
	s.ToggleCinematic()
	if s.State.View != camera.ViewCinematic {
		t.Errorf("toggle cinematic -> %v", s.State.View)
	}
	s.ToggleCinematic()
	if s.State.View != camera.ViewFree {
		t.Errorf("toggle cinematic twice -> %v", s.State.View)
	}
}

func TestVisibilityLostPauses(t *testing.T) {
	s := New(13)
	s.VisibilityLost()
	if s.State.Playing {
		t.Error("still playing after visibility loss")
	}
	s.VisibilityLost()
	if s.State.Playing {
		t.Error("visibility loss toggled playback")
	}
}

func TestEventAlert(t *testing.T) {
	s := New(14)
	if s.EventAlert() != "" {
		t.Error("alert without event")
	}
	s.SetCosmicEvent(EventTimeLapse)
	if s.EventAlert() != "TIME ACCELERATION: 50X" {
		t.Errorf("alert = %q", s.EventAlert())
	}
}

func TestPointerClamped(t *testing.T) {
	s := New(15)
	s.SetPointer(4, -9)
	if x, y := s.Pointer(); x != 1 || y != -1 {
		t.Errorf("pointer = %v, %v", x, y)
	}
	s.SetPointer(math.NaN(), 0)
	if x, _ := s.Pointer(); x != 1 {
		t.Error("NaN pointer accepted")
	}
}
