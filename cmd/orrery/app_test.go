package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	a := newApp(config.Default(), screen, 1)
	a.renderer.Resize()
	return a, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name  string
		ev    tcell.Event
		check func(engine.State) bool
	}{
		{"space pauses", key(' '), func(s engine.State) bool { return !s.Playing }},
		{"o hides orbits", key('o'), func(s engine.State) bool { return !s.ShowOrbits }},
		{"i hides info", key('i'), func(s engine.State) bool { return !s.ShowInfo }},
		{"c hides comets", key('c'), func(s engine.State) bool { return !s.ShowComets }},
		{"plus zooms in", key('+'), func(s engine.State) bool { return s.Zoom == zoomInFactor }},
		{"minus zooms out", key('-'), func(s engine.State) bool { return s.Zoom == zoomOutFactor }},
		{"2 top view", key('2'), func(s engine.State) bool { return s.View == camera.ViewTop }},
		{"4 cinematic", key('4'), func(s engine.State) bool { return s.View == camera.ViewCinematic }},
		{"v cinematic", key('v'), func(s engine.State) bool { return s.View == camera.ViewCinematic }},
		{"F1 solar storm", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), func(s engine.State) bool { return s.Event == engine.EventSolarStorm }},
		{"F6 gravity waves", tcell.NewEventKey(tcell.KeyF6, 0, tcell.ModNone), func(s engine.State) bool { return s.Event == engine.EventGravityWaves }},
		{"$ time lapse", key('$'), func(s engine.State) bool { return s.Event == engine.EventTimeLapse }},
		{"focus lost pauses", tcell.NewEventFocus(false), func(s engine.State) bool { return !s.Playing }},
		{"focus gained keeps playing", tcell.NewEventFocus(true), func(s engine.State) bool { return s.Playing }},
		{"unbound key", key('z'), func(s engine.State) bool { return s == engine.DefaultState() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			if quit := a.handleEvent(tt.ev); quit {
				t.Fatal("unexpected quit")
			}
			if !tt.check(a.sim.State) {
				t.Errorf("state after %s: %+v", tt.name, a.sim.State)
			}
		})
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []tcell.Event{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		a, _ := newTestApp(t)
		if !a.handleEvent(ev) {
			t.Errorf("%v should quit", ev)
		}
	}
}

func TestResetZoomKey(t *testing.T) {
	a, _ := newTestApp(t)
	a.handleEvent(key('+'))
	a.handleEvent(key('0'))
	if a.sim.State.Zoom != 1 {
		t.Errorf("zoom %v after reset", a.sim.State.Zoom)
	}
}

func TestMouseClickSelectsPlanet(t *testing.T) {
	a, _ := newTestApp(t)
	a.frame(0)

	// Park Earth on the view axis between the camera and the sun
	idx := a.sim.World.PlanetIndex("Earth")
	a.sim.World.Planets[idx].Position = vmath.V3F(0, 100, 200)

	pr := a.renderer.Projector(a.sim)
	p, ok := pr.Project(a.sim.World.Planets[idx].Position)
	if !ok {
		t.Fatal("Earth not visible")
	}
	x, y := int(p.X), int(p.Y)

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if a.sim.State.Selected != "Earth" {
		t.Fatalf("selected %q, want Earth", a.sim.State.Selected)
	}

	// Holding the button does not re-pick
	a.sim.State.Selected = ""
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if a.sim.State.Selected != "" {
		t.Error("drag re-triggered a pick")
	}
}

func TestMouseMoveSetsPointer(t *testing.T) {
	a, _ := newTestApp(t)
	a.handleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	px, py := a.sim.Pointer()
	if px > -0.9 || py < 0.9 {
		t.Errorf("pointer (%.2f, %.2f), want near top left", px, py)
	}
}

func TestMouseWheelZooms(t *testing.T) {
	a, _ := newTestApp(t)
	a.handleEvent(tcell.NewEventMouse(10, 10, tcell.WheelUp, tcell.ModNone))
	if a.sim.State.Zoom <= 1 {
		t.Errorf("wheel up zoom %v", a.sim.State.Zoom)
	}
}

func TestRunAppliesQueuedCommands(t *testing.T) {
	a, _ := newTestApp(t)
	a.commands <- engine.Command{Kind: engine.CmdSetView, Arg: "side", View: camera.ViewSide}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := a.run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if a.sim.State.View != camera.ViewSide {
		t.Errorf("view %v, want side", a.sim.State.View)
	}
	if _, version := a.publisher.Latest(); version < 2 {
		t.Errorf("published %d snapshots, want several", version)
	}
	if a.sim.State.Time <= 0 {
		t.Error("clock did not advance")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	a, screen := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- a.run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after q")
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", config.KeyFPS, config.KeyColor, config.KeySeed, config.KeyDebug, config.KeyAudio, config.KeyListen, config.KeyBroadcastHz} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s missing", name)
		}
	}
}

func TestDroppableEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"motion", tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), true},
		{"click", tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone), false},
		{"wheel", tcell.NewEventMouse(10, 5, tcell.WheelUp, tcell.ModNone), false},
		{"key", key('q'), false},
		{"resize", tcell.NewEventResize(80, 24), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := droppable(tt.ev); got != tt.want {
				t.Errorf("droppable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInputReaderStopsWhenDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	done := make(chan struct{})
	ch := startInputReader(screen, done)

	// Nobody reads, so the reader fills its buffer and then waits on done
	for i := 0; i < 100; i++ {
		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	}
	time.Sleep(50 * time.Millisecond)
	close(done)
	screen.Fini()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("input reader still running after done closed")
		}
	}
}
