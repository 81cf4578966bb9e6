package main

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/api"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/metrics"
	"github.com/lixenwraith/orrery/render"
)

const commandQueueSize = 64

// app owns the simulation and everything that touches it; only run's goroutine mutates sim
type app struct {
	cfg       config.Config
	screen    tcell.Screen
	sim       *engine.Simulation
	renderer  *render.Renderer
	input     *inputMapper
	metrics   *metrics.Collector
	publisher *api.Publisher
	commands  chan engine.Command
}

func newApp(cfg config.Config, screen tcell.Screen, seed int64) *app {
	sim := engine.New(seed)
	r := render.NewRenderer(screen)
	a := &app{
		cfg:       cfg,
		screen:    screen,
		sim:       sim,
		renderer:  r,
		input:     newInputMapper(r, sim),
		metrics:   metrics.NewCollector(),
		publisher: api.NewPublisher(),
		commands:  make(chan engine.Command, commandQueueSize),
	}
	sim.AddEventListener(a.metrics.OnEventChange)
	sim.AddEventListener(func(prev, next engine.CosmicEvent) {
		log.Printf("event %q -> %q", prev, next)
	})
	return a
}

// apiServer wires the HTTP surface to this app's queue and snapshots
func (a *app) apiServer() *api.Server {
	return api.NewServer(api.Options{
		Commands:    a.commands,
		Publisher:   a.publisher,
		Metrics:     a.metrics.Handler(),
		BroadcastHz: a.cfg.BroadcastHz,
	})
}

// apply runs one command on the loop goroutine
func (a *app) apply(cmd engine.Command) {
	a.sim.Apply(cmd)
	a.metrics.RecordCommand(cmd.Kind)
}

// frame advances the simulation by dt and draws it
func (a *app) frame(dt float64) {
	start := time.Now()
	a.sim.Tick(dt)
	a.renderer.Render(a.sim)
	a.publisher.Publish(a.sim.Snapshot())
	a.metrics.RecordFrame(time.Since(start))
}

// handleEvent applies a terminal event, reporting quit
func (a *app) handleEvent(ev tcell.Event) bool {
	cmds, quit := a.input.handle(ev)
	for _, cmd := range cmds {
		a.apply(cmd)
	}
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
	}
	return quit
}

// run is the frame loop; it returns when the user quits, the screen closes or ctx ends
func (a *app) run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.FPS))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	inputCh := startInputReader(a.screen, done)
	lastTick := time.Now()
	a.frame(0)

	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd := <-a.commands:
			a.apply(cmd)

		case <-ticker.C:
		drainInput:
			for {
				select {
				case ev, ok := <-inputCh:
					if !ok {
						return nil
					}
					if a.handleEvent(ev) {
						return nil
					}
				default:
					break drainInput
				}
			}

			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now
			if dt > engine.MaxFrameDelta {
				dt = engine.MaxFrameDelta
			}
			a.frame(dt)
		}
	}
}

// startInputReader forwards screen events until the screen is finalized or done closes
func startInputReader(screen tcell.Screen, done <-chan struct{}) chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
				continue
			case <-done:
				return
			default:
			}
			if droppable(ev) {
				continue
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	}()
	return ch
}

// droppable reports events that can be lost under backpressure: pointer motion without buttons
func droppable(ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	return ok && m.Buttons() == tcell.ButtonNone
}
