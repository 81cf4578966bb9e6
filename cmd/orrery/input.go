package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/render"
)

const (
	zoomInFactor  = 1.25
	zoomOutFactor = 0.8
	wheelIn       = 1.1
	wheelOut      = 1 / 1.1
)

// viewKeys binds the number row to camera modes
var viewKeys = map[rune]camera.ViewMode{
	'1': camera.ViewFree,
	'2': camera.ViewTop,
	'3': camera.ViewSide,
	'4': camera.ViewCinematic,
	'5': camera.ViewFollow,
}

// eventKeys binds shifted number keys to cosmic events, F1-F6 map by position
var eventKeys = map[rune]engine.CosmicEvent{
	'!': engine.EventSolarStorm,
	'@': engine.EventRoguePlanet,
	'#': engine.EventOrbitalResonance,
	'$': engine.EventTimeLapse,
	'%': engine.EventAsteroidImpact,
	'^': engine.EventGravityWaves,
}

var functionKeys = map[tcell.Key]engine.CosmicEvent{
	tcell.KeyF1: engine.EventSolarStorm,
	tcell.KeyF2: engine.EventRoguePlanet,
	tcell.KeyF3: engine.EventOrbitalResonance,
	tcell.KeyF4: engine.EventTimeLapse,
	tcell.KeyF5: engine.EventAsteroidImpact,
	tcell.KeyF6: engine.EventGravityWaves,
}

// inputMapper turns terminal events into simulation commands
type inputMapper struct {
	renderer *render.Renderer
	sim      *engine.Simulation
	buttons  tcell.ButtonMask // Previous mouse state, clicks are edge triggered
}

func newInputMapper(r *render.Renderer, sim *engine.Simulation) *inputMapper {
	return &inputMapper{renderer: r, sim: sim}
}

// handle returns the commands for ev and whether the user asked to quit
func (m *inputMapper) handle(ev tcell.Event) ([]engine.Command, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.key(ev)
	case *tcell.EventMouse:
		return m.mouse(ev), false
	case *tcell.EventFocus:
		if !ev.Focused {
			return []engine.Command{{Kind: engine.CmdHide}}, false
		}
	case *tcell.EventResize:
		m.renderer.Resize()
	}
	return nil, false
}

func (m *inputMapper) key(ev *tcell.EventKey) ([]engine.Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyRune:
	default:
		if e, ok := functionKeys[ev.Key()]; ok {
			return []engine.Command{eventCommand(e)}, false
		}
		return nil, false
	}

	r := ev.Rune()
	if v, ok := viewKeys[r]; ok {
		return []engine.Command{{Kind: engine.CmdSetView, Arg: v.String(), View: v}}, false
	}
	if e, ok := eventKeys[r]; ok {
		return []engine.Command{eventCommand(e)}, false
	}

	var kind engine.CommandKind
	switch r {
	case 'q', 'Q':
		return nil, true
	case ' ':
		kind = engine.CmdTogglePlay
	case 'r', 'R':
		kind = engine.CmdReset
	case 'o', 'O':
		kind = engine.CmdToggleOrbits
	case 'i', 'I':
		kind = engine.CmdToggleInfo
	case 'c', 'C':
		kind = engine.CmdToggleComets
	case 'v', 'V':
		kind = engine.CmdToggleCinematic
	case '+', '=':
		return []engine.Command{{Kind: engine.CmdZoom, Factor: zoomInFactor}}, false
	case '-', '_':
		return []engine.Command{{Kind: engine.CmdZoom, Factor: zoomOutFactor}}, false
	case '0':
		kind = engine.CmdResetZoom
	default:
		return nil, false
	}
	return []engine.Command{{Kind: kind}}, false
}

func eventCommand(e engine.CosmicEvent) engine.Command {
	return engine.Command{Kind: engine.CmdSetEvent, Arg: e.String(), Event: e}
}

func (m *inputMapper) mouse(ev *tcell.EventMouse) []engine.Command {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := m.buttons
	m.buttons = buttons

	px, py := m.renderer.PointerAt(m.sim, x, y)
	cmds := []engine.Command{{Kind: engine.CmdPointer, X: px, Y: py}}

	switch {
	case buttons&tcell.WheelUp != 0:
		cmds = append(cmds, engine.Command{Kind: engine.CmdZoom, Factor: wheelIn})
	case buttons&tcell.WheelDown != 0:
		cmds = append(cmds, engine.Command{Kind: engine.CmdZoom, Factor: wheelOut})
	case buttons&tcell.Button1 != 0 && prev&tcell.Button1 == 0:
		cmds = append(cmds, engine.Command{Kind: engine.CmdPick, Ray: m.renderer.PickRay(m.sim, x, y)})
	}
	return cmds
}
