package engine

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

// CommandKind names one interaction operation
type CommandKind string

const (
	CmdTogglePlay      CommandKind = "toggle_play"
	CmdReset           CommandKind = "reset"
	CmdToggleOrbits    CommandKind = "toggle_orbits"
	CmdToggleInfo      CommandKind = "toggle_info"
	CmdToggleComets    CommandKind = "toggle_comets"
	CmdZoom            CommandKind = "zoom"
	CmdResetZoom       CommandKind = "reset_zoom"
	CmdSetView         CommandKind = "set_view"
	CmdToggleCinematic CommandKind = "toggle_cinematic"
	CmdSetEvent        CommandKind = "set_event"
	CmdSelect          CommandKind = "select"
	CmdPick            CommandKind = "pick"
	CmdPointer         CommandKind = "pointer"
	CmdHide            CommandKind = "visibility_lost"
)

// Command is a queued interaction, built by the terminal or HTTP layer and applied on the loop goroutine
type Command struct {
	Kind CommandKind `json:"kind"`
	Arg  string      `json:"arg,omitempty"`

	// Parsed arguments, filled by Validate
	View   camera.ViewMode `json:"-"`
	Event  CosmicEvent     `json:"-"`
	Factor float64         `json:"factor,omitempty"`
	X      float64         `json:"x,omitempty"`
	Y      float64         `json:"y,omitempty"`
	Ray    vmath.Ray       `json:"-"`
}

// UnknownNameError reports a view, event or command name that does not exist
type UnknownNameError struct {
	Kind string
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}

// Validate parses Arg for the kinds that need it
func (c *Command) Validate() error {
	switch c.Kind {
	case CmdTogglePlay, CmdReset, CmdToggleOrbits, CmdToggleInfo, CmdToggleComets,
		CmdResetZoom, CmdToggleCinematic, CmdSelect, CmdPointer, CmdPick, CmdHide:
		return nil
	case CmdZoom:
		if c.Factor == 0 && c.Arg != "" {
			f, err := strconv.ParseFloat(c.Arg, 64)
			if err != nil {
				return errors.Wrapf(err, "zoom factor %q", c.Arg)
			}
			c.Factor = f
		}
		if c.Factor == 0 {
			return errors.New("zoom factor missing")
		}
		return nil
	case CmdSetView:
		v, ok := camera.ParseView(c.Arg)
		if !ok {
			return &UnknownNameError{Kind: "view", Name: c.Arg}
		}
		c.View = v
		return nil
	case CmdSetEvent:
		ev, ok := ParseEvent(c.Arg)
		if !ok {
			return &UnknownNameError{Kind: "event", Name: c.Arg}
		}
		c.Event = ev
		return nil
	default:
		return &UnknownNameError{Kind: "command", Name: string(c.Kind)}
	}
}

// Apply runs a validated command against the simulation
func (s *Simulation) Apply(c Command) {
	switch c.Kind {
	case CmdTogglePlay:
		s.TogglePlayPause()
	case CmdReset:
		s.Reset()
	case CmdToggleOrbits:
		s.ToggleOrbits()
	case CmdToggleInfo:
		s.ToggleInfo()
	case CmdToggleComets:
		s.ToggleComets()
	case CmdZoom:
		s.ZoomCamera(c.Factor)
	case CmdResetZoom:
		s.ResetZoom()
	case CmdSetView:
		s.SetView(c.View)
	case CmdToggleCinematic:
		s.ToggleCinematic()
	case CmdSetEvent:
		s.SetCosmicEvent(c.Event)
	case CmdSelect:
		s.SelectByName(c.Arg)
	case CmdPick:
		s.SelectBody(c.Ray)
	case CmdPointer:
		s.SetPointer(c.X, c.Y)
	case CmdHide:
		s.VisibilityLost()
	}
}
