package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/orrery/camera"
)

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		cmd     Command
		wantErr bool
	}{
		{Command{Kind: CmdTogglePlay}, false},
		{Command{Kind: CmdSetView, Arg: "side"}, false},
		{Command{Kind: CmdSetView, Arg: "orbit"}, true},
		{Command{Kind: CmdSetEvent, Arg: "time_lapse"}, false},
		{Command{Kind: CmdSetEvent, Arg: "none"}, false},
		{Command{Kind: CmdSetEvent, Arg: "supernova"}, true},
		{Command{Kind: CmdZoom, Arg: "0.8"}, false},
		{Command{Kind: CmdZoom, Factor: 1.2}, false},
		{Command{Kind: CmdZoom, Arg: "big"}, true},
		{Command{Kind: CmdZoom}, true},
		{Command{Kind: "explode"}, true},
	}
	for _, tt := range tests {
		c := tt.cmd
		err := c.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) err = %v, wantErr %v", tt.cmd, err, tt.wantErr)
		}
	}
}

func TestUnknownNameError(t *testing.T) {
	c := Command{Kind: CmdSetEvent, Arg: "supernova"}
	err := c.Validate()
	var une *UnknownNameError
	if !errors.As(err, &une) || une.Kind != "event" {
		t.Fatalf("err = %v", err)
	}
}

func TestApplyCommands(t *testing.T) {
	s := New(31)
	run := func(c Command) {
		t.Helper()
		if err := c.Validate(); err != nil {
			t.Fatalf("validate %+v: %v", c, err)
		}
		s.Apply(c)
	}

	run(Command{Kind: CmdSetView, Arg: "top"})
	run(Command{Kind: CmdSetEvent, Arg: "solar_storm"})
	run(Command{Kind: CmdZoom, Arg: "2"})
	run(Command{Kind: CmdSelect, Arg: "Neptune"})
	run(Command{Kind: CmdPointer, X: 0.5, Y: -0.5})
	run(Command{Kind: CmdTogglePlay})

	if s.State.View != camera.ViewTop {
		t.Errorf("view = %v", s.State.View)
	}
	if s.State.Event != EventSolarStorm {
		t.Errorf("event = %v", s.State.Event)
	}
	if s.State.Zoom != 2 {
		t.Errorf("zoom = %v", s.State.Zoom)
	}
	if s.State.Selected != "Neptune" {
		t.Errorf("selected = %q", s.State.Selected)
	}
	if x, y := s.Pointer(); x != 0.5 || y != -0.5 {
		t.Errorf("pointer = %v, %v", x, y)
	}
	if s.State.Playing {
		t.Error("still playing")
	}

	run(Command{Kind: CmdReset})
	if s.State.Event != EventNone || s.State.View != camera.ViewFree {
		t.Errorf("reset via command failed: %+v", s.State)
	}
}

func TestParseEventNames(t *testing.T) {
	for _, ev := range Events() {
		got, ok := ParseEvent(ev.String())
		if !ok || got != ev {
			t.Errorf("ParseEvent(%q) = %v, %v", ev.String(), got, ok)
		}
		if ev.Alert() == "" {
			t.Errorf("%v has no alert text", ev)
		}
	}
	if got, ok := ParseEvent(""); !ok || got != EventNone {
		t.Error("empty name should parse as none")
	}
}
