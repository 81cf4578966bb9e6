package engine

import (
	"github.com/lixenwraith/orrery/camera"
)

// Zoom bounds
const (
	MinZoom = 0.3
	MaxZoom = 3.0
)

// State is the plain-data portion of the simulation shared with the presentation layer
// Selection is stored by planet name and resolved against the world every frame
type State struct {
	Playing    bool            `json:"playing"`
	Selected   string          `json:"selected"`
	ShowOrbits bool            `json:"show_orbits"`
	ShowInfo   bool            `json:"show_info"`
	ShowComets bool            `json:"show_comets"`
	View       camera.ViewMode `json:"view"`
	Event      CosmicEvent     `json:"event"`
	Clock
	Zoom float64 `json:"zoom"`
}

// DefaultState is the state at startup
func DefaultState() State {
	return State{
		Playing:    true,
		ShowOrbits: true,
		ShowInfo:   true,
		ShowComets: true,
		View:       camera.ViewFree,
		Zoom:       1,
	}
}
