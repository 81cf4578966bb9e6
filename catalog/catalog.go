// Package catalog holds the static descriptions of every body in the orrery
package catalog

import (
	"fmt"
	"strings"
)

// BodyDescriptor describes one planet. Values are never mutated after load
type BodyDescriptor struct {
	Name       string  `json:"name"`
	Size       float64 `json:"size"`
	Distance   float64 `json:"distance"`
	Color      uint32  `json:"color"`
	Speed      float64 `json:"speed"`       // Self-rotation per frame, before the 0.01 step factor
	OrbitSpeed float64 `json:"orbit_speed"` // Orbital angular speed, before the 0.01 step factor
	Atmosphere bool    `json:"atmosphere,omitempty"`
	HasMoon    bool    `json:"has_moon,omitempty"`
	HasRing    bool    `json:"has_ring,omitempty"`
	Info       string  `json:"info"`
}

// CometDescriptor describes one comet
type CometDescriptor struct {
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	Speed       float64 `json:"speed"`
	Inclination float64 `json:"inclination"` // Ratio of vertical amplitude to orbital distance
	Color       uint32  `json:"color"`
}

var planets = []BodyDescriptor{
	{Name: "Mercury", Size: 2.4, Distance: 40, Color: 0x8C7853, Speed: 0.03, OrbitSpeed: 0.047,
		Info: "Smallest planet, cratered surface, no atmosphere"},
	{Name: "Venus", Size: 6, Distance: 60, Color: 0xFFC649, Speed: 0.002, OrbitSpeed: 0.035, Atmosphere: true,
		Info: "Hottest planet, thick toxic atmosphere"},
	{Name: "Earth", Size: 6.4, Distance: 85, Color: 0x4A90E2, Speed: 0.01, OrbitSpeed: 0.03, HasMoon: true, Atmosphere: true,
		Info: "Our home, 71% water, only known planet with life"},
	{Name: "Mars", Size: 3.4, Distance: 115, Color: 0xE27B58, Speed: 0.009, OrbitSpeed: 0.024,
		Info: "Red planet, polar ice caps, largest volcano"},
	{Name: "Jupiter", Size: 14, Distance: 180, Color: 0xD4A574, Speed: 0.04, OrbitSpeed: 0.013,
		Info: "Largest planet, Great Red Spot, 79+ moons"},
	{Name: "Saturn", Size: 12, Distance: 260, Color: 0xFAD5A5, Speed: 0.038, OrbitSpeed: 0.009, HasRing: true,
		Info: "Iconic rings made of ice and rock, 82+ moons"},
	{Name: "Uranus", Size: 8, Distance: 350, Color: 0x4FD0E7, Speed: 0.03, OrbitSpeed: 0.006, HasRing: true,
		Info: "Rotates on its side, icy atmosphere"},
	{Name: "Neptune", Size: 7.8, Distance: 430, Color: 0x4166F5, Speed: 0.032, OrbitSpeed: 0.005,
		Info: "Windiest planet, deep blue color, 14 moons"},
}

var comets = []CometDescriptor{
	{Name: "Halley's Comet", Distance: 200, Speed: 0.008, Inclination: 0.3, Color: 0x88CCFF},
	{Name: "Hale-Bopp", Distance: 350, Speed: 0.004, Inclination: -0.4, Color: 0xAADDFF},
	{Name: "Swift-Tuttle", Distance: 280, Speed: 0.006, Inclination: 0.25, Color: 0x99DDFF},
}

// Planets returns the planet table ordered from the sun outward
// The returned slice is a copy
func Planets() []BodyDescriptor {
	out := make([]BodyDescriptor, len(planets))
	copy(out, planets)
	return out
}

// Comets returns the comet table
func Comets() []CometDescriptor {
	out := make([]CometDescriptor, len(comets))
	copy(out, comets)
	return out
}

// FindPlanet resolves a planet by case-insensitive name
func FindPlanet(name string) (BodyDescriptor, bool) {
	for _, p := range planets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return BodyDescriptor{}, false
}

// Diameter formats the display diameter, one size unit is 10k km
func (b BodyDescriptor) Diameter() string {
	return fmt.Sprintf("Diameter: %sk km", formatNumber(b.Size*10))
}

// DistanceText formats the display distance, one distance unit is 1M km
func (b BodyDescriptor) DistanceText() string {
	return fmt.Sprintf("Distance: %sM km", formatNumber(b.Distance))
}

// formatNumber prints integers without a decimal point and trims float noise
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
