package engine

import (
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/vmath"
)

// Material defaults
const (
	SunRadius      = 20.0
	SunColor       = 0xFDB813
	SunGlowColor   = 0xFFAA00
	SunEmissive    = 1.0
	SunLight       = 3.0
	SunSpin        = 0.0005
	CoronaLayers   = 4
	PlanetEmissive = 0.05

	MoonRadius = 1.7
	MoonOffset = 12.0
	MoonColor  = 0xC0C0C0
	MoonSpin   = 0.02

	AsteroidCount = 300
	AsteroidColor = 0x8B7355
	BeltInner     = 95.0
	BeltWidth     = 15.0

	NucleusRadius = 1.5
	NucleusColor  = 0xCCCCCC
	ComaRadius    = 3.0
	TrailLength   = 50

	StarCount       = 15000
	StarShellInner  = 1000.0
	StarShellDepth  = 3000.0
	OrbitSegments   = 128
	OrbitGuideColor = 0x555555

	orbitStep = 0.01 // Converts catalog speeds into per-frame radians
)

// CoronaLayer is one translucent shell around the sun
type CoronaLayer struct {
	Radius  float64
	Opacity float64
}

// Sun is the central light source
type Sun struct {
	Radius   float64
	Color    uint32
	Glow     uint32
	Emissive float64
	Light    float64
	Rotation float64
	Corona   []CoronaLayer
}

// Atmosphere is a translucent shell slightly larger than its planet
type Atmosphere struct {
	Radius  float64
	Color   uint32
	Opacity float64
}

// Moon orbits its planet in the planet's local frame
type Moon struct {
	Radius float64
	Offset float64
	Color  uint32
}

// Ring is a flat annulus in the planet's equatorial plane
type Ring struct {
	Inner, Outer float64
	Color        uint32
	Opacity      float64
}

// PlanetInstance is the mutable simulation state of one catalog planet
type PlanetInstance struct {
	Desc catalog.BodyDescriptor

	Angle     float64     // Orbital angle, radians
	Position  vmath.Vec3F // World position of the planet group
	YOffset   float64     // Vertical displacement from the orbital plane
	Scale     float64     // Visual scale factor
	Spin      float64     // Self-rotation about Y
	Tilt      vmath.Vec3F // X/Z rotation from impact impulses
	Emissive  float64
	MoonAngle float64

	Atmosphere *Atmosphere
	Moon       *Moon
	Ring       *Ring
}

// Radius returns the scaled mesh radius used for picking and drawing
func (p *PlanetInstance) Radius() float64 {
	return p.Desc.Size * p.Scale
}

// MoonPosition returns the moon's world position, ok=false without a moon
func (p *PlanetInstance) MoonPosition() (vmath.Vec3F, bool) {
	if p.Moon == nil {
		return vmath.Vec3F{}, false
	}
	return p.LocalToWorld(vmath.OrbitPoint(p.Spin+p.MoonAngle, p.Moon.Offset*p.Scale, 0)), true
}

// LocalToWorld places an offset given in the planet's equatorial frame, tilted by impacts
func (p *PlanetInstance) LocalToWorld(off vmath.Vec3F) vmath.Vec3F {
	off = vmath.RotateXZ(off, p.Tilt.X, p.Tilt.Z)
	return vmath.V3F(p.Position.X+off.X, p.Position.Y+off.Y, p.Position.Z+off.Z)
}

// AsteroidInstance is one rock of the belt
type AsteroidInstance struct {
	Angle     float64
	Distance  float64
	Speed     float64
	SpinSpeed float64
	Size      float64
	Position  vmath.Vec3F
	Rotation  vmath.Vec3F
	Velocity  vmath.Vec3F // Non-zero only during an asteroid impact storm
}

// CometInstance is one comet with its trail history
type CometInstance struct {
	Desc catalog.CometDescriptor

	Angle         float64
	VerticalAngle float64
	Position      vmath.Vec3F
	Heading       vmath.Vec3F // Unit vector pointing away from the sun
	ComaScale     float64
	Trail         [TrailLength]vmath.Vec3F // Trail[0] is the newest sample
}

// Star is one backdrop point, color channels in [0, 1]
type Star struct {
	Position vmath.Vec3F
	R, G, B  float64
}

// OrbitGuide is the faint path line drawn for a planet
type OrbitGuide struct {
	Points  []vmath.Vec3F
	Color   uint32
	Opacity float64
}

// World is every renderable the scene builder produced
type World struct {
	Sun       Sun
	Planets   []PlanetInstance
	Asteroids []AsteroidInstance
	Comets    []CometInstance
	Stars     []Star
	Orbits    []OrbitGuide
}

// PlanetIndex resolves a planet by name, -1 when absent
func (w *World) PlanetIndex(name string) int {
	if name == "" {
		return -1
	}
	for i := range w.Planets {
		if w.Planets[i].Desc.Name == name {
			return i
		}
	}
	return -1
}
