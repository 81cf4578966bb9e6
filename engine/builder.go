package engine

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/vmath"
)

// Build constructs the full scene once from the catalog
// All randomness is drawn from rng so a seed reproduces the scene
func Build(planets []catalog.BodyDescriptor, comets []catalog.CometDescriptor, rng *rand.Rand) *World {
	w := &World{
		Sun:       buildSun(),
		Stars:     buildStarfield(rng),
		Planets:   make([]PlanetInstance, 0, len(planets)),
		Orbits:    make([]OrbitGuide, 0, len(planets)),
		Asteroids: buildAsteroidBelt(rng),
		Comets:    make([]CometInstance, 0, len(comets)),
	}

	for _, desc := range planets {
		w.Orbits = append(w.Orbits, OrbitGuide{
			Points:  vmath.OrbitRing(desc.Distance, OrbitSegments),
			Color:   OrbitGuideColor,
			Opacity: 0.25,
		})
		w.Planets = append(w.Planets, buildPlanet(desc, rng.Float64()*vmath.TwoPi))
	}

	for _, desc := range comets {
		w.Comets = append(w.Comets, buildComet(desc, rng.Float64()*vmath.TwoPi))
	}

	return w
}

func buildSun() Sun {
	s := Sun{
		Radius:   SunRadius,
		Color:    SunColor,
		Glow:     SunGlowColor,
		Emissive: SunEmissive,
		Light:    SunLight,
		Corona:   make([]CoronaLayer, CoronaLayers),
	}
	for i := 1; i <= CoronaLayers; i++ {
		s.Corona[i-1] = CoronaLayer{Radius: SunRadius + float64(i)*2, Opacity: 0.15 / float64(i)}
	}
	return s
}

func buildPlanet(desc catalog.BodyDescriptor, angle float64) PlanetInstance {
	p := PlanetInstance{
		Desc:     desc,
		Angle:    angle,
		Position: vmath.OrbitPoint(angle, desc.Distance, 0),
		Scale:    1,
		Emissive: PlanetEmissive,
	}

	if desc.Atmosphere {
		color := uint32(0xFFCC88)
		if desc.Name == "Earth" {
			color = 0x88CCFF
		}
		p.Atmosphere = &Atmosphere{Radius: desc.Size * 1.05, Color: color, Opacity: 0.15}
	}

	if desc.HasMoon {
		p.Moon = &Moon{Radius: MoonRadius, Offset: MoonOffset, Color: MoonColor}
	}

	if desc.HasRing {
		r := &Ring{Inner: desc.Size * 1.2, Outer: desc.Size * 2.3, Color: 0x6496C8, Opacity: 0.4}
		if desc.Name == "Saturn" {
			r.Color = 0xC8B48C
			r.Opacity = 0.8
		}
		p.Ring = r
	}

	return p
}

func buildAsteroidBelt(rng *rand.Rand) []AsteroidInstance {
	belt := make([]AsteroidInstance, AsteroidCount)
	for i := range belt {
		size := rng.Float64()*0.5 + 0.2
		angle := rng.Float64() * vmath.TwoPi
		dist := BeltInner + rng.Float64()*BeltWidth
		y := (rng.Float64() - 0.5) * 5
		belt[i] = AsteroidInstance{
			Angle:     angle,
			Distance:  dist,
			Speed:     0.01 + rng.Float64()*0.005,
			SpinSpeed: (rng.Float64() - 0.5) * 0.02,
			Size:      size,
			Position:  vmath.OrbitPoint(angle, dist, y),
		}
	}
	return belt
}

func buildComet(desc catalog.CometDescriptor, angle float64) CometInstance {
	c := CometInstance{
		Desc:      desc,
		Angle:     angle,
		ComaScale: 1,
	}
	c.Position = cometPosition(&c)
	c.Heading = vmath.V3FNormalize(c.Position)
	for i := range c.Trail {
		c.Trail[i] = c.Position
	}
	return c
}

// buildStarfield scatters points over a thick spherical shell
func buildStarfield(rng *rand.Rand) []Star {
	stars := make([]Star, StarCount)
	for i := range stars {
		radius := StarShellInner + rng.Float64()*StarShellDepth
		theta := rng.Float64() * vmath.TwoPi
		phi := math.Acos(rng.Float64()*2 - 1)

		s := Star{Position: vmath.SphericalPoint(radius, theta, phi)}
		switch temp := rng.Float64(); {
		case temp > 0.95:
			s.R, s.G, s.B = 0.6, 0.8, 1
		case temp > 0.7:
			s.R, s.G, s.B = 1, 0.9, 0.7
		default:
			s.R, s.G, s.B = 1, 1, 1
		}
		stars[i] = s
	}
	return stars
}
