package engine

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

func (s *Simulation) updatePlanets(fx frameEffects) {
	for i := range s.World.Planets {
		p := &s.World.Planets[i]
		pt := fx.planets[i]

		p.Angle = vmath.WrapAngle(p.Angle + p.Desc.OrbitSpeed*orbitStep*pt.orbit)
		p.Position = vmath.OrbitPoint(p.Angle, p.Desc.Distance+pt.wobble, p.YOffset)
		p.Spin += p.Desc.Speed * orbitStep * pt.spin

		if p.Moon != nil {
			p.MoonAngle += MoonSpin * fx.spin
		}
	}
}

func (s *Simulation) updateAsteroids(fx frameEffects) {
	for i := range s.World.Asteroids {
		a := &s.World.Asteroids[i]
		if fx.scatter {
			scatter(a, s.rng)
		} else {
			a.Angle = vmath.WrapAngle(a.Angle + a.Speed*fx.orbit)
			a.Position.X = math.Cos(a.Angle) * a.Distance
			a.Position.Z = math.Sin(a.Angle) * a.Distance
		}
		a.Rotation.X += a.SpinSpeed
		a.Rotation.Y += a.SpinSpeed * 0.7
	}
}

func (s *Simulation) updateComets(fx frameEffects) {
	for i := range s.World.Comets {
		c := &s.World.Comets[i]
		c.Angle = vmath.WrapAngle(c.Angle + c.Desc.Speed*fx.orbit)
		c.VerticalAngle = vmath.WrapAngle(c.VerticalAngle + c.Desc.Speed*0.5*fx.orbit)
		c.Position = cometPosition(c)
		c.Heading = vmath.V3FNormalize(c.Position)
		c.ComaScale = 1 + math.Sin(s.State.Time*2+float64(i))*0.2

		// Shift toward the tail, newest sample at the head
		copy(c.Trail[1:], c.Trail[:TrailLength-1])
		c.Trail[0] = c.Position
	}
}

// cometPosition places a comet on its inclined path
func cometPosition(c *CometInstance) vmath.Vec3F {
	d := c.Desc.Distance
	return vmath.V3F(
		math.Cos(c.Angle)*d,
		math.Sin(c.VerticalAngle)*d*c.Desc.Inclination,
		math.Sin(c.Angle)*d,
	)
}
