package vmath

import "math"

// TwoPi is one full revolution
const TwoPi = 2 * math.Pi

// OrbitPoint returns the position on a circular orbit in the XZ plane
// angle: orbital angle in radians, radius: distance from origin, y: height above the plane
func OrbitPoint(angle, radius, y float64) Vec3F {
	return Vec3F{
		X: math.Cos(angle) * radius,
		Y: y,
		Z: math.Sin(angle) * radius,
	}
}

// OrbitRing returns segments+1 points tracing a closed orbit, first and last coincide
func OrbitRing(radius float64, segments int) []Vec3F {
	pts := make([]Vec3F, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = OrbitPoint(float64(i)/float64(segments)*TwoPi, radius, 0)
	}
	return pts
}

// SphericalPoint returns a point on a sphere from polar angle phi and azimuth theta
func SphericalPoint(radius, theta, phi float64) Vec3F {
	return Vec3F{
		X: radius * math.Sin(phi) * math.Cos(theta),
		Y: radius * math.Sin(phi) * math.Sin(theta),
		Z: radius * math.Cos(phi),
	}
}

// WrapAngle folds an angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}
