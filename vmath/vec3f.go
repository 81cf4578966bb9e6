package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3F is the float64 world-space vector used throughout the simulation
type Vec3F = r3.Vec

// V3F is shorthand for building a Vec3F
func V3F(x, y, z float64) Vec3F {
	return Vec3F{X: x, Y: y, Z: z}
}

// V3FMag returns the vector length
func V3FMag(v Vec3F) float64 {
	return r3.Norm(v)
}

// V3FNormalize returns a unit vector, zero vector stays zero
func V3FNormalize(v Vec3F) Vec3F {
	mag := r3.Norm(v)
	if mag == 0 {
		return Vec3F{}
	}
	return r3.Scale(1/mag, v)
}

// V3FLerp moves a toward b by fraction t
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// V3FWithLength rescales v to the given length preserving direction
func V3FWithLength(v Vec3F, length float64) Vec3F {
	return r3.Scale(length, V3FNormalize(v))
}

// V3FDist returns the distance between two points
func V3FDist(a, b Vec3F) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
