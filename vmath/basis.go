package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WorldUp is the +Y axis
var WorldUp = Vec3F{Y: 1}

// Basis is an orthonormal camera frame
type Basis struct {
	Forward, Right, Up Vec3F
}

// LookAt builds a right-handed view basis from eye toward target
// Falls back to +Z as reference when looking straight along WorldUp
func LookAt(eye, target Vec3F) Basis {
	fwd := V3FNormalize(r3.Sub(target, eye))
	if fwd == (Vec3F{}) {
		fwd = Vec3F{Z: -1}
	}
	ref := WorldUp
	if c := r3.Cross(fwd, ref); r3.Norm(c) < 1e-9 {
		ref = Vec3F{Z: -1}
	}
	right := V3FNormalize(r3.Cross(fwd, ref))
	up := r3.Cross(right, fwd)
	return Basis{Forward: fwd, Right: right, Up: up}
}

// ToView transforms a world point into camera space (x right, y up, z forward)
func (b Basis) ToView(eye, p Vec3F) Vec3F {
	d := r3.Sub(p, eye)
	return Vec3F{X: r3.Dot(d, b.Right), Y: r3.Dot(d, b.Up), Z: r3.Dot(d, b.Forward)}
}

// FromView maps a camera-space direction back into world space
func (b Basis) FromView(v Vec3F) Vec3F {
	return r3.Add(r3.Add(r3.Scale(v.X, b.Right), r3.Scale(v.Y, b.Up)), r3.Scale(v.Z, b.Forward))
}

// RotateXZ turns v about Z by rz, then about X by rx
func RotateXZ(v Vec3F, rx, rz float64) Vec3F {
	sz, cz := math.Sincos(rz)
	v = Vec3F{X: v.X*cz - v.Y*sz, Y: v.X*sz + v.Y*cz, Z: v.Z}
	sx, cx := math.Sincos(rx)
	return Vec3F{X: v.X, Y: v.Y*cx - v.Z*sx, Z: v.Y*sx + v.Z*cx}
}
