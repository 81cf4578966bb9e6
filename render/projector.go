package render

import (
	"math"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

const (
	fieldOfView = 60.0 // Vertical, degrees
	cellAspect  = 2.0  // Terminal cells are about twice as tall as wide
	nearPlane   = 0.1
	farPlane    = 5000.0
)

// Projector maps world space into the cell grid for one camera pose
type Projector struct {
	width, height int // Viewport in cells
	focal         float64
	eye           vmath.Vec3F
	basis         vmath.Basis
}

// NewProjector prepares a projection for a viewport of width x height cells
func NewProjector(width, height int, pose camera.Pose) Projector {
	h := math.Max(1, float64(height))
	return Projector{
		width:  width,
		height: height,
		focal:  (h / 2) / math.Tan(fieldOfView*math.Pi/360),
		eye:    pose.Position,
		basis:  vmath.LookAt(pose.Position, pose.LookAt),
	}
}

// Projected is a point on screen with its view depth
type Projected struct {
	X, Y  float64 // Cell coordinates, fractional
	Depth float64 // Distance along the view axis
}

// Project returns the screen position of p, ok=false behind the camera or past the far plane
func (pr Projector) Project(p vmath.Vec3F) (Projected, bool) {
	v := pr.basis.ToView(pr.eye, p)
	if v.Z < nearPlane || v.Z > farPlane {
		return Projected{}, false
	}
	return Projected{
		X:     float64(pr.width)/2 + v.X/v.Z*pr.focal*cellAspect,
		Y:     float64(pr.height)/2 - v.Y/v.Z*pr.focal,
		Depth: v.Z,
	}, true
}

// Radius converts a world radius at the given depth into rows
func (pr Projector) Radius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * pr.focal / depth
}

// Ray returns the pick ray through the center of cell x, y
func (pr Projector) Ray(x, y int) vmath.Ray {
	vx := (float64(x) + 0.5 - float64(pr.width)/2) / (pr.focal * cellAspect)
	vy := (float64(pr.height)/2 - (float64(y) + 0.5)) / pr.focal
	return vmath.NewRay(pr.eye, pr.basis.FromView(vmath.V3F(vx, vy, 1)))
}

// Pointer converts a cell to normalized [-1, 1] pointer coordinates, up positive
func (pr Projector) Pointer(x, y int) (float64, float64) {
	w := math.Max(1, float64(pr.width))
	h := math.Max(1, float64(pr.height))
	return (float64(x)+0.5)/w*2 - 1, -((float64(y)+0.5)/h*2 - 1)
}

// Inside reports whether a projected point lands in the viewport
func (pr Projector) Inside(p Projected) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(pr.width) && p.Y < float64(pr.height)
}
