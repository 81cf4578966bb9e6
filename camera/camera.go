// Package camera steers the viewpoint each frame according to the active view mode
package camera

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/vmath"
)

// ViewMode selects the camera strategy
type ViewMode uint8

const (
	ViewFree ViewMode = iota
	ViewTop
	ViewSide
	ViewCinematic
	ViewFollow
)

var viewNames = [...]string{"free", "top", "side", "cinematic", "follow"}

// String returns the mode name used by the UI and wire formats
func (m ViewMode) String() string {
	if int(m) < len(viewNames) {
		return viewNames[m]
	}
	return "free"
}

// Valid reports whether m is one of the five modes
func (m ViewMode) Valid() bool {
	return int(m) < len(viewNames)
}

// ParseView resolves a mode name
func ParseView(name string) (ViewMode, bool) {
	for i, n := range viewNames {
		if n == name {
			return ViewMode(i), true
		}
	}
	return ViewFree, false
}

// Modes lists all view modes in UI order
func Modes() []ViewMode {
	return []ViewMode{ViewFree, ViewTop, ViewSide, ViewCinematic, ViewFollow}
}

const (
	BaseRadius = 300.0 // Zoomed distance at zoom 1

	freeLerp   = 0.02
	fixedLerp  = 0.05
	followLerp = 0.02
	zoomLerp   = 0.1

	freeSwayX  = 100.0
	freeSwayY  = 50.0
	freeHeight = 150.0
	freeDepth  = 300.0

	cinematicRadius  = 250.0
	cinematicSpin    = 0.1
	cinematicHeight  = 120.0
	cinematicBob     = 40.0
	cinematicBobRate = 0.05

	followRise = 3.0 // Multiples of body size above the body
	followBack = 4.0 // Multiples of body size behind the body
)

var (
	homePosition = vmath.V3F(0, freeHeight, freeDepth)
	topPosition  = vmath.V3F(0, 500, 0)
	sidePosition = vmath.V3F(600, 50, 0)
)

// Pose is the camera placement handed to the renderer
type Pose struct {
	Position vmath.Vec3F
	LookAt   vmath.Vec3F
}

// Target is the body followed in follow mode
type Target struct {
	Position vmath.Vec3F
	Size     float64
}

// Input carries everything the controller reads in one frame
type Input struct {
	Mode     ViewMode
	Time     float64 // Elapsed simulated seconds
	PointerX float64 // Normalized [-1, 1], right positive
	PointerY float64 // Normalized [-1, 1], up positive
	Zoom     float64
	Follow   *Target // nil when nothing is selected or the selection is not found
}

// Controller holds the smoothed camera state between frames
type Controller struct {
	pose         Pose
	targetPos    vmath.Vec3F
	targetLookAt vmath.Vec3F
}

// NewController places the camera at the home pose
func NewController() *Controller {
	return &Controller{
		pose:      Pose{Position: homePosition},
		targetPos: homePosition,
	}
}

// Pose returns the current camera placement
func (c *Controller) Pose() Pose {
	return c.pose
}

// SetPose overrides the placement, used when restoring state
func (c *Controller) SetPose(p Pose) {
	c.pose = p
}

// TargetPosition returns the stored target used by the fixed modes
func (c *Controller) TargetPosition() vmath.Vec3F {
	return c.targetPos
}

// SetMode stores the fixed target for top, side and free
// Cinematic and follow compute their targets per frame
func (c *Controller) SetMode(m ViewMode) {
	switch m {
	case ViewTop:
		c.targetPos = topPosition
	case ViewSide:
		c.targetPos = sidePosition
	case ViewFree:
		c.targetPos = homePosition
	default:
		return
	}
	c.targetLookAt = vmath.Vec3F{}
}

// Update advances the camera one frame
// Placement runs first, then the zoom correction reads the placed distance
func (c *Controller) Update(in Input) {
	c.place(in)
	if in.Mode != ViewCinematic {
		c.applyZoom(in.Zoom)
	}
}

func (c *Controller) place(in Input) {
	switch in.Mode {
	case ViewFree:
		c.targetPos = vmath.V3F(in.PointerX*freeSwayX, freeHeight+in.PointerY*freeSwayY, freeDepth)
		c.pose.Position = vmath.V3FLerp(c.pose.Position, c.targetPos, freeLerp)
		c.pose.LookAt = vmath.Vec3F{}

	case ViewCinematic:
		angle := in.Time * cinematicSpin
		c.pose.Position = vmath.V3F(
			math.Cos(angle)*cinematicRadius,
			cinematicHeight+math.Sin(in.Time*cinematicBobRate)*cinematicBob,
			math.Sin(angle)*cinematicRadius,
		)
		c.pose.LookAt = vmath.Vec3F{}

	case ViewTop, ViewSide:
		c.pose.Position = vmath.V3FLerp(c.pose.Position, c.targetPos, fixedLerp)
		c.pose.LookAt = c.targetLookAt

	case ViewFollow:
		if in.Follow == nil {
			return
		}
		target := in.Follow.Position
		target.Y += in.Follow.Size * followRise
		target.Z += in.Follow.Size * followBack
		c.pose.Position = vmath.V3FLerp(c.pose.Position, target, followLerp)
		c.pose.LookAt = in.Follow.Position
	}
}

func (c *Controller) applyZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	current := vmath.V3FMag(c.pose.Position)
	if current == 0 {
		return
	}
	target := BaseRadius / zoom
	c.pose.Position = vmath.V3FWithLength(c.pose.Position, current+(target-current)*zoomLerp)
}

// MarshalText encodes the mode name
func (m ViewMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name
func (m *ViewMode) UnmarshalText(b []byte) error {
	v, ok := ParseView(string(b))
	if !ok {
		return errors.Errorf("unknown view mode %q", string(b))
	}
	*m = v
	return nil
}
