package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode defines how a painted color combines with what is already in the cell
type BlendMode uint8

const (
	BlendReplace BlendMode = iota // Overwrite
	BlendAlpha                    // Linear mix by alpha
	BlendScreen                   // Additive-like glow that never exceeds white
	BlendMax                      // Per-channel maximum
)

// Combine blends src over dst using mode and alpha in [0, 1]
func Combine(dst, src colorful.Color, mode BlendMode, alpha float64) colorful.Color {
	alpha = math.Max(0, math.Min(1, alpha))
	switch mode {
	case BlendAlpha:
		return dst.BlendRgb(src, alpha)
	case BlendScreen:
		return colorful.Color{
			R: screen(dst.R, src.R*alpha),
			G: screen(dst.G, src.G*alpha),
			B: screen(dst.B, src.B*alpha),
		}
	case BlendMax:
		return colorful.Color{
			R: math.Max(dst.R, src.R*alpha),
			G: math.Max(dst.G, src.G*alpha),
			B: math.Max(dst.B, src.B*alpha),
		}
	default:
		return src
	}
}

func screen(a, b float64) float64 {
	return 1 - (1-a)*(1-b)
}
