package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Space background
var Background = colorful.Color{R: 0.01, G: 0.01, B: 0.03}

// Hex converts a 0xRRGGBB catalog color
func Hex(c uint32) colorful.Color {
	return colorful.Color{
		R: float64((c>>16)&0xFF) / 255,
		G: float64((c>>8)&0xFF) / 255,
		B: float64(c&0xFF) / 255,
	}
}

// Scale multiplies every channel, clamped to the valid range
func Scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

// Fade mixes c toward the background, t=0 keeps c, t=1 is background
func Fade(c colorful.Color, t float64) colorful.Color {
	return c.BlendRgb(Background, t).Clamped()
}

// ToTcell converts to a terminal color, tcell downsamples on 256-color terminals
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
