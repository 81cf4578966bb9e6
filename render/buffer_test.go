package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestBufferClearAndBounds(t *testing.T) {
	b := NewBuffer(7, 3)
	b.Glyph(2, 1, 'x', Hex(0xFFFFFF), tcell.AttrBold)
	b.Clear()
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			if c := b.Get(x, y); c.Rune != ' ' || c.Bg != Background {
				t.Fatalf("cell (%d,%d) not cleared: %+v", x, y, c)
			}
		}
	}
	if c := b.Get(-1, 0); c.Rune != 0 {
		t.Error("out of bounds Get should return the zero cell")
	}
	b.Glyph(100, 100, 'x', Hex(0xFFFFFF), tcell.AttrNone)
}

func TestBufferResizeReuses(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Resize(4, 4)
	if w, h := b.Bounds(); w != 4 || h != 4 {
		t.Errorf("bounds %dx%d", w, h)
	}
	b.Resize(20, 5)
	if c := b.Get(19, 4); c.Rune != ' ' {
		t.Errorf("grown buffer not cleared: %+v", c)
	}
}

func TestGlyphIfEmpty(t *testing.T) {
	b := NewBuffer(3, 1)
	b.Glyph(0, 0, 'a', Hex(0xFFFFFF), tcell.AttrNone)
	b.GlyphIfEmpty(0, 0, 'b', Hex(0xFFFFFF))
	b.Paint(1, 0, Hex(0xFF0000), BlendReplace, 1)
	b.GlyphIfEmpty(1, 0, 'b', Hex(0xFFFFFF))
	b.GlyphIfEmpty(2, 0, 'b', Hex(0xFFFFFF))

	if got := b.Get(0, 0).Rune; got != 'a' {
		t.Errorf("occupied glyph overwritten: %q", got)
	}
	if got := b.Get(1, 0).Rune; got != ' ' {
		t.Errorf("painted cell overwritten: %q", got)
	}
	if got := b.Get(2, 0).Rune; got != 'b' {
		t.Errorf("empty cell not written: %q", got)
	}
}

func TestLineEndpoints(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Line(1, 1, 8, 5, '*', Hex(0xFFFFFF))
	for _, p := range [][2]int{{1, 1}, {8, 5}} {
		if b.Get(p[0], p[1]).Rune != '*' {
			t.Errorf("endpoint %v not drawn", p)
		}
	}
	count := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if b.Get(x, y).Rune == '*' {
				count++
			}
		}
	}
	if count != 8 {
		t.Errorf("line covers %d cells, want 8", count)
	}
}

func TestCombine(t *testing.T) {
	dst := colorful.Color{R: 0.5, G: 0.2, B: 0}
	src := colorful.Color{R: 0, G: 0.6, B: 1}

	tests := []struct {
		name  string
		mode  BlendMode
		alpha float64
		want  colorful.Color
	}{
		{"replace", BlendReplace, 0.3, src},
		{"alpha half", BlendAlpha, 0.5, colorful.Color{R: 0.25, G: 0.4, B: 0.5}},
		{"screen", BlendScreen, 1, colorful.Color{R: 0.5, G: 0.68, B: 1}},
		{"max", BlendMax, 1, colorful.Color{R: 0.5, G: 0.6, B: 1}},
		{"alpha clamped", BlendAlpha, 2, src},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(dst, src, tt.mode, tt.alpha)
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 || math.Abs(got.B-tt.want.B) > 1e-9 {
				t.Errorf("Combine = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHexAndFade(t *testing.T) {
	c := Hex(0xFF8000)
	if c.R != 1 || math.Abs(c.G-128.0/255) > 1e-9 || c.B != 0 {
		t.Errorf("Hex = %+v", c)
	}
	if f := Fade(c, 1); math.Abs(f.R-Background.R) > 1e-9 || math.Abs(f.B-Background.B) > 1e-9 {
		t.Errorf("full fade should reach the background")
	}
	if Fade(c, 0) != c {
		t.Errorf("zero fade should keep the color")
	}
	if s := Scale(c, 3); s.R != 1 {
		t.Errorf("Scale should clamp, got %+v", s)
	}
}
