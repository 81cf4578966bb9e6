package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one character cell of the frame
type Cell struct {
	Rune  rune
	Fg    colorful.Color
	Bg    colorful.Color
	Attrs tcell.AttrMask
}

// Buffer is the frame compositor, flushed to the screen once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a cleared buffer
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocates only if capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	size := width * height
	if size < 0 {
		size = 0
	}
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Bounds returns the buffer dimensions
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Clear fills every cell with empty space using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: Background, Bg: Background}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y, zero value when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Paint blends a background color into the cell and clears its glyph
func (b *Buffer) Paint(x, y int, bg colorful.Color, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.Bg = Combine(c.Bg, bg, mode, alpha)
	c.Rune = ' '
}

// Glyph writes a foreground rune keeping the background
func (b *Buffer) Glyph(x, y int, r rune, fg colorful.Color, attrs tcell.AttrMask) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.Rune = r
	c.Fg = fg
	c.Attrs = attrs
}

// GlyphIfEmpty writes a rune only over untouched space
func (b *Buffer) GlyphIfEmpty(x, y int, r rune, fg colorful.Color) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	if c.Rune != ' ' || c.Bg != Background {
		return
	}
	c.Rune = r
	c.Fg = fg
}

// Text writes a string starting at x, clipped to the buffer
func (b *Buffer) Text(x, y int, s string, fg colorful.Color, attrs tcell.AttrMask) int {
	for _, r := range s {
		b.Glyph(x, y, r, fg, attrs)
		x++
	}
	return x
}

// Line draws a straight run of glyphs between two cells
func (b *Buffer) Line(x0, y0, x1, y1 int, r rune, fg colorful.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for steps := 0; steps < 4096; steps++ {
		b.GlyphIfEmpty(x0, y0, r, fg)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Flush copies the frame to the screen and shows it
func (b *Buffer) Flush(s tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.
				Foreground(ToTcell(c.Fg)).
				Background(ToTcell(c.Bg)).
				Attributes(c.Attrs)
			s.SetContent(x, y, c.Rune, nil, style)
		}
	}
	s.Show()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
