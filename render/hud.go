package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/engine"
)

const infoPanelWidth = 44

var (
	hudText   = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	hudDim    = colorful.Color{R: 0.45, G: 0.45, B: 0.5}
	hudAccent = colorful.Color{R: 0.99, G: 0.72, B: 0.07}
	hudAlert  = colorful.Color{R: 1, G: 0.3, B: 0.25}
	hudPanel  = colorful.Color{R: 0.06, G: 0.07, B: 0.12}
)

// HelpLine lists the terminal controls
const HelpLine = "space play/pause  r reset  o orbits  i info  c comets  +/- zoom  0 zoom reset  1-5 views  F1-F6 events  click select  q quit"

// StatusLine summarizes the simulation state in one row
func StatusLine(st engine.State) string {
	play := "PAUSED"
	if st.Playing {
		play = "PLAYING"
	}
	event := "none"
	if st.Event != engine.EventNone {
		event = st.Event.String()
	}
	return fmt.Sprintf("%s  view %s  zoom %.2fx  event %s  orbits %s  info %s  comets %s  t %.1f",
		play, st.View, st.Zoom, event, onOff(st.ShowOrbits), onOff(st.ShowInfo), onOff(st.ShowComets), st.Time)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (r *Renderer) drawHUD(sim *engine.Simulation) {
	w, h := r.buf.Bounds()
	if h < HUDRows || w == 0 {
		return
	}

	for y := h - HUDRows; y < h; y++ {
		for x := 0; x < w; x++ {
			r.buf.Paint(x, y, hudPanel, BlendReplace, 1)
		}
	}
	r.buf.Text(1, h-2, StatusLine(sim.State), hudText, tcell.AttrNone)
	r.buf.Text(1, h-1, HelpLine, hudDim, tcell.AttrNone)

	if alert := sim.EventAlert(); alert != "" {
		banner := " " + alert + " "
		x := max(0, (w-utf8.RuneCountInString(banner))/2)
		for i := range utf8.RuneCountInString(banner) {
			r.buf.Paint(x+i, 0, hudAlert, BlendAlpha, 0.35)
		}
		r.buf.Text(x, 0, banner, hudAlert, tcell.AttrBold)
	}

	if sim.InfoVisible() {
		r.drawInfoPanel(sim.SelectedInfo())
	}
}

// drawInfoPanel draws a boxed description of the selected planet in the top left corner
func (r *Renderer) drawInfoPanel(info *engine.BodyInfo) {
	if info == nil {
		return
	}
	inner := infoPanelWidth - 4
	lines := wrap(info.Description, inner)
	body := append([]string{info.Diameter, info.Distance, ""}, lines...)

	top, left := 2, 1
	height := len(body) + 4
	for y := top; y < top+height; y++ {
		for x := left; x < left+infoPanelWidth; x++ {
			r.buf.Paint(x, y, hudPanel, BlendAlpha, 0.85)
		}
	}

	right, bottom := left+infoPanelWidth-1, top+height-1
	for x := left + 1; x < right; x++ {
		r.buf.Glyph(x, top, '─', hudDim, tcell.AttrNone)
		r.buf.Glyph(x, bottom, '─', hudDim, tcell.AttrNone)
	}
	for y := top + 1; y < bottom; y++ {
		r.buf.Glyph(left, y, '│', hudDim, tcell.AttrNone)
		r.buf.Glyph(right, y, '│', hudDim, tcell.AttrNone)
	}
	r.buf.Glyph(left, top, '┌', hudDim, tcell.AttrNone)
	r.buf.Glyph(right, top, '┐', hudDim, tcell.AttrNone)
	r.buf.Glyph(left, bottom, '└', hudDim, tcell.AttrNone)
	r.buf.Glyph(right, bottom, '┘', hudDim, tcell.AttrNone)

	r.buf.Text(left+2, top+1, info.Name, hudAccent, tcell.AttrBold)
	for i, line := range body {
		r.buf.Text(left+2, top+3+i, line, hudText, tcell.AttrNone)
	}
}

// wrap breaks text on spaces into lines of at most width runes
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
