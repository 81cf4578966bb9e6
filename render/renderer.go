// Package render draws the simulation into a terminal with software projection
package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/vmath"
)

const (
	HUDRows      = 2
	ambientLight = 0.12
	ringSamples  = 72
	ringBands    = 3
)

// Renderer composes frames for one screen
type Renderer struct {
	screen tcell.Screen
	buf    *Buffer
	width  int
	height int
}

// NewRenderer sizes a buffer to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen, buf: NewBuffer(0, 0)}
	r.Resize()
	return r
}

// Resize re-reads the screen size
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.buf.Resize(r.width, r.height)
}

// Buffer exposes the composed frame
func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Projector returns the projection for the scene viewport above the HUD
func (r *Renderer) Projector(sim *engine.Simulation) Projector {
	return NewProjector(r.width, max(1, r.height-HUDRows), sim.CameraPose())
}

// Render draws and shows one frame
func (r *Renderer) Render(sim *engine.Simulation) {
	r.Draw(sim)
	r.buf.Flush(r.screen)
}

// drawable is one depth-sorted primitive
type drawable struct {
	depth float64
	draw  func()
}

// Draw composes the frame into the buffer without touching the screen
func (r *Renderer) Draw(sim *engine.Simulation) {
	r.buf.Clear()
	pr := r.Projector(sim)
	w := sim.World
	st := sim.State

	r.drawStars(pr, w.Stars)
	if st.ShowOrbits {
		r.drawOrbits(pr, w.Orbits)
	}

	var items []drawable
	items = r.collectSun(pr, &w.Sun, items)
	for i := range w.Planets {
		items = r.collectPlanet(pr, &w.Planets[i], w.Planets[i].Desc.Name == st.Selected, st.Time, items)
	}
	for i := range w.Asteroids {
		items = r.collectAsteroid(pr, &w.Asteroids[i], items)
	}
	if st.ShowComets {
		for i := range w.Comets {
			r.drawTrail(pr, &w.Comets[i])
			items = r.collectComet(pr, &w.Comets[i], items)
		}
	}

	// Painter's algorithm: far to near
	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw()
	}

	r.drawHUD(sim)
}

func (r *Renderer) drawStars(pr Projector, stars []engine.Star) {
	for i := range stars {
		s := &stars[i]
		p, ok := pr.Project(s.Position)
		if !ok || !pr.Inside(p) {
			continue
		}
		c := colorful.Color{R: s.R, G: s.G, B: s.B}
		glyph := '.'
		if s.B < 0.9 {
			glyph = '·'
		}
		r.buf.Glyph(int(p.X), int(p.Y), glyph, Scale(c, 0.7), tcell.AttrNone)
	}
}

func (r *Renderer) drawOrbits(pr Projector, orbits []engine.OrbitGuide) {
	for _, o := range orbits {
		color := Fade(Hex(o.Color), 1-o.Opacity*2)
		var prev Projected
		havePrev := false
		for _, pt := range o.Points {
			p, ok := pr.Project(pt)
			if !ok {
				havePrev = false
				continue
			}
			if havePrev && (pr.Inside(p) || pr.Inside(prev)) {
				r.buf.Line(int(prev.X), int(prev.Y), int(p.X), int(p.Y), '·', color)
			}
			prev, havePrev = p, true
		}
	}
}

func (r *Renderer) drawTrail(pr Projector, c *engine.CometInstance) {
	base := Hex(c.Desc.Color)
	for i := engine.TrailLength - 1; i > 0; i-- {
		a, okA := pr.Project(c.Trail[i])
		b, okB := pr.Project(c.Trail[i-1])
		if !okA || !okB || (!pr.Inside(a) && !pr.Inside(b)) {
			continue
		}
		fade := float64(i) / engine.TrailLength
		glyph := '*'
		if fade > 0.5 {
			glyph = '·'
		}
		r.buf.Line(int(a.X), int(a.Y), int(b.X), int(b.Y), glyph, Fade(base, fade*0.9))
	}
}

// sphere describes one shaded ball
type sphere struct {
	center    Projected
	radius    float64 // Rows
	color     colorful.Color
	emissive  float64
	selfLit   bool
	light     vmath.Vec3F // View-space unit vector toward the sun
	glow      colorful.Color
	glowAlpha float64
	glowScale float64 // Outer glow radius as a multiple of radius, 0 for none
	selected  bool
	pulse     float64
}

func (r *Renderer) collectSun(pr Projector, sun *engine.Sun, items []drawable) []drawable {
	p, ok := pr.Project(vmath.Vec3F{})
	if !ok {
		return items
	}
	glowScale := 1.0
	glowAlpha := 0.0
	for _, layer := range sun.Corona {
		glowScale = math.Max(glowScale, layer.Radius/sun.Radius)
		glowAlpha += layer.Opacity
	}
	s := sphere{
		center:    p,
		radius:    pr.Radius(sun.Radius, p.Depth),
		color:     Hex(sun.Color).BlendRgb(Hex(sun.Glow), 0.3),
		emissive:  sun.Emissive,
		selfLit:   true,
		glow:      Hex(sun.Glow),
		glowAlpha: math.Min(1, glowAlpha*sun.Light/engine.SunLight),
		glowScale: glowScale,
	}
	return append(items, drawable{depth: p.Depth, draw: func() { r.drawSphere(s) }})
}

func (r *Renderer) collectPlanet(pr Projector, pl *engine.PlanetInstance, selected bool, t float64, items []drawable) []drawable {
	p, ok := pr.Project(pl.Position)
	if !ok {
		return items
	}
	s := sphere{
		center:   p,
		radius:   pr.Radius(pl.Radius(), p.Depth),
		color:    Hex(pl.Desc.Color),
		emissive: pl.Emissive,
		light:    pr.viewDir(vmath.V3FNormalize(vmath.V3F(-pl.Position.X, -pl.Position.Y, -pl.Position.Z))),
		selected: selected,
		pulse:    0.5 + 0.5*math.Sin(t*10),
	}
	if pl.Atmosphere != nil {
		s.glow = Hex(pl.Atmosphere.Color)
		s.glowAlpha = pl.Atmosphere.Opacity * 3
		s.glowScale = pl.Atmosphere.Radius / pl.Desc.Size * 1.3
	}
	items = append(items, drawable{depth: p.Depth, draw: func() { r.drawSphere(s) }})

	if pl.Ring != nil {
		items = r.collectRing(pr, pl, p.Depth, items)
	}
	if mp, ok := pl.MoonPosition(); ok {
		if m, ok := pr.Project(mp); ok {
			ms := sphere{
				center: m,
				radius: pr.Radius(pl.Moon.Radius*pl.Scale, m.Depth),
				color:  Hex(pl.Moon.Color),
				light:  pr.viewDir(vmath.V3FNormalize(vmath.V3F(-mp.X, -mp.Y, -mp.Z))),
			}
			items = append(items, drawable{depth: m.Depth, draw: func() { r.drawSphere(ms) }})
		}
	}
	return items
}

// collectRing splits the ring into the half behind and the half in front of the planet
// Ring points follow the planet tilt
func (r *Renderer) collectRing(pr Projector, pl *engine.PlanetInstance, depth float64, items []drawable) []drawable {
	var back, front []Projected
	ring := pl.Ring
	for band := 0; band < ringBands; band++ {
		radius := (ring.Inner + (ring.Outer-ring.Inner)*(float64(band)+0.5)/ringBands) * pl.Scale
		for k := 0; k < ringSamples; k++ {
			off := vmath.OrbitPoint(float64(k)/ringSamples*vmath.TwoPi, radius, 0)
			p, ok := pr.Project(pl.LocalToWorld(off))
			if !ok || !pr.Inside(p) {
				continue
			}
			if p.Depth > depth {
				back = append(back, p)
			} else {
				front = append(front, p)
			}
		}
	}
	color := Fade(Hex(ring.Color), 1-ring.Opacity)
	plot := func(pts []Projected) func() {
		return func() {
			for _, p := range pts {
				r.buf.Glyph(int(p.X), int(p.Y), '-', color, tcell.AttrNone)
			}
		}
	}
	span := ring.Outer * pl.Scale
	items = append(items, drawable{depth: depth + span, draw: plot(back)})
	return append(items, drawable{depth: depth - span, draw: plot(front)})
}

func (r *Renderer) collectAsteroid(pr Projector, a *engine.AsteroidInstance, items []drawable) []drawable {
	p, ok := pr.Project(a.Position)
	if !ok || !pr.Inside(p) {
		return items
	}
	color := Hex(engine.AsteroidColor)
	glyph := '.'
	if pr.Radius(a.Size, p.Depth) > 0.25 {
		glyph = '•'
	}
	x, y := int(p.X), int(p.Y)
	return append(items, drawable{depth: p.Depth, draw: func() {
		r.buf.Glyph(x, y, glyph, color, tcell.AttrNone)
	}})
}

func (r *Renderer) collectComet(pr Projector, c *engine.CometInstance, items []drawable) []drawable {
	p, ok := pr.Project(c.Position)
	if !ok {
		return items
	}
	coma := sphere{
		center:    p,
		radius:    pr.Radius(engine.NucleusRadius, p.Depth),
		color:     Hex(engine.NucleusColor),
		emissive:  0.3,
		light:     pr.viewDir(vmath.V3F(-c.Heading.X, -c.Heading.Y, -c.Heading.Z)),
		glow:      Hex(c.Desc.Color),
		glowAlpha: 0.3,
		glowScale: engine.ComaRadius * c.ComaScale / engine.NucleusRadius,
	}
	return append(items, drawable{depth: p.Depth, draw: func() { r.drawSphere(coma) }})
}

// viewDir rotates a world direction into camera space
func (pr Projector) viewDir(d vmath.Vec3F) vmath.Vec3F {
	return pr.basis.ToView(vmath.Vec3F{}, d)
}

// drawSphere shades a ball cell by cell, with optional glow halo and selection ring
func (r *Renderer) drawSphere(s sphere) {
	if s.radius*cellAspect < 0.5 {
		// Sub-cell: a single glyph
		color := s.color
		if s.selfLit {
			color = Scale(color, math.Max(1, s.emissive))
		}
		if s.selected {
			color = Combine(color, colorful.Color{R: 1, G: 1, B: 1}, BlendScreen, s.pulse*0.6)
		}
		r.buf.Glyph(int(s.center.X), int(s.center.Y), '●', color, tcell.AttrBold)
		return
	}

	extent := math.Max(1, s.glowScale)
	if s.selected {
		extent = math.Max(extent, 1.3)
	}
	minX := int(s.center.X - s.radius*cellAspect*extent - 1)
	maxX := int(s.center.X + s.radius*cellAspect*extent + 1)
	minY := int(s.center.Y - s.radius*extent - 1)
	maxY := int(s.center.Y + s.radius*extent + 1)
	w, h := r.buf.Bounds()
	minX, minY = max(0, minX), max(0, minY)
	maxX, maxY = min(w-1, maxX), min(h-HUDRows-1, maxY)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - s.center.X) / (s.radius * cellAspect)
			ny := (float64(y) + 0.5 - s.center.Y) / s.radius
			d2 := nx*nx + ny*ny
			d := math.Sqrt(d2)

			if d <= 1 {
				r.buf.Paint(x, y, s.shade(nx, ny, d2), BlendReplace, 1)
			} else if s.glowScale > 1 && d < s.glowScale {
				falloff := 1 - (d-1)/(s.glowScale-1)
				r.buf.Paint(x, y, s.glow, BlendScreen, s.glowAlpha*falloff*falloff)
			}

			if s.selected && d > 1 && d <= 1.3 {
				r.buf.Paint(x, y, colorful.Color{R: 1, G: 1, B: 0.8}, BlendScreen, 0.3+0.4*s.pulse)
			}
		}
	}
}

// shade computes the surface color at normalized disc offset nx, ny
func (s sphere) shade(nx, ny, d2 float64) colorful.Color {
	nz := math.Sqrt(math.Max(0, 1-d2))
	if s.selfLit {
		// Limb darkening toward the rim
		limb := 0.55 + 0.45*nz
		return Scale(s.color, limb*(0.6+0.4*s.emissive))
	}
	// Surface normal in view space points back at the camera
	n := vmath.V3F(nx, -ny, -nz)
	lambert := math.Max(0, n.X*s.light.X+n.Y*s.light.Y+n.Z*s.light.Z)
	intensity := ambientLight + (1-ambientLight)*lambert + s.emissive
	return Scale(s.color, intensity)
}

// PickRay returns the world ray under cell x, y for the current camera
func (r *Renderer) PickRay(sim *engine.Simulation, x, y int) vmath.Ray {
	return r.Projector(sim).Ray(x, y)
}

// PointerAt converts a cell to normalized pointer coordinates
func (r *Renderer) PointerAt(sim *engine.Simulation, x, y int) (float64, float64) {
	return r.Projector(sim).Pointer(x, y)
}
