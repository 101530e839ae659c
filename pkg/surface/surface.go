// Package surface defines the 2D drawing capability particles are painted on
// and provides terminal and recording implementations of it. The ebiten
// implementation lives in package ebitensurface so the simulation never links
// a graphics backend.
//
// The API mirrors a canvas 2D context: transform and alpha state is saved and
// restored as a stack, paths are built with Arc and painted with Fill.
package surface

import (
	"image/color"
	"math"
)

// Context is a 2D drawing surface.
type Context interface {
	// Size returns the surface size in pixels.
	Size() (width, height float64)

	Save()
	Restore()

	SetGlobalAlpha(alpha float64)
	Translate(x, y float64)
	Rotate(radians float64)

	SetFillColor(c color.Color)
	BeginPath()
	// Arc adds a circular arc centred at (x, y) to the current path.
	// Angles are in radians.
	Arc(x, y, radius, startAngle, endAngle float64)
	Fill()

	SetFont(font string)
	FillText(text string, x, y float64)
}

// affine is a 2D affine transform mapping (x, y) to
// (a*x + c*y + tx, b*x + d*y + ty).
type affine struct {
	a, b, c, d, tx, ty float64
}

func identity() affine {
	return affine{a: 1, d: 1}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.tx, m.b*x + m.d*y + m.ty
}

// translate prepends a translation, so it acts in local coordinates.
func (m affine) translate(x, y float64) affine {
	m.tx += m.a*x + m.c*y
	m.ty += m.b*x + m.d*y
	return m
}

// rotate prepends a rotation, so it acts in local coordinates.
func (m affine) rotate(radians float64) affine {
	sin, cos := math.Sincos(radians)
	return affine{
		a:  m.a*cos + m.c*sin,
		b:  m.b*cos + m.d*sin,
		c:  m.c*cos - m.a*sin,
		d:  m.d*cos - m.b*sin,
		tx: m.tx,
		ty: m.ty,
	}
}

func (m affine) scale() float64 {
	return math.Sqrt(math.Abs(m.a*m.d - m.b*m.c))
}

// drawState is the part of the context captured by Save.
type drawState struct {
	geo   affine
	alpha float64
	fill  color.Color
	font  string
}

func defaultState() drawState {
	return drawState{geo: identity(), alpha: 1, fill: color.White, font: "10px sans-serif"}
}

// PathArc is one circle added to the current path by Arc.
type PathArc struct {
	X, Y, Radius float64
}

// StateStack implements the transform, alpha and path bookkeeping shared by
// concrete surfaces. Embed it and add Size, Fill and FillText.
type StateStack struct {
	cur   drawState
	saved []drawState
	path  []PathArc
}

// NewStateStack returns a stack in the default state: identity transform,
// opaque white fill.
func NewStateStack() StateStack {
	return StateStack{cur: defaultState()}
}

func (s *StateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

func (s *StateStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *StateStack) SetGlobalAlpha(alpha float64) {
	s.cur.alpha = alpha
}

// Translate applies a translation in the current local coordinate space.
func (s *StateStack) Translate(x, y float64) {
	s.cur.geo = s.cur.geo.translate(x, y)
}

// Rotate applies a rotation in the current local coordinate space.
func (s *StateStack) Rotate(radians float64) {
	s.cur.geo = s.cur.geo.rotate(radians)
}

func (s *StateStack) SetFillColor(c color.Color) {
	if c == nil {
		c = color.White
	}
	s.cur.fill = c
}

func (s *StateStack) BeginPath() {
	s.path = s.path[:0]
}

func (s *StateStack) Arc(x, y, radius, _, _ float64) {
	s.path = append(s.path, PathArc{X: x, Y: y, Radius: radius})
}

func (s *StateStack) SetFont(font string) {
	s.cur.font = font
}

// Path returns the arcs added since the last BeginPath.
func (s *StateStack) Path() []PathArc {
	return s.path
}

// Alpha returns the current global alpha.
func (s *StateStack) Alpha() float64 {
	return s.cur.alpha
}

// Project maps a local point and length into surface space.
func (s *StateStack) Project(x, y, length float64) (float64, float64, float64) {
	px, py := s.cur.geo.apply(x, y)
	return px, py, length * s.cur.geo.scale()
}

// FillColor returns the current fill colour with the global alpha applied.
func (s *StateStack) FillColor() color.RGBA64 {
	return applyAlpha(s.cur.fill, s.cur.alpha)
}

// applyAlpha scales a colour by alpha, clamped to [0, 1].
func applyAlpha(c color.Color, alpha float64) color.RGBA64 {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	r, g, b, a := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}
