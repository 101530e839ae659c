// Package ebitensurface implements surface.Context on an *ebiten.Image.
package ebitensurface

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/sparkle/pkg/surface"
)

// EbitenSurface paints onto an *ebiten.Image.
//
// ebiten hands out the screen image per Draw call, so hosts rebind the target
// with SetTarget before firing emitters. Calls made without a target are
// dropped.
type EbitenSurface struct {
	surface.StateStack
	target        *ebiten.Image
	width, height float64
}

var _ surface.Context = (*EbitenSurface)(nil)

// New creates a surface with the given logical size.
func New(width, height int) *EbitenSurface {
	return &EbitenSurface{
		StateStack: surface.NewStateStack(),
		width:      float64(width),
		height:     float64(height),
	}
}

// SetTarget binds the image subsequent draw calls paint on.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
	if img != nil {
		b := img.Bounds()
		s.width, s.height = float64(b.Dx()), float64(b.Dy())
	}
}

// Size returns the logical surface size.
func (s *EbitenSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Fill paints every arc of the current path as a filled circle.
func (s *EbitenSurface) Fill() {
	if s.target == nil {
		return
	}
	clr := s.FillColor()
	if clr.A == 0 {
		return
	}
	for _, a := range s.Path() {
		cx, cy, r := s.Project(a.X, a.Y, a.Radius)
		vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), clr, true)
	}
}

// FillText draws text with ebiten's debug font. The font setting is ignored.
func (s *EbitenSurface) FillText(text string, x, y float64) {
	if s.target == nil {
		return
	}
	px, py, _ := s.Project(x, y, 0)
	ebitenutil.DebugPrintAt(s.target, text, int(px), int(py))
}
