package surface

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Glyphs used for filled cells, from faint to opaque.
var termGlyphs = []rune{'.', ':', '*', 'o', '@'}

// TermSurface paints onto a tcell screen. Surface pixels are scaled down to
// terminal cells by CellWidth x CellHeight.
type TermSurface struct {
	StateStack
	screen     tcell.Screen
	CellWidth  float64
	CellHeight float64
}

// NewTermSurface creates a surface on screen with the given cell size in
// pixels. Non-positive sizes default to 8x16.
func NewTermSurface(screen tcell.Screen, cellWidth, cellHeight float64) *TermSurface {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	return &TermSurface{
		StateStack: NewStateStack(),
		screen:     screen,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
	}
}

// Size returns the screen size in surface pixels.
func (s *TermSurface) Size() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols) * s.CellWidth, float64(rows) * s.CellHeight
}

// Fill sets every cell whose centre lies inside a path circle. A circle
// smaller than a cell still marks the cell holding its centre.
func (s *TermSurface) Fill() {
	clr := s.FillColor()
	if clr.A == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(clr.R>>8), int32(clr.G>>8), int32(clr.B>>8)))
	glyph := s.glyph()
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	for _, a := range s.Path() {
		cx, cy, r := s.Project(a.X, a.Y, a.Radius)

		// Only visible cells are visited, whatever the circle size.
		minCol := cellIndex((cx-r)/s.CellWidth, cols)
		maxCol := cellIndex((cx+r)/s.CellWidth, cols)
		minRow := cellIndex((cy-r)/s.CellHeight, rows)
		maxRow := cellIndex((cy+r)/s.CellHeight, rows)

		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				dx := (float64(col)+0.5)*s.CellWidth - cx
				dy := (float64(row)+0.5)*s.CellHeight - cy
				if dx*dx+dy*dy > r*r {
					continue
				}
				s.screen.SetContent(col, row, glyph, nil, style)
			}
		}

		col, row := int(math.Floor(cx/s.CellWidth)), int(math.Floor(cy/s.CellHeight))
		if col >= 0 && row >= 0 && col < cols && row < rows {
			s.screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

// FillText writes text starting at the cell containing (x, y).
func (s *TermSurface) FillText(text string, x, y float64) {
	px, py, _ := s.Project(x, y, 0)
	col, row := int(math.Floor(px/s.CellWidth)), int(math.Floor(py/s.CellHeight))
	cols, rows := s.screen.Size()
	if row < 0 || row >= rows {
		return
	}
	clr := s.FillColor()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(clr.R>>8), int32(clr.G>>8), int32(clr.B>>8)))
	for _, ch := range text {
		if col >= cols {
			return
		}
		if col >= 0 {
			s.screen.SetContent(col, row, ch, nil, style)
		}
		col++
	}
}

// cellIndex floors a cell coordinate and clamps it to [0, n-1]. Out of range
// values, infinities and NaN never index past the screen.
func cellIndex(v float64, n int) int {
	if n <= 0 || math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= float64(n-1) {
		return n - 1
	}
	return int(math.Floor(v))
}

// glyph picks a rune for the current global alpha.
func (s *TermSurface) glyph() rune {
	alpha := s.Alpha()
	if alpha <= 0 {
		return termGlyphs[0]
	}
	if alpha >= 1 {
		return termGlyphs[len(termGlyphs)-1]
	}
	return termGlyphs[int(alpha*float64(len(termGlyphs)))]
}
