// Package cell measures text on a fixed character grid, the way a terminal
// lays it out: narrow characters take one cell, East Asian wide characters
// and emoji take two.
package cell

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/chenjing1294/AvaloniaEdit/layout"
)

// Measurer implements layout.Measurer on a cell grid. Widths are multiples
// of CellWidth; with a whole-number CellWidth (the derived default always is)
// glyph rounding never changes them.
type Measurer struct {
	// CellWidth is the width of one cell in device units; <= 0 means half
	// the font size, rounded to a whole unit (at least 1).
	CellWidth float64
	// CellHeight is the line height in device units; <= 0 means 1.2 times
	// the font size.
	CellHeight float64
}

var _ layout.Measurer = Measurer{}

// Measure returns the grid size of text. The typeface is ignored.
func (m Measurer) Measure(text, _ string, size float64) (layout.Size, error) {
	w := m.CellWidth
	if w <= 0 {
		w = math.Max(1, math.Round(size/2))
	}
	h := m.CellHeight
	if h <= 0 {
		h = size * 1.2
	}
	return layout.Size{Width: float64(Cells(text)) * w, Height: h}, nil
}

// Cells is the number of grid cells text occupies.
func Cells(text string) int {
	return runewidth.StringWidth(text)
}
