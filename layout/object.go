package layout

import "image/color"

// Box is an embedded object drawn as a filled rectangle. It stands for Chars
// source characters.
type Box struct {
	Name  string
	Chars int
	Size  Size
	Fill  color.Color
}

var _ EmbeddedObject = (*Box)(nil)

func (b *Box) Length() int    { return b.Chars }
func (b *Box) Width() float64 { return b.Size.Width }

// Draw fills the box at origin; a box without fill is invisible.
func (b *Box) Draw(s Surface, origin Point) {
	if b.Fill == nil {
		return
	}
	s.FillRectangle(b.Fill, Rect{X: origin.X, Y: origin.Y, Width: b.Size.Width, Height: b.Size.Height})
}
