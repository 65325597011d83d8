package layout

import "image/color"

// Surface is the drawing target of a run. A nil brush passed to DrawText
// means the surface's default text color.
type Surface interface {
	FillRectangle(brush color.Color, rect Rect)
	DrawText(brush color.Color, origin Point, text *FormattedText)
}

// Draw paints the run with its top-left corner at (x, y). Embedded runs hand
// drawing to their object; end runs and empty runs draw nothing. A nil
// surface is accepted so measurement-only passes can call Draw freely.
func (r *TextLineRun) Draw(s Surface, x, y float64) {
	if s == nil {
		return
	}
	origin := Point{X: x, Y: y}
	if r.kind == RunEmbedded {
		if er, ok := r.run.(EmbeddedObjectRun); ok && er.Object != nil {
			er.Object.Draw(s, origin)
		}
		return
	}
	if r.kind == RunEnd || r.length == 0 || r.formatted == nil {
		return
	}
	if bg := r.properties.Background; bg != nil {
		s.FillRectangle(bg, Rect{X: x, Y: y, Width: r.formatted.Size.Width, Height: r.formatted.Size.Height})
	}
	s.DrawText(r.properties.Foreground, origin, r.formatted)
}
