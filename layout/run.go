package layout

// Ratios that derive a run's baseline and height from its font size.
const (
	baselineRatio = 0.1
	heightRatio   = 1.2
)

// RunKind classifies a TextLineRun. Text is the zero value.
type RunKind int

const (
	RunText RunKind = iota
	RunEnd
	RunTab
	RunEmbedded
)

func (k RunKind) String() string {
	switch k {
	case RunText:
		return "text"
	case RunEnd:
		return "end"
	case RunTab:
		return "tab"
	case RunEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// TextLineRun is a span of a line that is measured, hit-tested and drawn as
// one unit. It is built by CreateRun and never modified afterwards.
type TextLineRun struct {
	kind        RunKind
	text        StringRange
	length      int
	offset      int
	width       float64
	widthBudget float64
	run         TextRun
	glyphWidths []float64
	formatted   *FormattedText
	properties  RunProperties
}

// Kind returns the run classification.
func (r *TextLineRun) Kind() RunKind { return r.kind }

// IsEnd reports whether the run terminates its line.
func (r *TextLineRun) IsEnd() bool { return r.kind == RunEnd }

// IsTab reports whether the run is a tab stop.
func (r *TextLineRun) IsTab() bool { return r.kind == RunTab }

// IsEmbedded reports whether the run hosts an embedded object.
func (r *TextLineRun) IsEmbedded() bool { return r.kind == RunEmbedded }

// StringRange returns the characters the run renders.
func (r *TextLineRun) StringRange() StringRange { return r.text }

// Length is the number of source characters the run consumed.
func (r *TextLineRun) Length() int { return r.length }

// Offset is the run's first character relative to the start of its line.
func (r *TextLineRun) Offset() int { return r.offset }

// Width is the run's total width in device units.
func (r *TextLineRun) Width() float64 { return r.width }

// WidthBudget is the width that was left on the line when the run was created.
func (r *TextLineRun) WidthBudget() float64 { return r.widthBudget }

// TextRun returns the underlying run. It is shared with the source.
func (r *TextLineRun) TextRun() TextRun { return r.run }

// Properties returns the run's formatting.
func (r *TextLineRun) Properties() RunProperties { return r.properties }

// GlyphWidths returns the per-character widths, or nil for end runs.
// The slice is shared; callers must not modify it.
func (r *TextLineRun) GlyphWidths() []float64 { return r.glyphWidths }

// Baseline is the distance from the run's top to its baseline.
func (r *TextLineRun) Baseline() float64 {
	if r.kind == RunEnd {
		return 0
	}
	return r.properties.FontSize * baselineRatio
}

// Height is the run's line height.
func (r *TextLineRun) Height() float64 {
	if r.kind == RunEnd {
		return 0
	}
	return r.properties.FontSize * heightRatio
}

func (r *TextLineRun) String() string {
	return r.kind.String() + "(" + r.text.String() + ")"
}
