package layout

import (
	"fmt"
	"math"
)

// TextLine is a sequence of runs ending in an end run, at the wrap width, or
// at the end of the source.
type TextLine struct {
	runs       []*TextLineRun
	firstIndex int
	length     int
	width      float64
	trailing   TrailingInfo
}

// FormatLine builds the line that starts at firstIndex by creating runs until
// an end run, the end of the source, or opts.WrapWidth is reached.
func FormatLine(source TextSource, firstIndex int, opts RunOptions) (*TextLine, error) {
	line := &TextLine{firstIndex: firstIndex}
	index := firstIndex
	for source.GetTextRun(index) != nil {
		widthLeft := math.Inf(1)
		if opts.WrapWidth > 0 {
			widthLeft = opts.WrapWidth - line.width
		}
		run, err := CreateRun(source, index, firstIndex, widthLeft, opts)
		if err != nil {
			return nil, fmt.Errorf("format line at %d: %w", firstIndex, err)
		}
		line.runs = append(line.runs, run)
		line.length += run.Length()
		line.width += run.Width()
		index += run.Length()
		if run.IsEnd() || run.Length() == 0 {
			break
		}
		if opts.WrapWidth > 0 && line.width >= opts.WrapWidth {
			break
		}
	}
	if len(line.runs) == 0 {
		return nil, fmt.Errorf("format line at %d: %w", firstIndex, ErrSourceExhausted)
	}
	for i := len(line.runs) - 1; i >= 0; i-- {
		if !line.runs[i].UpdateTrailingInfo(&line.trailing) {
			break
		}
	}
	return line, nil
}

// FormatParagraph formats lines from the start of source until it is exhausted.
func FormatParagraph(source TextSource, opts RunOptions) ([]*TextLine, error) {
	var lines []*TextLine
	index := 0
	for source.GetTextRun(index) != nil {
		line, err := FormatLine(source, index, opts)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		if line.length == 0 {
			break
		}
		index += line.length
	}
	return lines, nil
}

// Runs returns the line's runs in visual order.
func (l *TextLine) Runs() []*TextLineRun { return l.runs }

// FirstIndex is the source index of the line's first character.
func (l *TextLine) FirstIndex() int { return l.firstIndex }

// Length is the number of source characters on the line, line break included.
func (l *TextLine) Length() int { return l.length }

// Width is the sum of the run widths.
func (l *TextLine) Width() float64 { return l.width }

// Trailing returns the whitespace found at the end of the line.
func (l *TextLine) Trailing() TrailingInfo { return l.trailing }

// WidthWithoutTrailing is Width minus the trailing whitespace.
func (l *TextLine) WidthWithoutTrailing() float64 { return l.width - l.trailing.Width }

// Height is the tallest run height.
func (l *TextLine) Height() float64 {
	var h float64
	for _, r := range l.runs {
		h = math.Max(h, r.Height())
	}
	return h
}

// Baseline is the deepest run baseline.
func (l *TextLine) Baseline() float64 {
	var b float64
	for _, r := range l.runs {
		b = math.Max(b, r.Baseline())
	}
	return b
}

// DistanceFromCharacter returns the x offset of the source character index
// from the line's leading edge.
func (l *TextLine) DistanceFromCharacter(index int) float64 {
	local := index - l.firstIndex
	var x float64
	for i, run := range l.runs {
		if local < run.Length() || i == len(l.runs)-1 {
			return x + run.DistanceFromCharacter(local)
		}
		local -= run.Length()
		x += run.Width()
	}
	return 0
}

// CharacterFromDistance returns the source index of the character under x
// and whether x lies on its trailing half.
func (l *TextLine) CharacterFromDistance(x float64) (index, trailing int) {
	for i, run := range l.runs {
		if x < run.Width() || run.IsEnd() || i == len(l.runs)-1 {
			idx, tr := run.CharacterFromDistance(x)
			return l.firstIndex + run.Offset() + idx, tr
		}
		x -= run.Width()
	}
	return l.firstIndex, 0
}

// Draw paints the runs left to right from (x, y), aligning their baselines.
func (l *TextLine) Draw(s Surface, x, y float64) {
	if s == nil {
		return
	}
	baseline := l.Baseline()
	for _, run := range l.runs {
		run.Draw(s, x, y+baseline-run.Baseline())
		x += run.Width()
	}
}
