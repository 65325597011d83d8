package layout

import (
	"fmt"
	"math"
)

// measureText builds a plain text run over text. The whole string is measured
// once for the run size, then every character separately for the glyph
// widths, rounded to whole device units.
func measureText(text StringRange, tr CharactersRun, widthBudget float64, opts RunOptions) (*TextLineRun, error) {
	if opts.Measurer == nil {
		return nil, ErrNoMeasurer
	}
	props := tr.Properties
	content := text.String()
	size, err := opts.Measurer.Measure(content, props.Typeface, props.FontSize)
	if err != nil {
		return nil, fmt.Errorf("measure %q: %w", content, err)
	}

	widths := make([]float64, text.Len())
	for i := range widths {
		ch := string(text.At(i))
		glyph, err := opts.Measurer.Measure(ch, props.Typeface, props.FontSize)
		if err != nil {
			return nil, fmt.Errorf("measure glyph %q: %w", ch, err)
		}
		widths[i] = math.Round(glyph.Width)
	}

	return &TextLineRun{
		kind:        RunText,
		text:        text,
		length:      text.Len(),
		width:       size.Width,
		widthBudget: widthBudget,
		run:         tr,
		glyphWidths: widths,
		properties:  props,
		formatted: &FormattedText{
			Text:     content,
			Typeface: props.Typeface,
			FontSize: props.FontSize,
			Size:     size,
		},
	}, nil
}
