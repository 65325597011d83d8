package layout

import "fmt"

// CreateRun classifies the run that source yields at index and measures it.
//
// firstIndex is the index of the line's first character and widthLeft the
// width still available on the line. Runs starting with a line break or a tab
// never reach the text measurer. A lone "\r" whose following run starts with
// "\n" is merged into one two-character end run.
func CreateRun(source TextSource, index, firstIndex int, widthLeft float64, opts RunOptions) (*TextLineRun, error) {
	textRun := source.GetTextRun(index)
	if textRun == nil {
		return nil, fmt.Errorf("create run at %d: %w", index, ErrSourceExhausted)
	}

	var (
		run *TextLineRun
		err error
	)
	switch tr := textRun.(type) {
	case CharactersRun:
		run, err = createCharactersRun(source, index, tr, widthLeft, opts)
	case EndOfLineRun:
		run = &TextLineRun{kind: RunEnd, length: tr.Length, run: tr, properties: tr.Properties}
	case EmbeddedObjectRun:
		run = createEmbeddedRun(tr)
	default:
		return nil, &UnsupportedRunKindError{Index: index, Run: textRun}
	}
	if err != nil {
		return nil, fmt.Errorf("create run at %d: %w", index, err)
	}
	run.offset = index - firstIndex
	run.widthBudget = widthLeft
	return run, nil
}

func createCharactersRun(source TextSource, index int, tr CharactersRun, widthLeft float64, opts RunOptions) (*TextLineRun, error) {
	text := tr.Text
	if text.Len() == 0 {
		return measureText(text, tr, widthLeft, opts)
	}
	switch text.At(0) {
	case '\r':
		if text.Len() > 1 && text.At(1) == '\n' {
			return newEndRun(text.WithLength(2), tr), nil
		}
		if text.Len() == 1 {
			// CRLF split across two source runs
			if next, ok := source.GetTextRun(index + 1).(CharactersRun); ok && next.Text.Len() > 0 && next.Text.At(0) == '\n' {
				merged := CharactersRun{Text: StringRangeOf("\r\n"), Properties: tr.Properties}
				return newEndRun(merged.Text, merged), nil
			}
		}
		return newEndRun(text.WithLength(1), tr), nil
	case '\n':
		return newEndRun(text.WithLength(1), tr), nil
	case '\t':
		return createTabRun(tr, widthLeft, opts)
	default:
		return measureText(text, tr, widthLeft, opts)
	}
}

func newEndRun(text StringRange, tr CharactersRun) *TextLineRun {
	return &TextLineRun{
		kind:       RunEnd,
		text:       text,
		length:     text.Len(),
		run:        tr,
		properties: tr.Properties,
	}
}

// createTabRun measures a single space in the tab's formatting and gives the
// run the fixed tab width.
func createTabRun(tr CharactersRun, widthLeft float64, opts RunOptions) (*TextLineRun, error) {
	space := CharactersRun{Text: StringRangeOf(" "), Properties: tr.Properties}
	run, err := measureText(space.Text, space, widthLeft, opts)
	if err != nil {
		return nil, err
	}
	run.kind = RunTab
	run.width = opts.tabWidth()
	run.formatted.Size.Width = run.width
	return run, nil
}

func createEmbeddedRun(tr EmbeddedObjectRun) *TextLineRun {
	n := tr.Len()
	run := &TextLineRun{
		kind:        RunEmbedded,
		length:      n,
		run:         tr,
		glyphWidths: make([]float64, n),
		properties:  tr.Properties,
	}
	if tr.Object != nil {
		run.width = tr.Object.Width()
	}
	return run
}
