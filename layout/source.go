package layout

import "sort"

// StringRange is a read-only view into a shared character buffer.
// It never copies or owns the buffer.
type StringRange struct {
	buf    []rune
	offset int
	length int
}

// NewStringRange returns a view of length characters of buf starting at offset.
// Out-of-range bounds are clamped to the buffer.
func NewStringRange(buf []rune, offset, length int) StringRange {
	offset = clamp(offset, 0, len(buf))
	length = clamp(length, 0, len(buf)-offset)
	return StringRange{buf: buf, offset: offset, length: length}
}

// StringRangeOf wraps s in a fresh buffer.
func StringRangeOf(s string) StringRange {
	buf := []rune(s)
	return StringRange{buf: buf, length: len(buf)}
}

// Len returns the number of characters in the view.
func (s StringRange) Len() int { return s.length }

// At returns the character at index i of the view.
func (s StringRange) At(i int) rune { return s.buf[s.offset+i] }

// Slice returns the sub-view [start, start+length), clamped to this view.
func (s StringRange) Slice(start, length int) StringRange {
	start = clamp(start, 0, s.length)
	length = clamp(length, 0, s.length-start)
	return StringRange{buf: s.buf, offset: s.offset + start, length: length}
}

// WithLength returns the view truncated (or kept) to at most length characters.
func (s StringRange) WithLength(length int) StringRange { return s.Slice(0, length) }

func (s StringRange) String() string {
	if s.length == 0 {
		return ""
	}
	return string(s.buf[s.offset : s.offset+s.length])
}

// TextRun is one run yielded by a TextSource. The set of variants is closed:
// CharactersRun, EndOfLineRun and EmbeddedObjectRun.
type TextRun interface {
	// Len reports how many source characters the run covers.
	Len() int
	// StringRange returns the characters of the run; empty for runs that
	// carry no text.
	StringRange() StringRange

	textRun()
}

// CharactersRun is a span of plain text with one set of formatting properties.
type CharactersRun struct {
	Text       StringRange
	Properties RunProperties
}

// EndOfLineRun marks the end of a line. Length may be zero.
type EndOfLineRun struct {
	Length     int
	Properties RunProperties
}

// EmbeddedObjectRun hosts a non-text element inside the line.
type EmbeddedObjectRun struct {
	Object     EmbeddedObject
	Properties RunProperties
}

// EmbeddedObject is an externally drawn element. It reports how many source
// characters it stands for and its own total width.
type EmbeddedObject interface {
	Length() int
	Width() float64
	Draw(s Surface, origin Point)
}

// NewCharacters is a convenience constructor for a CharactersRun over s.
func NewCharacters(s string, props RunProperties) CharactersRun {
	return CharactersRun{Text: StringRangeOf(s), Properties: props}
}

func (r CharactersRun) Len() int                 { return r.Text.Len() }
func (r CharactersRun) StringRange() StringRange { return r.Text }
func (CharactersRun) textRun()                   {}

func (r EndOfLineRun) Len() int               { return r.Length }
func (EndOfLineRun) StringRange() StringRange { return StringRange{} }
func (EndOfLineRun) textRun()                 {}

func (r EmbeddedObjectRun) Len() int {
	if r.Object == nil {
		return 0
	}
	return r.Object.Length()
}
func (EmbeddedObjectRun) StringRange() StringRange { return StringRange{} }
func (EmbeddedObjectRun) textRun()                 {}

// TextSource yields the run that starts at a character index.
// GetTextRun returns nil once index is past the end of the source.
type TextSource interface {
	GetTextRun(index int) TextRun
}

// RunSource is an in-memory TextSource over a fixed run sequence.
type RunSource struct {
	runs   []TextRun
	starts []int
	length int
}

// NewRunSource concatenates runs into one character-indexed source.
// Zero-length runs cannot be addressed by index and are dropped.
func NewRunSource(runs ...TextRun) *RunSource {
	src := &RunSource{}
	for _, r := range runs {
		if r == nil || r.Len() == 0 {
			continue
		}
		src.runs = append(src.runs, r)
		src.starts = append(src.starts, src.length)
		src.length += r.Len()
	}
	return src
}

// Len returns the total character count of the source.
func (s *RunSource) Len() int { return s.length }

// GetTextRun returns the run covering index as a view beginning at index.
// Character views stop at the next tab or line break so the classifier only
// ever sees control characters at the start of a run. Embedded objects are
// atomic: they are only addressable at their first character, and an index
// inside one yields nil.
func (s *RunSource) GetTextRun(index int) TextRun {
	if index < 0 || index >= s.length {
		return nil
	}
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > index }) - 1
	run := s.runs[i]
	local := index - s.starts[i]
	switch r := run.(type) {
	case CharactersRun:
		view := r.Text.Slice(local, r.Text.Len()-local)
		return CharactersRun{Text: view.WithLength(controlSpan(view)), Properties: r.Properties}
	case EndOfLineRun:
		if local == 0 {
			return r
		}
		return EndOfLineRun{Length: r.Length - local, Properties: r.Properties}
	default:
		if local != 0 {
			return nil
		}
		return run
	}
}

// controlSpan returns how many characters of view form one source run.
func controlSpan(view StringRange) int {
	n := view.Len()
	if n == 0 {
		return 0
	}
	switch view.At(0) {
	case '\r':
		if n > 1 && view.At(1) == '\n' {
			return 2
		}
		return 1
	case '\n', '\t':
		return 1
	}
	for i := 1; i < n; i++ {
		switch view.At(i) {
		case '\r', '\n', '\t':
			return i
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
