package layout

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedMeasurer 是测试用的测量后端：每个字符宽度固定，便于精确断言。
type fixedMeasurer struct {
	calls int
	err   error
}

func (m *fixedMeasurer) Measure(text, typeface string, size float64) (Size, error) {
	m.calls++
	if m.err != nil {
		return Size{}, m.err
	}
	var w float64
	for _, r := range text {
		w += glyphWidth(r)
	}
	return Size{Width: w, Height: size * 1.2}, nil
}

func glyphWidth(r rune) float64 {
	switch r {
	case ' ', '\u00a0':
		return 4
	case 'i', 'l':
		return 3
	case 'W', 'M':
		return 12
	default:
		return 8
	}
}

var bodyProps = RunProperties{Typeface: "Body", FontSize: 10, Foreground: color.Black}

func testOptions() RunOptions {
	return RunOptions{Measurer: &fixedMeasurer{}}
}

func mustCreate(t *testing.T, src TextSource, index int, opts RunOptions) *TextLineRun {
	t.Helper()
	run, err := CreateRun(src, index, 0, 1000, opts)
	require.NoError(t, err)
	return run
}

// runSlice is a TextSource that returns its runs by position, without the
// control-character splitting RunSource does.
type runSlice []TextRun

func (s runSlice) GetTextRun(index int) TextRun {
	if index < 0 || index >= len(s) {
		return nil
	}
	return s[index]
}

type recordedCall struct {
	op    string
	brush color.Color
	rect  Rect
	at    Point
	text  string
}

type recordingSurface struct {
	calls []recordedCall
}

func (s *recordingSurface) FillRectangle(brush color.Color, rect Rect) {
	s.calls = append(s.calls, recordedCall{op: "fill", brush: brush, rect: rect})
}

func (s *recordingSurface) DrawText(brush color.Color, origin Point, text *FormattedText) {
	s.calls = append(s.calls, recordedCall{op: "text", brush: brush, at: origin, text: text.Text})
}

type testObject struct {
	length int
	width  float64
	drawn  []Point
}

func (o *testObject) Length() int    { return o.length }
func (o *testObject) Width() float64 { return o.width }
func (o *testObject) Draw(_ Surface, p Point) {
	o.drawn = append(o.drawn, p)
}
