package canvasrenderer

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"

	"github.com/chenjing1294/AvaloniaEdit/dsl"
	"github.com/chenjing1294/AvaloniaEdit/fonts"
	"github.com/chenjing1294/AvaloniaEdit/layout"
)

var body = layout.FontResource{Name: "Body", Src: "embed:lmsans10-regular"}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(".")
	require.NoError(t, r.RegisterFont(body))
	return r
}

func TestMeasureIsAdditiveAndScales(t *testing.T) {
	r := newTestRenderer(t)

	hello, err := r.Measure("hello", "Body", 16)
	require.NoError(t, err)
	assert.Greater(t, hello.Width, 0.0)
	assert.Greater(t, hello.Height, 0.0)

	he, err := r.Measure("he", "Body", 16)
	require.NoError(t, err)
	llo, err := r.Measure("llo", "Body", 16)
	require.NoError(t, err)
	assert.InDelta(t, hello.Width, he.Width+llo.Width, 1.0, "宽度近似可加")

	big, err := r.Measure("hello", "Body", 32)
	require.NoError(t, err)
	assert.InDelta(t, 2*hello.Width, big.Width, 1e-3)
}

func TestMeasureDPIIndependentInPhysicalUnits(t *testing.T) {
	low := NewRendererWithOptions(Options{DPI: 96})
	high := NewRendererWithOptions(Options{DPI: 192})
	require.NoError(t, low.RegisterFont(body))
	require.NoError(t, high.RegisterFont(body))

	a, err := low.Measure("Width", "Body", 16)
	require.NoError(t, err)
	b, err := high.Measure("Width", "Body", 32)
	require.NoError(t, err)
	// 同一物理字号在两倍 DPI 下设备宽度翻倍
	assert.InDelta(t, 2*a.Width, b.Width, 1e-3)
}

func TestRegisterFontFallsBack(t *testing.T) {
	r := NewRenderer("")
	require.NoError(t, r.RegisterFont(layout.FontResource{Name: "Missing", Src: "embed:nope"}))
	require.NoError(t, r.RegisterFont(layout.FontResource{Name: "Path", Src: "relative.ttf"}))

	got, err := r.Measure("abc", "Missing", 16)
	require.NoError(t, err)
	want, err := r.Measure("abc", "Path", 16)
	require.NoError(t, err)
	assert.Equal(t, want, got, "都应落到同一个回退字体")

	assert.Error(t, r.RegisterFont(layout.FontResource{}))
}

func TestBuiltInFontBlobs(t *testing.T) {
	data, err := fonts.Load("lmmono10-regular")
	require.NoError(t, err)
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"mono": {Bytes: data}}})
	require.NoError(t, r.RegisterFont(layout.FontResource{Name: "Mono", Src: "built-in:mono"}))

	i, err := r.Measure("i", "Mono", 16)
	require.NoError(t, err)
	m, err := r.Measure("M", "Mono", 16)
	require.NoError(t, err)
	assert.InDelta(t, i.Width, m.Width, 1e-6, "等宽字体")

	_, err = r.loadFontBytes(layout.FontResource{Name: "X", Src: "built-in:absent"})
	assert.Error(t, err)
}

func TestParseFontStyle(t *testing.T) {
	tests := []struct {
		in   string
		want canvas.FontStyle
	}{
		{"", canvas.FontRegular},
		{"lmsans10-regular", canvas.FontRegular},
		{"lmsans10-bold", canvas.FontBold},
		{"lmsans10-oblique", canvas.FontRegular | canvas.FontItalic},
		{"lmroman10-bolditalic", canvas.FontBold | canvas.FontItalic},
		{"Serif-SemiBold.ttf", canvas.FontSemiBold},
		{"Inter-Light.ttf", canvas.FontLight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseFontStyle(tt.in), tt.in)
	}
}

func TestSurfaceFallsBackWithoutFonts(t *testing.T) {
	r := NewRenderer("")
	c := canvas.New(100, 100)
	s := r.Surface(canvas.NewContext(c))
	s.FillRectangle(color.Black, layout.Rect{Width: 10, Height: 10})
	s.DrawText(nil, layout.Point{}, &layout.FormattedText{Text: "x", Typeface: "Body", FontSize: 16})
	assert.NoError(t, s.Err(), "未注册字体时回退到内置字体")
}

const script = `doc Demo v1 {
  resources {
    font Body { src: "embed:lmsans10-regular" }
  }
  paragraph width 200px {
    text Body size 12pt background #eee { "Hello\tworld  " }
    eol
    eol
    object Logo width 20px height 10px color #f00
    text Body { "after" }
  }
}`

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(".")
	doc, err := dsl.ParseString(script)
	require.NoError(t, err)
	res, err := layout.Build(doc, nil, layout.BuildOptions{Measurer: r, DPI: r.DPI()})
	require.NoError(t, err)
	require.NotEmpty(t, res.Lines())

	for _, line := range res.Lines() {
		for _, run := range line.Runs() {
			if run.IsTab() {
				assert.Equal(t, float64(layout.DefaultTabWidth), run.Width())
			}
		}
		assert.False(t, math.IsNaN(line.Width()))
	}

	out, err := r.Render(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "输出应为 PDF")

	_, err = r.Render(nil)
	assert.Error(t, err)
	_, err = r.Render(&layout.Result{})
	assert.Error(t, err)
}

func TestLineAdvanceFallsBackForBlankLines(t *testing.T) {
	src := layout.NewRunSource(layout.NewCharacters("\n", layout.RunProperties{Typeface: "Body", FontSize: 20}))
	line, err := layout.FormatLine(src, 0, layout.RunOptions{Measurer: newTestRenderer(t)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, line.Height())
	assert.InDelta(t, 24.0, lineAdvance(line), 1e-9)
}
