package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/chenjing1294/AvaloniaEdit/fonts"
	"github.com/chenjing1294/AvaloniaEdit/layout"
	"github.com/chenjing1294/AvaloniaEdit/renderer"
)

// DefaultMargin is the page margin in device units.
const DefaultMargin = 24

// Renderer measures and draws text runs via github.com/tdewolff/canvas.
// Layout works in device units (pixels at DPI); canvas works in millimetres
// and font sizes in points, so every call crosses that boundary here.
type Renderer struct {
	baseDir string
	dpi     float64
	margin  float64
	logger  *slog.Logger

	// injected resources
	fontBlobs map[string][]byte // by unique name

	fontMu         sync.Mutex
	fonts          map[string]layout.FontResource // by typeface name
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer    = (*Renderer)(nil)
	_ layout.Measurer      = (*Renderer)(nil)
	_ layout.FontRegistrar = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	// DPI maps device units to physical size; <= 0 means layout.DefaultDPI.
	DPI float64
	// Margin around the text block in device units; < 0 means none,
	// 0 means DefaultMargin.
	Margin float64
	Fonts  map[string]Resource // built-in fonts accessible via built-in:<name>
	Logger *slog.Logger
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		dpi:          opts.DPI,
		margin:       opts.Margin,
		logger:       opts.Logger,
		fontBlobs:    map[string][]byte{},
		fonts:        map[string]layout.FontResource{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	if r.dpi <= 0 {
		r.dpi = layout.DefaultDPI
	}
	switch {
	case r.margin == 0:
		r.margin = DefaultMargin
	case r.margin < 0:
		r.margin = 0
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	// ingest fonts; last one wins
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				r.logger.Warn("skip built-in font", "name", name, "path", res.Path, "err", err)
				continue
			}
			r.fontBlobs[name] = data
		}
	}
	return r
}

// DPI returns the resolution the renderer converts device units with.
func (r *Renderer) DPI() float64 { return r.dpi }

// RegisterFont 实现 layout.FontRegistrar：记录字体资源并立即加载，
// 加载失败时回退到内置字体并记录警告。
func (r *Renderer) RegisterFont(font layout.FontResource) error {
	if font.Name == "" {
		return fmt.Errorf("字体缺少名称")
	}
	r.fontMu.Lock()
	r.fonts[font.Name] = font
	r.fontMu.Unlock()
	_, _, err := r.ensureFontFamily(font)
	return err
}

// Measure 实现 layout.Measurer。size 为设备单位（像素），返回值同样为设备单位。
func (r *Renderer) Measure(text, typeface string, size float64) (layout.Size, error) {
	face, err := r.fontFace(r.resolveFont(typeface), layout.DeviceToPT(size, r.dpi), color.Black)
	if err != nil {
		return layout.Size{}, err
	}
	height := r.toDevice(face.Metrics().LineHeight)
	if height <= 0 {
		height = size * 1.2
	}
	return layout.Size{Width: r.toDevice(face.TextWidth(text)), Height: height}, nil
}

// Render renders every line of the result top to bottom on a single PDF page
// sized to fit the text block plus margins.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	lines := result.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("缺少可渲染的行")
	}

	var blockWidth, blockHeight float64
	for _, line := range lines {
		blockWidth = math.Max(blockWidth, line.Width())
		blockHeight += lineAdvance(line)
	}
	width := r.toMM(blockWidth + 2*r.margin)
	height := r.toMM(blockHeight + 2*r.margin)

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	writer.SetInfo(result.Name, "", "", "", "textline")

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	surface := r.Surface(ctx)
	y := r.margin
	for _, line := range lines {
		line.Draw(surface, r.margin, y)
		y += lineAdvance(line)
	}
	if surface.err != nil {
		return nil, surface.err
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// lineAdvance is the vertical space a line takes. A line holding only a line
// break has no measured height, so it falls back to its font size.
func lineAdvance(line *layout.TextLine) float64 {
	if h := line.Height(); h > 0 {
		return h
	}
	for _, run := range line.Runs() {
		if size := run.Properties().FontSize; size > 0 {
			return size * 1.2
		}
	}
	return layout.DefaultFontSize * 1.2
}

// Surface adapts a canvas context to layout.Surface. Coordinates passed to it
// are in device units.
func (r *Renderer) Surface(ctx *canvas.Context) *Surface {
	return &Surface{r: r, ctx: ctx}
}

// Surface draws layout runs onto a canvas context. The first drawing error is
// kept in Err; later calls still draw what they can.
type Surface struct {
	r   *Renderer
	ctx *canvas.Context
	err error
}

var _ layout.Surface = (*Surface)(nil)

// Err returns the first error hit while drawing.
func (s *Surface) Err() error { return s.err }

// FillRectangle 绘制无描边的填充矩形。
func (s *Surface) FillRectangle(brush color.Color, rect layout.Rect) {
	if brush == nil || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	s.ctx.SetFillColor(brush)
	s.ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	s.ctx.DrawPath(s.r.toMM(rect.X), s.r.toMM(rect.Y), canvas.Rectangle(s.r.toMM(rect.Width), s.r.toMM(rect.Height)))
}

// DrawText draws text with its top-left corner at origin.
func (s *Surface) DrawText(brush color.Color, origin layout.Point, text *layout.FormattedText) {
	if text == nil || text.Text == "" {
		return
	}
	if brush == nil {
		brush = color.Black
	}
	face, err := s.r.fontFace(s.r.resolveFont(text.Typeface), layout.DeviceToPT(text.FontSize, s.r.dpi), brush)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return
	}
	// 基线位置：行顶部加上字体上升部（Ascent，mm）
	baseline := s.r.toMM(origin.Y) + face.Metrics().Ascent
	s.ctx.DrawText(s.r.toMM(origin.X), baseline, canvas.NewTextLine(face, text.Text, canvas.Left))
}

func (r *Renderer) resolveFont(typeface string) layout.FontResource {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	return resolveFontResource(typeface, r.fonts)
}

func (r *Renderer) fontFace(font layout.FontResource, sizePt float64, col color.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, col, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(filepath.Base(font.Src))
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.logger.Warn("font fallback", "font", font.Name, "src", font.Src, "err", err)
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	}
	src := font.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	// Path based
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

// fallback must be called with fontMu held.
func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("textline-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func resolveFontResource(name string, fonts map[string]layout.FontResource) layout.FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts["Body"]; ok {
		return font
	}
	for _, font := range fonts {
		return font
	}
	return layout.FontResource{Name: name}
}

// parseFontStyle guesses the weight and slant from a font file or face name
// such as "lmsans10-bold" or "Serif-SemiBoldItalic.ttf".
func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	var result canvas.FontStyle
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	default:
		result = canvas.FontRegular
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s", font.Name, font.Src)
}

// toMM 将设备单位转换为毫米(mm)。
func (r *Renderer) toMM(px float64) float64 { return layout.DeviceToMM(px, r.dpi) }

// toDevice 将毫米(mm)转换为设备单位。
func (r *Renderer) toDevice(mm float64) float64 { return mm / layout.MmPerInch * r.dpi }
