package layout

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/chenjing1294/AvaloniaEdit/binding"
	"github.com/chenjing1294/AvaloniaEdit/dsl"
)

// DefaultFontSize is used by text statements without a size, in device units.
const DefaultFontSize = 16

// BuildOptions 配置构建阶段所需的依赖：测量后端与段落默认值。
type BuildOptions struct {
	Measurer  Measurer
	DPI       float64
	TabWidth  float64
	WrapWidth float64
}

// FontResource names a typeface and where its bytes come from.
type FontResource struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// FontRegistrar is implemented by measurers that load typefaces on demand.
// Build registers every declared font before measuring.
type FontRegistrar interface {
	RegisterFont(font FontResource) error
}

// Resources holds the fonts and colors a script declares.
type Resources struct {
	Fonts  map[string]FontResource `json:"fonts"`
	Colors map[string]color.Color  `json:"-"`
}

// Paragraph is one formatted paragraph of a script.
type Paragraph struct {
	Source  *RunSource
	Options RunOptions
	Lines   []*TextLine
}

// Result is the output of Build.
type Result struct {
	Name       string
	Resources  Resources
	Paragraphs []*Paragraph
	DPI        float64
}

// Build turns a parsed run script into text sources and formats every
// paragraph into lines.
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: build: %w", ErrNoMeasurer)
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	if reg, ok := opts.Measurer.(FontRegistrar); ok {
		for _, name := range sortedFontNames(res.Fonts) {
			if err := reg.RegisterFont(res.Fonts[name]); err != nil {
				return nil, fmt.Errorf("注册字体 %s 失败: %w", name, err)
			}
		}
	}

	result := &Result{Name: doc.Name, Resources: res, DPI: opts.DPI}
	for i, section := range doc.Paragraphs() {
		para, err := buildParagraph(section, res, data, opts)
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i+1, err)
		}
		result.Paragraphs = append(result.Paragraphs, para)
	}
	return result, nil
}

// Lines returns the lines of every paragraph in order.
func (r *Result) Lines() []*TextLine {
	var out []*TextLine
	for _, p := range r.Paragraphs {
		out = append(out, p.Lines...)
	}
	return out
}

func buildParagraph(section *dsl.ParagraphSection, res Resources, data any, opts BuildOptions) (*Paragraph, error) {
	runOpts := RunOptions{
		Measurer:  opts.Measurer,
		TabWidth:  opts.TabWidth,
		WrapWidth: opts.WrapWidth,
	}
	params := parsePairs(section.Params)
	if v, ok := params["width"]; ok {
		l, ok := ParseLength(v)
		if !ok {
			return nil, fmt.Errorf("无法解析段落宽度 %q", v)
		}
		runOpts.WrapWidth = l.ToDevice(opts.DPI)
	}
	if v, ok := params["tab"]; ok {
		l, ok := ParseLength(v)
		if !ok {
			return nil, fmt.Errorf("无法解析制表宽度 %q", v)
		}
		runOpts.TabWidth = l.ToDevice(opts.DPI)
	}

	runs, err := collectRuns(section.Block, res, data, opts.DPI)
	if err != nil {
		return nil, err
	}
	src := NewRunSource(runs...)
	lines, err := FormatParagraph(src, runOpts)
	if err != nil {
		return nil, err
	}
	return &Paragraph{Source: src, Options: runOpts, Lines: lines}, nil
}

func collectRuns(block *dsl.Block, res Resources, data any, dpi float64) ([]TextRun, error) {
	if block == nil {
		return nil, nil
	}
	current := defaultProperties(res)
	var runs []TextRun
	for _, stmt := range block.Statements {
		cmd := stmt.Command
		if cmd == nil {
			if stmt.Text != nil {
				runs = append(runs, NewCharacters(binding.Interpolate(string(stmt.Text.Value), data), current))
			}
			continue
		}
		switch cmd.Name {
		case "text":
			props, err := textProperties(cmd, res, dpi)
			if err != nil {
				return nil, err
			}
			current = props
			runs = append(runs, NewCharacters(binding.Interpolate(extractText(cmd.Block), data), props))
		case "tab":
			runs = append(runs, NewCharacters("\t", current))
		case "eol":
			run, err := eolRun(cmd, current)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		case "object":
			run, err := objectRun(cmd, res, current, dpi)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		default:
			return nil, fmt.Errorf("%s: 未知语句 %q", cmd.Pos, cmd.Name)
		}
	}
	return runs, nil
}

func textProperties(cmd *dsl.Command, res Resources, dpi float64) (RunProperties, error) {
	font, attrs := parseArgs(cmd.Args)
	props := defaultProperties(res)
	if font != "" {
		if _, ok := res.Fonts[font]; !ok {
			return props, fmt.Errorf("%s: 未定义的字体 %q", cmd.Pos, font)
		}
		props.Typeface = font
	}
	if v, ok := attrs["size"]; ok {
		l, ok := ParseLength(v)
		if !ok || l.Value <= 0 {
			return props, fmt.Errorf("%s: 无法解析字号 %q", cmd.Pos, v)
		}
		props.FontSize = l.ToDevice(dpi)
	}
	if v, ok := attrs["color"]; ok {
		c, err := resolveColor(v, res)
		if err != nil {
			return props, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
		props.Foreground = c
	}
	if v, ok := attrs["background"]; ok {
		c, err := resolveColor(v, res)
		if err != nil {
			return props, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
		props.Background = c
	}
	return props, nil
}

// eolRun accepts `eol`, `eol cr|lf|crlf`, or `eol <n>` for an explicit
// end-of-line marker covering n >= 1 characters. A zero-length marker would
// not be addressable in a RunSource, so it is rejected.
func eolRun(cmd *dsl.Command, props RunProperties) (TextRun, error) {
	kind := "lf"
	if len(cmd.Args) > 0 {
		kind = strings.ToLower(cmd.Args[0].Value)
	}
	switch kind {
	case "lf":
		return NewCharacters("\n", props), nil
	case "cr":
		return NewCharacters("\r", props), nil
	case "crlf":
		return NewCharacters("\r\n", props), nil
	}
	n, err := strconv.Atoi(kind)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%s: 无法解析换行 %q，长度至少为 1", cmd.Pos, kind)
	}
	return EndOfLineRun{Length: n, Properties: props}, nil
}

func objectRun(cmd *dsl.Command, res Resources, props RunProperties, dpi float64) (TextRun, error) {
	name, attrs := parseArgs(cmd.Args)
	box := &Box{Name: name, Chars: 1}
	if v, ok := attrs["length"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: 无法解析对象长度 %q", cmd.Pos, v)
		}
		box.Chars = n
	}
	for key, dst := range map[string]*float64{"width": &box.Size.Width, "height": &box.Size.Height} {
		v, ok := attrs[key]
		if !ok {
			continue
		}
		l, ok := ParseLength(v)
		if !ok {
			return nil, fmt.Errorf("%s: 无法解析对象 %s %q", cmd.Pos, key, v)
		}
		*dst = l.ToDevice(dpi)
	}
	if box.Size.Height == 0 {
		box.Size.Height = props.FontSize * heightRatio
	}
	if v, ok := attrs["color"]; ok {
		c, err := resolveColor(v, res)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
		box.Fill = c
	}
	return EmbeddedObjectRun{Object: box, Properties: props}, nil
}

func collectResources(doc *dsl.Document) (Resources, error) {
	res := Resources{
		Fonts:  map[string]FontResource{},
		Colors: map[string]color.Color{},
	}
	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			cmd := stmt.Command
			if cmd == nil || len(cmd.Args) == 0 {
				continue
			}
			switch cmd.Name {
			case "font":
				font := FontResource{Name: cmd.Args[0].Value}
				if cmd.Block != nil {
					for _, s := range cmd.Block.Statements {
						if s.Assignment != nil && s.Assignment.Key == "src" {
							font.Src = s.Assignment.Value.Text()
						}
					}
				}
				res.Fonts[font.Name] = font
			case "color":
				value := cmd.Args[len(cmd.Args)-1].Value
				c, err := parseColor(value)
				if err != nil {
					return res, fmt.Errorf("%s: %w", cmd.Pos, err)
				}
				res.Colors[cmd.Args[0].Value] = c
			}
		}
	}
	if len(res.Fonts) == 0 {
		res.Fonts["Body"] = FontResource{Name: "Body", Src: "embed:lmsans10-regular"}
	}
	return res, nil
}

func defaultProperties(res Resources) RunProperties {
	props := RunProperties{FontSize: DefaultFontSize}
	if _, ok := res.Fonts["Body"]; ok {
		props.Typeface = "Body"
	} else if names := sortedFontNames(res.Fonts); len(names) > 0 {
		props.Typeface = names[0]
	}
	return props
}

// parseArgs splits `Name key value key value ...` into the leading name
// (when it is an identifier followed by an odd number of tokens) and pairs.
func parseArgs(args []*dsl.Lexeme) (string, map[string]string) {
	if len(args)%2 == 1 && args[0].Type == "Ident" {
		return args[0].Value, parsePairs(args[1:])
	}
	return "", parsePairs(args)
}

func parsePairs(args []*dsl.Lexeme) map[string]string {
	result := map[string]string{}
	for i := 0; i+1 < len(args); i += 2 {
		result[strings.ToLower(args[i].Value)] = args[i+1].Value
	}
	return result
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func resolveColor(value string, res Resources) (color.Color, error) {
	if c, ok := res.Colors[value]; ok {
		return c, nil
	}
	return parseColor(value)
}

func parseColor(value string) (color.Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(value, "#") {
		return nil, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func sortedFontNames(fonts map[string]FontResource) []string {
	return slices.Sorted(maps.Keys(fonts))
}
