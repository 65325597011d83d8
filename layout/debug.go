package layout

import (
	"encoding/json"
	"os"
)

// RunSnapshot is the JSON form of a TextLineRun.
type RunSnapshot struct {
	Kind        string    `json:"kind"`
	Offset      int       `json:"offset"`
	Length      int       `json:"length"`
	Text        string    `json:"text,omitempty"`
	Width       float64   `json:"width"`
	Baseline    float64   `json:"baseline"`
	Height      float64   `json:"height"`
	GlyphWidths []float64 `json:"glyphWidths,omitempty"`
}

// LineSnapshot is the JSON form of a TextLine.
type LineSnapshot struct {
	FirstIndex           int           `json:"firstIndex"`
	Length               int           `json:"length"`
	Width                float64       `json:"width"`
	WidthWithoutTrailing float64       `json:"widthWithoutTrailing"`
	Height               float64       `json:"height"`
	Baseline             float64       `json:"baseline"`
	Trailing             TrailingInfo  `json:"trailing"`
	Runs                 []RunSnapshot `json:"runs"`
}

// ParagraphSnapshot is the JSON form of a Paragraph.
type ParagraphSnapshot struct {
	TabWidth  float64        `json:"tabWidth"`
	WrapWidth float64        `json:"wrapWidth"`
	Lines     []LineSnapshot `json:"lines"`
}

// DebugDocument is what WriteDebugJSON writes.
type DebugDocument struct {
	Name       string                  `json:"name"`
	DPI        float64                 `json:"dpi"`
	Fonts      map[string]FontResource `json:"fonts"`
	Paragraphs []ParagraphSnapshot     `json:"paragraphs"`
}

// Snapshot captures the run state for inspection.
func (r *TextLineRun) Snapshot() RunSnapshot {
	return RunSnapshot{
		Kind:        r.kind.String(),
		Offset:      r.offset,
		Length:      r.length,
		Text:        r.text.String(),
		Width:       r.width,
		Baseline:    r.Baseline(),
		Height:      r.Height(),
		GlyphWidths: r.glyphWidths,
	}
}

// Snapshot captures the line and its runs.
func (l *TextLine) Snapshot() LineSnapshot {
	s := LineSnapshot{
		FirstIndex:           l.firstIndex,
		Length:               l.length,
		Width:                l.width,
		WidthWithoutTrailing: l.WidthWithoutTrailing(),
		Height:               l.Height(),
		Baseline:             l.Baseline(),
		Trailing:             l.trailing,
		Runs:                 make([]RunSnapshot, 0, len(l.runs)),
	}
	for _, r := range l.runs {
		s.Runs = append(s.Runs, r.Snapshot())
	}
	return s
}

// Debug converts the result to its JSON form.
func (r *Result) Debug() DebugDocument {
	doc := DebugDocument{Name: r.Name, DPI: r.DPI, Fonts: r.Resources.Fonts}
	for _, p := range r.Paragraphs {
		ps := ParagraphSnapshot{TabWidth: p.Options.tabWidth(), WrapWidth: p.Options.WrapWidth}
		for _, l := range p.Lines {
			ps.Lines = append(ps.Lines, l.Snapshot())
		}
		doc.Paragraphs = append(doc.Paragraphs, ps)
	}
	return doc
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res.Debug(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
