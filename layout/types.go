package layout

import "image/color"

// 该文件定义几何类型与文本格式属性，供分段、测量、绘制与调试 JSON 共用。
// All coordinates and sizes are device units.

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the extent reported by the measurement backend.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RunProperties carries the formatting shared by every character of a run.
// A nil brush means "not set".
type RunProperties struct {
	Typeface   string
	FontSize   float64 // device units
	Foreground color.Color
	Background color.Color
}

// FormattedText is the prepared text a run hands to the drawing surface.
// It is built once at measurement time and reused by every Draw.
type FormattedText struct {
	Text     string
	Typeface string
	FontSize float64
	Size     Size
}
