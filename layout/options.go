package layout

// DefaultTabWidth is the width of a tab run while no paragraph properties
// supply tab stops.
const DefaultTabWidth = 40

// RunOptions configures run creation: the measurement backend plus the
// paragraph-level values a run needs.
type RunOptions struct {
	Measurer Measurer
	// TabWidth is the width of every tab run; <= 0 means DefaultTabWidth.
	TabWidth float64
	// WrapWidth is the line width FormatLine stops at; <= 0 means unlimited.
	// What is left of it is passed to CreateRun as the run's width budget.
	WrapWidth float64
}

func (o RunOptions) tabWidth() float64 {
	if o.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return o.TabWidth
}

// Measurer is the text measurement backend: it reports the rendered size of
// text set in the named typeface at size (both in device units).
type Measurer interface {
	Measure(text string, typeface string, size float64) (Size, error)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(text string, typeface string, size float64) (Size, error)

// Measure calls f.
func (f MeasurerFunc) Measure(text string, typeface string, size float64) (Size, error) {
	return f(text, typeface, size)
}
