// Package config provides configuration types and defaults for textline.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chenjing1294/AvaloniaEdit/layout"
)

// Measurer backends.
const (
	MeasurerCanvas = "canvas"
	MeasurerCell   = "cell"
)

// Config holds all configuration options. Lengths are in device units.
type Config struct {
	TabWidth  float64    `mapstructure:"tab_width" yaml:"tab_width"`
	WrapWidth float64    `mapstructure:"wrap_width" yaml:"wrap_width"` // 0 = unlimited
	DPI       float64    `mapstructure:"dpi" yaml:"dpi"`
	Measurer  string     `mapstructure:"measurer" yaml:"measurer"` // "canvas" (default) or "cell"
	Margin    float64    `mapstructure:"margin" yaml:"margin"`
	Cell      CellConfig `mapstructure:"cell" yaml:"cell"`
	// Fonts maps built-in font names to files, usable in scripts as
	// `src: "built-in:<name>"`.
	Fonts map[string]string `mapstructure:"fonts" yaml:"fonts,omitempty"`
}

// CellConfig sizes the grid of the cell measurer; 0 derives from font size.
type CellConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		TabWidth: layout.DefaultTabWidth,
		DPI:      layout.DefaultDPI,
		Measurer: MeasurerCanvas,
		Margin:   24,
	}
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case c.TabWidth < 0:
		return fmt.Errorf("tab_width must not be negative, got %g", c.TabWidth)
	case c.WrapWidth < 0:
		return fmt.Errorf("wrap_width must not be negative, got %g", c.WrapWidth)
	case c.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %g", c.DPI)
	case c.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %g", c.Margin)
	case c.Cell.Width < 0 || c.Cell.Height < 0:
		return fmt.Errorf("cell size must not be negative, got %gx%g", c.Cell.Width, c.Cell.Height)
	}
	switch c.Measurer {
	case MeasurerCanvas, MeasurerCell:
	default:
		return fmt.Errorf("unknown measurer %q (want %q or %q)", c.Measurer, MeasurerCanvas, MeasurerCell)
	}
	return nil
}

// RunOptions returns the run creation options for measurer.
func (c Config) RunOptions(m layout.Measurer) layout.RunOptions {
	return layout.RunOptions{Measurer: m, TabWidth: c.TabWidth, WrapWidth: c.WrapWidth}
}

// BuildOptions returns the script build options for measurer.
func (c Config) BuildOptions(m layout.Measurer) layout.BuildOptions {
	return layout.BuildOptions{Measurer: m, DPI: c.DPI, TabWidth: c.TabWidth, WrapWidth: c.WrapWidth}
}

// WriteDefault writes the default configuration as YAML, creating parent
// directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
