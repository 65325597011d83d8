package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths for scripts and configuration.
// Device units are pixels at a given DPI.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // bare numbers, taken as device units
	UnitPX               // device pixels
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants.
const (
	PtToMm     = 0.352777
	MmToPt     = 1.0 / PtToMm
	MmPerInch  = 25.4
	PtPerInch  = 72.0
	DefaultDPI = 96.0
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ToDevice converts the length to device units at dpi. Bare numbers are
// already device units.
func (l Length) ToDevice(dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch l.Unit {
	case UnitMM:
		return l.Value / MmPerInch * dpi
	case UnitCM:
		return l.Value * 10 / MmPerInch * dpi
	case UnitIN:
		return l.Value * dpi
	case UnitPT:
		return l.Value / PtPerInch * dpi
	default:
		return l.Value
	}
}

// DeviceToMM converts device units at dpi to millimeters.
func DeviceToMM(v, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return v / dpi * MmPerInch
}

// DeviceToPT converts device units at dpi to points.
func DeviceToPT(v, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return v / dpi * PtPerInch
}

// ParseLength parses a length such as "12pt", "3.5mm" or "40". Unparseable
// input yields the zero Length and false.
func ParseLength(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
