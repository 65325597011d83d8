package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthToDevice 覆盖常见单位到设备单位（像素）的换算。
func TestLengthToDevice(t *testing.T) {
	tests := []struct {
		in   Length
		dpi  float64
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 96, 96},
		{Length{Value: 25.4, Unit: UnitMM}, 96, 96},
		{Length{Value: 2.54, Unit: UnitCM}, 300, 300},
		{Length{Value: 12, Unit: UnitPT}, 96, 16},
		{Length{Value: 40, Unit: UnitPX}, 300, 40},
		{Length{Value: 40, Unit: UnitNone}, 300, 40},
		{Length{Value: 72, Unit: UnitPT}, 0, DefaultDPI},
	}
	for _, tt := range tests {
		if got := tt.in.ToDevice(tt.dpi); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s @%gdpi: got %g want %g", tt.in, tt.dpi, got, tt.want)
		}
	}
}

func TestDeviceConversions(t *testing.T) {
	if got := DeviceToMM(96, 96); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("96px → mm: got %g", got)
	}
	if got := DeviceToPT(16, 96); math.Abs(got-12) > 1e-9 {
		t.Fatalf("16px → pt: got %g", got)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"12pt", Length{Value: 12, Unit: UnitPT}, true},
		{" 3.5MM ", Length{Value: 3.5, Unit: UnitMM}, true},
		{"40px", Length{Value: 40, Unit: UnitPX}, true},
		{"40", Length{Value: 40, Unit: UnitNone}, true},
		{"1in", Length{Value: 1, Unit: UnitIN}, true},
		{"", Length{}, false},
		{"abc", Length{}, false},
		{"pt", Length{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseLength(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
