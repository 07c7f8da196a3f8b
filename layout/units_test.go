package layout

import (
	"math"
	"testing"
)

// TestPxMmRoundTrip 验证 px↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPxMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, px := range samples {
		mm := px * PxToMm
		back := mm * MmToPx
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%gpx mm=%g back=%g diff=%g", px, mm, back, diff)
		}
	}
}

// TestLengthToConversions 覆盖 Length 在常见单位上的转换正确性。
func TestLengthToConversions(t *testing.T) {
	// 96px = 1in = 25.4mm
	if got := (Length{Value: 96, Unit: UnitPX}).ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("96px 转 mm 期望 25.4，实际 %g", got)
	}
	// 12pt = 16px
	if got := (Length{Value: 12, Unit: UnitPT}).ToPX(); math.Abs(got-16) > 1e-3 {
		t.Fatalf("12pt 转 px 期望 16，实际 %g", got)
	}
	// 无单位按像素处理
	if got := (Length{Value: 10}).ToPX(); math.Abs(got-10) > 1e-9 {
		t.Fatalf("无单位 10 转 px 期望 10，实际 %g", got)
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]Length{
		"14":     {Value: 14, Unit: UnitNone},
		" 14px ": {Value: 14, Unit: UnitPX},
		"3.5mm":  {Value: 3.5, Unit: UnitMM},
		"10PT":   {Value: 10, Unit: UnitPT},
		"abc":    {},
		"":       {},
	}
	for in, want := range cases {
		if got := ParseLength(in); got != want {
			t.Fatalf("ParseLength(%q) = %+v，期望 %+v", in, got, want)
		}
	}
	if UnitMM.String() != "mm" || UnitNone.String() != "" || Unit(9).String() != "" {
		t.Fatalf("Unit.String 结果不符合预期")
	}
	if got := ParseLength("12pt").String(); got != "12pt" {
		t.Fatalf("Length.String 期望 12pt，实际 %s", got)
	}
}
