package canvasrenderer

import (
	"math"
	"testing"

	"github.com/ByLCY/roadmap/layout"
)

// TestPaintOpacity 验证带透明度后缀的颜色与额外透明度的叠加。
func TestPaintOpacity(t *testing.T) {
	c := paint("#ffffff", 0)
	if c.A != 255 || c.R != 255 {
		t.Fatalf("不透明白色解析错误: %+v", c)
	}
	half := paint("#ffffff", 0.5)
	if half.A != 127 || half.R != 127 {
		t.Fatalf("半透明缩放错误: %+v", half)
	}
	if got := paint("#10b98144", 0); got.A != 0x44 {
		t.Fatalf("#RRGGBBAA 的 alpha 应为 0x44，实际 %#x", got.A)
	}
}

func TestCombineOpacity(t *testing.T) {
	if combine(0, 0.4) != 0.4 || combine(0.5, 0) != 0.5 {
		t.Fatalf("未设置的透明度应被忽略")
	}
	if math.Abs(combine(0.5, 0.5)-0.25) > 1e-9 {
		t.Fatalf("两个透明度应相乘")
	}
}

func TestParseDashes(t *testing.T) {
	got := parseDashes("12 6")
	if len(got) != 2 || math.Abs(got[0]-12*layout.PxToMm) > 1e-9 {
		t.Fatalf("虚线解析错误: %v", got)
	}
	if parseDashes("0 0") != nil {
		t.Fatalf("全零虚线应视为实线")
	}
	if parseDashes("a b") != nil || parseDashes("") != nil {
		t.Fatalf("无效虚线应返回 nil")
	}
}
