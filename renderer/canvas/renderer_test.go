package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/model"
	svgrenderer "github.com/ByLCY/roadmap/renderer/svg"
	"github.com/ByLCY/roadmap/scene"
)

func demoScene() *scene.Scene {
	ds := model.Demo()
	view := model.DefaultView()
	res := layout.Build(ds, view, layout.BuildOptions{})
	return scene.Build(res, ds.Axis(), scene.Options{Title: ds.Title, Granularity: view.Granularity})
}

func TestRenderPDF(t *testing.T) {
	r := NewRenderer(Options{})
	data, err := r.Render(demoScene())
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF，前缀为 %q", data[:8])
	}
}

// TestRenderStandalonePDF 验证原点为负值的独立场景同样可以渲染。
func TestRenderStandalonePDF(t *testing.T) {
	sc := svgrenderer.Standalone(demoScene(), scene.DefaultTheme())
	if sc.OriginX != -svgrenderer.SidebarWidth || sc.OriginY != -svgrenderer.HeaderHeight {
		t.Fatalf("独立场景原点错误: (%g, %g)", sc.OriginX, sc.OriginY)
	}
	data, err := NewRenderer(Options{}).Render(sc)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("输出为空")
	}
}

func TestRenderPNG(t *testing.T) {
	ds := model.Dataset{Months: 1}
	res := layout.Build(ds, model.DefaultView(), layout.BuildOptions{})
	sc := scene.Build(res, ds.Axis(), scene.Options{})

	data, err := NewRenderer(Options{}).RenderPNG(sc, 1)
	if err != nil {
		t.Fatalf("栅格化失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("输出不是 PNG")
	}
}

func TestRenderRejectsInvalidScene(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空场景应返回错误")
	}
	if _, err := r.Render(&scene.Scene{}); err == nil {
		t.Fatalf("零尺寸场景应返回错误")
	}
}

func TestMissingFontFileFallsBack(t *testing.T) {
	r := NewRenderer(Options{FontPath: "/nonexistent/font.ttf"})
	if _, err := r.Render(demoScene()); err != nil {
		t.Fatalf("字体缺失时不应报错: %v", err)
	}
}
