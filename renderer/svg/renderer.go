// Package svgrenderer 将场景序列化为 SVG 文本：Render 用于界面显示，
// Export 生成可独立打开的导出文件。
package svgrenderer

import (
	"fmt"
	"sort"

	"github.com/ByLCY/roadmap/renderer"
	"github.com/ByLCY/roadmap/scene"
)

// Renderer 输出与场景坐标一一对应的 SVG，包含交互卡片。
type Renderer struct {
	Theme scene.Theme
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 使用给定主题创建渲染器。
func NewRenderer(th scene.Theme) *Renderer { return &Renderer{Theme: th} }

// Render 输出界面用 SVG。
func (r *Renderer) Render(sc *scene.Scene) ([]byte, error) {
	if sc == nil {
		return nil, fmt.Errorf("场景为空")
	}
	return []byte(Serialize(sc, r.Theme)), nil
}

func sortedClasses(th scene.Theme) []string {
	out := make([]string, 0, len(th.Text))
	for class := range th.Text {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}
