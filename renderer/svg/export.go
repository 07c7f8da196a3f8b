package svgrenderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minsvg "github.com/tdewolff/minify/v2/svg"

	"github.com/ByLCY/roadmap/scene"
)

// 导出画布在场景左侧与上方额外让出的区域。
const (
	SidebarWidth = 300
	HeaderHeight = 60
)

// DefaultTitle 用于数据集没有标题时的文件名。
const DefaultTitle = "项目产品协同演进全景看板"

// XMLPrefix 是独立 SVG 文件的声明行。
const XMLPrefix = "<?xml version=\"1.0\" standalone=\"no\"?>\r\n"

const svgMime = "image/svg+xml"

// Document 是一次导出的结果。
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ExportOptions 配置导出。Now 为零值时使用当前时间。
type ExportOptions struct {
	Title  string
	Now    time.Time
	Theme  *scene.Theme
	Minify bool
}

func (o ExportOptions) theme() scene.Theme {
	if o.Theme == nil {
		return scene.DefaultTheme()
	}
	return *o.Theme
}

// FileName 返回建议的导出文件名：<标题>_<YYYY-MM-DD>.svg。
func FileName(title string, now time.Time) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	title = strings.NewReplacer("/", "-", `\`, "-", ":", "-").Replace(title)
	return fmt.Sprintf("%s_%s.svg", title, now.UTC().Format("2006-01-02"))
}

// Standalone 返回适合独立查看的场景副本：去掉交互卡片，铺满背景，
// 把表头镜像到 y=-60、侧边栏名称镜像到 x=-300，并相应地移动视口原点。
// 传入的场景不会被修改。
func Standalone(sc *scene.Scene, th scene.Theme) *scene.Scene {
	if sc == nil {
		return nil
	}
	out := sc.Clone()
	out.StripInteractive()

	w := sc.Width + SidebarWidth
	h := sc.Height + HeaderHeight

	header := scene.Group("time-header", 0, -HeaderHeight)
	for _, cell := range sc.Header {
		cw := cell.Width - 2
		if cw < 2 {
			cw = 2
		}
		header.Children = append(header.Children,
			scene.Rect(cell.X+1, 10, cw, 40, 12, scene.Style{Fill: th.HeaderCell}),
			scene.Text(cell.X+cw/2, 30, cell.Label, scene.ClassTimeLabel, "middle", ""),
		)
	}

	sidebar := scene.Group("sidebar", -SidebarWidth, 0)
	for _, lbl := range sc.Sidebar {
		sidebar.Children = append(sidebar.Children,
			scene.Text(50, lbl.Y-8, lbl.Title, scene.ClassExportLabel, "start", ""),
			scene.Text(50, lbl.Y+14, lbl.Subtitle, scene.ClassExportSub, "start", ""),
		)
	}

	root := scene.Group("export", 0, 0,
		scene.Rect(-SidebarWidth, -HeaderHeight, w, h, 0, scene.Style{Fill: th.Background}),
		header,
		sidebar,
	)
	root.Children = append(root.Children, out.Layers...)

	out.Layers = []scene.Node{root}
	out.OriginX, out.OriginY = -SidebarWidth, -HeaderHeight
	out.Width, out.Height = w, h
	out.Background = th.Background
	return out
}

// Export 生成独立 SVG 文档。空数据集同样得到结构完整的文档。
func Export(sc *scene.Scene, opts ExportOptions) (Document, error) {
	if sc == nil {
		return Document{}, fmt.Errorf("场景为空")
	}
	th := opts.theme()
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	title := opts.Title
	if title == "" {
		title = sc.Title
	}

	body := Serialize(Standalone(sc, th), th)
	if opts.Minify {
		small, err := minifySVG(body)
		if err != nil {
			return Document{}, err
		}
		body = small
	}
	return Document{Name: FileName(title, now), Content: XMLPrefix + body}, nil
}

// Serialize 输出带样式表的 SVG 元素，视口取自场景原点与尺寸。
func Serialize(sc *scene.Scene, th scene.Theme) string {
	w := &writer{}
	a := &attrs{}
	a.str("xmlns", xmlns).
		str("viewBox", fmt.Sprintf("%s %s %s %s", num(sc.OriginX), num(sc.OriginY), num(sc.Width), num(sc.Height))).
		force("width", sc.Width).
		force("height", sc.Height)
	w.open("svg", a.String())
	w.style(th)
	for _, layer := range sc.Layers {
		w.node(layer)
	}
	w.close("svg")
	return w.String()
}

func minifySVG(s string) (string, error) {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.AddFunc(svgMime, minsvg.Minify)
	out, err := m.String(svgMime, s)
	if err != nil {
		return "", fmt.Errorf("压缩 SVG 失败: %w", err)
	}
	return out, nil
}
