package scene

import (
	"fmt"
	"strconv"

	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/timeaxis"
)

// 侧边栏副标题。
const (
	ProjectSubtitle = "项目执行管线"
	ProductSubtitle = "产品演进序列"
)

// Options 配置场景构建。零值可直接使用。
type Options struct {
	Title       string
	Granularity timeaxis.Granularity
	// Hovered 为当前悬停的反馈 id，只有它的详情卡片会被生成。
	Hovered string
	Theme   *Theme
}

func (o Options) theme() Theme {
	if o.Theme == nil {
		return DefaultTheme()
	}
	return *o.Theme
}

// Build 根据布局结果生成场景。axis 用于生成刻度网格与表头。
func Build(res *layout.Result, axis timeaxis.Axis, opts Options) *Scene {
	th := opts.theme()
	if res == nil {
		res = &layout.Result{}
	}
	sc := &Scene{
		Title:      opts.Title,
		Width:      res.Width,
		Height:     res.TotalHeight,
		Background: th.Background,
	}
	b := builder{res: res, th: th, zoom: res.Zoom, sc: sc}

	g := timeaxis.ParseGranularity(string(opts.Granularity))
	ticks := axis.BuildTicks(g)
	sc.Layers = append(sc.Layers,
		b.grid(ticks, g),
		b.projects(),
		b.connector(),
		b.products(),
		b.links(opts.Hovered),
	)
	if cards := b.cards(opts.Hovered); len(cards.Children) > 0 {
		sc.Layers = append(sc.Layers, cards)
	}

	for i, t := range ticks {
		sc.Header = append(sc.Header, HeaderCell{
			Offset: t.Offset,
			X:      timeaxis.OffsetToX(t.Offset, b.zoom),
			Width:  axis.TickWidth(ticks, i, b.zoom),
			Label:  t.Label,
		})
	}
	for _, p := range res.Projects {
		sc.Sidebar = append(sc.Sidebar, SidebarLabel{
			Kind: SidebarProject, ID: p.Project.ID, Y: p.AnchorY,
			Title: p.Project.Name, Subtitle: ProjectSubtitle, Color: p.Project.Color,
		})
	}
	for _, p := range res.Products {
		sc.Sidebar = append(sc.Sidebar, SidebarLabel{
			Kind: SidebarProduct, ID: p.Product.ID, Y: p.AnchorY,
			Title: p.Product.Name, Subtitle: ProductSubtitle, Color: p.Product.Color,
		})
	}
	return sc
}

type builder struct {
	res  *layout.Result
	th   Theme
	zoom float64
	sc   *Scene
}

func (b builder) x(offset int) float64 { return timeaxis.OffsetToX(offset, b.zoom) }

func (b builder) grid(ticks []timeaxis.Tick, g timeaxis.Granularity) Node {
	st := Style{Stroke: b.th.GridStroke, StrokeWidth: 1, Opacity: 0.95}
	if g == timeaxis.Day {
		st.Dash = "4 8"
		st.Opacity = 0.75
	}
	layer := Group("grid", 0, 0)
	layer.Children = make([]Node, 0, len(ticks))
	for _, t := range ticks {
		x := b.x(t.Offset)
		layer.Children = append(layer.Children, Line(x, 0, x, b.sc.Height, st))
	}
	return layer
}

func (b builder) projects() Node {
	layer := Group("projects", 0, 0)
	for i, blk := range b.res.Projects {
		p := blk.Project
		band := b.th.BandColor(i)
		g := Group("project-"+p.ID, 0, 0,
			Rect(0, blk.Top, b.sc.Width, blk.Height, 0, Style{
				Fill: band, FillOpacity: b.th.BandFillOpacity,
				Stroke: band, StrokeOpacity: b.th.BandStrokeOpacity, StrokeWidth: 1,
			}),
			Line(b.x(p.Start), blk.AnchorY, b.x(p.End), blk.AnchorY, Style{
				Stroke: p.Color, StrokeWidth: 6, StrokeOpacity: 0.6, LineCap: "round",
			}),
			Text(b.x(p.Start)+6, blk.AnchorY-12, p.Name, ClassProjectLabel, "start", ""),
		)
		for _, sub := range blk.SubRows {
			s := sub.SubProject
			g.Children = append(g.Children,
				Line(b.x(s.Start), sub.AnchorY, b.x(s.End), sub.AnchorY, Style{
					Stroke: p.Color, StrokeWidth: 10, StrokeOpacity: 0.9, LineCap: "round",
				}),
				Text(b.x(s.Start)+6, sub.AnchorY-4, s.Name, ClassSubLabel, "start", ""),
			)
		}
		layer.Children = append(layer.Children, g)
	}
	return layer
}

func (b builder) connector() Node {
	h := b.res.ProductAreaTop - b.res.ConnectorTop
	return Group("connector", 0, b.res.ConnectorTop,
		Rect(0, 0, b.sc.Width, h, 0, Style{Fill: b.th.ConnectorFill, FillOpacity: 0.6}),
		Line(0, h/2, b.sc.Width, h/2, Style{Stroke: b.th.ConnectorLine, StrokeWidth: 1, Dash: "30 15"}),
	)
}

func (b builder) products() Node {
	layer := Group("products", 0, 0)
	for _, row := range b.res.Products {
		p := row.Product
		lo, hi := p.VersionSpan()
		g := Group("product-"+p.ID, 0, row.AnchorY,
			Rect(b.x(lo), -14, b.x(hi)-b.x(lo), 28, 14, Style{
				Fill: p.Color, FillOpacity: 0.06, Stroke: p.Color, StrokeOpacity: 0.1, StrokeWidth: 1,
			}),
			Line(b.x(lo), 0, b.x(hi), 0, Style{Stroke: p.Color, StrokeWidth: 4, StrokeOpacity: 0.8, LineCap: "round"}),
			Line(0, 0, b.sc.Width, 0, Style{Stroke: p.Color, StrokeWidth: 1, Dash: "15 15", StrokeOpacity: 0.1}),
		)
		for _, v := range p.Versions {
			// 版本 id 只在所属产品内唯一
			vg := Group("version-"+p.ID+"-"+v.ID, b.x(v.Time), 0,
				Circle(0, 0, 14, Style{Fill: b.th.Background, Stroke: p.Color, StrokeWidth: 3}),
				Circle(0, 0, 6, Style{Fill: p.Color}),
				Text(0, 35, v.Label, ClassVersionLabel, "middle", p.Color),
			)
			for i, feat := range v.Features {
				vg.Children = append(vg.Children, Text(0, 52+float64(i)*14, "/ "+feat, ClassFeature, "middle", ""))
			}
			g.Children = append(g.Children, vg)
		}
		layer.Children = append(layer.Children, g)
	}
	return layer
}

// CurvePath 返回连接两个端点的三次贝塞尔路径，控制点分别上抬与下压 50 像素。
func CurvePath(src, dst layout.Point) string {
	mid := (dst.X - src.X) / 2
	return fmt.Sprintf("M %s %s C %s %s %s %s %s %s",
		num(src.X), num(src.Y),
		num(src.X+mid), num(src.Y-50),
		num(dst.X-mid), num(dst.Y+50),
		num(dst.X), num(dst.Y))
}

func (b builder) links(hovered string) Node {
	layer := Group("links", 0, 0)
	for _, l := range b.res.Links {
		q := b.th.Quality(l.Quality)
		active := l.FeedbackID == hovered
		curve := Style{Stroke: l.Color, StrokeWidth: 3, StrokeOpacity: 0.35, Dash: "12 6"}
		dot := 6.0
		if active {
			curve.StrokeWidth, curve.StrokeOpacity = 4, 0.65
			dot = 8
		}
		layer.Children = append(layer.Children, Group("link-"+l.FeedbackID, 0, 0,
			Path(CurvePath(l.Source, l.Target), curve),
			Circle(l.Target.X, l.Target.Y, dot, Style{Fill: l.Color, Stroke: b.th.Background, StrokeWidth: 2}),
			Group("badge-"+l.FeedbackID, l.Target.X+12, l.Target.Y-14,
				Rect(0, 0, 54, 20, 10, Style{Fill: q.Background, Stroke: q.Stroke, StrokeWidth: 1}),
				Text(27, 14, string(l.Quality), ClassBadge, "middle", q.Color),
			),
		))
	}
	return layer
}

// cards 生成悬停详情卡片，整层标记为仅交互显示。
func (b builder) cards(hovered string) Node {
	layer := Group("cards", 0, 0)
	layer.Interactive = true
	if hovered == "" {
		return layer
	}
	for _, l := range b.res.Links {
		if l.FeedbackID != hovered {
			continue
		}
		q := b.th.Quality(l.Quality)
		card := Group("card-"+l.FeedbackID, l.Target.X+18, l.Target.Y-48,
			Rect(0, 0, 340, 126, 22, Style{Fill: b.th.CardFill, FillOpacity: 0.98, Stroke: "#ffffff20", StrokeWidth: 1}),
			Rect(1, 1, 338, 34, 21, Style{Fill: "#111a2b"}),
			Rect(0, 0, 8, 126, 8, Style{Fill: l.Color}),
			Text(18, 22, "反哺信息卡片", ClassCardCaption, "start", ""),
			Text(322, 22, l.ProductName, ClassCardProduct, "end", ""),
			Group("", 18, 44,
				Text(0, 0, "交付范围", ClassCardCaption, "start", ""),
				Rect(0, 8, 302, 28, 10, Style{Fill: "#141e30", Stroke: "#ffffff12", StrokeWidth: 1}),
				Text(10, 26, orDash(l.Scope), ClassCardValue, "start", ""),
				Text(0, 54, "交付质量", ClassCardCaption, "start", ""),
				Rect(68, 42, 62, 20, 10, Style{Fill: q.Background, Stroke: q.Stroke, StrokeWidth: 1}),
				Text(99, 56, string(l.Quality), ClassBadge, "middle", q.Color),
				Text(160, 54, "交付时间", ClassCardCaption, "start", ""),
				Rect(214, 42, 92, 20, 10, Style{Fill: b.th.Background, Stroke: "#ffffff18", StrokeWidth: 1}),
				Text(260, 56, orDash(l.Date), ClassTimeLabel, "middle", ""),
			),
		)
		card.Interactive = true
		layer.Children = append(layer.Children, card)
	}
	return layer
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// num 以最短形式格式化坐标，避免 "420.000000" 之类的冗余输出。
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
