package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/roadmap/fonts"
	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/renderer"
	"github.com/ByLCY/roadmap/scene"
)

// Renderer draws scenes via github.com/tdewolff/canvas.
// 场景坐标为像素，绘制时统一换算为毫米。
type Renderer struct {
	theme    scene.Theme
	fontPath string
	baseDir  string
	logger   *slog.Logger

	fontOnce sync.Once
	family   *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Theme *scene.Theme
	// FontPath 指定 TTF/OTF 字体文件；为空时按主题字体名加载系统字体。
	FontPath string
	// BaseDir 是相对字体路径的基准目录，通常为路线图文件所在目录。
	BaseDir string
	Logger  *slog.Logger
}

// NewRenderer creates a canvas-based renderer.
func NewRenderer(opts Options) *Renderer {
	th := scene.DefaultTheme()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	return &Renderer{theme: th, fontPath: opts.FontPath, baseDir: opts.BaseDir, logger: opts.Logger}
}

// Render renders the scene into a PDF byte slice.
func (r *Renderer) Render(sc *scene.Scene) ([]byte, error) {
	c, err := r.draw(sc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(sc.Title, "", "roadmap", "", "roadmap")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG 以给定分辨率（像素/毫米）栅格化场景。
func (r *Renderer) RenderPNG(sc *scene.Scene, dpmm float64) ([]byte, error) {
	if dpmm <= 0 {
		dpmm = layout.MmToPx
	}
	c, err := r.draw(sc)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(sc *scene.Scene) (*canvas.Canvas, error) {
	if sc == nil {
		return nil, fmt.Errorf("场景为空")
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("场景尺寸无效: %gx%g", sc.Width, sc.Height)
	}
	c := canvas.New(sc.Width*layout.PxToMm, sc.Height*layout.PxToMm)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与场景保持左上角为原点

	if sc.Background != "" {
		ctx.SetFillColor(paint(sc.Background, 0))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(0, 0, canvas.Rectangle(c.W, c.H))
	}
	origin := offset{x: -sc.OriginX, y: -sc.OriginY}
	for _, layer := range sc.Layers {
		r.drawNode(ctx, layer, origin)
	}
	return c, nil
}

// offset 是累计的分组平移量（像素）。
type offset struct{ x, y float64 }

func (o offset) mm(x, y float64) (float64, float64) {
	return (x + o.x) * layout.PxToMm, (y + o.y) * layout.PxToMm
}

func (r *Renderer) drawNode(ctx *canvas.Context, n scene.Node, at offset) {
	switch n.Kind {
	case scene.KindGroup:
		inner := offset{x: at.x + n.TX, y: at.y + n.TY}
		for _, child := range n.Children {
			r.drawNode(ctx, child, inner)
		}
	case scene.KindRect:
		applyStyle(ctx, n.Style)
		x, y := at.mm(n.X, n.Y)
		w, h := n.W*layout.PxToMm, n.H*layout.PxToMm
		if w <= 0 || h <= 0 {
			return
		}
		if n.RX > 0 {
			ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, n.RX*layout.PxToMm))
		} else {
			ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		}
	case scene.KindLine:
		st := n.Style
		st.Fill = ""
		applyStyle(ctx, st)
		x1, y1 := at.mm(n.X1, n.Y1)
		x2, y2 := at.mm(n.X2, n.Y2)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(x2-x1, y2-y1)
		ctx.DrawPath(x1, y1, p)
	case scene.KindCircle:
		applyStyle(ctx, n.Style)
		cx, cy := at.mm(n.CX, n.CY)
		ctx.DrawPath(cx, cy, canvas.Circle(n.R*layout.PxToMm))
	case scene.KindPath:
		p, err := canvas.ParseSVGPath(n.D)
		if err != nil {
			r.warn("path_skipped", slog.String("d", n.D), slog.String("error", err.Error()))
			return
		}
		st := n.Style
		st.Fill = ""
		applyStyle(ctx, st)
		p = p.Translate(at.x, at.y).Scale(layout.PxToMm, layout.PxToMm)
		ctx.DrawPath(0, 0, p)
	case scene.KindText:
		r.drawText(ctx, n, at)
	}
	ctx.ResetStyle()
}

func (r *Renderer) drawText(ctx *canvas.Context, n scene.Node, at offset) {
	family := r.fontFamily()
	if family == nil || n.Text == "" {
		return
	}
	ts := r.theme.TextStyle(n.Class)
	fill := ts.Fill
	if n.Style.Fill != "" {
		fill = n.Style.Fill
	}
	if fill == "" {
		fill = "#ffffff"
	}
	face := family.Face(ts.Size*layout.PxToPt, paint(fill, n.Style.Opacity), canvas.FontRegular, canvas.FontNormal)

	align := canvas.Left
	switch n.Anchor {
	case "middle":
		align = canvas.Center
	case "end":
		align = canvas.Right
	}
	x, y := at.mm(n.X, n.Y)
	// 文本纵坐标表示视觉中线，与导出样式中的 dominant-baseline: middle 对应
	baseline := y + face.Metrics().XHeight/2
	ctx.DrawText(x, baseline, canvas.NewTextLine(face, n.Text, align))
}

// fontFamily 懒加载一次字体；全部失败时返回 nil，文本将被跳过。
func (r *Renderer) fontFamily() *canvas.FontFamily {
	r.fontOnce.Do(func() {
		family := canvas.NewFontFamily("roadmap")
		if r.fontPath != "" {
			data, err := fonts.Load(r.fontPath, r.baseDir)
			if err == nil {
				err = family.LoadFont(data, 0, canvas.FontRegular)
			}
			if err == nil {
				r.family = family
				return
			}
			r.warn("font_file_failed", slog.String("path", r.fontPath), slog.String("error", err.Error()))
		}
		candidates := fonts.Candidates(r.theme.FontFamilies)
		for _, name := range candidates {
			if err := family.LoadSystemFont(name, canvas.FontRegular); err == nil {
				r.family = family
				return
			}
		}
		r.warn("font_unavailable", slog.String("tried", strings.Join(candidates, ",")))
	})
	return r.family
}

func (r *Renderer) warn(msg string, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

func applyStyle(ctx *canvas.Context, st scene.Style) {
	if st.Fill == "" || st.Fill == "none" {
		ctx.SetFillColor(canvas.Transparent)
	} else {
		ctx.SetFillColor(paint(st.Fill, combine(st.Opacity, st.FillOpacity)))
	}
	if st.Stroke == "" || st.Stroke == "none" || st.StrokeWidth <= 0 {
		ctx.SetStrokeColor(canvas.Transparent)
	} else {
		ctx.SetStrokeColor(paint(st.Stroke, combine(st.Opacity, st.StrokeOpacity)))
		ctx.SetStrokeWidth(st.StrokeWidth * layout.PxToMm)
	}
	if dashes := parseDashes(st.Dash); len(dashes) > 0 {
		ctx.SetDashes(0, dashes...)
	}
	if st.LineCap == "round" {
		ctx.SetStrokeCapper(canvas.RoundCap)
	}
}

// combine 合并两个可选透明度，0 表示未设置。
func combine(a, b float64) float64 {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	default:
		return a * b
	}
}

// paint 解析十六进制颜色（支持 #RRGGBBAA）并乘上透明度；opacity 为 0 表示不透明。
func paint(hex string, opacity float64) color.RGBA {
	c := canvas.Hex(hex)
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	// canvas 颜色为预乘形式，各通道同比缩放即可
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

// parseDashes 解析 "12 6" 形式的虚线定义，并换算为毫米。
func parseDashes(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, v*layout.PxToMm)
	}
	// 全零的虚线等同于实线
	for _, v := range out {
		if v > 0 {
			return out
		}
	}
	return nil
}
