// Package pipeline 串联布局、场景构建与导出，是宿主界面调用核心的唯一入口。
// 每次调用都基于输入快照重新计算，不保留任何状态。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ByLCY/roadmap/binding"
	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/model"
	svgrenderer "github.com/ByLCY/roadmap/renderer/svg"
	"github.com/ByLCY/roadmap/scene"
	"github.com/ByLCY/roadmap/timeaxis"
)

// Options 配置一次计算。零值可直接使用。
type Options struct {
	Logger  *slog.Logger
	Theme   *scene.Theme
	Metrics *layout.Metrics
}

// Frame 是一次重算的全部产物。锚点映射与连线直接取自布局结果，调用方只读。
type Frame struct {
	Axis   timeaxis.Axis
	View   model.ViewState
	Result *layout.Result
	Scene  *scene.Scene

	ProjectAnchors map[string]float64
	SubAnchors     map[string]float64
	Links          []layout.Link
	Skipped        []layout.Skip
}

// Compute 对数据集与视图做一次完整重算。视图中引用已删除实体的 id 会先被清理。
func Compute(ds model.Dataset, view model.ViewState, opts Options) Frame {
	start := time.Now()
	view = model.PruneView(view, ds).Normalized()
	axis := ds.Axis()

	res := layout.Build(ds, view, layout.BuildOptions{Metrics: opts.Metrics, Logger: opts.Logger})
	sc := scene.Build(res, axis, scene.Options{
		Title:       ds.Title,
		Granularity: view.Granularity,
		Hovered:     view.Hovered,
		Theme:       opts.Theme,
	})

	if opts.Logger != nil {
		opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "frame_computed",
			slog.Int("projects", len(res.Projects)),
			slog.Int("products", len(res.Products)),
			slog.Int("links", len(res.Links)),
			slog.Int("skipped", len(res.Skipped)),
			slog.Float64("width", sc.Width),
			slog.Float64("height", sc.Height),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
	return Frame{
		Axis:           axis,
		View:           view,
		Result:         res,
		Scene:          sc,
		ProjectAnchors: res.ProjectAnchors,
		SubAnchors:     res.SubAnchors,
		Links:          res.Links,
		Skipped:        res.Skipped,
	}
}

// ExportOptions 在计算参数之外补充导出参数。
type ExportOptions struct {
	Options
	Minify bool
	// FileName 是文件名模板，见 FileName。
	FileName string
}

// Export 重算后生成独立 SVG 文档。now 决定文件名中的日期。
func Export(ds model.Dataset, view model.ViewState, now time.Time, opts ExportOptions) (svgrenderer.Document, error) {
	frame := Compute(ds, view, opts.Options)
	doc, err := svgrenderer.Export(frame.Scene, svgrenderer.ExportOptions{
		Title:  ds.Title,
		Now:    now,
		Theme:  opts.Theme,
		Minify: opts.Minify,
	})
	if err != nil {
		return svgrenderer.Document{}, fmt.Errorf("导出 SVG 失败: %w", err)
	}
	if opts.FileName != "" {
		doc.Name = FileName(opts.FileName, ds.Title, now, "svg")
	}
	if opts.Logger != nil {
		opts.Logger.LogAttrs(context.Background(), slog.LevelInfo, "svg_exported",
			slog.String("name", doc.Name),
			slog.Int("bytes", len(doc.Content)),
		)
	}
	return doc, nil
}

// FileName 按模板生成导出文件名。模板可引用 ${title}、${date}（UTC, YYYY-MM-DD）与 ${ext}；
// 模板为空时使用 <标题>_<日期>.<ext>。结果不以该扩展名结尾时自动补上。
func FileName(tmpl, title string, now time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if strings.TrimSpace(tmpl) == "" {
		return strings.TrimSuffix(svgrenderer.FileName(title, now), ".svg") + "." + ext
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = svgrenderer.DefaultTitle
	}
	name := binding.Interpolate(tmpl, map[string]any{
		"title": strings.NewReplacer("/", "-", `\`, "-", ":", "-").Replace(title),
		"date":  now.UTC().Format(timeaxis.DateLayout),
		"ext":   ext,
	})
	if !strings.HasSuffix(strings.ToLower(name), "."+strings.ToLower(ext)) {
		name += "." + ext
	}
	return name
}
