package layout

import (
	"context"
	"log/slog"

	"github.com/ByLCY/roadmap/model"
)

// Build 对数据集与视图状态做一次完整布局：筛选 → 行堆叠 → 连线解析。
// 输入被视为只读快照，函数内部先复制并夹紧；每次调用都产生全新的结果。
func Build(ds model.Dataset, view model.ViewState, opts BuildOptions) *Result {
	ds = model.Normalize(ds)
	view = view.Normalized()
	axis := ds.Axis()

	projects := FilterProjects(ds.Projects, view.Hidden, view.ProjectFilter)
	products := FilterProducts(ds.Products, view.ProductFilter)

	res := Rows(projects, products, view.Collapsed, opts.metrics())
	res.Zoom = view.Zoom
	res.Days = axis.Days()
	res.Width = axis.Width(view.Zoom)
	res.Links, res.Skipped = ResolveLinks(ds.Feedbacks, res, axis, view)

	if opts.Logger != nil {
		for _, s := range res.Skipped {
			opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "feedback_skipped",
				slog.String("feedback", s.FeedbackID),
				slog.String("reason", string(s.Reason)),
			)
		}
	}
	return res
}
