package layout

import (
	"github.com/ByLCY/roadmap/model"
	"github.com/ByLCY/roadmap/timeaxis"
)

// ResolveLinks 为每条反馈解析两个端点。任一端点无法解析时跳过该反馈，
// 并在第二个返回值中记录原因；该函数从不报错。
//
// 版本端点：(version.Time × zoom, 产品行锚点)；
// 目标端点：(deliveryDate × zoom, 项目或子行锚点)。
func ResolveLinks(feedbacks []model.Feedback, res *Result, axis timeaxis.Axis, view model.ViewState) ([]Link, []Skip) {
	links := make([]Link, 0, len(feedbacks))
	var skipped []Skip
	skip := func(fb model.Feedback, reason SkipReason) {
		skipped = append(skipped, Skip{FeedbackID: fb.ID, Reason: reason})
	}

	for _, fb := range feedbacks {
		row, version, ok := owningProduct(res, fb.VersionID)
		if !ok {
			skip(fb, SkipVersionMissing)
			continue
		}

		var endY float64
		if fb.SubProjectID != "" {
			// 收起的项目不会产生子行锚点，这里单独区分原因便于诊断
			if view.IsCollapsed(fb.ProjectID) {
				if _, visible := res.ProjectAnchor(fb.ProjectID); visible {
					skip(fb, SkipCollapsed)
					continue
				}
			}
			endY, ok = res.SubAnchor(fb.ProjectID, fb.SubProjectID)
		} else {
			endY, ok = res.ProjectAnchor(fb.ProjectID)
		}
		if !ok {
			skip(fb, SkipAnchorMissing)
			continue
		}

		offset, ok := axis.ParseOffset(fb.Date)
		if !ok {
			skip(fb, SkipDateUnresolved)
			continue
		}

		links = append(links, Link{
			FeedbackID:   fb.ID,
			VersionID:    version.ID,
			VersionLabel: version.Label,
			ProductID:    row.Product.ID,
			ProductName:  row.Product.Name,
			ProjectID:    fb.ProjectID,
			SubProjectID: fb.SubProjectID,
			Color:        row.Product.Color,
			Source:       Point{X: timeaxis.OffsetToX(version.Time, view.Zoom), Y: row.AnchorY},
			Target:       Point{X: timeaxis.OffsetToX(axis.ClampOffset(offset), view.Zoom), Y: endY},
			Scope:        fb.Scope,
			Quality:      model.ParseQuality(string(fb.Quality)),
			Date:         fb.Date,
		})
	}
	return links, skipped
}

func owningProduct(res *Result, versionID string) (ProductRow, model.Version, bool) {
	for _, row := range res.Products {
		if v, ok := row.Product.FindVersion(versionID); ok {
			return row, v, true
		}
	}
	return ProductRow{}, model.Version{}, false
}
