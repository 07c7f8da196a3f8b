package layout

import "github.com/ByLCY/roadmap/model"

// FilterProjects 去掉隐藏的项目，再按包含型筛选收窄，保持输入顺序。
func FilterProjects(all []model.Project, hidden model.IDSet, include model.Selection) []model.Project {
	out := make([]model.Project, 0, len(all))
	for _, p := range all {
		if hidden.Has(p.ID) {
			continue
		}
		if !include.Includes(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterProducts 与 FilterProjects 规则相同，但没有隐藏列表。
func FilterProducts(all []model.Product, include model.Selection) []model.Product {
	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if include.Includes(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
