package layout

import "github.com/ByLCY/roadmap/model"

// Rows 计算纵向堆叠：先是项目区块（高度随收起状态变化），接着是固定高度的连接带，
// 最后是产品行。projects 与 products 应为已经过筛选的有序列表。
//
// 坐标从 0 开始，项目区与产品区各自先让出一个标题高度。
func Rows(projects []model.Project, products []model.Product, collapsed model.IDSet, m Metrics) *Result {
	res := &Result{
		Projects:       make([]ProjectBlock, 0, len(projects)),
		Products:       make([]ProductRow, 0, len(products)),
		ProjectAnchors: make(map[string]float64, len(projects)),
		SubAnchors:     map[string]float64{},
	}

	top := m.SectionHeader
	for i, p := range projects {
		isCollapsed := collapsed.Has(p.ID)
		visible := p.SubProjects
		if isCollapsed {
			visible = nil
		}
		block := ProjectBlock{
			Project:   p,
			Index:     i,
			Top:       top,
			Height:    m.ProjectRow * float64(1+len(visible)),
			AnchorY:   top + m.ProjectRow/2,
			Collapsed: isCollapsed,
			SubRows:   make([]SubRow, 0, len(visible)),
		}
		res.ProjectAnchors[p.ID] = block.AnchorY
		for si, sub := range visible {
			y := block.AnchorY + m.SubRowOffset + float64(si)*m.ProjectRow
			block.SubRows = append(block.SubRows, SubRow{SubProject: sub, AnchorY: y})
			res.SubAnchors[SubKey(p.ID, sub.ID)] = y
		}
		res.Projects = append(res.Projects, block)
		top += block.Height
	}

	res.ProjectAreaHeight = top
	res.ConnectorTop = top
	res.ProductAreaTop = top + m.Connector

	rowTop := res.ProductAreaTop + m.SectionHeader
	for i, p := range products {
		res.Products = append(res.Products, ProductRow{
			Product: p,
			Index:   i,
			Top:     rowTop,
			AnchorY: rowTop + m.ProductRow/2,
		})
		rowTop += m.ProductRow
	}
	res.ProductAreaHeight = m.SectionHeader + float64(len(products))*m.ProductRow
	res.TotalHeight = res.ProjectAreaHeight + m.Connector + res.ProductAreaHeight + m.Footer
	return res
}
