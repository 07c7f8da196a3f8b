package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/roadmap/layout"
)

var (
	colorHeader = lipgloss.Color("#a5b4fc")
	colorDim    = lipgloss.Color("#64748b")

	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleTitle  = lipgloss.NewStyle().Bold(true)
)

// renderTable 输出按列对齐的表格，列宽按可见宽度计算（中文占两格）。
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const gap = 2
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)+gap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &styleHeader)
	for i, w := range widths {
		b.WriteString(styleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", gap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}

// layoutSummary 把布局结果整理为几张终端表格。
func layoutSummary(title string, res *layout.Result) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(styleTitle.Render(title) + "\n")
	}
	fmt.Fprintf(&b, "%d 天 · %s px/天 · 画布 %s × %s\n\n",
		res.Days, num(res.Zoom), num(res.Width), num(res.TotalHeight))

	projects := make([][]string, 0, len(res.Projects))
	for _, p := range res.Projects {
		state := strconv.Itoa(len(p.SubRows))
		if p.Collapsed {
			state = "已收起"
		}
		projects = append(projects, []string{p.Project.ID, p.Project.Name, num(p.AnchorY), num(p.Height), state})
	}
	b.WriteString(renderTable([]string{"项目", "名称", "锚点", "高度", "子行"}, projects))
	b.WriteString("\n")

	products := make([][]string, 0, len(res.Products))
	for _, p := range res.Products {
		products = append(products, []string{p.Product.ID, p.Product.Name, num(p.AnchorY), strconv.Itoa(len(p.Product.Versions))})
	}
	b.WriteString(renderTable([]string{"产品", "名称", "锚点", "版本"}, products))
	b.WriteString("\n")

	links := make([][]string, 0, len(res.Links))
	for _, l := range res.Links {
		target := l.ProjectID
		if l.SubProjectID != "" {
			target = layout.SubKey(l.ProjectID, l.SubProjectID)
		}
		links = append(links, []string{
			l.FeedbackID, l.VersionID, target,
			point(l.Source), point(l.Target), string(l.Quality),
		})
	}
	b.WriteString(renderTable([]string{"反馈", "版本", "目标", "起点", "终点", "质量"}, links))

	if len(res.Skipped) > 0 {
		b.WriteString("\n")
		skipped := make([][]string, 0, len(res.Skipped))
		for _, s := range res.Skipped {
			skipped = append(skipped, []string{s.FeedbackID, string(s.Reason)})
		}
		b.WriteString(renderTable([]string{"跳过", "原因"}, skipped))
	}
	return b.String()
}

func point(p layout.Point) string {
	return "(" + num(p.X) + ", " + num(p.Y) + ")"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
