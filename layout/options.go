package layout

import "log/slog"

// Metrics 定义行布局使用的固定尺寸（像素）。
type Metrics struct {
	SectionHeader float64 `json:"sectionHeader"` // 项目区与产品区各自的标题高度
	ProjectRow    float64 `json:"projectRow"`    // 项目区块的行单位
	SubRowOffset  float64 `json:"subRowOffset"`  // 第一条子行相对主锚点的偏移
	Connector     float64 `json:"connector"`     // 项目区与产品区之间的连接带
	ProductRow    float64 `json:"productRow"`
	Footer        float64 `json:"footer"`
}

// DefaultMetrics 返回看板的标准尺寸。
func DefaultMetrics() Metrics {
	return Metrics{
		SectionHeader: 64,
		ProjectRow:    120,
		SubRowOffset:  28,
		Connector:     70,
		ProductRow:    130,
		Footer:        100,
	}
}

// BuildOptions 配置布局阶段。零值可直接使用。
type BuildOptions struct {
	Metrics *Metrics
	// Logger 接收被跳过反馈的调试日志，为空时不输出。
	Logger *slog.Logger
}

func (o BuildOptions) metrics() Metrics {
	if o.Metrics == nil {
		return DefaultMetrics()
	}
	return *o.Metrics
}
