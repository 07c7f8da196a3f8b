package scene

import (
	"strings"

	"github.com/ByLCY/roadmap/model"
)

// TextStyle 是某个文本 class 的呈现参数，字号单位为像素。
type TextStyle struct {
	Size   float64 `yaml:"size" json:"size"`
	Weight int     `yaml:"weight" json:"weight"`
	Fill   string  `yaml:"fill" json:"fill"`
	Mono   bool    `yaml:"mono" json:"mono"`
	Italic bool    `yaml:"italic" json:"italic"`
}

// QualityStyle 是交付质量徽标的三种颜色。
type QualityStyle struct {
	Color      string `yaml:"color" json:"color"`
	Background string `yaml:"background" json:"background"`
	Stroke     string `yaml:"stroke" json:"stroke"`
}

// Theme 汇总场景与导出使用的颜色和字体。
type Theme struct {
	Background    string   `yaml:"background" json:"background"`
	GridStroke    string   `yaml:"gridStroke" json:"gridStroke"`
	ConnectorFill string   `yaml:"connectorFill" json:"connectorFill"`
	ConnectorLine string   `yaml:"connectorLine" json:"connectorLine"`
	HeaderCell    string   `yaml:"headerCell" json:"headerCell"`
	CardFill      string   `yaml:"cardFill" json:"cardFill"`
	BandPalette   []string `yaml:"bandPalette" json:"bandPalette"`

	BandFillOpacity   float64 `yaml:"bandFillOpacity" json:"bandFillOpacity"`
	BandStrokeOpacity float64 `yaml:"bandStrokeOpacity" json:"bandStrokeOpacity"`

	// 字体回退链，按顺序写入导出样式
	FontFamilies []string `yaml:"fontFamilies" json:"fontFamilies"`
	MonoFamilies []string `yaml:"monoFamilies" json:"monoFamilies"`

	Text      map[string]TextStyle           `yaml:"text" json:"text"`
	Qualities map[model.Quality]QualityStyle `yaml:"qualities" json:"qualities"`
}

// 文本 class 名称。
const (
	ClassProjectLabel = "project-label"
	ClassSubLabel     = "sub-label"
	ClassVersionLabel = "version-label"
	ClassFeature      = "feature-label"
	ClassBadge        = "badge-label"
	ClassCardCaption  = "card-caption"
	ClassCardProduct  = "card-product"
	ClassCardValue    = "card-value"
	ClassTimeLabel    = "time-label"
	ClassExportLabel  = "export-label"
	ClassExportSub    = "export-sub"
)

// DefaultTheme 返回深色看板主题。
func DefaultTheme() Theme {
	return Theme{
		Background:        "#0f172a",
		GridStroke:        "#1e293b",
		ConnectorFill:     "#020617",
		ConnectorLine:     "#334155",
		HeaderCell:        "#1e293b",
		CardFill:          "#0b1220",
		BandPalette:       []string{"#2563eb", "#16a34a", "#ea580c", "#dc2626", "#7c3aed", "#0f766e", "#ca8a04"},
		BandFillOpacity:   0.2,
		BandStrokeOpacity: 0.5,
		FontFamilies:      []string{"PingFang SC", "Microsoft YaHei", "sans-serif"},
		MonoFamilies:      []string{"ui-monospace", "monospace"},
		Text: map[string]TextStyle{
			ClassProjectLabel: {Size: 13, Weight: 900, Fill: "#f1f5f9"},
			ClassSubLabel:     {Size: 12, Weight: 900, Fill: "#f1f5f9"},
			ClassVersionLabel: {Size: 11, Weight: 900},
			ClassFeature:      {Size: 9, Weight: 700, Fill: "#64748b", Italic: true},
			ClassBadge:        {Size: 11, Weight: 900},
			ClassCardCaption:  {Size: 10, Weight: 900, Fill: "#64748b"},
			ClassCardProduct:  {Size: 10, Weight: 900, Fill: "#a5b4fc"},
			ClassCardValue:    {Size: 12, Weight: 900, Fill: "#ffffff"},
			ClassTimeLabel:    {Size: 11, Weight: 900, Fill: "#ffffff", Mono: true},
			ClassExportLabel:  {Size: 14, Weight: 900, Fill: "#ffffff"},
			ClassExportSub:    {Size: 9, Weight: 700, Fill: "#94a3b8"},
		},
		Qualities: map[model.Quality]QualityStyle{
			model.QualitySOP: {Color: "#10b981", Background: "#10b98115", Stroke: "#10b98144"},
			model.QualityPOC: {Color: "#fbbf24", Background: "#f59e0b15", Stroke: "#f59e0b44"},
			model.QualityOTA: {Color: "#60a5fa", Background: "#3b82f615", Stroke: "#3b82f644"},
		},
	}
}

// Quality 返回质量对应的徽标颜色，未配置时回退为 SOP 配色。
func (t Theme) Quality(q model.Quality) QualityStyle {
	if s, ok := t.Qualities[q]; ok {
		return s
	}
	if s, ok := t.Qualities[model.QualitySOP]; ok {
		return s
	}
	return DefaultTheme().Qualities[model.QualitySOP]
}

// TextStyle 返回 class 对应的文本样式，未知 class 使用 12px 常规字重。
func (t Theme) TextStyle(class string) TextStyle {
	if s, ok := t.Text[class]; ok {
		return s
	}
	return TextStyle{Size: 12, Weight: 400, Fill: "#ffffff"}
}

// BandColor 按项目序号循环取背景色。
func (t Theme) BandColor(i int) string {
	if len(t.BandPalette) == 0 {
		return t.GridStroke
	}
	return t.BandPalette[i%len(t.BandPalette)]
}

// FontStack 返回 CSS font-family 值。
func (t Theme) FontStack(mono bool) string {
	families := t.FontFamilies
	if mono && len(t.MonoFamilies) > 0 {
		families = t.MonoFamilies
	}
	return cssFamilies(families)
}

// 字体名里的引号与反斜杠会破坏 CSS 字符串，直接去掉。
var familyCleaner = strings.NewReplacer(`"`, "", `\`, "")

func cssFamilies(families []string) string {
	parts := make([]string, 0, len(families))
	for _, f := range families {
		f = strings.TrimSpace(familyCleaner.Replace(f))
		if f == "" {
			continue
		}
		switch f {
		case "serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui", "ui-monospace":
			parts = append(parts, f)
		default:
			parts = append(parts, `"`+f+`"`)
		}
	}
	return strings.Join(parts, ", ")
}
