// Package config 读取看板的 YAML 配置：初始视图、主题覆盖、行尺寸与导出参数。
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/model"
	"github.com/ByLCY/roadmap/scene"
	"github.com/ByLCY/roadmap/timeaxis"
)

// Config 是配置文件的完整结构。未出现的字段保持 Default 中的取值。
type Config struct {
	View   ViewConfig   `yaml:"view"`
	Theme  ThemeConfig  `yaml:"theme"`
	Layout LayoutConfig `yaml:"layout"`
	Export ExportConfig `yaml:"export"`
}

// ViewConfig 描述启动时的视图状态。
type ViewConfig struct {
	Zoom        float64  `yaml:"zoom"`        // 每天的像素宽度，超出范围时夹紧
	Granularity string   `yaml:"granularity"` // day / week / month
	Hidden      []string `yaml:"hidden"`      // 隐藏的项目 id
	Collapsed   []string `yaml:"collapsed"`   // 收起子行的项目 id
	// 项目与产品筛选：省略表示全部，写成 [] 表示全部排除
	Projects []string `yaml:"projects"`
	Products []string `yaml:"products"`
	Hovered  string   `yaml:"hovered"`
}

// ThemeConfig 覆盖默认主题的部分字段，空值表示沿用默认。
type ThemeConfig struct {
	Background   string                        `yaml:"background"`
	GridStroke   string                        `yaml:"grid_stroke"`
	CardFill     string                        `yaml:"card_fill"`
	BandPalette  []string                      `yaml:"band_palette"`
	FontFamilies []string                      `yaml:"font_families"`
	MonoFamilies []string                      `yaml:"mono_families"`
	Text         map[string]TextConfig         `yaml:"text"`
	Qualities    map[string]scene.QualityStyle `yaml:"qualities"`
}

// TextConfig 覆盖某个文本 class。Size 支持 "13"、"13px"、"10pt"、"3.5mm"。
type TextConfig struct {
	Size   string `yaml:"size"`
	Weight int    `yaml:"weight"`
	Fill   string `yaml:"fill"`
}

// LayoutConfig 覆盖行布局尺寸（像素），0 表示沿用默认。
type LayoutConfig struct {
	SectionHeader float64 `yaml:"section_header"`
	ProjectRow    float64 `yaml:"project_row"`
	SubRowOffset  float64 `yaml:"sub_row_offset"`
	Connector     float64 `yaml:"connector"`
	ProductRow    float64 `yaml:"product_row"`
	Footer        float64 `yaml:"footer"`
}

// ExportConfig 控制导出行为。
type ExportConfig struct {
	Format string `yaml:"format"` // svg / pdf / png
	Minify bool   `yaml:"minify"`
	// FileName 是文件名模板，可引用 ${title}、${date}、${ext}；为空时使用默认命名
	FileName string  `yaml:"file_name"`
	FontPath string  `yaml:"font_path"`
	DPMM     float64 `yaml:"dpmm"` // PNG 分辨率，像素/毫米
}

// Default 返回内置配置：14px/天、按周刻度、全部可见、导出 SVG。
func Default() Config {
	return Config{
		View: ViewConfig{
			Zoom:        timeaxis.DefaultZoom,
			Granularity: string(timeaxis.Week),
		},
		Export: ExportConfig{
			Format: "svg",
			DPMM:   layout.MmToPx,
		},
	}
}

// Load 读取配置文件；path 为空时返回 Default。
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 在默认配置之上解析 YAML 内容。
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查无法靠夹紧修复的取值。
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.Format) {
	case "", "svg", "pdf", "png":
	default:
		return fmt.Errorf("不支持的导出格式 %q", c.Export.Format)
	}
	for class, t := range c.Theme.Text {
		if t.Size != "" && layout.ParseLength(t.Size).IsZero() {
			return fmt.Errorf("文本样式 %s 的字号无效: %q", class, t.Size)
		}
	}
	for q := range c.Theme.Qualities {
		if model.ParseQuality(strings.ToUpper(q)) != model.Quality(strings.ToUpper(q)) {
			return fmt.Errorf("未知的交付质量 %q", q)
		}
	}
	return nil
}

// ViewState 把视图配置转换为核心使用的视图状态。
func (c Config) ViewState() model.ViewState {
	v := model.ViewState{
		Zoom:          c.View.Zoom,
		Granularity:   timeaxis.ParseGranularity(c.View.Granularity),
		Hidden:        model.NewIDSet(c.View.Hidden...),
		Collapsed:     model.NewIDSet(c.View.Collapsed...),
		ProjectFilter: selection(c.View.Projects),
		ProductFilter: selection(c.View.Products),
		Hovered:       c.View.Hovered,
	}
	return v.Normalized()
}

func selection(ids []string) model.Selection {
	if ids == nil {
		return model.ResetSelection()
	}
	return model.Selection{Explicit: true, IDs: model.NewIDSet(ids...)}
}

// SceneTheme 把主题覆盖合并到默认主题上。
func (c Config) SceneTheme() scene.Theme {
	th := scene.DefaultTheme()
	t := c.Theme
	if t.Background != "" {
		th.Background = t.Background
	}
	if t.GridStroke != "" {
		th.GridStroke = t.GridStroke
	}
	if t.CardFill != "" {
		th.CardFill = t.CardFill
	}
	if len(t.BandPalette) > 0 {
		th.BandPalette = append([]string(nil), t.BandPalette...)
	}
	if len(t.FontFamilies) > 0 {
		th.FontFamilies = append([]string(nil), t.FontFamilies...)
	}
	if len(t.MonoFamilies) > 0 {
		th.MonoFamilies = append([]string(nil), t.MonoFamilies...)
	}
	for class, o := range t.Text {
		ts := th.TextStyle(class)
		if l := layout.ParseLength(o.Size); !l.IsZero() {
			ts.Size = l.ToPX()
		}
		if o.Weight > 0 {
			ts.Weight = o.Weight
		}
		if o.Fill != "" {
			ts.Fill = o.Fill
		}
		th.Text[class] = ts
	}
	for q, o := range t.Qualities {
		quality := model.ParseQuality(strings.ToUpper(q))
		qs := th.Quality(quality)
		if o.Color != "" {
			qs.Color = o.Color
		}
		if o.Background != "" {
			qs.Background = o.Background
		}
		if o.Stroke != "" {
			qs.Stroke = o.Stroke
		}
		th.Qualities[quality] = qs
	}
	return th
}

// Metrics 返回合并后的行布局尺寸。
func (c Config) Metrics() layout.Metrics {
	m := layout.DefaultMetrics()
	l := c.Layout
	for _, f := range []struct {
		dst *float64
		v   float64
	}{
		{&m.SectionHeader, l.SectionHeader},
		{&m.ProjectRow, l.ProjectRow},
		{&m.SubRowOffset, l.SubRowOffset},
		{&m.Connector, l.Connector},
		{&m.ProductRow, l.ProductRow},
		{&m.Footer, l.Footer},
	} {
		if f.v > 0 {
			*f.dst = f.v
		}
	}
	return m
}
