package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/roadmap/layout"
	"github.com/ByLCY/roadmap/model"
	"github.com/ByLCY/roadmap/scene"
	"github.com/ByLCY/roadmap/timeaxis"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	v := cfg.ViewState()
	assert.Equal(t, model.DefaultView().Zoom, v.Zoom)
	assert.Equal(t, timeaxis.Week, v.Granularity)
	assert.True(t, v.ProjectFilter.All())
	assert.True(t, v.ProductFilter.All())
}

func TestParseKeepsDefaultsForOmittedFields(t *testing.T) {
	cfg, err := Parse([]byte(`
view:
  granularity: Month
  collapsed: [proj-1]
export:
  minify: true
`))
	require.NoError(t, err)
	assert.Equal(t, timeaxis.DefaultZoom, cfg.View.Zoom)
	assert.Equal(t, "svg", cfg.Export.Format)
	assert.True(t, cfg.Export.Minify)

	v := cfg.ViewState()
	assert.Equal(t, timeaxis.Month, v.Granularity)
	assert.True(t, v.IsCollapsed("proj-1"))
}

func TestViewStateSelections(t *testing.T) {
	cfg, err := Parse([]byte(`
view:
  zoom: 500
  hidden: [proj-2]
  projects: [proj-1, proj-3]
  products: []
  hovered: f-1
`))
	require.NoError(t, err)

	v := cfg.ViewState()
	assert.Equal(t, timeaxis.MaxZoom, v.Zoom)
	assert.True(t, v.Hidden.Has("proj-2"))
	assert.True(t, v.ProjectFilter.Includes("proj-3"))
	assert.False(t, v.ProjectFilter.Includes("proj-2"))
	// 显式空列表：全部排除，而不是退回全选
	assert.False(t, v.ProductFilter.All())
	assert.False(t, v.ProductFilter.Includes("prod-1"))
	assert.Equal(t, "f-1", v.Hovered)
}

func TestSceneThemeOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
theme:
  background: "#000000"
  band_palette: ["#111111"]
  font_families: [Noto Sans SC, sans-serif]
  text:
    project-label: { size: 12pt, fill: "#eeeeee" }
    custom: { size: "10" }
  qualities:
    poc: { color: "#ff0000" }
`))
	require.NoError(t, err)

	th := cfg.SceneTheme()
	def := scene.DefaultTheme()
	assert.Equal(t, "#000000", th.Background)
	assert.Equal(t, def.GridStroke, th.GridStroke)
	assert.Equal(t, "#111111", th.BandColor(3))
	assert.Equal(t, []string{"Noto Sans SC", "sans-serif"}, th.FontFamilies)

	label := th.TextStyle(scene.ClassProjectLabel)
	assert.InDelta(t, 16.0, label.Size, 0.01)
	assert.Equal(t, "#eeeeee", label.Fill)
	assert.Equal(t, def.TextStyle(scene.ClassProjectLabel).Weight, label.Weight)
	assert.Equal(t, 10.0, th.TextStyle("custom").Size)

	poc := th.Quality(model.QualityPOC)
	assert.Equal(t, "#ff0000", poc.Color)
	assert.Equal(t, def.Quality(model.QualityPOC).Background, poc.Background)

	// 覆盖不影响默认主题
	assert.Equal(t, "#fbbf24", scene.DefaultTheme().Quality(model.QualityPOC).Color)
}

func TestMetricsOverrides(t *testing.T) {
	cfg, err := Parse([]byte("layout:\n  project_row: 90\n"))
	require.NoError(t, err)
	m := cfg.Metrics()
	assert.Equal(t, 90.0, m.ProjectRow)
	assert.Equal(t, layout.DefaultMetrics().ProductRow, m.ProductRow)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"format":  "export:\n  format: gif\n",
		"size":    "theme:\n  text:\n    badge-label: { size: big }\n",
		"quality": "theme:\n  qualities:\n    beta: { color: red }\n",
		"yaml":    "view: [",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  format: pdf\n  dpmm: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf", cfg.Export.Format)
	assert.Equal(t, 8.0, cfg.Export.DPMM)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
