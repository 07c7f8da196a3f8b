package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

// executeCmd 运行命令并分别捕获标准输出与标准错误。
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&app{stdout: &stdout, stderr: &stderr, now: func() time.Time { return fixedNow }})
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExportSVGToStdout(t *testing.T) {
	out, _, err := executeCmd(t, "export", "--demo")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" standalone="no"?>`))
	assert.Contains(t, out, `viewBox="-300 -60 `)
}

func TestExportSVGToDirectory(t *testing.T) {
	dir := t.TempDir()
	out, _, err := executeCmd(t, "export", "--demo", "--out", dir, "--name", "${title}-${date}")
	require.NoError(t, err)

	path := filepath.Join(dir, "项目产品协同演进全景看板-2026-03-04.svg")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.pdf")
	_, _, err := executeCmd(t, "export", "--demo", "-f", "pdf", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportFromFileWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "roadmap.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
view:
  collapsed: [proj-1]
theme:
  background: "#000000"
export:
  minify: true
`), 0o644))

	out, _, err := executeCmd(t, "export", "--config", cfgPath, filepath.Join("examples", "demo.roadmap"))
	require.NoError(t, err)
	assert.Contains(t, out, "#000")
	assert.NotContains(t, out, "底层服务拆分")
	assert.Contains(t, out, "核心架构 4.0 重构")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, _, err := executeCmd(t, "export", "--demo", "-f", "gif")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gif")
}

func TestDatasetArgumentErrors(t *testing.T) {
	_, _, err := executeCmd(t, "layout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--demo")

	_, _, err = executeCmd(t, "layout", "--demo", "x.roadmap")
	require.Error(t, err)

	_, _, err = executeCmd(t, "layout", filepath.Join(t.TempDir(), "missing.roadmap"))
	require.Error(t, err)
}

func TestLayoutSummary(t *testing.T) {
	out, _, err := executeCmd(t, "layout", "--demo")
	require.NoError(t, err)
	assert.Contains(t, out, "1096 天")
	assert.Contains(t, out, "proj-1")
	assert.Contains(t, out, "prod-2")
	assert.Contains(t, out, "proj-1::sub-1-1")
	assert.NotContains(t, out, "跳过")
}

func TestLayoutJSONAndDebugFile(t *testing.T) {
	debugPath := filepath.Join(t.TempDir(), "debug", "layout.json")
	out, _, err := executeCmd(t, "layout", "--demo", "--json", "--debug", debugPath)
	require.NoError(t, err)

	var parsed struct {
		Days  int `json:"days"`
		Links []struct {
			FeedbackID string `json:"feedbackId"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 1096, parsed.Days)
	assert.Len(t, parsed.Links, 5)

	data, err := os.ReadFile(debugPath)
	require.NoError(t, err)
	assert.JSONEq(t, strings.TrimSpace(out), string(data))
}

func TestTicksMonth(t *testing.T) {
	out, _, err := executeCmd(t, "ticks", "--demo", "-g", "month")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// 表头、分隔线与 36 个月
	assert.Len(t, lines, 38)
	assert.Contains(t, lines[2], "2026-01")
	assert.Contains(t, lines[2], "434")
}

func TestLogLevel(t *testing.T) {
	_, stderr, err := executeCmd(t, "layout", "--demo", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=frame_computed")

	_, _, err = executeCmd(t, "layout", "--demo", "--log-level", "loud")
	require.Error(t, err)
}
