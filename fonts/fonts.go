// Package fonts 解析 PDF/PNG 渲染使用的字体来源。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fallbacks 是主题字体都不可用时依次尝试的系统字体，优先覆盖中文。
var Fallbacks = []string{"Noto Sans CJK SC", "Source Han Sans SC", "WenQuanYi Micro Hei", "DejaVu Sans", "Arial"}

// Load 读取字体文件，path 可写为 "file:fonts/a.ttf" 或直接写路径；相对路径基于 baseDir。
func Load(path, baseDir string) ([]byte, error) {
	path = strings.TrimSpace(strings.TrimPrefix(path, "file:"))
	if path == "" {
		return nil, fmt.Errorf("字体路径为空")
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

// Candidates 返回按顺序尝试的系统字体名：先主题字体，再 Fallbacks，去掉 CSS 通用族名与重复项。
func Candidates(families []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(families)+len(Fallbacks))
	for _, list := range [][]string{families, Fallbacks} {
		for _, name := range list {
			name = strings.Trim(strings.TrimSpace(name), `"'`)
			if IsGeneric(name) || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// IsGeneric 判断是否为 CSS 通用字体族名，这类名字无法映射到具体字体文件。
func IsGeneric(name string) bool {
	switch strings.TrimSpace(name) {
	case "", "serif", "sans-serif", "monospace", "ui-monospace", "system-ui", "cursive", "fantasy":
		return true
	}
	return false
}
