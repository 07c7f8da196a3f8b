package fonts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ttf"), []byte("font"), 0o644); err != nil {
		t.Fatalf("写入测试字体失败: %v", err)
	}
	for _, path := range []string{"a.ttf", "file:a.ttf", filepath.Join(dir, "a.ttf")} {
		data, err := Load(path, dir)
		if err != nil {
			t.Fatalf("%s 读取失败: %v", path, err)
		}
		if string(data) != "font" {
			t.Fatalf("%s 内容错误: %q", path, data)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("", ""); err == nil {
		t.Fatalf("空路径应报错")
	}
	_, err := Load("missing.ttf", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "missing.ttf") {
		t.Fatalf("错误信息应包含路径: %v", err)
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates([]string{"PingFang SC", `"Arial"`, "sans-serif", "PingFang SC"})
	if got[0] != "PingFang SC" || got[1] != "Arial" {
		t.Fatalf("主题字体应排在前面: %v", got)
	}
	seen := map[string]int{}
	for _, name := range got {
		seen[name]++
		if IsGeneric(name) {
			t.Fatalf("不应包含通用族名: %v", got)
		}
	}
	if seen["PingFang SC"] != 1 || seen["Arial"] != 1 {
		t.Fatalf("应去重: %v", got)
	}
	if len(got) != len(Fallbacks)+1 {
		t.Fatalf("候选数量错误: %v", got)
	}
}

func TestIsGeneric(t *testing.T) {
	if !IsGeneric("sans-serif") || !IsGeneric(" monospace ") || IsGeneric("PingFang SC") {
		t.Fatalf("通用字体族判断错误")
	}
}
