package binding

import (
	"fmt"
	"strings"
)

// Interpolate 展开模板中的 ${key} 占位符，主要用于导出文件名，例如 "${title}_${date}.svg"。
// key 可以用点号进入嵌套 map（${meta.owner}），${key|默认值} 在取不到值时使用默认值。
// 其余占位符原样保留，未闭合的 "${" 也按普通文本处理。
func Interpolate(text string, data map[string]any) string {
	var b strings.Builder
	for {
		open := strings.Index(text, "${")
		if open < 0 {
			break
		}
		end := strings.IndexByte(text[open+2:], '}')
		if end < 0 {
			break
		}
		ref := text[open+2 : open+2+end]
		b.WriteString(text[:open])
		b.WriteString(expand(ref, data))
		text = text[open+2+end+1:]
	}
	b.WriteString(text)
	return b.String()
}

func expand(ref string, data map[string]any) string {
	key, fallback, hasFallback := strings.Cut(ref, "|")
	if s, ok := lookup(data, strings.TrimSpace(key)); ok {
		return s
	}
	if hasFallback {
		return strings.TrimSpace(fallback)
	}
	return "${" + ref + "}"
}

// lookup 沿点号路径取值，空字符串视为缺失。
func lookup(data map[string]any, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	var cur any = data
	for _, part := range strings.Split(key, ".") {
		switch m := cur.(type) {
		case map[string]any:
			cur = m[part]
		case map[string]string:
			cur = m[part]
		default:
			return "", false
		}
	}
	if cur == nil {
		return "", false
	}
	s := fmt.Sprint(cur)
	return s, s != ""
}
