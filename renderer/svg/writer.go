package svgrenderer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/roadmap/scene"
)

const xmlns = "http://www.w3.org/2000/svg"

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	// <style> 内容里的引号属于 CSS，不转义
	cssEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

// escape 用于属性值与文本节点。
func escape(s string) string { return attrEscaper.Replace(xmlChars(s)) }

func escapeCSS(s string) string { return cssEscaper.Replace(xmlChars(s)) }

// xmlChars 把非法 UTF-8 字节与 XML 1.0 Char 之外的字符替换为 U+FFFD。
func xmlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return utf8.RuneError
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writer 以缩进形式逐个输出 SVG 元素。
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
}

func (w *writer) line(format string, args ...any) {
	w.indent()
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) open(tag string, attrs string) {
	w.line("<%s%s>", tag, attrs)
	w.depth++
}

func (w *writer) close(tag string) {
	w.depth--
	w.line("</%s>", tag)
}

func (w *writer) String() string { return w.b.String() }

// attrs 收集有序属性，零值浮点数与空串会被省略。
type attrs struct {
	b strings.Builder
}

func (a *attrs) str(name, v string) *attrs {
	if v == "" {
		return a
	}
	fmt.Fprintf(&a.b, ` %s="%s"`, name, escape(v))
	return a
}

func (a *attrs) f(name string, v float64) *attrs {
	if v == 0 {
		return a
	}
	return a.force(name, v)
}

// force 无论取值都输出，用于坐标等 0 有意义的属性。
func (a *attrs) force(name string, v float64) *attrs {
	fmt.Fprintf(&a.b, ` %s="%s"`, name, num(v))
	return a
}

func (a *attrs) String() string { return a.b.String() }

func styleAttrs(a *attrs, st scene.Style) {
	a.str("fill", st.Fill)
	a.f("fill-opacity", st.FillOpacity)
	a.str("stroke", st.Stroke)
	a.f("stroke-width", st.StrokeWidth)
	a.f("stroke-opacity", st.StrokeOpacity)
	a.f("opacity", st.Opacity)
	a.str("stroke-dasharray", st.Dash)
	a.str("stroke-linecap", st.LineCap)
}

func (w *writer) node(n scene.Node) {
	a := &attrs{}
	a.str("id", n.ID)
	a.str("class", n.Class)
	switch n.Kind {
	case scene.KindGroup:
		if n.TX != 0 || n.TY != 0 {
			a.str("transform", fmt.Sprintf("translate(%s, %s)", num(n.TX), num(n.TY)))
		}
		styleAttrs(a, n.Style)
		if len(n.Children) == 0 {
			w.line("<g%s/>", a)
			return
		}
		w.open("g", a.String())
		for _, c := range n.Children {
			w.node(c)
		}
		w.close("g")
	case scene.KindRect:
		a.force("x", n.X).force("y", n.Y).force("width", n.W).force("height", n.H).f("rx", n.RX)
		styleAttrs(a, n.Style)
		w.line("<rect%s/>", a)
	case scene.KindLine:
		a.force("x1", n.X1).force("y1", n.Y1).force("x2", n.X2).force("y2", n.Y2)
		styleAttrs(a, n.Style)
		w.line("<line%s/>", a)
	case scene.KindCircle:
		a.force("cx", n.CX).force("cy", n.CY).force("r", n.R)
		styleAttrs(a, n.Style)
		w.line("<circle%s/>", a)
	case scene.KindPath:
		a.str("d", n.D)
		st := n.Style
		if st.Fill == "" {
			st.Fill = "none"
		}
		styleAttrs(a, st)
		w.line("<path%s/>", a)
	case scene.KindText:
		a.force("x", n.X).force("y", n.Y)
		if n.Anchor != "" && n.Anchor != "start" {
			a.str("text-anchor", n.Anchor)
		}
		// 行内 style 优先级高于样式表，保证彩色文本不被 class 覆盖
		if n.Style.Fill != "" {
			a.str("style", "fill: "+n.Style.Fill)
		}
		w.line("<text%s>%s</text>", a, escape(n.Text))
	}
}

// styleSheet 由主题生成 <style> 内容。
func styleSheet(th scene.Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "text { font-family: %s; dominant-baseline: middle; fill: #ffffff; }\n", th.FontStack(false))
	for _, class := range sortedClasses(th) {
		ts := th.TextStyle(class)
		fmt.Fprintf(&b, ".%s { font-size: %spx; font-weight: %d;", class, num(ts.Size), ts.Weight)
		if ts.Fill != "" {
			fmt.Fprintf(&b, " fill: %s;", ts.Fill)
		}
		if ts.Mono {
			fmt.Fprintf(&b, " font-family: %s;", th.FontStack(true))
		}
		if ts.Italic {
			b.WriteString(" font-style: italic;")
		}
		b.WriteString(" }\n")
	}
	return b.String()
}

func (w *writer) style(th scene.Theme) {
	w.open("style", ` type="text/css"`)
	for _, ln := range strings.Split(strings.TrimRight(styleSheet(th), "\n"), "\n") {
		w.line("%s", escapeCSS(ln))
	}
	w.close("style")
}
