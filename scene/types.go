// Package scene 把布局结果转换为一组带定位的矢量图元。
//
// 场景只有一个坐标空间：宽为 horizonDays × zoom，高为布局总高度，原点在左上角。
// 场景本身不关心文件或导出；导出器会先 Clone 再做独立变换。
package scene

// Kind 标识图元类型，取值与 SVG 元素名一致。
type Kind string

const (
	KindGroup  Kind = "g"
	KindRect   Kind = "rect"
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindText   Kind = "text"
)

// Style 描述描边与填充。透明度字段为 0 表示未设置（按 1 处理）。
type Style struct {
	Fill          string  `json:"fill,omitempty"`
	FillOpacity   float64 `json:"fillOpacity,omitempty"`
	Stroke        string  `json:"stroke,omitempty"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty"`
	StrokeOpacity float64 `json:"strokeOpacity,omitempty"`
	Opacity       float64 `json:"opacity,omitempty"`
	Dash          string  `json:"dash,omitempty"`
	LineCap       string  `json:"lineCap,omitempty"`
}

// Node 是场景树中的一个节点。不同 Kind 只使用与之相关的字段。
type Node struct {
	Kind  Kind   `json:"kind"`
	ID    string `json:"id,omitempty"`
	Class string `json:"class,omitempty"`
	Style Style  `json:"style"`

	// 组：平移量、子节点，以及是否仅用于交互显示（导出时会被移除）
	TX          float64 `json:"tx,omitempty"`
	TY          float64 `json:"ty,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Children    []Node  `json:"children,omitempty"`

	// rect
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
	RX float64 `json:"rx,omitempty"`

	// line
	X1 float64 `json:"x1,omitempty"`
	Y1 float64 `json:"y1,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	// circle
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	// path，SVG 路径语法
	D string `json:"d,omitempty"`

	// text，X/Y 为文本锚点
	Text   string `json:"text,omitempty"`
	Anchor string `json:"anchor,omitempty"` // start | middle | end
}

// HeaderCell 是时间刻度表头中的一格，X/Width 为场景坐标。
type HeaderCell struct {
	Offset int     `json:"offset"`
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Label  string  `json:"label"`
}

// SidebarKind 区分侧边栏行的类别。
type SidebarKind string

const (
	SidebarProject SidebarKind = "project"
	SidebarProduct SidebarKind = "product"
)

// SidebarLabel 是侧边栏中的一行名称，Y 与对应行的锚点一致。
type SidebarLabel struct {
	Kind     SidebarKind `json:"kind"`
	ID       string      `json:"id"`
	Y        float64     `json:"y"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Color    string      `json:"color"`
}

// Scene 是一次完整渲染的矢量快照。
type Scene struct {
	Title      string  `json:"title"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	// 视口左上角。界面场景为 (0, 0)，独立导出场景为负值以容纳表头与侧边栏。
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`

	// Layers 按绘制顺序排列的顶层分组。
	Layers []Node `json:"layers"`

	// Header 与 Sidebar 在界面上由宿主绘制在画布之外，导出时会被镜像进同一坐标系。
	Header  []HeaderCell   `json:"header"`
	Sidebar []SidebarLabel `json:"sidebar"`
}

// Clone 返回场景的深拷贝。
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	out := *s
	out.Layers = cloneNodes(s.Layers)
	out.Header = append([]HeaderCell(nil), s.Header...)
	out.Sidebar = append([]SidebarLabel(nil), s.Sidebar...)
	return &out
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Children = cloneNodes(n.Children)
		out[i] = n
	}
	return out
}

// Walk 以深度优先顺序访问所有节点；fn 返回 false 时不再进入该节点的子节点。
func (s *Scene) Walk(fn func(n *Node) bool) {
	if s == nil {
		return
	}
	for i := range s.Layers {
		walk(&s.Layers[i], fn)
	}
}

func walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for i := range n.Children {
		walk(&n.Children[i], fn)
	}
}

// Find 按 id 查找节点。
func (s *Scene) Find(id string) (*Node, bool) {
	var found *Node
	s.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// StripInteractive 移除所有仅用于交互显示的分组（就地修改）。
func (s *Scene) StripInteractive() {
	if s == nil {
		return
	}
	s.Layers = stripInteractive(s.Layers)
}

func stripInteractive(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Interactive {
			continue
		}
		n.Children = stripInteractive(n.Children)
		out = append(out, n)
	}
	return out
}

// Group 构造一个平移分组。
func Group(id string, tx, ty float64, children ...Node) Node {
	return Node{Kind: KindGroup, ID: id, TX: tx, TY: ty, Children: children}
}

func Rect(x, y, w, h, rx float64, st Style) Node {
	return Node{Kind: KindRect, X: x, Y: y, W: w, H: h, RX: rx, Style: st}
}

func Line(x1, y1, x2, y2 float64, st Style) Node {
	return Node{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: st}
}

func Circle(cx, cy, r float64, st Style) Node {
	return Node{Kind: KindCircle, CX: cx, CY: cy, R: r, Style: st}
}

func Path(d string, st Style) Node {
	return Node{Kind: KindPath, D: d, Style: st}
}

// Text 构造文本节点，字号与字重由 class 对应的主题样式决定。
func Text(x, y float64, text, class, anchor string, fill string) Node {
	return Node{Kind: KindText, X: x, Y: y, Text: text, Class: class, Anchor: anchor, Style: Style{Fill: fill}}
}
