package model

// 该文件定义看板的数据集实体。核心只读取这些值，编辑由外部协作方完成。

// 默认的时间窗口参数。
const (
	DefaultStartYear  = 2026
	DefaultStartMonth = 1
	DefaultMonths     = 36
	MaxMonths         = 120
)

// Dataset 是一次渲染所需的完整数据快照。
type Dataset struct {
	Title      string     `json:"title"`
	StartYear  int        `json:"startYear"`
	StartMonth int        `json:"startMonth"`
	Months     int        `json:"months"`
	Projects   []Project  `json:"projects"`
	Products   []Product  `json:"products"`
	Feedbacks  []Feedback `json:"feedbacks"`
}

// Project 表示一条项目轨道，Start/End 为相对起始日期的天数偏移（End 不含）。
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Start       int          `json:"start"`
	End         int          `json:"end"`
	Color       string       `json:"color"`
	SubProjects []SubProject `json:"subProjects"`
}

// SubProject 必须落在父项目的时间范围内。
type SubProject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Product 表示一条产品演进序列。
type Product struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Versions []Version `json:"versions"`
}

// Version 是产品的一个版本节点，Time 为天数偏移。
type Version struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Time     int      `json:"time"`
	Features []string `json:"features"`
}

// Feedback 连接一个产品版本与一个项目（或子项目）。
// SubProjectID 为空表示连接到项目主轨道。
type Feedback struct {
	ID           string  `json:"id"`
	VersionID    string  `json:"versionId"`
	ProjectID    string  `json:"projectId"`
	SubProjectID string  `json:"subProjectId,omitempty"`
	Scope        string  `json:"scope"`
	Quality      Quality `json:"quality"`
	Date         string  `json:"date"`
}

// Quality 是交付质量枚举。
type Quality string

const (
	QualitySOP Quality = "SOP"
	QualityPOC Quality = "POC"
	QualityOTA Quality = "OTA"
)

// Qualities 按界面展示顺序列出所有交付质量。
var Qualities = []Quality{QualitySOP, QualityPOC, QualityOTA}

// ParseQuality 将任意文本归一化为已知的质量枚举，未知值回退为 SOP。
func ParseQuality(v string) Quality {
	switch Quality(v) {
	case QualitySOP, QualityPOC, QualityOTA:
		return Quality(v)
	default:
		return QualitySOP
	}
}

// FindVersion 在产品中按 id 查找版本。
func (p Product) FindVersion(id string) (Version, bool) {
	for _, v := range p.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}

// VersionSpan 返回最早与最晚版本的时间偏移，没有版本时返回 (0, 0)。
func (p Product) VersionSpan() (int, int) {
	if len(p.Versions) == 0 {
		return 0, 0
	}
	lo, hi := p.Versions[0].Time, p.Versions[0].Time
	for _, v := range p.Versions[1:] {
		if v.Time < lo {
			lo = v.Time
		}
		if v.Time > hi {
			hi = v.Time
		}
	}
	return lo, hi
}

// Clone 返回数据集的深拷贝，供核心在不触碰调用方数据的前提下做归一化。
func (d Dataset) Clone() Dataset {
	out := d
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.SubProjects = append([]SubProject(nil), p.SubProjects...)
		out.Projects[i] = p
	}
	out.Products = make([]Product, len(d.Products))
	for i, p := range d.Products {
		versions := make([]Version, len(p.Versions))
		for j, v := range p.Versions {
			v.Features = append([]string(nil), v.Features...)
			versions[j] = v
		}
		p.Versions = versions
		out.Products[i] = p
	}
	out.Feedbacks = append([]Feedback(nil), d.Feedbacks...)
	return out
}
