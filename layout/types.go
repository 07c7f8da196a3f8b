package layout

import "github.com/ByLCY/roadmap/model"

// 该文件定义布局结果，供场景构建、导出与调试 JSON 共用。坐标单位均为像素。

// Result 保存一次完整布局的行位置、锚点映射与已解析的连线。
type Result struct {
	Zoom  float64 `json:"zoom"`
	Days  int     `json:"days"`
	Width float64 `json:"width"`

	Projects []ProjectBlock `json:"projects"`
	Products []ProductRow   `json:"products"`

	// ProjectAnchors: projectID → 主轨道锚点 y。
	ProjectAnchors map[string]float64 `json:"projectAnchors"`
	// SubAnchors: "projectID::subProjectID" → 子行锚点 y，仅包含可见子行。
	SubAnchors map[string]float64 `json:"subAnchors"`

	ProjectAreaHeight float64 `json:"projectAreaHeight"`
	ConnectorTop      float64 `json:"connectorTop"`
	ProductAreaTop    float64 `json:"productAreaTop"`
	ProductAreaHeight float64 `json:"productAreaHeight"`
	TotalHeight       float64 `json:"totalHeight"`

	Links   []Link `json:"links"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// ProjectBlock 是一个项目占据的纵向区块。
type ProjectBlock struct {
	Project   model.Project `json:"project"`
	Index     int           `json:"index"`
	Top       float64       `json:"top"`
	Height    float64       `json:"height"`
	AnchorY   float64       `json:"anchorY"`
	Collapsed bool          `json:"collapsed"`
	SubRows   []SubRow      `json:"subRows"`
}

// SubRow 是一个可见子项目行。
type SubRow struct {
	SubProject model.SubProject `json:"subProject"`
	AnchorY    float64          `json:"anchorY"`
}

// ProductRow 是一个产品行，锚点位于行的垂直中心。
type ProductRow struct {
	Product model.Product `json:"product"`
	Index   int           `json:"index"`
	Top     float64       `json:"top"`
	AnchorY float64       `json:"anchorY"`
}

// Point 是画布上的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Link 是一条端点均已解析的反馈连线。
type Link struct {
	FeedbackID   string        `json:"feedbackId"`
	VersionID    string        `json:"versionId"`
	VersionLabel string        `json:"versionLabel"`
	ProductID    string        `json:"productId"`
	ProductName  string        `json:"productName"`
	ProjectID    string        `json:"projectId"`
	SubProjectID string        `json:"subProjectId,omitempty"`
	Color        string        `json:"color"`
	Source       Point         `json:"source"`
	Target       Point         `json:"target"`
	Scope        string        `json:"scope"`
	Quality      model.Quality `json:"quality"`
	Date         string        `json:"date"`
}

// SkipReason 说明一条反馈为何未参与布局。
type SkipReason string

const (
	SkipVersionMissing SkipReason = "version-missing"
	SkipAnchorMissing  SkipReason = "anchor-missing"
	SkipCollapsed      SkipReason = "collapsed"
	SkipDateUnresolved SkipReason = "date-unresolved"
)

// Skip 记录被排除的反馈，仅用于诊断，不是错误。
type Skip struct {
	FeedbackID string     `json:"feedbackId"`
	Reason     SkipReason `json:"reason"`
}

// SubKey 返回子行锚点映射使用的键。
func SubKey(projectID, subProjectID string) string {
	return projectID + "::" + subProjectID
}

// ProjectAnchor 查找项目主锚点。
func (r *Result) ProjectAnchor(projectID string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	y, ok := r.ProjectAnchors[projectID]
	return y, ok
}

// SubAnchor 查找子行锚点。
func (r *Result) SubAnchor(projectID, subProjectID string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	y, ok := r.SubAnchors[SubKey(projectID, subProjectID)]
	return y, ok
}
