package layout

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/roadmap/model"
)

// sampleDataset 构造一个最小数据集：一个项目（含一个子项目）、一个产品、一条子行反馈。
func sampleDataset() model.Dataset {
	return model.Dataset{
		StartYear: 2026, StartMonth: 1, Months: 36,
		Projects: []model.Project{{
			ID: "p", Name: "P", Start: 0, End: 150, Color: "#6366f1",
			SubProjects: []model.SubProject{{ID: "s", Name: "S", Start: 0, End: 90}},
		}},
		Products: []model.Product{{
			ID: "prod", Name: "Prod", Color: "#10b981",
			Versions: []model.Version{{ID: "v", Label: "V1", Time: 30}},
		}},
		Feedbacks: []model.Feedback{{
			ID: "f", VersionID: "v", ProjectID: "p", SubProjectID: "s",
			Quality: model.QualitySOP, Date: "2026-02-15",
		}},
	}
}

func TestBuildWorkedExample(t *testing.T) {
	res := Build(sampleDataset(), model.DefaultView(), BuildOptions{})

	if len(res.Links) != 1 {
		t.Fatalf("期望 1 条连线，实际 %d（跳过: %+v）", len(res.Links), res.Skipped)
	}
	l := res.Links[0]
	// 项目区块: top=64, 主锚点=124, 子行锚点=152
	// 产品行: top=64+240+70+64=438, 锚点=503
	if l.Source != (Point{X: 30 * 14, Y: 503}) {
		t.Fatalf("版本端点错误: %+v", l.Source)
	}
	if l.Target != (Point{X: 45 * 14, Y: 152}) {
		t.Fatalf("目标端点错误: %+v", l.Target)
	}
	if l.ProductName != "Prod" || l.VersionLabel != "V1" || l.Color != "#10b981" {
		t.Fatalf("连线元数据错误: %+v", l)
	}
	if res.Width != float64(res.Days)*14 {
		t.Fatalf("宽度应为 days×zoom，实际 %g", res.Width)
	}
}

func TestEmptyLayoutHeight(t *testing.T) {
	res := Build(model.Dataset{}, model.DefaultView(), BuildOptions{})
	if res.TotalHeight != 298 {
		t.Fatalf("空数据集总高度期望 298，实际 %g", res.TotalHeight)
	}
	if len(res.Links) != 0 || len(res.ProjectAnchors) != 0 || len(res.SubAnchors) != 0 {
		t.Fatalf("空数据集不应产生锚点或连线")
	}
	if res.Days != 1096 {
		t.Fatalf("默认时间窗应为 1096 天，实际 %d", res.Days)
	}
}

func TestCollapseRemovesOnlyThatProjectsSubAnchors(t *testing.T) {
	ds := model.Demo()
	view := model.DefaultView()
	expanded := Build(ds, view, BuildOptions{})

	view.Collapsed = model.NewIDSet("proj-1")
	collapsed := Build(ds, view, BuildOptions{})

	if _, ok := collapsed.SubAnchor("proj-1", "sub-1-1"); ok {
		t.Fatalf("收起后不应存在 proj-1 的子行锚点")
	}
	if _, ok := collapsed.SubAnchor("proj-2", "sub-2-1"); !ok {
		t.Fatalf("收起 proj-1 不应影响 proj-2 的子行")
	}
	if got := collapsed.Projects[0].Height; got != 120 {
		t.Fatalf("收起的项目高度应为 120，实际 %g", got)
	}
	// proj-1 有两个子项目，收起后后续项目整体上移 240
	shift := expanded.ProjectAnchors["proj-2"] - collapsed.ProjectAnchors["proj-2"]
	if shift != 240 {
		t.Fatalf("后续项目应上移 240，实际 %g", shift)
	}
	if collapsed.ProjectAnchors["proj-1"] != expanded.ProjectAnchors["proj-1"] {
		t.Fatalf("收起不应改变项目自身的主锚点")
	}

	// 再次展开恢复原样
	view.Collapsed = view.Collapsed.Toggle("proj-1")
	again := Build(ds, view, BuildOptions{})
	if again.TotalHeight != expanded.TotalHeight || len(again.SubAnchors) != len(expanded.SubAnchors) {
		t.Fatalf("展开后布局应与初始一致")
	}
}

func TestCollapsedSubLinksSkippedProjectLinksKept(t *testing.T) {
	view := model.DefaultView()
	view.Collapsed = model.NewIDSet("proj-1", "proj-2")
	res := Build(model.Demo(), view, BuildOptions{})

	reasons := map[string]SkipReason{}
	for _, s := range res.Skipped {
		reasons[s.FeedbackID] = s.Reason
	}
	for _, id := range []string{"f-1", "f-2", "f-3"} {
		if reasons[id] != SkipCollapsed {
			t.Fatalf("%s 应以 collapsed 原因跳过，实际 %q", id, reasons[id])
		}
	}
	kept := map[string]bool{}
	for _, l := range res.Links {
		kept[l.FeedbackID] = true
	}
	if !kept["f-4"] || !kept["f-5"] {
		t.Fatalf("项目级反馈在收起后仍应保留: %+v", kept)
	}
}

func TestHiddenProjectShiftsLaterAnchors(t *testing.T) {
	ds := model.Dataset{
		Projects: []model.Project{
			{ID: "a", Start: 0, End: 10},
			{ID: "b", Start: 0, End: 10},
		},
	}
	view := model.DefaultView()
	view.Hidden = model.NewIDSet("a")
	res := Build(ds, view, BuildOptions{})

	if _, ok := res.ProjectAnchor("a"); ok {
		t.Fatalf("隐藏的项目不应有锚点")
	}
	if got := res.ProjectAnchors["b"]; got != 124 {
		t.Fatalf("b 应占据第一个区块，锚点 124，实际 %g", got)
	}
	if len(res.Projects) != 1 || res.Projects[0].Index != 0 {
		t.Fatalf("可见项目列表错误: %+v", res.Projects)
	}
}

func TestDeletedSubProjectDropsLink(t *testing.T) {
	ds := sampleDataset()
	ds.Projects[0].SubProjects = nil
	res := Build(ds, model.DefaultView(), BuildOptions{})

	if len(res.Links) != 0 {
		t.Fatalf("子项目删除后连线应被丢弃，而不是回退到父项目")
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != SkipAnchorMissing {
		t.Fatalf("期望 anchor-missing，实际 %+v", res.Skipped)
	}
}

func TestMissingVersionAndBadDate(t *testing.T) {
	ds := sampleDataset()
	ds.Feedbacks = append(ds.Feedbacks,
		model.Feedback{ID: "gone", VersionID: "nope", ProjectID: "p"},
		model.Feedback{ID: "bad", VersionID: "v", ProjectID: "p", Date: "15/02/2026"},
	)
	res := Build(ds, model.DefaultView(), BuildOptions{})

	got := map[string]SkipReason{}
	for _, s := range res.Skipped {
		got[s.FeedbackID] = s.Reason
	}
	if got["gone"] != SkipVersionMissing {
		t.Fatalf("找不到版本应记为 version-missing，实际 %q", got["gone"])
	}
	if got["bad"] != SkipDateUnresolved {
		t.Fatalf("无法解析的日期应记为 date-unresolved，实际 %q", got["bad"])
	}
	if len(res.Links) != 1 {
		t.Fatalf("合法反馈仍应保留，实际 %d 条", len(res.Links))
	}
}

func TestProductFilterHidesLinks(t *testing.T) {
	view := model.DefaultView()
	view.ProductFilter = model.SelectIDs("prod-2")
	res := Build(model.Demo(), view, BuildOptions{})

	for _, l := range res.Links {
		if l.ProductID != "prod-2" {
			t.Fatalf("被筛掉的产品不应有连线: %+v", l)
		}
	}
	if len(res.Products) != 1 || res.Products[0].Product.ID != "prod-2" {
		t.Fatalf("产品筛选结果错误")
	}

	// 显式空选择：什么都不包含
	view.ProductFilter = view.ProductFilter.Toggle("prod-2", nil)
	res = Build(model.Demo(), view, BuildOptions{})
	if len(res.Products) != 0 || len(res.Links) != 0 {
		t.Fatalf("显式空选择不应退化为全部")
	}
}

func TestLinkTargetClampedToHorizon(t *testing.T) {
	ds := sampleDataset()
	ds.Feedbacks[0].Date = "2035-01-01"
	res := Build(ds, model.DefaultView(), BuildOptions{})
	if len(res.Links) != 1 {
		t.Fatalf("超出时间窗的日期应夹紧而非跳过")
	}
	if want := float64(res.Days-1) * 14; res.Links[0].Target.X != want {
		t.Fatalf("目标 x 应夹紧到 %g，实际 %g", want, res.Links[0].Target.X)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	ds := sampleDataset()
	ds.Projects[0].End = 99999
	Build(ds, model.DefaultView(), BuildOptions{})
	if ds.Projects[0].End != 99999 {
		t.Fatalf("Build 不应修改调用方的数据集")
	}
}

func TestBuildLogsSkips(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ds := sampleDataset()
	ds.Feedbacks[0].VersionID = "missing"
	Build(ds, model.DefaultView(), BuildOptions{Logger: logger})
	if !strings.Contains(buf.String(), "feedback_skipped") || !strings.Contains(buf.String(), "version-missing") {
		t.Fatalf("跳过的反馈应输出调试日志，实际: %s", buf.String())
	}
}

func TestWriteDebugJSON(t *testing.T) {
	res := Build(sampleDataset(), model.DefaultView(), BuildOptions{})
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("写入调试 JSON 失败: %v", err)
	}
	data, err := MarshalDebug(res)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("调试 JSON 不合法: %v", err)
	}
	if _, ok := decoded["subAnchors"]; !ok {
		t.Fatalf("调试 JSON 缺少 subAnchors 字段")
	}
}
