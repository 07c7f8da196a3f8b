package model

import (
	"sort"

	"github.com/ByLCY/roadmap/timeaxis"
)

// IDSet 是只读的 id 集合。所有修改方法都返回新集合。
type IDSet map[string]struct{}

// NewIDSet 由若干 id 构造集合，空串会被忽略。
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has 判断集合中是否包含 id；nil 集合视为空集。
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int { return len(s) }

// IDs 返回排序后的 id 列表。
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// With 返回添加 id 后的新集合。
func (s IDSet) With(id string) IDSet {
	out := make(IDSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if id != "" {
		out[id] = struct{}{}
	}
	return out
}

// Without 返回移除 id 后的新集合。
func (s IDSet) Without(id string) IDSet {
	out := make(IDSet, len(s))
	for k := range s {
		if k != id {
			out[k] = struct{}{}
		}
	}
	return out
}

// Toggle 在集合中切换 id 的存在状态。
func (s IDSet) Toggle(id string) IDSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Selection 描述包含型筛选。零值表示"全部"；显式模式下只包含 IDs 中的元素，
// 即使 IDs 为空也不会退回"全部"，只有 ResetSelection 才能回到全选。
type Selection struct {
	Explicit bool  `json:"explicit"`
	IDs      IDSet `json:"ids,omitempty"`
}

// SelectIDs 构造筛选：不给 id 时等价于全部。
func SelectIDs(ids ...string) Selection {
	set := NewIDSet(ids...)
	if set.Len() == 0 {
		return Selection{}
	}
	return Selection{Explicit: true, IDs: set}
}

// ResetSelection 是显式的"全部"重置。
func ResetSelection() Selection { return Selection{} }

// All 表示当前未做任何限制。
func (s Selection) All() bool { return !s.Explicit }

// Includes 判断 id 是否被筛选包含。
func (s Selection) Includes(id string) bool {
	return !s.Explicit || s.IDs.Has(id)
}

// Toggle 切换 id 的选中状态。在全选状态下取消某一项，会转为"除该项外全部选中"；
// universe 为当前数据集中全部 id，按原顺序给出。
func (s Selection) Toggle(id string, universe []string) Selection {
	if !s.Explicit {
		ids := make([]string, 0, len(universe))
		for _, u := range universe {
			if u != id {
				ids = append(ids, u)
			}
		}
		return Selection{Explicit: true, IDs: NewIDSet(ids...)}
	}
	return Selection{Explicit: true, IDs: s.IDs.Toggle(id)}
}

// Prune 去掉已不存在于 valid 中的 id，模式保持不变。
func (s Selection) Prune(valid IDSet) Selection {
	if !s.Explicit {
		return s
	}
	return Selection{Explicit: true, IDs: s.IDs.prune(valid)}
}

func (s IDSet) prune(valid IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		if valid.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// ViewState 汇总交互界面持有的全部视图参数，核心只读取它。
type ViewState struct {
	Zoom          float64              `json:"zoom"`
	Granularity   timeaxis.Granularity `json:"granularity"`
	Hidden        IDSet                `json:"hidden,omitempty"`
	Collapsed     IDSet                `json:"collapsed,omitempty"`
	ProjectFilter Selection            `json:"projectFilter"`
	ProductFilter Selection            `json:"productFilter"`
	// Hovered 是当前悬停的反馈 id，仅影响屏幕上的详情卡片。
	Hovered string `json:"hovered,omitempty"`
}

// DefaultView 返回初始视图：14px/天、按周刻度、全部可见。
func DefaultView() ViewState {
	return ViewState{Zoom: timeaxis.DefaultZoom, Granularity: timeaxis.Week}
}

// IsCollapsed 判断项目的子行是否已收起。
func (v ViewState) IsCollapsed(projectID string) bool { return v.Collapsed.Has(projectID) }

// Normalized 返回夹紧后的视图参数。
func (v ViewState) Normalized() ViewState {
	out := v
	out.Zoom = timeaxis.ClampZoom(v.Zoom)
	out.Granularity = timeaxis.ParseGranularity(string(v.Granularity))
	return out
}

// PruneView 清理视图中引用已删除项目/产品的 id。
func PruneView(v ViewState, ds Dataset) ViewState {
	projects := make(IDSet, len(ds.Projects))
	for _, p := range ds.Projects {
		projects[p.ID] = struct{}{}
	}
	products := make(IDSet, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ID] = struct{}{}
	}
	out := v
	out.Hidden = v.Hidden.prune(projects)
	out.Collapsed = v.Collapsed.prune(projects)
	out.ProjectFilter = v.ProjectFilter.Prune(projects)
	out.ProductFilter = v.ProductFilter.Prune(products)
	return out
}
