// Package binding 把路线图 DSL 的语法树绑定为 model.Dataset，
// 并提供导出文件名等模板的变量插值。
package binding

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/uuid"

	"github.com/ByLCY/roadmap/dsl"
	"github.com/ByLCY/roadmap/model"
	"github.com/ByLCY/roadmap/timeaxis"
)

// 未指定颜色时使用的默认值。
const (
	DefaultProjectColor = "#6366f1"
	DefaultProductColor = "#10b981"
)

// Options 配置 AST 到数据集的转换。零值可直接使用。
type Options struct {
	// NewID 为未声明 id 的实体生成编号，默认使用随机 UUID。
	NewID func() string
}

func (o Options) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// LoadFile 读取并解析路线图文件。
func LoadFile(path string, opts Options) (model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("读取路线图文件失败: %w", err)
	}
	defer f.Close()
	// 错误位置带上文件名
	doc, err := dsl.Parse(path, f)
	return bindParsed(doc, err, opts)
}

// Load 解析 DSL 文本并绑定为数据集。
func Load(src string, opts Options) (model.Dataset, error) {
	doc, err := dsl.ParseString(src)
	return bindParsed(doc, err, opts)
}

func bindParsed(doc *dsl.Document, err error, opts Options) (model.Dataset, error) {
	if err != nil {
		return model.Dataset{}, fmt.Errorf("解析路线图失败: %w", err)
	}
	return Bind(doc, opts)
}

// Bind 将语法树转换为数据集。所有字段错误会被一并收集后返回。
// 偏移字段既可以写天数，也可以写 "YYYY-MM-DD" 日期；日期相对 meta 中的起始月份换算。
// 绑定只做结构校验，范围夹紧留给 model.Normalize。
func Bind(doc *dsl.Document, opts Options) (model.Dataset, error) {
	if doc == nil {
		return model.Dataset{}, fmt.Errorf("路线图为空")
	}
	b := &binder{opts: opts, ids: map[string]lexer.Position{}}

	var ds model.Dataset
	for _, s := range doc.Sections {
		if s.Meta != nil {
			b.meta(&ds, s.Meta.Block)
		}
	}
	b.axis = ds.Axis()

	for _, s := range doc.Sections {
		switch {
		case s.Project != nil:
			ds.Projects = append(ds.Projects, b.project(s.Project))
		case s.Product != nil:
			ds.Products = append(ds.Products, b.product(s.Product))
		case s.Feedback != nil:
			ds.Feedbacks = append(ds.Feedbacks, b.feedback(s.Feedback))
		}
	}
	if len(b.errs) > 0 {
		return model.Dataset{}, errors.Join(b.errs...)
	}
	return ds, nil
}

type binder struct {
	opts Options
	axis timeaxis.Axis
	errs []error
	// ids 记录全局唯一的 id（项目、产品、版本、反馈）
	ids map[string]lexer.Position
}

func (b *binder) fail(pos lexer.Position, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

func (b *binder) claim(kind, id string, pos lexer.Position) {
	key := kind + ":" + id
	if prev, ok := b.ids[key]; ok {
		b.fail(pos, "%s id %q 重复（首次出现于 %s）", kind, id, prev)
		return
	}
	b.ids[key] = pos
}

func (b *binder) idOr(id string) string {
	if id != "" {
		return id
	}
	return b.opts.newID()
}

func (b *binder) meta(ds *model.Dataset, block *dsl.Block) {
	for _, a := range block.Assignments() {
		switch a.Key {
		case "title":
			ds.Title = a.Value.Text()
		case "start":
			t, err := parseMonth(a.Value.Text())
			if err != nil {
				b.fail(a.Pos, "start 应为 YYYY-MM: %v", err)
				continue
			}
			ds.StartYear, ds.StartMonth = t.Year(), int(t.Month())
		case "startYear":
			ds.StartYear = b.int(a)
		case "startMonth":
			ds.StartMonth = b.int(a)
		case "months":
			ds.Months = b.int(a)
		default:
			b.fail(a.Pos, "meta 不支持字段 %q", a.Key)
		}
	}
}

func parseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	return time.Parse(timeaxis.DateLayout, s)
}

func (b *binder) int(a *dsl.Assignment) int {
	n, err := strconv.Atoi(a.Value.Text())
	if err != nil {
		b.fail(a.Pos, "%s 应为整数，实际 %q", a.Key, a.Value.Text())
	}
	return n
}

// offset 解析天数偏移或日期，日期可带引号也可直接书写。
func (b *binder) offset(a *dsl.Assignment) int {
	if a.Value.IsString() || a.Value.Date != nil {
		off, ok := b.axis.ParseOffset(a.Value.Text())
		if !ok {
			b.fail(a.Pos, "%s 不是合法日期: %q", a.Key, a.Value.Text())
		}
		return off
	}
	return b.int(a)
}

func (b *binder) project(sec *dsl.EntitySection) model.Project {
	p := model.Project{ID: b.idOr(sec.ID), Name: string(sec.Name), Color: DefaultProjectColor}
	b.claim("project", p.ID, sec.Pos)
	for _, a := range sec.Block.Assignments() {
		switch a.Key {
		case "name":
			p.Name = a.Value.Text()
		case "color":
			p.Color = a.Value.Text()
		case "start":
			p.Start = b.offset(a)
		case "end":
			p.End = b.offset(a)
		default:
			b.fail(a.Pos, "project 不支持字段 %q", a.Key)
		}
	}
	seen := map[string]bool{}
	for _, decl := range sec.Block.Decls("sub") {
		sub := model.SubProject{ID: b.idOr(decl.ID), Name: string(decl.Name)}
		if seen[sub.ID] {
			b.fail(decl.Pos, "子项目 id %q 在项目 %q 内重复", sub.ID, p.ID)
		}
		seen[sub.ID] = true
		for _, a := range decl.Block.Assignments() {
			switch a.Key {
			case "name":
				sub.Name = a.Value.Text()
			case "start":
				sub.Start = b.offset(a)
			case "end":
				sub.End = b.offset(a)
			default:
				b.fail(a.Pos, "sub 不支持字段 %q", a.Key)
			}
		}
		p.SubProjects = append(p.SubProjects, sub)
	}
	b.unknownDecls(sec.Block, "sub")
	return p
}

func (b *binder) product(sec *dsl.EntitySection) model.Product {
	p := model.Product{ID: b.idOr(sec.ID), Name: string(sec.Name), Color: DefaultProductColor}
	b.claim("product", p.ID, sec.Pos)
	for _, a := range sec.Block.Assignments() {
		switch a.Key {
		case "name":
			p.Name = a.Value.Text()
		case "color":
			p.Color = a.Value.Text()
		default:
			b.fail(a.Pos, "product 不支持字段 %q", a.Key)
		}
	}
	for _, decl := range sec.Block.Decls("version") {
		v := model.Version{ID: b.idOr(decl.ID), Label: string(decl.Name)}
		b.claim("version", v.ID, decl.Pos)
		for _, a := range decl.Block.Assignments() {
			switch a.Key {
			case "label":
				v.Label = a.Value.Text()
			case "time", "date":
				v.Time = b.offset(a)
			case "features":
				v.Features = append(v.Features, a.Value.Strings()...)
			default:
				b.fail(a.Pos, "version 不支持字段 %q", a.Key)
			}
		}
		v.Features = append(v.Features, decl.Block.Texts()...)
		p.Versions = append(p.Versions, v)
	}
	b.unknownDecls(sec.Block, "version")
	return p
}

// feedbackFields 把简写与历史字段名折叠到规范字段，rank 越小越优先：
// 规范名（deliveryQuality 等）先于简写，简写先于历史别名。
var feedbackFields = map[string]struct {
	field string
	rank  int
}{
	"versionId":       {"version", 0},
	"version":         {"version", 1},
	"projectId":       {"project", 0},
	"project":         {"project", 1},
	"subProjectId":    {"sub", 0},
	"subProject":      {"sub", 1},
	"sub":             {"sub", 2},
	"deliveryScope":   {"scope", 0},
	"scope":           {"scope", 1},
	"deliverable":     {"scope", 2},
	"deliveryQuality": {"quality", 0},
	"quality":         {"quality", 1},
	"deliveryDate":    {"date", 0},
	"date":            {"date", 1},
	"targetDate":      {"date", 2},
}

func (b *binder) feedback(sec *dsl.FeedbackSection) model.Feedback {
	type pick struct {
		value string
		rank  int
	}
	picked := map[string]pick{}
	for _, a := range sec.Block.Assignments() {
		f, ok := feedbackFields[a.Key]
		if !ok {
			b.fail(a.Pos, "feedback 不支持字段 %q", a.Key)
			continue
		}
		val := a.Value.Text()
		if val == "" {
			continue
		}
		if cur, ok := picked[f.field]; ok && cur.rank <= f.rank {
			continue
		}
		picked[f.field] = pick{value: val, rank: f.rank}
	}
	fb := model.Feedback{
		ID:           b.idOr(sec.ID),
		VersionID:    picked["version"].value,
		ProjectID:    picked["project"].value,
		SubProjectID: picked["sub"].value,
		Scope:        picked["scope"].value,
		Quality:      model.ParseQuality(strings.ToUpper(picked["quality"].value)),
		Date:         picked["date"].value,
	}
	b.claim("feedback", fb.ID, sec.Pos)
	if fb.VersionID == "" {
		b.fail(sec.Pos, "feedback %q 缺少 version", fb.ID)
	}
	if fb.ProjectID == "" {
		b.fail(sec.Pos, "feedback %q 缺少 project", fb.ID)
	}
	return fb
}

func (b *binder) unknownDecls(block *dsl.Block, allowed string) {
	for _, st := range block.Statements {
		if st.Decl != nil && st.Decl.Kind != allowed {
			b.fail(st.Decl.Pos, "不支持的声明 %q", st.Decl.Kind)
		}
	}
}
