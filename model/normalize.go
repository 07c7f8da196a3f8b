package model

import "github.com/ByLCY/roadmap/timeaxis"

// Axis 根据数据集的起始年月与月数构造时间轴，缺省值取 2026-01 起 36 个月。
func (d Dataset) Axis() timeaxis.Axis {
	year, month, months := d.StartYear, d.StartMonth, d.Months
	if year == 0 {
		year = DefaultStartYear
	}
	if month == 0 {
		month = DefaultStartMonth
	}
	if months == 0 {
		months = DefaultMonths
	}
	return timeaxis.New(year, month, months)
}

// Normalize 返回夹紧后的数据集副本：所有偏移落入 [0, horizonDays)，
// 结束值不早于开始值 +1，子项目被限制在父项目范围内，质量归一化为已知枚举。
// 输入不会被修改。
func Normalize(d Dataset) Dataset {
	axis := d.Axis()
	out := d.Clone()
	for i := range out.Projects {
		p := &out.Projects[i]
		p.Start = axis.ClampOffset(p.Start)
		p.End = axis.ClampEnd(p.Start, p.End)
		for j := range p.SubProjects {
			s := &p.SubProjects[j]
			s.Start = clamp(s.Start, p.Start, p.End-1)
			s.End = clamp(s.End, s.Start+1, p.End)
		}
	}
	for i := range out.Products {
		for j := range out.Products[i].Versions {
			v := &out.Products[i].Versions[j]
			v.Time = axis.ClampOffset(v.Time)
		}
	}
	for i := range out.Feedbacks {
		out.Feedbacks[i].Quality = ParseQuality(string(out.Feedbacks[i].Quality))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
