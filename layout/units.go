package layout

import (
	"strconv"
	"strings"
)

// 布局以 CSS 像素为单位；PDF 按毫米输出，字号常写作磅。

// Unit 是长度的书写单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，按像素处理
	UnitPX
	UnitMM
	UnitPT
)

const (
	PxToMm = 25.4 / 96
	MmToPx = 1.0 / PxToMm
	PtToMm = 25.4 / 72
	PxToPt = 0.75
)

// 每种单位对应的毫米数与后缀，下标即 Unit。
var units = [...]struct {
	suffix string
	mm     float64
}{
	UnitNone: {"", PxToMm},
	UnitPX:   {"px", PxToMm},
	UnitMM:   {"mm", 1},
	UnitPT:   {"pt", PtToMm},
}

func (u Unit) valid() bool { return u >= 0 && int(u) < len(units) }

// String 返回单位后缀，无单位为空串。
func (u Unit) String() string {
	if !u.valid() {
		return ""
	}
	return units[u].suffix
}

// Length 是带单位的长度。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To 把长度换算到目标单位，未知单位按像素处理。
func (l Length) To(target Unit) float64 {
	from, to := l.Unit, target
	if !from.valid() {
		from = UnitPX
	}
	if !to.valid() {
		to = UnitPX
	}
	return l.Value * units[from].mm / units[to].mm
}

func (l Length) ToPX() float64 { return l.To(UnitPX) }
func (l Length) ToMM() float64 { return l.To(UnitMM) }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength 解析 "14"、"14px"、"3.5mm"、"10pt" 等写法，大小写不敏感。
// 无法解析时返回零值。
func ParseLength(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for u := UnitPX; u.valid(); u++ {
		if num, ok := strings.CutSuffix(v, units[u].suffix); ok {
			v, unit = strings.TrimSpace(num), u
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
