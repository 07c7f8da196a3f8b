package timeaxis

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the density of the tick row.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

// MaxTicks guards day-granularity generation against very long horizons.
const MaxTicks = 2000

// ParseGranularity accepts day/week/month (case-insensitive); anything
// else falls back to Week.
func ParseGranularity(v string) Granularity {
	switch Granularity(strings.ToLower(strings.TrimSpace(v))) {
	case Day:
		return Day
	case Month:
		return Month
	default:
		return Week
	}
}

// Tick is one labelled cell of the time header.
type Tick struct {
	Offset int    `json:"offset"`
	Label  string `json:"label"`
}

// BuildTicks returns the ordered tick row for the horizon.
func (a Axis) BuildTicks(g Granularity) []Tick {
	ticks, _ := a.BuildTicksChecked(g)
	return ticks
}

// BuildTicksChecked is BuildTicks that also reports whether the row was
// cut at MaxTicks.
func (a Axis) BuildTicksChecked(g Granularity) ([]Tick, bool) {
	switch g {
	case Month:
		return a.monthTicks(), false
	case Day:
		n := a.days
		truncated := false
		if n > MaxTicks {
			n = MaxTicks
			truncated = true
		}
		ticks := make([]Tick, 0, n)
		for i := 0; i < n; i++ {
			ticks = append(ticks, Tick{Offset: i, Label: a.OffsetToDate(i)})
		}
		return ticks, truncated
	default:
		ticks := make([]Tick, 0, a.days/7+1)
		for i := 0; i < a.days; i += 7 {
			d := a.start.AddDate(0, 0, i)
			ticks = append(ticks, Tick{
				Offset: i,
				Label:  fmt.Sprintf("W%d %02d-%02d", i/7+1, int(d.Month()), d.Day()),
			})
		}
		return ticks, false
	}
}

func (a Axis) monthTicks() []Tick {
	var ticks []Tick
	if a.days <= 0 {
		return ticks
	}
	// 第 0 天总是一个刻度，其后每个月的 1 号各一个
	cur := a.start
	for {
		off := daysBetween(a.start, cur)
		if off >= a.days {
			break
		}
		ticks = append(ticks, Tick{Offset: off, Label: cur.Format("2006-01")})
		cur = time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	}
	return ticks
}

// TickSpan returns the day gap from tick i to the next tick, or to the
// horizon end for the last tick. It is never below 1.
func (a Axis) TickSpan(ticks []Tick, i int) int {
	if i < 0 || i >= len(ticks) {
		return 1
	}
	next := a.days
	if i < len(ticks)-1 {
		next = ticks[i+1].Offset
	}
	if span := next - ticks[i].Offset; span > 1 {
		return span
	}
	return 1
}

// TickWidth is the pixel width of tick i at the given zoom.
func (a Axis) TickWidth(ticks []Tick, i int, zoom float64) float64 {
	return float64(a.TickSpan(ticks, i)) * zoom
}
