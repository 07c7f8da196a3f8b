// Package timeaxis maps between calendar dates, day offsets and pixel
// x-coordinates, and generates the tick row of the time header.
//
// All dates are civil dates in UTC; a day offset counts whole days from
// the first day of the horizon.
package timeaxis

import (
	"math"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar date format used for every date string.
	DateLayout = "2006-01-02"

	// MinZoom and MaxZoom bound the pixels-per-day zoom factor.
	MinZoom     = 1.0
	MaxZoom     = 96.0
	DefaultZoom = 14.0

	// MaxMonths caps the horizon length.
	MaxMonths = 120
)

// Axis is an immutable horizon: a start date plus a fixed number of days.
type Axis struct {
	start time.Time
	days  int
}

// New builds the horizon starting at the first day of year/month and
// spanning months calendar months. Out of range inputs are clamped.
func New(year, month, months int) Axis {
	if year < 1 {
		year = 1
	}
	if month < 1 || month > 12 {
		month = 1
	}
	months = clampInt(months, 1, MaxMonths)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, months, 0)
	return Axis{start: start, days: daysBetween(start, end)}
}

// Start returns the first day of the horizon.
func (a Axis) Start() time.Time { return a.start }

// Days returns the horizon length in days.
func (a Axis) Days() int { return a.days }

// Width returns the pixel width of the full horizon at the given zoom.
func (a Axis) Width(zoom float64) float64 {
	return OffsetToX(a.days, ClampZoom(zoom))
}

// ParseOffset converts an ISO date into a day offset. The offset is not
// clamped; ok is false when the input cannot be parsed.
func (a Axis) ParseOffset(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return 0, false
	}
	return daysBetween(a.start, t), true
}

// DateToOffset converts an ISO date into a day offset; unparsable input
// yields 0.
func (a Axis) DateToOffset(date string) int {
	off, _ := a.ParseOffset(date)
	return off
}

// OffsetToDate renders a day offset as an ISO date.
func (a Axis) OffsetToDate(offset int) string {
	return a.start.AddDate(0, 0, offset).Format(DateLayout)
}

// DateToX maps an ISO date onto the x axis.
func (a Axis) DateToX(date string, zoom float64) float64 {
	return OffsetToX(a.DateToOffset(date), zoom)
}

// ClampOffset clamps a day offset into [0, Days).
func (a Axis) ClampOffset(offset int) int {
	return clampInt(offset, 0, a.days-1)
}

// ClampEnd clamps an exclusive end bound into [start+1, Days].
func (a Axis) ClampEnd(start, end int) int {
	return clampInt(end, start+1, a.days)
}

// OffsetToX maps a day offset to a pixel x-coordinate.
func OffsetToX(offset int, zoom float64) float64 {
	return float64(offset) * zoom
}

// ClampZoom keeps zoom inside [MinZoom, MaxZoom]; NaN and non-positive
// values fall back to MinZoom.
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

func daysBetween(from, to time.Time) int {
	// 只比较日历日，避免时分秒造成的取整偏差
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Floor(t.Sub(f).Hours() / 24))
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
