package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tartampluch/go-yeardots/internal/config"
)

// YearProgress summarizes how much of the reference year remains.
type YearProgress struct {
	DaysLeft    int
	TotalDays   int
	PercentLeft int
}

const day = config.HoursPerDay * time.Hour

// NewYearProgress computes the remaining days from ref to December 31 of the
// same year (midnight, ref's location), rounded up to whole days.
func NewYearProgress(ref time.Time) YearProgress {
	year := ref.Year()
	endOfYear := time.Date(year, time.December, 31, 0, 0, 0, 0, ref.Location())

	total := DaysInYear(year)
	left := ceilDays(endOfYear.Sub(ref))

	return YearProgress{
		DaysLeft:    left,
		TotalDays:   total,
		PercentLeft: percentOf(left, total),
	}
}

// ceilDays converts a duration to whole days, rounding toward +inf.
// Integer division truncates toward zero, which already is the ceiling for
// negative durations.
func ceilDays(d time.Duration) int {
	n := d / day
	if d%day > 0 {
		n++
	}
	return int(n)
}

// percentOf returns round(100*part/whole) with halves rounded up.
func percentOf(part, whole int) int {
	if whole == 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(config.PercentScale)).
		Div(decimal.NewFromInt(int64(whole)))
	return int(ratio.Round(0).IntPart())
}
