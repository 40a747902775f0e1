package engine

import (
	"time"

	"github.com/tartampluch/go-yeardots/internal/config"
)

// DayClass tells where a day sits relative to the reference date.
type DayClass int

const (
	DayPast DayClass = iota
	DayCurrent
	DayFuture
)

func (c DayClass) String() string {
	switch c {
	case DayPast:
		return "past"
	case DayCurrent:
		return "current"
	default:
		return "future"
	}
}

// Slot is one cell of a month grid. Leading padding slots are empty.
type Slot struct {
	Date  time.Time
	Empty bool
}

// MonthLayout is the ordered slot sequence of one month.
// Leading empty slots equal the weekday index (Sunday = 0) of day 1,
// followed by one slot per day. There is no trailing padding.
type MonthLayout struct {
	Year  int
	Month time.Month
	Slots []Slot
}

// Leading returns the number of empty slots before day 1.
func (m MonthLayout) Leading() int {
	n := 0
	for _, s := range m.Slots {
		if !s.Empty {
			break
		}
		n++
	}
	return n
}

// Days returns the number of real days in the layout.
func (m MonthLayout) Days() int {
	return len(m.Slots) - m.Leading()
}

// Rows returns how many week rows the layout occupies.
func (m MonthLayout) Rows() int {
	return (len(m.Slots) + config.DaysInWeek - 1) / config.DaysInWeek
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return config.DaysLeapYear
	}
	return config.DaysPlainYear
}

// BuildMonthLayout constructs the slot sequence for a month.
// monthIndex is 0-based (0 = January). Days are created at midnight in loc.
func BuildMonthLayout(year, monthIndex int, loc *time.Location) MonthLayout {
	month := time.Month(monthIndex + 1)
	date := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	leading := int(date.Weekday())
	slots := make([]Slot, 0, leading+31)
	for i := 0; i < leading; i++ {
		slots = append(slots, Slot{Empty: true})
	}

	// Walk forward until the month rolls over; time.Date handles month lengths,
	// including February 29 in leap years.
	for date.Month() == month {
		slots = append(slots, Slot{Date: date})
		date = date.AddDate(0, 0, 1)
	}

	return MonthLayout{Year: year, Month: month, Slots: slots}
}

// ClassifyDay compares (month, day) against the reference date within the
// same year.
func ClassifyDay(day, ref time.Time) DayClass {
	switch {
	case day.Month() < ref.Month():
		return DayPast
	case day.Month() == ref.Month() && day.Day() < ref.Day():
		return DayPast
	case day.Month() == ref.Month() && day.Day() == ref.Day():
		return DayCurrent
	default:
		return DayFuture
	}
}
