package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-yeardots/internal/config"
)

// MonthView pairs a month layout with its display title.
type MonthView struct {
	Name   string
	Layout MonthLayout
}

// YearView is everything the display layer needs to draw one wallpaper.
type YearView struct {
	Reference time.Time
	Months    [config.MonthsInYear]MonthView
	Progress  YearProgress
}

// NewYearView builds the twelve month layouts of ref's year.
func NewYearView(ref time.Time) YearView {
	v := YearView{
		Reference: ref,
		Progress:  NewYearProgress(ref),
	}
	for i := range v.Months {
		v.Months[i] = MonthView{
			Name:   config.MonthAbbreviations[i],
			Layout: BuildMonthLayout(ref.Year(), i, ref.Location()),
		}
	}
	return v
}

// Classify is a shorthand for ClassifyDay against the view's reference date.
func (v YearView) Classify(day time.Time) DayClass {
	return ClassifyDay(day, v.Reference)
}

// Session holds the state fixed for one run: the reference date and the year
// view derived from it. The clock is read exactly once.
type Session struct {
	Reference time.Time
	View      YearView
}

// NewSession fixes the reference date from the clock and derives the view.
func NewSession(c Clock) *Session {
	ref := ReferenceDate(c)
	view := NewYearView(ref)

	slog.Info(config.MsgSessionStart,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyReference, ref.Format(time.RFC3339),
		config.LogKeyDaysLeft, view.Progress.DaysLeft,
		config.LogKeyPercent, view.Progress.PercentLeft,
	)

	return &Session{Reference: ref, View: view}
}
