package engine

import (
	"time"

	"crs/src/models"
)

type MonthDay struct {
	Month time.Month
	Day   int
}

func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

func (a MonthDay) Before(b MonthDay) bool {
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// RecurringWindow is an annual month/day window. The stored season years are
// ignored; a window whose start falls after its end wraps the Dec 31 to
// Jan 1 boundary (e.g. Nov 1 through Apr 30). Both endpoints are inclusive.
type RecurringWindow struct {
	Start MonthDay
	End   MonthDay
}

func WindowOf(season *models.Season) RecurringWindow {
	return RecurringWindow{
		Start: MonthDayOf(season.StartsOn),
		End:   MonthDayOf(season.EndsOn),
	}
}

func (w RecurringWindow) Contains(date time.Time) bool {
	d := MonthDayOf(date)
	if w.End.Before(w.Start) {
		// wraps the year boundary
		return !d.Before(w.Start) || !w.End.Before(d)
	}
	return !d.Before(w.Start) && !w.End.Before(d)
}
