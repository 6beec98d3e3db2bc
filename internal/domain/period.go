package domain

import (
	"time"

	"github.com/karanthegodd/expense-tracker/internal/util"
)

// Period is an inclusive calendar window used to scope aggregations.
// Construct via YearPeriod, MonthPeriod, DayPeriod or RangePeriod; the
// zero value contains nothing.
type Period struct {
	start time.Time
	end   time.Time
}

// YearPeriod covers an entire calendar year.
func YearPeriod(year int) Period {
	return Period{
		start: util.MonthStart(year, time.January),
		end:   util.MonthEnd(year, time.December),
	}
}

// MonthPeriod covers a single calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{
		start: util.MonthStart(year, month),
		end:   util.MonthEnd(year, month),
	}
}

// DayPeriod covers a single calendar day.
func DayPeriod(day time.Time) Period {
	return Period{start: util.StartOfDay(day), end: util.EndOfDay(day)}
}

// RangePeriod covers an explicit range, inclusive of both ends at day
// granularity: start is normalized to the beginning of its day and end
// to the last instant of its day.
func RangePeriod(start, end time.Time) Period {
	return Period{start: util.StartOfDay(start), end: util.EndOfDay(end)}
}

// Start returns the first instant of the period.
func (p Period) Start() time.Time { return p.start }

// End returns the last instant of the period.
func (p Period) End() time.Time { return p.end }

// Contains reports whether t falls inside the period. The zero time
// (an undated record) is never contained.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() || p.start.IsZero() {
		return false
	}
	return !t.Before(p.start) && !t.After(p.end)
}
