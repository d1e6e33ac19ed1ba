// Package calendar holds the single day-boundary convention used by streaks,
// daily totals and the weekly window. All of them interpret instants in the
// same *time.Location so a session never counts toward one day for streaks and
// another for totals.
package calendar

import "time"

const dayLayout = "2006-01-02"

// WeekDays is the length of the trailing window used by weekly rollups and the leaderboard.
const WeekDays = 7

// Day is a calendar date in the configured location.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

type Calendar struct {
	loc *time.Location
}

func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// DayOf projects an instant onto its calendar day.
func (c Calendar) DayOf(t time.Time) Day {
	y, m, d := t.In(c.Location()).Date()
	return Day{Year: y, Month: m, Date: d}
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	return c.DayOf(t).Start(c.Location())
}

// WeekStart returns midnight WeekDays days before the day containing now.
func (c Calendar) WeekStart(now time.Time) time.Time {
	return c.DayOf(now).AddDays(-WeekDays).Start(c.Location())
}

func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, loc)
}

// AddDays normalises through time.Date, so month and year rollovers and DST
// shifts never skip or repeat a day.
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Date+n, 12, 0, 0, 0, time.UTC)
	y, m, dd := t.Date()
	return Day{Year: y, Month: m, Date: dd}
}

func (d Day) String() string {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC).Format(dayLayout)
}
