package domain

import (
	"time"

	"studytrack/internal/platform/calendar"
)

type Streaks struct {
	Current   int
	Longest   int
	UpdatedAt time.Time
}

// CurrentStreak counts consecutive days ending today. A day without a session
// today yields zero regardless of history.
func CurrentStreak(days map[calendar.Day]struct{}, today calendar.Day) int {
	streak := 0
	for day := today; ; day = day.AddDays(-1) {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
	}
}

// Longest never decreases.
func Longest(current, previousLongest int) int {
	if current > previousLongest {
		return current
	}
	return previousLongest
}

// Compute derives streaks from every session start of one user. Every start is
// trusted to belong to a session that met the minimum length.
func Compute(starts []time.Time, cal calendar.Calendar, now time.Time, previousLongest int) Streaks {
	days := make(map[calendar.Day]struct{}, len(starts))
	for _, start := range starts {
		days[cal.DayOf(start)] = struct{}{}
	}
	current := CurrentStreak(days, cal.DayOf(now))
	return Streaks{
		Current:   current,
		Longest:   Longest(current, previousLongest),
		UpdatedAt: now,
	}
}
