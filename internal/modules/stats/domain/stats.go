package domain

import "time"

type SessionSummary struct {
	StartTime       time.Time
	DurationMinutes int
}

type Snapshot struct {
	TodayMinutes  int
	TodayCount    int
	WeeklyMinutes int
	WeeklyCount   int
}

func TotalMinutes(sessions []SessionSummary) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// Since filters to sessions starting at or after from.
func Since(sessions []SessionSummary, from time.Time) []SessionSummary {
	out := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		if !s.StartTime.Before(from) {
			out = append(out, s)
		}
	}
	return out
}
