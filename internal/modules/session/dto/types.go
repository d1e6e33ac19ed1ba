package dto

import "time"

const (
	OutcomeTooShort = "too_short"
	OutcomeSaving   = "saving"
	OutcomeSaved    = "saved"
	OutcomeFailed   = "failed"
)

type StartInput struct {
	GoalMinutes *int
}

type StartOutput struct {
	StartedAt   time.Time
	GoalMinutes *int
	Persisted   bool
}

type ActiveSessionOutput struct {
	StartedAt      time.Time
	ElapsedSeconds int64
	Paused         bool
	GoalMinutes    *int
}

type StopInput struct {
	UserID string
}

// StopOutput describes where a stop or retry left the pipeline. Err carries
// the classified failure (apperrors.ErrSaveTimeout or ErrRemoteWrite) when
// Outcome is failed.
type StopOutput struct {
	Outcome         string
	State           string
	DurationMinutes int
	StartedAt       time.Time
	Failure         string
	Message         string
	Err             error
	CurrentStreak   int
	LongestStreak   int
	StreakWarning   string
	Rollups         RollupsOutput
}

type PendingOutput struct {
	ID              string
	UserID          string
	DurationMinutes int
	StartedAt       time.Time
	Attempts        int
}

type RollupsOutput struct {
	TodayMinutes int
	WeeklyCount  int
}

type RecentOutput struct {
	ID              string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationMinutes int
}
