package out

import (
	"context"
	"time"

	"studytrack/internal/modules/streak/domain"
)

type SessionHistory interface {
	StartTimes(ctx context.Context, userID string) ([]time.Time, error)
}

type StreakStore interface {
	// GetStreaks reports found=false for users without a profile row.
	GetStreaks(ctx context.Context, userID string) (domain.Streaks, bool, error)
	UpsertStreaks(ctx context.Context, userID string, streaks domain.Streaks) error
}
