package in

import (
	"context"

	"studytrack/internal/modules/stats/dto"
)

type Usecase interface {
	TodayTotalMinutes(ctx context.Context, userID string) (int, error)
	TodaySessionCount(ctx context.Context, userID string) (int, error)
	WeeklySessionCount(ctx context.Context, userID string) (int, error)
	WeeklyTotalMinutes(ctx context.Context, userID string) (int, error)
	Snapshot(ctx context.Context, userID string) (dto.SnapshotOutput, error)
}
