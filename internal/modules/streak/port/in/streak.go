package in

import (
	"context"

	"studytrack/internal/modules/streak/dto"
)

type Usecase interface {
	Recompute(ctx context.Context, input dto.RecomputeInput) (dto.StreakOutput, error)
	Get(ctx context.Context, userID string) (dto.StreakOutput, error)
}
