package in

import (
	"context"

	"studytrack/internal/modules/leaderboard/dto"
)

type Usecase interface {
	Build(ctx context.Context) (dto.LeaderboardOutput, error)
}
