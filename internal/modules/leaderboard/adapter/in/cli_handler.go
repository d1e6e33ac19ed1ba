package in

import (
	"context"

	"studytrack/internal/modules/leaderboard/dto"
	leaderboardin "studytrack/internal/modules/leaderboard/port/in"
)

type CLIHandler struct {
	usecase leaderboardin.Usecase
}

func NewCLIHandler(usecase leaderboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.LeaderboardOutput, error) {
	return h.usecase.Build(ctx)
}
