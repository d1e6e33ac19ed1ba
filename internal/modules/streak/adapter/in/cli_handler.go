package in

import (
	"context"

	"studytrack/internal/modules/streak/dto"
	streakin "studytrack/internal/modules/streak/port/in"
)

type CLIHandler struct {
	usecase streakin.Usecase
}

func NewCLIHandler(usecase streakin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context, userID string) (dto.StreakOutput, error) {
	return h.usecase.Get(ctx, userID)
}

func (h CLIHandler) Recompute(ctx context.Context, userID string) (dto.StreakOutput, error) {
	return h.usecase.Recompute(ctx, dto.RecomputeInput{UserID: userID})
}
