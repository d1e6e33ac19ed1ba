package in

import (
	"context"

	"studytrack/internal/modules/stats/dto"
	statsin "studytrack/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Snapshot(ctx context.Context, userID string) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, userID)
}
