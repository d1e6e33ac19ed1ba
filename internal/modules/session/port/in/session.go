package in

import (
	"context"

	"studytrack/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	GetActive(ctx context.Context) (dto.ActiveSessionOutput, error)
	Pause(ctx context.Context) (dto.ActiveSessionOutput, error)
	Resume(ctx context.Context) (dto.ActiveSessionOutput, error)
	Discard(ctx context.Context) error

	// Stop runs BeginStop followed by CommitPending.
	Stop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	BeginStop(ctx context.Context, input dto.StopInput) (dto.StopOutput, error)
	CommitPending(ctx context.Context) (dto.StopOutput, error)
	Retry(ctx context.Context) (dto.StopOutput, error)
	Dismiss(ctx context.Context) error
	Pending(ctx context.Context) (dto.PendingOutput, bool)
	State(ctx context.Context) string

	Rollups(ctx context.Context) dto.RollupsOutput
	Reconcile(ctx context.Context, userID string) (dto.RollupsOutput, error)
	Recent(ctx context.Context, limit int) ([]dto.RecentOutput, error)
}
