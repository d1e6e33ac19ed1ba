package in

import (
	"context"

	sessiondto "studytrack/internal/modules/session/dto"
	sessionin "studytrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, goalMinutes int) (sessiondto.StartOutput, error) {
	input := sessiondto.StartInput{}
	if goalMinutes > 0 {
		input.GoalMinutes = &goalMinutes
	}
	return h.usecase.Start(ctx, input)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) error {
	return h.usecase.Discard(ctx)
}

// Stop seeds the rollups from the store first; a failed snapshot only leaves
// the printed totals stale.
func (h CLIHandler) Stop(ctx context.Context, userID string) (sessiondto.StopOutput, error) {
	_, _ = h.usecase.Reconcile(ctx, userID)
	return h.usecase.Stop(ctx, sessiondto.StopInput{UserID: userID})
}

func (h CLIHandler) Retry(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Retry(ctx)
}

func (h CLIHandler) Dismiss(ctx context.Context) error {
	return h.usecase.Dismiss(ctx)
}

func (h CLIHandler) Recent(ctx context.Context, limit int) ([]sessiondto.RecentOutput, error) {
	return h.usecase.Recent(ctx, limit)
}
