package in

import (
	"context"

	sessiondto "studytrack/internal/modules/session/dto"
	sessionin "studytrack/internal/modules/session/port/in"
)

// TUIHandler exposes the split stop so the timer can reset before the write
// settles.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{})
}

func (h TUIHandler) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h TUIHandler) TogglePause(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active, err := h.usecase.GetActive(ctx)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	if active.Paused {
		return h.usecase.Resume(ctx)
	}
	return h.usecase.Pause(ctx)
}

func (h TUIHandler) Discard(ctx context.Context) error {
	return h.usecase.Discard(ctx)
}

func (h TUIHandler) BeginStop(ctx context.Context, userID string) (sessiondto.StopOutput, error) {
	return h.usecase.BeginStop(ctx, sessiondto.StopInput{UserID: userID})
}

func (h TUIHandler) CommitPending(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.CommitPending(ctx)
}

func (h TUIHandler) Retry(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Retry(ctx)
}

func (h TUIHandler) Dismiss(ctx context.Context) error {
	return h.usecase.Dismiss(ctx)
}

func (h TUIHandler) Reconcile(ctx context.Context, userID string) (sessiondto.RollupsOutput, error) {
	return h.usecase.Reconcile(ctx, userID)
}
