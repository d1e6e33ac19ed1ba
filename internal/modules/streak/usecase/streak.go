package usecase

import (
	"context"

	"studytrack/internal/modules/streak/domain"
	"studytrack/internal/modules/streak/dto"
	streakin "studytrack/internal/modules/streak/port/in"
	"studytrack/internal/modules/streak/service"
)

type Interactor struct {
	svc *service.StreakService
}

func NewInteractor(svc *service.StreakService) streakin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Recompute(ctx context.Context, input dto.RecomputeInput) (dto.StreakOutput, error) {
	streaks, err := i.svc.Recompute(ctx, input.UserID)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return toOutput(input.UserID, streaks), nil
}

func (i *Interactor) Get(ctx context.Context, userID string) (dto.StreakOutput, error) {
	streaks, err := i.svc.Get(ctx, userID)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return toOutput(userID, streaks), nil
}

func toOutput(userID string, s domain.Streaks) dto.StreakOutput {
	return dto.StreakOutput{UserID: userID, Current: s.Current, Longest: s.Longest, UpdatedAt: s.UpdatedAt}
}
