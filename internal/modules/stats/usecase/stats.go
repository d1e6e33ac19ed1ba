package usecase

import (
	"context"

	"studytrack/internal/modules/stats/dto"
	statsin "studytrack/internal/modules/stats/port/in"
	"studytrack/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) TodayTotalMinutes(ctx context.Context, userID string) (int, error) {
	return i.svc.TodayTotalMinutes(ctx, userID)
}

func (i *Interactor) TodaySessionCount(ctx context.Context, userID string) (int, error) {
	return i.svc.TodaySessionCount(ctx, userID)
}

func (i *Interactor) WeeklySessionCount(ctx context.Context, userID string) (int, error) {
	return i.svc.WeeklySessionCount(ctx, userID)
}

func (i *Interactor) WeeklyTotalMinutes(ctx context.Context, userID string) (int, error) {
	return i.svc.WeeklyTotalMinutes(ctx, userID)
}

func (i *Interactor) Snapshot(ctx context.Context, userID string) (dto.SnapshotOutput, error) {
	snap, err := i.svc.Snapshot(ctx, userID)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	return dto.SnapshotOutput{
		UserID:        userID,
		TodayMinutes:  snap.TodayMinutes,
		TodayCount:    snap.TodayCount,
		WeeklyMinutes: snap.WeeklyMinutes,
		WeeklyCount:   snap.WeeklyCount,
	}, nil
}
