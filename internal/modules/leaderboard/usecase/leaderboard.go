package usecase

import (
	"context"

	"studytrack/internal/modules/leaderboard/dto"
	leaderboardin "studytrack/internal/modules/leaderboard/port/in"
	"studytrack/internal/modules/leaderboard/service"
)

type Interactor struct {
	svc *service.LeaderboardService
}

func NewInteractor(svc *service.LeaderboardService) leaderboardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Build(ctx context.Context) (dto.LeaderboardOutput, error) {
	entries, since, err := i.svc.Build(ctx)
	if err != nil {
		return dto.LeaderboardOutput{}, err
	}
	out := dto.LeaderboardOutput{WindowStart: since, Entries: make([]dto.EntryOutput, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.EntryOutput{
			Rank:          e.Rank,
			UserID:        e.UserID,
			Email:         e.Email,
			DisplayName:   e.Label(),
			Avatar:        e.AvatarOrDefault(),
			WeeklyMinutes: e.WeeklyMinutes,
			CurrentStreak: e.CurrentStreak,
		})
	}
	return out, nil
}
