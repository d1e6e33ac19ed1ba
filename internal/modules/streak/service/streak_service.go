package service

import (
	"context"
	"fmt"
	"strings"

	"studytrack/internal/modules/streak/domain"
	streakout "studytrack/internal/modules/streak/port/out"
	"studytrack/internal/platform/calendar"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
)

type StreakService struct {
	clock   clock.Clock
	cal     calendar.Calendar
	history streakout.SessionHistory
	store   streakout.StreakStore
}

func NewStreakService(clock clock.Clock, cal calendar.Calendar, history streakout.SessionHistory, store streakout.StreakStore) *StreakService {
	return &StreakService{clock: clock, cal: cal, history: history, store: store}
}

// Recompute rebuilds the streaks of userID from the full session history and
// stores them. Concurrent recomputations for one user are last-write-wins.
func (s *StreakService) Recompute(ctx context.Context, userID string) (domain.Streaks, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Streaks{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	starts, err := s.history.StartTimes(ctx, userID)
	if err != nil {
		return domain.Streaks{}, fmt.Errorf("load session history: %w", err)
	}
	previous, _, err := s.store.GetStreaks(ctx, userID)
	if err != nil {
		return domain.Streaks{}, fmt.Errorf("load streaks: %w", err)
	}
	streaks := domain.Compute(starts, s.cal, s.clock.Now(), previous.Longest)
	if err := s.store.UpsertStreaks(ctx, userID, streaks); err != nil {
		return domain.Streaks{}, fmt.Errorf("store streaks: %w", err)
	}
	return streaks, nil
}

func (s *StreakService) Get(ctx context.Context, userID string) (domain.Streaks, error) {
	streaks, _, err := s.store.GetStreaks(ctx, userID)
	if err != nil {
		return domain.Streaks{}, err
	}
	return streaks, nil
}
