package service

import (
	"context"
	"fmt"

	"studytrack/internal/modules/stats/domain"
	statsout "studytrack/internal/modules/stats/port/out"
	"studytrack/internal/platform/calendar"
	"studytrack/internal/platform/clock"
)

// StatsService answers read-only rollups. Nothing is cached; every call
// re-queries the store.
type StatsService struct {
	clock  clock.Clock
	cal    calendar.Calendar
	reader statsout.SessionReader
}

func NewStatsService(clock clock.Clock, cal calendar.Calendar, reader statsout.SessionReader) *StatsService {
	return &StatsService{clock: clock, cal: cal, reader: reader}
}

func (s *StatsService) today(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	sessions, err := s.reader.SessionsSince(ctx, userID, s.cal.StartOfDay(s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("query today's sessions: %w", err)
	}
	return sessions, nil
}

func (s *StatsService) week(ctx context.Context, userID string) ([]domain.SessionSummary, error) {
	sessions, err := s.reader.SessionsSince(ctx, userID, s.cal.WeekStart(s.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("query weekly sessions: %w", err)
	}
	return sessions, nil
}

func (s *StatsService) TodayTotalMinutes(ctx context.Context, userID string) (int, error) {
	sessions, err := s.today(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.TotalMinutes(sessions), nil
}

func (s *StatsService) TodaySessionCount(ctx context.Context, userID string) (int, error) {
	sessions, err := s.today(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

func (s *StatsService) WeeklySessionCount(ctx context.Context, userID string) (int, error) {
	sessions, err := s.week(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

func (s *StatsService) WeeklyTotalMinutes(ctx context.Context, userID string) (int, error) {
	sessions, err := s.week(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.TotalMinutes(sessions), nil
}

// Snapshot answers all rollups from a single weekly query.
func (s *StatsService) Snapshot(ctx context.Context, userID string) (domain.Snapshot, error) {
	now := s.clock.Now()
	weekly, err := s.week(ctx, userID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	today := domain.Since(weekly, s.cal.StartOfDay(now))
	return domain.Snapshot{
		TodayMinutes:  domain.TotalMinutes(today),
		TodayCount:    len(today),
		WeeklyMinutes: domain.TotalMinutes(weekly),
		WeeklyCount:   len(weekly),
	}, nil
}
