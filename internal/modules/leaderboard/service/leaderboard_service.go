package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"studytrack/internal/modules/leaderboard/domain"
	leaderboardout "studytrack/internal/modules/leaderboard/port/out"
	"studytrack/internal/platform/calendar"
	"studytrack/internal/platform/clock"
)

type LeaderboardService struct {
	clock       clock.Clock
	cal         calendar.Calendar
	source      leaderboardout.ContributionSource
	directories []leaderboardout.EmailDirectory
	log         logrus.FieldLogger
}

// NewLeaderboardService asks directories for emails in the given order; a
// failing directory is skipped in favour of the next one.
func NewLeaderboardService(
	clock clock.Clock,
	cal calendar.Calendar,
	source leaderboardout.ContributionSource,
	log logrus.FieldLogger,
	directories ...leaderboardout.EmailDirectory,
) *LeaderboardService {
	return &LeaderboardService{clock: clock, cal: cal, source: source, directories: directories, log: log}
}

func (s *LeaderboardService) Build(ctx context.Context) ([]domain.Entry, time.Time, error) {
	since := s.cal.WeekStart(s.clock.Now())
	contributions, err := s.source.ContributionsSince(ctx, since)
	if err != nil {
		return nil, since, fmt.Errorf("query weekly sessions: %w", err)
	}
	entries := domain.Rank(domain.Aggregate(contributions), domain.Size)
	s.resolveEmails(ctx, entries)
	return entries, since, nil
}

func (s *LeaderboardService) resolveEmails(ctx context.Context, entries []domain.Entry) {
	for _, dir := range s.directories {
		missing := domain.MissingEmails(entries)
		if len(missing) == 0 {
			break
		}
		emails, err := dir.Emails(ctx, missing)
		if err != nil {
			s.log.WithError(err).WithField("directory", dir.Name()).Warn("resolve leaderboard emails")
			continue
		}
		domain.ApplyEmails(entries, emails)
	}
	domain.MarkUnknown(entries)
}
