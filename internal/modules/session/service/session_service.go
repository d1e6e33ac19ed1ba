package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/id"
	"studytrack/internal/platform/race"
)

type Options struct {
	MinSessionMinutes int
	SaveTimeout       time.Duration
}

type SessionService struct {
	clock   clock.Clock
	idGen   id.Generator
	active  sessionout.ActiveSessionStore
	repo    sessionout.SessionRepository
	history sessionout.HistoryStore
	log     logrus.FieldLogger
	opts    Options
}

func NewSessionService(
	clock clock.Clock,
	idGen id.Generator,
	active sessionout.ActiveSessionStore,
	repo sessionout.SessionRepository,
	history sessionout.HistoryStore,
	log logrus.FieldLogger,
	opts Options,
) *SessionService {
	if opts.MinSessionMinutes < domain.MinSessionMinutes {
		opts.MinSessionMinutes = domain.MinSessionMinutes
	}
	return &SessionService{clock: clock, idGen: idGen, active: active, repo: repo, history: history, log: log, opts: opts}
}

func (s *SessionService) MinSessionMinutes() int {
	return s.opts.MinSessionMinutes
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

func (s *SessionService) Create(goalMinutes *int) domain.ActiveSession {
	return domain.NewActiveSession(s.clock.Now(), goalMinutes)
}

// Save persists the active session and reports whether it stuck. Failures are
// logged, never returned.
func (s *SessionService) Save(ctx context.Context, session domain.ActiveSession) bool {
	if err := s.active.SaveActive(ctx, session); err != nil {
		s.log.WithError(fmt.Errorf("%w: %w", apperrors.ErrLocalPersistence, err)).Warn("save active session")
		return false
	}
	return true
}

// Load returns nil for a missing, corrupt or stopped record.
func (s *SessionService) Load(ctx context.Context) *domain.ActiveSession {
	session, err := s.active.LoadActive(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			s.log.WithError(fmt.Errorf("%w: %w", apperrors.ErrLocalPersistence, err)).Warn("load active session")
		}
		return nil
	}
	return &session
}

func (s *SessionService) Clear(ctx context.Context) {
	if err := s.active.ClearActive(ctx); err != nil {
		s.log.WithError(fmt.Errorf("%w: %w", apperrors.ErrLocalPersistence, err)).Warn("clear active session")
	}
}

func (s *SessionService) ElapsedSeconds(session *domain.ActiveSession) int64 {
	return domain.ElapsedSeconds(session, s.clock.Now())
}

// Prepare turns a stopped session into the payload of its save. Sessions
// under the minimum length yield apperrors.ErrSessionTooShort.
func (s *SessionService) Prepare(userID string, session domain.ActiveSession) (domain.PendingSave, error) {
	minutes := domain.DurationMinutes(s.ElapsedSeconds(&session))
	if minutes < s.opts.MinSessionMinutes {
		return domain.PendingSave{DurationMinutes: minutes, StartTime: session.StartTime()},
			fmt.Errorf("%w: %d < %d minutes", apperrors.ErrSessionTooShort, minutes, s.opts.MinSessionMinutes)
	}
	return domain.PendingSave{
		ID:              s.idGen.New(),
		UserID:          userID,
		DurationMinutes: minutes,
		StartTime:       session.StartTime(),
	}, nil
}

// Write inserts the pending record within the save timeout. The error is
// classified as apperrors.ErrSaveTimeout or apperrors.ErrRemoteWrite.
func (s *SessionService) Write(ctx context.Context, pending domain.PendingSave) error {
	record := pending.Record()
	record.CreatedAt = s.clock.Now()
	err := race.WithTimeout(ctx, s.opts.SaveTimeout, func(ctx context.Context) error {
		return s.repo.Insert(ctx, record)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, race.ErrTimeout):
		return fmt.Errorf("%w after %s", apperrors.ErrSaveTimeout, s.opts.SaveTimeout)
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrRemoteWrite, err)
	}
}

func (s *SessionService) RecordHistory(ctx context.Context, record domain.Record) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, record); err != nil {
		s.log.WithError(fmt.Errorf("%w: %w", apperrors.ErrLocalPersistence, err)).
			WithField("session_id", record.ID).
			Warn("append local history")
	}
}

func (s *SessionService) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	if s.history == nil {
		return nil, nil
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrInvalidInput)
	}
	records, err := s.history.Recent(ctx, limit)
	if errors.Is(err, apperrors.ErrLocalPersistence) {
		// Unreadable notes were skipped; the rest of the history still counts.
		s.log.WithError(err).WithField("records", len(records)).Warn("read local history")
		return records, nil
	}
	return records, err
}
