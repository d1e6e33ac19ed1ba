package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"studytrack/internal/modules/session/domain"
	sessiondto "studytrack/internal/modules/session/dto"
	sessionin "studytrack/internal/modules/session/port/in"
	"studytrack/internal/modules/session/service"
	statsin "studytrack/internal/modules/stats/port/in"
	streakdto "studytrack/internal/modules/streak/dto"
	streakin "studytrack/internal/modules/streak/port/in"
	apperrors "studytrack/internal/platform/errors"
)

// Interactor owns the save pipeline of one client: at most one PendingSave,
// and at most one write in flight.
type Interactor struct {
	svc    *service.SessionService
	streak streakin.Usecase
	stats  statsin.Usecase
	log    logrus.FieldLogger

	mu       sync.Mutex
	state    domain.SaveState
	pending  *domain.PendingSave
	inFlight bool
	rollups  domain.Rollups
}

func NewInteractor(svc *service.SessionService, streak streakin.Usecase, stats statsin.Usecase, log logrus.FieldLogger) sessionin.Usecase {
	return &Interactor{svc: svc, streak: streak, stats: stats, log: log, state: domain.StateIdle}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if i.svc.Load(ctx) != nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}
	if input.GoalMinutes != nil && *input.GoalMinutes <= 0 {
		return sessiondto.StartOutput{}, fmt.Errorf("%w: goal must be positive", apperrors.ErrInvalidInput)
	}
	active := i.svc.Create(input.GoalMinutes)
	persisted := i.svc.Save(ctx, active)
	return sessiondto.StartOutput{StartedAt: active.StartTime(), GoalMinutes: active.GoalMinutes, Persisted: persisted}, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active := i.svc.Load(ctx)
	if active == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	return i.activeOutput(active), nil
}

func (i *Interactor) Pause(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active := i.svc.Load(ctx)
	if active == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	if active.Pause(i.svc.Now()) {
		i.svc.Save(ctx, *active)
	}
	return i.activeOutput(active), nil
}

func (i *Interactor) Resume(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active := i.svc.Load(ctx)
	if active == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	if active.Resume(i.svc.Now()) {
		i.svc.Save(ctx, *active)
	}
	return i.activeOutput(active), nil
}

func (i *Interactor) Discard(ctx context.Context) error {
	if i.svc.Load(ctx) == nil {
		return apperrors.ErrNoActiveSession
	}
	i.svc.Clear(ctx)
	return nil
}

func (i *Interactor) Stop(ctx context.Context, input sessiondto.StopInput) (sessiondto.StopOutput, error) {
	out, err := i.BeginStop(ctx, input)
	if err != nil || out.Outcome != sessiondto.OutcomeSaving {
		return out, err
	}
	return i.CommitPending(ctx)
}

// BeginStop validates the running session and stages its save. The active
// record is cleared before any remote call so the timer resets immediately.
func (i *Interactor) BeginStop(ctx context.Context, input sessiondto.StopInput) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.inFlight || i.state == domain.StateSaving {
		return sessiondto.StopOutput{}, apperrors.ErrSaveInFlight
	}
	if i.pending != nil {
		return sessiondto.StopOutput{}, apperrors.ErrPendingSave
	}
	if strings.TrimSpace(input.UserID) == "" {
		return sessiondto.StopOutput{}, apperrors.ErrNotSignedIn
	}
	active := i.svc.Load(ctx)
	if active == nil {
		return sessiondto.StopOutput{}, apperrors.ErrNoActiveSession
	}

	i.state = domain.StateValidating
	pending, err := i.svc.Prepare(input.UserID, *active)
	i.svc.Clear(ctx)
	if errors.Is(err, apperrors.ErrSessionTooShort) {
		i.state = domain.StateIdle
		i.log.WithField("duration_min", pending.DurationMinutes).Info("session too short, not saved")
		return sessiondto.StopOutput{
			Outcome:         sessiondto.OutcomeTooShort,
			State:           i.state.String(),
			DurationMinutes: pending.DurationMinutes,
			StartedAt:       pending.StartTime,
			Message:         fmt.Sprintf("Sessions shorter than %d minutes are not saved.", i.svc.MinSessionMinutes()),
			Rollups:         i.rollupsOutput(),
		}, nil
	}
	if err != nil {
		i.state = domain.StateIdle
		return sessiondto.StopOutput{}, err
	}

	i.pending = &pending
	i.state = domain.StateSaving
	return sessiondto.StopOutput{
		Outcome:         sessiondto.OutcomeSaving,
		State:           i.state.String(),
		DurationMinutes: pending.DurationMinutes,
		StartedAt:       pending.StartTime,
		Message:         "Saving session…",
		Rollups:         i.rollupsOutput(),
	}, nil
}

// CommitPending performs the first write of a save staged by BeginStop.
func (i *Interactor) CommitPending(ctx context.Context) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	if i.inFlight {
		i.mu.Unlock()
		return sessiondto.StopOutput{}, apperrors.ErrSaveInFlight
	}
	if i.pending == nil || i.state != domain.StateSaving {
		i.mu.Unlock()
		return sessiondto.StopOutput{}, apperrors.ErrNoPendingSave
	}
	pending := i.launch()
	i.mu.Unlock()
	return i.attempt(ctx, pending), nil
}

// Retry re-sends the exact payload of the failed save.
func (i *Interactor) Retry(ctx context.Context) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	if i.inFlight {
		i.mu.Unlock()
		return sessiondto.StopOutput{}, apperrors.ErrSaveInFlight
	}
	if i.pending == nil || i.state != domain.StateFailed {
		i.mu.Unlock()
		return sessiondto.StopOutput{}, apperrors.ErrNoPendingSave
	}
	i.state = domain.StateSaving
	pending := i.launch()
	i.mu.Unlock()
	return i.attempt(ctx, pending), nil
}

// Dismiss drops the failed save for good.
func (i *Interactor) Dismiss(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.inFlight {
		return apperrors.ErrSaveInFlight
	}
	if i.pending == nil || i.state != domain.StateFailed {
		return apperrors.ErrNoPendingSave
	}
	i.log.WithFields(logrus.Fields{
		"session_id":   i.pending.ID,
		"duration_min": i.pending.DurationMinutes,
	}).Warn("pending save dismissed")
	i.pending = nil
	i.state = domain.StateIdle
	return nil
}

// launch must be called with mu held.
func (i *Interactor) launch() domain.PendingSave {
	i.pending.Attempts++
	i.inFlight = true
	i.rollups.Stage(i.pending.DurationMinutes)
	return *i.pending
}

func (i *Interactor) attempt(ctx context.Context, pending domain.PendingSave) sessiondto.StopOutput {
	err := i.svc.Write(ctx, pending)

	i.mu.Lock()
	i.inFlight = false
	out := sessiondto.StopOutput{DurationMinutes: pending.DurationMinutes, StartedAt: pending.StartTime}
	if err != nil {
		i.rollups.Rollback()
		i.state = domain.StateFailed
		out.Outcome = sessiondto.OutcomeFailed
		out.State = i.state.String()
		out.Err = err
		if errors.Is(err, apperrors.ErrSaveTimeout) {
			out.Failure = string(domain.FailureTimeout)
			out.Message = "Saving timed out. The session is kept; retry or dismiss."
		} else {
			out.Failure = string(domain.FailureError)
			out.Message = "Saving failed. The session is kept; retry or dismiss."
		}
		out.Rollups = i.rollupsOutput()
		i.mu.Unlock()
		i.log.WithError(err).WithFields(logrus.Fields{
			"session_id": pending.ID,
			"attempt":    pending.Attempts,
		}).Error("save session")
		return out
	}
	i.pending = nil
	i.state = domain.StateSucceeded
	i.rollups.Confirm()
	out.Outcome = sessiondto.OutcomeSaved
	out.State = i.state.String()
	out.Message = fmt.Sprintf("Saved %d minute session.", pending.DurationMinutes)
	out.Rollups = i.rollupsOutput()
	i.mu.Unlock()

	i.svc.RecordHistory(ctx, pending.Record())
	if i.streak != nil {
		streaks, err := i.streak.Recompute(ctx, streakdto.RecomputeInput{UserID: pending.UserID})
		if err != nil {
			i.log.WithError(err).WithField("user_id", pending.UserID).Error("recompute streaks")
			out.StreakWarning = "Session saved, but the streak could not be updated."
		} else {
			out.CurrentStreak = streaks.Current
			out.LongestStreak = streaks.Longest
		}
	}
	return out
}

func (i *Interactor) Pending(_ context.Context) (sessiondto.PendingOutput, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pending == nil {
		return sessiondto.PendingOutput{}, false
	}
	return sessiondto.PendingOutput{
		ID:              i.pending.ID,
		UserID:          i.pending.UserID,
		DurationMinutes: i.pending.DurationMinutes,
		StartedAt:       i.pending.StartTime,
		Attempts:        i.pending.Attempts,
	}, true
}

func (i *Interactor) State(_ context.Context) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state.String()
}

func (i *Interactor) Rollups(_ context.Context) sessiondto.RollupsOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.rollupsOutput()
}

// Reconcile replaces the locally incremented rollups with a fresh snapshot.
func (i *Interactor) Reconcile(ctx context.Context, userID string) (sessiondto.RollupsOutput, error) {
	if i.stats == nil {
		return i.Rollups(ctx), nil
	}
	snap, err := i.stats.Snapshot(ctx, userID)
	if err != nil {
		return sessiondto.RollupsOutput{}, err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.rollups.Reconcile(snap.TodayMinutes, snap.WeeklyCount)
	return i.rollupsOutput(), nil
}

func (i *Interactor) Recent(ctx context.Context, limit int) ([]sessiondto.RecentOutput, error) {
	records, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.RecentOutput, 0, len(records))
	for _, r := range records {
		out = append(out, sessiondto.RecentOutput{ID: r.ID, StartedAt: r.StartTime, EndedAt: r.EndTime, DurationMinutes: r.DurationMinutes})
	}
	return out, nil
}

func (i *Interactor) rollupsOutput() sessiondto.RollupsOutput {
	return sessiondto.RollupsOutput{TodayMinutes: i.rollups.TodayMinutes, WeeklyCount: i.rollups.WeeklyCount}
}

func (i *Interactor) activeOutput(active *domain.ActiveSession) sessiondto.ActiveSessionOutput {
	return sessiondto.ActiveSessionOutput{
		StartedAt:      active.StartTime(),
		ElapsedSeconds: i.svc.ElapsedSeconds(active),
		Paused:         active.Paused(),
		GoalMinutes:    active.GoalMinutes,
	}
}
