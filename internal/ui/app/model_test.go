package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	sessiondto "studytrack/internal/modules/session/dto"
	streakdto "studytrack/internal/modules/streak/dto"
	apperrors "studytrack/internal/platform/errors"
)

type fakeSession struct {
	active     *sessiondto.ActiveSessionOutput
	stopOut    sessiondto.StopOutput
	retryOut   sessiondto.StopOutput
	begins     int
	commits    int
	retries    int
	dismissals int
}

func (f *fakeSession) Start(context.Context) (sessiondto.StartOutput, error) {
	f.active = &sessiondto.ActiveSessionOutput{}
	return sessiondto.StartOutput{}, nil
}

func (f *fakeSession) GetActive(context.Context) (sessiondto.ActiveSessionOutput, error) {
	if f.active == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	return *f.active, nil
}

func (f *fakeSession) TogglePause(context.Context) (sessiondto.ActiveSessionOutput, error) {
	f.active.Paused = !f.active.Paused
	return *f.active, nil
}

func (f *fakeSession) Discard(context.Context) error {
	f.active = nil
	return nil
}

func (f *fakeSession) BeginStop(context.Context, string) (sessiondto.StopOutput, error) {
	f.begins++
	f.active = nil
	return f.stopOut, nil
}

func (f *fakeSession) CommitPending(context.Context) (sessiondto.StopOutput, error) {
	f.commits++
	return sessiondto.StopOutput{
		Outcome:         sessiondto.OutcomeFailed,
		Failure:         "timeout",
		Message:         "Saving timed out.",
		DurationMinutes: 25,
		Err:             apperrors.ErrSaveTimeout,
	}, nil
}

func (f *fakeSession) Retry(context.Context) (sessiondto.StopOutput, error) {
	f.retries++
	return f.retryOut, nil
}

func (f *fakeSession) Dismiss(context.Context) error {
	f.dismissals++
	return nil
}

func (f *fakeSession) Reconcile(context.Context, string) (sessiondto.RollupsOutput, error) {
	return sessiondto.RollupsOutput{TodayMinutes: 20, WeeklyCount: 2}, nil
}

type fakeStreaks struct{}

func (fakeStreaks) Get(context.Context, string) (streakdto.StreakOutput, error) {
	return streakdto.StreakOutput{Current: 2, Longest: 4}, nil
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model, cmd
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestElapsedComesFromStoredSession(t *testing.T) {
	t.Parallel()
	session := &fakeSession{active: &sessiondto.ActiveSessionOutput{ElapsedSeconds: 3725}}
	m := NewModel(session, fakeStreaks{}, "u-1", "ada@example.com", 60)

	m, _ = update(t, m, m.loadActiveCmd()())
	if !m.hasActive || !strings.Contains(m.View(), "01:02:05") {
		t.Fatalf("expected recovered timer in view:\n%s", m.View())
	}

	session.active.ElapsedSeconds = 3800
	m, _ = update(t, m, m.loadActiveCmd()())
	if !strings.Contains(m.View(), "01:03:20") {
		t.Fatalf("expected recomputed elapsed time:\n%s", m.View())
	}

	m, _ = update(t, m, m.overviewCmd()())
	if m.rollups.TodayMinutes != 20 || m.streak.Current != 2 {
		t.Fatalf("overview not applied: %+v %+v", m.rollups, m.streak)
	}
}

func TestTooShortNoticeClearsItself(t *testing.T) {
	t.Parallel()
	session := &fakeSession{
		active:  &sessiondto.ActiveSessionOutput{ElapsedSeconds: 120},
		stopOut: sessiondto.StopOutput{Outcome: sessiondto.OutcomeTooShort, Message: "Sessions shorter than 10 minutes are not saved."},
	}
	m := NewModel(session, fakeStreaks{}, "u-1", "", 0)
	m, _ = update(t, m, m.loadActiveCmd()())

	m, cmd := update(t, m, space())
	if cmd == nil {
		t.Fatalf("space on a running timer must stop it")
	}
	m, clearCmd := update(t, m, cmd())
	if m.hasActive || !strings.Contains(m.notice, "not saved") || clearCmd == nil {
		t.Fatalf("expected too-short notice with a clear timer, got %+v", m.notice)
	}
	if session.commits != 0 {
		t.Fatalf("too-short stop must not commit")
	}

	m, _ = update(t, m, clearNoticeMsg{id: m.noticeID - 1})
	if m.notice == "" {
		t.Fatalf("a stale clear must not remove the current notice")
	}
	m, _ = update(t, m, clearNoticeMsg{id: m.noticeID})
	if m.notice != "" {
		t.Fatalf("notice must clear")
	}
}

func TestFailedSaveOffersRetryAndDismiss(t *testing.T) {
	t.Parallel()
	session := &fakeSession{
		active:   &sessiondto.ActiveSessionOutput{ElapsedSeconds: 1500},
		stopOut:  sessiondto.StopOutput{Outcome: sessiondto.OutcomeSaving, DurationMinutes: 25},
		retryOut: sessiondto.StopOutput{Outcome: sessiondto.OutcomeSaved, Message: "Saved 25 minute session.", CurrentStreak: 3, LongestStreak: 4, Rollups: sessiondto.RollupsOutput{TodayMinutes: 45, WeeklyCount: 3}},
	}
	m := NewModel(session, fakeStreaks{}, "u-1", "", 60)
	m, _ = update(t, m, m.loadActiveCmd()())

	m, _ = update(t, m, m.beginStopCmd()())
	if !m.saving || m.hasActive {
		t.Fatalf("expected saving with a reset timer")
	}
	if _, cmd := update(t, m, space()); cmd != nil {
		t.Fatalf("stop must be disabled while saving")
	}
	if _, cmd := update(t, m, runeKey('r')); cmd != nil {
		t.Fatalf("retry must be disabled while saving")
	}

	m, _ = update(t, m, m.commitCmd()())
	if m.saving || m.failure == nil || m.failure.Failure != "timeout" {
		t.Fatalf("expected persistent failure, got %+v", m.failure)
	}
	if view := m.View(); !strings.Contains(view, "retry") || !strings.Contains(view, "dismiss") {
		t.Fatalf("failure must offer retry and dismiss:\n%s", view)
	}

	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil || !m.saving {
		t.Fatalf("retry must start a save")
	}
	m, _ = update(t, m, m.retryCmd()())
	if m.failure != nil || m.streak.Current != 3 || m.rollups.TodayMinutes != 45 {
		t.Fatalf("expected success after retry: %+v %+v", m.streak, m.rollups)
	}
	if session.retries != 1 {
		t.Fatalf("expected one retry, got %d", session.retries)
	}
}

func TestDismissClearsFailure(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := NewModel(session, fakeStreaks{}, "u-1", "", 60)
	m.failure = &sessiondto.StopOutput{Outcome: sessiondto.OutcomeFailed, Message: "Saving failed."}

	m, cmd := update(t, m, runeKey('d'))
	if cmd == nil {
		t.Fatalf("dismiss must issue a command")
	}
	m, _ = update(t, m, cmd())
	if m.failure != nil || session.dismissals != 1 {
		t.Fatalf("expected failure cleared after dismiss")
	}

	m, _ = update(t, m, dismissedMsg{err: errors.New("boom")})
	if !strings.Contains(m.status, "boom") {
		t.Fatalf("dismiss errors must surface, got %q", m.status)
	}
}

func TestLoadIssuedBeforeStopCannotRestoreTimer(t *testing.T) {
	t.Parallel()
	session := &fakeSession{
		active:  &sessiondto.ActiveSessionOutput{ElapsedSeconds: 120},
		stopOut: sessiondto.StopOutput{Outcome: sessiondto.OutcomeTooShort, Message: "Sessions shorter than 10 minutes are not saved."},
	}
	m := NewModel(session, fakeStreaks{}, "u-1", "", 60)
	m, _ = update(t, m, m.loadActiveCmd()())

	// A tick fired while the session was still running.
	inFlight := m.loadActiveCmd()()

	m, cmd := update(t, m, space())
	if cmd == nil {
		t.Fatalf("space must begin the stop")
	}
	m, _ = update(t, m, cmd())
	if m.hasActive {
		t.Fatalf("stop must clear the timer")
	}

	m, _ = update(t, m, inFlight)
	if m.hasActive || strings.Contains(m.View(), "studying") {
		t.Fatalf("a load from before the stop must be dropped:\n%s", m.View())
	}

	m, _ = update(t, m, m.loadActiveCmd()())
	if m.hasActive {
		t.Fatalf("a fresh load must still apply")
	}
}

func TestLoadIssuedBeforeDiscardIsDropped(t *testing.T) {
	t.Parallel()
	session := &fakeSession{active: &sessiondto.ActiveSessionOutput{ElapsedSeconds: 60}}
	m := NewModel(session, fakeStreaks{}, "u-1", "", 60)
	m, _ = update(t, m, m.loadActiveCmd()())

	inFlight := m.loadActiveCmd()()
	m, cmd := update(t, m, runeKey('x'))
	if cmd == nil {
		t.Fatalf("x must discard the running timer")
	}
	m, _ = update(t, m, cmd())
	m, _ = update(t, m, inFlight)
	if m.hasActive {
		t.Fatalf("a load from before the discard must be dropped")
	}
}
