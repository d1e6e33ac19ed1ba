package domain

import "time"

const SchemaVersion = 1

// MinSessionMinutes is the shortest session that is ever saved. Configuration
// may raise it but never lower it.
const MinSessionMinutes = 10

// ActiveSession is the device-local record of a running timer. Elapsed time is
// always derived from its timestamps, never accumulated.
type ActiveSession struct {
	Running      bool   `json:"running"`
	StartEpochMs int64  `json:"startEpochMs"`
	PausedMs     int64  `json:"pausedMs"`
	PausedAtMs   *int64 `json:"pausedAtMs,omitempty"`
	GoalMinutes  *int   `json:"goalMinutes,omitempty"`
}

func NewActiveSession(now time.Time, goalMinutes *int) ActiveSession {
	return ActiveSession{
		Running:      true,
		StartEpochMs: now.UnixMilli(),
		PausedMs:     0,
		GoalMinutes:  goalMinutes,
	}
}

func (a ActiveSession) StartTime() time.Time {
	return time.UnixMilli(a.StartEpochMs).UTC()
}

func (a ActiveSession) Paused() bool {
	return a.PausedAtMs != nil
}

// Pause reports false when the session is already paused.
func (a *ActiveSession) Pause(now time.Time) bool {
	if a.Paused() {
		return false
	}
	at := now.UnixMilli()
	a.PausedAtMs = &at
	return true
}

// Resume folds the open pause interval into PausedMs.
func (a *ActiveSession) Resume(now time.Time) bool {
	if !a.Paused() {
		return false
	}
	if gap := now.UnixMilli() - *a.PausedAtMs; gap > 0 {
		a.PausedMs += gap
	}
	a.PausedAtMs = nil
	return true
}

// ElapsedSeconds is max(0, floor((now - start - paused) / 1s)). An open pause
// interval counts as paused time.
func ElapsedSeconds(a *ActiveSession, now time.Time) int64 {
	if a == nil {
		return 0
	}
	nowMs := now.UnixMilli()
	pausedMs := a.PausedMs
	if a.PausedAtMs != nil && nowMs > *a.PausedAtMs {
		pausedMs += nowMs - *a.PausedAtMs
	}
	elapsedMs := nowMs - a.StartEpochMs - pausedMs
	if elapsedMs <= 0 {
		return 0
	}
	return elapsedMs / 1000
}

// DurationMinutes truncates to whole minutes.
func DurationMinutes(elapsedSeconds int64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return int(elapsedSeconds / 60)
}

// PendingSave is the payload of a save that has not been confirmed yet. ID is
// generated on the client and doubles as the idempotency key of the insert.
type PendingSave struct {
	ID              string
	UserID          string
	DurationMinutes int
	StartTime       time.Time
	Attempts        int
}

func (p PendingSave) Record() Record {
	return Record{
		ID:              p.ID,
		UserID:          p.UserID,
		StartTime:       p.StartTime,
		EndTime:         p.StartTime.Add(time.Duration(p.DurationMinutes) * time.Minute),
		DurationMinutes: p.DurationMinutes,
	}
}

// Record is a completed session as stored remotely and in the local history.
type Record struct {
	ID              string
	UserID          string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	// CreatedAt is when the save was written; zero until then.
	CreatedAt time.Time
}
