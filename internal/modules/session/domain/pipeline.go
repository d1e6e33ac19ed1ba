package domain

type SaveState int

const (
	StateIdle SaveState = iota
	StateValidating
	StateSaving
	StateSucceeded
	StateFailed
)

func (s SaveState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSaving:
		return "saving"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type FailureKind string

const (
	FailureNone    FailureKind = ""
	FailureTimeout FailureKind = "timeout"
	FailureError   FailureKind = "error"
)

// Rollups caches today's minutes and this week's session count for display.
// A save stages a tentative increment which is confirmed or rolled back once
// the remote write settles; Reconcile replaces the confirmed values with a
// fresh snapshot.
type Rollups struct {
	TodayMinutes int
	WeeklyCount  int

	staged        bool
	stagedMinutes int
}

func (r *Rollups) Stage(minutes int) {
	r.staged = true
	r.stagedMinutes = minutes
}

func (r *Rollups) Confirm() {
	if !r.staged {
		return
	}
	r.TodayMinutes += r.stagedMinutes
	r.WeeklyCount++
	r.staged = false
	r.stagedMinutes = 0
}

func (r *Rollups) Rollback() {
	r.staged = false
	r.stagedMinutes = 0
}

func (r Rollups) Tentative() (int, bool) {
	return r.stagedMinutes, r.staged
}

func (r *Rollups) Reconcile(todayMinutes, weeklyCount int) {
	r.TodayMinutes = todayMinutes
	r.WeeklyCount = weeklyCount
}
