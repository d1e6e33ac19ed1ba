package out

import (
	"context"

	"studytrack/internal/modules/session/domain"
)

// SessionRepository is the remote, append-only session collection. Insert must
// be idempotent on Record.ID.
type SessionRepository interface {
	Insert(ctx context.Context, record domain.Record) error
}

// ActiveSessionStore is the single local slot for the running timer.
// LoadActive returns apperrors.ErrNoActiveSession when nothing valid is stored.
type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}

// HistoryStore is the device-local list of saved sessions.
type HistoryStore interface {
	Append(ctx context.Context, record domain.Record) error
	Recent(ctx context.Context, limit int) ([]domain.Record, error)
}
