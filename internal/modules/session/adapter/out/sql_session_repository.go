package out

import (
	"context"
	"fmt"
	"time"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	"studytrack/internal/platform/database"
)

type SQLSessionRepository struct {
	db *database.DB
}

func NewSQLSessionRepository(db *database.DB) sessionout.SessionRepository {
	return &SQLSessionRepository{db: db}
}

// Insert is a no-op when a row with the same id already exists, so a retry
// after a timed-out write that landed anyway does not duplicate the session.
func (r *SQLSessionRepository) Insert(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO study_sessions (id, user_id, start_time, end_time, duration_min, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, stmt,
		record.ID,
		record.UserID,
		database.FormatTime(record.StartTime),
		database.FormatTime(record.EndTime),
		record.DurationMinutes,
		database.FormatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert study session: %w", err)
	}
	return nil
}
