package out

import (
	"context"
	"fmt"
	"time"

	"studytrack/internal/modules/stats/domain"
	statsout "studytrack/internal/modules/stats/port/out"
	"studytrack/internal/platform/database"
)

type SQLSessionReader struct {
	db *database.DB
}

func NewSQLSessionReader(db *database.DB) statsout.SessionReader {
	return &SQLSessionReader{db: db}
}

func (r *SQLSessionReader) SessionsSince(ctx context.Context, userID string, since time.Time) ([]domain.SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_time, duration_min FROM study_sessions WHERE user_id = ? AND start_time >= ? ORDER BY start_time`,
		userID, database.FormatTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionSummary
	for rows.Next() {
		var (
			s   domain.SessionSummary
			raw string
		)
		if err := rows.Scan(&raw, &s.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.StartTime, err = database.ParseTime(raw); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
