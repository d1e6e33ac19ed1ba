package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studytrack/internal/modules/streak/domain"
	streakout "studytrack/internal/modules/streak/port/out"
	"studytrack/internal/platform/database"
)

type SQLSessionHistory struct {
	db *database.DB
}

func NewSQLSessionHistory(db *database.DB) streakout.SessionHistory {
	return &SQLSessionHistory{db: db}
}

func (s *SQLSessionHistory) StartTimes(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT start_time FROM study_sessions WHERE user_id = ? ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query session starts: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan session start: %w", err)
		}
		start, err := database.ParseTime(raw)
		if err != nil {
			return nil, err
		}
		starts = append(starts, start)
	}
	return starts, rows.Err()
}

type SQLStreakStore struct {
	db *database.DB
}

func NewSQLStreakStore(db *database.DB) streakout.StreakStore {
	return &SQLStreakStore{db: db}
}

func (s *SQLStreakStore) GetStreaks(ctx context.Context, userID string) (domain.Streaks, bool, error) {
	var (
		streaks   domain.Streaks
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, updated_at FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&streaks.Current, &streaks.Longest, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Streaks{}, false, nil
	}
	if err != nil {
		return domain.Streaks{}, false, fmt.Errorf("get streaks: %w", err)
	}
	if streaks.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return domain.Streaks{}, false, fmt.Errorf("streaks of %s: %w", userID, err)
	}
	return streaks, true, nil
}

// UpsertStreaks only touches the streak columns; email and display fields of
// an existing profile are preserved.
func (s *SQLStreakStore) UpsertStreaks(ctx context.Context, userID string, streaks domain.Streaks) error {
	const stmt = `
INSERT INTO user_profiles (user_id, current_streak, longest_streak, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  current_streak=excluded.current_streak,
  longest_streak=excluded.longest_streak,
  updated_at=excluded.updated_at
`
	ts := database.FormatTime(streaks.UpdatedAt)
	if _, err := s.db.ExecContext(ctx, stmt, userID, streaks.Current, streaks.Longest, ts, ts); err != nil {
		return fmt.Errorf("upsert streaks: %w", err)
	}
	return nil
}
