package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studytrack/internal/modules/profile/domain"
	profileout "studytrack/internal/modules/profile/port/out"
	"studytrack/internal/platform/database"
)

type SQLProfileStore struct {
	db *database.DB
}

func NewSQLProfileStore(db *database.DB) profileout.ProfileStore {
	return &SQLProfileStore{db: db}
}

func (s *SQLProfileStore) Get(ctx context.Context, userID string) (domain.Profile, bool, error) {
	var (
		p                    domain.Profile
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT user_id, email, display_name, avatar, current_streak, longest_streak, created_at, updated_at
FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.Email, &p.DisplayName, &p.Avatar, &p.CurrentStreak, &p.LongestStreak, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("select profile: %w", err)
	}
	if p.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return domain.Profile{}, false, fmt.Errorf("profile %s created_at: %w", userID, err)
	}
	if p.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return domain.Profile{}, false, fmt.Errorf("profile %s updated_at: %w", userID, err)
	}
	return p, true, nil
}

// Ensure creates a zero-streak row. An existing row only has a blank email
// filled in.
func (s *SQLProfileStore) Ensure(ctx context.Context, p domain.Profile) error {
	const stmt = `
INSERT INTO user_profiles (user_id, email, current_streak, longest_streak, created_at, updated_at)
VALUES (?, ?, 0, 0, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  email=CASE WHEN user_profiles.email = '' THEN excluded.email ELSE user_profiles.email END
`
	_, err := s.db.ExecContext(ctx, stmt, p.UserID, p.Email, database.FormatTime(p.CreatedAt), database.FormatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpsertDetails writes the user-editable columns and keeps the streaks.
func (s *SQLProfileStore) UpsertDetails(ctx context.Context, p domain.Profile) error {
	const stmt = `
INSERT INTO user_profiles (user_id, email, display_name, avatar, current_streak, longest_streak, created_at, updated_at)
VALUES (?, ?, ?, ?, 0, 0, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  email=CASE WHEN excluded.email = '' THEN user_profiles.email ELSE excluded.email END,
  display_name=excluded.display_name,
  avatar=excluded.avatar,
  updated_at=excluded.updated_at
`
	_, err := s.db.ExecContext(ctx, stmt,
		p.UserID, p.Email, p.DisplayName, p.Avatar,
		database.FormatTime(p.CreatedAt), database.FormatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
