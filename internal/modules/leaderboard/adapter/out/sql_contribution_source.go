package out

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studytrack/internal/modules/leaderboard/domain"
	leaderboardout "studytrack/internal/modules/leaderboard/port/out"
	"studytrack/internal/platform/database"
)

type SQLContributionSource struct {
	db *database.DB
}

func NewSQLContributionSource(db *database.DB) leaderboardout.ContributionSource {
	return &SQLContributionSource{db: db}
}

// ContributionsSince left-joins profiles so a user without a profile row
// still ranks.
func (s *SQLContributionSource) ContributionsSince(ctx context.Context, since time.Time) ([]domain.Contribution, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT s.user_id, s.duration_min,
       COALESCE(p.current_streak, 0), COALESCE(p.display_name, ''), COALESCE(p.avatar, '')
FROM study_sessions s
LEFT JOIN user_profiles p ON p.user_id = s.user_id
WHERE s.start_time >= ?
ORDER BY s.start_time`, database.FormatTime(since))
	if err != nil {
		return nil, fmt.Errorf("query contributions: %w", err)
	}
	defer rows.Close()

	var out []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.UserID, &c.DurationMinutes, &c.CurrentStreak, &c.DisplayName, &c.Avatar); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SQLProfileDirectory reads emails recorded on user profiles.
type SQLProfileDirectory struct {
	db *database.DB
}

func NewSQLProfileDirectory(db *database.DB) leaderboardout.EmailDirectory {
	return &SQLProfileDirectory{db: db}
}

func (d *SQLProfileDirectory) Name() string { return "profiles" }

func (d *SQLProfileDirectory) Emails(ctx context.Context, userIDs []string) (map[string]string, error) {
	emails := map[string]string{}
	if len(userIDs) == 0 {
		return emails, nil
	}
	args := make([]any, 0, len(userIDs))
	for _, id := range userIDs {
		args = append(args, id)
	}
	query := fmt.Sprintf(`SELECT user_id, email FROM user_profiles WHERE user_id IN (%s)`, database.Placeholders(len(userIDs)))
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profile emails: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, email string
		if err := rows.Scan(&userID, &email); err != nil {
			return nil, fmt.Errorf("scan profile email: %w", err)
		}
		if email = strings.TrimSpace(email); email != "" {
			emails[userID] = email
		}
	}
	return emails, rows.Err()
}
