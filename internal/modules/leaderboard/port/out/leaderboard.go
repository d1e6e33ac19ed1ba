package out

import (
	"context"
	"time"

	"studytrack/internal/modules/leaderboard/domain"
)

type ContributionSource interface {
	ContributionsSince(ctx context.Context, since time.Time) ([]domain.Contribution, error)
}

// EmailDirectory resolves user ids to emails. Unknown ids are left out of the
// result.
type EmailDirectory interface {
	Name() string
	Emails(ctx context.Context, userIDs []string) (map[string]string, error)
}
