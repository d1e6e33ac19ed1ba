package out

import (
	"context"
	"time"

	"studytrack/internal/modules/stats/domain"
)

type SessionReader interface {
	SessionsSince(ctx context.Context, userID string, since time.Time) ([]domain.SessionSummary, error)
}
