package out

import (
	"context"

	"studytrack/internal/modules/profile/domain"
)

// ProfileStore shares the user_profiles rows with the streak engine. Writes
// from this side never touch the streak columns of an existing row.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (domain.Profile, bool, error)
	Ensure(ctx context.Context, profile domain.Profile) error
	UpsertDetails(ctx context.Context, profile domain.Profile) error
}
