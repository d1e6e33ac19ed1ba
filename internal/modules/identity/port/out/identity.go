package out

import (
	"context"

	"studytrack/internal/modules/identity/domain"
)

type AccountStore interface {
	// Create returns apperrors.ErrAccountExists for a taken email.
	Create(ctx context.Context, account domain.Account) error
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

// CredentialStore remembers the user signed in on this device.
type CredentialStore interface {
	Save(ctx context.Context, user domain.User) error
	Load(ctx context.Context) (domain.User, error)
	Clear(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
