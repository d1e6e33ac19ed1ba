package service

import (
	"context"
	"errors"
	"fmt"

	"studytrack/internal/modules/identity/domain"
	identityout "studytrack/internal/modules/identity/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/id"
)

type IdentityService struct {
	clock       clock.Clock
	idGen       id.Generator
	accounts    identityout.AccountStore
	credentials identityout.CredentialStore
	hasher      identityout.PasswordHasher
}

func NewIdentityService(
	clock clock.Clock,
	idGen id.Generator,
	accounts identityout.AccountStore,
	credentials identityout.CredentialStore,
	hasher identityout.PasswordHasher,
) *IdentityService {
	return &IdentityService{clock: clock, idGen: idGen, accounts: accounts, credentials: credentials, hasher: hasher}
}

func (s *IdentityService) Register(ctx context.Context, rawEmail, password string) (domain.Account, error) {
	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return domain.Account{}, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.Account{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}
	account := domain.Account{ID: s.idGen.New(), Email: email, PasswordHash: hash, CreatedAt: s.clock.Now()}
	if err := s.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// Authenticate reports the same error for an unknown email and a wrong
// password.
func (s *IdentityService) Authenticate(ctx context.Context, rawEmail, password string) (domain.Account, error) {
	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return domain.Account{}, apperrors.ErrInvalidCredentials
	}
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.Account{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("find account: %w", err)
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return domain.Account{}, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

func (s *IdentityService) Remember(ctx context.Context, user domain.User) error {
	if err := s.credentials.Save(ctx, user); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *IdentityService) Forget(ctx context.Context) error {
	if err := s.credentials.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *IdentityService) Current(ctx context.Context) (domain.User, error) {
	return s.credentials.Load(ctx)
}

func (s *IdentityService) Accounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
