package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"studytrack/internal/modules/identity/domain"
	identityout "studytrack/internal/modules/identity/port/out"
	"studytrack/internal/platform/database"
	apperrors "studytrack/internal/platform/errors"
)

type SQLAccountStore struct {
	db *database.DB
}

func NewSQLAccountStore(db *database.DB) identityout.AccountStore {
	return &SQLAccountStore{db: db}
}

func (s *SQLAccountStore) Create(ctx context.Context, a domain.Account) error {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO accounts (id, email, password_hash, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(email) DO NOTHING`,
		a.ID, a.Email, a.PasswordHash, database.FormatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountExists, a.Email)
	}
	return nil
}

func (s *SQLAccountStore) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	var (
		a       domain.Account
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email = ?`, strings.ToLower(email),
	).Scan(&a.ID, &a.Email, &a.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("select account: %w", err)
	}
	if a.CreatedAt, err = database.ParseTime(created); err != nil {
		return domain.Account{}, fmt.Errorf("account %s: %w", a.ID, err)
	}
	return a, nil
}

// List never exposes password hashes.
func (s *SQLAccountStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, email, created_at FROM accounts ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var (
			a       domain.Account
			created string
		)
		if err := rows.Scan(&a.ID, &a.Email, &created); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if a.CreatedAt, err = database.ParseTime(created); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
