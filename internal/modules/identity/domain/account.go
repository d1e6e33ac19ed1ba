package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	apperrors "studytrack/internal/platform/errors"
)

const MinPasswordLength = 6

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// User is the public identity of an account.
type User struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
}

func (a Account) User() User {
	return User{ID: a.ID, Email: a.Email}
}

// NormalizeEmail lowercases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q is not a valid email", apperrors.ErrInvalidInput, raw)
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", apperrors.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
