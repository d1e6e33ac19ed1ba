package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "studytrack/internal/platform/errors"
)

const DefaultAvatar = "🔥"

// Avatars is the closed set a user may pick from.
var Avatars = []string{"🚀", "🪐", "🔥", "🌑", "✨"}

type Profile struct {
	UserID        string
	Email         string
	DisplayName   string
	Avatar        string
	CurrentStreak int
	LongestStreak int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Default is the zero-streak profile of a user without a stored row.
func Default(userID string) Profile {
	return Profile{UserID: userID}
}

// Label is the display name, falling back to the local part of the email.
func (p Profile) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return EmailLocalPart(p.Email)
}

func (p Profile) AvatarOrDefault() string {
	if p.Avatar == "" {
		return DefaultAvatar
	}
	return p.Avatar
}

func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// ValidateDetails trims the display name and checks both user-editable fields.
func ValidateDetails(displayName, avatar string) (string, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return "", fmt.Errorf("%w: display name is required", apperrors.ErrInvalidInput)
	}
	if !slices.Contains(Avatars, avatar) {
		return "", fmt.Errorf("%w: avatar must be one of %s", apperrors.ErrInvalidInput, strings.Join(Avatars, " "))
	}
	return name, nil
}
