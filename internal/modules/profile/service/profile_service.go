package service

import (
	"context"
	"fmt"
	"strings"

	"studytrack/internal/modules/profile/domain"
	profileout "studytrack/internal/modules/profile/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
)

type ProfileService struct {
	clock clock.Clock
	store profileout.ProfileStore
}

func NewProfileService(clock clock.Clock, store profileout.ProfileStore) *ProfileService {
	return &ProfileService{clock: clock, store: store}
}

// Get returns the stored profile, or a zero-streak default when none exists.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, bool, error) {
	if err := requireUser(userID); err != nil {
		return domain.Profile{}, false, err
	}
	profile, found, err := s.store.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	if !found {
		return domain.Default(userID), false, nil
	}
	return profile, true, nil
}

func (s *ProfileService) Ensure(ctx context.Context, userID, email string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	now := s.clock.Now()
	profile := domain.Default(userID)
	profile.Email = strings.TrimSpace(email)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := s.store.Ensure(ctx, profile); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	return nil
}

func (s *ProfileService) Update(ctx context.Context, userID, email, displayName, avatar string) (domain.Profile, error) {
	if err := requireUser(userID); err != nil {
		return domain.Profile{}, err
	}
	name, err := domain.ValidateDetails(displayName, avatar)
	if err != nil {
		return domain.Profile{}, err
	}
	now := s.clock.Now()
	profile := domain.Profile{
		UserID:      userID,
		Email:       strings.TrimSpace(email),
		DisplayName: name,
		Avatar:      avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.UpsertDetails(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	stored, _, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return stored, nil
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return nil
}
