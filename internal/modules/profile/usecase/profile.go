package usecase

import (
	"context"

	"studytrack/internal/modules/profile/domain"
	"studytrack/internal/modules/profile/dto"
	profilein "studytrack/internal/modules/profile/port/in"
	"studytrack/internal/modules/profile/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context, userID string) (dto.ProfileOutput, error) {
	profile, stored, err := i.svc.Get(ctx, userID)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, stored), nil
}

func (i *Interactor) Ensure(ctx context.Context, input dto.EnsureInput) error {
	return i.svc.Ensure(ctx, input.UserID, input.Email)
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Update(ctx, input.UserID, input.Email, input.DisplayName, input.Avatar)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile, true), nil
}

func (i *Interactor) Avatars() []string {
	return append([]string(nil), domain.Avatars...)
}

func toOutput(p domain.Profile, stored bool) dto.ProfileOutput {
	return dto.ProfileOutput{
		UserID:        p.UserID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		Label:         p.Label(),
		Avatar:        p.AvatarOrDefault(),
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
		UpdatedAt:     p.UpdatedAt,
		Stored:        stored,
	}
}
