package in

import (
	"context"

	"studytrack/internal/modules/profile/dto"
)

type Usecase interface {
	Get(ctx context.Context, userID string) (dto.ProfileOutput, error)
	Ensure(ctx context.Context, input dto.EnsureInput) error
	Update(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error)
	Avatars() []string
}
