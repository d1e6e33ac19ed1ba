package in

import (
	"context"

	"studytrack/internal/modules/identity/dto"
)

type Usecase interface {
	SignUp(ctx context.Context, input dto.CredentialsInput) (dto.UserOutput, error)
	SignIn(ctx context.Context, input dto.CredentialsInput) (dto.UserOutput, error)
	SignOut(ctx context.Context) error
	// CurrentUser returns apperrors.ErrNotSignedIn when nobody is signed in.
	CurrentUser(ctx context.Context) (dto.UserOutput, error)
	ListUsers(ctx context.Context) ([]dto.UserOutput, error)
}
