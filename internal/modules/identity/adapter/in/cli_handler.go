package in

import (
	"context"

	"studytrack/internal/modules/identity/dto"
	identityin "studytrack/internal/modules/identity/port/in"
)

type CLIHandler struct {
	usecase identityin.Usecase
}

func NewCLIHandler(usecase identityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SignUp(ctx context.Context, email, password string) (dto.UserOutput, error) {
	return h.usecase.SignUp(ctx, dto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (dto.UserOutput, error) {
	return h.usecase.SignIn(ctx, dto.CredentialsInput{Email: email, Password: password})
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (dto.UserOutput, error) {
	return h.usecase.CurrentUser(ctx)
}
