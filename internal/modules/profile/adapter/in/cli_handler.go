package in

import (
	"context"

	"studytrack/internal/modules/profile/dto"
	profilein "studytrack/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, userID string) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx, userID)
}

func (h CLIHandler) Set(ctx context.Context, userID, email, displayName, avatar string) (dto.ProfileOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{UserID: userID, Email: email, DisplayName: displayName, Avatar: avatar})
}

func (h CLIHandler) Avatars() []string {
	return h.usecase.Avatars()
}
