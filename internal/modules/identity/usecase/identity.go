package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"studytrack/internal/modules/identity/domain"
	"studytrack/internal/modules/identity/dto"
	identityin "studytrack/internal/modules/identity/port/in"
	"studytrack/internal/modules/identity/service"
	profiledto "studytrack/internal/modules/profile/dto"
	profilein "studytrack/internal/modules/profile/port/in"
)

type Interactor struct {
	svc      *service.IdentityService
	profiles profilein.Usecase
	log      logrus.FieldLogger
}

func NewInteractor(svc *service.IdentityService, profiles profilein.Usecase, log logrus.FieldLogger) identityin.Usecase {
	return &Interactor{svc: svc, profiles: profiles, log: log}
}

// SignUp creates the account, signs it in and seeds its profile. A profile
// failure is logged and does not fail the sign-up.
func (i *Interactor) SignUp(ctx context.Context, input dto.CredentialsInput) (dto.UserOutput, error) {
	account, err := i.svc.Register(ctx, input.Email, input.Password)
	if err != nil {
		return dto.UserOutput{}, err
	}
	if i.profiles != nil {
		if err := i.profiles.Ensure(ctx, profiledto.EnsureInput{UserID: account.ID, Email: account.Email}); err != nil {
			i.log.WithError(err).WithField("user_id", account.ID).Error("create initial profile")
		}
	}
	if err := i.svc.Remember(ctx, account.User()); err != nil {
		return dto.UserOutput{}, err
	}
	return toOutput(account.User()), nil
}

func (i *Interactor) SignIn(ctx context.Context, input dto.CredentialsInput) (dto.UserOutput, error) {
	account, err := i.svc.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return dto.UserOutput{}, err
	}
	if err := i.svc.Remember(ctx, account.User()); err != nil {
		return dto.UserOutput{}, err
	}
	return toOutput(account.User()), nil
}

func (i *Interactor) SignOut(ctx context.Context) error {
	return i.svc.Forget(ctx)
}

func (i *Interactor) CurrentUser(ctx context.Context) (dto.UserOutput, error) {
	user, err := i.svc.Current(ctx)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toOutput(user), nil
}

func (i *Interactor) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	accounts, err := i.svc.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toOutput(a.User()))
	}
	return out, nil
}

func toOutput(u domain.User) dto.UserOutput {
	return dto.UserOutput{ID: u.ID, Email: u.Email}
}
