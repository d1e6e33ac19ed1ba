package out

import (
	"context"

	identityin "studytrack/internal/modules/identity/port/in"
	leaderboardout "studytrack/internal/modules/leaderboard/port/out"
)

// IdentityDirectory enumerates accounts through the identity module.
type IdentityDirectory struct {
	identity identityin.Usecase
}

func NewIdentityDirectory(identity identityin.Usecase) leaderboardout.EmailDirectory {
	return &IdentityDirectory{identity: identity}
}

func (d *IdentityDirectory) Name() string { return "identity" }

func (d *IdentityDirectory) Emails(ctx context.Context, userIDs []string) (map[string]string, error) {
	users, err := d.identity.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	emails := map[string]string{}
	for _, u := range users {
		if _, ok := wanted[u.ID]; ok && u.Email != "" {
			emails[u.ID] = u.Email
		}
	}
	return emails, nil
}
