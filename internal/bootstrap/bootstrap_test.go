package bootstrap

import (
	"context"
	"errors"
	"io"
	"testing"

	sessiondto "studytrack/internal/modules/session/dto"
	"studytrack/internal/platform/config"
	apperrors "studytrack/internal/platform/errors"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	app, err := New(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestWiringSignUpThroughShortStop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	app := newTestApp(t)

	if _, err := app.IdentityCLI.WhoAmI(ctx); !errors.Is(err, apperrors.ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
	user, err := app.IdentityCLI.SignUp(ctx, "Ada@Example.com", "secret-pass")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	profile, err := app.ProfileCLI.Show(ctx, user.ID)
	if err != nil || !profile.Stored || profile.Label != "ada" {
		t.Fatalf("signup must create a profile: %+v %v", profile, err)
	}

	if _, err := app.SessionCLI.Start(ctx, 25); err != nil {
		t.Fatalf("start: %v", err)
	}
	out, err := app.SessionCLI.Stop(ctx, user.ID)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.Outcome != sessiondto.OutcomeTooShort {
		t.Fatalf("expected too-short outcome, got %+v", out)
	}
	if _, err := app.SessionCLI.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("stop must clear the active session, got %v", err)
	}

	snapshot, err := app.StatsCLI.Snapshot(ctx, user.ID)
	if err != nil || snapshot.TodayCount != 0 {
		t.Fatalf("nothing should be saved: %+v %v", snapshot, err)
	}
	board, err := app.LeaderboardCLI.Show(ctx)
	if err != nil || len(board.Entries) != 0 {
		t.Fatalf("expected empty leaderboard: %+v %v", board, err)
	}
}
