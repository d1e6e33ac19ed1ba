package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"studytrack/internal/bootstrap"
	sessiondto "studytrack/internal/modules/session/dto"
	"studytrack/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Study session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.config/studytrack)")

	root.AddCommand(newAuthCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newStreakCmd(&dataDir))
	root.AddCommand(newLeaderboardCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	return root
}

func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	if dataDir == "" {
		dir, err := config.DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = dir
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, os.Stderr)
}

// withApp loads the app for one command and closes it afterwards.
func withApp(dataDir *string, run func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := loadApp(ctx, *dataDir)
		if err != nil {
			return err
		}
		defer app.Close()
		return run(ctx, cmd, app, args)
	}
}

// signedIn returns the current user id.
func signedIn(ctx context.Context, app *bootstrap.App) (string, error) {
	user, err := app.IdentityCLI.WhoAmI(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account commands"}

	var email, password string
	credentialFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&email, "email", "", "account email")
		cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin when empty)")
		_ = cmd.MarkFlagRequired("email")
	}

	signUp := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			secret, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			user, err := app.IdentityCLI.SignUp(ctx, email, secret)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s\n", user.Email)
			return nil
		}),
	}
	credentialFlags(signUp)

	signIn := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to an existing account",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			secret, err := passwordOrPrompt(cmd, password)
			if err != nil {
				return err
			}
			user, err := app.IdentityCLI.SignIn(ctx, email, secret)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", user.Email)
			return nil
		}),
	}
	credentialFlags(signIn)

	auth.AddCommand(signUp, signIn,
		&cobra.Command{
			Use:   "signout",
			Short: "Forget the signed-in account",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				if err := app.IdentityCLI.SignOut(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in account",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				user, err := app.IdentityCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.ID)
				return nil
			}),
		},
	)
	return auth
}

func passwordOrPrompt(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session commands"}

	var goal int
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a study session",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.SessionCLI.Start(ctx, goal)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started at %s\n", out.StartedAt.Local().Format(time.Kitchen))
			if !out.Persisted {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: the active session could not be stored and will not survive a restart")
			}
			return nil
		}),
	}
	start.Flags().IntVar(&goal, "goal", 0, "session goal in minutes")

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "List recently saved sessions",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			items, err := app.SessionCLI.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %3d min  %s\n",
					item.StartedAt.Local().Format("2006-01-02 15:04"), item.DurationMinutes, item.ID)
			}
			return nil
		}),
	}
	recent.Flags().IntVar(&limit, "limit", 10, "number of sessions")

	session.AddCommand(start, recent,
		&cobra.Command{
			Use:   "status",
			Short: "Show the active session",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				out, err := app.SessionCLI.Status(ctx)
				if err != nil {
					return err
				}
				printActive(cmd.OutOrStdout(), out)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "pause",
			Short: "Pause the active session",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				out, err := app.SessionCLI.Pause(ctx)
				if err != nil {
					return err
				}
				printActive(cmd.OutOrStdout(), out)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "resume",
			Short: "Resume a paused session",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				out, err := app.SessionCLI.Resume(ctx)
				if err != nil {
					return err
				}
				printActive(cmd.OutOrStdout(), out)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "discard",
			Short: "Throw away the active session without saving",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				if err := app.SessionCLI.Discard(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop and save the active session",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				userID, err := signedIn(ctx, app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Stop(ctx, userID)
				if err != nil {
					return err
				}
				return settleStop(ctx, cmd, app, out)
			}),
		},
	)
	return session
}

// settleStop prints the outcome and, while the save keeps failing, asks
// whether to retry or dismiss it.
func settleStop(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, out sessiondto.StopOutput) error {
	w := cmd.OutOrStdout()
	in := bufio.NewReader(cmd.InOrStdin())
	for out.Outcome == sessiondto.OutcomeFailed {
		_, _ = fmt.Fprintf(w, "%s (%d min session kept)\n[r]etry or [d]ismiss? ", out.Message, out.DurationMinutes)
		line, err := in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch {
		case answer == "r" || answer == "retry":
			if out, err = app.SessionCLI.Retry(ctx); err != nil {
				return err
			}
		case answer == "d" || answer == "dismiss" || err != nil:
			if err := app.SessionCLI.Dismiss(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, "session dismissed")
			return nil
		}
	}
	_, _ = fmt.Fprintln(w, out.Message)
	if out.Outcome != sessiondto.OutcomeSaved {
		return nil
	}
	if out.StreakWarning != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: "+out.StreakWarning)
	} else {
		_, _ = fmt.Fprintf(w, "streak %d (best %d)\n", out.CurrentStreak, out.LongestStreak)
	}
	_, _ = fmt.Fprintf(w, "today %d min, this week %d sessions\n", out.Rollups.TodayMinutes, out.Rollups.WeeklyCount)
	return nil
}

func printActive(w io.Writer, out sessiondto.ActiveSessionOutput) {
	state := "running"
	if out.Paused {
		state = "paused"
	}
	elapsed := time.Duration(out.ElapsedSeconds) * time.Second
	line := fmt.Sprintf("%s  %s  started %s", state, elapsed, out.StartedAt.Local().Format(time.Kitchen))
	if out.GoalMinutes != nil {
		line += fmt.Sprintf("  goal %d min", *out.GoalMinutes)
	}
	_, _ = fmt.Fprintln(w, line)
}

func newTimerCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "timer",
		Short: "Run the study timer terminal UI",
		RunE: withApp(dataDir, func(ctx context.Context, _ *cobra.Command, app *bootstrap.App, _ []string) error {
			return bootstrap.RunTUI(ctx, app)
		}),
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show today's and this week's totals",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			userID, err := signedIn(ctx, app)
			if err != nil {
				return err
			}
			out, err := app.StatsCLI.Snapshot(ctx, userID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "today      %d min (%d sessions)\nthis week  %d min (%d sessions)\n",
				out.TodayMinutes, out.TodayCount, out.WeeklyMinutes, out.WeeklyCount)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newStreakCmd(dataDir *string) *cobra.Command {
	var recompute bool
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current and longest streak",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			userID, err := signedIn(ctx, app)
			if err != nil {
				return err
			}
			get := app.StreakCLI.Get
			if recompute {
				get = app.StreakCLI.Recompute
			}
			out, err := get(ctx, userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "current %d  longest %d\n", out.Current, out.Longest)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&recompute, "recompute", false, "recompute from the session history first")
	return cmd
}

func newLeaderboardCmd(dataDir *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show this week's top ten",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.LeaderboardCLI.Show(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "week of %s\n", out.WindowStart.Format("2006-01-02"))
			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(w, "no sessions yet")
				return nil
			}
			for _, entry := range out.Entries {
				_, _ = fmt.Fprintf(w, "%2d. %s %-24s %5d min  streak %d\n",
					entry.Rank, entry.Avatar, entry.DisplayName, entry.WeeklyMinutes, entry.CurrentStreak)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Profile commands"}

	var name, avatar string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set display name and avatar",
		RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			user, err := app.IdentityCLI.WhoAmI(ctx)
			if err != nil {
				return err
			}
			out, err := app.ProfileCLI.Set(ctx, user.ID, user.Email, name, avatar)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Avatar, out.Label)
			return nil
		}),
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&avatar, "avatar", "", "avatar emoji (see profile avatars)")
	_ = set.MarkFlagRequired("name")

	profile.AddCommand(set,
		&cobra.Command{
			Use:   "show",
			Short: "Show your profile",
			RunE: withApp(dataDir, func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				userID, err := signedIn(ctx, app)
				if err != nil {
					return err
				}
				out, err := app.ProfileCLI.Show(ctx, userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\nstreak %d (best %d)\n", out.Avatar, out.Label, out.CurrentStreak, out.LongestStreak)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "avatars",
			Short: "List the avatars to pick from",
			RunE: withApp(dataDir, func(_ context.Context, cmd *cobra.Command, app *bootstrap.App, _ []string) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(app.ProfileCLI.Avatars(), " "))
				return nil
			}),
		},
	)
	return profile
}

func newServeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		RunE: withApp(dataDir, func(ctx context.Context, _ *cobra.Command, app *bootstrap.App, _ []string) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return bootstrap.Serve(ctx, app)
		}),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
