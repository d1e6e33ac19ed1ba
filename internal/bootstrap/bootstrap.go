package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	identityinadapter "studytrack/internal/modules/identity/adapter/in"
	identityoutadapter "studytrack/internal/modules/identity/adapter/out"
	identityin "studytrack/internal/modules/identity/port/in"
	identityservice "studytrack/internal/modules/identity/service"
	identityusecase "studytrack/internal/modules/identity/usecase"
	leaderboardinadapter "studytrack/internal/modules/leaderboard/adapter/in"
	leaderboardoutadapter "studytrack/internal/modules/leaderboard/adapter/out"
	leaderboardservice "studytrack/internal/modules/leaderboard/service"
	leaderboardusecase "studytrack/internal/modules/leaderboard/usecase"
	profileinadapter "studytrack/internal/modules/profile/adapter/in"
	profileoutadapter "studytrack/internal/modules/profile/adapter/out"
	profileservice "studytrack/internal/modules/profile/service"
	profileusecase "studytrack/internal/modules/profile/usecase"
	sessioninadapter "studytrack/internal/modules/session/adapter/in"
	sessionoutadapter "studytrack/internal/modules/session/adapter/out"
	sessionservice "studytrack/internal/modules/session/service"
	sessionusecase "studytrack/internal/modules/session/usecase"
	statsinadapter "studytrack/internal/modules/stats/adapter/in"
	statsoutadapter "studytrack/internal/modules/stats/adapter/out"
	statsservice "studytrack/internal/modules/stats/service"
	statsusecase "studytrack/internal/modules/stats/usecase"
	streakinadapter "studytrack/internal/modules/streak/adapter/in"
	streakoutadapter "studytrack/internal/modules/streak/adapter/out"
	streakservice "studytrack/internal/modules/streak/service"
	streakusecase "studytrack/internal/modules/streak/usecase"
	"studytrack/internal/platform/calendar"
	"studytrack/internal/platform/clock"
	"studytrack/internal/platform/config"
	"studytrack/internal/platform/database"
	"studytrack/internal/platform/id"
	"studytrack/internal/platform/logging"
	"studytrack/internal/server"
	uiapp "studytrack/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *logrus.Logger

	SessionCLI     sessioninadapter.CLIHandler
	SessionTUI     sessioninadapter.TUIHandler
	StreakCLI      streakinadapter.CLIHandler
	StatsCLI       statsinadapter.CLIHandler
	ProfileCLI     profileinadapter.CLIHandler
	IdentityCLI    identityinadapter.CLIHandler
	LeaderboardCLI leaderboardinadapter.CLIHandler
	Router         server.Router

	identity identityin.Usecase
	db       *database.DB
}

func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, cfg.LogLevel)
	clk := clock.SystemClock{}
	ids := id.UUID{}
	cal := calendar.New(cfg.Location)

	db, err := database.Open(ctx, database.Dialect(strings.ToLower(cfg.DBDriver)), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.WithField("driver", cfg.DBDriver).Debug("database ready")

	streakUC := streakusecase.NewInteractor(streakservice.NewStreakService(
		clk,
		cal,
		streakoutadapter.NewSQLSessionHistory(db),
		streakoutadapter.NewSQLStreakStore(db),
	))

	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		clk,
		cal,
		statsoutadapter.NewSQLSessionReader(db),
	))

	sessionLog := logger.WithField("module", "session")
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(
			clk,
			ids,
			sessionoutadapter.NewFileActiveSessionStore(cfg.DataDir),
			sessionoutadapter.NewSQLSessionRepository(db),
			sessionoutadapter.NewVaultHistoryStore(cfg.DataDir),
			sessionLog,
			sessionservice.Options{MinSessionMinutes: cfg.MinSessionMinutes, SaveTimeout: cfg.SaveTimeout},
		),
		streakUC,
		statsUC,
		sessionLog,
	)

	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(
		clk,
		profileoutadapter.NewSQLProfileStore(db),
	))

	identityUC := identityusecase.NewInteractor(
		identityservice.NewIdentityService(
			clk,
			ids,
			identityoutadapter.NewSQLAccountStore(db),
			identityoutadapter.NewYAMLCredentialStore(cfg.DataDir),
			identityoutadapter.NewBcryptHasher(0),
		),
		profileUC,
		logger.WithField("module", "identity"),
	)

	leaderboardLog := logger.WithField("module", "leaderboard")
	leaderboardUC := leaderboardusecase.NewInteractor(leaderboardservice.NewLeaderboardService(
		clk,
		cal,
		leaderboardoutadapter.NewSQLContributionSource(db),
		leaderboardLog,
		leaderboardoutadapter.NewSQLProfileDirectory(db),
		leaderboardoutadapter.NewIdentityDirectory(identityUC),
	))

	return &App{
		Config:         cfg,
		Logger:         logger,
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI:     sessioninadapter.NewTUIHandler(sessionUC),
		StreakCLI:      streakinadapter.NewCLIHandler(streakUC),
		StatsCLI:       statsinadapter.NewCLIHandler(statsUC),
		ProfileCLI:     profileinadapter.NewCLIHandler(profileUC),
		IdentityCLI:    identityinadapter.NewCLIHandler(identityUC),
		LeaderboardCLI: leaderboardinadapter.NewCLIHandler(leaderboardUC),
		Router: server.Router{
			Logger:      logger.WithField("module", "http"),
			Leaderboard: leaderboardUC,
			Stats:       statsUC,
			Profiles:    profileUC,
		},
		identity: identityUC,
		db:       db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// RunTUI opens the timer for the signed-in user.
func RunTUI(ctx context.Context, app *App) error {
	user, err := app.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}
	model := uiapp.NewModel(app.SessionTUI, app.StreakCLI, user.ID, user.Email, app.Config.DailyGoalMinutes)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// Serve runs the read-only HTTP API until ctx is cancelled.
func Serve(ctx context.Context, app *App) error {
	return server.New(app.Config.HTTPAddr, app.Router).Run(ctx)
}
