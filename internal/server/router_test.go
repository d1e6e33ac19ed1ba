package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	leaderboarddto "studytrack/internal/modules/leaderboard/dto"
	profiledto "studytrack/internal/modules/profile/dto"
	statsdto "studytrack/internal/modules/stats/dto"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
)

type fakeLeaderboard struct {
	out leaderboarddto.LeaderboardOutput
	err error
}

func (f fakeLeaderboard) Build(context.Context) (leaderboarddto.LeaderboardOutput, error) {
	return f.out, f.err
}

type fakeStats struct{}

func (fakeStats) TodayTotalMinutes(context.Context, string) (int, error)  { return 30, nil }
func (fakeStats) TodaySessionCount(context.Context, string) (int, error)  { return 1, nil }
func (fakeStats) WeeklySessionCount(context.Context, string) (int, error) { return 4, nil }
func (fakeStats) WeeklyTotalMinutes(context.Context, string) (int, error) { return 150, nil }
func (fakeStats) Snapshot(_ context.Context, userID string) (statsdto.SnapshotOutput, error) {
	return statsdto.SnapshotOutput{UserID: userID, TodayMinutes: 30, TodayCount: 1, WeeklyMinutes: 150, WeeklyCount: 4}, nil
}

type fakeProfiles struct{}

func (fakeProfiles) Get(_ context.Context, userID string) (profiledto.ProfileOutput, error) {
	if userID == "blank" {
		return profiledto.ProfileOutput{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return profiledto.ProfileOutput{UserID: userID, Email: "ada@example.com", Label: "ada", Avatar: "🔥", CurrentStreak: 2, LongestStreak: 6}, nil
}
func (fakeProfiles) Ensure(context.Context, profiledto.EnsureInput) error { return nil }
func (fakeProfiles) Update(context.Context, profiledto.UpdateInput) (profiledto.ProfileOutput, error) {
	return profiledto.ProfileOutput{}, nil
}
func (fakeProfiles) Avatars() []string { return nil }

func newTestRouter(lb fakeLeaderboard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return Router{Logger: logging.Discard(), Leaderboard: lb, Stats: fakeStats{}, Profiles: fakeProfiles{}}.SetUpRouter()
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLeaderboardEndpoint(t *testing.T) {
	router := newTestRouter(fakeLeaderboard{out: leaderboarddto.LeaderboardOutput{Entries: []leaderboarddto.EntryOutput{
		{Rank: 1, UserID: "C", Email: "c@example.com", WeeklyMinutes: 200},
		{Rank: 2, UserID: "A", Email: "a@example.com", WeeklyMinutes: 120},
	}}})

	rec := get(t, router, "/leaderboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body leaderboarddto.LeaderboardOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Entries) != 2 || body.Entries[0].UserID != "C" || body.Entries[1].Rank != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestStatsAndProfileEndpoints(t *testing.T) {
	router := newTestRouter(fakeLeaderboard{})

	rec := get(t, router, "/users/u-1/stats")
	var stats StatsResponse
	if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &stats) != nil {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}
	if stats.UserID != "u-1" || stats.TodayMinutes != 30 || stats.WeeklyCount != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	rec = get(t, router, "/users/u-1/profile")
	var profile ProfileResponse
	if rec.Code != http.StatusOK || json.Unmarshal(rec.Body.Bytes(), &profile) != nil {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}
	if profile.DisplayName != "ada" || profile.LongestStreak != 6 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if rec := get(t, router, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
}

func TestErrorsAreProblemDocuments(t *testing.T) {
	router := newTestRouter(fakeLeaderboard{err: errors.New("db down")})

	rec := get(t, router, "/leaderboard")
	var problem APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || problem.Status != 500 || problem.Instance != "/leaderboard" {
		t.Fatalf("unexpected problem: %d %+v", rec.Code, problem)
	}
	if problem.Detail == "db down" {
		t.Fatalf("internal errors must not leak details")
	}

	rec = get(t, router, "/users/blank/profile")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
