package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	leaderboardin "studytrack/internal/modules/leaderboard/port/in"
	profilein "studytrack/internal/modules/profile/port/in"
	statsin "studytrack/internal/modules/stats/port/in"
	apperrors "studytrack/internal/platform/errors"
)

// APIError is an RFC 7807 problem document.
type APIError struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

type StatsResponse struct {
	UserID        string `json:"userId"`
	TodayMinutes  int    `json:"todayMinutes"`
	TodayCount    int    `json:"todayCount"`
	WeeklyMinutes int    `json:"weeklyMinutes"`
	WeeklyCount   int    `json:"weeklyCount"`
}

type ProfileResponse struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	Avatar        string `json:"avatar"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

// Router serves read-only snapshots. Nothing is pushed; clients poll.
type Router struct {
	Logger      logrus.FieldLogger
	Leaderboard leaderboardin.Usecase
	Stats       statsin.Usecase
	Profiles    profilein.Usecase
}

func (r Router) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), r.requestLogger())
	router.GET("/healthz", r.health)
	router.GET("/leaderboard", r.leaderboard)
	router.GET("/users/:id/stats", r.stats)
	router.GET("/users/:id/profile", r.profile)
	return router
}

func (r Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		r.Logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		}).Debug("http request")
	}
}

func (r Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (r Router) leaderboard(c *gin.Context) {
	out, err := r.Leaderboard.Build(c.Request.Context())
	if err != nil {
		r.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (r Router) stats(c *gin.Context) {
	snap, err := r.Stats.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		UserID:        c.Param("id"),
		TodayMinutes:  snap.TodayMinutes,
		TodayCount:    snap.TodayCount,
		WeeklyMinutes: snap.WeeklyMinutes,
		WeeklyCount:   snap.WeeklyCount,
	})
}

func (r Router) profile(c *gin.Context) {
	p, err := r.Profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		UserID:        p.UserID,
		Email:         p.Email,
		DisplayName:   p.Label,
		Avatar:        p.Avatar,
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
	})
}

func (r Router) sendError(c *gin.Context, err error) {
	problem := APIError{
		Type:     "about:blank",
		Title:    "Internal Error",
		Status:   http.StatusInternalServerError,
		Detail:   err.Error(),
		Instance: c.Request.URL.Path,
	}
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		problem.Title, problem.Status = "Bad Request", http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		problem.Title, problem.Status = "Not Found", http.StatusNotFound
	default:
		r.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		problem.Detail = "the request could not be completed"
	}
	c.JSON(problem.Status, problem)
}
