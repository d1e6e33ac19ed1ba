package dto

import "time"

type EnsureInput struct {
	UserID string
	Email  string
}

type UpdateInput struct {
	UserID      string
	Email       string
	DisplayName string
	Avatar      string
}

// ProfileOutput carries presentation-ready values: Label and Avatar already
// have their fallbacks applied.
type ProfileOutput struct {
	UserID        string
	Email         string
	DisplayName   string
	Label         string
	Avatar        string
	CurrentStreak int
	LongestStreak int
	UpdatedAt     time.Time
	Stored        bool
}
