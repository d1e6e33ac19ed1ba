package dto

import "time"

type RecomputeInput struct {
	UserID string
}

type StreakOutput struct {
	UserID    string
	Current   int
	Longest   int
	UpdatedAt time.Time
}
