package dto

import "time"

type EntryOutput struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"userId"`
	Email         string `json:"userEmail"`
	DisplayName   string `json:"displayName"`
	Avatar        string `json:"avatar"`
	WeeklyMinutes int    `json:"weeklyMinutes"`
	CurrentStreak int    `json:"currentStreak"`
}

type LeaderboardOutput struct {
	WindowStart time.Time     `json:"windowStart"`
	Entries     []EntryOutput `json:"entries"`
}
