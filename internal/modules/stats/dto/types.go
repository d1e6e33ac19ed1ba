package dto

type SnapshotOutput struct {
	UserID        string
	TodayMinutes  int
	TodayCount    int
	WeeklyMinutes int
	WeeklyCount   int
}
