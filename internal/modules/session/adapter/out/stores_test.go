package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	sessionadapter "studytrack/internal/modules/session/adapter/out"
	"studytrack/internal/modules/session/domain"
	"studytrack/internal/platform/database"
	apperrors "studytrack/internal/platform/errors"
)

func TestActiveSessionRoundTripAndClear(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionadapter.NewFileActiveSessionStore(dir)
	ctx := context.Background()

	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session on empty dir, got %v", err)
	}

	goal := 45
	paused := int64(1_700_000_100_000)
	want := domain.ActiveSession{Running: true, StartEpochMs: 1_700_000_000_000, PausedMs: 30_000, PausedAtMs: &paused, GoalMinutes: &goal}
	if err := store.SaveActive(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.StartEpochMs != want.StartEpochMs || got.PausedMs != want.PausedMs || got.GoalMinutes == nil || *got.GoalMinutes != 45 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if got.PausedAtMs == nil || *got.PausedAtMs != paused {
		t.Fatalf("pause marker lost: %+v", got)
	}

	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session after clear, got %v", err)
	}
}

func TestActiveSessionRejectsInvalidRecords(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"not running":      `{"running":false,"startEpochMs":1,"pausedMs":0}`,
		"missing start":    `{"running":true,"pausedMs":0}`,
		"negative paused":  `{"running":true,"startEpochMs":1,"pausedMs":-5}`,
		"missing running":  `{"startEpochMs":1,"pausedMs":0}`,
		"ill-typed start":  `{"running":true,"startEpochMs":"soon","pausedMs":0}`,
		"corrupt document": `{"running":tru`,
	}
	for name, payload := range cases {
		name, payload := name, payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "active-session.json"), []byte(payload), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			_, err := sessionadapter.NewFileActiveSessionStore(dir).LoadActive(context.Background())
			if err == nil {
				t.Fatalf("expected %s to be rejected", name)
			}
		})
	}
}

func TestHistoryRecentNewestFirst(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionadapter.NewVaultHistoryStore(dir)
	ctx := context.Background()

	if records, err := store.Recent(ctx, 5); err != nil || len(records) != 0 {
		t.Fatalf("expected empty history, got %v %v", records, err)
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a1", "b2", "c3"} {
		start := base.Add(time.Duration(i) * 26 * time.Hour)
		rec := domain.Record{ID: id, UserID: "u-1", StartTime: start, EndTime: start.Add(20 * time.Minute), DurationMinutes: 20 + i}
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 || records[0].ID != "c3" || records[1].ID != "b2" {
		t.Fatalf("unexpected order: %+v", records)
	}
	if records[0].DurationMinutes != 22 || !records[0].EndTime.Equal(records[0].StartTime.Add(20*time.Minute)) {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "history", "2026", "03", "01")); err != nil {
		t.Fatalf("expected dated history directory: %v", err)
	}
}

func TestSQLSessionRepositoryInsertIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := database.Open(ctx, database.SQLite, filepath.Join(t.TempDir(), "studytrack.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := sessionadapter.NewSQLSessionRepository(db)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rec := domain.Record{ID: "s-1", UserID: "u-1", StartTime: start, EndTime: start.Add(25 * time.Minute), DurationMinutes: 25}
	for attempt := 0; attempt < 2; attempt++ {
		if err := repo.Insert(ctx, rec); err != nil {
			t.Fatalf("insert attempt %d: %v", attempt, err)
		}
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions WHERE id = ?`, "s-1").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row after a repeated insert, got %d", count)
	}
}

func TestHistoryRecentSkipsUnreadableNotes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionadapter.NewVaultHistoryStore(dir)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	rec := domain.Record{ID: "ok-1", UserID: "u-1", StartTime: start, EndTime: start.Add(30 * time.Minute), DurationMinutes: 30}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "history", "notes.md"), []byte("just a note"), 0o644); err != nil {
		t.Fatalf("write stray note: %v", err)
	}
	broken := "---\nid: broken\nstarted_at: yesterday\n---\n"
	if err := os.WriteFile(filepath.Join(dir, "history", "2026", "03", "02", "000000-broken.md"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write broken note: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if !errors.Is(err, apperrors.ErrLocalPersistence) {
		t.Fatalf("expected skipped notes to be reported, got %v", err)
	}
	if len(records) != 1 || records[0].ID != "ok-1" {
		t.Fatalf("readable note must survive its corrupt neighbours, got %+v", records)
	}
}

func TestSQLSessionRepositoryStoresWriteTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := database.Open(ctx, database.SQLite, filepath.Join(t.TempDir(), "studytrack.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	written := time.Date(2026, 3, 1, 10, 2, 0, 0, time.UTC)
	rec := domain.Record{ID: "s-2", UserID: "u-1", StartTime: start, EndTime: start.Add(40 * time.Minute), DurationMinutes: 40, CreatedAt: written}
	if err := sessionadapter.NewSQLSessionRepository(db).Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var createdAt string
	if err := db.QueryRowContext(ctx, `SELECT created_at FROM study_sessions WHERE id = ?`, "s-2").Scan(&createdAt); err != nil {
		t.Fatalf("read created_at: %v", err)
	}
	got, err := database.ParseTime(createdAt)
	if err != nil {
		t.Fatalf("parse created_at: %v", err)
	}
	if !got.Equal(written) {
		t.Fatalf("created_at must be the write time %s, got %s", written, got)
	}
}
