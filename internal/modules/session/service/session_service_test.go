package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"studytrack/internal/modules/session/domain"
	"studytrack/internal/modules/session/service"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/id"
	"studytrack/internal/platform/logging"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type captureRepo struct {
	records []domain.Record
}

func (c *captureRepo) Insert(_ context.Context, record domain.Record) error {
	c.records = append(c.records, record)
	return nil
}

type stubHistory struct {
	records []domain.Record
	err     error
}

func (s stubHistory) Append(context.Context, domain.Record) error { return nil }

func (s stubHistory) Recent(context.Context, int) ([]domain.Record, error) {
	return s.records, s.err
}

func newService(repo *captureRepo, history stubHistory, opts service.Options) *service.SessionService {
	return service.NewSessionService(clock.Fixed{At: now}, id.UUID{}, nil, repo, history, logging.Discard(), opts)
}

func TestConfiguredMinimumNeverDropsBelowFloor(t *testing.T) {
	t.Parallel()
	svc := newService(&captureRepo{}, stubHistory{}, service.Options{MinSessionMinutes: 1, SaveTimeout: time.Second})
	if got := svc.MinSessionMinutes(); got != domain.MinSessionMinutes {
		t.Fatalf("expected minimum %d, got %d", domain.MinSessionMinutes, got)
	}

	session := domain.NewActiveSession(now.Add(-5*time.Minute), nil)
	if _, err := svc.Prepare("u-1", session); !errors.Is(err, apperrors.ErrSessionTooShort) {
		t.Fatalf("five minute session must be too short, got %v", err)
	}

	raised := newService(&captureRepo{}, stubHistory{}, service.Options{MinSessionMinutes: 30, SaveTimeout: time.Second})
	session = domain.NewActiveSession(now.Add(-20*time.Minute), nil)
	if _, err := raised.Prepare("u-1", session); !errors.Is(err, apperrors.ErrSessionTooShort) {
		t.Fatalf("a raised minimum must apply, got %v", err)
	}
}

func TestWriteStampsCreatedAtFromClock(t *testing.T) {
	t.Parallel()
	repo := &captureRepo{}
	svc := newService(repo, stubHistory{}, service.Options{SaveTimeout: time.Second})

	pending := domain.PendingSave{ID: "s-1", UserID: "u-1", DurationMinutes: 20, StartTime: now.Add(-45 * time.Minute)}
	if err := svc.Write(context.Background(), pending); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.records))
	}
	got := repo.records[0]
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at must be the write time %s, got %s", now, got.CreatedAt)
	}
	if !got.EndTime.Equal(now.Add(-25 * time.Minute)) {
		t.Fatalf("end time must stay start plus duration, got %s", got.EndTime)
	}
}

func TestRecentKeepsReadableRecordsWhenNotesAreSkipped(t *testing.T) {
	t.Parallel()
	kept := []domain.Record{{ID: "s-1", UserID: "u-1", DurationMinutes: 25}}
	skipped := fmt.Errorf("%w: skipped 1 unreadable history notes", apperrors.ErrLocalPersistence)
	svc := newService(&captureRepo{}, stubHistory{records: kept, err: skipped}, service.Options{SaveTimeout: time.Second})

	records, err := svc.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("skipped notes must not fail the listing: %v", err)
	}
	if len(records) != 1 || records[0].ID != "s-1" {
		t.Fatalf("expected the readable record, got %+v", records)
	}

	broken := newService(&captureRepo{}, stubHistory{err: errors.New("permission denied")}, service.Options{SaveTimeout: time.Second})
	if _, err := broken.Recent(context.Background(), 10); err == nil {
		t.Fatalf("a failure to read the history at all must be returned")
	}
}
