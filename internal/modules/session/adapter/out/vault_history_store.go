package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/markdown"
)

const historyTimeLayout = "2006-01-02T15:04:05Z07:00"

// VaultHistoryStore keeps one markdown note per saved session under
// history/YYYY/MM/DD.
type VaultHistoryStore struct {
	root string
}

func NewVaultHistoryStore(dataDir string) sessionout.HistoryStore {
	return &VaultHistoryStore{root: filepath.Join(dataDir, "history")}
}

type historyMeta struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	UserID          string `yaml:"user_id"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

func (s *VaultHistoryStore) Append(_ context.Context, record domain.Record) error {
	start := record.StartTime.UTC()
	dir := filepath.Join(s.root, start.Format("2006"), start.Format("01"), start.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	meta := historyMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              record.ID,
		UserID:          record.UserID,
		StartedAt:       start.Format(historyTimeLayout),
		EndedAt:         record.EndTime.UTC().Format(historyTimeLayout),
		DurationMinutes: record.DurationMinutes,
	}
	body := fmt.Sprintf("# Study session\n\n- Started: %s\n- Duration: %d minutes\n",
		start.Format("2006-01-02 15:04"), record.DurationMinutes)
	rendered, err := markdown.Encode(meta, body)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s.md", start.Format("150405"), shortID(record.ID))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write history note: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. Notes that cannot be read
// are skipped; the records found are still returned together with an
// apperrors.ErrLocalPersistence error listing the skipped notes.
func (s *VaultHistoryStore) Recent(_ context.Context, limit int) ([]domain.Record, error) {
	var records []domain.Record
	var skipped []error
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			skipped = append(skipped, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		record, err := readHistoryNote(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].StartTime.Equal(records[j].StartTime) {
			return records[i].ID < records[j].ID
		}
		return records[i].StartTime.After(records[j].StartTime)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if len(skipped) > 0 {
		return records, fmt.Errorf("%w: skipped %d unreadable history notes: %w",
			apperrors.ErrLocalPersistence, len(skipped), errors.Join(skipped...))
	}
	return records, nil
}

func readHistoryNote(path string) (domain.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Record{}, fmt.Errorf("read history note: %w", err)
	}
	meta := historyMeta{}
	if _, err := markdown.Decode(string(raw), &meta); err != nil {
		return domain.Record{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	start, err := time.Parse(historyTimeLayout, meta.StartedAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse started_at in %s: %w", filepath.Base(path), err)
	}
	end, err := time.Parse(historyTimeLayout, meta.EndedAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("parse ended_at in %s: %w", filepath.Base(path), err)
	}
	if meta.ID == "" {
		return domain.Record{}, fmt.Errorf("%s has no session id", filepath.Base(path))
	}
	return domain.Record{
		ID:              meta.ID,
		UserID:          meta.UserID,
		StartTime:       start.UTC(),
		EndTime:         end.UTC(),
		DurationMinutes: meta.DurationMinutes,
	}, nil
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if id == "" {
		return "session"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
