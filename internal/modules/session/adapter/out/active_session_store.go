package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	apperrors "studytrack/internal/platform/errors"
)

const activeSessionFile = "active-session.json"

type FileActiveSessionStore struct {
	path string
}

func NewFileActiveSessionStore(dataDir string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: filepath.Join(dataDir, activeSessionFile)}
}

// storedSession mirrors domain.ActiveSession with pointer fields so missing
// keys can be told apart from zero values.
type storedSession struct {
	Running      *bool  `json:"running"`
	StartEpochMs *int64 `json:"startEpochMs"`
	PausedMs     *int64 `json:"pausedMs"`
	PausedAtMs   *int64 `json:"pausedAtMs,omitempty"`
	GoalMinutes  *int   `json:"goalMinutes,omitempty"`
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	stored := storedSession{}
	if err := json.Unmarshal(payload, &stored); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if stored.Running == nil || !*stored.Running || stored.StartEpochMs == nil {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	active := domain.ActiveSession{
		Running:      true,
		StartEpochMs: *stored.StartEpochMs,
		PausedAtMs:   stored.PausedAtMs,
		GoalMinutes:  stored.GoalMinutes,
	}
	if stored.PausedMs != nil {
		if *stored.PausedMs < 0 {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		active.PausedMs = *stored.PausedMs
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
