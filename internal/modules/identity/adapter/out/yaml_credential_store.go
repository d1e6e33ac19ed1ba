package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"studytrack/internal/modules/identity/domain"
	identityout "studytrack/internal/modules/identity/port/out"
	apperrors "studytrack/internal/platform/errors"
)

const credentialsFile = "credentials.yaml"

type YAMLCredentialStore struct {
	path string
}

func NewYAMLCredentialStore(dataDir string) identityout.CredentialStore {
	return &YAMLCredentialStore{path: filepath.Join(dataDir, credentialsFile)}
}

func (s *YAMLCredentialStore) Save(_ context.Context, user domain.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	raw, err := yaml.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *YAMLCredentialStore) Load(_ context.Context) (domain.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.User{}, apperrors.ErrNotSignedIn
		}
		return domain.User{}, fmt.Errorf("read credentials: %w", err)
	}
	user := domain.User{}
	if err := yaml.Unmarshal(raw, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode credentials: %w", err)
	}
	if user.ID == "" {
		return domain.User{}, apperrors.ErrNotSignedIn
	}
	return user, nil
}

func (s *YAMLCredentialStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
