package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := New("/tmp/st")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBDriver != DriverSQLite || cfg.DatabaseURL != filepath.Join("/tmp/st", "studytrack.db") {
		t.Fatalf("unexpected database defaults: %+v", cfg)
	}
	if cfg.SaveTimeout != 10*time.Second || cfg.MinSessionMinutes != 10 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg)
	}
	if _, err := New(""); err == nil {
		t.Fatalf("empty data dir must fail")
	}
}

func TestApplyFileOverridesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "database:\n  driver: postgres\n  url: postgres://localhost/study\nsave_timeout: 3s\nmin_session_minutes: 15\ntimezone: UTC\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _ := New(dir)
	if err := cfg.applyFile(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("apply file: %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.DatabaseURL != "postgres://localhost/study" {
		t.Fatalf("database not overridden: %+v", cfg)
	}
	if cfg.SaveTimeout != 3*time.Second || cfg.MinSessionMinutes != 15 || cfg.Location != time.UTC {
		t.Fatalf("settings not overridden: %+v", cfg)
	}
	if err := cfg.applyFile(filepath.Join(dir, "missing.yaml")); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}
}

func TestApplyEnvAndValidate(t *testing.T) {
	t.Parallel()
	cfg, _ := New(t.TempDir())
	env := map[string]string{
		"STUDYTRACK_SAVE_TIMEOUT":        "250ms",
		"STUDYTRACK_MIN_SESSION_MINUTES": "12",
		"STUDYTRACK_LOG_LEVEL":           "debug",
	}
	if err := cfg.applyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.SaveTimeout != 250*time.Millisecond || cfg.MinSessionMinutes != 12 || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	bad := map[string]string{"STUDYTRACK_MIN_SESSION_MINUTES": "ten"}
	if err := cfg.applyEnv(func(k string) string { return bad[k] }); err == nil {
		t.Fatalf("non-numeric minimum must fail")
	}
	cfg.DBDriver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("unsupported driver must fail validation")
	}
}

func TestMinimumSessionLengthCannotDropBelowDefault(t *testing.T) {
	cfg, _ := New(t.TempDir())
	cfg.MinSessionMinutes = DefaultMinSessionMinutes - 1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("minimum below %d must fail validation", DefaultMinSessionMinutes)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("min_session_minutes: 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("config file lowering the minimum must fail")
	}

	t.Setenv("STUDYTRACK_MIN_SESSION_MINUTES", "1")
	cfg, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("env lowering the minimum must fail, got %d", cfg.MinSessionMinutes)
	}
}
