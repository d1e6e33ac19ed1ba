package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultSaveTimeout       = 10 * time.Second
	DefaultMinSessionMinutes = 10
	DefaultDailyGoalMinutes  = 60
	DefaultHTTPAddr          = "127.0.0.1:8080"
)

type Config struct {
	DataDir           string
	DBDriver          string
	DatabaseURL       string
	SaveTimeout       time.Duration
	MinSessionMinutes int
	DailyGoalMinutes  int
	Location          *time.Location
	LogLevel          string
	HTTPAddr          string
}

// fileConfig mirrors config.yaml. Empty values keep the defaults.
type fileConfig struct {
	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`
	SaveTimeout       string `yaml:"save_timeout"`
	MinSessionMinutes int    `yaml:"min_session_minutes"`
	DailyGoalMinutes  int    `yaml:"daily_goal_minutes"`
	Timezone          string `yaml:"timezone"`
	LogLevel          string `yaml:"log_level"`
	HTTPAddr          string `yaml:"http_addr"`
}

// New returns the defaults rooted at dataDir.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:           dataDir,
		DBDriver:          DriverSQLite,
		DatabaseURL:       filepath.Join(dataDir, "studytrack.db"),
		SaveTimeout:       DefaultSaveTimeout,
		MinSessionMinutes: DefaultMinSessionMinutes,
		DailyGoalMinutes:  DefaultDailyGoalMinutes,
		Location:          time.Local,
		LogLevel:          "info",
		HTTPAddr:          DefaultHTTPAddr,
	}, nil
}

// Load resolves defaults, then <dataDir>/config.yaml, then the environment
// (after reading .env files from the working directory and dataDir).
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(filepath.Join(dataDir, "config.yaml")); err != nil {
		return Config{}, err
	}
	for _, envFile := range []string{".env", filepath.Join(dataDir, ".env")} {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	if fc.Database.Driver != "" {
		c.DBDriver = fc.Database.Driver
	}
	if fc.Database.URL != "" {
		c.DatabaseURL = fc.Database.URL
	}
	if fc.SaveTimeout != "" {
		d, err := time.ParseDuration(fc.SaveTimeout)
		if err != nil {
			return fmt.Errorf("save_timeout: %w", err)
		}
		c.SaveTimeout = d
	}
	if fc.MinSessionMinutes > 0 {
		c.MinSessionMinutes = fc.MinSessionMinutes
	}
	if fc.DailyGoalMinutes > 0 {
		c.DailyGoalMinutes = fc.DailyGoalMinutes
	}
	if fc.Timezone != "" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		c.Location = loc
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.HTTPAddr != "" {
		c.HTTPAddr = fc.HTTPAddr
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("STUDYTRACK_DB_DRIVER"); v != "" {
		c.DBDriver = v
	}
	if v := getenv("STUDYTRACK_DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("STUDYTRACK_SAVE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STUDYTRACK_SAVE_TIMEOUT: %w", err)
		}
		c.SaveTimeout = d
	}
	if v := getenv("STUDYTRACK_MIN_SESSION_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STUDYTRACK_MIN_SESSION_MINUTES must be a valid integer: %w", err)
		}
		c.MinSessionMinutes = n
	}
	if v := getenv("STUDYTRACK_TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return fmt.Errorf("STUDYTRACK_TIMEZONE: %w", err)
		}
		c.Location = loc
	}
	if v := getenv("STUDYTRACK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("STUDYTRACK_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	return nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("database url is required")
	}
	if c.SaveTimeout <= 0 {
		return fmt.Errorf("save timeout must be positive")
	}
	if c.MinSessionMinutes < DefaultMinSessionMinutes {
		return fmt.Errorf("minimum session length cannot be below %d minutes, got %d", DefaultMinSessionMinutes, c.MinSessionMinutes)
	}
	return nil
}

// DefaultDataDir returns ~/.config/studytrack
func DefaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studytrack"), nil
}
