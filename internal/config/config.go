package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultDataDir    = "data"
	DefaultDBName     = "planner.db"
	DefaultConfigName = "config.toml"
	DefaultBackupTime = "03:00"
)

// Config keeps runtime settings for the planner.
type Config struct {
	DataDir        string        `toml:"data_dir"`
	DatabasePath   string        `toml:"db_path"`
	ExportDir      string        `toml:"export_dir"`
	BackupDir      string        `toml:"backup_dir"`
	LogDir         string        `toml:"log_dir"`
	LogLevel       string        `toml:"log_level"`
	BackupTime     string        `toml:"backup_time"`
	DigestInterval time.Duration `toml:"-"`
	DigestHours    int           `toml:"digest_interval_hours"`
}

// Load reads configuration from .env, an optional TOML file and environment
// variables, in that order of increasing precedence.
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		DataDir:    DefaultDataDir,
		LogLevel:   "info",
		BackupTime: DefaultBackupTime,
	}

	if dir := strings.TrimSpace(os.Getenv("PLANNER_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}

	path := strings.TrimSpace(os.Getenv("PLANNER_CONFIG"))
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, DefaultConfigName)
	}
	if err := readFile(path, &cfg, explicit); err != nil {
		return cfg, err
	}

	overlayEnv(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !required:
		return nil
	default:
		return fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

func overlayEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PLANNER_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNER_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNER_BACKUP_TIME")); v != "" {
		cfg.BackupTime = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNER_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNER_DIGEST_INTERVAL_HOURS")); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours >= 0 {
			cfg.DigestHours = hours
		}
	}
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, DefaultDBName)
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(c.DataDir, "exports")
	}
	if c.BackupDir == "" {
		c.BackupDir = filepath.Join(c.DataDir, "backups")
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.DataDir, "logs")
	}
	if c.BackupTime == "" {
		c.BackupTime = DefaultBackupTime
	}
	c.DigestInterval = time.Duration(c.DigestHours) * time.Hour
}

// Validate checks values that would otherwise fail late, at schedule time.
func (c Config) Validate() error {
	if _, _, err := ParseClock(c.BackupTime); err != nil {
		return fmt.Errorf("backup_time: %w", err)
	}
	if c.DigestHours < 0 {
		return fmt.Errorf("digest_interval_hours must not be negative")
	}
	return nil
}

// EnsureDirs creates the data directory tree. Safe to call repeatedly.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, filepath.Dir(c.DatabasePath), c.ExportDir, c.BackupDir, c.LogDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %q: %w", dir, err)
		}
	}
	return nil
}

// ParseClock parses an HH:MM string.
func ParseClock(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return hour, minute, nil
}
