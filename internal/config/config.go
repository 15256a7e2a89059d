// Package config resolves where the study plan lives and how it is stored.
//
// Values are layered: built-in defaults, then a YAML file, then environment
// variables (optionally populated from a .env file).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultDirName  = ".study"
	configFileName  = "config.yaml"
	planFileName    = "STUDY-PLAN.md"
	notesDirName    = "notes"
	defaultRemindAt = "09:00"

	// DateLayout is the format of StartDate and journal dates.
	DateLayout = "2006-01-02"

	// TimeLayout is the format of RemindAt.
	TimeLayout = "15:04"
)

// Config holds the resolved settings.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	PlanPath    string `yaml:"plan_path"`
	NotesDir    string `yaml:"notes_dir"`
	DatabaseURL string `yaml:"database_url"`
	Title       string `yaml:"title"`
	TargetDate  string `yaml:"target_date"`
	StartDate   string `yaml:"start_date"`
	RemindAt    string `yaml:"remind_at"`
	Timezone    string `yaml:"timezone"`
}

// envOverrides maps environment variables to the fields they override.
func (c *Config) envOverrides() map[string]*string {
	return map[string]*string{
		"STUDY_DATA_DIR":    &c.DataDir,
		"STUDY_PLAN_PATH":   &c.PlanPath,
		"STUDY_NOTES_DIR":   &c.NotesDir,
		"DATABASE_URL":      &c.DatabaseURL,
		"STUDY_TITLE":       &c.Title,
		"STUDY_TARGET_DATE": &c.TargetDate,
		"STUDY_START_DATE":  &c.StartDate,
		"STUDY_REMIND_AT":   &c.RemindAt,
		"STUDY_TIMEZONE":    &c.Timezone,
	}
}

// Default returns the built-in configuration rooted at the given home directory.
// PlanPath and NotesDir are left empty and derived from DataDir by Load.
func Default(home string) Config {
	return Config{
		DataDir:  filepath.Join(home, defaultDirName),
		RemindAt: defaultRemindAt,
		Timezone: "Local",
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the environment. Missing files are ignored and set variables are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load resolves the configuration. An empty path means the default config file
// in the data directory, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg := Default(home)

	explicit := path != ""
	if !explicit {
		dataDir := cfg.DataDir
		if v := os.Getenv("STUDY_DATA_DIR"); v != "" {
			dataDir = v
		}
		path = filepath.Join(expandHome(dataDir, home), configFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	for name, field := range cfg.envOverrides() {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}

	cfg.DataDir = expandHome(cfg.DataDir, home)
	if cfg.PlanPath == "" {
		cfg.PlanPath = filepath.Join(cfg.DataDir, planFileName)
	}
	if cfg.NotesDir == "" {
		cfg.NotesDir = filepath.Join(cfg.DataDir, notesDirName)
	}
	cfg.PlanPath = expandHome(cfg.PlanPath, home)
	cfg.NotesDir = expandHome(cfg.NotesDir, home)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the formats of date, time and timezone settings.
func (c Config) Validate() error {
	if c.StartDate != "" {
		if _, err := time.Parse(DateLayout, c.StartDate); err != nil {
			return fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", c.StartDate)
		}
	}
	if _, err := time.Parse(TimeLayout, c.RemindAt); err != nil {
		return fmt.Errorf("invalid remind_at %q: expected HH:MM", c.RemindAt)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to local time.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Start returns the schedule start date, if one is configured.
func (c Config) Start() (time.Time, bool) {
	if c.StartDate == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, c.StartDate, c.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UsesDatabase reports whether the plan is kept in a SQL database.
func (c Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
