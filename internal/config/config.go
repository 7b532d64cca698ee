// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// NoReminder is the default_reminder value for "no reminder".
const NoReminder = -1

// Config holds the application configuration.
type Config struct {
	Calendar  CalendarConfig  `toml:"calendar"`
	Storage   StorageConfig   `toml:"storage"`
	Reminders RemindersConfig `toml:"reminders"`
	Telegram  TelegramConfig  `toml:"telegram"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
}

// CalendarConfig holds calendar view settings.
type CalendarConfig struct {
	UpcomingLimit        int `toml:"upcoming_limit"`
	EventsPerCell        int `toml:"events_per_cell"`
	CurrentWindowMinutes int `toml:"current_window_minutes"`
	DefaultReminder      int `toml:"default_reminder"` // minutes before start, -1 for none
	MinYear              int `toml:"min_year"`
	MaxYear              int `toml:"max_year"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver string `toml:"driver"` // "sqlite" or "postgres"
	DBPath string `toml:"db_path"`
	DSN    string `toml:"dsn"` // postgres connection string
}

// RemindersConfig holds reminder scheduling settings.
type RemindersConfig struct {
	Enabled bool   `toml:"enabled"`
	Resync  string `toml:"resync"` // cron spec, e.g. "@every 1m"
	Bell    bool   `toml:"bell"`
}

// TelegramConfig enables reminder delivery through a Telegram bot.
type TelegramConfig struct {
	Token  string `toml:"token"`
	ChatID int64  `toml:"chat_id"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// LogConfig holds logging settings. An empty path disables logging.
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"` // "debug", "info", "error"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			UpcomingLimit:        event.DefaultUpcomingLimit,
			EventsPerCell:        2,
			CurrentWindowMinutes: 30,
			DefaultReminder:      NoReminder,
			MinYear:              dateutil.MinYear,
			MaxYear:              dateutil.MaxYear,
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		Reminders: RemindersConfig{
			Enabled: true,
			Resync:  "@every 1m",
			Bell:    true,
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "almanac.db"
	}
	return filepath.Join(home, ".local", "share", "almanac", "almanac.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "almanac", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies ALMANAC_* environment variables on top of the
// file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ALMANAC_UPCOMING_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_UPCOMING_LIMIT: %w", err)
		}
		cfg.Calendar.UpcomingLimit = n
	}
	if v := os.Getenv("ALMANAC_DEFAULT_REMINDER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_DEFAULT_REMINDER: %w", err)
		}
		cfg.Calendar.DefaultReminder = n
	}

	if v := os.Getenv("ALMANAC_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("ALMANAC_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ALMANAC_DSN"); v != "" {
		cfg.Storage.DSN = v
	}

	if v := os.Getenv("ALMANAC_REMINDERS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ALMANAC_REMINDERS_ENABLED: %w", err)
		}
		cfg.Reminders.Enabled = b
	}
	if v := os.Getenv("ALMANAC_REMINDERS_RESYNC"); v != "" {
		cfg.Reminders.Resync = v
	}

	if v := os.Getenv("ALMANAC_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("ALMANAC_TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ALMANAC_TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	if v := os.Getenv("ALMANAC_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("ALMANAC_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("ALMANAC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	cal := c.Calendar
	if cal.UpcomingLimit < 1 {
		return errors.New("upcoming_limit must be at least 1")
	}
	if cal.EventsPerCell < 1 {
		return errors.New("events_per_cell must be at least 1")
	}
	if cal.CurrentWindowMinutes < 0 {
		return errors.New("current_window_minutes cannot be negative")
	}
	if cal.DefaultReminder != NoReminder && !slices.Contains(event.ReminderOptions, cal.DefaultReminder) {
		return fmt.Errorf("default_reminder must be -1 or one of %v, got %d", event.ReminderOptions, cal.DefaultReminder)
	}
	if cal.MinYear < dateutil.MinYear || cal.MaxYear > dateutil.MaxYear || cal.MinYear > cal.MaxYear {
		return fmt.Errorf("min_year and max_year must satisfy %d <= min_year <= max_year <= %d",
			dateutil.MinYear, dateutil.MaxYear)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("dsn must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %q", c.Storage.Driver)
	}

	if c.Reminders.Resync != "" {
		if _, err := cron.ParseStandard(c.Reminders.Resync); err != nil {
			return fmt.Errorf("invalid reminders.resync %q: %w", c.Reminders.Resync, err)
		}
	}

	if (c.Telegram.Token == "") != (c.Telegram.ChatID == 0) {
		return errors.New("both telegram token and chat_id must be set, or neither")
	}

	if _, err := applog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// HasTelegram returns true if Telegram delivery is configured.
func (c *Config) HasTelegram() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

// DefaultReminder returns the reminder new events get, or nil for none.
func (c *Config) DefaultReminder() *int {
	if c.Calendar.DefaultReminder == NoReminder {
		return nil
	}
	return event.Reminder(c.Calendar.DefaultReminder)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
