package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/shovere/game-guard/internal/policy"
)

// FileConfig represents the top-level TOML structure.
type FileConfig struct {
	Guard       GuardConfig       `toml:"guard" mapstructure:"guard"`
	Hours       HoursConfig       `toml:"hours" mapstructure:"hours"`
	Limits      LimitsConfig      `toml:"limits" mapstructure:"limits"`
	Suggestions SuggestionsConfig `toml:"suggestions" mapstructure:"suggestions"`
	History     HistoryConfig     `toml:"history" mapstructure:"history"`
	Metrics     MetricsConfig     `toml:"metrics" mapstructure:"metrics"`
	Log         LogConfig         `toml:"log" mapstructure:"log"`
}

type GuardConfig struct {
	Games        []string      `toml:"games" mapstructure:"games"`
	PollInterval time.Duration `toml:"poll_interval" mapstructure:"poll_interval"`
	GraceMinutes int           `toml:"grace_minutes" mapstructure:"grace_minutes"`
	LogDir       string        `toml:"log_dir" mapstructure:"log_dir"`
}

type HoursConfig struct {
	WeekdayStart int `toml:"weekday_start" mapstructure:"weekday_start"`
	WeekdayEnd   int `toml:"weekday_end" mapstructure:"weekday_end"`
	WeekendStart int `toml:"weekend_start" mapstructure:"weekend_start"`
	WeekendEnd   int `toml:"weekend_end" mapstructure:"weekend_end"`
}

type LimitsConfig struct {
	WeekdayHours float64 `toml:"weekday_hours" mapstructure:"weekday_hours"`
	WeekendHours float64 `toml:"weekend_hours" mapstructure:"weekend_hours"`
}

type SuggestionsConfig struct {
	Alternatives []string `toml:"alternatives" mapstructure:"alternatives"`
	Games        []string `toml:"games" mapstructure:"games"`
}

type HistoryConfig struct {
	// DSN enables the optional SQLite session-history sink when non-empty.
	// The weekly report never reads from it.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type MetricsConfig struct {
	// Listen enables the /metrics endpoint when non-empty ("127.0.0.1:9090").
	// Off by default: the guard is a local tool, not a service.
	Listen string `toml:"listen" mapstructure:"listen"`
}

type LogConfig struct {
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
	Debug      bool   `toml:"debug" mapstructure:"debug"`
}

// Default returns the configuration matching the built-in schedule: weekday
// window 19-23 with a 2 hour budget, weekend window 10-23 with 3 hours,
// 15 minute grace, 5 second polling.
func Default() FileConfig {
	return FileConfig{
		Guard: GuardConfig{
			PollInterval: 5 * time.Second,
			GraceMinutes: 15,
			LogDir:       "logs",
		},
		Hours: HoursConfig{
			WeekdayStart: policy.DefaultWeekdayStartHour,
			WeekdayEnd:   policy.DefaultWeekdayEndHour,
			WeekendStart: policy.DefaultWeekendStartHour,
			WeekendEnd:   policy.DefaultWeekendEndHour,
		},
		Limits: LimitsConfig{
			WeekdayHours: policy.DefaultWeekdayLimitHours,
			WeekendHours: policy.DefaultWeekendLimitHours,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (FileConfig, error) {
	fc := Default()
	if path == "" {
		return fc, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// Validate checks the merged configuration before the guard starts.
func (c FileConfig) Validate() error {
	if len(c.Guard.Games) == 0 {
		return fmt.Errorf("no games to watch: set --games or [guard] games")
	}
	if c.Guard.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.Guard.PollInterval)
	}
	if c.Guard.GraceMinutes <= 0 {
		return fmt.Errorf("grace_minutes must be positive, got %d", c.Guard.GraceMinutes)
	}
	for _, w := range []struct {
		label      string
		start, end int
	}{
		{"weekday", c.Hours.WeekdayStart, c.Hours.WeekdayEnd},
		{"weekend", c.Hours.WeekendStart, c.Hours.WeekendEnd},
	} {
		if w.start < 0 || w.end > 24 || w.start >= w.end {
			return fmt.Errorf("invalid %s window: [%d, %d)", w.label, w.start, w.end)
		}
	}
	if c.Limits.WeekdayHours <= 0 || c.Limits.WeekendHours <= 0 {
		return fmt.Errorf("daily limits must be positive, got %.1f/%.1f",
			c.Limits.WeekdayHours, c.Limits.WeekendHours)
	}
	return nil
}

// Policy builds the time policy from the configured hours and limits.
func (c FileConfig) Policy() policy.Policy {
	return policy.Policy{
		Hours: policy.Hours{
			WeekdayStart: c.Hours.WeekdayStart,
			WeekdayEnd:   c.Hours.WeekdayEnd,
			WeekendStart: c.Hours.WeekendStart,
			WeekendEnd:   c.Hours.WeekendEnd,
		},
		Limits: policy.Limits{
			WeekdayHours: c.Limits.WeekdayHours,
			WeekendHours: c.Limits.WeekendHours,
		},
	}
}
