package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override the config file.
const (
	EnvSource       = "FLASHDECK_SOURCE"
	EnvLanguage     = "FLASHDECK_LANGUAGE"
	EnvTimerSeconds = "FLASHDECK_TIMER_SECONDS"
	EnvDatabase     = "FLASHDECK_DB"
	EnvLogLevel     = "FLASHDECK_LOG_LEVEL"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Deck     DeckConfig     `toml:"deck"`
	Study    StudyConfig    `toml:"study"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	Fetch    FetchConfig    `toml:"fetch"`
}

// DeckConfig selects the vocabulary source and UI language.
type DeckConfig struct {
	Source   string `toml:"source"`
	Language string `toml:"language"`
}

// StudyConfig contains the initial study session settings.
type StudyConfig struct {
	TimerSeconds int    `toml:"timer_seconds"`
	AutoAdvance  bool   `toml:"auto_advance"`
	TickMS       int    `toml:"tick_ms"`
	TransitionMS int    `toml:"transition_ms"`
	Category     string `toml:"category"`
	Shuffle      bool   `toml:"shuffle"`
}

// LogConfig controls where the TUI writes its log and at which level.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// FetchConfig controls remote vocabulary fetches.
type FetchConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RatePerSecond  float64 `toml:"rate_per_second"`
}

// TickInterval returns the auto-advance tick interval.
func (s StudyConfig) TickInterval() time.Duration {
	return time.Duration(s.TickMS) * time.Millisecond
}

// TransitionDelay returns the card-change transition window.
func (s StudyConfig) TransitionDelay() time.Duration {
	return time.Duration(s.TransitionMS) * time.Millisecond
}

// Timeout returns the HTTP timeout for remote sources.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if _, err := toml.Decode(string(data), config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ResolveConfig loads path when it exists and falls back to defaults otherwise, then applies environment overrides.
func ResolveConfig(path string, logger *log.Logger) *Config {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if loaded, err := LoadConfig(path); err != nil {
				logger.Warn("failed to load config, using defaults", "path", path, "error", err)
			} else {
				config = loaded
			}
		}
	}

	if err := config.ApplyEnv(""); err != nil {
		logger.Warn("ignoring environment overrides", "error", err)
	}
	for _, err := range config.Normalize() {
		logger.Warn("invalid config value replaced with default", "error", err)
	}
	return config
}

// ApplyEnv loads dotenv (".env" when empty; a missing file is not an error) and applies FLASHDECK_* overrides.
func (c *Config) ApplyEnv(dotenv string) error {
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, dotenv, err)
	}

	if v := os.Getenv(EnvSource); v != "" {
		c.Deck.Source = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Deck.Language = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvTimerSeconds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvTimerSeconds, v)
		}
		c.Study.TimerSeconds = n
	}
	return nil
}

// Normalize replaces out-of-range values with defaults and returns one error per replaced field.
func (c *Config) Normalize() []error {
	defaults := DefaultConfig()
	var errs []error

	if c.Study.TimerSeconds < 1 {
		errs = append(errs, fmt.Errorf("%w: study.timer_seconds=%d", ErrInvalidConfig, c.Study.TimerSeconds))
		c.Study.TimerSeconds = 1
	}
	if c.Study.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("%w: study.tick_ms=%d", ErrInvalidConfig, c.Study.TickMS))
		c.Study.TickMS = defaults.Study.TickMS
	}
	if c.Study.TransitionMS < 0 {
		errs = append(errs, fmt.Errorf("%w: study.transition_ms=%d", ErrInvalidConfig, c.Study.TransitionMS))
		c.Study.TransitionMS = 0
	}
	if c.Study.Category == "" {
		c.Study.Category = defaults.Study.Category
	}
	if c.Deck.Language != "en" && c.Deck.Language != "de" {
		errs = append(errs, fmt.Errorf("%w: deck.language=%q", ErrInvalidConfig, c.Deck.Language))
		c.Deck.Language = defaults.Deck.Language
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level=%q", ErrInvalidConfig, c.Log.Level))
		c.Log.Level = defaults.Log.Level
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: fetch.timeout_seconds=%d", ErrInvalidConfig, c.Fetch.TimeoutSeconds))
		c.Fetch.TimeoutSeconds = defaults.Fetch.TimeoutSeconds
	}
	if c.Fetch.RatePerSecond <= 0 {
		errs = append(errs, fmt.Errorf("%w: fetch.rate_per_second=%v", ErrInvalidConfig, c.Fetch.RatePerSecond))
		c.Fetch.RatePerSecond = defaults.Fetch.RatePerSecond
	}
	return errs
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
