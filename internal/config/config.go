// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "FOLIO_"

// Default configuration values.
const (
	DefaultToastDuration  = 4000 * time.Millisecond
	DefaultEntranceDelay  = 100 * time.Millisecond
	DefaultExitDuration   = 300 * time.Millisecond
	DefaultWelcomeDelay   = 1500 * time.Millisecond
	DefaultSubmitDelay    = 2 * time.Second
	DefaultMinInterval    = time.Duration(0) // Feedback is not rate limited
	DefaultWidth          = 360
	DefaultAppName        = "folio"
	DefaultWelcomeMessage = "Welcome to my portfolio! 🚀"
)

// Config represents the folio configuration.
type Config struct {
	Toast    ToastConfig    `toml:"toast" yaml:"toast" envPrefix:"TOAST_"`
	Display  DisplayConfig  `toml:"display" yaml:"display" envPrefix:"DISPLAY_"`
	Welcome  WelcomeConfig  `toml:"welcome" yaml:"welcome" envPrefix:"WELCOME_"`
	Contact  ContactConfig  `toml:"contact" yaml:"contact" envPrefix:"CONTACT_"`
	Feedback FeedbackConfig `toml:"feedback" yaml:"feedback" envPrefix:"FEEDBACK_"`
}

// ToastConfig holds notification timings.
// Durations can be specified as "4s", "300ms", etc. or as integer milliseconds.
type ToastConfig struct {
	DefaultDuration Duration `toml:"default_duration" yaml:"default_duration" env:"DEFAULT_DURATION"` // Auto-dismiss delay
	EntranceDelay   Duration `toml:"entrance_delay" yaml:"entrance_delay" env:"ENTRANCE_DELAY"`       // Entering -> visible
	ExitDuration    Duration `toml:"exit_duration" yaml:"exit_duration" env:"EXIT_DURATION"`          // Exit transition length
}

// DisplayConfig contains display surface settings.
type DisplayConfig struct {
	Surface string `toml:"surface" yaml:"surface" env:"SURFACE"`    // "terminal", "html" or "desktop"
	Width   int    `toml:"width" yaml:"width" env:"WIDTH"`          // Toast width in cells (terminal) or pixels (html)
	AppName string `toml:"app_name" yaml:"app_name" env:"APP_NAME"` // Application name sent to the desktop server
}

// WelcomeConfig controls the startup welcome toast.
type WelcomeConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	Delay   Duration `toml:"delay" yaml:"delay" env:"DELAY"`
	Message string   `toml:"message" yaml:"message" env:"MESSAGE"`
}

// ContactConfig controls the contact form.
type ContactConfig struct {
	SubmitDelay Duration `toml:"submit_delay" yaml:"submit_delay" env:"SUBMIT_DELAY"` // Simulated send time
}

// FeedbackConfig controls interaction feedback toasts.
type FeedbackConfig struct {
	MinInterval Duration `toml:"min_interval" yaml:"min_interval" env:"MIN_INTERVAL"` // Minimum time between identical feedback
}

// SurfaceKind names a display surface implementation.
type SurfaceKind string

const (
	SurfaceTerminal SurfaceKind = "terminal"
	SurfaceHTML     SurfaceKind = "html"
	SurfaceDesktop  SurfaceKind = "desktop"
)

// ValidSurfaces returns all valid surface values.
func ValidSurfaces() []SurfaceKind {
	return []SurfaceKind{SurfaceTerminal, SurfaceHTML, SurfaceDesktop}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Toast: ToastConfig{
			DefaultDuration: Duration(DefaultToastDuration),
			EntranceDelay:   Duration(DefaultEntranceDelay),
			ExitDuration:    Duration(DefaultExitDuration),
		},
		Display: DisplayConfig{
			Surface: string(SurfaceTerminal),
			Width:   DefaultWidth,
			AppName: DefaultAppName,
		},
		Welcome: WelcomeConfig{
			Enabled: true,
			Delay:   Duration(DefaultWelcomeDelay),
			Message: DefaultWelcomeMessage,
		},
		Contact: ContactConfig{
			SubmitDelay: Duration(DefaultSubmitDelay),
		},
		Feedback: FeedbackConfig{
			MinInterval: Duration(DefaultMinInterval),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "folio", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Values are layered: defaults, then the file (if it exists), then FOLIO_* environment variables.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays FOLIO_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validSurface := false
	for _, s := range ValidSurfaces() {
		if c.Display.Surface == string(s) {
			validSurface = true
			break
		}
	}
	if !validSurface {
		return fmt.Errorf("invalid surface %q, must be one of: %v", c.Display.Surface, ValidSurfaces())
	}

	if c.Display.Width < 20 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 20 and 1000, got %d", c.Display.Width)
	}

	if c.Toast.DefaultDuration <= 0 {
		return fmt.Errorf("toast.default_duration must be positive, got %s", c.Toast.DefaultDuration)
	}

	for name, d := range map[string]Duration{
		"toast.entrance_delay":  c.Toast.EntranceDelay,
		"toast.exit_duration":   c.Toast.ExitDuration,
		"welcome.delay":         c.Welcome.Delay,
		"contact.submit_delay":  c.Contact.SubmitDelay,
		"feedback.min_interval": c.Feedback.MinInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}

	return nil
}
