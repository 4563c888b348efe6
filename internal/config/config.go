// Package config loads optional engine settings from a TOML file.
//
// Every setting has a default, a missing file yields all defaults, and a
// present file only overrides the keys it names. Malformed TOML is an
// error; out-of-range numeric values fall back to their defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cmathes/inkwell/internal/style"
)

// DefaultFileName is the conventional name of the configuration file.
const DefaultFileName = "inkwell.toml"

// Config holds engine settings.
type Config struct {
	// Baseline is the descriptor for characters with no explicit styling.
	Baseline BaselineConfig `toml:"baseline"`

	// TabWidth is the number of columns a tab occupies.
	TabWidth int `toml:"tab_width"`

	// Watcher holds file watcher settings.
	Watcher WatcherConfig `toml:"watcher"`

	// LogLevel is the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
}

// BaselineConfig describes the default font.
type BaselineConfig struct {
	// Family is the font family name.
	Family string `toml:"family"`

	// Size is the point size.
	Size int `toml:"size"`
}

// WatcherConfig holds file watcher settings.
type WatcherConfig struct {
	// DebounceMS is the quiet period in milliseconds before a file event
	// is reported.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Baseline: BaselineConfig{
			Family: style.DefaultFamily,
			Size:   style.DefaultSize,
		},
		TabWidth: 4,
		Watcher: WatcherConfig{
			DebounceMS: 100,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the file at path. A missing file is not an
// error and yields the defaults; unparseable TOML is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.TabWidth <= 0 {
		c.TabWidth = def.TabWidth
	}
	if c.Baseline.Family == "" {
		c.Baseline.Family = def.Baseline.Family
	}
	if c.Baseline.Size <= 0 {
		c.Baseline.Size = def.Baseline.Size
	}
	if c.Watcher.DebounceMS <= 0 {
		c.Watcher.DebounceMS = def.Watcher.DebounceMS
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// BaselineFont returns the configured baseline descriptor.
func (c *Config) BaselineFont() style.Font {
	return style.NewFont(c.Baseline.Family, c.Baseline.Size)
}

// Debounce returns the watcher quiet period as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watcher.DebounceMS) * time.Millisecond
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
