package alloc

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/ownership"
	"github.com/wippyai/ownership/errors"
)

// Config selects and tunes an allocator.
type Config struct {
	// Track selects a Tracker instead of a counting Heap.
	Track bool `yaml:"track"`

	// PanicOnMisuse makes the Tracker panic on double frees, unknown
	// pointers and kind mismatches. Requires Track.
	PanicOnMisuse bool `yaml:"panic_on_misuse"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Quarantine bounds how many freed pointers the Tracker remembers for
	// double free detection. 0 means DefaultQuarantine.
	Quarantine int `yaml:"quarantine"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{LogLevel: "info"}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(c.LogLevel).
			Detail("unknown log level %q", c.LogLevel).
			Cause(err).
			Build()
	}
	if c.Quarantine < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "quarantine must not be negative")
	}
	if c.PanicOnMisuse && !c.Track {
		return errors.InvalidInput(errors.PhaseConfig, "panic_on_misuse requires track")
	}
	return nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// Build creates the configured allocator.
func (c *Config) Build() (ownership.Allocator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.Track {
		return NewHeap(), nil
	}
	log, err := c.NewLogger()
	if err != nil {
		return nil, err
	}
	return NewTracker(&TrackerConfig{
		Logger:        log.Named("alloc"),
		PanicOnMisuse: c.PanicOnMisuse,
		Quarantine:    c.Quarantine,
	}), nil
}
