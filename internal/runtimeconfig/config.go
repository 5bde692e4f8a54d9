package runtimeconfig

import (
	"errors"
	"strings"
)

// ErrDefaultLocaleRequired indicates the engine cannot start without an active locale.
var ErrDefaultLocaleRequired = errors.New("translatable config: default locale is required")

// ErrLoggingLevelInvalid indicates an unsupported logging level.
var ErrLoggingLevelInvalid = errors.New("translatable config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unsupported logging format.
var ErrLoggingFormatInvalid = errors.New("translatable config: logging format is invalid")

// Config aggregates the engine's startup settings. Locale and fallbacks seed
// the runtime locale state; both stay mutable at runtime through the engine's
// control surface.
type Config struct {
	DefaultLocale   string
	FallbackLocales []string
	SkipOnLoad      bool
	Logging         LoggingConfig
}

// LoggingConfig captures the options forwarded to the logging provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the baseline engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for inconsistencies before the engine boots.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
