package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	source := c.Dataset.Source
	if source == "" {
		source = dataset.SourceCSV
	}
	if !dataset.IsValidSource(source) {
		errs = append(errs, fmt.Errorf("dataset.source %q is not one of %s", c.Dataset.Source, strings.Join(dataset.Sources(), ", ")))
	}
	switch strings.ToLower(source) {
	case dataset.SourcePostgres, dataset.SourceMySQL:
		if c.Dataset.DSN == "" {
			errs = append(errs, fmt.Errorf("dataset.dsn is required for the %s source", source))
		}
	default:
		if c.Dataset.Path == "" {
			errs = append(errs, errors.New("dataset.path is required"))
		}
	}

	if c.UI.Port < 1 || c.UI.Port > 65535 {
		errs = append(errs, fmt.Errorf("ui.port %d is out of range 1-65535", c.UI.Port))
	}
	if c.UI.SliderStep <= 0 {
		errs = append(errs, fmt.Errorf("ui.slider_step must be positive, got %v", c.UI.SliderStep))
	}
	if c.UI.MarkInterval < 0 {
		errs = append(errs, fmt.Errorf("ui.mark_interval must not be negative, got %v", c.UI.MarkInterval))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q is not one of text, json", c.LogFormat))
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		errs = append(errs, fmt.Errorf("output %q is not one of auto, text, markdown, json", c.OutputFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLevel parses a log level name (debug, info, warn, error).
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug, info, warn, error", name)
	}
	return level, nil
}
