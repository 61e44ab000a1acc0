// Package config provides configuration management for the launchdash CLI.
//
// Values are layered from built-in defaults, a launchdash.yaml file,
// LAUNCHDASH_* environment variables and explicitly set flags, in increasing
// order of precedence.
package config

import (
	"github.com/leapstack-labs/launchdash/internal/dataset"
)

// Default configuration values.
const (
	DefaultDatasetPath  = "spacex_launch_dash.csv"
	DefaultSource       = dataset.SourceCSV
	DefaultPort         = 8050
	DefaultSliderStep   = 1000
	DefaultMarkInterval = 2500
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultTitle        = "SpaceX Launch Records Dashboard"
)

// DefaultSites are the dropdown sites of the published dashboard.
var DefaultSites = []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}

// Config holds all CLI configuration options.
type Config struct {
	Dataset      DatasetConfig `koanf:"dataset" yaml:"dataset"`
	Sites        []string      `koanf:"sites" yaml:"sites"`
	UI           UIConfig      `koanf:"ui" yaml:"ui"`
	LogLevel     string        `koanf:"log_level" yaml:"log_level"`
	LogFormat    string        `koanf:"log_format" yaml:"log_format"`
	Verbose      bool          `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat string        `koanf:"output" yaml:"output"`
	Metrics      bool          `koanf:"metrics" yaml:"metrics"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-" yaml:"-"`
}

// DatasetConfig selects and describes the launch records source.
type DatasetConfig struct {
	Path    string          `koanf:"path" yaml:"path"`
	Source  string          `koanf:"source" yaml:"source"`
	DSN     string          `koanf:"dsn" yaml:"dsn,omitempty"`
	Table   string          `koanf:"table" yaml:"table,omitempty"`
	Columns dataset.Columns `koanf:"columns" yaml:"columns"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port         int     `koanf:"port" yaml:"port"`
	AutoOpen     bool    `koanf:"auto_open" yaml:"auto_open"`
	Title        string  `koanf:"title" yaml:"title"`
	SliderStep   float64 `koanf:"slider_step" yaml:"slider_step"`
	MarkInterval float64 `koanf:"mark_interval" yaml:"mark_interval"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:    DefaultDatasetPath,
			Source:  DefaultSource,
			Table:   dataset.DefaultTable,
			Columns: dataset.DefaultColumns(),
		},
		Sites: append([]string(nil), DefaultSites...),
		UI: UIConfig{
			Port:         DefaultPort,
			AutoOpen:     false,
			Title:        DefaultTitle,
			SliderStep:   DefaultSliderStep,
			MarkInterval: DefaultMarkInterval,
		},
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		OutputFormat: DefaultOutput,
	}
}

// LoadOptions converts the dataset section into loader options.
func (c *Config) LoadOptions() dataset.Options {
	return dataset.Options{
		Source:  c.Dataset.Source,
		Path:    c.Dataset.Path,
		DSN:     c.Dataset.DSN,
		Table:   c.Dataset.Table,
		Columns: c.Dataset.Columns,
	}
}
