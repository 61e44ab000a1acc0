package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by the loader.
// A double underscore nests: LAUNCHDASH_DATASET__PATH sets dataset.path.
const EnvPrefix = "LAUNCHDASH_"

// ConfigFileNames are searched, in order, when no --config is given.
var ConfigFileNames = []string{"launchdash.yaml", "launchdash.yml"}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// command-local and never reach the config.
var flagKeys = map[string]string{
	"data":       "dataset.path",
	"source":     "dataset.source",
	"dsn":        "dataset.dsn",
	"table":      "dataset.table",
	"sites":      "sites",
	"port":       "ui.port",
	"title":      "ui.title",
	"log-level":  "log_level",
	"log-format": "log_format",
	"verbose":    "verbose",
	"output":     "output",
	"metrics":    "metrics",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

type (
	loggerKey struct{}
	configKey struct{}
)

// configExistsIn returns the config file in dir, or "".
func configExistsIn(dir string) string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a config file.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func defaultsMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"dataset.path":            d.Dataset.Path,
		"dataset.source":          d.Dataset.Source,
		"dataset.table":           d.Dataset.Table,
		"dataset.columns.site":    d.Dataset.Columns.Site,
		"dataset.columns.payload": d.Dataset.Columns.Payload,
		"dataset.columns.outcome": d.Dataset.Columns.Outcome,
		"dataset.columns.booster": d.Dataset.Columns.Booster,
		"sites":                   d.Sites,
		"ui.port":                 d.UI.Port,
		"ui.auto_open":            d.UI.AutoOpen,
		"ui.title":                d.UI.Title,
		"ui.slider_step":          d.UI.SliderStep,
		"ui.mark_interval":        d.UI.MarkInterval,
		"log_level":               d.LogLevel,
		"log_format":              d.LogFormat,
		"verbose":                 false,
		"output":                  d.OutputFormat,
		"metrics":                 false,
	}
}

// envKey maps LAUNCHDASH_UI__AUTO_OPEN to ui.auto_open.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from defaults, file, environment variables
// and flags. Precedence (highest to lowest): flags > env vars > config file > defaults.
// cfgFile may be empty to search upward from the working directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")
	configFileUsed = ""

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile
	} else {
		configFileUsed = findConfigUpward(cwd)
	}
	projectRoot := cwd
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Explicitly set flags
	var flagDataPath string
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
		if f := flags.Lookup("data"); f != nil && f.Changed {
			flagDataPath = f.Value.String()
		}
	}

	// 5. Decode
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Normalise and resolve paths. A --data path is relative to the
	// working directory; a file or env path is relative to the project root.
	cfg.ProjectRoot = projectRoot
	cfg.Sites = cleanSites(cfg.Sites)
	cfg.Dataset.Source = strings.ToLower(strings.TrimSpace(cfg.Dataset.Source))
	cfg.Dataset.DSN = expandEnvVars(cfg.Dataset.DSN)
	if flagDataPath != "" {
		cfg.Dataset.Path = resolvePathRelativeTo(flagDataPath, cwd)
	} else {
		cfg.Dataset.Path = resolvePathRelativeTo(cfg.Dataset.Path, projectRoot)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// cleanSites trims names and drops blanks and duplicates, keeping order.
func cleanSites(sites []string) []string {
	out := make([]string, 0, len(sites))
	seen := make(map[string]bool, len(sites))
	for _, s := range sites {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the most recently loaded configuration, or nil.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from ctx, falling back to the last loaded
// config and then to defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	if currentConfig != nil {
		return currentConfig
	}
	return Default()
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns with environment variable values.
// Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}
