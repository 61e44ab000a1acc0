package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "launchdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("data", "", "")
	fs.String("source", "", "")
	fs.String("dsn", "", "")
	fs.StringSlice("sites", nil, "")
	fs.Int("port", 0, "")
	fs.String("log-level", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Bool("no-browser", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.ProjectRoot, DefaultDatasetPath), cfg.Dataset.Path)
	assert.Equal(t, "csv", cfg.Dataset.Source)
	assert.Equal(t, "Launch Site", cfg.Dataset.Columns.Site)
	assert.Equal(t, DefaultSites, cfg.Sites)
	assert.Equal(t, DefaultPort, cfg.UI.Port)
	assert.Equal(t, float64(DefaultSliderStep), cfg.UI.SliderStep)
	assert.Equal(t, DefaultTitle, cfg.UI.Title)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FileSearchedUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
dataset:
  path: data/launches.csv
  columns:
    site: Site
sites: [KSC LC-39A]
ui:
  port: 9000
  mark_interval: 1000
log_level: debug
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.ProjectRoot, "data", "launches.csv"), cfg.Dataset.Path)
	assert.Equal(t, "Site", cfg.Dataset.Columns.Site)
	assert.Equal(t, "class", cfg.Dataset.Columns.Outcome, "unset columns keep defaults")
	assert.Equal(t, []string{"KSC LC-39A"}, cfg.Sites)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.Equal(t, 1000.0, cfg.UI.MarkInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.NotEmpty(t, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
dataset:
  path: from-file.csv
ui:
  port: 9000
log_level: warn
`)
	t.Chdir(dir)
	defer ResetConfig()

	t.Setenv("LAUNCHDASH_UI__PORT", "9100")
	t.Setenv("LAUNCHDASH_LOG_LEVEL", "error")
	t.Setenv("LAUNCHDASH_SITES", "KSC LC-39A, VAFB SLC-4E,")

	cfg, err := LoadConfig(path, newFlags(t, "--port", "9200"))
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.UI.Port, "flag beats env")
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, filepath.Join(dir, "from-file.csv"), cfg.Dataset.Path)
	assert.Equal(t, []string{"KSC LC-39A", "VAFB SLC-4E"}, cfg.Sites, "env list is comma-split")
}

func TestLoadConfig_DataFlagRelativeToWorkingDir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "log_level: info\n")
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)
	defer ResetConfig()

	cfg, err := LoadConfig("", newFlags(t, "--data", "mine.csv", "--sites", "A,B", "--no-browser"))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "mine.csv"), cfg.Dataset.Path)
	assert.Equal(t, []string{"A", "B"}, cfg.Sites)
}

func TestLoadConfig_DSNExpandsEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()
	t.Setenv("PGPASS", "s3cret")

	cfg, err := LoadConfig("", newFlags(t, "--source", "POSTGRES", "--dsn", "postgres://u:${PGPASS}@db/launches"))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dataset.Source)
	assert.Equal(t, "postgres://u:s3cret@db/launches", cfg.Dataset.DSN)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		flags   []string
		wantErr string
	}{
		{name: "unknown source", flags: []string{"--source", "excel"}, wantErr: "dataset.source"},
		{name: "postgres without dsn", flags: []string{"--source", "postgres"}, wantErr: "dataset.dsn is required"},
		{name: "bad port", env: map[string]string{"LAUNCHDASH_UI__PORT": "70000"}, wantErr: "ui.port"},
		{name: "bad level", flags: []string{"--log-level", "loud"}, wantErr: "log_level"},
		{name: "bad step", env: map[string]string{"LAUNCHDASH_UI__SLIDER_STEP": "0"}, wantErr: "slider_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			defer ResetConfig()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig("", newFlags(t, tt.flags...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	defer ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestContextHelpers(t *testing.T) {
	ResetConfig()
	ctx := context.Background()

	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, Default(), FromContext(ctx))

	cfg := Default()
	cfg.UI.Port = 1234
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, FromContext(ctx))

	var buf bytes.Buffer
	logger := NewLogger(&buf, &Config{LogLevel: "warn", LogFormat: "json"})
	ctx = WithLogger(ctx, logger)
	GetLogger(ctx).Info("hidden")
	GetLogger(ctx).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewLogger_VerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &Config{LogLevel: "error", Verbose: true})
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")
}

func TestCleanSites(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, cleanSites([]string{" A", "", "B", "A "}))
}
