package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/cli/commands"
	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	clitestutil "github.com/leapstack-labs/launchdash/internal/cli/testutil"
	"github.com/leapstack-labs/launchdash/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "summary", "points", "bounds", "import", "explore", "init", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	sub, _, err := cmd.Find([]string{"ui"})
	require.NoError(t, err)
	assert.Equal(t, "serve", sub.Name(), "ui is an alias of serve")

	for _, flag := range []string{"config", "data", "source", "dsn", "table", "sites", "log-level", "log-format", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_SummaryThroughFlags(t *testing.T) {
	data := testutil.WriteSampleCSV(t)

	out, err := execute(t, "summary", "--data", data, "-o", "json", "--site", "CCAFS SLC-40")
	require.NoError(t, err)

	var got commands.SummaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "CCAFS SLC-40", got.Site)
	assert.Equal(t, 2, got.Total)
}

func TestRootCommand_EnvConfig(t *testing.T) {
	t.Setenv("LAUNCHDASH_DATASET__PATH", testutil.WriteSampleCSV(t))
	t.Setenv("LAUNCHDASH_OUTPUT", "markdown")

	out, err := execute(t, "bounds")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Records**: 10")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "bounds", "--source", "excel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "launchdash "+Version)
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "launchdash")
		})
	}

	_, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestGetRenderer_Fallback(t *testing.T) {
	assert.NotNil(t, GetRenderer(context.Background()))

	r := output.NewRenderer(new(bytes.Buffer), new(bytes.Buffer), output.ModeJSON)
	assert.Same(t, r, GetRenderer(output.WithRenderer(context.Background(), r)))
	assert.Equal(t, config.Default(), GetConfig(context.Background()))
}

func TestRootCommand_ProjectConfig(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	t.Chdir(dir)
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"summary", "-o", "markdown"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	clitestutil.AssertValidMarkdown(t, buf.String())
	assert.Contains(t, buf.String(), "| CCAFS SLC-40 | 2 |")
}
