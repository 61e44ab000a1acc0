// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/launchdash/internal/cli/output"
	roottestutil "github.com/leapstack-labs/launchdash/internal/testutil"
)

// SetupTestProject creates a temporary project holding the sample dataset and
// a launchdash.yaml pointing at it. Returns the project directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "spacex_launch_dash.csv"),
		[]byte(roottestutil.SampleCSV), 0600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	cfg := `dataset:
  path: spacex_launch_dash.csv
ui:
  port: 8050
`
	if err := os.WriteFile(filepath.Join(tmpDir, "launchdash.yaml"), []byte(cfg), 0600); err != nil {
		t.Fatalf("failed to write launchdash.yaml: %v", err)
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for empty headers and that every table row has the header's
// column count.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	cols := 0
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}

		if !strings.HasPrefix(trimmed, "|") {
			cols = 0
			continue
		}
		n := strings.Count(strings.ReplaceAll(trimmed, `\|`, ""), "|") - 1
		if cols == 0 {
			cols = n
		} else if n != cols {
			t.Errorf("table row at line %d has %d columns, want %d: %q", i+1, n, cols, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.OutputMode) {
	t.Helper()

	combinedOutput := tr.Output() + tr.ErrorOutput()

	switch expectedMode {
	case output.ModeMarkdown:
		AssertNoANSI(t, combinedOutput)
		AssertValidMarkdown(t, tr.Output())
	case output.ModeJSON:
		AssertNoANSI(t, combinedOutput)
		if !strings.HasPrefix(strings.TrimSpace(tr.Output()), "{") && !strings.HasPrefix(strings.TrimSpace(tr.Output()), "[") {
			t.Errorf("output is not JSON: %q", tr.Output())
		}
	}
}
