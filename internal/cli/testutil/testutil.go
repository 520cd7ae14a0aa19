// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	itestutil "github.com/leapstack-labs/leaplint/internal/testutil"
)

// Sample SQL used across command tests.
const (
	// DirtySQL violates LT10 and AL01; both are fixable.
	DirtySQL = "select\n    distinct a\nfrom foo f\n"
	// FixedSQL is DirtySQL after fixing.
	FixedSQL = "select distinct\n    a\nfrom foo as f\n"
	// CleanSQL has no violations.
	CleanSQL = "select a\nfrom foo as f\n"
)

// SetupTestProject creates a temporary project with one clean and one
// dirty SQL file and returns its directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	itestutil.WriteFiles(t, dir, map[string]string{
		"models/clean.sql":         CleanSQL,
		"models/staging/dirty.sql": DirtySQL,
	})
	return dir
}

// Chdir switches to dir for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Result captures the outcome of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Execute runs cmd with args and a default config and logger in its
// context, as the root command would set up.
func Execute(t *testing.T, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return ExecuteWithConfig(t, cmd, config.Default(), args...)
}

// ExecuteWithConfig is like Execute with an explicit configuration. Usage
// and error text are silenced as on the root command, so Out holds only
// what the command itself writes.
func ExecuteWithConfig(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) Result {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := config.WithLogger(t.Context(), itestutil.NewTestLogger(t))
	ctx = config.WithConfig(ctx, cfg)
	err := cmd.ExecuteContext(ctx)
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
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
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// ProjectFile returns the path of a slash-separated file inside dir.
func ProjectFile(dir, name string) string {
	return filepath.Join(dir, filepath.FromSlash(name))
}
