package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/commands"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"version", "lint", "fix", "rules", "init", "completion"})

	for _, flag := range []string{"config", "verbose", "output", "workers", "exclude"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_LintUsesProjectConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "leaplint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\nlint:\n  disabled: [AL01]\n"), 0o644))

	out, err := run(t, "lint", dir, "--config", cfgPath)
	require.ErrorIs(t, err, commands.ErrIssuesFound)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Summary.TotalIssues)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(dir, "leaplint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\nexclude: [\"nothing.sql\"]\n"), 0o644))

	t.Setenv("LEAPLINT_OUTPUT", "text")
	out, err := run(t, "lint", dir, "--config", cfgPath, "-o", "markdown", "--exclude", "dirty.sql")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
	testutil.AssertNoANSI(t, out)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leaplint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("fix:\n  runaway_limit: 0\n"), 0o644))

	_, err := run(t, "lint", dir, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "fix.runaway_limit")

	_, err = run(t, "lint", dir, "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestRootCmd_Completion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "leaplint")

	_, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}
