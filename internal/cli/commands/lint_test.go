package commands

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	itestutil "github.com/leapstack-labs/leaplint/internal/testutil"
)

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"format", "disable", "rule", "severity", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLintCommand_ReportsIssues(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := testutil.Execute(t, NewLintCommand(), dir)
	require.ErrorIs(t, res.Err, ErrIssuesFound)

	testutil.AssertNoANSI(t, res.Out)
	testutil.AssertValidMarkdown(t, res.Out)
	assert.Contains(t, res.Out, "dirty.sql")
	assert.NotContains(t, res.Out, "clean.sql")
	assert.Contains(t, res.Out, "**LT10**")
	assert.Contains(t, res.Out, "**AL01**")
	assert.Contains(t, res.Out, "Summary: 2 issues, 2 warnings in 2 files")
	assert.Contains(t, res.Out, "2 issues can be fixed")

	// Lint never writes.
	assert.Equal(t, testutil.DirtySQL, itestutil.ReadFile(t, testutil.ProjectFile(dir, "models/staging/dirty.sql")))
}

func TestLintCommand_Clean(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := testutil.Execute(t, NewLintCommand(), testutil.ProjectFile(dir, "models/clean.sql"))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "No lint issues found in 1 files")
}

func TestLintCommand_DefaultsToCurrentDirectory(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	testutil.Chdir(t, dir)

	res := testutil.Execute(t, NewLintCommand())
	require.ErrorIs(t, res.Err, ErrIssuesFound)
	assert.Contains(t, res.Out, filepath.Join("models", "staging", "dirty.sql"))
}

func TestLintCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := testutil.Execute(t, NewLintCommand(), dir, "--format", "json")
	require.ErrorIs(t, res.Err, ErrIssuesFound)
	assert.NotContains(t, res.Out, "Usage:")
	assert.NotContains(t, res.ErrOut, "Usage:")

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(res.Out), &doc))
	assert.Equal(t, 2, doc.Summary.FilesAnalyzed)
	assert.Equal(t, 2, doc.Summary.TotalIssues)
	assert.Equal(t, 2, doc.Summary.Warnings)
	assert.Equal(t, 2, doc.Summary.Fixable)
	require.Len(t, doc.Files, 2)

	var dirty output.LintFileResult
	for _, f := range doc.Files {
		if strings.HasSuffix(f.Path, "dirty.sql") {
			dirty = f
		}
	}
	require.Len(t, dirty.Diagnostics, 2)
	// Ordered by position: the select clause starts before the alias.
	assert.Equal(t, "LT10", dirty.Diagnostics[0].RuleID)
	assert.Equal(t, 1, dirty.Diagnostics[0].Line)
	assert.Equal(t, "AL01", dirty.Diagnostics[1].RuleID)
	assert.Equal(t, 3, dirty.Diagnostics[1].Line)
	assert.Equal(t, 10, dirty.Diagnostics[1].Column)
	assert.Equal(t, "warning", dirty.Diagnostics[1].Severity)
	assert.True(t, dirty.Diagnostics[1].Fixable)
	assert.Contains(t, dirty.Diagnostics[1].DocumentationURL, "AL01")
}

func TestLintCommand_RuleSelection(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIDs []string
	}{
		{"only LT10", []string{"--rule", "LT10"}, []string{"LT10"}},
		{"disable LT10", []string{"--disable", "LT10"}, []string{"AL01"}},
		{"disable both", []string{"--disable", "LT10,AL01"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.SetupTestProject(t)
			args := append([]string{dir, "--format", "json"}, tt.args...)

			res := testutil.Execute(t, NewLintCommand(), args...)

			var doc output.LintOutput
			require.NoError(t, json.Unmarshal([]byte(res.Out), &doc))
			var ids []string
			for _, f := range doc.Files {
				for _, d := range f.Diagnostics {
					ids = append(ids, d.RuleID)
				}
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
			if len(tt.wantIDs) == 0 {
				assert.NoError(t, res.Err)
			} else {
				assert.ErrorIs(t, res.Err, ErrIssuesFound)
			}
		})
	}
}

func TestLintCommand_Severity(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	res := testutil.Execute(t, NewLintCommand(), dir, "--severity", "error")
	require.NoError(t, res.Err, "warnings are below the threshold")

	cfg := config.Default()
	cfg.Lint.Severity = map[string]string{"LT10": "error"}
	res = testutil.ExecuteWithConfig(t, NewLintCommand(), cfg, dir, "--severity", "error", "--format", "json")
	require.ErrorIs(t, res.Err, ErrIssuesFound)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(res.Out), &doc))
	assert.Equal(t, 1, doc.Summary.TotalIssues)
	assert.Equal(t, 1, doc.Summary.Errors)

	res = testutil.Execute(t, NewLintCommand(), dir, "--severity", "fatal")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid severity")
}

func TestLintCommand_ConfigRuleOptions(t *testing.T) {
	dir := t.TempDir()
	itestutil.WriteFiles(t, dir, map[string]string{"q.sql": "select a\nfrom foo as f\n"})

	cfg := config.Default()
	cfg.Lint.Rules = map[string]config.RuleOptions{"AL01": {"aliasing": "implicit"}}
	res := testutil.ExecuteWithConfig(t, NewLintCommand(), cfg, dir)
	require.ErrorIs(t, res.Err, ErrIssuesFound)
	assert.Contains(t, res.Out, "remove AS")
}

func TestLintCommand_ExcludeFromConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	cfg := config.Default()
	cfg.Exclude = []string{"dirty.sql"}
	res := testutil.ExecuteWithConfig(t, NewLintCommand(), cfg, dir)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "No lint issues found in 1 files")
}

func TestLintCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	itestutil.WriteFiles(t, dir, map[string]string{"broken.sql": "select (a\nfrom x\n"})

	res := testutil.Execute(t, NewLintCommand(), dir)
	require.ErrorIs(t, res.Err, ErrIssuesFound)
	assert.Contains(t, res.Out, "broken.sql")
	assert.Contains(t, res.Out, "unclosed parenthesis")
	assert.Contains(t, res.Out, "1 failed")

	res = testutil.Execute(t, NewLintCommand(), dir, "--rule", "XX99")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `unknown rule "XX99"`)

	res = testutil.Execute(t, NewLintCommand(), dir, "--format", "yaml")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "unknown format")

	res = testutil.Execute(t, NewLintCommand(), filepath.Join(dir, "missing"))
	require.Error(t, res.Err)
}

func TestLintCommand_Stdin(t *testing.T) {
	cmd := NewLintCommand()
	cmd.SetIn(strings.NewReader(testutil.DirtySQL))

	res := testutil.Execute(t, cmd, "-")
	require.ErrorIs(t, res.Err, ErrIssuesFound)
	assert.Contains(t, res.Out, "stdin")
	assert.Contains(t, res.Out, "**LT10**")

	cmd = NewLintCommand()
	cmd.SetIn(strings.NewReader(testutil.DirtySQL))
	res = testutil.Execute(t, cmd, "-", "--watch")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "--watch")
}
