package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
	"github.com/leapstack-labs/leaplint/pkg/core"
)

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	for _, flag := range []string{"group", "verbose", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListMarkdown(t *testing.T) {
	res := testutil.Execute(t, NewRulesCommand())
	require.NoError(t, res.Err)

	testutil.AssertNoANSI(t, res.Out)
	testutil.AssertValidMarkdown(t, res.Out)
	assert.Contains(t, res.Out, "# Lint Rules")
	assert.Contains(t, res.Out, "## Aliasing")
	assert.Contains(t, res.Out, "## Layout")
	assert.Contains(t, res.Out, "- **AL01** - aliasing.table (`warning`, fix: auto)")
	assert.Contains(t, res.Out, "- **LT10** - layout.select_modifiers (`warning`, fix: auto)")
	assert.Less(t, strings.Index(res.Out, "AL01"), strings.Index(res.Out, "LT10"), "groups are sorted")
}

func TestRulesCommand_ListVerbose(t *testing.T) {
	res := testutil.Execute(t, NewRulesCommand(), "--verbose")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Select modifiers (e.g. DISTINCT) must be on the same line as SELECT.")
}

func TestRulesCommand_ListText(t *testing.T) {
	res := testutil.Execute(t, NewRulesCommand(), "--format", "text")
	require.NoError(t, res.Err)

	testutil.AssertNoANSI(t, res.Out)
	assert.Contains(t, res.Out, "Lint Rules (2)")
	assert.Contains(t, res.Out, "layout.select_modifiers")
	assert.Contains(t, res.Out, "Use 'leaplint rules <rule-id>'")
}

func TestRulesCommand_ListJSON(t *testing.T) {
	res := testutil.Execute(t, NewRulesCommand(), "--format", "json")
	require.NoError(t, res.Err)

	var out RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.Out), &out))
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Rules, 2)
	assert.Equal(t, "AL01", out.Rules[0].ID)
	assert.Equal(t, "LT10", out.Rules[1].ID)
}

func TestRulesCommand_Group(t *testing.T) {
	res := testutil.Execute(t, NewRulesCommand(), "--group", "layout", "--format", "json")
	require.NoError(t, res.Err)

	var out RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(res.Out), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "LT10", out.Rules[0].ID)

	res = testutil.Execute(t, NewRulesCommand(), "--group", "convention")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `no rules in group "convention"`)
}

func TestRulesCommand_Show(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		res := testutil.Execute(t, NewRulesCommand(), "lt10")
		require.NoError(t, res.Err)

		testutil.AssertValidMarkdown(t, res.Out)
		assert.Contains(t, res.Out, "# LT10 - layout.select_modifiers")
		assert.Contains(t, res.Out, "**Severity:** `warning`")
		assert.Contains(t, res.Out, "## Bad Example")
		assert.Contains(t, res.Out, "```sql")
		assert.Contains(t, res.Out, "[Documentation](")
	})

	t.Run("text", func(t *testing.T) {
		res := testutil.Execute(t, NewRulesCommand(), "AL01", "--format", "text")
		require.NoError(t, res.Err)

		testutil.AssertNoANSI(t, res.Out)
		assert.Contains(t, res.Out, "AL01 - aliasing.table")
		assert.Contains(t, res.Out, "Options: aliasing")
	})

	t.Run("json", func(t *testing.T) {
		res := testutil.Execute(t, NewRulesCommand(), "AL01", "--format", "json")
		require.NoError(t, res.Err)

		var info core.RuleInfo
		require.NoError(t, json.Unmarshal([]byte(res.Out), &info))
		assert.Equal(t, "AL01", info.ID)
		assert.True(t, info.FixCompatible)
	})

	t.Run("unknown", func(t *testing.T) {
		res := testutil.Execute(t, NewRulesCommand(), "XX99")
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), `rule "XX99" not found`)
	})
}

func TestFixLabel(t *testing.T) {
	assert.Equal(t, "auto", fixLabel(core.RuleInfo{FixCompatible: true}))
	assert.Equal(t, "manual", fixLabel(core.RuleInfo{}))
}

func TestTruncateOneLine(t *testing.T) {
	assert.Equal(t, "short", truncateOneLine("short", 80))
	assert.Equal(t, "first line second", truncateOneLine("first line\n  second", 80))
	assert.Equal(t, strings.Repeat("x", 17)+"...", truncateOneLine(strings.Repeat("x", 100), 20))
}

func TestRulesCommand_JSONIsValidForRenderer(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, listRulesJSON(tr.Renderer, nil))
	assert.JSONEq(t, `{"rules":null,"count":0}`, tr.Out.String())
}
