package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// kindRule reports every segment of one kind.
func kindRule(id string, kind segment.Kind) lint.SegmentRule {
	return lint.WrapRuleDef(lint.RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: core.SeverityWarning,
		Eval: func(seg *segment.Segment, _ map[string]any) *lint.Result {
			if !seg.Is(kind) {
				return nil
			}
			return &lint.Result{Description: id}
		},
	})
}

func panicRule(id string) lint.SegmentRule {
	return lint.WrapRuleDef(lint.RuleDef{
		ID:    id,
		Group: "test",
		Eval: func(seg *segment.Segment, _ map[string]any) *lint.Result {
			if seg.Is(segment.KindIdentifier) {
				panic("boom")
			}
			return nil
		},
	})
}

func TestAnalyzer_Analyze(t *testing.T) {
	tree := mustParse(t, "select a, b from t")

	analyzer := lint.NewAnalyzer(nil, testutil.NewTestLogger(t), 2).WithRules(
		kindRule("T02", segment.KindKeyword),
		kindRule("T01", segment.KindIdentifier),
	)
	violations, ruleErrs, err := analyzer.Analyze(context.Background(), tree)
	require.NoError(t, err)
	assert.Empty(t, ruleErrs)

	// Document order: select, a, b, from, t.
	var got []string
	for _, v := range violations {
		got = append(got, v.RuleID+":"+v.Result.Anchor.Raw())
	}
	assert.Equal(t, []string{"T02:select", "T01:a", "T01:b", "T02:from", "T01:t"}, got)

	// Anchor defaults to the evaluated segment.
	assert.True(t, tree.Contains(violations[0].Result.Anchor))
	assert.Equal(t, core.SeverityWarning, violations[0].Severity)
	assert.False(t, violations[0].Fixable)
}

func TestAnalyzer_ConfigApplied(t *testing.T) {
	tree := mustParse(t, "select a")

	cfg := lint.NewConfig().
		Disable("T02").
		SetSeverity("T01", core.SeverityError)
	analyzer := lint.NewAnalyzer(cfg, nil, 0).WithRules(
		kindRule("T01", segment.KindIdentifier),
		kindRule("T02", segment.KindKeyword),
	)

	violations, _, err := analyzer.Analyze(context.Background(), tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "T01", violations[0].RuleID)
	assert.Equal(t, core.SeverityError, violations[0].Severity)
}

func TestAnalyzer_OptionsPassed(t *testing.T) {
	tree := mustParse(t, "select a")

	var seen string
	rule := lint.WrapRuleDef(lint.RuleDef{
		ID: "T01",
		Eval: func(seg *segment.Segment, opts map[string]any) *lint.Result {
			if seg.Is(segment.KindFile) {
				seen = lint.GetStringOption(opts, "mode", "none")
			}
			return nil
		},
	})
	cfg := lint.NewConfig().SetRuleOptions("T01", map[string]any{"mode": "strict"})

	_, _, err := lint.NewAnalyzer(cfg, nil, 1).WithRules(rule).Analyze(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, "strict", seen)
}

func TestAnalyzer_PanicIsolated(t *testing.T) {
	tree := mustParse(t, "select a from t")

	analyzer := lint.NewAnalyzer(nil, testutil.NewTestLogger(t), 4).WithRules(
		panicRule("T01"),
		kindRule("T02", segment.KindKeyword),
	)
	violations, ruleErrs, err := analyzer.Analyze(context.Background(), tree)
	require.NoError(t, err)

	require.Len(t, ruleErrs, 1)
	assert.Equal(t, "T01", ruleErrs[0].RuleID)
	assert.Contains(t, ruleErrs[0].Error(), "boom")

	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, "T02", v.RuleID)
	}
}

func TestAnalyzer_Cancelled(t *testing.T) {
	tree := mustParse(t, "select a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := lint.NewAnalyzer(nil, nil, 1).
		WithRules(kindRule("T01", segment.KindIdentifier)).
		Analyze(ctx, tree)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_NoRules(t *testing.T) {
	tree := mustParse(t, "select a")
	cfg := lint.NewConfig().Only("NOPE")

	violations, ruleErrs, err := lint.NewAnalyzer(cfg, nil, 1).
		WithRules(kindRule("T01", segment.KindIdentifier)).
		Analyze(context.Background(), tree)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Empty(t, ruleErrs)
}
