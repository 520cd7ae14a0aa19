package layout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/lint/rules/layout"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// builder creates leaves with consecutive positions.
type builder struct {
	pos token.Position
}

func (b *builder) leaf(kind segment.Kind, raw string) *segment.Segment {
	s := segment.NewLeaf(kind, raw, b.pos)
	b.pos = b.pos.Advance(raw)
	return s
}

func (b *builder) modifier(raw string) *segment.Segment {
	return segment.NewBranch(segment.KindSelectModifier, b.leaf(segment.KindKeyword, raw))
}

// clauseTree wraps a select clause in a file and returns the attached clause.
func clauseTree(children ...*segment.Segment) (*segment.Tree, *segment.Segment) {
	tree := segment.NewTree(segment.NewBranch(segment.KindFile,
		segment.NewBranch(segment.KindSelectClause, children...)))
	return tree, tree.Root().Child(0)
}

func eval(seg *segment.Segment) *lint.Result {
	return layout.SelectModifiers.Eval(seg, nil)
}

func applyResult(t *testing.T, tree *segment.Tree, res *lint.Result) *segment.Tree {
	t.Helper()
	out, err := fix.Apply(tree, []lint.Violation{{RuleID: "LT10", Fixable: true, Result: res}})
	require.NoError(t, err)
	require.Empty(t, out.Skipped)
	return out.Tree
}

func kindsAndRaws(s *segment.Segment) []string {
	var out []string
	for c := range s.All() {
		out = append(out, c.Kind().String()+":"+c.Raw())
	}
	return out
}

func TestLT10_Scenario(t *testing.T) {
	b := &builder{pos: token.Start}
	tree, clause := clauseTree(
		b.leaf(segment.KindKeyword, "select"),
		b.leaf(segment.KindNewline, "\n"),
		b.leaf(segment.KindWhitespace, "    "),
		b.modifier("distinct"),
		b.leaf(segment.KindWhitespace, " "),
		b.leaf(segment.KindIdentifier, "a"),
		b.leaf(segment.KindComma, ","),
		b.leaf(segment.KindWhitespace, " "),
		b.leaf(segment.KindIdentifier, "b"),
		b.leaf(segment.KindNewline, "\n"),
		b.leaf(segment.KindKeyword, "from"),
		b.leaf(segment.KindWhitespace, " "),
		b.leaf(segment.KindIdentifier, "x"),
	)

	res := eval(clause)
	require.NotNil(t, res)
	assert.Same(t, clause, res.Anchor)
	assert.Equal(t, "Select modifiers (e.g. DISTINCT) must be on the same line as SELECT.", res.Description)
	require.NoError(t, res.Validate(tree))

	require.Len(t, res.Fixes, 3)
	edit := res.Fixes[0]
	assert.Equal(t, lint.FixEdit, edit.Kind)
	assert.Same(t, clause.Child(1), edit.Anchor)
	require.Len(t, edit.Segments, 3)
	assert.Equal(t, segment.KindWhitespace, edit.Segments[0].Kind())
	assert.Equal(t, " ", edit.Segments[0].Raw())
	assert.Same(t, clause.Child(3), edit.Segments[1], "modifier is relocated, not copied")
	assert.Equal(t, segment.KindNewline, edit.Segments[2].Kind())
	// Synthetic markers are copied from the line break.
	assert.Equal(t, clause.Child(1).Pos(), edit.Segments[0].Pos())
	assert.Equal(t, clause.Child(1).Pos(), edit.Segments[2].Pos())

	assert.Equal(t, lint.FixDelete, res.Fixes[1].Kind)
	assert.Same(t, clause.Child(3), res.Fixes[1].Anchor)
	assert.Equal(t, lint.FixDelete, res.Fixes[2].Kind)
	assert.Same(t, clause.Child(4), res.Fixes[2].Anchor)

	fixed := applyResult(t, tree, res)
	fixedClause := fixed.Root().Child(0)
	assert.Equal(t, []string{
		"keyword:select",
		"whitespace: ",
		"select_clause_modifier:distinct",
		"newline:\n",
		"whitespace:    ",
		"identifier:a",
		"comma:,",
		"whitespace: ",
		"identifier:b",
		"newline:\n",
		"keyword:from",
		"whitespace: ",
		"identifier:x",
	}, kindsAndRaws(fixedClause))
	assert.Equal(t, "select distinct\n    a, b\nfrom x", fixed.Raw())

	// Idempotent.
	assert.Nil(t, eval(fixedClause))
}

func TestLT10_StopsBeforeFirstContent(t *testing.T) {
	b := &builder{pos: token.Start}
	tree, clause := clauseTree(
		b.leaf(segment.KindKeyword, "select"),
		b.leaf(segment.KindNewline, "\n"),
		b.modifier("distinct"),
		b.leaf(segment.KindWhitespace, " "),
		b.leaf(segment.KindWhitespace, "\t"),
		b.leaf(segment.KindComma, ","),
		b.leaf(segment.KindWhitespace, " "),
		b.leaf(segment.KindIdentifier, "a"),
	)

	res := eval(clause)
	require.NotNil(t, res)
	require.Len(t, res.Fixes, 4)
	assert.Same(t, clause.Child(3), res.Fixes[2].Anchor)
	assert.Same(t, clause.Child(4), res.Fixes[3].Anchor)

	fixed := applyResult(t, tree, res)
	assert.Equal(t, "select distinct\n, a", fixed.Raw())
}

func TestLT10_ResultDescription(t *testing.T) {
	tree, err := parser.Parse("select\n  distinct a from t")
	require.NoError(t, err)

	analyzer := lint.NewAnalyzer(nil, nil, 1).WithRules(lint.WrapRuleDef(layout.SelectModifiers))
	violations, _, err := analyzer.Analyze(context.Background(), tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, layout.SelectModifiers.Description, violations[0].Result.Description)
	assert.Equal(t, layout.SelectModifiers.Description, violations[0].Diagnostic().Message)
}

// The whitespace scan stops at content only, so it crosses a line break
// that follows the modifier and removes the next line's indentation.
func TestLT10_ScanCrossesLineBreak(t *testing.T) {
	tree, err := parser.Parse("select\n  distinct\n  a from t")
	require.NoError(t, err)

	clause := tree.Root().Child(0).Child(0)
	require.Equal(t, segment.KindSelectClause, clause.Kind())

	res := eval(clause)
	require.NotNil(t, res)
	require.Len(t, res.Fixes, 3)
	assert.Equal(t, "  ", res.Fixes[2].Anchor.Raw())
	assert.Same(t, clause.Child(5), res.Fixes[2].Anchor, "indentation after the second break")

	fixed := applyResult(t, tree, res)
	assert.Equal(t, "select distinct\n  \na from t", fixed.Raw())
}

func TestLT10_AdjacentModifier(t *testing.T) {
	b := &builder{pos: token.Start}
	tree, clause := clauseTree(
		b.leaf(segment.KindKeyword, "select"),
		b.leaf(segment.KindNewline, "\n"),
		b.modifier("all"),
		b.leaf(segment.KindSymbol, "*"),
	)

	res := eval(clause)
	require.NotNil(t, res)
	assert.Len(t, res.Fixes, 2, "no whitespace to clean up")

	fixed := applyResult(t, tree, res)
	assert.Equal(t, "select all\n*", fixed.Raw())
}

func TestLT10_FirstModifierOnly(t *testing.T) {
	b := &builder{pos: token.Start}
	_, clause := clauseTree(
		b.leaf(segment.KindKeyword, "select"),
		b.modifier("distinct"),
		b.leaf(segment.KindNewline, "\n"),
		b.modifier("all"),
		b.leaf(segment.KindIdentifier, "a"),
	)
	assert.Nil(t, eval(clause))
}

func TestLT10_IgnoresOtherKinds(t *testing.T) {
	tree, err := parser.Parse("select\n  distinct a\nfrom t")
	require.NoError(t, err)

	count := 0
	for seg := range tree.Walk() {
		if eval(seg) != nil {
			count++
			assert.Equal(t, segment.KindSelectClause, seg.Kind())
		}
	}
	assert.Equal(t, 1, count)
}

func TestLT10_Parsed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // empty when no violation is expected
	}{
		{
			name:  "modifier on second line",
			input: "select\n    distinct a,\n    b\nfrom x",
			want:  "select distinct\n    a,\n    b\nfrom x",
		},
		{
			name:  "upper case all",
			input: "SELECT\nALL a FROM t",
			want:  "SELECT ALL\na FROM t",
		},
		{
			name:  "block comment before break",
			input: "select /* x */\n  distinct a from t",
			want:  "select /* x */ distinct\n  a from t",
		},
		{
			name:  "crlf line break",
			input: "select\r\n  distinct a from t",
			want:  "select distinct\n  a from t",
		},
		{
			name:  "several statements",
			input: "select\n distinct a;\nselect\n all b;",
			want:  "select distinct\n a;\nselect all\n b;",
		},
		{
			name:  "modifier alone on its line",
			input: "select\n  distinct\n  a from t",
			want:  "select distinct\n  \na from t",
		},
		{
			name:  "subquery",
			input: "select a from (select\n  distinct b from t) s",
			want:  "select a from (select distinct\n  b from t) s",
		},
		{
			name:  "common table expression",
			input: "with x as (select\n  distinct a from t) select * from x",
			want:  "with x as (select distinct\n  a from t) select * from x",
		},
		{
			name:  "nested subqueries",
			input: "select * from (select * from (select\n all c from t) i) o",
			want:  "select * from (select * from (select all\n c from t) i) o",
		},
		{
			name:  "single line clause",
			input: "select distinct a\nfrom x",
		},
		{
			name:  "modifier before break",
			input: "select distinct\n  a,\n  b\nfrom x",
		},
		{
			name:  "no modifier",
			input: "select\n  a,\n  b\nfrom x",
		},
		{
			name:  "distinct inside function",
			input: "select\n  count(distinct a)\nfrom x",
		},
	}

	analyzer := lint.NewAnalyzer(nil, nil, 1).WithRules(lint.WrapRuleDef(layout.SelectModifiers))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parser.Parse(tt.input)
			require.NoError(t, err)

			out, err := fix.Loop(context.Background(), tree, analyzer, fix.LoopOptions{})
			require.NoError(t, err)
			assert.Empty(t, out.Remaining)

			if tt.want == "" {
				assert.Zero(t, out.Passes)
				assert.Equal(t, tt.input, out.Tree.Raw())
				return
			}
			assert.Equal(t, 1, out.Passes)
			assert.Equal(t, tt.want, out.Tree.Raw())
		})
	}
}

func TestLT10_LineCommentIsReportOnly(t *testing.T) {
	tree, err := parser.Parse("select -- pick one\n  distinct a from t")
	require.NoError(t, err)

	analyzer := lint.NewAnalyzer(nil, nil, 1).WithRules(lint.WrapRuleDef(layout.SelectModifiers))
	violations, _, err := analyzer.Analyze(context.Background(), tree)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Empty(t, violations[0].Result.Fixes)
	assert.False(t, violations[0].Fixable)
}

func TestLT10_Registered(t *testing.T) {
	rule, ok := lint.GetRuleByID("LT10")
	require.True(t, ok)
	assert.Equal(t, "layout.select_modifiers", rule.Name())
	assert.True(t, rule.IsFixCompatible())
}
