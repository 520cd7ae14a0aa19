package layout

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

func init() {
	lint.Register(SelectModifiers)
}

const selectModifiersDescription = "Select modifiers (e.g. DISTINCT) must be on the same line as SELECT."

// SelectModifiers requires DISTINCT and ALL to sit on the SELECT line.
var SelectModifiers = lint.RuleDef{
	ID:            "LT10",
	Name:          "layout.select_modifiers",
	Group:         "layout",
	Description:   selectModifiersDescription,
	Severity:      core.SeverityWarning,
	Eval:          evalSelectModifiers,
	FixCompatible: true,
	Impact:        lint.ImpactLow,

	Rationale: `A modifier changes the meaning of the whole column list. Placed on a line of its
own it reads like part of the first column and is easy to miss when scanning the query.`,

	BadExample: `select
    distinct a,
    b
from x`,

	GoodExample: `select distinct
    a,
    b
from x`,

	Fix: "Move the modifier up to the SELECT line, followed by the line break.",
}

func evalSelectModifiers(seg *segment.Segment, _ map[string]any) *lint.Result {
	if !seg.Is(segment.KindSelectClause) {
		return nil
	}

	// Only the first modifier is checked.
	modifier := seg.First(segment.KindSelectModifier)
	if modifier == nil {
		return nil
	}
	newline := seg.First(segment.KindNewline)
	if newline == nil {
		return nil
	}
	if newline.Index() >= modifier.Index() {
		return nil
	}

	result := &lint.Result{
		Anchor:      seg,
		Description: selectModifiersDescription,
	}

	// A line comment before the break would swallow the moved modifier.
	if lineCommentBefore(seg, newline.Index()) {
		return result
	}

	// "\n" -> " DISTINCT\n"
	result.Fixes = append(result.Fixes,
		lint.EditFix(newline,
			segment.NewWhitespace(" ", newline.Pos()),
			modifier,
			segment.NewNewline(newline.Pos()),
		),
		lint.DeleteFix(modifier),
	)

	// Whitespace left behind in the modifier's old slot.
	for ws := range segment.Select(modifier, segment.IsKind(segment.KindWhitespace), segment.Not(segment.IsMeta)) {
		result.Fixes = append(result.Fixes, lint.DeleteFix(ws))
	}
	return result
}

func lineCommentBefore(clause *segment.Segment, end int) bool {
	for i := range end {
		c := clause.Child(i)
		if c.Is(segment.KindComment) && strings.HasPrefix(c.Raw(), "--") {
			return true
		}
	}
	return false
}
