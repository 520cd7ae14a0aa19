package aliasing

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

func init() {
	lint.Register(TableAliasing)
}

// Values of the aliasing option.
const (
	AliasingExplicit = "explicit"
	AliasingImplicit = "implicit"
)

// TableAliasing enforces the configured style of table aliases.
var TableAliasing = lint.RuleDef{
	ID:            "AL01",
	Name:          "aliasing.table",
	Group:         "aliasing",
	Description:   "Implicit/explicit aliasing of table.",
	Severity:      core.SeverityWarning,
	Eval:          evalTableAliasing,
	ConfigKeys:    []string{"aliasing"},
	FixCompatible: true,
	Impact:        lint.ImpactLow,

	Rationale: `Mixing "FROM foo voo" and "FROM foo AS voo" in one code base makes aliases harder
to spot. The aliasing option selects the style: explicit (default) requires AS, implicit
forbids it.`,

	BadExample: `SELECT voo.a
FROM foo voo`,

	GoodExample: `SELECT voo.a
FROM foo AS voo`,

	Fix: "Add AS before the alias, or remove it when aliasing is implicit.",
}

func evalTableAliasing(seg *segment.Segment, opts map[string]any) *lint.Result {
	if !seg.Is(segment.KindAliasExpression) {
		return nil
	}
	parent := seg.Parent()
	if parent == nil || !parent.Is(segment.KindFromExpressionElement) {
		return nil
	}
	mode := lint.GetEnumOption(opts, "aliasing",
		[]string{AliasingExplicit, AliasingImplicit}, AliasingExplicit)

	as := asKeyword(seg)
	switch {
	case as != nil && mode == AliasingImplicit:
		fixes := []lint.Fix{lint.DeleteFix(as)}
		for ws := range segment.Select(as, segment.IsKind(segment.KindWhitespace), segment.Not(segment.IsKind(segment.KindWhitespace))) {
			fixes = append(fixes, lint.DeleteFix(ws))
		}
		return &lint.Result{
			Anchor:      as,
			Fixes:       fixes,
			Description: "Explicit aliasing of table is not allowed; remove AS.",
		}

	case as == nil && mode == AliasingExplicit:
		alias := seg.FirstCode()
		if alias == nil {
			return nil
		}
		return &lint.Result{
			Anchor: seg,
			Fixes: []lint.Fix{
				lint.CreateBeforeFix(alias,
					segment.NewKeyword(keywordCase("AS", parent), alias.Pos()),
					segment.NewWhitespace(" ", alias.Pos()),
				),
			},
			Description: "Implicit aliasing of table is not allowed; use explicit AS.",
		}
	}
	return nil
}

func asKeyword(alias *segment.Segment) *segment.Segment {
	for c := range alias.All() {
		if c.Is(segment.KindKeyword) && token.Lookup(c.Raw()) == token.AS {
			return c
		}
	}
	return nil
}

// keywordCase lower-cases kw when the enclosing clause keyword is written in
// lower case.
func keywordCase(kw string, elem *segment.Segment) string {
	clause := elem.Parent()
	if clause == nil || clause.Len() == 0 {
		return kw
	}
	lead := clause.Child(0).Raw()
	if lead == strings.ToLower(lead) {
		return strings.ToLower(kw)
	}
	return kw
}
