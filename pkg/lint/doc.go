// Package lint is the segment rule framework: rule metadata and
// registration, structural fixes, and the Analyzer that runs rules over a
// parsed tree.
//
// A rule is a pure function from a segment to an optional Result. The
// Analyzer hands every segment of a tree to every enabled rule in document
// order; rules pick the kinds they care about. A Result carries fixes
// anchored at segments of the evaluated tree and is never applied here
// (see package fix).
//
// Built-in rules register themselves from init functions:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// Groups are aliasing (AL) and layout (LT). A rule is declared as data:
//
//	var SelectModifiers = lint.RuleDef{
//		ID:            "LT10",
//		Name:          "layout.select_modifiers",
//		Group:         "layout",
//		Severity:      core.SeverityWarning,
//		FixCompatible: true,
//		Eval:          evalSelectModifiers,
//	}
//
//	func init() { lint.Register(SelectModifiers) }
//
// Config selects rules and tunes them:
//
//	cfg := lint.NewConfig().Disable("AL01").SetSeverity("LT10", core.SeverityError)
//	violations, ruleErrs, err := lint.NewAnalyzer(cfg, logger, 0).Analyze(ctx, tree)
package lint
