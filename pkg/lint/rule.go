package lint

import (
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the metadata interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "LT10" or "AL01"
	ID() string

	// Name returns the human-readable name, e.g., "layout.select_modifiers"
	Name() string

	// Group returns the category, e.g., "layout", "aliasing"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// SegmentRule evaluates individual segments of a parsed tree.
//
// The analyzer calls Eval once for every segment in document order without
// filtering by kind, so rules must ignore segments they do not apply to.
// Eval must not modify the tree and must be safe for concurrent use.
type SegmentRule interface {
	Rule

	// Eval returns a Result when seg violates the rule, or nil.
	// The opts parameter contains rule-specific options from configuration.
	Eval(seg *segment.Segment, opts map[string]any) *Result

	// IsFixCompatible reports whether the fixes of this rule may be applied
	// automatically.
	IsFixCompatible() bool
}

// ImpactRule is implemented by rules that report an impact score.
type ImpactRule interface {
	Impact() ImpactLevel
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Eval function parameters.
type RuleDef struct {
	ID            string        // Unique identifier, e.g., "LT10"
	Name          string        // Human-readable name, e.g., "layout.select_modifiers"
	Group         string        // Category, e.g., "layout", "aliasing"
	Description   string        // Human-readable description
	Severity      core.Severity // Default severity
	Eval          EvalFunc      // The evaluation function
	ConfigKeys    []string      // Configuration keys this rule accepts (for rule-specific options)
	FixCompatible bool          // Whether fixes may be applied by `leaplint fix`
	Impact        ImpactLevel   // Weight for reporting; zero means ImpactLow

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// EvalFunc evaluates one segment.
type EvalFunc func(seg *segment.Segment, opts map[string]any) *Result

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	info := core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
	if sr, ok := r.(SegmentRule); ok {
		info.FixCompatible = sr.IsFixCompatible()
	}
	return info
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement SegmentRule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the SegmentRule interface.
func WrapRuleDef(def RuleDef) SegmentRule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) IsFixCompatible() bool          { return w.def.FixCompatible }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Impact() ImpactLevel {
	if w.def.Impact == 0 {
		return ImpactLow
	}
	return w.def.Impact
}

func (w *wrappedRuleDef) Eval(seg *segment.Segment, opts map[string]any) *Result {
	return w.def.Eval(seg, opts)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
