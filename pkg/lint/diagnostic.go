package lint

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// =============================================================================
// Violations
// =============================================================================

// Violation is a Result produced by a rule, tagged with the rule and the
// effective severity.
type Violation struct {
	RuleID   string
	Severity core.Severity
	Impact   ImpactLevel
	Fixable  bool // the rule is fix compatible and the result carries fixes
	Result   *Result
}

// Diagnostic converts the violation for display.
func (v Violation) Diagnostic() Diagnostic {
	span := v.Result.Anchor.Span()
	d := Diagnostic{
		RuleID:           v.RuleID,
		Severity:         v.Severity,
		Message:          v.Result.Description,
		Pos:              span.Start,
		EndPos:           span.End,
		DocumentationURL: BuildDocURL(v.RuleID),
		ImpactScore:      v.Impact.Int(),
		AutoFixable:      v.Fixable,
	}
	if len(v.Result.Fixes) > 0 {
		tf := TextFix{Description: v.Result.Description}
		for _, f := range v.Result.Fixes {
			tf.TextEdits = append(tf.TextEdits, textEdit(f))
		}
		d.Fixes = []TextFix{tf}
	}
	return d
}

func textEdit(f Fix) TextEdit {
	span := f.Anchor.Span()
	text := rawOf(f.Segments)
	switch f.Kind {
	case FixDelete:
		return TextEdit{Pos: span.Start, EndPos: span.End}
	case FixCreateBefore:
		return TextEdit{Pos: span.Start, EndPos: span.Start, NewText: text}
	case FixCreateAfter:
		return TextEdit{Pos: span.End, EndPos: span.End, NewText: text}
	default:
		return TextEdit{Pos: span.Start, EndPos: span.End, NewText: text}
	}
}

func rawOf(segs []*segment.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Raw())
	}
	return b.String()
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity core.Severity  `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"`        // End of the problematic range
	Fixes    []TextFix      `json:"fixes,omitempty"` // Suggested fixes as text edits

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"` // URL to rule documentation, e.g., "https://leaplint.dev/docs/rules/lt10"
	ImpactScore      int    `json:"impact_score"`                // 0-100
	AutoFixable      bool   `json:"auto_fixable"`                // true if `leaplint fix` can apply Fixes
}

// TextFix is a suggested fix expressed as text edits against the source
// the tree was parsed from.
type TextFix struct {
	Description string     `json:"description"`
	TextEdits   []TextEdit `json:"text_edits"`
}

// TextEdit represents a text replacement.
type TextEdit struct {
	Pos     token.Position `json:"pos"`
	EndPos  token.Position `json:"end_pos"`
	NewText string         `json:"new_text"`
}
