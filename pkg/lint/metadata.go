package lint

import "strings"

// DocsBaseURL is where rule documentation is hosted.
const DocsBaseURL = "https://leaplint.dev/docs/rules"

// BuildDocURL returns the documentation page of a rule.
func BuildDocURL(ruleID string) string {
	return DocsBaseURL + "/" + strings.ToLower(ruleID)
}

// ImpactLevel weights a rule's violations in reports, from 0 to 100.
type ImpactLevel int

// Impact bands.
const (
	ImpactLow      ImpactLevel = 20 // layout and other cosmetic issues
	ImpactMedium   ImpactLevel = 50 // readability
	ImpactHigh     ImpactLevel = 70 // likely to hide bugs
	ImpactCritical ImpactLevel = 90 // changes query results
)

// Int returns the score.
func (l ImpactLevel) Int() int { return int(l) }

// ImpactOf returns the impact of r. Rules that do not report one are
// ImpactLow.
func ImpactOf(r Rule) ImpactLevel {
	if ir, ok := r.(ImpactRule); ok {
		return ir.Impact()
	}
	return ImpactLow
}
