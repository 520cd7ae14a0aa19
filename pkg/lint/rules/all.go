// Package rules registers every built-in lint rule.
//
// Import it for its side effects:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
//
// Rule Categories:
//   - AL (Aliasing): Rules about alias usage
//   - LT (Layout): Rules about whitespace and line breaks
package rules

// Import rule categories - each registers its rules via init()
import (
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules/aliasing"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules/layout"
)
