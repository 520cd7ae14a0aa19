// Package aliasing holds the AL rules, which check how tables and
// expressions are aliased.
//
//   - AL01 aliasing.table: explicit or implicit AS before table aliases
package aliasing
