// Package layout holds the LT rules, which check whitespace and line
// breaks.
//
//   - LT10 layout.select_modifiers: DISTINCT and ALL stay on the SELECT line
package layout
