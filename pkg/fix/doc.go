// Package fix applies the structural fixes produced by lint rules.
//
// Apply turns one set of violations into a corrected segment.Tree without
// touching the input tree. Each lint.Result is atomic. When two results
// touch the same or nested segments the later one is deferred; Loop
// re-analyzes the corrected tree so deferred fixes are retried on fresh
// anchors.
package fix
