// Package core holds the types shared by the rule framework, the config
// loader and the CLI: severities, rule metadata and the lint section of
// leaplint.yaml. It depends on the standard library only.
package core
