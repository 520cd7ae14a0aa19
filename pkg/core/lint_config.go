package core

// LintConfig holds lint rule configuration as it appears in leaplint.yaml
// under the lint key.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled" yaml:"disabled,omitempty"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules" yaml:"rules,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any
