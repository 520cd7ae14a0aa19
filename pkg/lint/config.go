package lint

import (
	"fmt"
	"maps"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Config controls which rules are enabled and their severity.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// OnlyRules, when non-empty, restricts analysis to these rule IDs
	OnlyRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		OnlyRules:         make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// FromLintConfig builds a Config from the lint section of the config file.
func FromLintConfig(lc *core.LintConfig) (*Config, error) {
	c := NewConfig()
	if lc == nil {
		return c, nil
	}
	for _, id := range lc.Disabled {
		c.Disable(id)
	}
	for id, name := range lc.Severity {
		sev, ok := core.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("lint.severity.%s: invalid severity %q", id, name)
		}
		c.SetSeverity(id, sev)
	}
	for id, opts := range lc.Rules {
		c.SetRuleOptions(id, maps.Clone(opts))
	}
	return c, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	if len(c.OnlyRules) > 0 && !c.OnlyRules[ruleID] {
		return true
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Only restricts analysis to the given rule IDs.
func (c *Config) Only(ruleIDs ...string) *Config {
	for _, id := range ruleIDs {
		c.OnlyRules[id] = true
	}
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions sets the options passed to a rule's Eval.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}
