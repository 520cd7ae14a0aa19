package lint

import (
	"cmp"
	"slices"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/core"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]SegmentRule),
}

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]SegmentRule // keyed by ID
}

// Register adds a rule definition to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	RegisterRule(WrapRuleDef(rule))
}

// RegisterRule adds a rule to the global registry, replacing any rule with
// the same ID.
func RegisterRule(rule SegmentRule) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID()] = rule
}

// GetAllRules returns all registered rules ordered by ID.
func GetAllRules() []SegmentRule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]SegmentRule, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sortRules(rules)
	return rules
}

// GetRuleByID returns a rule by its ID.
func GetRuleByID(id string) (SegmentRule, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetRulesByGroup returns all rules in a specific group ordered by ID.
func GetRulesByGroup(group string) []SegmentRule {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []SegmentRule
	for _, rule := range globalRegistry.rules {
		if rule.Group() == group {
			rules = append(rules, rule)
		}
	}
	sortRules(rules)
	return rules
}

// AllRules returns metadata for all registered rules ordered by ID.
func AllRules() []core.RuleInfo {
	rules := GetAllRules()
	infos := make([]core.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, GetRuleInfo(rule))
	}
	return infos
}

// CountRules returns the number of registered rules.
func CountRules() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// ClearRules removes all registered rules. Used for testing.
func ClearRules() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]SegmentRule)
}

func sortRules(rules []SegmentRule) {
	slices.SortFunc(rules, func(a, b SegmentRule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}
