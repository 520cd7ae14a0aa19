package lint

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// RuleError records a rule that failed while evaluating a tree. The rule's
// results for that tree are discarded; other rules are unaffected.
type RuleError struct {
	RuleID string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Analyzer runs segment rules over parsed trees.
type Analyzer struct {
	config  *Config
	logger  *slog.Logger
	workers int
	rules   []SegmentRule // nil means the global registry
}

// NewAnalyzer creates an analyzer. A nil config enables every rule, a nil
// logger discards output and workers <= 0 uses GOMAXPROCS.
func NewAnalyzer(config *Config, logger *slog.Logger, workers int) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{config: config, logger: logger, workers: workers}
}

// WithRules makes the analyzer use rules instead of the global registry.
func (a *Analyzer) WithRules(rules ...SegmentRule) *Analyzer {
	a.rules = rules
	return a
}

// Rules returns the enabled rules in ID order.
func (a *Analyzer) Rules() []SegmentRule {
	all := a.rules
	if all == nil {
		all = GetAllRules()
	}
	enabled := make([]SegmentRule, 0, len(all))
	for _, r := range all {
		if !a.config.IsDisabled(r.ID()) {
			enabled = append(enabled, r)
		}
	}
	sortRules(enabled)
	return enabled
}

// Analyze evaluates every enabled rule against every segment of tree.
//
// Rules run concurrently; each walks the tree in document order. The
// returned violations are ordered by anchor position, then rule ID. A rule
// that panics is reported as a RuleError and skipped. The error is non-nil
// only when ctx is cancelled.
func (a *Analyzer) Analyze(ctx context.Context, tree *segment.Tree) ([]Violation, []RuleError, error) {
	rules := a.Rules()
	if len(rules) == 0 {
		return nil, nil, nil
	}

	results := make([][]Violation, len(rules))
	failures := make([]*RuleError, len(rules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(a.workers, len(rules)))

	for i, rule := range rules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own index.
			results[i], failures[i] = a.runRule(rule, tree)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		violations []Violation
		ruleErrs   []RuleError
	)
	for i := range rules {
		if failures[i] != nil {
			ruleErrs = append(ruleErrs, *failures[i])
			continue
		}
		violations = append(violations, results[i]...)
	}
	slices.SortStableFunc(violations, func(x, y Violation) int {
		return cmp.Or(
			cmp.Compare(x.Result.Anchor.ID(), y.Result.Anchor.ID()),
			cmp.Compare(x.RuleID, y.RuleID),
		)
	})
	return violations, ruleErrs, nil
}

// runRule evaluates one rule over the whole tree, converting a panic into
// a RuleError.
func (a *Analyzer) runRule(rule SegmentRule, tree *segment.Tree) (out []Violation, ruleErr *RuleError) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("rule panicked, skipping",
				slog.String("rule", rule.ID()),
				slog.Any("panic", r))
			out = nil
			ruleErr = &RuleError{RuleID: rule.ID(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	opts := a.config.GetRuleOptions(rule.ID())
	severity := a.config.GetSeverity(rule.ID(), rule.DefaultSeverity())
	impact := ImpactOf(rule)

	for seg := range tree.Walk() {
		res := rule.Eval(seg, opts)
		if res == nil {
			continue
		}
		if res.Anchor == nil {
			res.Anchor = seg
		}
		out = append(out, Violation{
			RuleID:   rule.ID(),
			Severity: severity,
			Impact:   impact,
			Fixable:  rule.IsFixCompatible() && len(res.Fixes) > 0,
			Result:   res,
		})
	}
	if len(out) > 0 {
		a.logger.Debug("rule found violations",
			slog.String("rule", rule.ID()),
			slog.Int("count", len(out)))
	}
	return out, nil
}
