package fix

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// DefaultRunawayLimit bounds the number of analyze/apply passes.
const DefaultRunawayLimit = 10

// Analyzer produces violations for a tree. *lint.Analyzer implements it.
type Analyzer interface {
	Analyze(ctx context.Context, tree *segment.Tree) ([]lint.Violation, []lint.RuleError, error)
}

// LoopOptions configures Loop.
type LoopOptions struct {
	RunawayLimit int          // maximum passes; <= 0 means DefaultRunawayLimit
	Logger       *slog.Logger // nil discards
}

// LoopResult is the outcome of Loop.
type LoopResult struct {
	Tree         *segment.Tree    // corrected tree
	Passes       int              // passes that applied at least one fix
	Applied      []AppliedFix     // every applied fix, in pass order
	Remaining    []lint.Violation // violations of the corrected tree
	RuleErrors   []lint.RuleError // rule failures on the corrected tree
	LimitReached bool             // stopped with fixable violations left
}

// Loop alternates analysis and Apply until the tree has no applicable
// fixes or the runaway limit is reached. Deferred fixes are picked up by
// the next pass, which analyzes the corrected tree afresh.
func Loop(ctx context.Context, tree *segment.Tree, analyzer Analyzer, opts LoopOptions) (*LoopResult, error) {
	limit := opts.RunawayLimit
	if limit <= 0 {
		limit = DefaultRunawayLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &LoopResult{Tree: tree}
	for {
		violations, ruleErrs, err := analyzer.Analyze(ctx, result.Tree)
		if err != nil {
			return nil, err
		}
		result.Remaining = violations
		result.RuleErrors = ruleErrs

		if result.Passes >= limit {
			result.LimitReached = hasFixable(violations)
			if result.LimitReached {
				logger.Warn("fix loop reached runaway limit",
					slog.Int("limit", limit),
					slog.Int("remaining", len(violations)))
			}
			return result, nil
		}

		applied, err := Apply(result.Tree, violations)
		if errors.Is(err, ErrNoFixes) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		result.Passes++
		result.Tree = applied.Tree
		result.Applied = append(result.Applied, applied.Applied...)
		logger.Debug("fix pass complete",
			slog.Int("pass", result.Passes),
			slog.Int("applied", len(applied.Applied)),
			slog.Int("skipped", len(applied.Skipped)))
	}
}

func hasFixable(violations []lint.Violation) bool {
	for _, v := range violations {
		if v.Fixable {
			return true
		}
	}
	return false
}
