package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
)

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := output.ParseMode(c.OutputFormat); !ok {
		errs = append(errs, fmt.Errorf("output: unknown format %q (want one of %v)", c.OutputFormat, output.Modes))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	if c.Fix.RunawayLimit < 1 {
		errs = append(errs, fmt.Errorf("fix.runaway_limit: must be at least 1, got %d", c.Fix.RunawayLimit))
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("exclude: invalid pattern %q: %w", pattern, err))
		}
	}
	if c.Lint != nil {
		ids := make([]string, 0, len(c.Lint.Severity))
		for id := range c.Lint.Severity {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			if _, ok := core.ParseSeverity(c.Lint.Severity[id]); !ok {
				errs = append(errs, fmt.Errorf("lint.severity.%s: invalid severity %q", id, c.Lint.Severity[id]))
			}
		}
	}
	return errors.Join(errs...)
}
