// Package runner lints and fixes SQL files concurrently.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/parser"
)

// Options configures a Runner.
type Options struct {
	Workers      int // files processed in parallel; <= 0 means GOMAXPROCS
	RunawayLimit int // passes per file in Fix; <= 0 means fix.DefaultRunawayLimit
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string
	Source     string
	Violations []lint.Violation // violations of the final source
	RuleErrors []lint.RuleError
	Err        error // read, parse or write failure

	// Set by Fix only.
	Fixed        string
	Changed      bool
	Passes       int
	Applied      int
	LimitReached bool
}

// Diagnostics converts the violations for display.
func (r FileResult) Diagnostics() []lint.Diagnostic {
	out := make([]lint.Diagnostic, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Diagnostic())
	}
	return out
}

// Summary aggregates results of a run.
type Summary struct {
	Files      int
	Violations int
	Fixable    int
	Failed     int // files with Err set
	Changed    int
	Applied    int
	Duration   time.Duration
}

// Summarize aggregates results.
func Summarize(results []FileResult, took time.Duration) Summary {
	s := Summary{Files: len(results), Duration: took}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.Changed {
			s.Changed++
		}
		s.Applied += r.Applied
		s.Violations += len(r.Violations)
		for _, v := range r.Violations {
			if v.Fixable {
				s.Fixable++
			}
		}
	}
	return s
}

// Runner processes files with a shared analyzer.
type Runner struct {
	analyzer *lint.Analyzer
	logger   *slog.Logger
	opts     Options
}

// New creates a runner. A nil logger discards output.
func New(analyzer *lint.Analyzer, logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{analyzer: analyzer, logger: logger, opts: opts}
}

// LintSource lints one in-memory document.
func (r *Runner) LintSource(ctx context.Context, path, src string) FileResult {
	res := FileResult{Path: path, Source: src}
	tree, err := parser.Parse(src)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Violations, res.RuleErrors, res.Err = r.analyzer.Analyze(ctx, tree)
	return res
}

// FixSource fixes one in-memory document.
func (r *Runner) FixSource(ctx context.Context, path, src string) FileResult {
	res := FileResult{Path: path, Source: src, Fixed: src}
	tree, err := parser.Parse(src)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	out, err := fix.Loop(ctx, tree, r.analyzer, fix.LoopOptions{
		RunawayLimit: r.opts.RunawayLimit,
		Logger:       r.logger.With(slog.String("file", path)),
	})
	if err != nil {
		res.Err = err
		return res
	}
	res.Fixed = out.Tree.Raw()
	res.Changed = res.Fixed != src
	res.Passes = out.Passes
	res.Applied = len(out.Applied)
	res.LimitReached = out.LimitReached
	res.Violations = out.Remaining
	res.RuleErrors = out.RuleErrors
	return res
}

// Lint lints files concurrently. Results are in the order of files.
func (r *Runner) Lint(ctx context.Context, files []string) ([]FileResult, error) {
	return r.each(ctx, files, func(ctx context.Context, path, src string) FileResult {
		return r.LintSource(ctx, path, src)
	})
}

// Fix fixes files concurrently. When write is set, changed files are
// written back in place.
func (r *Runner) Fix(ctx context.Context, files []string, write bool) ([]FileResult, error) {
	return r.each(ctx, files, func(ctx context.Context, path, src string) FileResult {
		res := r.FixSource(ctx, path, src)
		if res.Err != nil || !res.Changed || !write {
			return res
		}
		if err := writeFile(path, res.Fixed); err != nil {
			res.Err = err
			return res
		}
		r.logger.Info("fixed file",
			slog.String("file", path),
			slog.Int("applied", res.Applied),
			slog.Int("passes", res.Passes))
		return res
	})
}

type fileFunc func(ctx context.Context, path, src string) FileResult

func (r *Runner) each(ctx context.Context, files []string, fn fileFunc) ([]FileResult, error) {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.opts.Workers, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
				return nil
			}
			res := fn(gctx, path, string(data))
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			for _, re := range res.RuleErrors {
				r.logger.Warn("rule failed",
					slog.String("file", path),
					slog.String("rule", re.RuleID),
					slog.Any("error", re.Err))
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeFile replaces path atomically, keeping its permissions.
func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	tmp := path + ".leaplint.tmp"
	if err := os.WriteFile(tmp, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
