package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/runner"
)

// ErrWouldChange is returned by fix --check when a file is not clean.
var ErrWouldChange = errors.New("files would be changed")

// FixOptions holds options for the fix command.
type FixOptions struct {
	RuleFlags
	Check        bool // Report files that would change, write nothing
	Diff         bool // Print a unified diff, write nothing
	RunawayLimit int  // Bound on fix passes per file
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply automatic fixes to SQL files",
		Long: `Lint SQL files and apply the fixes of fix-compatible rules in place.

Each file is fixed in passes: lint, apply every non-conflicting fix,
repeat on the corrected text until nothing applies or the runaway limit
is reached. Violations without a fix are reported afterwards.

Pass - to read standard input and write the fixed SQL to standard output.`,
		Example: `  # Fix the current directory
  leaplint fix

  # Show what would change without writing
  leaplint fix --diff models

  # Fail if any file is not clean (CI)
  leaplint fix --check

  # Fix a query from standard input
  cat query.sql | leaplint fix -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero if files would change; write nothing")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print a unified diff instead of writing files")
	cmd.Flags().IntVar(&opts.RunawayLimit, "runaway-limit", 0, "Maximum fix passes per file (default from config)")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cc := NewCommandContext(cmd, opts.Format)
	if cmd.Flags().Changed("runaway-limit") {
		if opts.RunawayLimit < 1 {
			return fmt.Errorf("--runaway-limit must be at least 1")
		}
		cfg := *cc.Cfg
		cfg.Fix.RunawayLimit = opts.RunawayLimit
		cc.Cfg = &cfg
	}
	run, err := newRunner(cc, &opts.RuleFlags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if isStdin(args) {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		res := run.FixSource(ctx, "stdin", string(src))
		if res.Err != nil {
			return res.Err
		}
		switch {
		case opts.Diff:
			writeDiff(cc.Renderer, res)
		case !opts.Check:
			_, _ = io.WriteString(cmd.OutOrStdout(), res.Fixed)
		}
		return fixOutcome(opts, []runner.FileResult{res})
	}

	files, err := discover(cc.Cfg, args)
	if err != nil {
		return err
	}
	write := !opts.Check && !opts.Diff
	start := time.Now()
	results, err := run.Fix(ctx, files, write)
	if err != nil {
		return err
	}

	if opts.Diff {
		for _, res := range results {
			writeDiff(cc.Renderer, res)
		}
	} else {
		renderFixResults(cc.Renderer, results, write, time.Since(start))
	}
	return fixOutcome(opts, results)
}

// fixOutcome decides the exit status: --check fails on any change, other
// modes fail when violations remain or a file could not be processed.
func fixOutcome(opts *FixOptions, results []runner.FileResult) error {
	s := runner.Summarize(results, 0)
	if opts.Check && s.Changed > 0 {
		return ErrWouldChange
	}
	if s.Failed > 0 || (!opts.Check && !opts.Diff && s.Violations > 0) {
		return ErrIssuesFound
	}
	return nil
}

// writeDiff prints a unified diff of the changes to one file.
func writeDiff(r *output.Renderer, res runner.FileResult) {
	if res.Err != nil {
		r.Error(res.Err.Error())
		return
	}
	if !res.Changed {
		return
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(res.Source),
		B:        difflib.SplitLines(res.Fixed),
		FromFile: "a/" + res.Path,
		ToFile:   "b/" + res.Path,
		Context:  3,
	})
	if err != nil {
		r.Error(fmt.Sprintf("%s: %v", res.Path, err))
		return
	}

	styles := r.Styles()
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			r.Println(styles.Bold.Render(body))
		case strings.HasPrefix(line, "@@"):
			r.Println(styles.DiffHunk.Render(body))
		case strings.HasPrefix(line, "+"):
			r.Println(styles.DiffAdd.Render(body))
		case strings.HasPrefix(line, "-"):
			r.Println(styles.DiffRemove.Render(body))
		default:
			r.Println(body)
		}
	}
}

func renderFixResults(r *output.Renderer, results []runner.FileResult, wrote bool, took time.Duration) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(lintDocument(results))
		return
	}

	verb := "Fixed"
	if !wrote {
		verb = "Would fix"
	}
	for _, res := range results {
		if res.Changed {
			r.Success(fmt.Sprintf("%s %s (%d fixes in %d passes)", verb, res.Path, res.Applied, res.Passes))
		}
		if res.LimitReached {
			r.Warning(fmt.Sprintf("%s: fixes did not converge; stopped at the runaway limit", res.Path))
		}
	}

	s := runner.Summarize(results, took)
	if s.Violations > 0 || s.Failed > 0 {
		r.Println("")
		r.Println("Remaining issues:")
		renderLintResults(r, results, 0)
		return
	}
	if s.Changed == 0 {
		r.Success(fmt.Sprintf("Nothing to fix in %d files", s.Files))
		return
	}
	r.Muted(fmt.Sprintf("%d files changed, %d fixes applied [%s]", s.Changed, s.Applied, took.Round(time.Millisecond)))
}
