package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/runner"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	RuleFlags
	Severity string // Minimum severity: error, warning, info, hint
	Watch    bool   // Re-lint on change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check SQL files for style violations",
		Long: `Analyze SQL files and report rule violations.

Directories are searched recursively for *.sql files; pass - to read
standard input. Rules can be configured in leaplint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the current directory
  leaplint lint

  # Lint specific paths
  leaplint lint models/staging query.sql

  # Output as JSON
  leaplint lint --format json

  # Disable specific rules
  leaplint lint --disable AL01

  # Run a single rule
  leaplint lint --rule LT10

  # Re-lint whenever a file changes
  leaplint lint --watch models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to report: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-lint on change")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}
	cc := NewCommandContext(cmd, opts.Format)
	run, err := newRunner(cc, &opts.RuleFlags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if isStdin(args) {
		if opts.Watch {
			return fmt.Errorf("--watch cannot be used with standard input")
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		res := run.LintSource(ctx, "stdin", string(src))
		return lintOutcome(cc.Renderer, []runner.FileResult{res}, threshold, 0)
	}

	files, err := discover(cc.Cfg, args)
	if err != nil {
		return err
	}
	start := time.Now()
	results, err := run.Lint(ctx, files)
	if err != nil {
		return err
	}
	outcome := lintOutcome(cc.Renderer, results, threshold, time.Since(start))
	if !opts.Watch {
		return outcome
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	cc.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", strings.Join(paths, ", ")))
	w := &runner.Watcher{Paths: paths, Exclude: cc.Cfg.Exclude, Logger: cc.Logger}
	return w.Watch(ctx, func(changed []string) {
		relint(ctx, cc.Renderer, run, changed, threshold)
	})
}

func relint(ctx context.Context, r *output.Renderer, run *runner.Runner, files []string, threshold core.Severity) {
	start := time.Now()
	results, err := run.Lint(ctx, files)
	if err != nil {
		r.Error(err.Error())
		return
	}
	r.Println("")
	r.Muted(fmt.Sprintf("%s change detected", time.Now().Format(time.TimeOnly)))
	_ = lintOutcome(r, results, threshold, time.Since(start))
}

// lintOutcome renders results and returns ErrIssuesFound when any file has
// reportable violations or failed.
func lintOutcome(r *output.Renderer, results []runner.FileResult, threshold core.Severity, took time.Duration) error {
	results = filterBySeverity(results, threshold)
	if renderLintResults(r, results, took) {
		return ErrIssuesFound
	}
	return nil
}

func filterBySeverity(results []runner.FileResult, threshold core.Severity) []runner.FileResult {
	out := make([]runner.FileResult, len(results))
	for i, res := range results {
		kept := res.Violations[:0:0]
		for _, v := range res.Violations {
			if v.Severity <= threshold {
				kept = append(kept, v)
			}
		}
		res.Violations = kept
		out[i] = res
	}
	return out
}

// renderLintResults writes results in the renderer's mode and reports
// whether any issue was found.
func renderLintResults(r *output.Renderer, results []runner.FileResult, took time.Duration) bool {
	doc := lintDocument(results)
	hasIssues := doc.Summary.TotalIssues > 0 || doc.Summary.Failed > 0

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(doc)
		return hasIssues
	}

	if !hasIssues {
		r.Success(fmt.Sprintf("No lint issues found in %d files", len(results)))
		return false
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	for _, res := range results {
		if res.Err == nil && len(res.Violations) == 0 {
			continue
		}
		if markdown {
			r.Println(output.FormatHeader(2, res.Path))
			r.Println("")
		} else {
			r.Println(r.Styles().FilePath.Render(res.Path))
		}
		if res.Err != nil {
			r.Printf("  %s  %s\n", r.Styles().Error.Render("failed "), res.Err)
		}
		for _, d := range res.Diagnostics() {
			writeDiagnostic(r, d, markdown)
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d issues", doc.Summary.TotalIssues)}
	if doc.Summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", doc.Summary.Errors))
	}
	if doc.Summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", doc.Summary.Warnings))
	}
	if doc.Summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", doc.Summary.Info))
	}
	if doc.Summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", doc.Summary.Hints))
	}
	summary := fmt.Sprintf("Summary: %s in %d files", strings.Join(parts, ", "), doc.Summary.FilesAnalyzed)
	if doc.Summary.Failed > 0 {
		summary += fmt.Sprintf(" (%d failed)", doc.Summary.Failed)
	}
	if took > 0 {
		summary += fmt.Sprintf(" [%s]", took.Round(time.Millisecond))
	}
	r.Println(summary)
	if doc.Summary.Fixable > 0 {
		r.Muted(fmt.Sprintf("%d issues can be fixed with 'leaplint fix'", doc.Summary.Fixable))
	}
	return true
}

func writeDiagnostic(r *output.Renderer, d lint.Diagnostic, markdown bool) {
	loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
	if markdown {
		fixable := ""
		if d.AutoFixable {
			fixable = " (fixable)"
		}
		r.Printf("- `%s` **%s** %s: %s%s\n", loc, d.RuleID, d.Severity, d.Message, fixable)
		return
	}
	msg := d.Message
	if d.AutoFixable {
		msg += r.Styles().Muted.Render(" [fixable]")
	}
	r.Printf("  %s  %s  %s  %s\n",
		r.Styles().Muted.Render(fmt.Sprintf("%-7s", loc)),
		severityStyle(r, d.Severity),
		r.Styles().RuleID.Render(d.RuleID),
		msg,
	)
}

// lintDocument converts results into the JSON output shape.
func lintDocument(results []runner.FileResult) output.LintOutput {
	doc := output.LintOutput{
		Summary: output.LintSummary{FilesAnalyzed: len(results)},
		Files:   make([]output.LintFileResult, 0, len(results)),
	}
	for _, res := range results {
		fr := output.LintFileResult{
			Path:         res.Path,
			Changed:      res.Changed,
			Passes:       res.Passes,
			LimitReached: res.LimitReached,
			Diagnostics:  make([]output.LintDiagnostic, 0, len(res.Violations)),
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
			doc.Summary.Failed++
		}
		if res.Changed {
			doc.Summary.FilesChanged++
		}
		doc.Summary.FixesApplied += res.Applied
		for _, d := range res.Diagnostics() {
			fr.Diagnostics = append(fr.Diagnostics, output.LintDiagnostic{
				RuleID:           d.RuleID,
				Severity:         d.Severity.String(),
				Message:          d.Message,
				Line:             d.Pos.Line,
				Column:           d.Pos.Column,
				EndLine:          d.EndPos.Line,
				EndColumn:        d.EndPos.Column,
				Fixable:          d.AutoFixable,
				DocumentationURL: d.DocumentationURL,
			})
			doc.Summary.TotalIssues++
			if d.AutoFixable {
				doc.Summary.Fixable++
			}
			switch d.Severity {
			case core.SeverityError:
				doc.Summary.Errors++
			case core.SeverityWarning:
				doc.Summary.Warnings++
			case core.SeverityInfo:
				doc.Summary.Info++
			case core.SeverityHint:
				doc.Summary.Hints++
			}
		}
		doc.Files = append(doc.Files, fr)
	}
	return doc
}
