package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/internal/runner"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register built-in rules
)

// ErrIssuesFound is returned when lint issues remain, so the process exits
// non-zero.
var ErrIssuesFound = errors.New("lint issues found")

// CommandContext holds common dependencies for command execution.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
// A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	if format != "" {
		mode = output.Mode(format)
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// RuleFlags are the rule selection flags shared by lint and fix.
type RuleFlags struct {
	Format  string   // Output format
	Disable []string // Rule IDs to disable
	Rules   []string // Run only specific rules
}

func (f *RuleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&f.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&f.Rules, "rule", nil, "Run only specific rules")
}

func (f *RuleFlags) validate() error {
	if _, ok := output.ParseMode(f.Format); !ok {
		return fmt.Errorf("unknown format %q (want one of %s)", f.Format, strings.Join(output.Modes, ", "))
	}
	for _, id := range append(append([]string{}, f.Disable...), f.Rules...) {
		if _, ok := lint.GetRuleByID(strings.TrimSpace(id)); !ok {
			return fmt.Errorf("unknown rule %q", id)
		}
	}
	return nil
}

// buildLintConfig merges the project lint section with command line flags.
// Flags take precedence.
func buildLintConfig(cfg *config.Config, flags *RuleFlags) (*lint.Config, error) {
	lintCfg, err := lint.FromLintConfig(cfg.Lint)
	if err != nil {
		return nil, err
	}
	for _, id := range flags.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}
	if len(flags.Rules) > 0 {
		only := make([]string, 0, len(flags.Rules))
		for _, id := range flags.Rules {
			only = append(only, strings.TrimSpace(id))
		}
		lintCfg.Only(only...)
	}
	return lintCfg, nil
}

// newRunner builds the file runner for a command.
func newRunner(cc *CommandContext, flags *RuleFlags) (*runner.Runner, error) {
	if err := flags.validate(); err != nil {
		return nil, err
	}
	lintCfg, err := buildLintConfig(cc.Cfg, flags)
	if err != nil {
		return nil, err
	}
	analyzer := lint.NewAnalyzer(lintCfg, cc.Logger, cc.Cfg.Workers)
	return runner.New(analyzer, cc.Logger, runner.Options{
		Workers:      cc.Cfg.Workers,
		RunawayLimit: cc.Cfg.Fix.RunawayLimit,
	}), nil
}

// discover resolves the command arguments into SQL files. No arguments
// means the current directory.
func discover(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := runner.Discover(args, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isStdin reports whether args select standard input.
func isStdin(args []string) bool {
	return len(args) == 1 && args[0] == "-"
}

func severityStyle(r *output.Renderer, sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return r.Styles().Error.Render("error  ")
	case core.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case core.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case core.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
