package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Include descriptions and rationale in listings
	Format  string // Output format
}

// RulesJSONOutput is the JSON document of a rule listing.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count int             `json:"count"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List the built-in lint rules, or document one rule in full.

Rules are grouped by category (aliasing, layout). The Fix column tells
whether 'leaplint fix' can correct a rule's violations.`,
		Example: `  # List all rules
  leaplint rules

  # Document a single rule
  leaplint rules LT10

  # Only layout rules, with descriptions
  leaplint rules --group layout --verbose

  # Machine-readable listing
  leaplint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd, opts.Format).Renderer
			if len(args) == 1 {
				return showRule(r, args[0])
			}
			return listRules(r, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Only list rules of this group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Include descriptions and rationale")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// selectRules returns the registered rules of group (all when empty),
// ordered by group then ID.
func selectRules(group string) ([]core.RuleInfo, error) {
	rules := lint.AllRules()
	if group != "" {
		rules = slices.DeleteFunc(rules, func(ri core.RuleInfo) bool {
			return !strings.EqualFold(ri.Group, group)
		})
		if len(rules) == 0 {
			return nil, fmt.Errorf("no rules in group %q", group)
		}
	}
	slices.SortFunc(rules, func(a, b core.RuleInfo) int {
		return cmpJoin(strings.Compare(a.Group, b.Group), strings.Compare(a.ID, b.ID))
	})
	return rules, nil
}

func cmpJoin(first, second int) int {
	if first != 0 {
		return first
	}
	return second
}

func listRules(r *output.Renderer, opts *RulesOptions) error {
	rules, err := selectRules(opts.Group)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules, opts.Verbose)
	default:
		listRulesText(r, rules, opts.Verbose)
	}
	return nil
}

func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	return r.JSON(RulesJSONOutput{Rules: rules, Count: len(rules)})
}

func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	title := cases.Title(language.English)
	r.Header(1, "Lint Rules")

	group := ""
	for _, rule := range rules {
		if rule.Group != group {
			if group != "" {
				r.Println("")
			}
			group = rule.Group
			r.Header(2, title.String(group))
		}
		r.Printf("- **%s** - %s (`%s`, fix: %s)\n", rule.ID, rule.Name, rule.DefaultSeverity, fixLabel(rule))
		if !verbose {
			continue
		}
		r.Println("  " + rule.Description)
		if rule.Rationale != "" {
			r.Println("  > " + truncateOneLine(rule.Rationale, 200))
		}
	}
	r.Println("")
}

func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	styles := r.Styles()
	title := cases.Title(language.English)

	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	rows := make([][]string, len(rules))
	for i, rule := range rules {
		rows[i] = []string{
			rule.ID,
			rule.Name,
			title.String(rule.Group),
			getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
			fixLabel(rule),
		}
	}
	r.Table([]string{"ID", "Name", "Group", "Severity", "Fix"}, rows)

	if verbose {
		r.Println("")
		for _, rule := range rules {
			r.Printf("%s  %s\n", styles.RuleID.Render(rule.ID), rule.Description)
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("      " + truncateOneLine(rule.Rationale, 80)))
			}
		}
	}

	r.Println("")
	r.Muted("Use 'leaplint rules <rule-id>' for detailed documentation")
}

// docSection is one titled block of a rule page.
type docSection struct {
	title string
	body  string
	code  bool
}

func ruleSections(rule core.RuleInfo) []docSection {
	sections := []docSection{
		{title: "Why This Matters", body: rule.Rationale},
		{title: "Bad Example", body: rule.BadExample, code: true},
		{title: "Good Example", body: rule.GoodExample, code: true},
		{title: "How to Fix", body: rule.Fix},
	}
	if len(rule.ConfigKeys) > 0 {
		sections = append(sections, docSection{
			title: "Configuration",
			body:  "Options: " + strings.Join(rule.ConfigKeys, ", "),
		})
	}
	return slices.DeleteFunc(sections, func(s docSection) bool { return s.body == "" })
}

func showRule(r *output.Renderer, ruleID string) error {
	rule, ok := lint.GetRuleByID(strings.ToUpper(ruleID))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := lint.GetRuleInfo(rule)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		showRuleMarkdown(r, info)
	default:
		showRuleText(r, info)
	}
	return nil
}

func showRuleMarkdown(r *output.Renderer, rule core.RuleInfo) {
	r.Header(1, rule.ID+" - "+rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s` | **Fix:** %s\n\n", rule.Group, rule.DefaultSeverity, fixLabel(rule))
	r.Println(rule.Description)
	r.Println("")

	for _, s := range ruleSections(rule) {
		r.Header(2, s.title)
		if s.code {
			r.Println(output.FormatCodeBlock("sql", s.body))
		} else {
			r.Println(s.body)
		}
		r.Println("")
	}
	r.Printf("[Documentation](%s)\n", lint.BuildDocURL(rule.ID))
}

func showRuleText(r *output.Renderer, rule core.RuleInfo) {
	styles := r.Styles()

	r.Println(styles.Header1.Render(rule.ID + " - " + rule.Name))
	r.Println("")
	for _, kv := range [][2]string{
		{"Group", rule.Group},
		{"Severity", getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String())},
		{"Fix", fixLabel(rule)},
	} {
		r.Printf("  %s: %s\n", styles.Bold.Render(kv[0]), kv[1])
	}
	r.Println("")
	r.Println("  " + rule.Description)
	r.Println("")

	for _, s := range ruleSections(rule) {
		r.Println(styles.Bold.Render(s.title))
		for _, line := range strings.Split(s.body, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
	}
	r.Muted(lint.BuildDocURL(rule.ID))
}

func fixLabel(rule core.RuleInfo) string {
	if rule.FixCompatible {
		return "auto"
	}
	return "manual"
}

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// truncateOneLine collapses whitespace and cuts s to maxLen bytes.
func truncateOneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
