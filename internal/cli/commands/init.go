package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/cli/config"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leaplint.yaml configuration file",
		Long: `Create a leaplint.yaml configuration file with the default settings.

The file lists every built-in rule with its default severity and options,
ready to be tuned.`,
		Example: `  # Initialize in current directory
  leaplint init

  # Initialize in another directory
  leaplint init ./warehouse

  # Force overwrite existing config
  leaplint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cc := NewCommandContext(cmd, "")

			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			cc.Renderer.Success("Created " + path)
			cc.Renderer.Println("")
			cc.Renderer.Println("Next steps:")
			cc.Renderer.Println("  1. Adjust rule settings in leaplint.yaml")
			cc.Renderer.Println("  2. Run 'leaplint lint' to check your SQL")
			cc.Renderer.Println("  3. Run 'leaplint fix' to apply automatic fixes")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// defaultConfigYAML renders the default configuration with the severity of
// every registered rule spelled out.
func defaultConfigYAML() ([]byte, error) {
	cfg := config.Default()
	cfg.Exclude = []string{}
	cfg.Lint = &core.LintConfig{
		Severity: make(map[string]string),
		Rules:    make(map[string]core.RuleOptions),
	}
	for _, info := range lint.AllRules() {
		cfg.Lint.Severity[info.ID] = info.DefaultSeverity.String()
	}
	cfg.Lint.Rules["AL01"] = core.RuleOptions{"aliasing": "explicit"}

	var buf bytes.Buffer
	buf.WriteString("# leaplint configuration\n")
	buf.WriteString("# Environment variables (LEAPLINT_*) and flags override these values.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
