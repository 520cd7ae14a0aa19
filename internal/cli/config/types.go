// Package config loads leaplint settings.
//
// Settings are layered, lowest precedence first: built-in defaults, the
// leaplint.yaml project file, LEAPLINT_ environment variables and command
// line flags. The lint section shares its type with pkg/core so library
// users can build the same configuration without the CLI.
package config

import "github.com/leapstack-labs/leaplint/pkg/core"

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat string      `koanf:"output" yaml:"output,omitempty"`
	Workers      int         `koanf:"workers" yaml:"workers,omitempty"`
	Exclude      []string    `koanf:"exclude" yaml:"exclude,omitempty"`
	Lint         *LintConfig `koanf:"lint" yaml:"lint,omitempty"`
	Fix          FixConfig   `koanf:"fix" yaml:"fix"`

	// Set by the loader.
	ProjectRoot string `koanf:"-" yaml:"-"`
	ConfigFile  string `koanf:"-" yaml:"-"`
}

// FixConfig holds settings of the fix command.
type FixConfig struct {
	RunawayLimit int `koanf:"runaway_limit" yaml:"runaway_limit"`
}

// Default configuration values.
const (
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultRunawayLimit = 10
	EnvPrefix           = "LEAPLINT_"
)

// ConfigFileNames are the project file names, in lookup order.
var ConfigFileNames = []string{"leaplint.yaml", "leaplint.yml", ".leaplint.yaml"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Lint:         &LintConfig{},
		Fix:          FixConfig{RunawayLimit: DefaultRunawayLimit},
	}
}
