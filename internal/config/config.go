package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonview/internal/models"
	"github.com/mcncl/jsonview/internal/parser"
)

// Color modes for tree output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete configuration for jsonview
type Config struct {
	Tree    TreeConfig    `yaml:"tree"`
	Parser  ParserConfig  `yaml:"parser"`
	Stats   StatsConfig   `yaml:"stats"`
	Logging LoggingConfig `yaml:"logging"`
}

// TreeConfig controls the tree view
type TreeConfig struct {
	// ExpandDepth opens every node shallower than this depth on load.
	ExpandDepth int `yaml:"expand_depth"`
	// Indent is the number of spaces per nesting level.
	Indent int `yaml:"indent"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
	// Colors overrides the colour of a kind, keyed by kind name.
	Colors        map[string]string `yaml:"colors"`
	FallbackColor string            `yaml:"fallback_color"`
}

// ParserConfig controls input parsing
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// StatsConfig controls the statistics panel
type StatsConfig struct {
	Show bool `yaml:"show"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Tree: TreeConfig{
			ExpandDepth: 2,
			Indent:      2,
			Color:       ColorAuto,
			Colors:      map[string]string{},
		},
		Parser: ParserConfig{
			MaxDepth: parser.DefaultMaxDepth,
		},
		Stats: StatsConfig{
			Show: false,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config file")
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonview.yml", ".jsonview.yaml", "jsonview.yml", "jsonview.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks option ranges and names
func (c *Config) Validate() error {
	if c.Tree.ExpandDepth < 0 {
		return errors.Errorf("tree.expand_depth must not be negative, got %d", c.Tree.ExpandDepth)
	}
	if c.Tree.Indent < 0 {
		return errors.Errorf("tree.indent must not be negative, got %d", c.Tree.Indent)
	}
	switch c.Tree.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("tree.color must be one of auto, always, never; got %q", c.Tree.Color)
	}
	for name := range c.Tree.Colors {
		if _, ok := models.ParseKind(name); !ok {
			return errors.Errorf("tree.colors: unknown kind %q", name)
		}
	}
	if c.Parser.MaxDepth < 0 || c.Parser.MaxDepth > parser.DefaultMaxDepth {
		return errors.Errorf("parser.max_depth must be between 0 and %d, got %d",
			parser.DefaultMaxDepth, c.Parser.MaxDepth)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.Errorf("logging.format must be console or json; got %q", c.Logging.Format)
	}
	return nil
}

// CLIOverrides carries command-line values that take precedence over the
// config file. Negative numbers mean "not set".
type CLIOverrides struct {
	ExpandDepth int
	Indent      int
	NoColor     bool
	Stats       bool
	Debug       bool
}

// NoOverrides returns overrides that leave every option untouched.
func NoOverrides() CLIOverrides {
	return CLIOverrides{ExpandDepth: -1, Indent: -1}
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.ExpandDepth >= 0 {
		cfg.Tree.ExpandDepth = cli.ExpandDepth
	}
	if cli.Indent >= 0 {
		cfg.Tree.Indent = cli.Indent
	}
	if cli.NoColor {
		cfg.Tree.Color = ColorNever
	}
	if cli.Stats {
		cfg.Stats.Show = true
	}
	if cli.Debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
