// Package config provides YAML configuration for the unitcalc command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/unitlib"
	"github.com/katalvlaran/unitlib/format"
	"github.com/katalvlaran/unitlib/parser"
	"github.com/katalvlaran/unitlib/unit"
)

// Config is the complete unitcalc configuration.
type Config struct {
	// RuleFiles are loaded in order before any inline rule.
	RuleFiles []string `yaml:"rule_files,omitempty"`
	// Rules are inline "[!]symbol = expression" definitions.
	Rules  []string     `yaml:"rules,omitempty"`
	Format FormatConfig `yaml:"format"`
	Debug  DebugConfig  `yaml:"debug"`
	Limits LimitsConfig `yaml:"limits"`
}

// FormatConfig selects the default output.
type FormatConfig struct {
	// Kind is "plain", "latex-inline" or "latex-frac".
	Kind string `yaml:"kind"`
	// Reduce collapses units to a known symbol when possible.
	Reduce bool `yaml:"reduce"`
	// Order lists dimension symbols to print first, e.g. [kg, m].
	Order []string `yaml:"order,omitempty"`
}

// DebugConfig controls library tracing.
type DebugConfig struct {
	Enabled bool `yaml:"enabled"`
	// Output is a file path; empty means stderr.
	Output string `yaml:"output,omitempty"`
}

// LimitsConfig mirrors parser.Limits.
type LimitsConfig struct {
	MaxDepth     int `yaml:"max_depth"`
	MaxSymbolLen int `yaml:"max_symbol_len"`
	MaxItemLen   int `yaml:"max_item_len"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	l := parser.DefaultLimits()
	return &Config{
		Format: FormatConfig{Kind: format.Plain.String()},
		Limits: LimitsConfig{
			MaxDepth:     l.MaxDepth,
			MaxSymbolLen: l.MaxSymbolLen,
			MaxItemLen:   l.MaxItemLen,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.FormatKind(); err != nil {
		return fmt.Errorf("format.kind: %w", err)
	}
	if _, err := c.FormatOptions(); err != nil {
		return fmt.Errorf("format.order: %w", err)
	}
	if err := c.ParserLimits().Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	for i, f := range c.RuleFiles {
		if f == "" {
			return fmt.Errorf("rule_files[%d] is empty", i)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Relative rule file
// paths are resolved against the directory of path.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	dir := filepath.Dir(path)
	for i, f := range config.RuleFiles {
		if f != "" && !filepath.IsAbs(f) {
			config.RuleFiles[i] = filepath.Join(dir, f)
		}
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values). Rule files and inline rules are appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	c.RuleFiles = append(c.RuleFiles, other.RuleFiles...)
	c.Rules = append(c.Rules, other.Rules...)

	// Format
	if other.Format.Kind != "" {
		c.Format.Kind = other.Format.Kind
	}
	if other.Format.Reduce {
		c.Format.Reduce = true
	}
	if len(other.Format.Order) > 0 {
		c.Format.Order = other.Format.Order
	}

	// Debug
	if other.Debug.Enabled {
		c.Debug.Enabled = true
	}
	if other.Debug.Output != "" {
		c.Debug.Output = other.Debug.Output
	}

	// Limits
	if other.Limits.MaxDepth != 0 {
		c.Limits.MaxDepth = other.Limits.MaxDepth
	}
	if other.Limits.MaxSymbolLen != 0 {
		c.Limits.MaxSymbolLen = other.Limits.MaxSymbolLen
	}
	if other.Limits.MaxItemLen != 0 {
		c.Limits.MaxItemLen = other.Limits.MaxItemLen
	}
}

// FormatKind parses Format.Kind.
func (c *Config) FormatKind() (format.Kind, error) {
	return format.ParseKind(c.Format.Kind)
}

// FormatOptions builds format.Options from Format.
func (c *Config) FormatOptions() (format.Options, error) {
	opts := format.Options{Reduce: c.Format.Reduce}
	for _, sym := range c.Format.Order {
		d, ok := unit.DimensionBySymbol(sym)
		if !ok {
			return format.Options{}, fmt.Errorf("unknown dimension symbol %q", sym)
		}
		opts.Order = append(opts.Order, d)
	}
	if err := opts.Validate(); err != nil {
		return format.Options{}, err
	}
	return opts, nil
}

// ParserLimits converts Limits.
func (c *Config) ParserLimits() parser.Limits {
	return parser.Limits{
		MaxDepth:     c.Limits.MaxDepth,
		MaxSymbolLen: c.Limits.MaxSymbolLen,
		MaxItemLen:   c.Limits.MaxItemLen,
	}
}

// ContextOptions returns the unitlib options described by c.
func (c *Config) ContextOptions() []unitlib.Option {
	opts := []unitlib.Option{
		unitlib.WithDebug(c.Debug.Enabled),
		unitlib.WithLimits(c.ParserLimits()),
	}
	if c.Debug.Output != "" {
		opts = append(opts, unitlib.WithDebugFile(c.Debug.Output))
	}
	return opts
}

// NewContext builds a Context from c and loads every rule file, then every
// inline rule.
func (c *Config) NewContext() (*unitlib.Context, error) {
	ctx, err := unitlib.New(c.ContextOptions()...)
	if err != nil {
		return nil, err
	}
	for _, f := range c.RuleFiles {
		if _, err := ctx.LoadRulesFile(f); err != nil {
			_ = ctx.Close()
			return nil, fmt.Errorf("rule file %s: %w", f, err)
		}
	}
	for _, r := range c.Rules {
		if _, err := ctx.ParseRule(r); err != nil {
			_ = ctx.Close()
			return nil, fmt.Errorf("rule %q: %w", r, err)
		}
	}
	return ctx, nil
}
