package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/unitlib/diag"
	"github.com/katalvlaran/unitlib/format"
	"github.com/katalvlaran/unitlib/parser"
	"github.com/katalvlaran/unitlib/unit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	kind, err := cfg.FormatKind()
	require.NoError(t, err)
	assert.Equal(t, format.Plain, kind)
	assert.Equal(t, parser.DefaultLimits(), cfg.ParserLimits())
	assert.False(t, cfg.Debug.Enabled)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "latex frac", modify: func(c *Config) { c.Format.Kind = "latex-frac" }},
		{name: "unknown kind", modify: func(c *Config) { c.Format.Kind = "html" }, wantErr: true},
		{name: "unknown order symbol", modify: func(c *Config) { c.Format.Order = []string{"kg", "ft"} }, wantErr: true},
		{name: "repeated order symbol", modify: func(c *Config) { c.Format.Order = []string{"kg", "kg"} }, wantErr: true},
		{name: "zero depth", modify: func(c *Config) { c.Limits.MaxDepth = 0 }, wantErr: true},
		{name: "empty rule file", modify: func(c *Config) { c.RuleFiles = []string{""} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unitcalc.yaml")
	content := `
rule_files:
  - si.rules
rules:
  - "Hz = s^-1"
format:
  kind: latex-inline
  reduce: true
  order: [kg, m]
limits:
  max_depth: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{filepath.Join(dir, "si.rules")}, cfg.RuleFiles)
	assert.Equal(t, []string{"Hz = s^-1"}, cfg.Rules)
	assert.Equal(t, 8, cfg.Limits.MaxDepth)
	assert.Equal(t, parser.DefaultMaxItemLen, cfg.Limits.MaxItemLen, "unset fields keep defaults")

	opts, err := cfg.FormatOptions()
	require.NoError(t, err)
	assert.True(t, opts.Reduce)
	assert.Equal(t, []unit.Dimension{unit.Kilogram, unit.Meter}, opts.Order)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: {"), 0o600))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Rules = []string{"N = kg m s^-2"}
	cfg.Format.Kind = "latex-frac"

	require.NoError(t, cfg.SaveToFile(path))
	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Rules = []string{"A = m"}

	base.Merge(&Config{
		Rules:  []string{"B = s"},
		Format: FormatConfig{Kind: "frac", Reduce: true},
		Debug:  DebugConfig{Enabled: true},
		Limits: LimitsConfig{MaxItemLen: 2048},
	})
	assert.Equal(t, []string{"A = m", "B = s"}, base.Rules)
	assert.Equal(t, "frac", base.Format.Kind)
	assert.True(t, base.Format.Reduce)
	assert.True(t, base.Debug.Enabled)
	assert.Equal(t, 2048, base.Limits.MaxItemLen)
	assert.Equal(t, parser.DefaultMaxDepth, base.Limits.MaxDepth)

	base.Merge(nil)
	assert.Len(t, base.Rules, 2)
}

func TestNewContext(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "si.rules")
	require.NoError(t, os.WriteFile(rulesPath, []byte("N = kg m s^-2\n"), 0o600))

	cfg := DefaultConfig()
	cfg.RuleFiles = []string{rulesPath}
	cfg.Rules = []string{"J = N m"}

	ctx, err := cfg.NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	u, err := ctx.Parse("J")
	require.NoError(t, err)
	assert.Equal(t, 2, u.Exps[unit.Meter])

	cfg.Rules = []string{"J = nope"}
	_, err = cfg.NewContext()
	assert.ErrorIs(t, err, diag.ErrUnknownSymbol)

	cfg.Rules = nil
	cfg.RuleFiles = []string{filepath.Join(dir, "missing.rules")}
	_, err = cfg.NewContext()
	assert.ErrorIs(t, err, diag.ErrInvalidArgument)
}
