// Package main provides the unitcalc binary entry point.
// unitcalc parses unit expressions, checks rule files and renders units
// as plain text or LaTeX.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/unitlib"
	"github.com/katalvlaran/unitlib/config"
	"github.com/katalvlaran/unitlib/format"
)

const appName = "unitcalc"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	ruleFiles  []string
	rules      []string
	formatKind string
	reduce     bool
	order      []string
	debug      bool
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Dimensional analysis on the command line",
		Long: `unitcalc evaluates unit expressions such as "0.2 N^2 * 0.75 m^-1"
against a table of rules ("N = 1 kg m s^-2") and prints the result as
plain text or LaTeX.

Rules come from rule files (--rules), inline definitions (--rule) and the
YAML config file (--config).`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringSliceVarP(&g.ruleFiles, "rules", "r", nil, "Rule file to load (repeatable)")
	pf.StringArrayVar(&g.rules, "rule", nil, `Inline rule, e.g. "N = kg m s^-2" (repeatable)`)
	pf.StringVarP(&g.formatKind, "format", "f", "", "Output format (plain, latex-inline, latex-frac)")
	pf.BoolVar(&g.reduce, "reduce", false, "Print a known symbol instead of base dimensions when possible")
	pf.StringSliceVar(&g.order, "order", nil, "Dimensions to print first, e.g. kg,m")
	pf.BoolVar(&g.debug, "debug", false, "Trace library internals to stderr")

	cmd.AddCommand(
		parseCmd(g),
		checkCmd(g),
		replCmd(g),
		rulesCmd(g),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, unitlib.FullName)
		},
	}
}

// logger builds the CLI logger writing to the command's stderr.
func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(g.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// config layers defaults, the config file and command line flags.
func (g *globalFlags) config(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.configPath != "" {
		fileCfg, err := config.LoadFromFile(g.configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	cfg.Merge(&config.Config{
		RuleFiles: g.ruleFiles,
		Rules:     g.rules,
		Format: config.FormatConfig{
			Kind:   g.formatKind,
			Reduce: g.reduce,
			Order:  g.order,
		},
		Debug: config.DebugConfig{Enabled: g.debug},
	})
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is a ready context plus the selected output settings.
type session struct {
	ctx  *unitlib.Context
	kind format.Kind
	opts format.Options
}

func (g *globalFlags) session(cmd *cobra.Command) (*session, error) {
	cfg, err := g.config(cmd)
	if err != nil {
		return nil, err
	}
	kind, err := cfg.FormatKind()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.FormatOptions()
	if err != nil {
		return nil, err
	}
	ctx, err := cfg.NewContext()
	if err != nil {
		return nil, err
	}
	if cfg.Debug.Enabled && cfg.Debug.Output == "" {
		ctx.SetDebugOutput(cmd.ErrOrStderr())
	}
	return &session{ctx: ctx, kind: kind, opts: opts}, nil
}

// eval parses expr and renders it with the session settings.
func (s *session) eval(expr string) (string, error) {
	u, err := s.ctx.Parse(expr)
	if err != nil {
		return "", err
	}
	return s.ctx.Sprint(&u, s.kind, s.opts)
}
