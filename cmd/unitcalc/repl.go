package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const replHelp = `Enter an expression to evaluate it, or "[!]symbol = expression" to
define a rule. Commands: :rules, :reset, :help, :quit`

func replCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression and rule shell",
		Long:  replHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			defer s.ctx.Close()

			in := cmd.InOrStdin()
			return s.repl(in, cmd.OutOrStdout(), interactive(in))
		},
	}
}

// interactive reports whether r is a terminal, so prompts are only shown
// to humans.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *session) repl(in io.Reader, out io.Writer, prompt bool) error {
	sc := bufio.NewScanner(in)
	if prompt {
		fmt.Fprintln(out, replHelp)
	}
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == ":quit" || line == ":q":
			return nil
		case line == ":help":
			fmt.Fprintln(out, replHelp)
		case line == ":reset":
			if err := s.ctx.ResetRules(); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case line == ":rules":
			for _, r := range s.ctx.Rules() {
				fmt.Fprintln(out, r.Symbol)
			}
		case strings.Contains(line, "="):
			r, err := s.ctx.ParseRule(line)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", s.ctx.ErrorMessage())
				continue
			}
			u := r.Unit
			text, err := s.ctx.Sprint(&u, s.kind, s.opts)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "%s = %s\n", r.Symbol, text)
		default:
			text, err := s.eval(line)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", s.ctx.ErrorMessage())
				continue
			}
			fmt.Fprintln(out, text)
		}
	}
}
