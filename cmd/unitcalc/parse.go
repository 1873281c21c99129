package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func parseCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse EXPRESSION...",
		Short: "Evaluate unit expressions and print the results",
		Example: `  unitcalc parse "2 Cd 7 s^-1"
  unitcalc --rule "N = kg m s^-2" --format latex-frac parse "0.5 N / m^2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			defer s.ctx.Close()

			for _, expr := range args {
				out, err := s.eval(expr)
				if err != nil {
					return fmt.Errorf("%q: %w", expr, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}
