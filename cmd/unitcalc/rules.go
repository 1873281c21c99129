package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/unitlib/format"
)

func rulesCmd(g *globalFlags) *cobra.Command {
	var prefixes bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule table in resolution order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			defer s.ctx.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if prefixes {
				fmt.Fprintln(w, "PREFIX\tVALUE")
				for _, p := range s.ctx.Table().Prefixes() {
					fmt.Fprintf(w, "%c\t%g\n", p.Symbol, p.Value)
				}
				return w.Flush()
			}

			fmt.Fprintln(w, "SYMBOL\tTIER\tFORCED\tUNIT")
			for _, r := range s.ctx.Rules() {
				u := r.Unit
				text, err := s.ctx.Sprint(&u, format.Plain, format.Options{Order: s.opts.Order})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", r.Symbol, r.Tier, r.Force, text)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&prefixes, "prefixes", false, "List SI prefixes instead of rules")
	return cmd
}
