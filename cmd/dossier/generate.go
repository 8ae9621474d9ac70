package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/corpus"
)

func (c *cli) generateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic corpus when storage is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(s *session) error {
				ctx := cmd.Context()

				var (
					result corpus.Result
					err    error
				)
				if force {
					result, err = s.domain.Corpus.Generate(ctx)
				} else {
					result, err = s.domain.Corpus.Ensure(ctx)
				}
				if err != nil {
					return err
				}

				stats, err := s.domain.Corpus.Stats(ctx)
				if err != nil {
					return err
				}

				st := newStyles(c.out)
				if result.Generated {
					fmt.Fprintln(c.out, st.title.Render(fmt.Sprintf("Generated %d documents", result.Count)))
				} else {
					fmt.Fprintln(c.out, st.muted.Render("Corpus already populated; nothing generated"))
				}
				fmt.Fprintf(c.out, "%s %d  %s %d  %s %d\n",
					st.label.Render("total"), stats.Total,
					st.label.Render("invoices"), stats.Invoices,
					st.label.Render("archives"), stats.Archives,
				)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Regenerate the batch even when documents exist")

	return cmd
}
