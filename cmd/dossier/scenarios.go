package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/analysis"
)

func (c *cli) scenariosCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Show the keywords that select each report scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}

			rules := analysis.Scenarios()
			if f != formatText {
				return encode(c.out, f, rules)
			}

			st := newStyles(c.out)
			for _, r := range rules {
				keywords := strings.Join(r.Keywords, ", ")
				if keywords == "" {
					keywords = "(no keyword matched)"
				}
				fmt.Fprintf(c.out, "%s  %s\n", st.title.Render(fmt.Sprintf("%-10s", r.Scenario)), keywords)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(formatText), "Output format: text, json, or yaml")

	return cmd
}
