package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/api"
	"github.com/JaimeStill/dossier/pkg/openapi"
)

func (c *cli) openapiCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print or write the API's OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(func(s *session) error {
				spec := api.Spec(s.cfg, s.runtime, s.domain)

				if file != "" {
					if err := openapi.WriteJSON(spec, file); err != nil {
						return err
					}
					st := newStyles(c.out)
					_, err := fmt.Fprintf(c.out, "%s %s\n", st.label.Render("Wrote"), file)
					return err
				}

				data, err := openapi.MarshalJSON(spec)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, string(data))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write the document to this path instead of stdout")

	return cmd
}
