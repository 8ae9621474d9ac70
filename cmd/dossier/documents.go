package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/pkg/formatting"
)

func (c *cli) documentsCmd() *cobra.Command {
	var (
		category string
		minSize  string
		output   string
	)

	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "List the documents in the corpus",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}

			var filters documents.Filters
			if category != "" {
				cat, err := documents.ParseCategory(category)
				if err != nil {
					return err
				}
				filters.Category = &cat
			}
			if minSize != "" {
				n, err := documents.ParseSize(minSize)
				if err != nil {
					return err
				}
				filters.MinSize = &n
			}

			return c.withSession(func(s *session) error {
				all, err := s.domain.Documents.All(cmd.Context())
				if err != nil {
					return err
				}

				docs := make([]documents.Document, 0, len(all))
				for _, d := range all {
					if filters.Match(d) {
						docs = append(docs, d)
					}
				}

				if f != formatText {
					return encode(c.out, f, docs)
				}
				return c.renderDocuments(docs)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (INVOICE or ARCHIVE)")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Only list documents of at least this size (e.g. 2KB)")
	cmd.Flags().StringVarP(&output, "output", "o", string(formatText), "Output format: text, json, or yaml")

	return cmd
}

func (c *cli) renderDocuments(docs []documents.Document) error {
	st := newStyles(c.out)

	if len(docs) == 0 {
		_, err := fmt.Fprintln(c.out, st.muted.Render("No documents"))
		return err
	}

	width := 0
	for _, d := range docs {
		width = max(width, len(d.Name))
	}

	for _, d := range docs {
		category := string(d.Category)
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(c.out, "%-*s  %-8s  %s\n",
			width, d.Name, category, st.muted.Render(formatting.FormatBytes(d.SizeBytes, 1)),
		)
	}

	_, err := fmt.Fprintln(c.out, st.label.Render(fmt.Sprintf("%d documents", len(docs))))
	return err
}
