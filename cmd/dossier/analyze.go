package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/summary"
)

func (c *cli) analyzeCmd() *cobra.Command {
	var (
		model  string
		ocr    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "analyze [query...]",
		Short: "Run the analysis pipeline for a free-text query",
		Example: `  dossier analyze extract invoice total
  dossier analyze "check compliance risks" --model "Mistral 7B" -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}

			req := analysis.Request{
				Query: strings.Join(args, " "),
				Model: model,
				OCR:   ocr,
			}

			return c.withSession(func(s *session) error {
				report, err := s.domain.Analysis.Run(cmd.Context(), req)
				if err != nil {
					return err
				}

				if f != formatText {
					return encode(c.out, f, report)
				}
				return c.renderReport(report)
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model selector (defaults to the first configured model)")
	cmd.Flags().StringVar(&ocr, "ocr", "", "OCR engine selector (defaults to the first configured engine)")
	cmd.Flags().StringVarP(&output, "output", "o", string(formatText), "Output format: text, json, or yaml")

	return cmd
}

func (c *cli) renderReport(r *analysis.Report) error {
	st := newStyles(c.out)
	card := summary.FromReport(r)

	var b strings.Builder

	header := st.toned(st.title, card.Tone).Render(card.Title)
	if card.Badge != "" {
		header += "  " + st.toned(st.muted, card.Tone).Render("["+card.Badge+"]")
	}
	b.WriteString(header + "\n")
	b.WriteString(card.Summary + "\n")

	if len(card.Boxes) > 0 {
		boxes := make([]string, 0, len(card.Boxes))
		for _, box := range card.Boxes {
			boxes = append(boxes, st.box.Render(
				st.label.Render(strings.ToUpper(box.Label))+"\n"+
					st.toned(st.value, box.Tone).Render(box.Value),
			))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n")
	}

	if len(card.Steps) > 0 {
		b.WriteString("\n" + st.header.Render("Pipeline: "+card.Pipeline) + "\n")
		for i, step := range card.Steps {
			status := st.value.Foreground(st.stepColor(summary.StepTone(step.Status))).
				Render(strings.ToUpper(string(step.Status)))
			fmt.Fprintf(&b, "  Step %d  %-22s %-6s  %s\n", i+1, step.Name, status, st.muted.Render(step.Detail))
		}
	}

	if r.Scenario == analysis.Default {
		b.WriteString("\n" + st.muted.Render("Try: "+strings.Join(summary.Prompts, " | ")) + "\n")
	}

	if r.Selectors != (analysis.Selectors{}) {
		fmt.Fprintf(&b, "\n%s %s  %s %s\n",
			st.label.Render("model"), r.Selectors.Model,
			st.label.Render("ocr"), r.Selectors.OCR,
		)
	}

	_, err := fmt.Fprint(c.out, b.String())
	return err
}
