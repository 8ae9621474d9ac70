// Package summary turns an analysis report into a presentation card shared
// by the dashboard and the CLI. It carries text only; each surface applies
// its own styling.
package summary

import (
	"fmt"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/pkg/formatting"
)

// Tone hints at how a surface should color a card, box, or badge.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneCritical Tone = "critical"
	ToneInsight  Tone = "insight"
	ToneLocation Tone = "location"
)

// Box is one labeled metric.
type Box struct {
	Label string
	Value string
	Tone  Tone
}

// Card is the rendered form of a report.
type Card struct {
	Scenario analysis.Scenario
	Title    string
	Badge    string
	Tone     Tone
	Summary  string
	Boxes    []Box
	Pipeline string
	Steps    []analysis.Step
}

// Prompts are the example queries offered when no scenario matched.
var Prompts = []string{
	"Extract invoice total",
	"Extract entities",
	"Check compliance risks",
}

// FromReport builds the card for r.
func FromReport(r *analysis.Report) Card {
	c := Card{
		Scenario: r.Scenario,
		Tone:     ToneNeutral,
		Steps:    r.Timeline,
	}

	switch r.Scenario {
	case analysis.Financial:
		invoices := intMetric(r.Metrics, "invoices_processed")
		c.Title = "Financial Analysis"
		c.Badge = fmt.Sprintf("Batch: %d Docs", r.TotalCount)
		c.Tone = TonePositive
		c.Summary = fmt.Sprintf(
			"Extracted data from %d commercial invoices. Aggregated cross-border payments for Q1 2026.",
			invoices,
		)
		c.Boxes = []Box{
			{"Invoices Processed", fmt.Sprint(invoices), ToneNeutral},
			{"Total Value", formatting.FormatUSD(intMetric(r.Metrics, "total_value")) + ".00", TonePositive},
			{"Top Vendor", stringMetric(r.Metrics, "top_vendor"), ToneNeutral},
		}
		c.Pipeline = "Finance Routing"
	case analysis.Compliance:
		violations := intMetric(r.Metrics, "violations")
		c.Title = "Compliance Audit"
		c.Badge = "CRITICAL RISKS"
		c.Tone = ToneCritical
		c.Summary = fmt.Sprintf(
			"Scanned %d documents. Found %d archived logs (2020-2021) violating the 4-year retention policy.",
			r.TotalCount, violations,
		)
		c.Boxes = []Box{
			{"Docs Scanned", fmt.Sprint(intMetric(r.Metrics, "docs_scanned")), ToneNeutral},
			{"Violations", fmt.Sprintf("%d FILES", violations), ToneCritical},
			{"Action", stringMetric(r.Metrics, "action"), ToneNeutral},
		}
		c.Pipeline = "Regulatory Audit"
	case analysis.Entity:
		c.Title = "Entity Extraction (NER)"
		c.Badge = "NLP Analysis"
		c.Tone = ToneInsight
		c.Summary = fmt.Sprintf(
			"Semantic analysis of %d documents. Extracted key organizations, locations, and batch identifiers using %s.",
			r.TotalCount, stringMetric(r.Metrics, "model"),
		)
		c.Boxes = []Box{
			{"Organization", stringMetric(r.Metrics, "organization"), ToneInsight},
			{"Location", stringMetric(r.Metrics, "location"), ToneLocation},
			{"Batch ID", stringMetric(r.Metrics, "batch_id"), ToneNeutral},
		}
		c.Pipeline = "Knowledge Graph"
	default:
		c.Title = "Batch Loaded"
		c.Summary = fmt.Sprintf("System has indexed %d documents.", r.TotalCount)
	}

	return c
}

// StepTone maps a timeline status to a tone.
func StepTone(s analysis.Status) Tone {
	switch s {
	case analysis.StatusPass:
		return TonePositive
	case analysis.StatusFlag:
		return ToneCritical
	case analysis.StatusReview:
		return ToneInsight
	default:
		return ToneNeutral
	}
}

func intMetric(m map[string]any, key string) int64 {
	switch v := m[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func stringMetric(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
