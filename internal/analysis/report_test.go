package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/documents"
)

func corpusOf(names ...string) []documents.Document {
	docs := make([]documents.Document, len(names))
	for i, n := range names {
		docs[i] = documents.New(n, 0, "application/pdf", time.Time{})
	}
	return docs
}

func TestRouteAndViolations(t *testing.T) {
	tests := []struct {
		name       string
		docs       []documents.Document
		queues     analysis.Queues
		violations int
	}{
		{"empty", nil, analysis.Queues{}, 0},
		{
			"all categorized",
			corpusOf("Invoice_0.pdf", "Invoice_1.pdf", "Compliance_ARCHIVE_2.pdf"),
			analysis.Queues{Finance: 2, Regulatory: 1},
			1,
		},
		{
			"uncategorized excluded",
			corpusOf("Invoice_0.pdf", "readme.txt", "Compliance_ARCHIVE_2.pdf", "scan.pdf"),
			analysis.Queues{Finance: 1, Regulatory: 1},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := analysis.Route(tt.docs)
			assert.Equal(t, tt.queues, q)
			assert.Equal(t, tt.violations, analysis.CountViolations(tt.docs))
			assert.LessOrEqual(t, q.Finance+q.Regulatory, len(tt.docs))
			assert.Equal(t, q.Regulatory, analysis.CountViolations(tt.docs))
		})
	}
}

func TestAssembleFinancial(t *testing.T) {
	r := analysis.Assemble(analysis.Input{
		Scenario:  analysis.Financial,
		Total:     52,
		Queues:    analysis.Queues{Finance: 42, Regulatory: 10},
		Selectors: analysis.Selectors{Model: "Mistral 7B", OCR: "Tesseract"},
	})

	assert.Equal(t, analysis.Financial, r.Scenario)
	assert.Equal(t, 52, r.TotalCount)
	assert.Equal(t, 42, r.Metrics["invoices_processed"])
	assert.Equal(t, int64(42)*analysis.UnitInvoiceValue, r.Metrics["total_value"])
	assert.Equal(t, int64(1029000), r.Metrics["total_value"])
	assert.Equal(t, "Thermo Fisher", r.Metrics["top_vendor"])

	require.Len(t, r.Timeline, 3)
	assert.Equal(t, analysis.Step{Name: "Blob Splitter", Status: analysis.StatusPass, Detail: "42 INVOICES"}, r.Timeline[0])
	assert.Equal(t, "ERP Sync", r.Timeline[2].Name)
	assert.Equal(t, analysis.Selectors{Model: "Mistral 7B", OCR: "Tesseract"}, r.Selectors)
}

func TestAssembleCompliance(t *testing.T) {
	r := analysis.Assemble(analysis.Input{
		Scenario:   analysis.Compliance,
		Total:      52,
		Queues:     analysis.Queues{Finance: 42, Regulatory: 10},
		Violations: 10,
	})

	assert.Equal(t, map[string]any{
		"docs_scanned": 52,
		"violations":   10,
		"action":       "FLAG FOR REVIEW",
	}, r.Metrics)
	assert.Equal(t, []analysis.Step{
		{Name: "Retention Check", Status: analysis.StatusFlag, Detail: "10 FAILURES"},
		{Name: "Cold Chain Analysis", Status: analysis.StatusReview, Detail: "REVIEW LOGS"},
	}, r.Timeline)
}

func TestAssembleEntity(t *testing.T) {
	r := analysis.Assemble(analysis.Input{
		Scenario:  analysis.Entity,
		Total:     52,
		Selectors: analysis.Selectors{Model: "Gemini 1.5 Flash", OCR: "PaddleOCR"},
	})

	assert.Equal(t, "Thermo Fisher", r.Metrics["organization"])
	assert.Equal(t, "Kalamazoo, MI", r.Metrics["location"])
	assert.Equal(t, "LOT-PX-99", r.Metrics["batch_id"])
	assert.Equal(t, 52, r.Metrics["total_count"])
	assert.Equal(t, "Gemini 1.5 Flash", r.Metrics["model"])

	require.Len(t, r.Timeline, 3)
	assert.Equal(t, analysis.Step{Name: "Entity Mapping", Status: analysis.StatusReview, Detail: "LINKED"}, r.Timeline[2])
}

func TestAssembleDefault(t *testing.T) {
	r := analysis.Assemble(analysis.Input{
		Scenario:   analysis.Default,
		Total:      52,
		Queues:     analysis.Queues{Finance: 42, Regulatory: 10},
		Violations: 10,
		Selectors:  analysis.Selectors{Model: "Mistral 7B", OCR: "Tesseract"},
	})

	assert.Equal(t, 52, r.TotalCount)
	assert.Nil(t, r.Metrics)
	assert.Nil(t, r.Timeline)
	assert.Zero(t, r.Selectors)
}

func TestAssembleDeterministic(t *testing.T) {
	in := analysis.Input{
		Scenario:   analysis.Compliance,
		Total:      12,
		Queues:     analysis.Queues{Finance: 9, Regulatory: 3},
		Violations: 3,
	}
	assert.Equal(t, analysis.Assemble(in), analysis.Assemble(in))
}
