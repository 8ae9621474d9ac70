// Package runs records finished analysis reports in PostgreSQL and serves
// them back as run history. The analysis pipeline only writes here.
package runs

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/dossier/internal/analysis"
)

// Run is a recorded analysis report with the query that produced it.
type Run struct {
	ID         uuid.UUID         `json:"id"`
	Query      string            `json:"query"`
	Scenario   analysis.Scenario `json:"scenario"`
	ModelName  string            `json:"model_name"`
	OCREngine  string            `json:"ocr_engine"`
	TotalCount int               `json:"total_count"`
	Report     analysis.Report   `json:"report"`
	CreatedAt  time.Time         `json:"created_at"`
}
