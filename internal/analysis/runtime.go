package analysis

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/dossier/internal/corpus"
	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/internal/metrics"
)

// Corpus materializes the corpus when it is empty.
type Corpus interface {
	Ensure(ctx context.Context) (corpus.Result, error)
}

// Source lists every document in the corpus.
type Source interface {
	All(ctx context.Context) ([]documents.Document, error)
}

// Recorder persists a finished report.
type Recorder interface {
	Record(ctx context.Context, query string, report *Report) error
}

// Runtime bundles the dependencies the pipeline requires.
// Metrics and Recorder are optional.
type Runtime struct {
	Config    Config
	Corpus    Corpus
	Documents Source
	Metrics   *metrics.Metrics
	Recorder  Recorder
	Logger    *slog.Logger
}
