package api

import (
	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/corpus"
	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/internal/runs"
	"github.com/JaimeStill/dossier/pkg/storage"
)

// Domain holds all domain systems that comprise the API.
// Runs is nil when the database is disabled.
type Domain struct {
	Documents documents.System
	Corpus    corpus.Provider
	Analysis  analysis.System
	Runs      runs.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	d := &Domain{
		Documents: documents.NewSystem(
			runtime.Storage,
			runtime.Logger,
			runtime.Pagination,
		),
		Corpus: corpus.New(
			cfg.Corpus,
			runtime.Storage,
			corpus.PDFRenderer{},
			runtime.Metrics,
			runtime.Logger,
			watchRoot(cfg),
		),
	}

	if runtime.Database != nil {
		d.Runs = runs.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		)
	}

	rt := &analysis.Runtime{
		Config:    cfg.Analysis,
		Corpus:    d.Corpus,
		Documents: d.Documents,
		Metrics:   runtime.Metrics,
		Logger:    runtime.Logger,
	}
	if d.Runs != nil {
		rt.Recorder = d.Runs
	}
	d.Analysis = analysis.New(rt)

	return d
}

// watchRoot returns the directory the corpus watcher observes, or empty
// when storage is not filesystem-backed.
func watchRoot(cfg *config.Config) string {
	if cfg.Storage.Provider != storage.ProviderFilesystem {
		return ""
	}
	return cfg.Storage.Root
}
