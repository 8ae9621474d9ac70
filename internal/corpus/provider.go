// Package corpus materializes and observes the synthetic document corpus.
package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/internal/metrics"
	"github.com/JaimeStill/dossier/pkg/storage"
)

// Result reports the outcome of Ensure or Generate.
type Result struct {
	Generated bool `json:"generated"`
	Count     int  `json:"count"`
}

// Stats summarizes the corpus by category.
type Stats struct {
	Total         int `json:"total"`
	Invoices      int `json:"invoices"`
	Archives      int `json:"archives"`
	Uncategorized int `json:"uncategorized"`
}

// Provider defines the public contract for corpus operations.
type Provider interface {
	Handler() *Handler

	// Ensure generates a batch when storage holds no documents and is a no-op
	// otherwise. Concurrent calls generate at most one batch.
	Ensure(ctx context.Context) (Result, error)

	// Generate writes a full batch unconditionally, replacing artifacts with
	// the same names.
	Generate(ctx context.Context) (Result, error)

	// Stats counts the corpus by category and refreshes the corpus gauges.
	Stats(ctx context.Context) (Stats, error)

	// Watch refreshes Stats whenever the filesystem corpus root changes.
	// It blocks until ctx is done.
	Watch(ctx context.Context) error
}

type provider struct {
	cfg       Config
	storage   storage.System
	renderer  Renderer
	metrics   *metrics.Metrics
	logger    *slog.Logger
	watchRoot string
	mu        sync.Mutex
}

// New creates a Provider. watchRoot is the filesystem corpus root, or empty
// when storage is not filesystem-backed.
func New(
	cfg Config,
	store storage.System,
	renderer Renderer,
	m *metrics.Metrics,
	logger *slog.Logger,
	watchRoot string,
) Provider {
	return &provider{
		cfg:       cfg,
		storage:   store,
		renderer:  renderer,
		metrics:   m,
		logger:    logger.With("system", "corpus"),
		watchRoot: watchRoot,
	}
}

func (p *provider) Handler() *Handler {
	return NewHandler(p, p.logger)
}

func (p *provider) Ensure(ctx context.Context) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	populated, err := p.populated(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check corpus: %w", err)
	}
	if populated {
		return Result{}, nil
	}

	p.logger.Info("corpus empty, generating batch", "count", p.cfg.Count)
	return p.generate(ctx)
}

// errFound stops a walk at the first matching blob.
var errFound = errors.New("found")

// populated reports whether any blob matches the storage pattern, so the
// emptiness check sees the same corpus documents.All reads.
func (p *provider) populated(ctx context.Context) (bool, error) {
	err := p.storage.Walk(ctx, func(storage.BlobMeta) error {
		return errFound
	})
	if errors.Is(err, errFound) {
		return true, nil
	}
	return false, err
}

func (p *provider) Generate(ctx context.Context) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.generate(ctx)
}

func (p *provider) generate(ctx context.Context) (Result, error) {
	start := time.Now()
	batch := Plan(p.cfg.Count, p.cfg.Ratio(), p.cfg.Seed)

	for _, a := range batch {
		data, err := p.renderer.Render(a)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
		}

		if err := p.storage.Upload(ctx, a.Name, bytes.NewReader(data), p.renderer.ContentType()); err != nil {
			return Result{}, fmt.Errorf("%w: upload %s: %w", ErrGenerateFailed, a.Name, err)
		}
	}

	p.logger.Info(
		"corpus generated",
		"count", len(batch),
		"archives", p.cfg.Archives(),
		"seed", p.cfg.Seed,
		"duration", time.Since(start),
	)

	if _, err := p.stats(ctx); err != nil {
		p.logger.Warn("corpus stats refresh failed", "error", err)
	}

	return Result{Generated: true, Count: len(batch)}, nil
}

func (p *provider) Stats(ctx context.Context) (Stats, error) {
	return p.stats(ctx)
}

func (p *provider) stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := p.storage.Walk(ctx, func(meta storage.BlobMeta) error {
		s.Total++
		switch documents.Categorize(meta.Name) {
		case documents.Invoice:
			s.Invoices++
		case documents.Archive:
			s.Archives++
		default:
			s.Uncategorized++
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("count corpus: %w", err)
	}

	p.metrics.SetCorpusDocuments(string(documents.Invoice), s.Invoices)
	p.metrics.SetCorpusDocuments(string(documents.Archive), s.Archives)
	p.metrics.SetCorpusDocuments("UNCATEGORIZED", s.Uncategorized)

	return s, nil
}

func (p *provider) Watch(ctx context.Context) error {
	if p.watchRoot == "" {
		return ErrWatchUnsupported
	}

	return Watch(ctx, p.watchRoot, p.cfg.DebounceDuration(), p.logger, func() {
		s, err := p.stats(ctx)
		if err != nil {
			p.logger.Warn("corpus stats refresh failed", "error", err)
			return
		}
		p.logger.Debug("corpus changed", "total", s.Total, "invoices", s.Invoices, "archives", s.Archives)
	})
}
