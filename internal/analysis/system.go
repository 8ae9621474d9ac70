package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Request is one analysis invocation. Empty selectors resolve to the first
// configured model and OCR engine.
type Request struct {
	Query string `json:"query"`
	Model string `json:"model,omitempty"`
	OCR   string `json:"ocr,omitempty"`
}

// Options lists the selectable models and OCR engines.
type Options struct {
	Models     []string `json:"models"`
	OCREngines []string `json:"ocr_engines"`
}

// System defines the public contract for the analysis pipeline.
type System interface {
	Handler() *Handler

	// Run ensures the corpus, routes and policy-checks it, interprets the
	// query, and assembles the report. It holds no state between calls.
	Run(ctx context.Context, req Request) (*Report, error)

	Options() Options
}

type system struct {
	rt     *Runtime
	delay  time.Duration
	logger *slog.Logger
}

// New creates the analysis System from rt.
func New(rt *Runtime) System {
	return &system{
		rt:     rt,
		delay:  rt.Config.DelayDuration(),
		logger: rt.Logger.With("system", "analysis"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Options() Options {
	return Options{
		Models:     slices.Clone(s.rt.Config.Models),
		OCREngines: slices.Clone(s.rt.Config.OCREngines),
	}
}

func (s *system) Run(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	selectors := s.resolve(req)

	if s.rt.Corpus != nil {
		if _, err := s.rt.Corpus.Ensure(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorpus, err)
		}
	}

	docs, err := s.rt.Documents.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpus, err)
	}

	var (
		queues     Queues
		violations int
		g          errgroup.Group
	)
	g.Go(func() error {
		queues = Route(docs)
		return nil
	})
	g.Go(func() error {
		violations = CountViolations(docs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scenario := Interpret(req.Query)
	s.logger.Debug(
		"corpus routed",
		"total", len(docs),
		"finance", queues.Finance,
		"regulatory", queues.Regulatory,
		"violations", violations,
		"scenario", scenario,
	)

	s.pace()

	report := Assemble(Input{
		Scenario:   scenario,
		Total:      len(docs),
		Queues:     queues,
		Violations: violations,
		Selectors:  selectors,
	})

	s.rt.Metrics.ObserveRun(string(scenario), start)
	s.rt.Metrics.SetViolations(violations)

	if s.rt.Recorder != nil {
		if err := s.rt.Recorder.Record(context.WithoutCancel(ctx), req.Query, report); err != nil {
			s.logger.Warn("run history record failed", "error", err)
		}
	}

	s.logger.Info(
		"analysis complete",
		"scenario", scenario,
		"model", selectors.Model,
		"ocr", selectors.OCR,
		"duration", time.Since(start),
	)

	return report, nil
}

func (s *system) resolve(req Request) Selectors {
	sel := Selectors{Model: req.Model, OCR: req.OCR}
	if sel.Model == "" && len(s.rt.Config.Models) > 0 {
		sel.Model = s.rt.Config.Models[0]
	}
	if sel.OCR == "" && len(s.rt.Config.OCREngines) > 0 {
		sel.OCR = s.rt.Config.OCREngines[0]
	}
	return sel
}

// pace blocks for the configured delay without observing cancellation.
func (s *system) pace() {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
}
