package main

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/dossier/internal/api"
	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/infrastructure"
)

type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	domain  *api.Domain
	modules *Modules
	http    *httpServer

	corpusReady atomic.Bool
}

func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	infra, err := infrastructure.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(cfg, runtime)

	modules, err := NewModules(cfg, infra, runtime, domain)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		infra:   infra,
		domain:  domain,
		modules: modules,
	}

	router := buildRouter(infra, s)
	modules.Mount(router)
	s.http = newHTTPServer(&cfg.Server, cfg.ShutdownTimeoutDuration(), router, infra.Logger)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"modules", router.Prefixes(),
		"run_history", domain.Runs != nil,
	)

	return s, nil
}

// Ready reports whether infrastructure startup finished and the corpus has
// been materialized.
func (s *Server) Ready() bool {
	return s.infra.Ready() && s.corpusReady.Load()
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	lc := s.infra.Lifecycle
	done := make(chan struct{})
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-done
	})
	go s.afterStartup(done)

	return nil
}

// afterStartup materializes the corpus once storage is prepared, then runs
// the corpus watcher until shutdown when enabled. done closes on return.
func (s *Server) afterStartup(done chan<- struct{}) {
	defer close(done)

	lc := s.infra.Lifecycle
	logger := s.infra.Logger

	if err := lc.WaitForStartup(); err != nil {
		logger.Error("subsystem startup failed", "error", err)
		return
	}
	logger.Info("all subsystems ready")

	result, err := s.domain.Corpus.Ensure(lc.Context())
	if err != nil {
		logger.Error("corpus materialization failed", "error", err)
		return
	}
	s.corpusReady.Store(true)
	logger.Info("corpus ready", "generated", result.Generated, "count", result.Count)

	if !s.cfg.Corpus.WatchEnabled() {
		return
	}
	if err := s.domain.Corpus.Watch(lc.Context()); err != nil {
		logger.Warn("corpus watcher stopped", "error", err)
	}
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
