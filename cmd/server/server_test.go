package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/internal/infrastructure"
	"github.com/JaimeStill/dossier/pkg/module"
)

type readiness bool

func (r readiness) Ready() bool { return bool(r) }

func testInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	t.Setenv("DOSSIER_STORAGE_ROOT", filepath.Join(t.TempDir(), "corpus"))

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	infra, err := infrastructure.New(cfg, slog.Default())
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}
	return infra
}

func TestProbes(t *testing.T) {
	infra := testInfra(t)

	tests := []struct {
		name     string
		ready    bool
		path     string
		wantCode int
		wantBody string
	}{
		{"healthz", false, "/healthz", http.StatusOK, `"ok"`},
		{"readyz before startup", false, "/readyz", http.StatusServiceUnavailable, `"not ready"`},
		{"readyz after startup", true, "/readyz", http.StatusOK, `"ready"`},
		{"metrics", false, "/metrics", http.StatusOK, "dossier_retention_violations"},
		{"root redirects", false, "/", http.StatusFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := buildRouter(infra, readiness(tt.ready))

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q missing %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestNewServerMountsModules(t *testing.T) {
	t.Setenv("DOSSIER_STORAGE_ROOT", filepath.Join(t.TempDir(), "corpus"))

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	srv, err := NewServer(cfg, slog.Default())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	if srv.Ready() {
		t.Error("server should not be ready before Start")
	}
	if srv.domain.Runs != nil {
		t.Error("run history should be off without a database")
	}

	router, ok := srv.http.http.Handler.(*module.Router)
	if !ok {
		t.Fatalf("handler is %T, want *module.Router", srv.http.http.Handler)
	}
	if got := router.Prefixes(); !slices.Equal(got, []string{"/api", "/app", "/scalar"}) {
		t.Errorf("Prefixes() = %v", got)
	}

	rec := httptest.NewRecorder()
	srv.http.http.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/scalar/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("scalar: got %d, want 200", rec.Code)
	}
}
