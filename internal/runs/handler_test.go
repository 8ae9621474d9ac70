package runs_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/runs"
	"github.com/JaimeStill/dossier/pkg/pagination"
	"github.com/JaimeStill/dossier/pkg/routes"
)

type mockSystem struct {
	recordFn func(ctx context.Context, query string, report *analysis.Report) error
	listFn   func(ctx context.Context, page pagination.PageRequest, filters runs.Filters) (*pagination.PageResult[runs.Run], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*runs.Run, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *runs.Handler {
	return runs.NewHandler(m, discard(), testPagination)
}

func (m *mockSystem) Record(ctx context.Context, query string, report *analysis.Report) error {
	return m.recordFn(ctx, query, report)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters runs.Filters) (*pagination.PageResult[runs.Run], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*runs.Run, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

var testPagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

var sampleID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRun() runs.Run {
	return runs.Run{
		ID:         sampleID,
		Query:      "check compliance risks",
		Scenario:   analysis.Compliance,
		ModelName:  "Gemini 1.5 Flash",
		OCREngine:  "PaddleOCR",
		TotalCount: 52,
		Report: *analysis.Assemble(analysis.Input{
			Scenario:   analysis.Compliance,
			Total:      52,
			Violations: 10,
		}),
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters runs.Filters

	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters runs.Filters) (*pagination.PageResult[runs.Run], error) {
			gotPage, gotFilters = page, filters
			result := pagination.NewPageResult([]runs.Run{sampleRun()}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/runs?page=2&page_size=5&scenario=COMPLIANCE", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 2, gotPage.Page)
	assert.Equal(t, 5, gotPage.PageSize)
	assert.Equal(t, []string{"COMPLIANCE"}, gotFilters.Scenarios)

	var result pagination.PageResult[runs.Run]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, sampleID, result.Data[0].ID)
	assert.Equal(t, "FLAG FOR REVIEW", result.Data[0].Report.Metrics["action"])
}

func TestHandlerListInvalidSince(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux(&mockSystem{}).ServeHTTP(rec, httptest.NewRequest("GET", "/runs?since=never", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(ctx context.Context, id uuid.UUID) (*runs.Run, error) {
			if id != sampleID {
				return nil, runs.ErrNotFound
			}
			r := sampleRun()
			return &r, nil
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/runs/" + sampleID.String(), http.StatusOK},
		{"not found", "/runs/" + uuid.NewString(), http.StatusNotFound},
		{"invalid id", "/runs/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandlerSearch(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters runs.Filters

	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters runs.Filters) (*pagination.PageResult[runs.Run], error) {
			gotPage, gotFilters = page, filters
			result := pagination.NewPageResult[runs.Run](nil, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	body := `{"page":1,"page_size":500,"model_name":"Mistral 7B","sort":"-CreatedAt","scenarios":["financial","ENTITY"]}`
	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/runs/search", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 100, gotPage.PageSize)
	require.Len(t, gotPage.Sort, 1)
	assert.True(t, gotPage.Sort[0].Descending)
	assert.Equal(t, "Mistral 7B", *gotFilters.ModelName)
	assert.Equal(t, []string{"FINANCIAL", "ENTITY"}, gotFilters.Scenarios)

	for _, bad := range []string{"{", `{"scenarios":["AUDIT"]}`} {
		rec = httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("POST", "/runs/search", strings.NewReader(bad)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestHandlerDelete(t *testing.T) {
	sys := &mockSystem{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			if id != sampleID {
				return runs.ErrNotFound
			}
			return nil
		},
	}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/runs/"+sampleID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/runs/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemSatisfiesRecorder(t *testing.T) {
	var recorded string
	var rec analysis.Recorder = &mockSystem{
		recordFn: func(ctx context.Context, query string, report *analysis.Report) error {
			recorded = query
			return nil
		},
	}

	require.NoError(t, rec.Record(context.Background(), "list entities", &analysis.Report{}))
	assert.Equal(t, "list entities", recorded)
}
