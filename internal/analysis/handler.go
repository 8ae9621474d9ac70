package analysis

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/dossier/pkg/handlers"
	"github.com/JaimeStill/dossier/pkg/routes"
)

const maxRequestBytes = 64 << 10

// Handler provides HTTP endpoints for the analysis pipeline.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for sys.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "analysis"),
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/analysis",
		Tags:        []string{"Analysis"},
		Description: "Query-driven report generation over the corpus",
		Schemas:     Spec.Schemas,
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run, OpenAPI: Spec.Run},
			{Method: "GET", Pattern: "/scenarios", Handler: h.Scenarios, OpenAPI: Spec.Scenarios},
			{Method: "GET", Pattern: "/selectors", Handler: h.Selectors, OpenAPI: Spec.Selectors},
		},
	}
}

// Run executes the pipeline for the JSON request body.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req Request
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	report, err := h.sys.Run(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Scenarios returns the ordered keyword rule table.
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Scenarios())
}

// Selectors returns the configured model and OCR engine choices.
func (h *Handler) Selectors(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Options())
}
