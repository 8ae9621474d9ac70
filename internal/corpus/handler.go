package corpus

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/dossier/pkg/handlers"
	"github.com/JaimeStill/dossier/pkg/openapi"
	"github.com/JaimeStill/dossier/pkg/routes"
)

// Handler provides HTTP endpoints for corpus operations.
type Handler struct {
	provider Provider
	logger   *slog.Logger
}

// NewHandler creates a Handler for provider.
func NewHandler(provider Provider, logger *slog.Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger.With("handler", "corpus"),
	}
}

// Routes returns the route group definition for corpus endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/corpus",
		Tags:        []string{"Corpus"},
		Description: "Synthetic corpus materialization",
		Schemas: map[string]*openapi.Schema{
			"CorpusStats": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"total":         {Type: "integer"},
					"invoices":      {Type: "integer"},
					"archives":      {Type: "integer"},
					"uncategorized": {Type: "integer"},
				},
			},
			"CorpusResult": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"generated": {Type: "boolean", Description: "True when a batch was written"},
					"count":     {Type: "integer", Description: "Artifacts written"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.Stats,
				OpenAPI: &openapi.Operation{
					Summary: "Corpus totals by category",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Corpus totals", "CorpusStats"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Ensure,
				OpenAPI: &openapi.Operation{
					Summary:     "Materialize the corpus",
					Description: "Generates the synthetic batch when storage is empty; otherwise does nothing.",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Materialization result", "CorpusResult"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
		},
	}
}

// Stats returns corpus totals by category.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.provider.Stats(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Ensure materializes the corpus when it is empty.
func (h *Handler) Ensure(w http.ResponseWriter, r *http.Request) {
	result, err := h.provider.Ensure(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
