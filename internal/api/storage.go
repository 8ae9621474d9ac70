package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/dossier/pkg/handlers"
	"github.com/JaimeStill/dossier/pkg/openapi"
	"github.com/JaimeStill/dossier/pkg/routes"
	"github.com/JaimeStill/dossier/pkg/storage"
)

// storageHandler exposes the raw object listing, including objects the
// corpus pattern filters out of the document views.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(
	store storage.System,
	logger *slog.Logger,
	maxListSize int32,
) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		maxListSize: maxListSize,
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix:      "/storage",
		Tags:        []string{"Storage"},
		Description: "Raw corpus storage listing",
		Schemas: map[string]*openapi.Schema{
			"Blob": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"name":           {Type: "string"},
					"content_type":   {Type: "string"},
					"content_length": {Type: "integer"},
					"last_modified":  {Type: "string", Format: "date-time"},
					"etag":           {Type: "string"},
				},
			},
			"BlobList": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"blobs":       openapi.ArrayOf("Blob"),
					"next_marker": {Type: "string", Description: "Marker for the next page; absent on the last page"},
				},
			},
		},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.list,
				OpenAPI: &openapi.Operation{
					Summary: "List stored objects",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("prefix", "string", "Object name prefix", false),
						openapi.QueryParam("marker", "string", "Resume after this marker", false),
						openapi.QueryParam("max_results", "integer", "Page size", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Object page", "BlobList"),
						400: openapi.ResponseRef("BadRequest"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
		},
	}
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.store.List(r.Context(), q.Get("prefix"), q.Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
