package runs

import "github.com/JaimeStill/dossier/pkg/openapi"

type spec struct {
	List    *openapi.Operation
	Find    *openapi.Operation
	Search  *openapi.Operation
	Delete  *openapi.Operation
	Schemas map[string]*openapi.Schema
}

var idParam = openapi.UUIDPathParam("id", "Run ID")

// Spec holds the OpenAPI operations and schemas for run history endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List runs",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query text and scenario", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.EnumQueryParam("scenario", "Filter by scenario; repeat or comma-separate to match several", "FINANCIAL", "COMPLIANCE", "ENTITY", "DEFAULT"),
			openapi.QueryParam("model_name", "string", "Filter by model selector", false),
			openapi.QueryParam("ocr_engine", "string", "Filter by OCR selector", false),
			openapi.QueryParam("query", "string", "Filter by query text (contains)", false),
			openapi.QueryParam("since", "string", "Only runs created at or after this RFC 3339 time", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Run page", "RunPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find run by ID",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Run", "Run"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search runs",
		RequestBody: openapi.RequestBodyJSON("RunSearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Run page", "RunPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete run",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Run deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Run": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"query":       {Type: "string"},
				"scenario":    {Type: "string"},
				"model_name":  {Type: "string"},
				"ocr_engine":  {Type: "string"},
				"total_count": {Type: "integer"},
				"report":      openapi.SchemaRef("Report"),
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"RunPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Run"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"RunSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":       {Type: "integer"},
				"page_size":  {Type: "integer"},
				"search":     {Type: "string"},
				"sort":       {Type: "string"},
				"scenarios":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"model_name": {Type: "string"},
				"ocr_engine": {Type: "string"},
				"query":      {Type: "string"},
				"since":      {Type: "string", Format: "date-time"},
			},
		},
	},
}
