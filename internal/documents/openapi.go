package documents

import "github.com/JaimeStill/dossier/pkg/openapi"

type spec struct {
	List     *openapi.Operation
	Search   *openapi.Operation
	Find     *openapi.Operation
	Download *openapi.Operation
	Schemas  map[string]*openapi.Schema
}

// Spec holds the OpenAPI operations and schemas for document endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List documents",
		Description: "Returns a page of corpus documents ordered by name unless a sort is given.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Case-insensitive substring of the document name", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields (Name, Category, SizeBytes, ModifiedAt). Prefix with - for descending", false),
			openapi.EnumQueryParam("category", "Routing category", string(Invoice), string(Archive)),
			openapi.QueryParam("name", "string", "Case-insensitive substring of the document name", false),
			openapi.QueryParam("min_size", "string", "Minimum size, e.g. 512B or 4KB", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document page", "DocumentPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search documents",
		RequestBody: openapi.RequestBodyJSON("DocumentSearchRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document page", "DocumentPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find document by name",
		Parameters: []*openapi.Parameter{openapi.PathParam("name", "Document name")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Document metadata", "Document"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Download: &openapi.Operation{
		Summary:    "Download document",
		Parameters: []*openapi.Parameter{openapi.PathParam("name", "Document name")},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Document bytes",
				Content: map[string]*openapi.MediaType{
					"application/pdf": {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				},
			},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string", Example: "Invoice_1.pdf"},
				"category":     {Type: "string", Enum: []any{string(Invoice), string(Archive)}},
				"size_bytes":   {Type: "integer", Format: "int64"},
				"content_type": {Type: "string", Example: "application/pdf"},
				"modified_at":  {Type: "string", Format: "date-time"},
			},
		},
		"DocumentPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Document"),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"DocumentSearchRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      {Type: "integer"},
				"page_size": {Type: "integer"},
				"search":    {Type: "string"},
				"sort":      {Type: "string"},
				"category":  {Type: "string", Enum: []any{string(Invoice), string(Archive)}},
				"name":      {Type: "string"},
				"min_size":  {Type: "integer", Description: "Minimum size in bytes"},
			},
		},
	},
}
