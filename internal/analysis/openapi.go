package analysis

import "github.com/JaimeStill/dossier/pkg/openapi"

type spec struct {
	Run       *openapi.Operation
	Scenarios *openapi.Operation
	Selectors *openapi.Operation
	Schemas   map[string]*openapi.Schema
}

var scenarioEnum = []any{string(Financial), string(Compliance), string(Entity), string(Default)}

// Spec holds the OpenAPI operations and schemas for analysis endpoints.
var Spec = spec{
	Run: &openapi.Operation{
		Summary:     "Run analysis",
		Description: "Classifies the corpus, counts retention violations, and returns the report for the scenario the query selects.",
		RequestBody: openapi.RequestBodyJSON("AnalysisRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Analysis report", "Report"),
			400: openapi.ResponseRef("BadRequest"),
			503: openapi.ResponseRef("Unavailable"),
		},
	},
	Scenarios: &openapi.Operation{
		Summary:     "List scenario rules",
		Description: "Rules are evaluated in order; the first with a keyword contained in the lowercased query wins.",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Ordered rules",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: openapi.ArrayOf("ScenarioRule")},
				},
			},
		},
	},
	Selectors: &openapi.Operation{
		Summary: "List model and OCR selectors",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Selectable options", "SelectorOptions"),
		},
	},
	Schemas: map[string]*openapi.Schema{
		"AnalysisRequest": {
			Type:     "object",
			Required: []string{"query"},
			Properties: map[string]*openapi.Schema{
				"query": {Type: "string", Example: "Extract the invoice total"},
				"model": {Type: "string", Description: "Model selector; defaults to the first configured model", Example: "Gemini 1.5 Flash"},
				"ocr":   {Type: "string", Description: "OCR selector; defaults to the first configured engine", Example: "PaddleOCR"},
			},
		},
		"Report": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"scenario":    {Type: "string", Enum: scenarioEnum},
				"total_count": {Type: "integer"},
				"metrics":     {Type: "object", Description: "Scenario-specific named values"},
				"timeline":    openapi.ArrayOf("Step"),
				"selectors": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"model": {Type: "string"},
						"ocr":   {Type: "string"},
					},
				},
			},
		},
		"Step": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":   {Type: "string"},
				"status": {Type: "string", Enum: []any{string(StatusPass), string(StatusFlag), string(StatusReview)}},
				"detail": {Type: "string"},
			},
		},
		"ScenarioRule": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"scenario": {Type: "string", Enum: scenarioEnum},
				"keywords": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
		"SelectorOptions": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"models":      {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"ocr_engines": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
	},
}
