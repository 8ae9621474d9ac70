package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/dossier/pkg/openapi"
	"github.com/JaimeStill/dossier/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func testGroups() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/documents",
			Tags:   []string{"Documents"},
			Schemas: map[string]*openapi.Schema{
				"Document": {Type: "object"},
			},
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "List"}},
				{Method: "GET", Pattern: "/{name}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Find"}},
				{Method: "GET", Pattern: "/{name}/download", Handler: ok},
			},
		},
		{
			Prefix: "/analysis",
			Tags:   []string{"Analysis"},
			Routes: []routes.Route{
				{Method: "POST", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Run"}},
			},
			Children: []routes.Group{
				{
					Prefix: "/scenarios",
					Routes: []routes.Route{
						{Method: "GET", Pattern: "", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Scenarios"}},
					},
				},
			},
		},
		{
			Prefix: "/storage",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{key...}", Handler: ok, OpenAPI: &openapi.Operation{Summary: "Blob"}},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, testGroups()...)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/documents", http.StatusOK},
		{"GET", "/documents/Invoice_0.pdf", http.StatusOK},
		{"GET", "/documents/Invoice_0.pdf/download", http.StatusOK},
		{"POST", "/analysis", http.StatusOK},
		{"GET", "/analysis/scenarios", http.StatusOK},
		{"GET", "/storage/nested/Invoice_0.pdf", http.StatusOK},
		{"DELETE", "/analysis", http.StatusMethodNotAllowed},
		{"GET", "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	spec := openapi.NewSpec("Dossier API", "0.1.0")
	routes.Document(spec, "", testGroups()...)

	tests := []struct {
		path    string
		summary string
		tag     string
	}{
		{"/documents", "List", "Documents"},
		{"/documents/{name}", "Find", "Documents"},
		{"/analysis/scenarios", "Scenarios", "Analysis"},
		{"/storage/{key}", "Blob", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item, ok := spec.Paths[tt.path]
			if !ok || item.Get == nil {
				t.Fatalf("missing GET %s in %v", tt.path, spec.Paths)
			}
			if item.Get.Summary != tt.summary {
				t.Errorf("summary: got %s, want %s", item.Get.Summary, tt.summary)
			}
			if tt.tag != "" && (len(item.Get.Tags) != 1 || item.Get.Tags[0] != tt.tag) {
				t.Errorf("tags: got %v, want [%s]", item.Get.Tags, tt.tag)
			}
		})
	}

	if _, ok := spec.Paths["/documents/{name}/download"]; ok {
		t.Error("undocumented route should not appear in spec")
	}
	if spec.Paths["/analysis"].Post == nil {
		t.Error("POST /analysis missing")
	}
	if _, ok := spec.Components.Schemas["Document"]; !ok {
		t.Error("group schemas should merge into components")
	}
}
