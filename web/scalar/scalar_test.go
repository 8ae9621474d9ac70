package scalar_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/dossier/web/scalar"
)

func TestIndexReferencesSpec(t *testing.T) {
	m := scalar.NewModule("/scalar", "/api/openapi.json")

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/scalar/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-url="/api/openapi.json"`) {
		t.Errorf("spec url missing from page: %s", rec.Body.String())
	}
}
