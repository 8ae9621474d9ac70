package web_test

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/dossier/pkg/web"
)

var testFS = fstest.MapFS{
	"templates/layouts/app.html": {Data: []byte(
		`{{ define "app" }}<title>{{ .Title }}</title><a href="{{ .BasePath }}/">home</a>{{ template "content" . }}{{ end }}`,
	)},
	"templates/views/home.html": {Data: []byte(
		`{{ define "content" }}<p>{{ shout .Data }}</p>{{ end }}`,
	)},
	"templates/views/missing.html": {Data: []byte(
		`{{ define "content" }}<p>not found</p>{{ end }}`,
	)},
	"templates/views/broken.html": {Data: []byte(
		`{{ define "content" }}{{ .Data.Nope }}{{ end }}`,
	)},
	"static/app.css": {Data: []byte("body{}")},
}

var (
	homeView    = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Home"}
	missingView = web.ViewDef{Template: "missing.html", Title: "Not Found"}
	brokenView  = web.ViewDef{Template: "broken.html", Title: "Broken"}
)

func newTemplateSet(t *testing.T) *web.TemplateSet {
	t.Helper()

	funcs := template.FuncMap{"shout": func(v any) string {
		s, _ := v.(string)
		return strings.ToUpper(s)
	}}

	ts, err := web.NewTemplateSet(
		testFS, "templates/layouts/*.html", "templates/views", "/app",
		funcs, []web.ViewDef{homeView, missingView, brokenView},
	)
	if err != nil {
		t.Fatalf("NewTemplateSet() error = %v", err)
	}
	return ts
}

func TestTemplateSetRender(t *testing.T) {
	ts := newTemplateSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "app", "home.html", ts.Data(homeView, "report ready")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", `href="/app/"`, "REPORT READY"} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}
}

func TestTemplateSetRenderErrors(t *testing.T) {
	ts := newTemplateSet(t)

	rec := httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "app", "absent.html", web.ViewData{}); err == nil {
		t.Error("expected error for unknown view")
	}

	rec = httptest.NewRecorder()
	if err := ts.Render(rec, http.StatusOK, "app", "broken.html", ts.Data(brokenView, 42)); err == nil {
		t.Error("expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("failed render wrote %d bytes", rec.Body.Len())
	}
}

func TestNewTemplateSetParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/app.html": {Data: []byte(`{{ define "app" }}{{ end }}`)},
		"views/bad.html":   {Data: []byte(`{{ define "content" }}{{ if }}{{ end }}`)},
	}

	_, err := web.NewTemplateSet(fsys, "layouts/*.html", "views", "/app", nil,
		[]web.ViewDef{{Template: "bad.html"}})
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHandlers(t *testing.T) {
	ts := newTemplateSet(t)

	router := web.NewRouter()
	router.HandleFunc("GET "+homeView.Route, func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, http.StatusOK, "app", homeView.Template, ts.Data(homeView, nil)); err != nil {
			t.Errorf("render: %v", err)
		}
	})
	router.SetFallback(ts.ErrorHandler("app", missingView, http.StatusNotFound))

	tests := []struct {
		path     string
		want     int
		contains string
	}{
		{"/", http.StatusOK, "<title>Home</title>"},
		{"/nowhere", http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestRouterWithoutFallback(t *testing.T) {
	router := web.NewRouter()
	router.Handle("GET /known", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	tests := []struct {
		path string
		want int
	}{
		{"/known", http.StatusAccepted},
		{"/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s: got %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestDistServer(t *testing.T) {
	handler, err := web.DistServer(testFS, "static", "/static")
	if err != nil {
		t.Fatalf("DistServer() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "body{}" {
		t.Errorf("body: got %q", body)
	}
}
