// Package app serves the server-rendered dashboard: batch overview, the
// document list, and analysis reports.
package app

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/internal/summary"
	"github.com/JaimeStill/dossier/pkg/formatting"
	"github.com/JaimeStill/dossier/pkg/module"
	"github.com/JaimeStill/dossier/pkg/web"
)

//go:embed templates dist
var assets embed.FS

const layout = "app.html"

var (
	indexView     = web.ViewDef{Route: "/{$}", Template: "index.html", Title: "Analysis"}
	documentsView = web.ViewDef{Route: "/documents", Template: "documents.html", Title: "Documents"}
	notFoundView  = web.ViewDef{Template: "not-found.html", Title: "Not Found"}
)

var funcs = template.FuncMap{
	"bytes": func(n int64) string { return formatting.FormatBytes(n, 1) },
	"inc":   func(i int) int { return i + 1 },
	"tone":  func(s analysis.Status) string { return string(summary.StepTone(s)) },
	"upper": strings.ToUpper,
}

type app struct {
	views     *web.TemplateSet
	analysis  analysis.System
	documents documents.System
	logger    *slog.Logger
}

// NewModule creates the dashboard module mounted at basePath.
func NewModule(
	basePath string,
	sys analysis.System,
	docs documents.System,
	logger *slog.Logger,
) (*module.Module, error) {
	views, err := web.NewTemplateSet(
		assets,
		"templates/layouts/*.html",
		"templates/views",
		basePath,
		funcs,
		[]web.ViewDef{indexView, documentsView, notFoundView},
	)
	if err != nil {
		return nil, err
	}

	static, err := web.DistServer(assets, "dist", "/dist/")
	if err != nil {
		return nil, err
	}

	a := &app{
		views:     views,
		analysis:  sys,
		documents: docs,
		logger:    logger.With("module", "app"),
	}

	router := web.NewRouter()
	router.HandleFunc("GET "+indexView.Route, a.index)
	router.HandleFunc("POST /analyze", a.analyze)
	router.HandleFunc("GET "+documentsView.Route, a.listDocuments)
	router.Handle("GET /dist/", static)
	router.SetFallback(views.ErrorHandler(layout, notFoundView, http.StatusNotFound))

	return module.New(basePath, router), nil
}

// dashboard is the index view model. Card is nil until a query runs.
type dashboard struct {
	Batch   batch
	Options analysis.Options
	Query   string
	Model   string
	OCR     string
	Card    *summary.Card
	Prompts []string
	Error   string
}

type batch struct {
	Total    int
	Invoices int
	Archives int
}

func (a *app) index(w http.ResponseWriter, r *http.Request) {
	d := a.dashboard(r)
	a.render(w, http.StatusOK, indexView, d)
}

func (a *app) analyze(w http.ResponseWriter, r *http.Request) {
	d := a.dashboard(r)
	d.Query = r.FormValue("query")
	d.Model = r.FormValue("model")
	d.OCR = r.FormValue("ocr")

	report, err := a.analysis.Run(r.Context(), analysis.Request{
		Query: d.Query,
		Model: d.Model,
		OCR:   d.OCR,
	})
	if err != nil {
		a.logger.Error("analysis failed", "error", err)
		d.Error = err.Error()
		a.render(w, analysis.MapHTTPStatus(err), indexView, d)
		return
	}

	card := summary.FromReport(report)
	d.Card = &card
	if report.Selectors != (analysis.Selectors{}) {
		d.Model = report.Selectors.Model
		d.OCR = report.Selectors.OCR
	}
	d.Batch.Total = report.TotalCount

	a.render(w, http.StatusOK, indexView, d)
}

func (a *app) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := a.documents.All(r.Context())
	if err != nil {
		a.logger.Error("list documents failed", "error", err)
		http.Error(w, "documents unavailable", http.StatusServiceUnavailable)
		return
	}
	a.render(w, http.StatusOK, documentsView, docs)
}

func (a *app) dashboard(r *http.Request) dashboard {
	d := dashboard{
		Options: a.analysis.Options(),
		Prompts: summary.Prompts,
	}

	docs, err := a.documents.All(r.Context())
	if err != nil {
		a.logger.Warn("batch summary unavailable", "error", err)
		return d
	}

	d.Batch = batch{
		Total:    len(docs),
		Invoices: documents.Count(docs, documents.Invoice),
		Archives: documents.Count(docs, documents.Archive),
	}
	return d
}

func (a *app) render(w http.ResponseWriter, status int, view web.ViewDef, data any) {
	if err := a.views.Render(w, status, layout, view.Template, a.views.Data(view, data)); err != nil {
		a.logger.Error("render failed", "view", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
