package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/dossier/internal/config"
	"github.com/JaimeStill/dossier/pkg/openapi"
	"github.com/JaimeStill/dossier/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := routeGroups(domain, cfg, runtime)
	routes.Register(mux, groups...)

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg, groups))
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}

// Spec returns the OpenAPI document served at /openapi.json.
func Spec(cfg *config.Config, runtime *Runtime, domain *Domain) *openapi.Spec {
	return buildSpec(cfg, routeGroups(domain, cfg, runtime))
}

func routeGroups(domain *Domain, cfg *config.Config, runtime *Runtime) []routes.Group {
	groups := []routes.Group{
		domain.Analysis.Handler().Routes(),
		domain.Documents.Handler().Routes(),
		domain.Corpus.Handler().Routes(),
		newStorageHandler(
			runtime.Storage,
			runtime.Logger,
			cfg.Storage.MaxListSize,
		).routes(),
	}
	if domain.Runs != nil {
		groups = append(groups, domain.Runs.Handler().Routes())
	}
	return groups
}

func buildSpec(cfg *config.Config, groups []routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	routes.Document(spec, "", groups...)
	return spec
}
