// Package routes declares HTTP route groups that register onto a ServeMux and
// describe themselves in an OpenAPI document.
package routes

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/dossier/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
// Schemas are merged into the spec's components when the group is documented.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

// Document adds every documented route in groups to spec. basePath is the
// mount point of the module that serves the groups.
func Document(spec *openapi.Spec, basePath string, groups ...Group) {
	for _, group := range groups {
		documentGroup(spec, basePath, nil, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

func documentGroup(spec *openapi.Spec, prefix string, parentTags []string, group Group) {
	fullPrefix := prefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if len(group.Schemas) > 0 {
		spec.Components.AddSchemas(group.Schemas)
	}

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := *route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		spec.AddOperation(route.Method, openAPIPath(fullPrefix+route.Pattern), &op)
	}

	for _, child := range group.Children {
		documentGroup(spec, fullPrefix, tags, child)
	}
}

// openAPIPath rewrites ServeMux wildcards to OpenAPI path templates:
// "{key...}" becomes "{key}" and the "{$}" anchor is dropped.
func openAPIPath(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "...}", "}")
	pattern = strings.TrimSuffix(pattern, "{$}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
