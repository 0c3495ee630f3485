package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/chart"
	"github.com/terraincognita07/salescharts/internal/i18n"
)

//go:embed templates/*.html
var templateFiles embed.FS

const pageNotFound = "not_found"

var pageNames = []string{VariantServer, VariantUpload, pageNotFound}

func NewHandler(dashboards Dashboards, surfaces *chart.Registry, i18nManager *i18n.Manager, cookieSecure bool, logger zerolog.Logger) (*Handler, error) {
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if surfaces == nil {
		return nil, errors.New("surface registry is required")
	}
	if dashboards.Server == nil || dashboards.Upload == nil {
		return nil, errors.New("server and upload dashboards are required")
	}

	templates, err := parsePageTemplates(newTemplateFuncMap(), pageNames)
	if err != nil {
		return nil, err
	}

	return &Handler{
		i18n:         i18nManager,
		cookieSecure: cookieSecure,
		templates:    templates,
		surfaces:     surfaces,
		variants: map[string]variant{
			VariantServer: {name: VariantServer, page: VariantServer, surfaceID: ServerSurfaceID, dashboard: dashboards.Server},
			VariantUpload: {name: VariantUpload, page: VariantUpload, surfaceID: UploadSurfaceID, dashboard: dashboards.Upload},
		},
		logger: logger.With().Str("component", "api").Logger(),
	}, nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t": translateMessage,
	}
}

func parsePageTemplates(funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(
			templateFiles,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}
