package api

import (
	"html/template"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/chart"
	"github.com/terraincognita07/salescharts/internal/i18n"
	"github.com/terraincognita07/salescharts/internal/services"
)

const (
	VariantServer = "server"
	VariantUpload = "upload"

	ServerSurfaceID = "salesChart"
	UploadSurfaceID = "uploadChart"
)

type Handler struct {
	i18n         *i18n.Manager
	cookieSecure bool
	templates    map[string]*template.Template
	surfaces     *chart.Registry
	variants     map[string]variant
	logger       zerolog.Logger
}

// variant is one front-end page: its dashboard and the surface it draws on.
type variant struct {
	name      string
	page      string
	surfaceID string
	dashboard *services.DashboardService
}

type Dashboards struct {
	Server *services.DashboardService
	Upload *services.DashboardService
}

type statusView struct {
	State    string `json:"state"`
	Text     string `json:"text"`
	FileName string `json:"file_name,omitempty"`
	Rows     int    `json:"rows"`
}
