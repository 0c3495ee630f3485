package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/chart"
	"github.com/terraincognita07/salescharts/internal/i18n"
	"github.com/terraincognita07/salescharts/internal/loader"
	"github.com/terraincognita07/salescharts/internal/models"
	"github.com/terraincognita07/salescharts/internal/services"
)

type testApp struct {
	app        *fiber.App
	handler    *Handler
	surfaces   *chart.Registry
	dashboards Dashboards
}

type stringSource struct {
	name    string
	content string
}

func (source stringSource) Name() string {
	return source.name
}

func (source stringSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(source.content)), nil
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := zerolog.Nop()
	surfaces := chart.NewRegistry(ServerSurfaceID, UploadSurfaceID)
	rows := loader.NewLoader(logger, models.DefaultCategoryKey, models.DefaultValueKey)
	builder := services.NewSeriesBuilder("", "", "")
	dashboards := Dashboards{
		Server: services.NewDashboardService(VariantServer, rows, builder,
			chart.NewController(surfaces, ServerSurfaceID, chart.DefaultOptions(), logger), logger),
		Upload: services.NewDashboardService(VariantUpload, rows, builder,
			chart.NewController(surfaces, UploadSurfaceID, chart.DefaultOptions(), logger), logger),
	}

	i18nManager, err := i18n.NewManager(i18n.LangJA, i18n.Locales, "locales")
	if err != nil {
		t.Fatalf("i18n init failed: %v", err)
	}

	handler, err := NewHandler(dashboards, surfaces, i18nManager, false, logger)
	if err != nil {
		t.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)

	return &testApp{app: app, handler: handler, surfaces: surfaces, dashboards: dashboards}
}

func (env *testApp) do(t *testing.T, request *http.Request) (*http.Response, string) {
	t.Helper()

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return response, string(body)
}

func (env *testApp) get(t *testing.T, path string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	return env.do(t, request)
}

func (env *testApp) upload(t *testing.T, filename string, content string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile(uploadFormField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	} else if err := writer.WriteField("note", "empty"); err != nil {
		t.Fatalf("write form field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/upload", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	return env.do(t, request)
}

func (env *testApp) surfaceDocument(t *testing.T, surfaceID string) string {
	t.Helper()
	surface, ok := env.surfaces.Lookup(surfaceID)
	if !ok {
		t.Fatalf("surface %s not registered", surfaceID)
	}
	document, _ := surface.Document()
	return string(document)
}

func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	payload := map[string]any{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode response body %q: %v", body, err)
	}
	return payload
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
