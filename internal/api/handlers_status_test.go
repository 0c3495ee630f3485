package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestGetStatusReportsSeries(t *testing.T) {
	env := newTestApp(t)
	if _, err := env.dashboards.Server.Run(context.Background(), stringSource{name: "data.csv", content: "Month,Sales\nJan,100\n"}); err != nil {
		t.Fatalf("server load failed: %v", err)
	}

	response, body := env.get(t, "/api/status/server", map[string]string{"Accept-Language": "en"})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	payload := decodeJSON(t, body)
	status, _ := payload["status"].(map[string]any)
	if status["state"] != "loaded" || status["text"] != "Data loaded." {
		t.Fatalf("unexpected status %#v", status)
	}
	if payload["chart"] != true || payload["surface"] != ServerSurfaceID {
		t.Fatalf("expected drawn server surface, got %#v", payload)
	}
	if _, ok := payload["series"].(map[string]any); !ok {
		t.Fatalf("expected series, got %#v", payload["series"])
	}
}

func TestGetStatusWithoutData(t *testing.T) {
	env := newTestApp(t)

	_, body := env.get(t, "/api/status/upload", nil)
	payload := decodeJSON(t, body)
	if payload["series"] != nil || payload["chart"] != false {
		t.Fatalf("expected no series and no chart, got %#v", payload)
	}
}

func TestGetStatusUnknownVariant(t *testing.T) {
	env := newTestApp(t)

	response, _ := env.get(t, "/api/status/other", nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
}

func TestShowSurfaceUnknownID(t *testing.T) {
	env := newTestApp(t)

	response, _ := env.get(t, "/surfaces/missing", nil)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
}

func TestNotFoundRendersLocalizedPage(t *testing.T) {
	env := newTestApp(t)

	response, body := env.get(t, "/missing", map[string]string{"Accept-Language": "en"})
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Page not found") {
		t.Fatalf("expected localized not found page, got %q", body)
	}

	response, body = env.get(t, "/api/missing", nil)
	if response.StatusCode != http.StatusNotFound || !strings.Contains(body, `"error"`) {
		t.Fatalf("expected json 404, got %d %q", response.StatusCode, body)
	}
}
