package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CSV_SOURCE", "CSV_FETCH_TIMEOUT", "UPLOAD_MAX_BYTES", "DEFAULT_LANGUAGE", "COOKIE_SECURE", "CATEGORY_COLUMN", "VALUE_COLUMN"} {
		t.Setenv(key, "")
	}

	cfg := loadConfig(zerolog.Nop())
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.CSVSource != "data/data.csv" {
		t.Fatalf("expected default csv source, got %q", cfg.CSVSource)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("expected 10s fetch timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Fatalf("expected 10 MiB upload limit, got %d", cfg.UploadMaxBytes)
	}
	if cfg.DefaultLanguage != "ja" || cfg.CookieSecure {
		t.Fatalf("unexpected language/cookie defaults: %#v", cfg)
	}
	if cfg.CategoryColumn != "Month" || cfg.ValueColumn != "Sales" {
		t.Fatalf("unexpected column defaults: %#v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CSV_SOURCE", "https://example.com/sales.csv")
	t.Setenv("CSV_FETCH_TIMEOUT", "3s")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CATEGORY_COLUMN", "Quarter")
	t.Setenv("VALUE_COLUMN", "Revenue")

	cfg := loadConfig(zerolog.Nop())
	if cfg.Port != "9090" || cfg.CSVSource != "https://example.com/sales.csv" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.FetchTimeout != 3*time.Second || cfg.UploadMaxBytes != 2048 {
		t.Fatalf("unexpected limits %#v", cfg)
	}
	if cfg.DefaultLanguage != "en" || !cfg.CookieSecure {
		t.Fatalf("unexpected language/cookie %#v", cfg)
	}
	if cfg.CategoryColumn != "Quarter" || cfg.ValueColumn != "Revenue" {
		t.Fatalf("unexpected columns %#v", cfg)
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CSV_FETCH_TIMEOUT", "soon")
	t.Setenv("UPLOAD_MAX_BYTES", "-5")
	t.Setenv("COOKIE_SECURE", "maybe")

	var output bytes.Buffer
	cfg := loadConfig(zerolog.New(&output))
	if cfg.FetchTimeout != defaultFetchTimeout {
		t.Fatalf("expected fallback timeout, got %s", cfg.FetchTimeout)
	}
	if cfg.UploadMaxBytes != defaultUploadMaxBytes {
		t.Fatalf("expected fallback upload limit, got %d", cfg.UploadMaxBytes)
	}
	if cfg.CookieSecure {
		t.Fatal("expected fallback cookie secure flag")
	}
	for _, key := range []string{"CSV_FETCH_TIMEOUT", "UPLOAD_MAX_BYTES", "COOKIE_SECURE"} {
		if !strings.Contains(output.String(), key) {
			t.Fatalf("expected warning for %s, got %q", key, output.String())
		}
	}
}

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if secureConfig.CookieName != "salescharts_csrf" {
		t.Fatalf("expected csrf cookie name salescharts_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "form:csrf_token" {
		t.Fatalf("expected csrf key lookup form:csrf_token, got %q", secureConfig.KeyLookup)
	}
	if secureConfig.ContextKey != "csrf" {
		t.Fatalf("expected csrf context key csrf, got %q", secureConfig.ContextKey)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}
