package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/salescharts/internal/api"
	"github.com/terraincognita07/salescharts/internal/chart"
	"github.com/terraincognita07/salescharts/internal/i18n"
	"github.com/terraincognita07/salescharts/internal/loader"
	"github.com/terraincognita07/salescharts/internal/logging"
	"github.com/terraincognita07/salescharts/internal/models"
	"github.com/terraincognita07/salescharts/internal/services"
)

const (
	defaultFetchTimeout   = 10 * time.Second
	defaultUploadMaxBytes = 10 << 20
)

type config struct {
	Port            string
	CSVSource       string
	FetchTimeout    time.Duration
	UploadMaxBytes  int
	DefaultLanguage string
	CookieSecure    bool
	CategoryColumn  string
	ValueColumn     string
}

func main() {
	logger := logging.New(os.Stdout, getEnv("LOG_LEVEL", "info"), getEnv("LOG_FORMAT", logging.FormatConsole))
	cfg := loadConfig(logger)

	surfaces := chart.NewRegistry(api.ServerSurfaceID, api.UploadSurfaceID)
	rows := loader.NewLoader(logger, cfg.CategoryColumn, cfg.ValueColumn)
	builder := services.NewSeriesBuilder(cfg.CategoryColumn, cfg.ValueColumn, services.DefaultSeriesLabel)
	dashboards := api.Dashboards{
		Server: services.NewDashboardService(api.VariantServer, rows, builder,
			chart.NewController(surfaces, api.ServerSurfaceID, chart.DefaultOptions(), logger), logger),
		Upload: services.NewDashboardService(api.VariantUpload, rows, builder,
			chart.NewController(surfaces, api.UploadSurfaceID, chart.DefaultOptions(), logger), logger),
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales, "locales")
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n init failed")
	}

	handler, err := api.NewHandler(dashboards, surfaces, i18nManager, cfg.CookieSecure, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("handler init failed")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Sales Charts",
		DisableStartupMessage: true,
		BodyLimit:             cfg.UploadMaxBytes,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	source := loader.SourceFor(cfg.CSVSource, cfg.FetchTimeout)
	if fileSource, ok := source.(loader.FileSource); ok {
		app.Static("/data.csv", fileSource.Path)
	}
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	go func() {
		if _, err := dashboards.Server.Run(lifecycleCtx, source); err != nil {
			logger.Error().Err(err).Str("source", source.Name()).Msg("startup load failed")
		}
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	logger.Info().
		Str("addr", "http://0.0.0.0:"+cfg.Port).
		Str("source", source.Name()).
		Str("language", i18nManager.DefaultLanguage()).
		Msg("salescharts listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func loadConfig(logger zerolog.Logger) config {
	return config{
		Port:            getEnv("PORT", "8080"),
		CSVSource:       getEnv("CSV_SOURCE", filepath.Join("data", "data.csv")),
		FetchTimeout:    parseDurationEnv(logger, "CSV_FETCH_TIMEOUT", defaultFetchTimeout),
		UploadMaxBytes:  parsePositiveIntEnv(logger, "UPLOAD_MAX_BYTES", defaultUploadMaxBytes),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", i18n.LangJA),
		CookieSecure:    parseBoolEnv(logger, "COOKIE_SECURE", false),
		CategoryColumn:  getEnv("CATEGORY_COLUMN", models.DefaultCategoryKey),
		ValueColumn:     getEnv("VALUE_COLUMN", models.DefaultValueKey),
	}
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "salescharts_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

func parseDurationEnv(logger zerolog.Logger, key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		logger.Warn().Str("key", key).Str("value", raw).Dur("fallback", fallback).Msg("invalid duration, using fallback")
		return fallback
	}
	return value
}

func parsePositiveIntEnv(logger zerolog.Logger, key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		logger.Warn().Str("key", key).Str("value", raw).Int("fallback", fallback).Msg("invalid integer, using fallback")
		return fallback
	}
	return value
}

func parseBoolEnv(logger zerolog.Logger, key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Bool("fallback", fallback).Msg("invalid boolean, using fallback")
		return fallback
	}
	return value
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
