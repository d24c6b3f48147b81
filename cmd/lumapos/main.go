package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumapos/lumapos/internal/app"
	"github.com/lumapos/lumapos/internal/auth"
	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/insights"
	"github.com/lumapos/lumapos/internal/observability"
	"github.com/lumapos/lumapos/internal/platform/store"
	"github.com/lumapos/lumapos/internal/reporting"
	"github.com/lumapos/lumapos/internal/sales"
	"github.com/lumapos/lumapos/internal/settings"
	"github.com/lumapos/lumapos/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	st, err := store.New(ctx, redisClient)
	if err != nil {
		logger.Error("connect store", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, "lumapos_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	authService := auth.NewService(st, cfg.AdminPassword)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	catalogRepo := catalog.NewRepository(st)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	salesRepo := sales.NewRepository(st)
	salesService := sales.NewService(salesRepo, logger)
	salesHandler := sales.NewHandler(logger, salesService)

	reportingService := reporting.NewService(salesService)
	reportingHandler := reporting.NewHandler(logger, reportingService)

	settingsRepo := settings.NewRepository(st)
	settingsService := settings.NewService(settingsRepo, logger)
	settingsHandler := settings.NewHandler(logger, settingsService)

	var generator insights.Generator
	if cfg.GeminiAPIKey != "" {
		generator = insights.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	insightsService := insights.NewService(logger, reportingService, catalogService, settingsService, generator, insights.NewProxyClient())
	insightsHandler := insights.NewHandler(logger, insightsService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		AuthHandler:      authHandler,
		CatalogHandler:   catalogHandler,
		SalesHandler:     salesHandler,
		ReportingHandler: reportingHandler,
		InsightsHandler:  insightsHandler,
		SettingsHandler:  settingsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
