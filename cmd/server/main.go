package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/flexliner/subtitles/internal/api"
	"github.com/flexliner/subtitles/internal/client"
	"github.com/flexliner/subtitles/internal/config"
	"github.com/flexliner/subtitles/internal/metrics"
	"github.com/flexliner/subtitles/internal/services"
	"github.com/flexliner/subtitles/internal/storage"
	"github.com/flexliner/subtitles/internal/tracks"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("public_dir", cfg.PublicDir).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("cache_provider", cfg.Cache.Provider).
		Str("storage_provider", cfg.Storage.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
			logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := client.NewSourceCache(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create source cache")
	}
	fetcher := client.NewFetcher(cfg, sources)
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close fetcher")
		}
	}()

	uploader, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create uploader")
	}

	store, err := tracks.Open(ctx, cfg.Tracks.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Tracks.DatabasePath).Msg("Failed to open track store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close track store")
		}
	}()

	service := services.NewSubtitleService(fetcher, uploader, store)

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(service, api.Options{
		MaxUploadSize: cfg.Storage.MaxUploadSize,
		PublicDir:     cfg.PublicDir,
	})

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", address).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Handle graceful shutdown
	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			logger.Error().Err(err).Msg("Failed to serve HTTP")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}

	logger.Info().Msg("Server stopped gracefully")
}
