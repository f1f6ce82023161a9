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

	"connector-hub/config"
	httpHandler "connector-hub/internal/adapter/http/handler"
	"connector-hub/internal/app"
	"connector-hub/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CHUB_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting connector hub API")

	ctx := context.Background()

	// Connect storage and build services
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()
	log.Info().Strs("providers", providerNames(a)).Msg("Storage connected, providers registered")

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ConnectorSvc:   a.ConnectorSvc,
		SyncSvc:        a.SyncSvc,
		CredentialSvc:  a.CredentialSvc,
		GatewaySvc:     a.GatewaySvc,
		EndpointSvc:    a.EndpointSvc,
		TokenSvc:       a.TokenSvc,
		RateLimitStore: a.RateLimitStore,
		RateLimits:     cfg.RateLimit,
		HealthCheckers: a.HealthCheckers,
		AuditSvc:       a.AuditSvc,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MaxWebhookBody: cfg.Server.MaxWebhookBody,
		StatusPageURL:  cfg.OAuth.StatusPageURL,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown. WriteTimeout covers a
	// synchronous sync run.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Sync.Timeout + 30*time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func providerNames(a *app.App) []string {
	var out []string
	for _, p := range a.Registry.Providers() {
		out = append(out, string(p))
	}
	return out
}
