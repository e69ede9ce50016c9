package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fundflow/internal/adapter/events"
	"fundflow/internal/adapter/state"
	"fundflow/internal/crowdfund"
	"fundflow/internal/http/handlers"
	httpapi "fundflow/internal/http/httpapi"
	"fundflow/internal/infra"
)

func main() {
	infra.LoadDotEnv()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	shutdownTracing, err := infra.SetupTracing(ctx, cfg, "fundflow-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up tracing")
	}

	store, closeStore, err := state.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StateBackend).Msg("failed to open state store")
	}
	defer closeStore()

	sink, closeSinks, err := events.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open event sinks")
	}
	defer closeSinks()

	svc := crowdfund.NewService(store, crowdfund.ContextAuthenticator{},
		crowdfund.WithEventSink(sink),
		crowdfund.WithLogger(logger),
	)

	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:            logger,
		JWTSecret:         cfg.JWTSecret,
		JWTIssuer:         cfg.JWTIssuer,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitPerMin:   cfg.RateLimitPerMin,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("backend", cfg.StateBackend).Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to flush traces")
	}
	logger.Info().Msg("server stopped")
}
