package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"tapecalc/internal/calculator"
	"tapecalc/internal/config"
	"tapecalc/internal/observability"
	"tapecalc/internal/server"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, logs
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer telemetryShutdown(context.Background())

	// Sessions
	store := calculator.NewStore(cfg.SessionOptions())
	prometheus.MustRegister(store.Collector("calculator_sessions_active", "Number of live calculator sessions."))
	go store.Run(ctx, cfg.SweepInterval, observability.Logger)

	// Router
	router := server.NewRouter(store, nil)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("service", cfg.ServiceName),
			zap.Bool("telemetry", cfg.Telemetry),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	waitForShutdown(ctx, srv, cfg)
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg config.Config) {

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		observability.Logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	observability.Logger.Info("server stopped")
}
