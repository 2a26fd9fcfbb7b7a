package main

import (
	"context"

	"tapecalc/internal/calculator"
	"tapecalc/internal/config"
	"tapecalc/internal/observability"
)

// initTelemetry starts the OTLP pipelines the configuration asks for and
// registers the calculator's metric instruments. The returned function
// shuts every started pipeline down.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context), error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) {
		for i := len(shutdowns) - 1; i >= 0; i-- {
			_ = shutdowns[i](ctx)
		}
	}

	if cfg.Telemetry {
		traceShutdown, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, metricShutdown)
	}

	if cfg.OTLPLogs {
		logShutdown, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	// Instruments come from the global meter, so this runs after InitMetrics.
	if err := calculator.InitMetrics(); err != nil {
		shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
