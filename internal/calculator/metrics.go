package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	intentCounter   metric.Int64Counter
	intentHistogram metric.Float64Histogram
	errorCounter    metric.Int64Counter
	divZeroCounter  metric.Int64Counter
	resultGauge     metric.Float64Gauge
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	intentCounter, err = meter.Int64Counter("calculator.intents.total",
		metric.WithDescription("Total number of keypad intents applied to sessions"),
		metric.WithUnit("{intent}"),
	)
	if err != nil {
		return fmt.Errorf("creating intent counter: %w", err)
	}

	intentHistogram, err = meter.Float64Histogram("calculator.intent.duration",
		metric.WithDescription("Duration of applying intents in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating intent histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	divZeroCounter, err = meter.Int64Counter("calculator.division_by_zero.total",
		metric.WithDescription("Total number of chains discarded by a division by zero"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating division by zero counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The last result shown by any session"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
