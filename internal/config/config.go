// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"tapecalc/internal/sessions"
)

// Config holds every setting the calculator binaries read.
type Config struct {
	// Addr is the HTTP listen address from CALC_ADDR.
	Addr string `env:"CALC_ADDR" envDefault:":8080"`
	// LogLevel is the zap level from CALC_LOG_LEVEL.
	LogLevel string `env:"CALC_LOG_LEVEL" envDefault:"info"`
	// LogFormat is "json" or "console" from CALC_LOG_FORMAT.
	LogFormat string `env:"CALC_LOG_FORMAT" envDefault:"json"`
	// ServiceName is the OTel service name from OTEL_SERVICE_NAME.
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"tapecalc"`
	// Telemetry toggles the OTLP trace and metric exporters.
	Telemetry bool `env:"CALC_TELEMETRY" envDefault:"true"`
	// OTLPLogs tees logs to the OTLP log exporter.
	OTLPLogs bool `env:"CALC_OTLP_LOGS" envDefault:"false"`

	// SessionTTL evicts sessions idle for longer than this; 0 disables eviction.
	SessionTTL time.Duration `env:"CALC_SESSION_TTL" envDefault:"30m"`
	// SweepInterval is how often idle sessions are looked for.
	SweepInterval time.Duration `env:"CALC_SWEEP_INTERVAL" envDefault:"1m"`
	// MaxSessions caps live sessions; 0 means unlimited.
	MaxSessions int `env:"CALC_MAX_SESSIONS" envDefault:"10000"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `env:"CALC_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads .env files (missing ones are ignored) and then parses the
// process environment. Variables already set are not overridden by files.
func Load(files ...string) (Config, error) {
	if err := loadDotEnv(files...); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work together.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid CALC_LOG_FORMAT %q", c.LogFormat)
	}
	if c.SessionTTL < 0 || c.SweepInterval < 0 {
		return errors.New("session durations must not be negative")
	}
	if c.MaxSessions < 0 {
		return errors.New("CALC_MAX_SESSIONS must not be negative")
	}
	return nil
}

// SessionOptions maps the session settings onto the store options.
func (c Config) SessionOptions() sessions.Options {
	return sessions.Options{
		TTL:         c.SessionTTL,
		MaxSessions: c.MaxSessions,
	}
}

// loadDotEnv loads each file in order, defaulting to .env. Missing files are
// skipped. Existing process environment variables are not overridden.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		err := godotenv.Load(file)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", file, err)
	}
	return nil
}
