package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// SentryConfig holds Sentry reporting settings. An empty DSN disables
// reporting and New falls back to plain stdout logging.
type SentryConfig struct {
	DSN         string  `env:"SENTRY_DSN"`
	Environment string  `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	SampleRate  float64 `env:"SENTRY_SAMPLE_RATE" envDefault:"1.0"`
}

// ContextExtractor pulls attributes out of a context, letting middleware
// stash request-scoped values (request ID, tenant) that every log line
// should carry.
type ContextExtractor func(ctx context.Context) []slog.Attr

// New creates a slog logger writing to stdout in the configured format.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	if len(extractors) > 0 {
		h = &contextHandler{next: h, extractors: extractors}
	}
	return slog.New(h)
}

// NewWithSentry creates a logger that additionally forwards warning and
// error records to Sentry. Call the returned flush function during
// shutdown to drain buffered events.
func NewWithSentry(cfg Config, sentryCfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func(), error) {
	if sentryCfg.DSN == "" {
		return New(cfg, extractors...), func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         sentryCfg.DSN,
		Environment: sentryCfg.Environment,
		SampleRate:  sentryCfg.SampleRate,
	}); err != nil {
		return nil, nil, errors.Join(ErrSentryInit, err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var local slog.Handler
	if cfg.Format == "text" {
		local = slog.NewTextHandler(os.Stdout, opts)
	} else {
		local = slog.NewJSONHandler(os.Stdout, opts)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	var h slog.Handler = multiHandler{local, sentryHandler}
	if len(extractors) > 0 {
		h = &contextHandler{next: h, extractors: extractors}
	}

	flush := func() { sentry.Flush(2 * time.Second) }
	return slog.New(h), flush, nil
}

// NewNope returns a logger that discards everything. Useful in tests and
// as an option default.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
