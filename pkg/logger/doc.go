// Package logger builds application slog loggers with optional Sentry
// forwarding and context-aware attribute extraction.
//
// # Usage
//
//	log, flush, err := logger.NewWithSentry(cfg.Log, cfg.Sentry,
//		middlewares.RequestIDExtractor(),
//	)
//	if err != nil {
//		return err
//	}
//	defer flush()
//
// Context extractors run on every record, so middleware can attach
// request-scoped values once and have them appear on all log lines
// produced while handling that request.
//
// When the Sentry DSN is empty, NewWithSentry degrades to a plain
// stdout logger so local development needs no extra configuration.
package logger
