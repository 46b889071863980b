package main

import (
	"time"

	"github.com/dmitrymomot/bookingkit/pkg/db"
	"github.com/dmitrymomot/bookingkit/pkg/job"
	"github.com/dmitrymomot/bookingkit/pkg/logger"
	"github.com/dmitrymomot/bookingkit/pkg/mailer"
	"github.com/dmitrymomot/bookingkit/pkg/redis"
)

type config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	// HostingDomain is the CNAME target tenants point their domains at,
	// e.g. apps.bookingkit.live.
	HostingDomain string `env:"HOSTING_DOMAIN,required"`

	// DefaultDomain is the platform's own domain serving landing pages
	// and tenant subdomains, e.g. bookingkit.live.
	DefaultDomain string `env:"DEFAULT_DOMAIN,required"`

	// AppSecret feeds the per-tenant verification code derivation. Keep
	// it stable: rotating it invalidates all pending TXT records.
	AppSecret string `env:"APP_SECRET,required"`

	VerifyAttemptLimit  int           `env:"VERIFY_ATTEMPT_LIMIT" envDefault:"10"`
	VerifyAttemptWindow time.Duration `env:"VERIFY_ATTEMPT_WINDOW" envDefault:"1h"`

	// RecheckCron schedules the periodic re-verification sweep.
	RecheckCron string `env:"DOMAIN_RECHECK_CRON" envDefault:"0 */6 * * *"`

	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`

	Log      logger.Config
	Sentry   logger.SentryConfig
	Database db.Config
	Redis    redis.Config
	Job      job.Config
	Mail     mailer.Config
}
