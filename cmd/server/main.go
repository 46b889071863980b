package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/bookingkit/internal/handlers"
	"github.com/dmitrymomot/bookingkit/internal/notify"
	"github.com/dmitrymomot/bookingkit/internal/tasks"
	"github.com/dmitrymomot/bookingkit/middlewares"
	"github.com/dmitrymomot/bookingkit/pkg/db"
	"github.com/dmitrymomot/bookingkit/pkg/domainconfig"
	"github.com/dmitrymomot/bookingkit/pkg/health"
	"github.com/dmitrymomot/bookingkit/pkg/hostrouter"
	"github.com/dmitrymomot/bookingkit/pkg/job"
	"github.com/dmitrymomot/bookingkit/pkg/limiter"
	"github.com/dmitrymomot/bookingkit/pkg/logger"
	"github.com/dmitrymomot/bookingkit/pkg/mailer"
	redisconn "github.com/dmitrymomot/bookingkit/pkg/redis"
	"github.com/dmitrymomot/bookingkit/pkg/tenant"
	"github.com/dmitrymomot/bookingkit/pkg/tenant/postgres"
	"github.com/riverqueue/river"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	log, flush, err := logger.NewWithSentry(cfg.Log, cfg.Sentry, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	defer flush()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, postgres.Migrations(), cfg.Database, log); err != nil {
		return err
	}
	if err := job.Migrate(ctx, pool); err != nil {
		return err
	}

	redisClient, err := redisconn.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	store := postgres.NewStore(pool)
	gen, err := domainconfig.New(cfg.HostingDomain, cfg.AppSecret)
	if err != nil {
		return err
	}

	var sender mailer.Sender
	if s, err := mailer.NewResendSender(cfg.Mail); err == nil {
		sender = s
	} else {
		log.Warn("no resend api key, email disabled")
		sender = mailer.Noop{}
	}

	svc := tenant.NewService(store, gen, cfg.HostingDomain,
		tenant.WithAttemptLimiter(limiter.NewFixedWindow(
			redisClient, "bookingkit", cfg.VerifyAttemptLimit, cfg.VerifyAttemptWindow,
		)),
		tenant.WithNotifier(notify.NewEmailNotifier(mailer.New(sender))),
		tenant.WithLogger(log),
	)
	resolver := tenant.NewResolver(store, cfg.HostingDomain, cfg.DefaultDomain)

	recheck, err := job.WithCronJob(cfg.RecheckCron, func() river.JobArgs {
		return tasks.RecheckDomainsArgs{}
	})
	if err != nil {
		return err
	}
	jobs, err := job.NewManager(pool, cfg.Job, log,
		job.WithWorker(&tasks.RecheckDomainsWorker{Service: svc}),
		recheck,
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: buildRouter(cfg, log, svc, resolver, store,
			db.Healthcheck(pool),
			redisconn.Healthcheck(redisClient),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return jobs.Start(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := jobs.Stop(shutdownCtx); err != nil {
			log.Error("job manager stop failed", slog.Any("error", err))
		}
		err := srv.Shutdown(shutdownCtx)

		// The pool and client are still serving in-flight requests until
		// the server drains, so close them last.
		if err := redisconn.Shutdown(redisClient)(shutdownCtx); err != nil {
			log.Error("redis shutdown failed", slog.Any("error", err))
		}
		if err := db.Shutdown(pool)(shutdownCtx); err != nil {
			log.Error("database shutdown failed", slog.Any("error", err))
		}
		return err
	})

	return g.Wait()
}

// buildRouter assembles the host-split routing tree: platform hosts get
// the management API, everything else goes through tenant resolution.
func buildRouter(
	cfg config,
	log *slog.Logger,
	svc *tenant.Service,
	resolver *tenant.Resolver,
	store tenant.Store,
	readiness ...health.CheckFunc,
) http.Handler {
	platform := chi.NewRouter()
	platform.Use(middlewares.RequestID())
	platform.Use(middlewares.Recover(log))
	platform.Use(middlewares.OriginTrust(resolver.IsOriginTrusted,
		middlewares.WithTrustedOrigins(
			"https://"+cfg.DefaultDomain,
			"https://www."+cfg.DefaultDomain,
		),
	))
	handlers.NewDomainHandler(svc, log).Routes(platform)
	handlers.NewBookingHandler(store, log).Routes(platform)

	tenants := chi.NewRouter()
	tenants.Use(middlewares.RequestID())
	tenants.Use(middlewares.Recover(log))
	tenants.Use(middlewares.ResolveTenant(resolver))
	tenants.Use(middlewares.OriginTrust(resolver.IsOriginTrusted))
	handlers.NewBookingHandler(store, log).Routes(tenants)

	hr := hostrouter.New(tenants)
	hr.Map(cfg.DefaultDomain, platform)
	hr.Map("www."+cfg.DefaultDomain, platform)
	hr.Map("*."+cfg.DefaultDomain, tenants)
	hr.Map("localhost", platform)

	root := chi.NewRouter()
	root.Get("/healthz", health.LivenessHandler())
	root.Get("/readyz", health.ReadinessHandler(readiness...))
	root.Mount("/", hr)
	return root
}
