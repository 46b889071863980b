package job

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"
)

// Config holds background worker settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	MaxWorkers  int           `env:"JOB_MAX_WORKERS" envDefault:"10"`
	StopTimeout time.Duration `env:"JOB_STOP_TIMEOUT" envDefault:"30s"`
}

// Manager runs background jobs on river backed by the application's
// postgres pool, so job enqueues can share transactions with domain
// writes.
type Manager struct {
	client      *river.Client[pgx.Tx]
	stopTimeout time.Duration
}

// Option configures the Manager during construction.
type Option func(*managerOptions)

type managerOptions struct {
	workers  *river.Workers
	periodic []*river.PeriodicJob
}

// WithWorker registers a worker for its job kind.
func WithWorker[T river.JobArgs](worker river.Worker[T]) Option {
	return func(o *managerOptions) {
		river.AddWorker(o.workers, worker)
	}
}

// WithCronJob schedules a job on a standard 5-field cron expression.
func WithCronJob(spec string, newArgs func() river.JobArgs) (Option, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.Join(ErrInvalidCronSpec, err)
	}
	opt := func(o *managerOptions) {
		o.periodic = append(o.periodic, river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) { return newArgs(), nil },
			&river.PeriodicJobOpts{RunOnStart: false},
		))
	}
	return opt, nil
}

// NewManager creates a Manager. Workers must be registered here; river
// rejects late registration.
func NewManager(pool *pgxpool.Pool, cfg Config, log *slog.Logger, opts ...Option) (*Manager, error) {
	options := managerOptions{workers: river.NewWorkers()}
	for _, opt := range opts {
		opt(&options)
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: cfg.MaxWorkers},
		},
		Workers:      options.workers,
		PeriodicJobs: options.periodic,
		Logger:       log,
	})
	if err != nil {
		return nil, errors.Join(ErrClientInit, err)
	}

	return &Manager{client: client, stopTimeout: cfg.StopTimeout}, nil
}

// Start begins fetching and working jobs.
func (m *Manager) Start(ctx context.Context) error {
	return m.client.Start(ctx)
}

// Stop drains running jobs, waiting up to the configured stop timeout
// before a hard stop.
func (m *Manager) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.stopTimeout)
	defer cancel()
	if err := m.client.Stop(ctx); err != nil {
		return m.client.StopAndCancel(context.WithoutCancel(ctx))
	}
	return nil
}

// Enqueue inserts a job for asynchronous processing.
func (m *Manager) Enqueue(ctx context.Context, args river.JobArgs) error {
	_, err := m.client.Insert(ctx, args, nil)
	return err
}
