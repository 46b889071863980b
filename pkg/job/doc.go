// Package job wraps river for background and periodic work.
//
// Jobs persist in postgres alongside the application's own tables, so a
// crashed worker never loses an enqueued job. Periodic jobs use
// standard cron expressions.
//
//	recheck, err := job.WithCronJob("0 */6 * * *", func() river.JobArgs {
//		return tasks.RecheckDomainsArgs{}
//	})
//	if err != nil {
//		return err
//	}
//	mgr, err := job.NewManager(pool, cfg.Job, log,
//		job.WithWorker(&tasks.RecheckDomainsWorker{Service: svc}),
//		recheck,
//	)
//
// Start the manager with the server's lifecycle group and call Stop
// during graceful shutdown to drain in-flight jobs.
package job
