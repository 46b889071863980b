// Package db provides PostgreSQL connection management built on pgx.
//
// The package covers pool setup with retry, goose migrations, and
// health/shutdown hooks for the application lifecycle.
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrationsFS, cfg.Database, log); err != nil {
//		return err
//	}
//
// Register db.Healthcheck(pool) with the readiness probe and
// db.Shutdown(pool) with the graceful-shutdown sequence.
package db
