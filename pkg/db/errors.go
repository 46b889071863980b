package db

import "errors"

var (
	ErrParseConfig       = errors.New("db: failed to parse connection config")
	ErrOpenConnection    = errors.New("db: failed to open connection")
	ErrHealthcheckFailed = errors.New("db: healthcheck failed")
	ErrMigrationFailed   = errors.New("db: migration failed")
)
