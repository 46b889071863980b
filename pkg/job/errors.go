package job

import "errors"

var (
	ErrClientInit      = errors.New("job: failed to initialize river client")
	ErrInvalidCronSpec = errors.New("job: invalid cron expression")
	ErrMigrationFailed = errors.New("job: failed to migrate river schema")
)
