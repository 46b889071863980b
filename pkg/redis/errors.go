package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis: connection URL is required")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed   = errors.New("redis: connection failed")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
)
