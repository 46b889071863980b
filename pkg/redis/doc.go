// Package redis wraps [github.com/redis/go-redis/v9] with env-driven
// configuration, connect-with-retry, and the health/shutdown hooks the
// server wires at startup.
package redis
