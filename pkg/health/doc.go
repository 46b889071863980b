// Package health provides liveness and readiness HTTP handlers.
//
// Liveness answers "is the process running", readiness answers "can it
// serve traffic". Wire dependency probes (database ping, redis ping)
// into ReadinessHandler only.
package health
