// Package limiter provides fixed-window rate limiting for expensive
// operations, primarily DNS verification attempts. The Redis-backed
// FixedWindow shares counters across app instances; Memory is the
// single-process variant used in tests and local development.
package limiter
