package limiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCheckFailed indicates the backing store could not answer. Callers
// decide whether to fail open or closed.
var ErrCheckFailed = errors.New("limiter: check failed")

// FixedWindow counts events per key in fixed time windows backed by Redis.
// It is shared-state safe: multiple app instances increment the same
// counter, so the limit holds across the whole deployment.
type FixedWindow struct {
	client redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
}

// NewFixedWindow creates a limiter allowing limit events per window.
func NewFixedWindow(client redis.UniversalClient, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow records an event for key and reports whether it stays within the
// limit. The first event in a window arms the window's expiry, so counters
// clean themselves up.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("%s:%s:%d", l.prefix, key, windowEpoch(l.window))

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Join(ErrCheckFailed, err)
	}

	return incr.Val() <= l.limit, nil
}

// Memory is an in-process fixed-window limiter for tests and single-node
// development setups.
type Memory struct {
	mu     sync.Mutex
	counts map[string]int64
	epoch  map[string]int64
	limit  int64
	window time.Duration
}

// NewMemory creates an in-memory limiter allowing limit events per window.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		counts: make(map[string]int64),
		epoch:  make(map[string]int64),
		limit:  int64(limit),
		window: window,
	}
}

// Allow records an event for key and reports whether it stays within the
// limit.
func (l *Memory) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := windowEpoch(l.window)
	if l.epoch[key] != now {
		l.epoch[key] = now
		l.counts[key] = 0
	}
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

// windowEpoch numbers the current fixed window. Windows shorter than one
// second are floored to a one-second granularity, never a zero divisor.
func windowEpoch(window time.Duration) int64 {
	secs := int64(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return time.Now().Unix() / secs
}
