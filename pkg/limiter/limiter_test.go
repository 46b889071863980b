package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/bookingkit/pkg/limiter"
)

func TestMemory_Allow(t *testing.T) {
	t.Parallel()

	t.Run("enforces limit within window", func(t *testing.T) {
		t.Parallel()

		l := limiter.NewMemory(3, time.Hour)
		ctx := context.Background()

		for i := range 3 {
			ok, err := l.Allow(ctx, "tenant-1")
			require.NoError(t, err)
			assert.True(t, ok, "attempt %d should pass", i+1)
		}

		ok, err := l.Allow(ctx, "tenant-1")
		require.NoError(t, err)
		assert.False(t, ok, "fourth attempt should be limited")
	})

	t.Run("sub-second window does not panic", func(t *testing.T) {
		t.Parallel()

		l := limiter.NewMemory(1, 100*time.Millisecond)
		assert.NotPanics(t, func() {
			ok, err := l.Allow(context.Background(), "tenant-1")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		l := limiter.NewMemory(1, time.Hour)
		ctx := context.Background()

		ok, err := l.Allow(ctx, "tenant-1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = l.Allow(ctx, "tenant-2")
		require.NoError(t, err)
		assert.True(t, ok, "other keys must not share the counter")
	})
}
