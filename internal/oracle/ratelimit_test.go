package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsBurstUpToCapacity(t *testing.T) {
	rl := NewRateLimiter(10)
	defer rl.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, rl.Wait(ctx))
	}
}

func TestRateLimiterBlocksWhenExhausted(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterCanceledContext(t *testing.T) {
	rl := NewRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, rl.Wait(ctx))
}
