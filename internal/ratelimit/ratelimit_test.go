package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_ConsumesTokens(t *testing.T) {
	t.Parallel()

	l := New(2, 0.001)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestWait_ReturnsImmediatelyWithTokens(t *testing.T) {
	t.Parallel()

	l := New(1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, l.Wait(ctx))
}

func TestWait_CanceledContext(t *testing.T) {
	t.Parallel()

	l := New(1, 0.001)
	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
}

func TestNewPerMinute(t *testing.T) {
	t.Parallel()

	l := NewPerMinute(600) // 10/sec, burst 20
	assert.InDelta(t, 10, l.Available(), 1)
}

func TestReset(t *testing.T) {
	t.Parallel()

	l := New(1, 0.001)
	require.True(t, l.Allow())
	require.False(t, l.Allow())

	l.Reset()
	assert.True(t, l.Allow())
}
