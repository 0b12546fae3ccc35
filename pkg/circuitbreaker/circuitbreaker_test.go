package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail(context.Context) error { return errBoom }
func ok(context.Context) error   { return nil }

func TestBreakerOpensAfterThreshold(t *testing.T) {
	cb := New("test", WithFailureThreshold(3))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	}
	assert.True(t, cb.IsOpen())

	// Blocked calls return ErrCircuitOpen without running the function.
	ran := false
	err := cb.Execute(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ran)
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithSuccessThreshold(1),
		WithTimeout(10*time.Millisecond),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))
	require.True(t, cb.IsOpen())

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, cb.Execute(ctx, ok))
	assert.True(t, cb.IsClosed())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(10*time.Millisecond),
	)
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, fail))
	assert.True(t, cb.IsOpen())
}

func TestBreakerStateChangeCallback(t *testing.T) {
	var transitions []string
	cb := New("test",
		WithFailureThreshold(1),
		WithOnStateChange(func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		}),
	)

	require.Error(t, cb.Execute(context.Background(), fail))
	assert.Equal(t, []string{"closed->open"}, transitions)
}

func TestExecuteWithFallback(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))

	var fellBack bool
	err := cb.ExecuteWithFallback(ctx, ok, func(error) error {
		fellBack = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, fellBack)
}

func TestReset(t *testing.T) {
	cb := New("test", WithFailureThreshold(1))
	require.Error(t, cb.Execute(context.Background(), fail))
	require.True(t, cb.IsOpen())

	cb.Reset()
	assert.True(t, cb.IsClosed())
	assert.Equal(t, Counts{}, cb.Counts())
}

func TestCacheBreakerPreset(t *testing.T) {
	cb := CacheBreaker(nil)
	assert.Equal(t, "analytics-cache", cb.Name())
	assert.True(t, cb.IsClosed())
}
