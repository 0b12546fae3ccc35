package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDoSucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return errTransient
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, attempts)
}

func TestPermanentErrorStopsRetrying(t *testing.T) {
	attempts := 0
	wrapped := errors.New("bad credentials")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Permanent(wrapped)
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	assert.Equal(t, wrapped, err)
	assert.Equal(t, 1, attempts)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := Do(ctx, func(context.Context) error {
		attempts++
		cancel()
		return errTransient
	}, WithMaxAttempts(10), WithInitialDelay(50*time.Millisecond))

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, attempts)
}

func TestOnRetryCallback(t *testing.T) {
	var retries int
	err := Do(context.Background(), func(context.Context) error {
		return errTransient
	},
		WithMaxAttempts(3),
		WithInitialDelay(time.Millisecond),
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			retries++
		}),
	)

	assert.Error(t, err)
	// The final attempt has no retry after it.
	assert.Equal(t, 2, retries)
}

func TestDoWithData(t *testing.T) {
	attempts := 0
	result, err := DoWithData(context.Background(), func(context.Context) (int, error) {
		attempts++
		if attempts < 2 {
			return 0, errTransient
		}
		return 42, nil
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestCalculateDelayBackoff(t *testing.T) {
	r := New(
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(300*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 200*time.Millisecond, r.calculateDelay(2))
	// Capped at MaxDelay.
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(3))
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(10))
}

func TestStartupRetrierUsesGivenAttempts(t *testing.T) {
	attempts := 0
	err := StartupRetrier(4, time.Millisecond).Do(context.Background(), func(context.Context) error {
		attempts++
		return errTransient
	})

	assert.Error(t, err)
	assert.Equal(t, 4, attempts)
}
