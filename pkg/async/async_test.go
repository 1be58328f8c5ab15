package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhelper/bookingkit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("await returns result", func(t *testing.T) {
		t.Parallel()

		future := async.Async(context.Background(), 21, func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		})

		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.True(t, future.IsComplete())
	})

	t.Run("await surfaces function error", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("delivery failed")
		future := async.Async(context.Background(), "payload", func(ctx context.Context, s string) (string, error) {
			return "", wantErr
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		future := async.Async(ctx, 0, func(ctx context.Context, _ int) (int, error) {
			called = true
			return 0, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("await with timeout expires on slow work", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		future := async.Async(context.Background(), 0, func(ctx context.Context, _ int) (int, error) {
			<-release
			return 7, nil
		})

		_, err := future.AwaitWithTimeout(20 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.False(t, future.IsComplete())

		// The computation keeps running and the result stays available.
		close(release)
		result, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, result)
	})
}
