package gencache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetOrGenerate_CachesResult(t *testing.T) {
	cache := New[string](16, time.Minute)
	var calls atomic.Int64

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrGenerate(context.Background(), "fp", func(ctx context.Context) (string, error) {
			calls.Add(1)
			return "payload", nil
		})
		require.NoError(t, err)
		require.Equal(t, "payload", got)
	}
	require.Equal(t, int64(1), calls.Load())
	require.Equal(t, 1, cache.Len())
}

func TestGetOrGenerate_ConcurrentCallersCoalesce(t *testing.T) {
	cache := New[string](16, time.Minute)
	var calls atomic.Int64
	generate := func(ctx context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "payload", nil
	}

	const workers = 32
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			got, err := cache.GetOrGenerate(context.Background(), "same-fingerprint", generate)
			require.NoError(t, err)
			results[idx] = got
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1), calls.Load())
	for _, got := range results {
		require.Equal(t, "payload", got)
	}
}

func TestGetOrGenerate_DistinctFingerprintsDoNotCoalesce(t *testing.T) {
	cache := New[string](16, time.Minute)
	var calls atomic.Int64
	generate := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "payload", nil
	}

	_, err := cache.GetOrGenerate(context.Background(), "a", generate)
	require.NoError(t, err)
	_, err = cache.GetOrGenerate(context.Background(), "b", generate)
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
}

func TestGetOrGenerate_ErrorNotCached(t *testing.T) {
	cache := New[string](16, time.Minute)
	var calls atomic.Int64
	boom := errors.New("provider down")

	_, err := cache.GetOrGenerate(context.Background(), "fp", func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cache.Len())

	// The failed claim is released: the next caller generates again.
	got, err := cache.GetOrGenerate(context.Background(), "fp", func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "recovered", nil
	})
	require.NoError(t, err)
	require.Equal(t, "recovered", got)
	require.Equal(t, int64(2), calls.Load())
}

func TestGetOrGenerate_TimeoutReleasesClaim(t *testing.T) {
	cache := New[string](16, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := cache.GetOrGenerate(ctx, "fp", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	got, err := cache.GetOrGenerate(context.Background(), "fp", func(ctx context.Context) (string, error) {
		return "second try", nil
	})
	require.NoError(t, err)
	require.Equal(t, "second try", got)
}
