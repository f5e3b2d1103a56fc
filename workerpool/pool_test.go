package workerpool_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/cfnopt/cfnopt/workerpool"
	"github.com/stretchr/testify/require"
)

func TestErrgroupPoolRunsAllTasks(t *testing.T) {
	pool := workerpool.NewErrgroupPool(4)
	var count int64
	const n = 50
	for i := 0; i < n; i++ {
		pool.Go(func() error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	}
	require.NoError(t, pool.Wait())
	require.EqualValues(t, n, count)
}

func TestErrgroupPoolPropagatesFirstError(t *testing.T) {
	pool := workerpool.NewErrgroupPool(2)
	wantErr := errors.New("boom")

	pool.Go(func() error { return nil })
	pool.Go(func() error { return wantErr })
	pool.Go(func() error { return nil })

	err := pool.Wait()
	require.Error(t, err)
}

func TestErrgroupPoolZeroWorkersUsesAllAvailable(t *testing.T) {
	pool := workerpool.NewErrgroupPool(0)
	var count int64
	for i := 0; i < 10; i++ {
		pool.Go(func() error {
			atomic.AddInt64(&count, 1)
			return nil
		})
	}
	require.NoError(t, pool.Wait())
	require.EqualValues(t, 10, count)
}
