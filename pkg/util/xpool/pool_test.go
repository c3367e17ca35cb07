package xpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_Validation(t *testing.T) {
	noop := func(int) {}

	_, err := New[int](1, 1, nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = New(0, 1, noop)
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = New(maxWorkers+1, 1, noop)
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = New(1, 0, noop)
	assert.ErrorIs(t, err, ErrInvalidQueueSize)
}

func TestPool_Basic(t *testing.T) {
	var processed atomic.Int32
	var wg sync.WaitGroup
	wg.Add(5)

	pool, err := New(2, 10, func(int) {
		processed.Add(1)
		wg.Done()
	}, WithName("basic"))
	require.NoError(t, err)
	defer func() { require.NoError(t, pool.Close()) }()

	assert.Equal(t, 2, pool.Workers())
	assert.Equal(t, 10, pool.QueueSize())

	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(i))
	}

	wg.Wait()
	assert.Equal(t, int32(5), processed.Load())
}

func TestPool_QueueFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	pool, err := New(1, 1, func(int) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})
	require.NoError(t, err)

	// 第一个任务占住 worker，第二个占满队列
	require.NoError(t, pool.Submit(1))
	<-started
	require.NoError(t, pool.Submit(2))
	assert.Equal(t, 1, pool.Pending())

	assert.ErrorIs(t, pool.Submit(3), ErrQueueFull)

	close(release)
	require.NoError(t, pool.Close())
}

func TestPool_CloseDrainsQueue(t *testing.T) {
	var processed atomic.Int32
	pool, err := New(1, 16, func(int) {
		time.Sleep(time.Millisecond)
		processed.Add(1)
	})
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, pool.Submit(i))
	}
	require.NoError(t, pool.Close())
	assert.Equal(t, int32(8), processed.Load())

	assert.ErrorIs(t, pool.Submit(9), ErrPoolStopped)
	// 重复关闭安全
	require.NoError(t, pool.Close())
}

func TestPool_ShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	pool, err := New(1, 1, func(int) { <-release })
	require.NoError(t, err)
	require.NoError(t, pool.Submit(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Shutdown(ctx), context.DeadlineExceeded)

	close(release)
	<-pool.Done()

	//nolint:staticcheck // 验证 nil ctx 返回错误
	assert.ErrorIs(t, pool.Shutdown(nil), ErrNilContext)
}

func TestPool_PanicRecovery(t *testing.T) {
	var processed atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)

	pool, err := New(1, 4, func(n int) {
		defer wg.Done()
		if n == 0 {
			panic("boom")
		}
		processed.Add(1)
	}, WithLogger(nil))
	require.NoError(t, err)

	require.NoError(t, pool.Submit(0))
	require.NoError(t, pool.Submit(1))
	wg.Wait()

	require.NoError(t, pool.Close())
	assert.Equal(t, int32(1), processed.Load())
}
