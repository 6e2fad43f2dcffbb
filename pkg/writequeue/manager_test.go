package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 同一 key 的写操作串行执行，任意时刻至多一个在跑
func TestExecuteSerializesSameKey(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "flipbook", func() error {
				if inFlight.Add(1) > 1 {
					overlapped.Store(true)
				}
				time.Sleep(2 * time.Millisecond)
				inFlight.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, overlapped.Load())
}

// 写操作的返回错误原样透传给提交者
func TestExecuteReturnsFnError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	wantErr := errors.New("unique constraint violated")
	err := m.Execute(context.Background(), "flipbook", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

// 排队位占满后快速失败，不阻塞提交者
func TestExecuteQueueFull(t *testing.T) {
	m := New(&Config{QueueCapacity: 1}, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		m.Shutdown(ctx)
	}()

	started := make(chan struct{})
	release := make(chan struct{})
	go m.Execute(context.Background(), "flipbook", func() error {
		close(started)
		<-release
		return nil
	})
	<-started

	// 占满唯一的排队位
	go m.Execute(context.Background(), "flipbook", func() error { return nil })
	require.Eventually(t, func() bool {
		if v, ok := m.queues.Load("flipbook"); ok {
			return len(v.(*queue).ops) == 1
		}
		return false
	}, time.Second, 5*time.Millisecond)

	err := m.Execute(context.Background(), "flipbook", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueFull)

	close(release)
}

// 超过配置的等待上限时返回超时错误
func TestExecuteTimeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		m.Shutdown(ctx)
	}()

	err := m.Execute(context.Background(), "flipbook", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

// 已取消的 ctx 直接返回取消错误
func TestExecuteContextCancelled(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Execute(ctx, "flipbook", func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

// 关闭后拒绝新的写操作，重复关闭无副作用
func TestShutdown(t *testing.T) {
	m := New(nil, nil)

	require.NoError(t, m.Execute(context.Background(), "flipbook", func() error { return nil }))

	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))

	err := m.Execute(context.Background(), "flipbook", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
}

// 指标反映队列数与关闭状态
func TestGetMetrics(t *testing.T) {
	m := New(nil, nil)

	metrics := m.GetMetrics()
	assert.Equal(t, 100, metrics.QueueCapacity)
	assert.Equal(t, 0, metrics.ActiveQueues)
	assert.False(t, metrics.IsClosed)

	require.NoError(t, m.Execute(context.Background(), "flipbook", func() error { return nil }))
	assert.Equal(t, 1, m.GetMetrics().ActiveQueues)

	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, m.GetMetrics().IsClosed)
}
