package workerpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 任务错误原样带回调用方
func TestPoolSubmitResult(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 2}, nil)
	defer p.Shutdown(context.Background())

	require.NoError(t, p.Submit(context.Background(), func(context.Context) error {
		return nil
	}))

	taskErr := errors.New("blob write failed")
	err := p.Submit(context.Background(), func(context.Context) error {
		return taskErr
	})
	assert.ErrorIs(t, err, taskErr)
}

// worker 占满且队列占满后继续提交返回 ErrWorkerPoolFull
func TestPoolQueueFull(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})

	go p.Submit(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	// 唯一 worker 已被占用，再排入一个任务占满队列
	go p.Submit(context.Background(), func(context.Context) error {
		return nil
	})
	require.Eventually(t, func() bool {
		return p.Stats().Queued == 1
	}, time.Second, 5*time.Millisecond)

	err := p.Submit(context.Background(), func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrWorkerPoolFull)

	close(release)
}

// 等待期间取消 context 返回 ctx.Err()
func TestPoolSubmitCancelled(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 2}, nil)
	defer p.Shutdown(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	go p.Submit(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Submit(ctx, func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}

// 关闭后提交返回 ErrWorkerPoolClosed，存量任务在关闭前执行完
func TestPoolShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 2}, nil)

	ran := false
	require.NoError(t, p.Submit(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}))

	require.NoError(t, p.Shutdown(context.Background()))
	assert.True(t, ran)

	err := p.Submit(context.Background(), func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)

	// 重复关闭直接返回
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPoolStats(t *testing.T) {
	p := New(nil, nil)
	defer p.Shutdown(context.Background())

	stats := p.Stats()
	assert.Equal(t, 100, stats.MaxWorkers)
	assert.Equal(t, 1000, stats.QueueCapacity)
	assert.False(t, stats.Closed)
}
