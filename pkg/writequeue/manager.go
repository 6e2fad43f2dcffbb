// Package writequeue 按 key 串行化数据库写操作。
// sqlite 并发写会报 "database is locked"，写操作经同一条队列排队逐个执行即可规避。
package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrWriteQueueFull 队列已满，写操作被拒绝
	ErrWriteQueueFull = errors.New("write queue is full")
	// ErrWriteQueueClosed 管理器已关闭
	ErrWriteQueueClosed = errors.New("write queue is closed")
	// ErrWriteTimeout 等待写结果超时
	ErrWriteTimeout = errors.New("write operation timeout")
)

// Config 写队列配置
type Config struct {
	QueueCapacity int           // 每个 key 的排队深度，默认 100
	WriteTimeout  time.Duration // 单次写操作的等待上限，默认 30 秒
	IdleTimeout   time.Duration // 空闲队列回收阈值，默认 10 分钟
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		QueueCapacity: 100,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   10 * time.Minute,
	}
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = d.QueueCapacity
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
}

// op 一次排队的写操作，result 缓冲 1，worker 写入结果时不会阻塞
type op struct {
	ctx    context.Context
	fn     func() error
	result chan error
}

// queue 单个 key 的串行队列，由一个 worker 独占消费
type queue struct {
	key      string
	ops      chan op
	lastUsed atomic.Int64
	closed   atomic.Bool
	stop     chan struct{}
	done     sync.WaitGroup
}

func (q *queue) touch() {
	q.lastUsed.Store(time.Now().UnixNano())
}

func (q *queue) run(o op) {
	q.touch()
	if o.ctx.Err() != nil {
		o.result <- o.ctx.Err()
		return
	}
	o.result <- o.fn()
}

// flush 清空积压操作后返回，等待中的提交者仍能拿到结果
func (q *queue) flush() {
	for {
		select {
		case o := <-q.ops:
			q.run(o)
		default:
			return
		}
	}
}

// Manager 管理全部 key 的写队列，按需创建并回收空闲队列
type Manager struct {
	conf Config
	log  *zap.Logger

	queues sync.Map // map[string]*queue

	rootCtx context.Context
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool

	janitorStop chan struct{}
	janitorWg   sync.WaitGroup
}

// New 创建写队列管理器，cfg 为 nil 时使用默认配置
func New(cfg *Config, lg *zap.Logger) *Manager {
	conf := DefaultConfig()
	if cfg != nil {
		conf = *cfg
	}
	conf.normalize()

	if lg == nil {
		lg = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		conf:        conf,
		log:         lg,
		rootCtx:     ctx,
		cancel:      cancel,
		janitorStop: make(chan struct{}),
	}

	m.janitorWg.Add(1)
	go m.janitor()

	m.log.Info("write queue manager started",
		zap.Int("queueCapacity", conf.QueueCapacity),
		zap.Duration("writeTimeout", conf.WriteTimeout),
		zap.Duration("idleTimeout", conf.IdleTimeout))
	return m
}

// Execute 将写操作提交到 key 对应的队列并等待执行结果。
// 同一 key 的操作按 FIFO 串行执行，队列满时立即返回 ErrWriteQueueFull。
func (m *Manager) Execute(ctx context.Context, key string, fn func() error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrWriteQueueClosed
	}
	m.mu.RUnlock()

	q := m.obtain(key)
	if q == nil {
		return ErrWriteQueueClosed
	}

	o := op{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case q.ops <- o:
	default:
		return ErrWriteQueueFull
	}

	// 等待上限取配置超时与 ctx 剩余时间中较小者
	wait := m.conf.WriteTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case err := <-o.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWriteTimeout
	case <-m.rootCtx.Done():
		return ErrWriteQueueClosed
	}
}

// obtain 取 key 的队列，不存在则创建并启动 worker
func (m *Manager) obtain(key string) *queue {
	if v, ok := m.queues.Load(key); ok {
		q := v.(*queue)
		if !q.closed.Load() {
			q.touch()
			return q
		}
	}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return nil
	}
	m.mu.RUnlock()

	q := &queue{
		key:  key,
		ops:  make(chan op, m.conf.QueueCapacity),
		stop: make(chan struct{}),
	}
	q.touch()

	if v, loaded := m.queues.LoadOrStore(key, q); loaded {
		existing := v.(*queue)
		if !existing.closed.Load() {
			// 并发创建时复用已有队列
			close(q.stop)
			existing.touch()
			return existing
		}
		// 已回收的队列残留在 map 中，用新队列顶替
		m.queues.Store(key, q)
	}

	q.done.Add(1)
	go m.serve(q)

	m.log.Debug("created write queue",
		zap.String("key", key),
		zap.Int("capacity", m.conf.QueueCapacity))
	return q
}

// serve 消费单个队列，直到管理器关闭或队列被回收
func (m *Manager) serve(q *queue) {
	defer q.done.Done()
	defer func() {
		q.closed.Store(true)
		m.log.Debug("write queue worker stopped", zap.String("key", q.key))
	}()

	for {
		select {
		case <-m.rootCtx.Done():
			q.flush()
			return
		case <-q.stop:
			q.flush()
			return
		case o := <-q.ops:
			q.run(o)
		}
	}
}

// janitor 周期性回收空闲队列
func (m *Manager) janitor() {
	defer m.janitorWg.Done()

	ticker := time.NewTicker(m.conf.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.rootCtx.Done():
			return
		case <-m.janitorStop:
			return
		case <-ticker.C:
			m.sweepIdle()
		}
	}
}

// sweepIdle 回收超过空闲阈值且无积压的队列，closed 的交换保证 stop 只被关闭一次
func (m *Manager) sweepIdle() {
	now := time.Now().UnixNano()
	idle := m.conf.IdleTimeout.Nanoseconds()

	m.queues.Range(func(k, v any) bool {
		q := v.(*queue)
		age := now - q.lastUsed.Load()
		if age <= idle || len(q.ops) != 0 {
			return true
		}
		if q.closed.Swap(true) {
			return true
		}
		m.log.Debug("recycling idle write queue",
			zap.String("key", q.key),
			zap.Duration("idle", time.Duration(age)))
		close(q.stop)
		m.queues.Delete(k)
		return true
	})
}

// Shutdown 关闭管理器并等待在途写操作完成，ctx 控制等待上限
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	m.log.Info("write queue manager shutting down")
	close(m.janitorStop)

	done := make(chan struct{})
	go func() {
		m.queues.Range(func(_, v any) bool {
			q := v.(*queue)
			if !q.closed.Swap(true) {
				close(q.stop)
			}
			return true
		})
		m.queues.Range(func(_, v any) bool {
			v.(*queue).done.Wait()
			return true
		})
		m.janitorWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.log.Info("write queue manager shutdown completed")
		m.cancel()
		return nil
	case <-ctx.Done():
		m.log.Warn("write queue manager shutdown timeout, forcing cancellation")
		m.cancel()
		return ctx.Err()
	}
}

// ActiveQueues 当前存活的队列数
func (m *Manager) ActiveQueues() int {
	n := 0
	m.queues.Range(func(_, v any) bool {
		if !v.(*queue).closed.Load() {
			n++
		}
		return true
	})
	return n
}

// Metrics 管理器运行指标
type Metrics struct {
	QueueCapacity int
	ActiveQueues  int
	IsClosed      bool
}

// GetMetrics 汇总当前指标
func (m *Manager) GetMetrics() Metrics {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()

	return Metrics{
		QueueCapacity: m.conf.QueueCapacity,
		ActiveQueues:  m.ActiveQueues(),
		IsClosed:      closed,
	}
}
