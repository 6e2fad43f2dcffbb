// Package workerpool 提供固定容量的任务池，上传落盘等重 IO 操作经池提交执行，
// 并发量由 worker 数与排队深度共同约束
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrWorkerPoolFull 队列已满时返回，调用方可据此向客户端返回限流错误
	ErrWorkerPoolFull = errors.New("worker pool queue is full")
	// ErrWorkerPoolClosed 池已关闭时返回
	ErrWorkerPoolClosed = errors.New("worker pool is closed")
	// ErrTaskCancelled 任务在开始执行前 context 已取消时返回
	ErrTaskCancelled = errors.New("task was cancelled")
)

// Config 任务池配置
type Config struct {
	// MaxWorkers 并发 worker 数，默认 100
	MaxWorkers int
	// QueueSize 等待队列深度，默认 1000
	QueueSize int
	// WarningPercent 活跃数达到该比例时记录告警日志，默认 0.8
	WarningPercent float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     100,
		QueueSize:      1000,
		WarningPercent: 0.8,
	}
}

func (c *Config) normalize() {
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = 100
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1000
	}
	if c.WarningPercent <= 0 || c.WarningPercent > 1 {
		c.WarningPercent = 0.8
	}
}

// job 单次提交，result 缓冲为 1，worker 投递结果不会阻塞
type job struct {
	ctx    context.Context
	fn     func(context.Context) error
	result chan error
}

// Pool 固定 worker 数的任务池
type Pool struct {
	conf   Config
	log    *zap.Logger
	warnAt int64

	queue chan job
	wg    sync.WaitGroup

	running atomic.Int64

	rootCtx context.Context
	stop    context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New 创建任务池并启动全部 worker
// cfg 为 nil 时使用默认配置，logger 为 nil 时不输出日志
func New(cfg *Config, logger *zap.Logger) *Pool {
	var conf Config
	if cfg != nil {
		conf = *cfg
	} else {
		conf = DefaultConfig()
	}
	conf.normalize()

	if logger == nil {
		logger = zap.NewNop()
	}

	rootCtx, stop := context.WithCancel(context.Background())

	p := &Pool{
		conf:    conf,
		log:     logger,
		warnAt:  int64(float64(conf.MaxWorkers) * conf.WarningPercent),
		queue:   make(chan job, conf.QueueSize),
		rootCtx: rootCtx,
		stop:    stop,
	}

	for i := 0; i < conf.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.drain()
	}

	p.log.Info("worker pool started",
		zap.Int("maxWorkers", conf.MaxWorkers),
		zap.Int("queueSize", conf.QueueSize))

	return p
}

// drain worker 主循环，从队列取任务执行直到池关闭
func (p *Pool) drain() {
	defer p.wg.Done()

	for {
		select {
		case <-p.rootCtx.Done():
			return
		case j, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(j)
		}
	}
}

func (p *Pool) run(j job) {
	active := p.running.Add(1)
	defer p.running.Add(-1)

	if active >= p.warnAt {
		p.log.Warn("worker pool approaching capacity",
			zap.Int64("running", active),
			zap.Int("maxWorkers", p.conf.MaxWorkers))
	}

	// 排队期间调用方可能已放弃
	if j.ctx.Err() != nil {
		j.result <- ErrTaskCancelled
		return
	}
	j.result <- j.fn(j.ctx)
}

// Submit 提交任务并等待其完成，返回任务自身的错误。
// 队列满返回 ErrWorkerPoolFull，池已关闭返回 ErrWorkerPoolClosed，
// 等待期间 ctx 取消则返回 ctx.Err()，任务可能仍会被执行。
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) error) error {
	j := job{
		ctx:    ctx,
		fn:     fn,
		result: make(chan error, 1),
	}

	// 读锁覆盖入队动作，确保不会向已关闭的队列发送
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrWorkerPoolClosed
	}
	select {
	case p.queue <- j:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		return ErrWorkerPoolFull
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.rootCtx.Done():
		return ErrWorkerPoolClosed
	}
}

// Shutdown 停止接收新任务并等待存量任务执行完成
// ctx 超时后强制取消仍在运行的 worker
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	// 写锁内关闭队列，此后不会再有 Submit 入队
	close(p.queue)
	p.mu.Unlock()

	p.log.Info("worker pool shutting down",
		zap.Int64("running", p.running.Load()),
		zap.Int("queued", len(p.queue)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("worker pool shutdown completed")
		return nil
	case <-ctx.Done():
		p.stop()
		p.log.Warn("worker pool shutdown timeout, forcing cancellation")
		return ctx.Err()
	}
}

// Stats 任务池运行时快照
type Stats struct {
	MaxWorkers    int   // Worker 数
	Running       int64 // 正在执行的任务数
	Queued        int   // 排队等待的任务数
	QueueCapacity int   // 队列容量
	Closed        bool  // 是否已关闭
}

// Stats 返回当前运行状态
func (p *Pool) Stats() Stats {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()

	return Stats{
		MaxWorkers:    p.conf.MaxWorkers,
		Running:       p.running.Load(),
		Queued:        len(p.queue),
		QueueCapacity: p.conf.QueueSize,
		Closed:        closed,
	}
}
