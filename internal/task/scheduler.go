package task

import (
	"context"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Task 后台任务的统一接口
type Task interface {
	// Name 任务名称，用于日志标识
	Name() string
	// Run 执行一次任务
	Run(ctx context.Context) error
	// LoopInterval 周期执行间隔，小于等于零表示不做周期调度
	LoopInterval() time.Duration
	// IsStartupRun 是否在启动时先执行一次
	IsStartupRun() bool
}

// Scheduler 后台任务调度器
// 每次任务执行都通过 App Container 的 TrackOperation 登记，
// 优雅关闭会等待进行中的任务执行完毕
type Scheduler struct {
	app    *app.App
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
}

// NewScheduler 创建调度器，任务通过 AddTask 挂入
func NewScheduler(appContainer *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{app: appContainer, logger: logger, sc: sc}
}

// AddTask 注册任务，需在 Start 之前调用
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 把所有任务挂到关闭编排器上开始调度
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no background tasks registered")
		return
	}
	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, t := range s.tasks {
		s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			s.schedule(t, closeSignal)
		})
	}
}

// schedule 单个任务的调度循环，closeSignal 触发后返回
func (s *Scheduler) schedule(t Task, closeSignal <-chan struct{}) {
	if t.IsStartupRun() {
		s.logger.Info("task running", zap.String("name", t.Name()), zap.Bool("startupRun", true))
		go s.runOnce(t, true)
	}

	interval := t.LoopInterval()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.logger.Info("task running", zap.String("name", t.Name()), zap.Bool("loopRun", true))
			s.runOnce(t, false)
		case <-closeSignal:
			s.logger.Info("task stopped", zap.String("name", t.Name()))
			return
		}
	}
}

// runOnce 执行一次任务，带 panic 恢复和关闭登记
func (s *Scheduler) runOnce(t Task, startupRun bool) {
	trackDone := s.app.TrackOperation()
	defer trackDone()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task run panic",
				zap.String("name", t.Name()),
				zap.Bool("startupRun", startupRun),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	if err := t.Run(context.Background()); err != nil {
		s.logger.Error("task run error",
			zap.String("name", t.Name()),
			zap.Bool("startupRun", startupRun),
			zap.Error(err))
	}
}
