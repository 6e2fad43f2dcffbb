package task

import (
	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/pkg/safe_close"
	"go.uber.org/zap"
)

// Manager 把注册表里的任务实例化后交给调度器
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

func NewManager(appContainer *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(appContainer, logger, sc),
		app:       appContainer,
		logger:    logger,
	}
}

// RegisterTasks 实例化所有已登记的任务并交给调度器
// 工厂返回 nil 任务表示该任务在当前配置下被禁用
func (m *Manager) RegisterTasks() error {
	for _, factory := range GetFactories() {
		t, err := factory(m.app)
		if err != nil {
			m.logger.Warn("task init failed", zap.Error(err))
			continue
		}
		if t == nil {
			continue
		}
		m.scheduler.AddTask(t)
	}
	return nil
}

// Start 把全部任务挂入调度循环
func (m *Manager) Start() {
	m.scheduler.Start()
}
