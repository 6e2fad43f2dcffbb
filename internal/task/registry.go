package task

import (
	"slices"
	"sync"

	"github.com/haierkeys/flipbook-share-service/internal/app"
)

// TaskFactory 创建任务实例的工厂函数，任务通过 App 容器获取配置和依赖
type TaskFactory func(appContainer *app.App) (Task, error)

var (
	taskRegistry  []TaskFactory
	registryMutex sync.RWMutex
)

// RegisterWithApp 登记一个任务工厂，通常在任务文件的 init() 中调用
func RegisterWithApp(factory TaskFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	taskRegistry = append(taskRegistry, factory)
}

// GetFactories 返回已登记任务工厂的副本
func GetFactories() []TaskFactory {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return slices.Clone(taskRegistry)
}
