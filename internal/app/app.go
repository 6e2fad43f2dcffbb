package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/dao"
	"github.com/haierkeys/flipbook-share-service/internal/domain"
	"github.com/haierkeys/flipbook-share-service/internal/service"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/local_fs"
	"github.com/haierkeys/flipbook-share-service/pkg/workerpool"
	"github.com/haierkeys/flipbook-share-service/pkg/writequeue"
	"golang.org/x/mod/semver"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，装配并持有服务运行期的全部依赖
type App struct {
	cfg    *AppConfig
	logger *zap.Logger

	// 数据访问
	DB  *gorm.DB
	Dao *dao.Dao

	// 后台并发组件
	pool       *workerpool.Pool
	writeQueue *writequeue.Manager

	// Storage 上传文件的落盘后端
	Storage pkgstorage.Storager

	// FlipbookRepo 链接登记仓储
	FlipbookRepo domain.FlipbookRepository
	// FlipbookService 上传与查询业务
	FlipbookService service.FlipbookService

	// svcConfig 业务层共享配置，ngrok 隧道建立后原地更新分享基础地址
	svcConfig   *service.ServiceConfig
	svcConfigMu sync.Mutex

	// StartTime 服务启动时间
	StartTime time.Time

	// 关闭控制，closed 置位后 Shutdown 幂等返回
	closed atomic.Bool
	wg     sync.WaitGroup

	// 最近一次版本检查的结果
	verMu   sync.RWMutex
	verInfo pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器并完成各层装配，cfg、logger、db 缺一不可
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("nil config")
	case logger == nil:
		return nil, errors.New("nil logger")
	case db == nil:
		return nil, errors.New("nil database")
	}

	wpCfg := cfg.GetWorkerPoolConfig()
	wqCfg := cfg.GetWriteQueueConfig()
	dbCfg := cfg.GetDatabaseConfig()

	a := &App{
		cfg:        cfg,
		logger:     logger,
		DB:         db,
		pool:       workerpool.New(&wpCfg, logger),
		writeQueue: writequeue.New(&wqCfg, logger),
		StartTime:  time.Now(),
	}

	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(&dbCfg), dao.WithLogger(logger), dao.WithWriteQueueManager(a.writeQueue))

	// 本地存储未配置访问前缀时使用分享基础地址作为前缀，
	// 文件由路由层以静态目录方式对外提供
	storageCfg := cfg.Storage
	if storageCfg.Type == pkgstorage.LOCAL && storageCfg.AccessURLPrefix == "" {
		storageCfg.AccessURLPrefix = strings.TrimRight(cfg.Share.BaseURL, "/")
	}
	storage, err := pkgstorage.NewClientWithLogger(&storageCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage client init: %w", err)
	}
	a.Storage = storage

	a.FlipbookRepo = dao.NewFlipbookRepository(a.Dao)

	a.svcConfig = &service.ServiceConfig{
		Upload: service.UploadServiceConfig{
			MaxFileSize: cfg.GetUploadMaxSize(),
		},
		Share: service.ShareServiceConfig{
			BaseURL:        cfg.Share.BaseURL,
			IdentifierName: cfg.Share.IdentifierName,
		},
	}

	a.FlipbookService = service.NewFlipbookService(a.FlipbookRepo, a.Storage, a.pool, logger, a.svcConfig)

	logger.Info("app container initialized",
		zap.Int("poolMaxWorkers", wpCfg.MaxWorkers),
		zap.Int("writeQueueCapacity", wqCfg.QueueCapacity))

	return a, nil
}

// Config 返回应用配置
func (a *App) Config() *AppConfig { return a.cfg }

// Logger 返回日志器
func (a *App) Logger() *zap.Logger { return a.logger }

// WorkerPoolStats 获取上传任务池运行状态
func (a *App) WorkerPoolStats() workerpool.Stats {
	return a.pool.Stats()
}

// WriteQueueMetrics 获取写队列运行指标
func (a *App) WriteQueueMetrics() writequeue.Metrics {
	return a.writeQueue.GetMetrics()
}

// SetShareBaseURL 更新分享链接基础地址
// ngrok 隧道建立后调用，使新生成的分享链接指向隧道地址；
// 本地存储的公开地址前缀同步跟随
func (a *App) SetShareBaseURL(baseURL string) {
	a.svcConfigMu.Lock()
	defer a.svcConfigMu.Unlock()

	a.svcConfig.Share.BaseURL = baseURL
	if lfs, ok := a.Storage.(*local_fs.LocalFS); ok && a.cfg.Storage.AccessURLPrefix == "" {
		lfs.SetAccessURLPrefix(baseURL)
	}
	a.logger.Info("share base URL updated", zap.String("baseURL", baseURL))
}

// ShareBaseURL 获取当前分享链接基础地址
func (a *App) ShareBaseURL() string {
	a.svcConfigMu.Lock()
	defer a.svcConfigMu.Unlock()
	return a.svcConfig.Share.BaseURL
}

// Version 返回构建信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{Version: Version, GitTag: GitTag, BuildTime: BuildTime}
}

// CheckVersion 返回版本检查结果，返回值已按客户端口径整理
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.verMu.RLock()
	info := a.verInfo
	a.verMu.RUnlock()

	// 没有更新时不下发版本名称
	if !info.VersionIsNew {
		info.VersionNewName = ""
	}

	// 客户端口径的版本号不带 v 前缀
	info.VersionNewName = strings.TrimPrefix(info.VersionNewName, "v")
	if info.VersionNewLink == "" && info.VersionNewName != "" {
		info.VersionNewLink = "https://github.com/haierkeys/flipbook-share-service/releases/tag/" + info.VersionNewName
	}

	return info
}

// SetCheckVersionInfo 记录最近一次版本检查结果
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.verMu.Lock()
	a.verInfo = info
	a.verMu.Unlock()
}

// IsNewVersion 比较版本号，v2 比 v1 新时返回 true
func IsNewVersion(v1, v2 string) bool {
	return semver.Compare(ensureVPrefix(v2), ensureVPrefix(v1)) > 0
}

func ensureVPrefix(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// DefaultShutdownTimeout 关闭流程的兜底超时
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 关闭应用容器。
// 依次关闭上传任务池、写队列管理器，等待后台操作结束后断开数据库。
// ctx 控制整体超时，传 nil 时使用默认 30 秒。重复调用直接返回 nil。
func (a *App) Shutdown(ctx context.Context) error {
	if a.closed.Swap(true) {
		return nil
	}
	a.logger.Info("app container shutting down")

	if ctx == nil {
		c, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		ctx = c
	}

	var errs []error

	if a.pool != nil {
		if err := a.pool.Shutdown(ctx); err != nil {
			a.logger.Warn("worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	if a.writeQueue != nil {
		if err := a.writeQueue.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue shutdown: %w", err))
		}
	}

	// 等待登记过的后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		a.logger.Warn("shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("wait background operations: %w", ctx.Err()))
	}

	if err := a.closeDatabase(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("app container shutdown completed with errors", zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("app container shutdown completed")
	return nil
}

func (a *App) closeDatabase() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	a.logger.Info("database connection closed")
	return nil
}

// TrackOperation 登记一个后台操作，返回的函数在操作结束时调用，
// Shutdown 会等待全部登记过的操作
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return a.wg.Done
}
