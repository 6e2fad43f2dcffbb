package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/dao"
	"github.com/haierkeys/flipbook-share-service/internal/routers"
	"github.com/haierkeys/flipbook-share-service/internal/service"
	"github.com/haierkeys/flipbook-share-service/internal/task"
	"github.com/haierkeys/flipbook-share-service/pkg/logger"
	"github.com/haierkeys/flipbook-share-service/pkg/safe_close"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"
	"github.com/haierkeys/flipbook-share-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server 聚合一次启动产生的全部资源，配置热加载时整体重建
type Server struct {
	logger            *zap.Logger
	config            *internalApp.AppConfig
	db                *gorm.DB
	app               *internalApp.App
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
}

func NewServer(runEnv *runFlags) (*Server, error) {
	appConfig, configPath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(appConfig, runEnv)

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if s.logger, err = logger.NewLogger(logger.Config{
		Level:      appConfig.Log.Level,
		File:       appConfig.Log.File,
		Production: appConfig.Log.Production,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if err := initDirectories(appConfig); err != nil {
		return nil, fmt.Errorf("init directories: %w", err)
	}

	if s.db, err = dao.NewDBEngineWithConfig(appConfig.GetDatabaseConfig(), s.logger); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if s.app, err = internalApp.NewApp(appConfig, s.logger, s.db); err != nil {
		return nil, fmt.Errorf("create app container: %w", err)
	}

	uni, err := initValidator()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}

	initScheduler(s)

	banner := `
    ________    _       __                 __      _____ __
   / ____/ /   (_)___  / /_  ____  ____  / /__    / ___// /_  ____ ________
  / /_  / /   / / __ \/ __ \/ __ \/ __ \/ //_/    \__ \/ __ \/ __  / ___/ _ \
 / __/ / /___/ / /_/ / /_/ / /_/ / /_/ / ,<      ___/ / / / / /_/ / /  /  __/
/_/   /_____/_/ .___/_.___/\____/\____/_/|_|    /____/_/ /_/\__,_/_/   \___/
             /_/                                                            `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n",
		banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", configPath))

	// ngrok 隧道先于 HTTP 服务启动，确保首个请求起分享链接就使用隧道地址
	if appConfig.Ngrok.Enabled {
		initNgrok(s)
	}

	if addr := appConfig.Server.HttpPort; addr != "" {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", addr))
		s.httpServer = newHTTPServer(appConfig, addr, routers.NewRouter(frontendFiles, s.app, uni))
		s.attachHTTPServer("api service", s.httpServer)
	}

	// 私有监听承载 sysinfo、pprof 与 prometheus 指标，不经公网暴露
	if addr := appConfig.Server.PrivateHttpListen; addr != "" {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", addr))
		s.privateHttpServer = newHTTPServer(appConfig, addr, routers.NewPrivateRouterWithApp(s.app))
		s.attachHTTPServer("private api service", s.privateHttpServer)
	}

	s.attachAppShutdown()

	return s, nil
}

// applyFlagOverrides 命令行参数优先于配置文件
func applyFlagOverrides(cfg *internalApp.AppConfig, runEnv *runFlags) {
	if runEnv.runMode != "" {
		cfg.Server.RunMode = runEnv.runMode
	}
	if mode := cfg.Server.RunMode; mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if runEnv.port != "" {
		cfg.Server.HttpPort = ":" + strings.TrimPrefix(runEnv.port, ":")
	}
}

func newHTTPServer(cfg *internalApp.AppConfig, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

// attachHTTPServer 托管一个 HTTP 服务的生命周期：异常退出触发全局关闭，
// 收到关闭信号时在限定时间内排空连接
func (s *Server) attachHTTPServer(name string, srv *http.Server) {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.ListenAndServe()
		}()
		select {
		case err := <-errChan:
			s.logger.Error(name+" err", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				s.logger.Error(name+" shutdown error", zap.Error(err))
			}
		}
	})
}

// attachAppShutdown App 容器最后关闭，等待上传任务池与写队列排空
func (s *Server) attachAppShutdown() {
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
		defer cancel()
		if err := s.app.Shutdown(ctx); err != nil {
			s.logger.Error("app container shutdown failed", zap.Error(err))
			return
		}
		s.logger.Info("app container shutdown gracefully")
	})
}

func initScheduler(s *Server) {
	m := task.NewManager(s.app, s.logger, s.sc)
	if err := m.RegisterTasks(); err != nil {
		s.logger.Error("register tasks failed", zap.Error(err))
		return
	}
	m.Start()
}

// initNgrok 启动 ngrok 隧道并将分享链接指向隧道地址，失败时退回配置的分享基础地址
func initNgrok(s *Server) {
	tunnel := service.NewNgrokTunnel(s.logger, s.config.Ngrok.AuthToken, s.config.Ngrok.Domain)

	if err := tunnel.Start(context.Background(), s.config.Server.HttpPort); err != nil {
		s.logger.Error("ngrok tunnel start failed, share links keep the configured base url", zap.Error(err))
		return
	}

	s.app.SetShareBaseURL(tunnel.URL())
	s.logger.Warn("share base url switched to ngrok tunnel", zap.String("url", tunnel.URL()))

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if err := tunnel.Stop(context.Background()); err != nil {
			s.logger.Warn("ngrok tunnel stop error", zap.Error(err))
		}
	})
}

// initValidator 挂接自定义验证器并注册中英文翻译，错误消息字段名取 json 标签
func initValidator() (*ut.UniversalTranslator, error) {
	cv := validator.NewCustomValidator()
	cv.Engine()
	binding.Validator = cv

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if !ok {
		return nil, nil
	}
	validate.RegisterTagNameFunc(jsonFieldName)

	uni := ut.New(en.New(), en.New(), zh.New())
	if tran, found := uni.GetTranslator("zh"); found {
		if err := zh_translations.RegisterDefaultTranslations(validate, tran); err != nil {
			return nil, err
		}
	}
	if tran, found := uni.GetTranslator("en"); found {
		if err := en_translations.RegisterDefaultTranslations(validate, tran); err != nil {
			return nil, err
		}
	}

	return uni, nil
}

// jsonFieldName 取 json 标签首段作为校验错误里的字段名
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// initDirectories 预创建日志、本地存储与 sqlite 库文件所在目录
func initDirectories(cfg *internalApp.AppConfig) error {
	if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
		return err
	}
	if cfg.Storage.Type == pkgstorage.LOCAL {
		if err := ensureDir(cfg.Storage.SavePath); err != nil {
			return err
		}
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path != "" {
		if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir 创建目录，空路径直接跳过
func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0754); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
