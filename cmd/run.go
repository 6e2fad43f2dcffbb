package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // 工作目录
	port    string // 监听端口
	runMode string // gin 运行模式
	config  string // 配置文件路径
}

func init() {
	runEnv := new(runFlags)

	runCommand := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Start the share service",
		Run: func(cmd *cobra.Command, args []string) {
			runService(runEnv)
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "working directory")
	fs.StringVarP(&runEnv.port, "port", "p", "", "listen port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "gin run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file path")
}

// runService 启动服务并阻塞到收到退出信号，配置变更时原地重建
func runService(runEnv *runFlags) {
	if runEnv.dir != "" {
		if err := os.Chdir(runEnv.dir); err != nil {
			bootstrapLogger.Error("change working directory failed", zap.Error(err))
		}
		bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
	}

	if err := resolveConfigPath(runEnv); err != nil {
		bootstrapLogger.Error("config file auto create error", zap.Error(err))
		return
	}

	s, err := NewServer(runEnv)
	if err != nil {
		bootstrapLogger.Error("server start failed", zap.Error(err))
		return
	}

	// 配置文件热加载，写入事件触发整个 Server 重建
	go func() {
		w := watcher.New()
		w.SetMaxEvents(1)
		w.FilterOps(watcher.Write)

		go func() {
			for {
				select {
				case event := <-w.Event:
					s.logger.Info("config changed, rebuilding server",
						zap.String("event", event.Op.String()),
						zap.String("file", event.Path))
					s.sc.SendCloseSignal(nil)

					if s, err = NewServer(runEnv); err != nil {
						bootstrapLogger.Error("server rebuild failed", zap.Error(err))
						continue
					}
				case err := <-w.Error:
					s.logger.Error("config watch error", zap.Error(err))
				case <-w.Closed:
					bootstrapLogger.Info("config watch closed")
				}
			}
		}()

		if err := w.Add(runEnv.config); err != nil {
			s.logger.Error("watch config file failed", zap.Error(err))
		}
		if err := w.Start(5 * time.Second); err != nil {
			s.logger.Error("config watch start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info("received shutdown signal, initiating graceful shutdown")
	s.sc.SendCloseSignal(nil)

	// 等待全部关闭处理器完成，包括 App 容器的优雅关闭
	if err := s.sc.WaitClosed(); err != nil {
		s.logger.Error("shutdown completed with error", zap.Error(err))
	} else {
		s.logger.Info("service has been shut down gracefully")
	}
}

// resolveConfigPath 未指定配置时按惯例路径查找，找不到则落一份默认配置
func resolveConfigPath(runEnv *runFlags) error {
	if runEnv.config != "" {
		return nil
	}

	for _, candidate := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(candidate) {
			runEnv.config = candidate
			return nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	runEnv.config = "config/config.yaml"
	if err := fileurl.CreatePath(runEnv.config, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(runEnv.config, []byte(configDefault), 0666); err != nil {
		return err
	}
	bootstrapLogger.Info("default config created", zap.String("path", runEnv.config))
	return nil
}
