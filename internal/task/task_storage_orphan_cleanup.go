package task

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	pkglogger "github.com/haierkeys/flipbook-share-service/pkg/logger"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"

	"go.uber.org/zap"
)

// StorageOrphanCleanupTask 孤儿文件清理任务
// 扫描本地保存目录，删除登记表中查不到且超过保留期的 PDF 文件。
// 文件写入成功但登记失败时会留下这类孤儿文件。
type StorageOrphanCleanupTask struct {
	app *app.App
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		// 仅本地文件系统存储由本服务负责清理，云端存储交给各自的生命周期规则
		if appContainer.Config().Storage.Type != pkgstorage.LOCAL {
			return nil, nil
		}
		return &StorageOrphanCleanupTask{
			app: appContainer,
		}, nil
	})
}

func (t *StorageOrphanCleanupTask) Name() string {
	return "storage_orphan_cleanup"
}

func (t *StorageOrphanCleanupTask) Run(ctx context.Context) error {
	cfg := t.app.Config()
	logger := t.app.Logger()

	saveDir := cfg.Storage.SavePath
	if saveDir == "" {
		return nil
	}
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		return nil
	}

	// 保留期内的文件可能属于进行中的上传，跳过
	cutoff := time.Now().Add(-cfg.GetOrphanRetention())

	var scanned, removed int

	err := filepath.WalkDir(saveDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("storage orphan cleanup walk error", zap.String(pkglogger.FieldPath, path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".pdf") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		scanned++

		// 文件名即登记标识符
		identifier := filepath.Base(path)
		record, err := t.app.FlipbookRepo.Get(ctx, identifier)
		if err != nil {
			// 登记表查询失败时绝不删除文件
			logger.Warn("storage orphan cleanup registry query failed",
				zap.String(pkglogger.FieldIdentifier, identifier), zap.Error(err))
			return nil
		}
		if record != nil {
			return nil
		}

		if err := os.Remove(path); err != nil {
			logger.Warn("storage orphan cleanup remove failed",
				zap.String(pkglogger.FieldPath, path), zap.Error(err))
			return nil
		}
		removed++
		logger.Info("storage orphan removed",
			zap.String(pkglogger.FieldIdentifier, identifier),
			zap.Time("modTime", info.ModTime()))
		return nil
	})
	if err != nil {
		return err
	}

	if removed > 0 || scanned > 0 {
		logger.Info("storage orphan cleanup completed",
			zap.Int("scanned", scanned), zap.Int("removed", removed))
	}
	return nil
}

func (t *StorageOrphanCleanupTask) LoopInterval() time.Duration {
	return t.app.Config().GetOrphanSweepInterval()
}

func (t *StorageOrphanCleanupTask) IsStartupRun() bool {
	return true
}
