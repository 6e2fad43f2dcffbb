// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/domain"
	"github.com/haierkeys/flipbook-share-service/internal/dto"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"
	"github.com/haierkeys/flipbook-share-service/pkg/logger"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"
	"github.com/haierkeys/flipbook-share-service/pkg/timex"
	"github.com/haierkeys/flipbook-share-service/pkg/workerpool"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// pdfMediaType is the only media type accepted for upload
// pdfMediaType 上传仅接受的媒体类型
const pdfMediaType = "application/pdf"

// FlipbookService defines the share link business service interface
// FlipbookService 定义分享链接业务服务接口
type FlipbookService interface {
	// Upload validates a PDF upload, stores the blob and registers the share link.
	// Validation happens strictly before any storage write: declared media type
	// first, size ceiling second, content sniff last.
	// Upload 校验 PDF 上传，保存文件并登记分享链接。
	// 校验严格发生在任何存储写入之前：先检查声明的媒体类型，再检查大小上限，最后嗅探内容。
	Upload(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (*dto.UploadResultDTO, error)

	// Resolve resolves an identifier to its registered storage URL
	// Resolve 将标识符解析为已登记的存储地址
	Resolve(ctx context.Context, params *dto.ResolveRequest) (*dto.FlipbookDTO, error)

	// History retrieves the most recent uploads, newest first
	// History 获取最近上传记录，新的在前
	History(ctx context.Context, limit int) (*dto.HistoryDTO, error)
}

// flipbookService implementation of FlipbookService interface
// flipbookService 实现 FlipbookService 接口
type flipbookService struct {
	flipbookRepo domain.FlipbookRepository // Flipbook repository // 分享记录仓库
	storage      pkgstorage.Storager       // Blob storage client // 文件存储客户端
	pool         *workerpool.Pool          // Bounds concurrent blob writes // 限制并发文件写入
	sf           *singleflight.Group       // Singleflight group // 并发请求合并组
	logger       *zap.Logger               // Logger // 日志对象
	config       *ServiceConfig            // Service configuration // 服务配置
}

// NewFlipbookService creates FlipbookService instance.
// A nil pool makes blob writes run inline.
// NewFlipbookService 创建 FlipbookService 实例。pool 为 nil 时文件写入直接执行。
func NewFlipbookService(flipbookRepo domain.FlipbookRepository, storage pkgstorage.Storager, pool *workerpool.Pool, lg *zap.Logger, config *ServiceConfig) FlipbookService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &flipbookService{
		flipbookRepo: flipbookRepo,
		storage:      storage,
		pool:         pool,
		sf:           &singleflight.Group{},
		logger:       lg,
		config:       config,
	}
}

// domainToDTO converts domain model to DTO
// domainToDTO 将领域模型转换为 DTO
func (s *flipbookService) domainToDTO(flipbook *domain.Flipbook) *dto.FlipbookDTO {
	if flipbook == nil {
		return nil
	}
	return &dto.FlipbookDTO{
		Identifier: flipbook.Identifier,
		StorageURL: flipbook.StorageURL,
		UploadedAt: timex.Time(flipbook.UploadedAt),
	}
}

// Upload validates a PDF upload, stores the blob and registers the share link
// Upload 校验 PDF 上传，保存文件并登记分享链接
func (s *flipbookService) Upload(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (*dto.UploadResultDTO, error) {
	// Declared media type gate, checked before anything touches the payload
	// 声明媒体类型检查，先于任何对文件内容的访问
	declared := fileHeader.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil || mediaType != pdfMediaType {
		return nil, code.ErrorInvalidFileType.WithDetails(fmt.Sprintf("declared media type %q", declared))
	}

	// Size ceiling gate
	// 大小上限检查
	if fileHeader.Size > s.config.Upload.MaxFileSize {
		return nil, code.ErrorFileTooLarge.WithDetails(fmt.Sprintf("size %d exceeds limit %d", fileHeader.Size, s.config.Upload.MaxFileSize))
	}

	// Content sniff, still before any storage write. A renamed non-PDF passes the
	// declared gate but not this one.
	// 内容嗅探，仍在任何存储写入之前。改了扩展名的非 PDF 能通过声明检查但过不了这一关。
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	if !mtype.Is(pdfMediaType) {
		return nil, code.ErrorInvalidFileType.WithDetails(fmt.Sprintf("content detected as %s", mtype.String()))
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	identifier := fileurl.NewIdentifier(fileHeader.Filename)
	uploadedAt := time.Now()

	fileKey, err := s.sendBlob(ctx, identifier, file, uploadedAt)
	if err != nil {
		if errors.Is(err, workerpool.ErrWorkerPoolFull) || errors.Is(err, workerpool.ErrWorkerPoolClosed) {
			return nil, code.ErrorTooManyRequests.WithDetails(err.Error())
		}
		return nil, code.ErrorUploadStorageFailed.WithDetails(err.Error())
	}
	storageURL := s.storage.PublicURL(fileKey)

	flipbook := &domain.Flipbook{
		Identifier: identifier,
		StorageURL: storageURL,
		UploadedAt: uploadedAt,
	}
	if err := s.flipbookRepo.Upsert(ctx, flipbook); err != nil {
		// Roll back the blob so a failed registration leaves no orphan
		// 回滚已写入的文件，登记失败不留下孤儿文件
		if delErr := s.storage.Delete(fileKey); delErr != nil {
			s.logger.Warn("orphan blob cleanup failed after register error",
				zap.String(logger.FieldFileKey, fileKey),
				zap.Error(delErr),
			)
		}
		return nil, code.ErrorUploadRegisterFailed.WithDetails(err.Error())
	}

	s.logger.Info("upload registered",
		zap.String(logger.FieldIdentifier, identifier),
		zap.Int64(logger.FieldSize, fileHeader.Size),
	)

	return &dto.UploadResultDTO{
		Identifier:   identifier,
		StorageURL:   storageURL,
		ShareableURL: s.shareableURL(identifier),
	}, nil
}

// sendBlob writes the blob to storage through the worker pool so concurrent
// uploads are bounded by the pool size
// sendBlob 通过 Worker Pool 将文件写入存储，并发上传数受池大小限制
func (s *flipbookService) sendBlob(ctx context.Context, identifier string, file multipart.File, uploadedAt time.Time) (string, error) {
	if s.pool == nil {
		return s.storage.SendFile(identifier, file, pdfMediaType, uploadedAt)
	}

	var fileKey string
	err := s.pool.Submit(ctx, func(context.Context) error {
		var sendErr error
		fileKey, sendErr = s.storage.SendFile(identifier, file, pdfMediaType, uploadedAt)
		return sendErr
	})
	return fileKey, err
}

// shareableURL derives the share link from the configured base address
// shareableURL 从配置的基础地址派生分享链接
func (s *flipbookService) shareableURL(identifier string) string {
	name := s.config.Share.IdentifierName
	if name == "" {
		name = "identifier"
	}

	u, err := url.Parse(s.config.Share.BaseURL)
	if err != nil {
		return fmt.Sprintf("%s?%s=%s", s.config.Share.BaseURL, name, url.QueryEscape(identifier))
	}
	q := u.Query()
	q.Set(name, identifier)
	u.RawQuery = q.Encode()
	return u.String()
}

// Resolve resolves an identifier to its registered storage URL.
// Concurrent lookups for the same identifier are collapsed with singleflight;
// every call still hits the registry, nothing is cached.
// Resolve 将标识符解析为已登记的存储地址。
// 相同标识符的并发查询通过 singleflight 合并；每次调用仍查询数据库，不做缓存。
func (s *flipbookService) Resolve(ctx context.Context, params *dto.ResolveRequest) (*dto.FlipbookDTO, error) {
	key := fmt.Sprintf("flipbook_resolve_%s", params.Identifier)

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		flipbook, err := s.flipbookRepo.Get(ctx, params.Identifier)
		if err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		if flipbook == nil {
			return nil, code.ErrorLinkNotFound
		}
		return flipbook, nil
	})
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(result.(*domain.Flipbook)), nil
}

// History retrieves the most recent uploads, newest first
// History 获取最近上传记录，新的在前
func (s *flipbookService) History(ctx context.Context, limit int) (*dto.HistoryDTO, error) {
	flipbooks, err := s.flipbookRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.FlipbookDTO, 0, len(flipbooks))
	for _, flipbook := range flipbooks {
		items = append(items, s.domainToDTO(flipbook))
	}
	return &dto.HistoryDTO{Items: items}, nil
}
