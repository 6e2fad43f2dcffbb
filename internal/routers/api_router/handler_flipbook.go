package api_router

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/dto"
	"github.com/haierkeys/flipbook-share-service/internal/middleware"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
	apperrors "github.com/haierkeys/flipbook-share-service/pkg/errors"
	"go.uber.org/zap"
)

// FlipbookHandler 分享链接 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type FlipbookHandler struct {
	*Handler
}

// NewFlipbookHandler 创建 FlipbookHandler 实例
func NewFlipbookHandler(a *app.App) *FlipbookHandler {
	return &FlipbookHandler{
		Handler: NewHandler(a),
	}
}

// Upload 上传 PDF 并登记分享链接
// @Summary 上传 PDF 文件
// @Description 接收 multipart 表单中名为 file 的单个 PDF 文件，校验通过后保存并登记分享链接
// @Tags 分享
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF 文件"
// @Success 200 {object} pkgapp.Res{data=dto.UploadResultDTO} "成功"
// @Failure 400 {object} pkgapp.Res "文件类型不支持"
// @Failure 413 {object} pkgapp.Res "文件超过大小上限"
// @Router /api/upload [post]
func (h *FlipbookHandler) Upload(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	started := time.Now()

	file, fileHeader, err := c.Request.FormFile("file")
	if err != nil {
		h.App.Logger().Error("FlipbookHandler.Upload.FormFile err", zap.Error(err))
		recordUpload(code.ErrorInvalidParams, time.Since(started).Seconds())
		response.ToResponse(code.ErrorInvalidParams.WithDetails(`form file field "file" is required`))
		return
	}
	defer file.Close()

	// 获取请求上下文
	ctx := c.Request.Context()

	result, err := h.App.FlipbookService.Upload(ctx, file, fileHeader)
	recordUpload(err, time.Since(started).Seconds())
	if err != nil {
		h.logError(ctx, "FlipbookHandler.Upload", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// Resolve 按标识符查询分享记录
// @Summary 查询分享记录
// @Description 根据标识符查询已登记的存储地址和上传时间
// @Tags 分享
// @Produce json
// @Param params query dto.ResolveRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=dto.FlipbookDTO} "成功"
// @Failure 404 {object} pkgapp.Res "标识符未登记"
// @Router /api/resolve [get]
func (h *FlipbookHandler) Resolve(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ResolveRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("FlipbookHandler.Resolve.BindAndValid err", zap.Error(errs))
		recordResolve(code.ErrorInvalidParams)
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	flipbook, err := h.App.FlipbookService.Resolve(ctx, params)
	recordResolve(err)
	if err != nil {
		h.logError(ctx, "FlipbookHandler.Resolve", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(flipbook))
}

// History 获取最近上传记录
// @Summary 获取最近上传列表
// @Description 按上传时间倒序返回最近登记的分享记录，limit 默认和上限均为 50
// @Tags 分享
// @Produce json
// @Param limit query int false "返回条数"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDTO} "成功"
// @Router /api/history [get]
func (h *FlipbookHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	limit := pkgapp.GetLimit(c)

	ctx := c.Request.Context()

	history, err := h.App.FlipbookService.History(ctx, limit)
	recordHistory(err)
	if err != nil {
		h.logError(ctx, "FlipbookHandler.History", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(history))
}

// logError 记录错误日志，包含 Trace ID
func (h *FlipbookHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
