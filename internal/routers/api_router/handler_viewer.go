package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/dto"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
	"github.com/haierkeys/flipbook-share-service/pkg/viewport"
	"go.uber.org/zap"
)

// ViewerHandler 翻页阅读器 API 路由处理器
// 使用 App Container 注入依赖
type ViewerHandler struct {
	*Handler
}

// NewViewerHandler 创建 ViewerHandler 实例
func NewViewerHandler(a *app.App) *ViewerHandler {
	return &ViewerHandler{
		Handler: NewHandler(a),
	}
}

// Config 获取阅读器展示配置
// @Summary 获取阅读器展示配置
// @Description 返回页面留白系数和单页最小尺寸，前端据此计算翻页布局
// @Tags 阅读器
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.ViewerConfigDTO} "成功"
// @Router /api/viewer/config [get]
func (h *ViewerHandler) Config(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	cfg := h.App.Config().Viewer

	response.ToResponse(code.Success.WithData(dto.ViewerConfigDTO{
		MarginFactor:  cfg.MarginFactor,
		MinPageWidth:  cfg.MinWidth,
		MinPageHeight: cfg.MinHeight,
	}))
}

// Layout 计算单页展示尺寸
// @Summary 计算单页展示尺寸
// @Description 根据视口尺寸和页面宽高比计算翻页阅读器的单页尺寸，窗口变化后用新视口重新请求即可
// @Tags 阅读器
// @Accept json
// @Produce json
// @Param params body dto.ViewerLayoutRequest true "视口参数"
// @Success 200 {object} pkgapp.Res{data=dto.ViewerLayoutDTO} "成功"
// @Router /api/viewer/layout [post]
func (h *ViewerHandler) Layout(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ViewerLayoutRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ViewerHandler.Layout.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	layout := viewport.Fit(params.ViewportWidth, params.ViewportHeight, params.AspectRatio, h.App.Config().Viewer)

	response.ToResponse(code.Success.WithData(dto.ViewerLayoutDTO{
		PageWidth:  layout.Width,
		PageHeight: layout.Height,
	}))
}
