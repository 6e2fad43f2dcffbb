package api_router

import (
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 服务健康状态接口
type HealthHandler struct {
	*Handler
}

func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应体
type HealthResponse struct {
	// Status 取值 healthy 或 unhealthy
	Status string `json:"status"`
	// Version 服务版本号
	Version string `json:"version"`
	// Uptime 启动以来的秒数
	Uptime float64 `json:"uptime"`
	// Database 取值 connected 或 error
	Database string `json:"database"`
}

// Check 健康检查接口
// @Summary 服务健康检查
// @Description 检查服务健康状态，包括分享记录库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=HealthResponse} "成功"
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Version: h.App.Version().Version,
		Uptime:  time.Since(h.App.StartTime).Seconds(),
	}

	if err := h.pingRegistry(c); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(resp))
		return
	}

	resp.Status = "healthy"
	resp.Database = "connected"
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(resp))
}

// pingRegistry 对分享记录库做一次真实查询，空闲断连在这里暴露
func (h *HealthHandler) pingRegistry(c *gin.Context) error {
	var one int
	return h.App.DB.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error
}
