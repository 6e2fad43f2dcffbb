// Package api_router 公开 API 的 HTTP 处理器
package api_router

import (
	"github.com/haierkeys/flipbook-share-service/internal/app"
)

// Handler 处理器公共底座，持有 App Container
// 各业务处理器内嵌该结构体获取配置、日志和数据库句柄
type Handler struct {
	App *app.App
}

// NewHandler 创建处理器底座
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}
