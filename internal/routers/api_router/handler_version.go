package api_router

import (
	"github.com/gin-gonic/gin"
	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/dto"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
)

// VersionHandler 版本信息接口
type VersionHandler struct {
	*Handler
}

func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{Handler: NewHandler(a)}
}

// ServerVersion 返回当前构建的版本号、Git 标签与构建时间，
// 并附带后台版本检查发现的更新信息
// @Summary 服务版本信息
// @Description 返回服务版本号、Git 标签、构建时间与更新提示
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.VersionDTO} "成功"
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	build := h.App.Version()
	check := h.App.CheckVersion()

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.VersionDTO{
		Version:        build.Version,
		GitTag:         build.GitTag,
		BuildTime:      build.BuildTime,
		VersionIsNew:   check.VersionIsNew,
		VersionNewName: check.VersionNewName,
		VersionNewLink: check.VersionNewLink,
	}))
}
