package routers

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	_ "github.com/haierkeys/flipbook-share-service/docs"
	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/middleware"
	"github.com/haierkeys/flipbook-share-service/internal/routers/api_router"
	"github.com/haierkeys/flipbook-share-service/pkg/limiter"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// apiLimiters 上传接口令牌桶限流，每秒回填 10 个令牌
var apiLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/upload",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 组装对外 HTTP 路由：内嵌阅读器前端、/api 接口组与本地存储静态目录
func NewRouter(frontendFiles embed.FS, appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	r := gin.New()
	mountFrontend(r, frontendFiles)

	api := r.Group("/api")
	{
		api.Use(
			gin.Logger(),
			middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header),
			middleware.RateLimiter(apiLimiters),
			middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout)*time.Second),
			middleware.Cors(),
			middleware.LangWithTranslator(uni),
			middleware.AccessLogWithLogger(appContainer.Logger()),
			middleware.RecoveryWithLogger(appContainer.Logger()),
		)

		flipbook := api_router.NewFlipbookHandler(appContainer)
		viewer := api_router.NewViewerHandler(appContainer)
		version := api_router.NewVersionHandler(appContainer)
		health := api_router.NewHealthHandler(appContainer)

		// 上传与分享链接
		api.POST("/upload", flipbook.Upload)
		api.GET("/resolve", flipbook.Resolve)
		api.GET("/history", flipbook.History)

		// 阅读器展示
		api.GET("/viewer/config", viewer.Config)
		api.POST("/viewer/layout", viewer.Layout)

		// 版本与健康状态
		api.GET("/version", version.ServerVersion)
		api.GET("/health", health.Check)

		// 负载均衡探活用的根路径别名
		r.GET("/health", health.Check)
	}

	// 本地存储时直接以静态目录对外提供已上传文件
	if cfg.Storage.Type == pkgstorage.LOCAL && cfg.Storage.SavePath != "" {
		r.StaticFS("/"+strings.Trim(cfg.Storage.SavePath, "/"), http.Dir(cfg.Storage.SavePath))
	}

	if cfg.Server.RunMode == "debug" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

// mountFrontend 挂载内嵌的阅读器前端，首页直出，指纹资源强缓存
func mountFrontend(r *gin.Engine, frontendFiles embed.FS) {
	assets, _ := fs.Sub(frontendFiles, "frontend/assets")
	static, _ := fs.Sub(frontendFiles, "frontend/static")
	index, _ := frontendFiles.ReadFile("frontend/index.html")

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.Group("/assets", cacheForever).StaticFS("/", http.FS(assets))
	r.Group("/static", cacheForever).StaticFS("/", http.FS(static))
}

// cacheForever 指纹资源内容不会变化，设置一年强缓存
func cacheForever(c *gin.Context) {
	c.Header("Cache-Control", "public, s-maxage=31536000, max-age=31536000, must-revalidate")
	c.Next()
}
