package routers

import (
	"net/http/pprof"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	"github.com/haierkeys/flipbook-share-service/internal/middleware"
	"github.com/haierkeys/flipbook-share-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewPrivateRouterWithApp 创建私有路由，暴露监控指标、系统信息和调试入口
// 该路由只监听内网地址，不经过公开 API 的中间件链
func NewPrivateRouterWithApp(appContainer *app.App) *gin.Engine {
	runMode := appContainer.Config().Server.RunMode

	r := gin.New()
	if runMode == "debug" {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
	}

	r.GET("/debug/vars", api_router.Expvar)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/sysinfo", api_router.NewSysInfoHandler(appContainer).GetSystemInfo)

	if runMode == "debug" {
		registerPprof(r)
	}

	return r
}

// registerPprof 挂载 pprof 调试路由，仅 debug 模式启用
func registerPprof(r *gin.Engine) {
	p := r.Group("pprof")
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.GET("/symbol", gin.WrapF(pprof.Symbol))
	p.POST("/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))

	// 具名 profile 统一从运行时注册表取
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		p.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}
}
