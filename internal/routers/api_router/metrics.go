package api_router

import (
	"errors"
	"expvar"
	"strconv"

	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 分享服务业务指标，经私有监听的 /metrics 导出
var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flipbook",
			Name:      "uploads_total",
			Help:      "Total upload requests by HTTP status",
		},
		[]string{"status"},
	)

	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "flipbook",
			Name:      "upload_duration_seconds",
			Help:      "Upload pipeline duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	resolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flipbook",
			Name:      "resolves_total",
			Help:      "Total link lookups by HTTP status",
		},
		[]string{"status"},
	)

	historyQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flipbook",
			Name:      "history_queries_total",
			Help:      "Total history queries by HTTP status",
		},
		[]string{"status"},
	)
)

// statusLabel 将业务错误映射为 HTTP 状态标签
func statusLabel(err error) string {
	if err == nil {
		return "200"
	}
	var coded *code.Code
	if errors.As(err, &coded) {
		return strconv.Itoa(coded.StatusCode())
	}
	return "500"
}

// recordUpload 记录一次上传请求的结果和耗时
func recordUpload(err error, durationSec float64) {
	uploadsTotal.WithLabelValues(statusLabel(err)).Inc()
	uploadDuration.Observe(durationSec)
}

// recordResolve 记录一次链接查询的结果
func recordResolve(err error) {
	resolvesTotal.WithLabelValues(statusLabel(err)).Inc()
}

// recordHistory 记录一次历史列表查询的结果
func recordHistory(err error) {
	historyQueriesTotal.WithLabelValues(statusLabel(err)).Inc()
}

// Expvar 输出 expvar 登记的运行时指标，等价于 DefaultServeMux 上的 /debug/vars
func Expvar(c *gin.Context) {
	expvar.Handler().ServeHTTP(c.Writer, c.Request)
}
