package middleware

import (
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogWithLogger 访问日志中间件
// 每条记录携带 trace ID，可与错误响应中的 traceId 关联
func AccessLogWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 先留存路径，业务处理器可能改写 c.Request
		path := c.Request.URL.Path
		url := path
		if q := c.Request.URL.RawQuery; q != "" {
			url += "?" + q
		}

		start := time.Now()
		c.Next()

		lg.Info(path,
			zap.String(logger.FieldMethod, c.Request.Method),
			zap.String("url", url),
			zap.Int("status", c.Writer.Status()),
			zap.Duration(logger.FieldDuration, time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}
