package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
	"github.com/haierkeys/flipbook-share-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获处理器 panic，记录现场与堆栈后返回统一的内部错误响应
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprintf("%v", r)
				fields := []zap.Field{
					zap.Int("status", c.Writer.Status()),
					zap.String(logger.FieldMethod, c.Request.Method),
					zap.String("url", c.Request.URL.RequestURI()),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.String("stack", string(debug.Stack())),
				}
				if err, ok := r.(error); ok {
					fields = append(fields, zap.Error(err))
					msg = err.Error()
				}
				lg.Error("recovered from panic", fields...)

				app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(msg))
			}
		}()

		c.Next()
	}
}
