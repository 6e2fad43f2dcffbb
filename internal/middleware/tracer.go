package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// DefaultTraceIDHeader 透传 Trace ID 的请求头
	DefaultTraceIDHeader = "X-Trace-ID"
	// TraceIDKey gin.Context 与 request.Context 共用的存储键
	TraceIDKey = "trace_id"
)

// TraceMiddlewareWithConfig 复用请求头携带的 Trace ID，没有则生成新的，
// 写入两级 Context 并回写到响应头
func TraceMiddlewareWithConfig(enabled bool, headerName string) gin.HandlerFunc {
	if headerName == "" {
		headerName = DefaultTraceIDHeader
	}

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		id := c.GetHeader(headerName)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(TraceIDKey, id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), TraceIDKey, id))
		c.Header(headerName, id)

		c.Next()
	}
}

// GetTraceID 从 context.Context 取 Trace ID，取不到返回空串
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

// GetTraceIDFromGin 从 gin.Context 取 Trace ID，取不到返回空串
func GetTraceIDFromGin(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(TraceIDKey)
}
