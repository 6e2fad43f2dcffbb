package middleware

import (
	"github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"
	"github.com/haierkeys/flipbook-share-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 按限流器的键取令牌桶限流，没有配置桶的请求直接放行
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if !ok {
			c.Next()
			return
		}
		if bucket.TakeAvailable(1) == 0 {
			app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
