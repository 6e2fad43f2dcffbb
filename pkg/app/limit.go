package app

import (
	"github.com/haierkeys/flipbook-share-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// LimitConfig list limit configuration // 列表限制配置
type LimitConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultLimitConfig default list limit configuration // 默认列表限制配置
var DefaultLimitConfig = LimitConfig{
	DefaultLimit: 50,
	MaxLimit:     50,
}

// GetLimitWithConfig gets list limit (using injected configuration)
// Missing or non-positive values fall back to the default, oversized
// values are capped at the maximum.
// GetLimitWithConfig 获取列表限制（使用注入的配置）
// 缺失或非正值回退到默认值，超大值被限制在最大值
func GetLimitWithConfig(c *gin.Context, cfg LimitConfig) int {
	var limit int

	if s, exist := c.GetQuery("limit"); exist {
		limit = convert.StrTo(s).MustInt()
	} else if s := c.PostForm("limit"); s != "" {
		limit = convert.StrTo(s).MustInt()
	}

	if limit <= 0 {
		return cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}

	return limit
}

// GetLimit gets list limit (using default configuration)
// GetLimit 获取列表限制（使用默认配置）
func GetLimit(c *gin.Context) int {
	return GetLimitWithConfig(c, DefaultLimitConfig)
}
