package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration 在 time.ParseDuration 之上额外支持 'd' (天) 后缀，
// 纯数字按秒处理
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	if _, err := strconv.Atoi(s); err == nil {
		return time.ParseDuration(s + "s")
	}
	return time.ParseDuration(s)
}
