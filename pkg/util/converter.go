package util

import (
	"strconv"
	"strings"
)

// 单位后缀按匹配顺序排列，MB 必须在 B 之前
var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human readable size such as "50MB" or "512KB" into bytes.
// Bare numbers are taken as bytes. Invalid or non-positive input falls back to
// defaultSize.
// ParseSize 将 "50MB"、"512KB" 这类大小字符串解析为字节数，
// 纯数字按字节处理，非法或非正值回退到 defaultSize
func ParseSize(sizeStr string, defaultSize int64) int64 {
	s := strings.ToUpper(strings.TrimSpace(sizeStr))
	if s == "" {
		return defaultSize
	}

	factor := int64(1)
	for _, u := range sizeUnits {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			factor = u.factor
			s = strings.TrimSpace(rest)
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return defaultSize
	}
	return n * factor
}
