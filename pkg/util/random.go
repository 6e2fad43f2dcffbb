package util

import (
	"math/rand/v2"
	"strings"
)

const alphanum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString 生成指定长度的随机字母数字串
func GetRandomString(length int) string {
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphanum[rand.IntN(len(alphanum))])
	}
	return b.String()
}
