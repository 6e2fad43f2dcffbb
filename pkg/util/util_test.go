package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 大小字符串解析，非法输入回退到默认值
func TestParseSize(t *testing.T) {
	const fallback = int64(1024)

	assert.Equal(t, int64(50*1024*1024), ParseSize("50MB", fallback))
	assert.Equal(t, int64(512*1024), ParseSize("512KB", fallback))
	assert.Equal(t, int64(100), ParseSize("100B", fallback))
	assert.Equal(t, int64(2048), ParseSize("2048", fallback))
	assert.Equal(t, int64(10*1024*1024), ParseSize(" 10mb ", fallback))

	assert.Equal(t, fallback, ParseSize("", fallback))
	assert.Equal(t, fallback, ParseSize("abc", fallback))
	assert.Equal(t, fallback, ParseSize("0MB", fallback))
	assert.Equal(t, fallback, ParseSize("-5MB", fallback))
}

// 时长解析支持天后缀和纯数字秒
func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("7d")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)

	d, err = ParseDuration("300")
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, d)

	d, err = ParseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = ParseDuration("xd")
	assert.Error(t, err)
}

// 随机字符串长度正确且只含字母数字
func TestGetRandomString(t *testing.T) {
	s := GetRandomString(16)
	assert.Len(t, s, 16)
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "unexpected character %q", r)
	}
}
