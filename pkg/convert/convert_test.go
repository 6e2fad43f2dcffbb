package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 字符串转数字，解析失败时 Must 系列回退零值
func TestStrToInt(t *testing.T) {
	v, err := StrTo("42").Int()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	assert.Equal(t, 42, StrTo("42").MustInt())
	assert.Equal(t, 0, StrTo("abc").MustInt())
	assert.Equal(t, int64(42), StrTo("42").MustInt64())
	assert.Equal(t, int64(0), StrTo("").MustInt64())
}

type wallClock time.Time

type assignSrc struct {
	ID         int64
	Identifier string
	UploadedAt wallClock
	Extra      string
}

type assignDst struct {
	ID         int64
	Identifier string
	UploadedAt time.Time
	Missing    string
}

// 同名字段复制，包装时间类型自动转换
func TestStructAssign(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	src := &assignSrc{
		ID:         7,
		Identifier: "report-1.pdf",
		UploadedAt: wallClock(now),
		Extra:      "ignored",
	}

	dst := StructAssign(src, &assignDst{}).(*assignDst)

	assert.Equal(t, int64(7), dst.ID)
	assert.Equal(t, "report-1.pdf", dst.Identifier)
	assert.True(t, dst.UploadedAt.Equal(now))
	assert.Empty(t, dst.Missing)
}
