package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// JSON 输出为 "2006-01-02 15:04:05"，零值输出空串
func TestTimeMarshalJSON(t *testing.T) {
	tt := Time(time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local))

	data, err := tt.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-02 15:04:05"`, string(data))

	data, err = Time{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

// 反序列化接受格式化时间、空串与 null
func TestTimeUnmarshalJSON(t *testing.T) {
	var tt Time
	require.NoError(t, tt.UnmarshalJSON([]byte(`"2026-01-02 15:04:05"`)))
	assert.Equal(t, "2026-01-02 15:04:05", tt.String())

	require.NoError(t, tt.UnmarshalJSON([]byte(`""`)))
	assert.True(t, tt.IsZero())

	require.NoError(t, tt.UnmarshalJSON([]byte("null")))
	assert.True(t, tt.IsZero())

	assert.Error(t, tt.UnmarshalJSON([]byte(`"02/01/2026"`)))
}

// 数据库读写往返，nil 与非法类型的处理
func TestTimeScanValue(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)

	var tt Time
	require.NoError(t, tt.Scan(now))
	v, err := tt.Value()
	require.NoError(t, err)
	assert.Equal(t, now, v)

	require.NoError(t, tt.Scan("2026-03-14 10:30:00"))
	assert.Equal(t, now.Unix(), tt.Unix())

	require.NoError(t, tt.Scan([]byte("2026-03-14 10:30:00")))
	assert.Equal(t, now.Unix(), tt.Unix())

	require.NoError(t, tt.Scan(nil))
	assert.True(t, tt.IsZero())
	v, err = tt.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, tt.Scan(42))
}
