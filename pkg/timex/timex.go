// Package timex wraps time.Time with the serialization used across the service
// Package timex 包装 time.Time，提供服务内统一的序列化格式
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// Time wall-clock type stored by gorm and rendered in JSON as "2006-01-02 15:04:05"
// Time 墙上时钟类型，gorm 存储，JSON 输出格式为 "2006-01-02 15:04:05"
type Time time.Time

// Now returns the current time as a timex.Time
// Now 返回当前时间的 timex.Time
func Now() Time {
	return Time(time.Now())
}

// ToTime converts back to the standard library type
// ToTime 转换回标准库类型
func (t Time) ToTime() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(timeFormat)
}

// MarshalJSON implements json.Marshaler; zero time serializes as empty string
// MarshalJSON 实现 json.Marshaler；零值时间序列化为空字符串
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler
// UnmarshalJSON 实现 json.Unmarshaler
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+timeFormat+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so gorm can persist the type
// Value 实现 driver.Valuer，便于 gorm 持久化
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
// Scan 实现 sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		parsed, err := time.ParseInLocation(timeFormat, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case []byte:
		parsed, err := time.ParseInLocation(timeFormat, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("can not convert %v to timex.Time", v)
	}
	return nil
}
