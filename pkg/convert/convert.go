package convert

import "strconv"

// StrTo 查询参数取值的轻量转换包装，Must 系列在解析失败时返回零值
type StrTo string

func (s StrTo) String() string { return string(s) }

func (s StrTo) Int() (int, error) { return strconv.Atoi(string(s)) }

func (s StrTo) MustInt() int {
	n, _ := strconv.Atoi(string(s))
	return n
}

func (s StrTo) Int64() (int64, error) { return strconv.ParseInt(string(s), 10, 64) }

func (s StrTo) MustInt64() int64 {
	n, _ := s.Int64()
	return n
}
