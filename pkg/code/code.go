package code

import (
	"fmt"
	"net/http"
)

// Code 带双语文本和 HTTP 状态映射的业务状态码
// WithData 和 WithDetails 返回副本，注册的全局码对象本身不会被修改，
// 可以安全地在并发请求间复用
type Code struct {
	code       int
	status     bool
	httpStatus int

	// Lang 双语消息文本，响应消息按全局语言取值
	Lang lang

	data    interface{}
	details []string
}

// registered 记录已注册的编号，成功码和错误码共用同一编号空间
var registered = map[int]struct{}{}

func register(num int, status bool, l lang) *Code {
	if _, ok := registered[num]; ok {
		panic(fmt.Sprintf("状态码 %d 已注册，请更换编号", num))
	}
	registered[num] = struct{}{}
	return &Code{code: num, status: status, Lang: l}
}

// NewError 注册错误码，编号重复会在初始化时 panic
func NewError(num int, l lang) *Code {
	return register(num, false, l)
}

// NewSuss 注册成功码
func NewSuss(num int, l lang) *Code {
	return register(num, true, l)
}

// clone With 系列在副本上追加字段
func (e *Code) clone() *Code {
	c := *e
	c.details = append([]string(nil), e.details...)
	return &c
}

// Error 实现 error 接口，服务层可以直接把状态码当错误返回
func (e *Code) Error() string { return e.Lang.GetMessage() }

func (e *Code) Code() int { return e.code }

func (e *Code) Status() bool { return e.status }

// Msg 返回当前全局语言下的消息文本
func (e *Code) Msg() string { return e.Lang.GetMessage() }

func (e *Code) Data() interface{} { return e.data }

func (e *Code) Details() []string { return e.details }

func (e *Code) HaveDetails() bool { return len(e.details) > 0 }

// WithData 返回携带响应数据的副本
func (e *Code) WithData(data interface{}) *Code {
	c := e.clone()
	c.data = data
	return c
}

// WithDetails 返回追加详情文本的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.clone()
	c.details = append(c.details, details...)
	return c
}

// WithStatusCode 绑定对应的 HTTP 状态，仅在注册时链式调用
func (e *Code) WithStatusCode(status int) *Code {
	e.httpStatus = status
	return e
}

// StatusCode 返回映射的 HTTP 状态：成功码默认 200，未绑定的错误码默认 500
func (e *Code) StatusCode() int {
	switch {
	case e.httpStatus != 0:
		return e.httpStatus
	case e.status:
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
