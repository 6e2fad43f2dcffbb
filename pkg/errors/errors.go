package errors

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/app"
	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// traceIDKey 与追踪中间件写入 gin 上下文的键保持一致
const traceIDKey = "trace_id"

// AppError 服务层错误的统一包装，携带状态码对象和原始错误，
// ErrorResponse 按其中的状态码对象决定响应内容
type AppError struct {
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Details   []string  `json:"details,omitempty"`
	TraceID   string    `json:"traceId,omitempty"`
	Cause     error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`

	codeObj *code.Code
}

func (e *AppError) Error() string { return e.Message }

// Unwrap 暴露原始错误给 errors.Is 和 errors.As
func (e *AppError) Unwrap() error { return e.Cause }

// NewAppError 用状态码对象包装底层错误
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code: c.Code(), Message: c.Msg(), Details: c.Details(),
		Cause: cause, Timestamp: time.Now(), codeObj: c,
	}
}

// ErrorResponse 解析错误链并输出统一响应，HTTP 状态取自状态码映射
func ErrorResponse(c *gin.Context, err error) {
	traceID := c.GetString(traceIDKey)

	var ae *AppError
	if errors.As(err, &ae) {
		if ae.TraceID == "" {
			ae.TraceID = traceID
		}
		// 状态码对象自身携带详情，无对象时回退通用失败码
		codeObj := ae.codeObj
		if codeObj == nil {
			codeObj = code.Failed.WithDetails(ae.Details...)
		}
		app.NewResponse(c).ToResponse(codeObj)
		return
	}

	// 错误链中直接携带状态码对象
	var ce *code.Code
	if errors.As(err, &ce) {
		app.NewResponse(c).ToResponse(ce)
		return
	}

	// 请求上下文超时
	if errors.Is(err, context.DeadlineExceeded) {
		app.NewResponse(c).ToResponse(code.ErrorRequestTimeout)
		return
	}

	// 未知错误按内部错误返回
	app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
}
