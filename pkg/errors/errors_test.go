package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resBody struct {
	Code    int    `json:"code"`
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func newErrorContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/resolve", nil)
	return c, w
}

func decodeRes(t *testing.T, w *httptest.ResponseRecorder) resBody {
	t.Helper()
	var body resBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// Code 对象直接决定 HTTP 状态和响应码
func TestErrorResponseCode(t *testing.T) {
	c, w := newErrorContext(t)

	ErrorResponse(c, code.ErrorLinkNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeRes(t, w)
	assert.Equal(t, code.ErrorLinkNotFound.Code(), body.Code)
	assert.False(t, body.Status)
}

// 包装链中的 Code 对象同样会被解析
func TestErrorResponseWrappedCode(t *testing.T) {
	c, w := newErrorContext(t)

	ErrorResponse(c, fmt.Errorf("resolve: %w", code.ErrorLinkNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, code.ErrorLinkNotFound.Code(), decodeRes(t, w).Code)
}

// 上下文超时映射为请求超时
func TestErrorResponseDeadline(t *testing.T) {
	c, w := newErrorContext(t)

	ErrorResponse(c, fmt.Errorf("registry query: %w", context.DeadlineExceeded))

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Equal(t, code.ErrorRequestTimeout.Code(), decodeRes(t, w).Code)
}

// 未识别的错误按内部错误返回
func TestErrorResponseUnknown(t *testing.T) {
	c, w := newErrorContext(t)

	ErrorResponse(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeRes(t, w)
	assert.Equal(t, code.ErrorServerInternal.Code(), body.Code)
	assert.Contains(t, body.Details, "boom")
}

// AppError 携带 Code 对象，追踪 ID 从请求上下文补全
func TestErrorResponseAppError(t *testing.T) {
	c, w := newErrorContext(t)
	c.Set("trace_id", "trace-123")

	appErr := NewAppError(code.ErrorUploadStorageFailed, io.ErrUnexpectedEOF)
	ErrorResponse(c, fmt.Errorf("upload: %w", appErr))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, code.ErrorUploadStorageFailed.Code(), decodeRes(t, w).Code)
	assert.Equal(t, "trace-123", appErr.TraceID)
	assert.True(t, errors.Is(appErr, io.ErrUnexpectedEOF))
}
