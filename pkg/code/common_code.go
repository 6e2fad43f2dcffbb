package code

import "net/http"

// Common codes shared by every handler
// 通用状态码，所有处理器共用
var (
	Success = NewSuss(0, lang{
		en: "Success",
		zh: "成功",
	})

	Failed = NewError(10000000, lang{
		en: "Request failed",
		zh: "请求失败",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorInvalidParams = NewError(10000001, lang{
		en: "Invalid request parameters",
		zh: "请求参数错误",
	}).WithStatusCode(http.StatusBadRequest)

	ErrorNotFoundAPI = NewError(10000002, lang{
		en: "Interface not found",
		zh: "接口不存在",
	}).WithStatusCode(http.StatusNotFound)

	ErrorRequestTimeout = NewError(10000003, lang{
		en: "Request timeout",
		zh: "请求超时",
	}).WithStatusCode(http.StatusRequestTimeout)

	ErrorServerInternal = NewError(10000004, lang{
		en: "Server internal error",
		zh: "服务器内部错误",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorTooManyRequests = NewError(10000007, lang{
		en: "Too many requests",
		zh: "请求过多",
	}).WithStatusCode(http.StatusTooManyRequests)

	ErrorDBQuery = NewError(10000008, lang{
		en: "Database query error",
		zh: "数据库查询错误",
	}).WithStatusCode(http.StatusInternalServerError)
)
