package code

import "net/http"

// Flipbook upload and link resolution codes
// 翻页书上传与链接解析状态码
var (
	ErrorInvalidFileType = NewError(20020001, lang{
		en: "Only PDF files are accepted",
		zh: "仅接受 PDF 文件",
	}).WithStatusCode(http.StatusBadRequest)

	ErrorFileTooLarge = NewError(20020002, lang{
		en: "File exceeds the upload size limit",
		zh: "文件超过上传大小限制",
	}).WithStatusCode(http.StatusRequestEntityTooLarge)

	ErrorLinkNotFound = NewError(20020003, lang{
		en: "Unknown or expired link",
		zh: "链接不存在或已失效",
	}).WithStatusCode(http.StatusNotFound)

	ErrorUploadStorageFailed = NewError(20020004, lang{
		en: "Failed to store the uploaded file",
		zh: "上传文件存储失败",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorUploadRegisterFailed = NewError(20020005, lang{
		en: "Failed to register the upload",
		zh: "上传记录写入失败",
	}).WithStatusCode(http.StatusInternalServerError)

	ErrorUploadFileFailed = NewError(20020006, lang{
		en: "Failed to read the uploaded file",
		zh: "上传文件读取失败",
	}).WithStatusCode(http.StatusBadRequest)

	ErrorInvalidStorageType = NewError(20020007, lang{
		en: "Storage type is not supported",
		zh: "不支持的存储类型",
	}).WithStatusCode(http.StatusInternalServerError)
)
