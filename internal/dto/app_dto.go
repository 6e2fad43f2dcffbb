// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// VersionDTO /api/version 响应体，新版本字段由后台版本检查任务填充
type VersionDTO struct {
	Version        string `json:"version"`        // 当前版本
	GitTag         string `json:"gitTag"`         // Git 标签
	BuildTime      string `json:"buildTime"`      // 构建时间
	VersionIsNew   bool   `json:"versionIsNew"`   // 是否有新版本
	VersionNewName string `json:"versionNewName"` // 新版本名称
	VersionNewLink string `json:"versionNewLink"` // 新版本下载链接
}
