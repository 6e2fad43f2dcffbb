// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/haierkeys/flipbook-share-service/pkg/timex"

// ResolveRequest 按标识符查询分享记录的请求参数
type ResolveRequest struct {
	Identifier string `json:"identifier" form:"identifier" binding:"required"`
}

// FlipbookDTO 分享记录数据传输对象
type FlipbookDTO struct {
	Identifier string     `json:"identifier" form:"identifier"`
	StorageURL string     `json:"storageUrl" form:"storageUrl"`
	UploadedAt timex.Time `json:"uploadedAt" swaggertype:"string" example:"2026-01-02 15:04:05"`
	CreatedAt  timex.Time `json:"-"`
	UpdatedAt  timex.Time `json:"-"`
}

// UploadResultDTO 上传完成后的响应对象
type UploadResultDTO struct {
	Identifier   string `json:"identifier"`
	StorageURL   string `json:"storageUrl"`
	ShareableURL string `json:"shareableUrl"`
}

// HistoryDTO 最近上传列表响应对象
type HistoryDTO struct {
	Items []*FlipbookDTO `json:"items"`
}

// ViewerLayoutRequest 计算翻页阅读器单页尺寸的请求参数
type ViewerLayoutRequest struct {
	ViewportWidth  float64 `json:"viewportWidth" form:"viewportWidth" binding:"required,gt=0"`
	ViewportHeight float64 `json:"viewportHeight" form:"viewportHeight" binding:"required,gt=0"`
	AspectRatio    float64 `json:"aspectRatio" form:"aspectRatio" binding:"required,gt=0"`
}

// ViewerLayoutDTO 翻页阅读器单页尺寸响应对象
type ViewerLayoutDTO struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
}

// ViewerConfigDTO 翻页阅读器展示配置响应对象
type ViewerConfigDTO struct {
	MarginFactor  float64 `json:"marginFactor"`
	MinPageWidth  float64 `json:"minPageWidth"`
	MinPageHeight float64 `json:"minPageHeight"`
}
