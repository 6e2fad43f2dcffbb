package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Upload UploadServiceConfig // Upload related config // 上传相关配置
	Share  ShareServiceConfig  // Share link related config // 分享链接相关配置
}

// UploadServiceConfig upload service configuration
// UploadServiceConfig 上传服务配置
type UploadServiceConfig struct {
	MaxFileSize int64 // Upload size ceiling in bytes // 上传大小上限（字节）
}

// ShareServiceConfig share link service configuration
// ShareServiceConfig 分享链接服务配置
type ShareServiceConfig struct {
	BaseURL        string // Base address shareable links are derived from // 分享链接基础地址
	IdentifierName string // Query parameter carrying the identifier // 携带标识符的查询参数名
}
