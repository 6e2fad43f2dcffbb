// Package storage 统一的文件存储抽象，支持本地文件系统和多种对象存储后端
package storage

import (
	"io"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/code"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/aws_s3"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/local_fs"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/minio"
	"github.com/haierkeys/flipbook-share-service/pkg/storage/webdav"

	"go.uber.org/zap"
)

// Type 存储后端类型标识
type Type = string

const (
	LOCAL  Type = "localfs"
	OSS    Type = "oss"
	R2     Type = "r2"
	S3     Type = "s3"
	MinIO  Type = "minio"
	WebDAV Type = "webdav"
)

// StorageTypeMap 合法的后端类型取值，配置校验用
var StorageTypeMap = map[Type]bool{
	LOCAL:  true,
	OSS:    true,
	R2:     true,
	S3:     true,
	MinIO:  true,
	WebDAV: true,
}

// Config 统一存储配置，各后端只取用与自己相关的字段
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// CustomPath 拼接在每个存储对象键之前
	CustomPath string `yaml:"custom-path"`

	// AccessURLPrefix 覆盖存储对象的公开访问地址前缀
	// 没有固定公开端点的后端（R2、WebDAV）必须配置
	AccessURLPrefix string `yaml:"access-url-prefix"`

	// 对象存储（S3/OSS/MinIO/R2）
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 专用

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// 本地文件系统
	SavePath string `yaml:"save-path" default:"storage/uploads"`
}

// Storager is the backend-independent blob store surface. SendFile and
// SendContent persist a publicly readable object and return the object key as
// stored. PublicURL and Delete take that returned key unchanged.
// Storager 是与后端无关的文件存储接口。SendFile 与 SendContent 写入可公开读取的
// 对象并返回实际存储的对象键。PublicURL 与 Delete 直接使用该返回键。
type Storager interface {
	SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(fileKey string, content []byte, modTime time.Time) (string, error)
	PublicURL(fileKey string) string
	Delete(fileKey string) error
}

// NewClient 根据配置的后端类型创建存储客户端
func NewClient(config *Config) (Storager, error) {
	return NewClientWithLogger(config, nil)
}

// NewClientWithLogger 创建带日志器的存储客户端
func NewClientWithLogger(config *Config, lg *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:        config.SavePath,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		}, cloudflare_r2.WithLogger(lg))
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		}, aws_s3.WithLogger(lg))
	case MinIO:
		return minio.NewClient(&minio.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		}, minio.WithLogger(lg))
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:        config.Endpoint,
			User:            config.User,
			Password:        config.Password,
			CustomPath:      config.CustomPath,
			AccessURLPrefix: config.AccessURLPrefix,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
