// Package minio MinIO 对象存储后端，走 S3 兼容协议
package minio

import (
	"strings"

	"github.com/haierkeys/flipbook-share-service/pkg/storage/s3kit"

	"go.uber.org/zap"
)

type Config struct {
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// MinIO 存储客户端，上传与删除由内嵌的 s3kit 客户端承担
type MinIO struct {
	*s3kit.Client
}

// Option 配置选项
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// NewClient 创建 MinIO 客户端，走 S3 兼容接口的 path-style 寻址
func NewClient(conf *Config, opts ...Option) (*MinIO, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client, err := s3kit.New(conf.AccessKeyID, conf.AccessKeySecret, s3kit.Options{
		Label:        "minio",
		Region:       conf.Region,
		BaseEndpoint: conf.Endpoint,
		UsePathStyle: true,
		Bucket:       conf.BucketName,
		KeyPrefix:    conf.CustomPath,
		URLPrefix:    conf.AccessURLPrefix,
		PublicBase:   strings.TrimRight(conf.Endpoint, "/") + "/" + conf.BucketName,
	}, o.logger)
	if err != nil {
		return nil, err
	}
	return &MinIO{Client: client}, nil
}
