// Package cloudflare_r2 Cloudflare R2 对象存储后端，走 S3 兼容协议
package cloudflare_r2

import (
	"fmt"

	"github.com/haierkeys/flipbook-share-service/pkg/storage/s3kit"

	"go.uber.org/zap"
)

type Config struct {
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// R2 存储客户端，上传与删除由内嵌的 s3kit 客户端承担
// 对象的公开访问依赖 r2.dev 域名或自定义域名，应配置 AccessURLPrefix
type R2 struct {
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

// NewClient 创建 R2 客户端，公开地址依赖 access-url-prefix 配置
func NewClient(conf *Config, opts ...Option) (*R2, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", conf.AccountID)
	client, err := s3kit.New(conf.AccessKeyID, conf.AccessKeySecret, s3kit.Options{
		Label:        "cloudflare_r2",
		Region:       "auto",
		BaseEndpoint: endpoint,
		Bucket:       conf.BucketName,
		KeyPrefix:    conf.CustomPath,
		URLPrefix:    conf.AccessURLPrefix,
		PublicBase:   endpoint + "/" + conf.BucketName,
	}, o.logger)
	if err != nil {
		return nil, err
	}
	return &R2{Client: client}, nil
}
