// Package aws_s3 AWS S3 对象存储后端
package aws_s3

import (
	"fmt"

	"github.com/haierkeys/flipbook-share-service/pkg/storage/s3kit"

	"go.uber.org/zap"
)

type Config struct {
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// S3 存储客户端，上传与删除由内嵌的 s3kit 客户端承担
// 桶默认私有，对象以公开读 ACL 写入
type S3 struct {
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

// NewClient 创建 S3 客户端，对象按公开读写入
func NewClient(conf *Config, opts ...Option) (*S3, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client, err := s3kit.New(conf.AccessKeyID, conf.AccessKeySecret, s3kit.Options{
		Label:      "aws_s3",
		Region:     conf.Region,
		PublicRead: true,
		Bucket:     conf.BucketName,
		KeyPrefix:  conf.CustomPath,
		URLPrefix:  conf.AccessURLPrefix,
		PublicBase: fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.BucketName, conf.Region),
	}, o.logger)
	if err != nil {
		return nil, err
	}
	return &S3{Client: client}, nil
}
