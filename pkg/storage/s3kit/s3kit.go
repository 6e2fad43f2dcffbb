// Package s3kit 基于 AWS SDK v2 的 S3 兼容客户端公共实现
// MinIO、Cloudflare R2 和 AWS S3 后端只在端点、寻址和 ACL 上有差异，
// 上传、删除和公开地址拼装统一走这里
package s3kit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"
	"github.com/haierkeys/flipbook-share-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options 各后端的差异配置
type Options struct {
	// Label 错误包装前缀，按后端命名
	Label string
	// Region 区域，R2 固定为 auto
	Region string
	// BaseEndpoint 自定义端点，AWS 官方端点留空
	BaseEndpoint string
	// UsePathStyle 路径风格寻址，MinIO 需要开启
	UsePathStyle bool
	// PublicRead 上传时附加公开读 ACL，桶策略已放行的后端不需要
	PublicRead bool

	// Bucket 对象桶名
	Bucket string
	// KeyPrefix 拼接在对象键之前的路径前缀
	KeyPrefix string
	// URLPrefix 公开访问地址前缀，优先于 PublicBase
	URLPrefix string
	// PublicBase 未配置 URLPrefix 时的公开地址基串
	PublicBase string
}

// Client S3 兼容存储客户端
type Client struct {
	api      *s3.Client
	uploader *manager.Uploader
	o        Options
	logger   *zap.Logger
}

// New 创建客户端，lg 为 nil 时使用空日志器
func New(accessKeyID, accessKeySecret string, o Options, lg *zap.Logger) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		config.WithRegion(o.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, o.Label)
	}

	api := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		so.UsePathStyle = o.UsePathStyle
	})

	if lg == nil {
		lg = zap.NewNop()
	}
	return &Client{
		api:      api,
		uploader: manager.NewUploader(api),
		o:        o,
		logger:   lg,
	}, nil
}

func (c *Client) objectKey(fileKey string) string {
	if c.o.KeyPrefix == "" {
		return fileKey
	}
	return fileurl.PathSuffixCheckAdd(c.o.KeyPrefix, "/") + fileKey
}

func (c *Client) putInput(key string, body io.Reader) *s3.PutObjectInput {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.o.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if c.o.PublicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}
	return input
}

// applyModTime 把原始修改时间记入对象元数据
func applyModTime(input *s3.PutObjectInput, modTime time.Time) {
	if modTime.IsZero() {
		return
	}
	input.Metadata = map[string]string{
		"modification-time": modTime.Format(time.RFC3339),
	}
}

// SendFile 上传文件流并返回实际存储的对象键
func (c *Client) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	key := c.objectKey(fileKey)

	input := c.putInput(key, file)
	input.ContentType = aws.String(cType)
	applyModTime(input, modTime)

	if _, err := c.api.PutObject(context.Background(), input); err != nil {
		return "", errors.Wrap(err, c.o.Label)
	}
	return key, nil
}

// SendContent 上传二进制内容并返回实际存储的对象键，写入后等待对象可见
func (c *Client) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	ctx := context.Background()
	key := c.objectKey(fileKey)

	input := c.putInput(key, bytes.NewReader(content))
	input.ChecksumAlgorithm = types.ChecksumAlgorithmSha256
	applyModTime(input, modTime)

	if _, err := c.uploader.Upload(ctx, input); err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			c.logger.Warn("bucket does not exist",
				zap.String(logger.FieldBucket, c.o.Bucket),
				zap.Error(err))
		}
		return "", errors.Wrap(err, c.o.Label)
	}

	// 读后写可见性，等对象可查后再返回
	err := s3.NewObjectExistsWaiter(c.api).Wait(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.o.Bucket),
		Key:    aws.String(key),
	}, time.Minute)
	if err != nil {
		c.logger.Warn("wait for object visibility failed",
			zap.String(logger.FieldFileKey, key),
			zap.String(logger.FieldBucket, c.o.Bucket),
			zap.Error(err))
	}
	return key, nil
}

// PublicURL 返回对象的公开访问地址
func (c *Client) PublicURL(fileKey string) string {
	base := c.o.PublicBase
	if c.o.URLPrefix != "" {
		base = c.o.URLPrefix
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(fileKey, "/")
}

// Delete 删除对象，fileKey 为 SendFile 返回的对象键
func (c *Client) Delete(fileKey string) error {
	_, err := c.api.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(c.o.Bucket),
		Key:    aws.String(fileKey),
	})
	return errors.Wrap(err, c.o.Label)
}
