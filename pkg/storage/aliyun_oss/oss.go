// Package aliyun_oss 阿里云 OSS 对象存储后端
package aliyun_oss

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// OSS 存储客户端，桶在创建时绑定
type OSS struct {
	bucket *oss.Bucket
	conf   *Config
}

// NewClient 创建阿里云 OSS 存储实例
func NewClient(conf *Config) (*OSS, error) {
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return &OSS{bucket: bucket, conf: conf}, nil
}

func (p *OSS) objectKey(fileKey string) string {
	if p.conf.CustomPath == "" {
		return fileKey
	}
	return fileurl.PathSuffixCheckAdd(p.conf.CustomPath, "/") + fileKey
}

// putOptions 对象以公开读 ACL 写入，原始修改时间记入元数据
func putOptions(cType string, modTime time.Time) []oss.Option {
	opts := []oss.Option{oss.ObjectACL(oss.ACLPublicRead)}
	if cType != "" {
		opts = append(opts, oss.ContentType(cType))
	}
	if !modTime.IsZero() {
		opts = append(opts, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}
	return opts
}

// SendFile 上传文件流并返回实际存储的对象键
func (p *OSS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	key := p.objectKey(fileKey)
	if err := p.bucket.PutObject(key, file, putOptions(cType, modTime)...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return key, nil
}

// SendContent 上传二进制内容并返回实际存储的对象键
func (p *OSS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	key := p.objectKey(fileKey)
	if err := p.bucket.PutObject(key, bytes.NewReader(content), putOptions("", modTime)...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return key, nil
}

// PublicURL 返回对象的公开访问地址，默认使用桶域名
func (p *OSS) PublicURL(fileKey string) string {
	if p.conf.AccessURLPrefix != "" {
		return strings.TrimRight(p.conf.AccessURLPrefix, "/") + "/" + fileKey
	}
	host := strings.TrimPrefix(strings.TrimPrefix(p.conf.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", p.conf.BucketName, host, fileKey)
}

// Delete 删除对象，fileKey 为 SendFile 返回的对象键
func (p *OSS) Delete(fileKey string) error {
	return errors.Wrap(p.bucket.DeleteObject(fileKey), "aliyun_oss")
}
