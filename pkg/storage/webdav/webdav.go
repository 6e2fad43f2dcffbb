// Package webdav WebDAV 存储后端
package webdav

import (
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// WebDAV 存储客户端
// WebDAV 本身没有公开访问语义，应配置 AccessURLPrefix 指向对外发布地址
type WebDAV struct {
	client *gowebdav.Client
	conf   *Config
}

// NewClient 创建 WebDAV 存储实例并验证连接
func NewClient(conf *Config) (*WebDAV, error) {
	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return &WebDAV{client: c, conf: conf}, nil
}

func (w *WebDAV) objectKey(fileKey string) string {
	if w.conf.CustomPath == "" {
		return fileKey
	}
	return fileurl.PathSuffixCheckAdd(w.conf.CustomPath, "/") + fileKey
}

// ensureDir 逐级建出对象键所在目录
func (w *WebDAV) ensureDir(fileKey string) error {
	dir := path.Dir(fileKey)
	if dir == "." || dir == "/" {
		return nil
	}
	return w.client.MkdirAll(dir, 0755)
}

// SendFile 把上传流写入 WebDAV 服务器并返回实际存储的对象键
func (w *WebDAV) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	key := w.objectKey(fileKey)
	if err := w.ensureDir(key); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.client.WriteStream(key, file, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return key, nil
}

// SendContent 把二进制内容写入 WebDAV 服务器并返回实际存储的对象键
func (w *WebDAV) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	key := w.objectKey(fileKey)
	if err := w.ensureDir(key); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.client.Write(key, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return key, nil
}

// PublicURL 返回对象的公开访问地址
func (w *WebDAV) PublicURL(fileKey string) string {
	base := w.conf.Endpoint
	if w.conf.AccessURLPrefix != "" {
		base = w.conf.AccessURLPrefix
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(fileKey, "/")
}

// Delete 删除对象，fileKey 为 SendFile 返回的对象键
func (w *WebDAV) Delete(fileKey string) error {
	return errors.Wrap(w.client.Remove(fileKey), "webdav")
}
