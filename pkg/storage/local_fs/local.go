// Package local_fs 本地文件系统存储后端
package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath        string `yaml:"save-path" default:"storage/uploads"`
	CustomPath      string `yaml:"custom-path"`
	AccessURLPrefix string `yaml:"access-url-prefix"`
}

// LocalFS 本地文件系统存储客户端
// SendFile 与 SendContent 返回落盘路径作为对象键，Delete 和 PublicURL 直接使用该路径
type LocalFS struct {
	conf *Config
}

// NewClient 创建本地文件系统存储实例
func NewClient(conf *Config) (*LocalFS, error) {
	return &LocalFS{conf: conf}, nil
}

// savePath 保存目录加对象键得到落盘路径
func (p *LocalFS) savePath(fileKey string) string {
	key := fileKey
	if p.conf.CustomPath != "" {
		key = fileurl.PathSuffixCheckAdd(p.conf.CustomPath, "/") + fileKey
	}
	return fileurl.PathSuffixCheckAdd(p.conf.SavePath, "/") + key
}

// SendFile 把上传流写入本地保存目录并返回落盘路径
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.savePath(fileKey)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		return "", errors.Wrap(err, "local_fs")
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	applyModTime(dst, modTime)
	return dst, nil
}

// SendContent 把二进制内容写入本地保存目录并返回落盘路径
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.savePath(fileKey)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	applyModTime(dst, modTime)
	return dst, nil
}

// applyModTime 把文件时间对齐到原始修改时间，失败不影响写入结果
func applyModTime(dst string, modTime time.Time) {
	if modTime.IsZero() {
		return
	}
	_ = os.Chtimes(dst, modTime, modTime)
}

// SetAccessURLPrefix 运行时更新公开地址前缀，分享基础地址切换时调用
func (p *LocalFS) SetAccessURLPrefix(prefix string) {
	p.conf.AccessURLPrefix = strings.TrimRight(prefix, "/")
}

// PublicURL 返回保存文件的公开访问地址
// 未配置 AccessURLPrefix 时返回相对路径，由应用的静态文件路由提供访问
func (p *LocalFS) PublicURL(fileKey string) string {
	if p.conf.AccessURLPrefix != "" {
		return strings.TrimRight(p.conf.AccessURLPrefix, "/") + "/" + strings.TrimLeft(fileKey, "/")
	}
	return "/" + strings.TrimLeft(fileKey, "/")
}

// Delete 删除已保存的文件，文件不存在视为已完成
func (p *LocalFS) Delete(fileKey string) error {
	if fileurl.IsExist(fileKey) {
		return os.Remove(fileKey)
	}
	return nil
}
