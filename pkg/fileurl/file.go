package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist 判断路径是否存在
func IsExist(dst string) bool {
	if _, err := os.Stat(dst); err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath 创建目标文件所在的目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd 确保路径以指定后缀结尾
func PathSuffixCheckAdd(path string, suffix string) string {
	if strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}
