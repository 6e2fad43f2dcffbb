package fileurl

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/util"
)

// maxBaseLength bounds the sanitized base name so identifiers stay
// storage key safe on every backend
// maxBaseLength 限制净化后的基础名长度，保证标识符在所有存储后端均为合法键
const maxBaseLength = 48

// tokenLength random suffix length appended after the timestamp
// tokenLength 时间戳之后追加的随机后缀长度
const tokenLength = 6

// SanitizeBaseName strips the extension and every character outside the
// alphanumeric-and-hyphen set, then truncates to a bounded length.
// An empty result falls back to "document".
// SanitizeBaseName 去掉扩展名并剔除字母数字和连字符以外的所有字符，再截断到限定长度
// 结果为空时回退为 "document"
func SanitizeBaseName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		}
	}

	out := b.String()
	if out == "" {
		out = "document"
	}
	if len(out) > maxBaseLength {
		out = out[:maxBaseLength]
	}
	return out
}

// NewIdentifier derives a unique identifier from the original filename:
// the sanitized base plus a timestamp and random token, always ending
// in .pdf. Collisions need the same second and the same random suffix.
// NewIdentifier 从原始文件名派生唯一标识符：净化后的基础名加时间戳和随机令牌，固定以 .pdf 结尾
// 碰撞需要同一秒内产生相同的随机后缀
func NewIdentifier(fileName string) string {
	return fmt.Sprintf("%s-%d-%s.pdf", SanitizeBaseName(fileName), time.Now().Unix(), util.GetRandomString(tokenLength))
}
