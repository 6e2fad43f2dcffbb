package domain

import (
	"errors"
	"net/url"
	"time"
)

// 领域校验错误
var (
	// ErrIdentifierEmpty 标识符为空
	ErrIdentifierEmpty = errors.New("identifier is empty")
	// ErrStorageURLInvalid 存储地址不是合法的绝对 URL
	ErrStorageURLInvalid = errors.New("storage url is not an absolute url")
)

// 历史列表限制
const (
	// DefaultRecentLimit 未指定条数时的默认值
	DefaultRecentLimit = 50
	// MaxRecentLimit 单次查询条数上限
	MaxRecentLimit = 50
)

// Flipbook 翻页书领域模型
// 一条记录对应一次成功上传的 PDF 文档，identifier 唯一
type Flipbook struct {
	ID         int64
	Identifier string
	StorageURL string
	UploadedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate 校验写入约束：标识符非空，存储地址为绝对 URL
func (f *Flipbook) Validate() error {
	if f.Identifier == "" {
		return ErrIdentifierEmpty
	}
	u, err := url.Parse(f.StorageURL)
	if err != nil || !u.IsAbs() {
		return ErrStorageURLInvalid
	}
	return nil
}
