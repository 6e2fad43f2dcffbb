// Package domain 定义领域模型和接口
package domain

import "context"

// FlipbookRepository 翻页书仓储接口
type FlipbookRepository interface {
	// Upsert 按 identifier 插入或更新记录
	// 写入是原子的，失败时不会留下部分写入的记录
	Upsert(ctx context.Context, flipbook *Flipbook) error

	// Get 按 identifier 获取记录
	// 记录不存在时返回 (nil, nil)，连接失败等返回非 nil 错误
	Get(ctx context.Context, identifier string) (*Flipbook, error)

	// ListRecent 按 uploaded_at 倒序获取最近记录，最多 limit 条
	// 每次调用重新查询，不做缓存
	ListRecent(ctx context.Context, limit int) ([]*Flipbook, error)
}
