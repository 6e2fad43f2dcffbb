package dao

import (
	"context"

	"github.com/haierkeys/flipbook-share-service/internal/domain"
	"github.com/haierkeys/flipbook-share-service/internal/model"
	"github.com/haierkeys/flipbook-share-service/pkg/convert"
	"github.com/haierkeys/flipbook-share-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// flipbookRepository implements domain.FlipbookRepository interface
// flipbookRepository 实现 domain.FlipbookRepository 接口
type flipbookRepository struct {
	dao *Dao
}

// NewFlipbookRepository creates a FlipbookRepository instance
// NewFlipbookRepository 创建 FlipbookRepository 实例
func NewFlipbookRepository(dao *Dao) domain.FlipbookRepository {
	return &flipbookRepository{dao: dao}
}

// getDB gets the database connection and ensures the table is migrated
// getDB 获取数据库连接并保证表已迁移
func (r *flipbookRepository) getDB() *gorm.DB {
	db := r.dao.DB()

	if r.dao.config != nil && !r.dao.config.AutoMigrate {
		return db
	}

	// Ensure migration only happens once
	// 保证迁移只执行一次
	if _, loaded := r.dao.onceKeys.LoadOrStore("flipbook#migrated", true); !loaded {
		model.AutoMigrate(db, "Flipbook")
	}

	return db
}

// toDomain converts database model to domain model
// toDomain 将数据库模型转换为领域模型
func (r *flipbookRepository) toDomain(m *model.Flipbook) *domain.Flipbook {
	if m == nil {
		return nil
	}
	return convert.StructAssign(m, &domain.Flipbook{}).(*domain.Flipbook)
}

// Upsert inserts the record or, when the identifier already exists,
// overwrites storage_url and uploaded_at in a single atomic statement.
// Upsert 插入记录，identifier 已存在时在单条原子语句内覆盖 storage_url 和 uploaded_at
func (r *flipbookRepository) Upsert(ctx context.Context, flipbook *domain.Flipbook) error {
	if err := flipbook.Validate(); err != nil {
		return err
	}

	now := timex.Now()
	m := convert.StructAssign(flipbook, &model.Flipbook{}).(*model.Flipbook)
	m.CreatedAt = now
	m.UpdatedAt = now

	return r.dao.ExecuteWrite(ctx, model.TableNameFlipbook, func(db *gorm.DB) error {
		return r.getDB().WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identifier"}},
			DoUpdates: clause.AssignmentColumns([]string{"storage_url", "uploaded_at", "updated_at"}),
		}).Create(m).Error
	})
}

// Get returns the record for the identifier, (nil, nil) when absent
// Get 按 identifier 返回记录，不存在时返回 (nil, nil)
func (r *flipbookRepository) Get(ctx context.Context, identifier string) (*domain.Flipbook, error) {
	if identifier == "" {
		return nil, domain.ErrIdentifierEmpty
	}

	var m model.Flipbook
	err := r.getDB().WithContext(ctx).
		Where("identifier = ?", identifier).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListRecent returns up to limit records ordered by uploaded_at descending.
// Ties are broken by id descending so the order stays deterministic.
// Every call issues a fresh query.
// ListRecent 按 uploaded_at 倒序返回最多 limit 条记录
// 相同时间按 id 倒序保证顺序确定，每次调用都重新查询
func (r *flipbookRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Flipbook, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentLimit
	}
	if limit > domain.MaxRecentLimit {
		limit = domain.MaxRecentLimit
	}

	var modelList []*model.Flipbook
	err := r.getDB().WithContext(ctx).
		Order("uploaded_at DESC, id DESC").
		Limit(limit).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Flipbook, 0, len(modelList))
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}
