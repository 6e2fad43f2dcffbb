package dao

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/domain"

	"github.com/gookit/goutil/dump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository 基于临时目录下的 sqlite 文件建仓，测试结束自动清理
func newTestRepository(t *testing.T) domain.FlipbookRepository {
	t.Helper()

	cfg := &DatabaseConfig{
		Type:            "sqlite",
		Path:            filepath.Join(t.TempDir(), "db.sqlite3"),
		AutoMigrate:     true,
		MaxIdleConns:    2,
		MaxOpenConns:    2,
		ConnMaxLifetime: "300",
		ConnMaxIdleTime: "60",
	}

	db, err := NewDBEngineWithConfig(*cfg, nil)
	require.NoError(t, err)

	return NewFlipbookRepository(New(db, context.Background(), WithConfig(cfg)))
}

func newFlipbook(identifier string, uploadedAt time.Time) *domain.Flipbook {
	return &domain.Flipbook{
		Identifier: identifier,
		StorageURL: "https://files.example.com/uploads/" + identifier,
		UploadedAt: uploadedAt,
	}
}

// 插入后按标识符可查回同样的记录
func TestFlipbookRepositoryUpsertInsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	uploadedAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	require.NoError(t, repo.Upsert(ctx, newFlipbook("report-1700000000-abc123.pdf", uploadedAt)))

	got, err := repo.Get(ctx, "report-1700000000-abc123.pdf")
	require.NoError(t, err)
	require.NotNil(t, got)
	dump.P(got)
	assert.Equal(t, "report-1700000000-abc123.pdf", got.Identifier)
	assert.Equal(t, "https://files.example.com/uploads/report-1700000000-abc123.pdf", got.StorageURL)
	assert.Equal(t, uploadedAt.Unix(), got.UploadedAt.Unix())
}

// 相同标识符重复写入覆盖 storage_url 和 uploaded_at，不产生第二条记录
func TestFlipbookRepositoryUpsertUpdates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	require.NoError(t, repo.Upsert(ctx, newFlipbook("report-1700000000-abc123.pdf", first)))

	second := first.Add(time.Hour)
	updated := newFlipbook("report-1700000000-abc123.pdf", second)
	updated.StorageURL = "https://files.example.com/uploads/v2/report-1700000000-abc123.pdf"
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx, "report-1700000000-abc123.pdf")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, updated.StorageURL, got.StorageURL)
	assert.Equal(t, second.Unix(), got.UploadedAt.Unix())

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// 写入约束：标识符非空，存储地址必须是绝对 URL
func TestFlipbookRepositoryUpsertValidates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	noIdentifier := newFlipbook("", time.Now())
	assert.ErrorIs(t, repo.Upsert(ctx, noIdentifier), domain.ErrIdentifierEmpty)

	relative := newFlipbook("report-1700000000-abc123.pdf", time.Now())
	relative.StorageURL = "uploads/report.pdf"
	assert.ErrorIs(t, repo.Upsert(ctx, relative), domain.ErrStorageURLInvalid)
}

// 不存在的标识符返回 (nil, nil)，与查询失败区分开
func TestFlipbookRepositoryGetMissing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Get(context.Background(), "no-such-identifier.pdf")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// 空标识符是参数错误而不是未找到
func TestFlipbookRepositoryGetEmptyIdentifier(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrIdentifierEmpty)
}

// 列表按 uploaded_at 倒序，新的在前
func TestFlipbookRepositoryListRecentOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.Local)
	// 故意按乱序插入
	require.NoError(t, repo.Upsert(ctx, newFlipbook("middle.pdf", base.Add(time.Minute))))
	require.NoError(t, repo.Upsert(ctx, newFlipbook("newest.pdf", base.Add(2*time.Minute))))
	require.NoError(t, repo.Upsert(ctx, newFlipbook("oldest.pdf", base)))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest.pdf", list[0].Identifier)
	assert.Equal(t, "middle.pdf", list[1].Identifier)
	assert.Equal(t, "oldest.pdf", list[2].Identifier)
}

// uploaded_at 相同时按 id 倒序，顺序保持确定
func TestFlipbookRepositoryListRecentTieBreak(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	same := time.Date(2026, 1, 2, 15, 0, 0, 0, time.Local)
	require.NoError(t, repo.Upsert(ctx, newFlipbook("first-inserted.pdf", same)))
	require.NoError(t, repo.Upsert(ctx, newFlipbook("second-inserted.pdf", same)))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second-inserted.pdf", list[0].Identifier)
	assert.Equal(t, "first-inserted.pdf", list[1].Identifier)
}

// 条数上限 50，非正值回退到默认 50，每次调用都重新查询
func TestFlipbookRepositoryListRecentLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local)
	for i := 0; i < 55; i++ {
		identifier := fmt.Sprintf("doc-%02d.pdf", i)
		require.NoError(t, repo.Upsert(ctx, newFlipbook(identifier, base.Add(time.Duration(i)*time.Second))))
	}

	capped, err := repo.ListRecent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, capped, domain.MaxRecentLimit)
	assert.Equal(t, "doc-54.pdf", capped[0].Identifier)

	fallback, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, fallback, domain.DefaultRecentLimit)

	three, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, three, 3)
	assert.Equal(t, "doc-54.pdf", three[0].Identifier)
	assert.Equal(t, "doc-53.pdf", three[1].Identifier)
	assert.Equal(t, "doc-52.pdf", three[2].Identifier)

	// 新写入后再次查询立即可见
	require.NoError(t, repo.Upsert(ctx, newFlipbook("doc-new.pdf", base.Add(time.Hour))))
	again, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, again, 3)
	assert.Equal(t, "doc-new.pdf", again[0].Identifier)
}
