package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/domain"
	"github.com/haierkeys/flipbook-share-service/internal/dto"
	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pdfBytes 以 %PDF 魔数开头，内容嗅探会识别为 application/pdf
var pdfBytes = []byte("%PDF-1.4\n1 0 obj<</Type/Catalog>>endobj\ntrailer<</Root 1 0 R>>\n%%EOF\n")

// memFile 将字节切片包装成 multipart.File
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newUpload(filename, contentType string, content []byte, declaredSize int64) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: filename,
		Size:     declaredSize,
		Header:   textproto.MIMEHeader{},
	}
	header.Header.Set("Content-Type", contentType)
	return memFile{bytes.NewReader(content)}, header
}

// fakeRepository 内存版仓储
type fakeRepository struct {
	records   map[string]*domain.Flipbook
	upsertErr error
	getErr    error
	listErr   error
	upserts   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*domain.Flipbook)}
}

func (f *fakeRepository) Upsert(ctx context.Context, flipbook *domain.Flipbook) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	stored := *flipbook
	f.records[flipbook.Identifier] = &stored
	return nil
}

func (f *fakeRepository) Get(ctx context.Context, identifier string) (*domain.Flipbook, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[identifier], nil
}

func (f *fakeRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Flipbook, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	results := make([]*domain.Flipbook, 0, len(f.records))
	for _, record := range f.records {
		results = append(results, record)
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// fakeStorage 记录调用的存储桩。SendFile 返回带前缀的对象键，
// 用于验证上层始终使用返回键而不是入参键。
type fakeStorage struct {
	sendCalls   int
	lastKey     string
	lastContent []byte
	deleted     []string
	sendErr     error
}

func (f *fakeStorage) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return "", f.sendErr
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.lastKey = "uploads/" + fileKey
	f.lastContent = content
	return f.lastKey, nil
}

func (f *fakeStorage) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	return f.SendFile(fileKey, bytes.NewReader(content), "", modTime)
}

func (f *fakeStorage) PublicURL(fileKey string) string {
	return "https://files.example.com/" + fileKey
}

func (f *fakeStorage) Delete(fileKey string) error {
	f.deleted = append(f.deleted, fileKey)
	return nil
}

func newTestService(repo domain.FlipbookRepository, storage *fakeStorage) FlipbookService {
	return NewFlipbookService(repo, storage, nil, nil, &ServiceConfig{
		Upload: UploadServiceConfig{MaxFileSize: 50 * 1024 * 1024},
		Share:  ShareServiceConfig{BaseURL: "http://localhost:9000"},
	})
}

func assertCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	var coded *code.Code
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, want.Code(), coded.Code())
}

// 声明类型不是 PDF 直接拒绝，不触发任何存储调用
func TestUploadRejectsDeclaredNonPDF(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("notes.txt", "text/plain", []byte("plain text"), 10)
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorInvalidFileType)
	assert.Zero(t, storage.sendCalls)
	assert.Zero(t, repo.upserts)
}

// 声明类型检查先于大小检查：两者都不满足时报类型错误
func TestUploadDeclaredTypeCheckedFirst(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStorage{})

	file, header := newUpload("big.txt", "text/plain", pdfBytes, 500*1024*1024)
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorInvalidFileType)
}

// 超过大小上限拒绝，此时尚未读取文件内容
func TestUploadRejectsOversize(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("big.pdf", "application/pdf", []byte("garbage"), 50*1024*1024+1)
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorFileTooLarge)
	assert.Zero(t, storage.sendCalls)
	assert.Zero(t, repo.upserts)
}

// 恰好等于上限的文件通过大小检查
func TestUploadSizeCeilingBoundary(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("report.pdf", "application/pdf", pdfBytes, 50*1024*1024)
	result, err := svc.Upload(context.Background(), file, header)

	require.NoError(t, err)
	assert.NotEmpty(t, result.Identifier)
}

// 改了扩展名的非 PDF 能通过声明检查，内容嗅探将其拒绝
func TestUploadRejectsSniffedNonPDF(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("fake.pdf", "application/pdf", []byte("not a pdf at all"), 16)
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorInvalidFileType)
	assert.Zero(t, storage.sendCalls)
	assert.Zero(t, repo.upserts)
}

// 成功上传：写入存储、登记记录、返回三个地址
func TestUploadStoresAndRegisters(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("My Report (2026).pdf", "application/pdf", pdfBytes, int64(len(pdfBytes)))
	result, err := svc.Upload(context.Background(), file, header)
	require.NoError(t, err)

	// 标识符由净化后的文件名派生，固定 .pdf 结尾
	assert.True(t, strings.HasPrefix(result.Identifier, "MyReport2026-"), result.Identifier)
	assert.True(t, strings.HasSuffix(result.Identifier, ".pdf"), result.Identifier)

	// 嗅探之后写入的内容仍是完整文件
	assert.Equal(t, pdfBytes, storage.lastContent)

	// 存储地址基于存储层返回的对象键
	assert.Equal(t, "https://files.example.com/uploads/"+result.Identifier, result.StorageURL)

	// 分享链接携带单个标识符查询参数
	shareable, parseErr := url.Parse(result.ShareableURL)
	require.NoError(t, parseErr)
	assert.Equal(t, result.Identifier, shareable.Query().Get("identifier"))

	// 登记的记录与响应一致
	stored := repo.records[result.Identifier]
	require.NotNil(t, stored)
	assert.Equal(t, result.StorageURL, stored.StorageURL)
	assert.False(t, stored.UploadedAt.IsZero())
}

// 登记失败时回滚已写入的文件，不留下孤儿
func TestUploadRollsBackOnRegisterFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.upsertErr = errors.New("database is locked")
	storage := &fakeStorage{}
	svc := newTestService(repo, storage)

	file, header := newUpload("report.pdf", "application/pdf", pdfBytes, int64(len(pdfBytes)))
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorUploadRegisterFailed)
	require.Len(t, storage.deleted, 1)
	assert.Equal(t, storage.lastKey, storage.deleted[0])
}

// 存储写入失败映射为存储错误，不触发登记
func TestUploadStorageFailure(t *testing.T) {
	repo := newFakeRepository()
	storage := &fakeStorage{sendErr: errors.New("disk full")}
	svc := newTestService(repo, storage)

	file, header := newUpload("report.pdf", "application/pdf", pdfBytes, int64(len(pdfBytes)))
	_, err := svc.Upload(context.Background(), file, header)

	assertCode(t, err, code.ErrorUploadStorageFailed)
	assert.Zero(t, repo.upserts)
}

// 解析已登记的标识符返回记录
func TestResolveFound(t *testing.T) {
	repo := newFakeRepository()
	uploadedAt := time.Date(2026, 1, 2, 15, 4, 5, 0, time.Local)
	repo.records["report-1700000000-abc123.pdf"] = &domain.Flipbook{
		Identifier: "report-1700000000-abc123.pdf",
		StorageURL: "https://files.example.com/uploads/report-1700000000-abc123.pdf",
		UploadedAt: uploadedAt,
	}
	svc := newTestService(repo, &fakeStorage{})

	got, err := svc.Resolve(context.Background(), &dto.ResolveRequest{Identifier: "report-1700000000-abc123.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "report-1700000000-abc123.pdf", got.Identifier)
	assert.Equal(t, "https://files.example.com/uploads/report-1700000000-abc123.pdf", got.StorageURL)
}

// 未登记的标识符返回未找到，与查询失败区分开
func TestResolveNotFound(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStorage{})

	_, err := svc.Resolve(context.Background(), &dto.ResolveRequest{Identifier: "missing.pdf"})
	assertCode(t, err, code.ErrorLinkNotFound)
}

// 仓储查询失败映射为数据库错误
func TestResolveRepositoryError(t *testing.T) {
	repo := newFakeRepository()
	repo.getErr = errors.New("connection refused")
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.Resolve(context.Background(), &dto.ResolveRequest{Identifier: "any.pdf"})
	assertCode(t, err, code.ErrorDBQuery)
}

// 历史为空时 items 是空数组而不是 null
func TestHistoryEmptyItems(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStorage{})

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, history.Items)
	assert.Empty(t, history.Items)
}

// 历史列表透传仓储结果
func TestHistoryReturnsItems(t *testing.T) {
	repo := newFakeRepository()
	repo.records["a.pdf"] = &domain.Flipbook{Identifier: "a.pdf", StorageURL: "https://files.example.com/a.pdf", UploadedAt: time.Now()}
	svc := newTestService(repo, &fakeStorage{})

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "a.pdf", history.Items[0].Identifier)
}

// 仓储列表失败映射为数据库错误
func TestHistoryRepositoryError(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("connection refused")
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.History(context.Background(), 10)
	assertCode(t, err, code.ErrorDBQuery)
}

// 分享链接的查询参数名可配置，基础地址已有查询参数时合并
func TestShareableURLDerivation(t *testing.T) {
	svc := &flipbookService{config: &ServiceConfig{
		Share: ShareServiceConfig{BaseURL: "https://share.example.com/view?lang=zh", IdentifierName: "doc"},
	}}

	shareable, err := url.Parse(svc.shareableURL("report-1700000000-abc123.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "report-1700000000-abc123.pdf", shareable.Query().Get("doc"))
	assert.Equal(t, "zh", shareable.Query().Get("lang"))
	assert.Equal(t, "/view", shareable.Path)
}
