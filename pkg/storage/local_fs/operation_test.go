package local_fs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS_SendFile(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	require.NoError(t, err)

	content := "%PDF-1.4 flipbook payload"
	modTime := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	savedKey, err := client.SendFile("Guide-a1b2c3d4.pdf", strings.NewReader(content), "application/pdf", modTime)
	require.NoError(t, err)

	// 返回键即落盘路径，可直接 Stat / Delete
	saved, err := os.ReadFile(savedKey)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))

	info, err := os.Stat(savedKey)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime), "expected mod time %v, got %v", modTime, info.ModTime())
}

func TestLocalFS_SendFileCustomPath(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir, CustomPath: "books"})
	require.NoError(t, err)

	savedKey, err := client.SendFile("Manual-ffee0011.pdf", strings.NewReader("pdf"), "application/pdf", time.Time{})
	require.NoError(t, err)

	// CustomPath 生成子目录，文件名仍等于对象键
	assert.Contains(t, savedKey, "books/")
	assert.Equal(t, "Manual-ffee0011.pdf", filepath.Base(savedKey))

	_, err = os.Stat(savedKey)
	require.NoError(t, err)
}

func TestLocalFS_SendContent(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	require.NoError(t, err)

	content := []byte("%PDF-1.4 inline bytes")

	savedKey, err := client.SendContent("nested/Report-9c8d7e6f.pdf", content, time.Time{})
	require.NoError(t, err)

	saved, err := os.ReadFile(savedKey)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, saved))
}

func TestLocalFS_PublicURL(t *testing.T) {
	withPrefix, err := NewClient(&Config{
		SavePath:        "storage/uploads",
		AccessURLPrefix: "https://cdn.example.com/files/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/storage/uploads/Guide-a1b2c3d4.pdf",
		withPrefix.PublicURL("storage/uploads/Guide-a1b2c3d4.pdf"))

	// 未配置前缀时返回相对路径，由应用静态路由兜底
	bare, err := NewClient(&Config{SavePath: "storage/uploads"})
	require.NoError(t, err)
	assert.Equal(t, "/storage/uploads/Guide-a1b2c3d4.pdf",
		bare.PublicURL("storage/uploads/Guide-a1b2c3d4.pdf"))
}

func TestLocalFS_Delete(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{SavePath: tempDir})
	require.NoError(t, err)

	savedKey, err := client.SendFile("Drop-00112233.pdf", strings.NewReader("pdf"), "application/pdf", time.Time{})
	require.NoError(t, err)

	require.NoError(t, client.Delete(savedKey))
	_, err = os.Stat(savedKey)
	assert.True(t, os.IsNotExist(err))

	// 重复删除视为已完成
	assert.NoError(t, client.Delete(savedKey))
}
