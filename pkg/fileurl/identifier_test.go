package fileurl

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 净化规则：去扩展名，只保留字母数字和连字符，超长截断，空结果回退
func TestSanitizeBaseName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"普通文件名", "report.pdf", "report"},
		{"空格和括号被剔除", "My Report (2026).pdf", "MyReport2026"},
		{"连字符保留，下划线剔除", "year-end_summary.pdf", "year-endsummary"},
		{"路径部分被丢弃", "../../etc/passwd", "passwd"},
		{"非 ASCII 字符剔除后回退", "年度报告.pdf", "document"},
		{"空文件名回退", "", "document"},
		{"仅扩展名回退", ".pdf", "document"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SanitizeBaseName(c.in))
		})
	}
}

// 超长基础名被截断到上限
func TestSanitizeBaseNameTruncates(t *testing.T) {
	long := strings.Repeat("a", 100) + ".pdf"
	got := SanitizeBaseName(long)
	assert.Len(t, got, maxBaseLength)
}

// 标识符形如 <基础名>-<时间戳>-<随机令牌>.pdf
func TestNewIdentifierShape(t *testing.T) {
	identifier := NewIdentifier("report.pdf")

	pattern := regexp.MustCompile(`^report-\d+-[A-Za-z0-9]{6}\.pdf$`)
	assert.Regexp(t, pattern, identifier)
	assert.NotContains(t, identifier, "/")
}

// 同一文件名多次生成的标识符互不相同
func TestNewIdentifierUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		identifier := NewIdentifier("report.pdf")
		assert.False(t, seen[identifier], "duplicate identifier %s", identifier)
		seen[identifier] = true
	}
}

// 带路径的输入不会在标识符里留下路径分隔符
func TestNewIdentifierStripsPath(t *testing.T) {
	identifier := NewIdentifier("../../uploads/evil.pdf")
	assert.NotContains(t, identifier, "/")
	assert.True(t, strings.HasPrefix(identifier, "evil-"), identifier)
}
