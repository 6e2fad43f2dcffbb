package app

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

// 缺失、非法和越界的 limit 都收敛到配置范围内
func TestGetLimit(t *testing.T) {
	cases := []struct {
		name   string
		target string
		want   int
	}{
		{"缺失时取默认值", "/api/history", 50},
		{"范围内取原值", "/api/history?limit=10", 10},
		{"超过上限被截断", "/api/history?limit=500", 50},
		{"零回退到默认值", "/api/history?limit=0", 50},
		{"负值回退到默认值", "/api/history?limit=-3", 50},
		{"非数字回退到默认值", "/api/history?limit=abc", 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, GetLimit(newLimitContext(t, c.target)))
		})
	}
}

// 注入配置生效
func TestGetLimitWithConfig(t *testing.T) {
	cfg := LimitConfig{DefaultLimit: 20, MaxLimit: 30}

	assert.Equal(t, 20, GetLimitWithConfig(newLimitContext(t, "/api/history"), cfg))
	assert.Equal(t, 30, GetLimitWithConfig(newLimitContext(t, "/api/history?limit=100"), cfg))
	assert.Equal(t, 25, GetLimitWithConfig(newLimitContext(t, "/api/history?limit=25"), cfg))
}

// 表单参数同样生效
func TestGetLimitFromForm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/history", strings.NewReader("limit=7"))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, 7, GetLimit(c))
}
