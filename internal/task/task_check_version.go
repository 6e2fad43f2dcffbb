package task

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	pkgapp "github.com/haierkeys/flipbook-share-service/pkg/app"

	"github.com/bytedance/sonic"
)

// shields.io release 徽章 JSON，message 字段即最新版本号
const releaseBadgeURL = "https://img.shields.io/github/v/release/haierkeys/flipbook-share-service.json"

type releaseBadge struct {
	Message string `json:"message"`
}

// CheckVersionTask 定期比较运行中版本与最新发布版本，结果缓存在 App 中
type CheckVersionTask struct {
	app    *app.App
	client *http.Client
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &CheckVersionTask{
			app:    appContainer,
			client: &http.Client{Timeout: 10 * time.Second},
		}, nil
	})
}

func (t *CheckVersionTask) Name() string {
	return "version_check"
}

func (t *CheckVersionTask) Run(ctx context.Context) error {
	latest, err := t.latestRelease(ctx)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	// /api/version 直接读取缓存的检查结果
	t.app.SetCheckVersionInfo(pkgapp.CheckVersionInfo{
		VersionNewName: latest,
		VersionIsNew:   app.IsNewVersion(t.app.Version().Version, latest),
	})
	return nil
}

func (t *CheckVersionTask) latestRelease(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseBadgeURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("version badge: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var badge releaseBadge
	if err := sonic.Unmarshal(body, &badge); err != nil {
		return "", err
	}
	return badge.Message, nil
}

func (t *CheckVersionTask) LoopInterval() time.Duration {
	return 6 * time.Hour
}

func (t *CheckVersionTask) IsStartupRun() bool {
	return true
}
