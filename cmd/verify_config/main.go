package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"
)

// 配置自检工具：加载配置并打印生效值，配置有明显问题时以非零码退出
func main() {
	configPath := "config/config.yaml"
	absPath, _ := filepath.Abs(configPath)
	fmt.Printf("Loading config from: %s\n", absPath)

	cfg, realpath, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Resolved config path: %s\n", realpath)

	fmt.Println("Effective configuration:")
	fmt.Printf("Server HttpPort: %s (run mode %s)\n", cfg.Server.HttpPort, cfg.Server.RunMode)
	fmt.Printf("Storage Type: %s\n", cfg.Storage.Type)
	if cfg.Storage.Type == pkgstorage.LOCAL {
		fmt.Printf("Storage SavePath: %s\n", cfg.Storage.SavePath)
	}
	fmt.Printf("Share BaseURL: %s (identifier param %q)\n", cfg.Share.BaseURL, cfg.Share.IdentifierName)
	fmt.Printf("Upload max size: %d bytes\n", cfg.GetUploadMaxSize())
	fmt.Printf("Viewer margin factor: %v, min page %vx%v\n",
		cfg.Viewer.MarginFactor, cfg.Viewer.MinWidth, cfg.Viewer.MinHeight)

	if !pkgstorage.StorageTypeMap[cfg.Storage.Type] {
		log.Fatalf("Unknown storage type %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == pkgstorage.LOCAL && cfg.Storage.SavePath == "" {
		log.Fatal("localfs storage requires storage.save-path")
	}
	if cfg.Share.BaseURL == "" {
		log.Fatal("share.base-url must not be empty")
	}
	if cfg.Viewer.MarginFactor <= 0 || cfg.Viewer.MarginFactor > 1 {
		log.Fatalf("viewer.margin-factor must be in (0, 1], got %v", cfg.Viewer.MarginFactor)
	}
}
