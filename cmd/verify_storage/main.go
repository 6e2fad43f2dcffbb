package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/app"
	pkgstorage "github.com/haierkeys/flipbook-share-service/pkg/storage"
)

// 存储后端自检工具：按配置创建存储客户端，写入探测文件、
// 打印公开访问地址并删除，验证配置的后端可用
func main() {
	path := "config/config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, abs, err := app.LoadConfig(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	fmt.Println("config:", abs)
	fmt.Println("storage type:", cfg.Storage.Type)

	client, err := pkgstorage.NewClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("create storage client: %v", err)
	}

	probeKey := fmt.Sprintf("storage-probe-%d.txt", time.Now().UnixNano())
	content := []byte("storage probe " + time.Now().Format(time.RFC3339))

	storedKey, err := client.SendContent(probeKey, content, time.Now())
	if err != nil {
		log.Fatalf("send probe object: %v", err)
	}
	fmt.Println("stored as:", storedKey)
	fmt.Println("public url:", client.PublicURL(storedKey))

	if err := client.Delete(storedKey); err != nil {
		log.Fatalf("delete probe object: %v", err)
	}
	fmt.Println("probe object deleted, storage backend OK")
}
