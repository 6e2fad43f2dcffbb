package main

import (
	"embed"

	"github.com/haierkeys/flipbook-share-service/cmd"
)

//go:embed frontend
var efs embed.FS

//go:embed config/config.yaml
var c string

// @title Flipbook Share Service API
// @version 1.0
// @description PDF 翻页书分享服务，上传 PDF 生成可分享的翻页阅读链接
// @BasePath /
func main() {
	cmd.Execute(efs, c)
}
