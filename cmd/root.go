package cmd

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// 由 main 包注入的嵌入资源
var (
	frontendFiles embed.FS // 前端静态资源
	configDefault string   // 内置默认配置内容
)

// rootCmd 根命令，不带子命令直接运行时打印帮助
var rootCmd = &cobra.Command{
	Use:   "flipbook-share-service",
	Short: "Flipbook Share Service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute 注入嵌入资源后执行根命令
func Execute(efs embed.FS, defaultConfig string) {
	frontendFiles = efs
	configDefault = defaultConfig
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
