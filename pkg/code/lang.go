package code

import "errors"

// lang 状态码的双语消息文本
type lang struct {
	en string
	zh string
}

// 语言标签，与请求 lang 参数取值一致
const (
	langEN = "en"
	langZH = "zh_cn"
)

// lng 全局响应语言，启动后请求中间件可按 lang 参数切换
var lng = langEN

// GetMessage 返回全局语言对应的文本，缺失时回退英文
func (l lang) GetMessage() string {
	if lng == langZH && l.zh != "" {
		return l.zh
	}
	return l.en
}

// SetGlobalDefaultLang 设置全局响应语言，不支持的取值回退英文并返回错误
func SetGlobalDefaultLang(language string) error {
	switch language {
	case langEN, langZH:
		lng = language
		return nil
	}
	lng = langEN
	return errors.New("unsupported language " + language + ", falling back to en")
}
