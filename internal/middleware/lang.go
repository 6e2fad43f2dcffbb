package middleware

import (
	"strings"

	"github.com/haierkeys/flipbook-share-service/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 按请求的 lang 查询参数或请求头选择翻译器，未命中时退回英文
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("lang")
		}
		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))

		trans, found := uni.GetTranslator(lang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		// 错误码的默认翻译语言跟随请求
		code.SetGlobalDefaultLang(lang)

		c.Next()
	}
}
