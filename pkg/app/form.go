package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError single field validation error // 单字段验证错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString joins all messages into one string for response details
// ErrorsToString 将所有错误消息拼接为单个字符串，用于响应 Details
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Maps() map[string]string {
	m := make(map[string]string)
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// MapsToString returns field keyed messages for response data
// MapsToString 返回以字段为键的错误消息，用于响应 Data
func (v ValidErrors) MapsToString() map[string]string {
	return v.Maps()
}

// BindAndValid binds request parameters and validates them, translating
// validator messages with the translator stored by the Lang middleware.
// BindAndValid 绑定请求参数并验证，使用 Lang 中间件存入的翻译器翻译验证消息
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "bind",
				Message: err.Error(),
			})
			return false, errs
		}

		trans, ok := c.Value("trans").(ut.Translator)
		if !ok {
			for _, verr := range verrs {
				errs = append(errs, &ValidError{
					Key:     verr.Field(),
					Message: verr.Error(),
				})
			}
			return false, errs
		}

		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}

	return true, nil
}
