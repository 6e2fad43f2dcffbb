package validator

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements gin binding.StructValidator with lazy
// initialization, so translators can be registered on the engine later.
// CustomValidator 实现 gin 的 binding.StructValidator，延迟初始化
// 便于之后在引擎上注册翻译器
type CustomValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var _ binding.StructValidator = &CustomValidator{}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

func (v *CustomValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

// RegisterCustom registers a custom validation tag on the engine
// RegisterCustom 在验证引擎上注册自定义校验标签
func (v *CustomValidator) RegisterCustom(tag string, fn validator.Func) error {
	v.lazyinit()
	return v.validate.RegisterValidation(tag, fn)
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
	})
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}
