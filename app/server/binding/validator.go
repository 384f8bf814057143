package binding

import (
	exprValidator "github.com/bytedance/go-tagexpr/v2/validator"
)

const defaultValidateTag = "vd"

// StructValidator 表示一个结构体验证器。
type StructValidator interface {
	ValidateStruct(any) error
	Engine() any
	ValidateTag() string
}

// ValidateErrFactory 是验证错误的工厂函数。
type ValidateErrFactory func(fieldSelector, msg string) error

// ValidateConfig 包含验证行为的可选项。
type ValidateConfig struct {
	ValidateTag string             // 验证标签，支持自定义
	ErrFactory  ValidateErrFactory // 自定义的错误处理函数
}

// NewValidateConfig 创建新的验证配置。
func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{}
}

// MustRegValidateFunc 注册验证函数表达式。
// 注意：
//
//	若 force=true，则覆盖已存在的同名函数。
//	一经调用，将持续生效。
func (c *ValidateConfig) MustRegValidateFunc(funcName string, fn func(args ...any) error, force ...bool) {
	exprValidator.MustRegFunc(funcName, fn, force...)
}

// SetValidatorErrorFactory 自定义验证器的错误工厂函数。
func (c *ValidateConfig) SetValidatorErrorFactory(errFactory ValidateErrFactory) {
	c.ErrFactory = errFactory
}

// SetValidatorTag 自定义验证器的标签。
func (c *ValidateConfig) SetValidatorTag(tag string) {
	c.ValidateTag = tag
}

var defaultValidate = NewValidator(NewValidateConfig())

// NewValidator 创建给定配置的验证器。
func NewValidator(config *ValidateConfig) StructValidator {
	validateTag := defaultValidateTag
	if config != nil && len(config.ValidateTag) != 0 {
		validateTag = config.ValidateTag
	}
	vd := exprValidator.New(validateTag).SetErrorFactory(defaultValidateErrorFactory)
	if config != nil && config.ErrFactory != nil {
		vd.SetErrorFactory(config.ErrFactory)
	}
	return &validator{
		validateTag: validateTag,
		validate:    vd,
	}
}

// DefaultValidator 返回默认验证器。
func DefaultValidator() StructValidator {
	return defaultValidate
}

var _ StructValidator = (*validator)(nil)

type validator struct {
	validateTag string
	validate    *exprValidator.Validator
}

// ValidateStruct 可接收任何类型，但只处理结构体或结构体指针。
func (v *validator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	return v.validate.Validate(obj)
}

// Engine 返回底层验证器。
func (v *validator) Engine() any {
	return v.validate
}

// ValidateTag 返回验证标签。
func (v *validator) ValidateTag() string {
	return v.validateTag
}
