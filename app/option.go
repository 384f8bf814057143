package app

import (
	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/common/config"
)

// WithValidateTag 设置结构体验证表达式使用的标签名称。默认值："vd"。
func WithValidateTag(tag string) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.ValidateTag = tag
	}}
}

// WithDisableValidation 禁用复合对象绑定后的验证。默认值：否。
func WithDisableValidation(disable bool) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.DisableValidation = disable
	}}
}

// WithDisableStructJSON 禁用结构体字段的 JSON 子对象解码。默认值：否。
func WithDisableStructJSON(disable bool) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.DisableStructJSON = disable
	}}
}

// WithBindErrorStatus 设置参数绑定失败时的响应状态码。默认值：400。
func WithBindErrorStatus(code int) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.BindErrorStatus = code
	}}
}

// WithResolver 为精确类型注册解析器，typ 可为该类型的零值或 reflect.Type。
func WithResolver(typ any, res binding.Resolver) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.Resolvers = append(o.Resolvers, config.ResolverEntry{Type: typ, Resolver: res})
	}}
}

// WithNamedResolver 注册可由 resolver 标签或 Param.ResolverName 引用的命名解析器。
func WithNamedResolver(name string, res binding.Resolver) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.Resolvers = append(o.Resolvers, config.ResolverEntry{Name: name, Resolver: res})
	}}
}

// WithBinder 注册绑定器，目标类型重复时 New 返回错误。
func WithBinder(b binding.Binder) config.Option {
	return config.Option{F: func(o *config.Options) {
		o.Binders = append(o.Binders, b)
	}}
}
