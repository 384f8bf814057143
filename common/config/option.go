package config

import "github.com/favbox/mvc/protocol/consts"

const (
	defaultValidateTag     = "vd"
	defaultBindErrorStatus = consts.StatusBadRequest
)

// Option 是用于配置 Options 唯一结构体。
type Option struct {
	F func(o *Options)
}

// ResolverEntry 描述一个待注册的解析器。
//
// Type 与 Name 至少有一个非空：Type 按精确类型注册，Name 按名称注册。
type ResolverEntry struct {
	Type     any // 目标类型的零值或 reflect.Type
	Name     string
	Resolver any // binding.Resolver
}

// Options 是配置项的结构体。
type Options struct {
	// ValidateTag 是结构体验证表达式使用的标签名称，默认 "vd"。
	ValidateTag string

	// 是否禁用结构体绑定后的验证，默认否。
	DisableValidation bool

	// 是否禁用结构体字段的 JSON 子对象解码，默认否。
	DisableStructJSON bool

	// BindErrorStatus 是参数解析失败时的响应状态码，默认 400。
	BindErrorStatus int

	// Resolvers 是启动时要注册的自定义解析器。
	Resolvers []ResolverEntry

	// Binders 是启动时要注册的自定义绑定器，元素类型为 binding.Binder。
	Binders []any
}

// Apply 将指定的一组配置方法 opts 应用到配置项上。
func (o *Options) Apply(opts []Option) {
	for _, opt := range opts {
		opt.F(o)
	}
}

// NewOptions 创建基于给定配置函数的配置项。
func NewOptions(opts []Option) *Options {
	options := &Options{
		ValidateTag:     defaultValidateTag,
		BindErrorStatus: defaultBindErrorStatus,
	}
	options.Apply(opts)
	return options
}
