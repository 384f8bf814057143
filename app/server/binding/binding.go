// Package binding 将请求参数按声明绑定到处理器参数与控制器字段。
//
// 单个参数由 Resolver 转换为类型化的值，带前缀的一组参数由 Binder 组装为复合对象。
// 声明在注册时编译一次，配置错误在注册时暴露；请求期的解析错误会按声明顺序全部收集后一并返回。
package binding

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
)

// Registry 汇集解析器、绑定器及编译后的声明缓存。
//
// 注册应在启动期完成，编译出的 Action 和控制器计划可被并发请求共享。
type Registry struct {
	config      *BindConfig
	resolvers   *ResolverRegistry
	binders     *BinderRegistry
	structs     sync.Map // reflect.Type -> *StructBinder
	controllers sync.Map // uintptr -> *controllerPlan
}

// NewRegistry 创建给定配置的注册表，config 为空则使用默认配置。
func NewRegistry(config *BindConfig) *Registry {
	if config == nil {
		config = NewBindConfig()
	}
	if config.Validator == nil {
		config.Validator = DefaultValidator()
	}
	return &Registry{
		config:    config,
		resolvers: NewResolverRegistry(),
		binders:   NewBinderRegistry(),
	}
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry 返回默认注册表。
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Config 返回绑定配置。
func (r *Registry) Config() *BindConfig {
	return r.config
}

// Resolvers 返回解析器注册表。
func (r *Registry) Resolvers() *ResolverRegistry {
	return r.resolvers
}

// Binders 返回绑定器注册表。
func (r *Registry) Binders() *BinderRegistry {
	return r.binders
}

// RegisterBinder 注册绑定器，目标类型重复时返回 ErrDuplicateBinder。
func (r *Registry) RegisterBinder(b Binder) error {
	return r.binders.Register(b)
}

// RegisterResolver 为精确类型注册解析器。
func (r *Registry) RegisterResolver(t reflect.Type, res Resolver) error {
	return r.resolvers.RegisterType(t, res)
}

// RegisterNamedResolver 注册命名解析器。
func (r *Registry) RegisterNamedResolver(name string, res Resolver) error {
	return r.resolvers.RegisterName(name, res)
}

// 为复合类型 t 选择绑定器。
//
// 声明了绑定器时只在其中挑选；否则依次查找注册表和结构体绑定器缓存。
func (r *Registry) binderFor(t reflect.Type, decl *Bind) (Binder, error) {
	elem, _ := decoder.Deref(t)
	if len(decl.Binders) > 0 {
		if err := checkDistinctBinders(decl.Binders); err != nil {
			return nil, err
		}
		for _, b := range decl.Binders {
			if b.TargetType() == t || b.TargetType() == elem {
				return b, nil
			}
		}
		return nil, fmt.Errorf("%w：声明的绑定器均不产出 %v", ErrNoBinder, t)
	}
	if b, ok := r.binders.Lookup(t); ok {
		return b, nil
	}
	if b, ok := r.binders.Lookup(elem); ok {
		return b, nil
	}
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w：%v", ErrNoBinder, t)
	}
	return r.structBinder(elem)
}

// 返回缓存的结构体绑定器，没有则创建。
func (r *Registry) structBinder(t reflect.Type) (*StructBinder, error) {
	if b, ok := r.structs.Load(t); ok {
		return b.(*StructBinder), nil
	}
	b, err := NewStructBinder(t, r.resolvers, r.config)
	if err != nil {
		return nil, err
	}
	actual, _ := r.structs.LoadOrStore(t, b)
	return actual.(*StructBinder), nil
}
