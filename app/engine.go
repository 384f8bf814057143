package app

import (
	"context"
	stdErrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/app/server/result"
	"github.com/favbox/mvc/common/config"
	"github.com/favbox/mvc/common/errors"
	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/common/utils"
)

// Engine 汇集配置、绑定注册表和已注册的处理器。
//
// 处理器与控制器应在启动期注册，之后可被并发请求使用。
type Engine struct {
	options  *config.Options
	registry *binding.Registry

	// HTMLRender 用于 RequestContext.HTML，为空则不可渲染超文本。
	HTMLRender result.HTMLRender

	mu       sync.RWMutex
	handlers map[string]*Handler
}

// New 创建给定配置的引擎，自定义解析器或绑定器注册失败时返回配置错误。
func New(opts ...config.Option) (*Engine, error) {
	options := config.NewOptions(opts)

	bindConfig := binding.NewBindConfig()
	bindConfig.DisableValidation = options.DisableValidation
	bindConfig.DisableStructJSON = options.DisableStructJSON
	if options.ValidateTag != "" {
		vdConfig := binding.NewValidateConfig()
		vdConfig.SetValidatorTag(options.ValidateTag)
		bindConfig.Validator = binding.NewValidator(vdConfig)
	}

	e := &Engine{
		options:  options,
		registry: binding.NewRegistry(bindConfig),
		handlers: make(map[string]*Handler),
	}
	if err := e.registerExtensions(); err != nil {
		return nil, configError(err, nil)
	}
	return e, nil
}

// MustNew 同 New，出错则恐慌。
func MustNew(opts ...config.Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) registerExtensions() error {
	var errs []error
	for _, entry := range e.options.Resolvers {
		res, ok := entry.Resolver.(binding.Resolver)
		if !ok {
			errs = append(errs, fmt.Errorf("%T 不是 binding.Resolver", entry.Resolver))
			continue
		}
		if entry.Name == "" && entry.Type == nil {
			errs = append(errs, fmt.Errorf("解析器 %T 须指定类型或名称", entry.Resolver))
			continue
		}
		if entry.Name != "" {
			if err := e.registry.RegisterNamedResolver(entry.Name, res); err != nil {
				errs = append(errs, err)
			}
		}
		if entry.Type == nil {
			continue
		}
		t, ok := entry.Type.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(entry.Type)
		}
		if err := e.registry.RegisterResolver(t, res); err != nil {
			errs = append(errs, err)
		}
	}
	for _, b := range e.options.Binders {
		binder, ok := b.(binding.Binder)
		if !ok {
			errs = append(errs, fmt.Errorf("%T 不是 binding.Binder", b))
			continue
		}
		if err := e.registry.RegisterBinder(binder); err != nil {
			errs = append(errs, err)
		}
	}
	return stdErrors.Join(errs...)
}

// 注册期错误统一记为 ErrorTypeConfig。
func configError(err error, meta any) error {
	return errors.New(err, errors.ErrorTypeConfig, meta)
}

// GetOptions 返回引擎的配置项。
func (e *Engine) GetOptions() *config.Options {
	return e.options
}

// Registry 返回引擎的绑定注册表。
func (e *Engine) Registry() *binding.Registry {
	return e.registry
}

// Handle 注册名为 name 的处理器函数 fn，args 按顺序声明 fn 的绑定参数。
// name 为空时取函数名。
//
// 签名错误、名称重复以及绑定声明的配置错误均在此返回。
func (e *Engine) Handle(name string, fn any, args ...binding.Arg) (*Handler, error) {
	if name == "" {
		name = utils.NameOfFunction(fn)
	}
	h, err := newHandler(e.registry, name, fn, args)
	if err != nil {
		return nil, configError(err, map[string]any{"handler": name})
	}
	h.bindStatus = e.options.BindErrorStatus

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.handlers[name]; ok {
		return nil, configError(fmt.Errorf("处理器 %s 重复注册", name), map[string]any{"handler": name})
	}
	e.handlers[name] = h
	hlog.SystemLogger().Debugf("注册处理器 %s，共 %d 个绑定参数", name, h.action.NumArgs())
	return h, nil
}

// MustHandle 同 Handle，出错则恐慌。
func (e *Engine) MustHandle(name string, fn any, args ...binding.Arg) *Handler {
	h, err := e.Handle(name, fn, args...)
	if err != nil {
		panic(err)
	}
	return h
}

// RegisterController 编译并缓存控制器的字段声明。
func (e *Engine) RegisterController(ctrl any) error {
	if err := e.registry.RegisterController(ctrl); err != nil {
		return configError(err, map[string]any{"controller": fmt.Sprintf("%T", ctrl)})
	}
	return nil
}

// Handler 返回已注册的处理器。
func (e *Engine) Handler(name string) (*Handler, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.handlers[name]
	return h, ok
}

// NewContext 创建带有引擎 HTML 渲染器的请求上下文。
func (e *Engine) NewContext() *RequestContext {
	rc := NewContext(0)
	rc.HTMLRender = e.HTMLRender
	return rc
}

// ServeHTTP 以名为 name 的处理器处理请求，处理器不存在时响应 404。
func (e *Engine) ServeHTTP(c context.Context, name string, rc *RequestContext) {
	h, ok := e.Handler(name)
	if !ok {
		_ = rc.Apply(c, result.NotFound)
		return
	}
	h.Serve(c, rc)
}

// Close 关闭 HTML 渲染器等资源。
func (e *Engine) Close() error {
	if e.HTMLRender == nil {
		return nil
	}
	return e.HTMLRender.Close()
}
