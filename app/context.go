package app

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/app/server/result"
	"github.com/favbox/mvc/common/errors"
	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/route/param"
)

// RequestContext 表示一个请求上下文。
type RequestContext struct {
	Request  protocol.Request
	Response protocol.Response

	// 是处理请求过程中记录的错误列表。
	Errors errors.ErrorChain

	Params     param.Params      // 路由参数切片
	HTMLRender result.HTMLRender // HTML 渲染器

	mu   sync.RWMutex   // 上下文键值对的互斥保护锁
	Keys map[string]any // 上下文键值对

	applied bool
}

// NewContext 创建一个指定初始最大路由参数的无请求/响应信息的纯粹上下文。
func NewContext(maxParams uint16) *RequestContext {
	v := make(param.Params, 0, maxParams)
	return &RequestContext{Params: v}
}

// Reset 重置上下文以便复用。
func (ctx *RequestContext) Reset() {
	ctx.Request.Reset()
	ctx.Response.Reset()
	ctx.Errors = ctx.Errors[:0]
	ctx.Params = ctx.Params[:0]
	ctx.Keys = nil
	ctx.applied = false
}

// Error 附加一个错误到当前上下文的错误列表。
//
// 非 *errors.Error 类型的错误记为 ErrorTypePrivate。
//
// Error 会在 err 为空时触发恐慌。
func (ctx *RequestContext) Error(err error) *errors.Error {
	if err == nil {
		panic("err 不可为空")
	}

	parsedErr, ok := err.(*errors.Error)
	if !ok {
		parsedErr = &errors.Error{
			Err:  err,
			Type: errors.ErrorTypePrivate,
		}
	}

	ctx.Errors = append(ctx.Errors, parsedErr)
	return parsedErr
}

// Apply 将结果 r 应用到响应，每个上下文只能应用一次。
//
// 应用出错或恐慌时，错误以 ErrorTypeApply 类型记录并写入日志后返回。
// 无论结果如何，c 中的载荷都会在返回前清空。
func (ctx *RequestContext) Apply(c context.Context, r result.Result) (err error) {
	defer result.ClearPayload(c)

	if ctx.applied {
		return errors.ErrResultApplied
	}
	if r == nil {
		return errors.ErrNilResult
	}
	ctx.applied = true

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w：%v", errors.ErrApplyPanic, p)
		}
		if err != nil {
			ctx.Error(errors.New(err, errors.ErrorTypeApply, map[string]any{"status": r.StatusCode()}))
			hlog.SystemLogger().CtxErrorf(c, "应用结果 %T 出错：%v", r, err)
		}
	}()
	return r.Apply(c, &ctx.Request, &ctx.Response)
}

// Applied 报告是否已应用过结果。
func (ctx *RequestContext) Applied() bool {
	return ctx.applied
}

// HTML 返回由 HTMLRender 渲染的超文本结果。
func (ctx *RequestContext) HTML(code int, name string, obj any) result.HTML {
	return ctx.HTMLRender.Instance(code, name, obj)
}

// Values 返回合并后的请求参数，同名参数取单值时依次以查询参数、POST 表单、多部分表单、路由参数为先。
func (ctx *RequestContext) Values() url.Values {
	return binding.RequestValues(&ctx.Request, ctx.Params)
}

// Param 返回指定 key 的路由参数的值。
// 它是 ctx.Params.ByName(key) 的快捷键。
func (ctx *RequestContext) Param(key string) string {
	return ctx.Params.ByName(key)
}

// Query 返回指定 key 的查询值，不存在则返回 ""。
func (ctx *RequestContext) Query(key string) string {
	value, _ := ctx.GetQuery(key)
	return value
}

// GetQuery 返回指定 key 的查询值。
//
// 若存在则返回 (value, true)（哪怕值为空白字符串），否则返回 ("", false)
func (ctx *RequestContext) GetQuery(key string) (string, bool) {
	return ctx.Request.QueryArgs().PeekExists(key)
}

// PostForm 返回 POST 表单中给定键的值，若键不存在则返回 ""。
func (ctx *RequestContext) PostForm(key string) string {
	value, _ := ctx.Request.PostArgs().PeekExists(key)
	return value
}

// BindController 将请求参数绑定到控制器 ctrl 的字段，ctrl 须为结构体指针。
func (ctx *RequestContext) BindController(registry *binding.Registry, ctrl any) error {
	if registry == nil {
		registry = binding.DefaultRegistry()
	}
	return registry.BindControllerValues(ctx.Values(), ctrl)
}

// Set 设置给定的键值对。
func (ctx *RequestContext) Set(key string, value any) {
	ctx.mu.Lock()
	if ctx.Keys == nil {
		ctx.Keys = make(map[string]any)
	}

	ctx.Keys[key] = value
	ctx.mu.Unlock()
}

// Get 返回给定键的值，如：(value, true)。
// 若键不存在则返回 (nil, false)。
func (ctx *RequestContext) Get(key string) (value any, exists bool) {
	ctx.mu.RLock()
	value, exists = ctx.Keys[key]
	ctx.mu.RUnlock()
	return
}

// MustGet 返回给定键的值，若键不存则触发恐慌。
func (ctx *RequestContext) MustGet(key string) any {
	if value, exists := ctx.Get(key); exists {
		return value
	}
	panic("Key \"" + key + "\" 不存在")
}

// GetString 返回给定键关联值的字符串形式，当类型错误时返回 ""。
func (ctx *RequestContext) GetString(key string) (s string) {
	if val, ok := ctx.Get(key); ok && val != nil {
		s, _ = val.(string)
	}
	return
}

// GetInt 返回给定键关联值的整数形式，当类型错误时返回 0。
func (ctx *RequestContext) GetInt(key string) (i int) {
	if val, ok := ctx.Get(key); ok && val != nil {
		i, _ = val.(int)
	}
	return
}

// ForEachKey 遍历所有 Keys 键值对。
func (ctx *RequestContext) ForEachKey(fn func(k string, v any)) {
	ctx.mu.RLock()
	for key, val := range ctx.Keys {
		fn(key, val)
	}
	ctx.mu.RUnlock()
}
