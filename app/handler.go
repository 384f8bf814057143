package app

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/app/server/result"
	"github.com/favbox/mvc/common/errors"
	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/common/utils"
	"github.com/favbox/mvc/protocol/consts"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	rcType      = reflect.TypeOf((*RequestContext)(nil))
	resultType  = reflect.TypeOf((*result.Result)(nil)).Elem()
)

// Handler 是注册时编译好的处理器，可被并发请求共享。
type Handler struct {
	name       string
	fn         reflect.Value
	withCtx    bool
	withRC     bool
	action     *binding.Action
	bindStatus int
}

// 检查处理器签名并推断各参数的类型。
//
// 签名依次为可选的 context.Context、可选的 *RequestContext 及与 args 一一对应的参数，
// 返回值须为 result.Result。
func newHandler(registry *binding.Registry, name string, fn any, args []binding.Arg) (*Handler, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("处理器 %s 不是函数：%T", name, fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("处理器 %s 不支持可变参数", name)
	}
	if ft.NumOut() != 1 || !ft.Out(0).Implements(resultType) {
		return nil, fmt.Errorf("处理器 %s 须返回唯一的 result.Result", name)
	}

	h := &Handler{name: name, fn: fv}
	i := 0
	if i < ft.NumIn() && ft.In(i) == contextType {
		h.withCtx = true
		i++
	}
	if i < ft.NumIn() && ft.In(i) == rcType {
		h.withRC = true
		i++
	}
	if n := ft.NumIn() - i; n != len(args) {
		return nil, fmt.Errorf("处理器 %s 有 %d 个绑定参数，声明了 %d 个", name, n, len(args))
	}

	typed := make([]binding.Arg, len(args))
	for j, arg := range args {
		t := ft.In(i + j)
		if arg.Type != nil && arg.Type != t {
			return nil, fmt.Errorf("处理器 %s 的参数 %s 声明为 %v，签名为 %v", name, arg.Name, arg.Type, t)
		}
		typed[j] = arg.WithType(t)
	}

	action, err := registry.NewAction(name, typed...)
	if err != nil {
		return nil, err
	}
	h.action = action
	return h, nil
}

// Name 返回处理器名称。
func (h *Handler) Name() string {
	return h.name
}

// Serve 处理一个请求。
//
// 参数解析失败时不调用处理器函数，而是以 JSON 列出全部出错的参数；
// 处理器返回 nil 时响应 204；处理器恐慌时响应 500。
// 无论哪条路径，c 中的载荷都会在返回前清空。
func (h *Handler) Serve(c context.Context, rc *RequestContext) {
	c = result.WithPayload(c)
	defer result.ClearPayload(c)

	r := h.call(c, rc)
	if err := rc.Apply(c, r); err != nil {
		rc.Response.Reset()
		rc.Response.SetStatusCode(consts.StatusInternalServerError)
		rc.Response.Header.SetContentType(consts.MIMETextPlainUTF8)
		rc.Response.SetBodyString(consts.StatusMessage(consts.StatusInternalServerError))
	}
}

func (h *Handler) call(c context.Context, rc *RequestContext) (r result.Result) {
	values, err := h.action.Resolve(&rc.Request, rc.Params)
	if err != nil {
		return h.bindFailure(c, rc, err)
	}

	defer func() {
		if p := recover(); p != nil {
			hlog.SystemLogger().CtxErrorf(c, "处理器 %s 发生恐慌：%v\n%s", h.name, p, debug.Stack())
			rc.Error(errors.Newf(errors.ErrorTypePrivate, nil, "处理器 %s 发生恐慌：%v", h.name, p))
			result.ClearPayload(c)
			r = result.ServerError
		}
	}()

	in := make([]reflect.Value, 0, len(values)+2)
	if h.withCtx {
		in = append(in, reflect.ValueOf(&c).Elem())
	}
	if h.withRC {
		in = append(in, reflect.ValueOf(rc))
	}
	in = append(in, values...)

	out := h.fn.Call(in)[0]
	if isNil(out) {
		return result.NoContent
	}
	return out.Interface().(result.Result)
}

// 记录每个出错的参数，并返回列出它们的 JSON 结果。
func (h *Handler) bindFailure(c context.Context, rc *RequestContext, err error) result.Result {
	bindErrs, ok := err.(binding.BindErrors)
	if !ok {
		bindErrs = binding.BindErrors{err}
	}
	chain := bindErrs.Chain()
	list := make([]any, len(chain))
	for i, e := range chain {
		rc.Error(e)
		list[i] = e.JSON()
	}
	hlog.SystemLogger().CtxDebugf(c, "处理器 %s 的参数绑定失败：%v", h.name, bindErrs)

	code := h.bindStatus
	if code == 0 {
		code = consts.StatusBadRequest
	}
	return result.JSON{Code: code, Data: utils.H{"errors": list}}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
