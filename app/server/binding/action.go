package binding

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/route/param"
)

// 一个参数或字段编译后的取值计划。
type argPlan struct {
	name string
	typ  reflect.Type

	// Param 声明
	resolver Resolver
	slice    bool
	def      reflect.Value
	required bool

	// Bind 声明
	binder Binder
}

// 编译参数声明，所有配置错误在此返回。
func (r *Registry) compile(a Arg) (*argPlan, error) {
	if a.Type == nil {
		return nil, fmt.Errorf("参数 %s 缺少类型", a.Name)
	}
	p := &argPlan{name: a.sourceName(), typ: a.Type}
	if p.name == "" {
		return nil, fmt.Errorf("参数缺少名称：%v", a.Type)
	}

	if a.Bind != nil {
		b, err := r.binderFor(a.Type, a.Bind)
		if err != nil {
			return nil, err
		}
		p.binder = b
		return p, nil
	}

	decl := a.Param
	if decl == nil {
		decl = &Param{}
	}
	p.required = decl.Required

	elem, ptrDepth := decoder.Deref(a.Type)
	res, err := r.paramResolver(decl, elem)
	if err != nil {
		return nil, err
	}
	if res == nil && elem.Kind() == reflect.Slice && ptrDepth == 0 {
		if res, _ = r.resolvers.Lookup(elem.Elem()); res != nil {
			p.slice = true
		}
	}
	if res == nil {
		return nil, fmt.Errorf("%w：类型 %v", ErrNoResolver, a.Type)
	}
	p.resolver = res

	if p.slice {
		if !decl.Default.IsNone() {
			v, err := decl.Default.Value(elem.Elem(), res)
			if err != nil {
				return nil, err
			}
			p.def = reflect.Append(reflect.MakeSlice(elem, 0, 1), v)
		}
		return p, nil
	}
	if p.def, err = decl.Default.Value(a.Type, res); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Registry) paramResolver(decl *Param, t reflect.Type) (Resolver, error) {
	switch {
	case !IsNoResolver(decl.Resolver):
		return decl.Resolver, nil
	case decl.ResolverName != "":
		res, ok := r.resolvers.Named(decl.ResolverName)
		if !ok {
			return nil, fmt.Errorf("%w：名称 %s", ErrNoResolver, decl.ResolverName)
		}
		return res, nil
	}
	res, _ := r.resolvers.Lookup(t)
	return res, nil
}

// 从合并后的请求参数中取值。
func (p *argPlan) resolve(values url.Values) (reflect.Value, error) {
	if p.binder != nil {
		out, err := p.binder.Bind(p.name, values)
		if err != nil {
			return reflect.Value{}, err
		}
		if out == nil {
			return reflect.New(p.typ).Elem(), nil
		}
		return convertTo(reflect.ValueOf(out), p.typ)
	}

	raws := values[p.name]
	if p.slice {
		if len(raws) == 0 {
			return p.fallback()
		}
		v, err := resolveSlice(p.resolver, raws, p.typ)
		if err != nil {
			return reflect.Value{}, err
		}
		return v, nil
	}

	raw := first(raws)
	if raw == "" {
		return p.fallback()
	}
	v, ok, err := resolveTo(p.resolver, raw, p.typ)
	if err != nil {
		return reflect.Value{}, err
	}
	if !ok {
		return p.fallback()
	}
	return v, nil
}

// 参数缺失时依次使用默认值、必填检查和零值。
func (p *argPlan) fallback() (reflect.Value, error) {
	switch {
	case p.def.IsValid():
		return freshCopy(p.def), nil
	case p.required:
		return reflect.Value{}, &ResolutionError{Name: p.name, Type: p.typ, Err: ErrMissingParam}
	}
	return reflect.Zero(p.typ), nil
}

// Action 是编译后的处理器参数列表。
type Action struct {
	name string
	args []*argPlan
}

// NewAction 编译处理器的参数声明。
//
// 重复的绑定器、找不到解析器或绑定器、不兼容的默认值等配置错误全部在此返回。
func (r *Registry) NewAction(name string, args ...Arg) (*Action, error) {
	action := &Action{name: name, args: make([]*argPlan, 0, len(args))}
	var errs []error
	for i := range args {
		p, err := r.compile(args[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s 的参数 %s：%w", name, args[i].Name, err))
			continue
		}
		action.args = append(action.args, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	hlog.SystemLogger().Debugf("编译处理器 %s 的 %d 个参数", name, len(args))
	return action, nil
}

// MustNewAction 编译处理器的参数声明，出错则恐慌。
func (r *Registry) MustNewAction(name string, args ...Arg) *Action {
	action, err := r.NewAction(name, args...)
	if err != nil {
		panic(err)
	}
	return action
}

// Name 返回处理器名称。
func (a *Action) Name() string {
	return a.name
}

// NumArgs 返回参数个数。
func (a *Action) NumArgs() int {
	return len(a.args)
}

// Resolve 从请求及路径参数中按声明顺序解析全部参数。
//
// 任一参数失败时返回 BindErrors，其中包含所有失败的参数。
func (a *Action) Resolve(req *protocol.Request, pathParams param.Params) ([]reflect.Value, error) {
	return a.ResolveValues(RequestValues(req, pathParams))
}

// ResolveValues 从已合并的请求参数中按声明顺序解析全部参数。
func (a *Action) ResolveValues(values url.Values) ([]reflect.Value, error) {
	out := make([]reflect.Value, len(a.args))
	var errs BindErrors
	for i, p := range a.args {
		v, err := p.resolve(values)
		if err != nil {
			errs = appendBindError(errs, p.name, err)
			continue
		}
		out[i] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}
