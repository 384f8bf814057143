package binding

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
)

// Resolver 将单个原始请求参数转换为一个类型化的值。
//
// 空字符串不会传给内置解析器：声明层将其视为参数缺失并回退到默认值。
// 自定义解析器返回 (nil, nil) 同样表示“没有值，使用默认值”。
//
// 解析器须无状态，可被所有请求并发共享。
type Resolver interface {
	Resolve(raw string) (any, error)
}

// ResolverFunc 是函数形式的解析器。
type ResolverFunc func(raw string) (any, error)

// Resolve 实现 Resolver 接口。
func (f ResolverFunc) Resolve(raw string) (any, error) {
	return f(raw)
}

type noResolver struct{}

func (noResolver) Resolve(string) (any, error) {
	return nil, nil
}

// NoResolver 表示“未指定解析器”，由框架按参数声明的类型选择解析器。
var NoResolver Resolver = noResolver{}

// IsNoResolver 报告 r 是否为空或 NoResolver。
func IsNoResolver(r Resolver) bool {
	return r == nil || r == NoResolver
}

// 用 res 解析 raw 并转为 t 类型的值。
//
// 解析器返回 nil 时 ok 为假，调用方应回退到默认值。
func resolveTo(res Resolver, raw string, t reflect.Type) (v reflect.Value, ok bool, err error) {
	out, err := res.Resolve(raw)
	if err != nil {
		var re *ResolutionError
		if errors.As(err, &re) {
			// 解析器可能返回共享的错误值，只修改副本
			cp := *re
			if cp.Raw == "" {
				cp.Raw = raw
			}
			if cp.Type == nil {
				cp.Type = t
			}
			return reflect.Value{}, false, &cp
		}
		return reflect.Value{}, false, &ResolutionError{Raw: raw, Type: t, Err: err}
	}
	if out == nil {
		return reflect.Value{}, false, nil
	}
	v, err = convertTo(reflect.ValueOf(out), t)
	if err != nil {
		return reflect.Value{}, false, &ResolutionError{Raw: raw, Type: t, Err: err}
	}
	return v, true, nil
}

// 将 v 转为 t 类型，允许具名类型（如 type Age int）及任意层指针。
func convertTo(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type() == t {
		return v, nil
	}
	elem, ptrDepth := decoder.Deref(t)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	switch {
	case v.Type() == elem:
	case v.Type().ConvertibleTo(elem) && v.Kind() == elem.Kind():
		v = v.Convert(elem)
	default:
		return reflect.Value{}, fmt.Errorf("解析器返回的 %v 不能转为 %v", v.Type(), t)
	}
	if ptrDepth == 0 {
		return v, nil
	}
	return decoder.ReferenceValue(v, ptrDepth), nil
}
