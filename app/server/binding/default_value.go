package binding

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
)

// DefaultKind 是默认值的种类。
type DefaultKind uint8

const (
	DefaultNone DefaultKind = iota
	DefaultBool
	DefaultChar
	DefaultByte
	DefaultInt
	DefaultFloat
	DefaultString
)

var defaultKindNames = [...]string{
	DefaultNone:   "none",
	DefaultBool:   "bool",
	DefaultChar:   "char",
	DefaultByte:   "byte",
	DefaultInt:    "int",
	DefaultFloat:  "float",
	DefaultString: "string",
}

func (k DefaultKind) String() string {
	if int(k) < len(defaultKindNames) {
		return defaultKindNames[k]
	}
	return "DefaultKind(" + strconv.Itoa(int(k)) + ")"
}

// DefaultValue 是参数缺失时使用的默认值，同一时刻只有一种取值生效。
//
// 零值表示没有默认值。注册时会对照目标类型检查兼容性，不兼容即为配置错误，
// 而不是在请求期被静默忽略。
type DefaultValue struct {
	kind DefaultKind
	b    bool
	r    rune
	i    int64
	f    float64
	s    string
}

// DefBool 返回布尔型默认值。
func DefBool(v bool) DefaultValue { return DefaultValue{kind: DefaultBool, b: v} }

// DefChar 返回字符型默认值，可用于 rune 和 string。
func DefChar(v rune) DefaultValue { return DefaultValue{kind: DefaultChar, r: v} }

// DefByte 返回字节型默认值，可用于任意整数类型。
func DefByte(v byte) DefaultValue { return DefaultValue{kind: DefaultByte, i: int64(v)} }

// DefInt 返回整型默认值，可用于整数与浮点类型，超出目标范围即不兼容。
func DefInt(v int64) DefaultValue { return DefaultValue{kind: DefaultInt, i: v} }

// DefFloat 返回浮点型默认值。
func DefFloat(v float64) DefaultValue { return DefaultValue{kind: DefaultFloat, f: v} }

// DefString 返回字符串默认值。
//
// 目标不是字符串时，文本在注册时由目标类型的解析器解析一次。
func DefString(v string) DefaultValue { return DefaultValue{kind: DefaultString, s: v} }

// Kind 返回默认值的种类。
func (d DefaultValue) Kind() DefaultKind {
	return d.kind
}

// IsNone 报告是否未声明默认值。
func (d DefaultValue) IsNone() bool {
	return d.kind == DefaultNone
}

func (d DefaultValue) String() string {
	switch d.kind {
	case DefaultBool:
		return strconv.FormatBool(d.b)
	case DefaultChar:
		return string(d.r)
	case DefaultByte, DefaultInt:
		return strconv.FormatInt(d.i, 10)
	case DefaultFloat:
		return strconv.FormatFloat(d.f, 'g', -1, 64)
	case DefaultString:
		return d.s
	}
	return ""
}

// Value 返回 t 类型的默认值。res 用于解析非字符串目标的文本默认值，可为空。
//
// 默认值与 t 不兼容时返回 ErrDefaultMismatch；没有默认值时返回无效的 reflect.Value。
func (d DefaultValue) Value(t reflect.Type, res Resolver) (reflect.Value, error) {
	if d.kind == DefaultNone {
		return reflect.Value{}, nil
	}
	elem, ptrDepth := decoder.Deref(t)
	v := reflect.New(elem).Elem()
	if !d.setTo(v, res) {
		return reflect.Value{}, d.mismatch(t)
	}
	if d.kind == DefaultString && elem.Kind() != reflect.String {
		parsed, ok, err := resolveTo(res, d.s, elem)
		if err != nil || !ok {
			return reflect.Value{}, fmt.Errorf("%w：无法将 %q 解析为 %v：%v", ErrDefaultMismatch, d.s, t, err)
		}
		v = parsed
	}
	return decoder.ReferenceValue(v, ptrDepth), nil
}

// 按种类兼容规则写入 v，返回是否兼容。
func (d DefaultValue) setTo(v reflect.Value, res Resolver) bool {
	k := v.Kind()
	switch d.kind {
	case DefaultBool:
		if k != reflect.Bool {
			return false
		}
		v.SetBool(d.b)
	case DefaultChar:
		switch k {
		case reflect.Int32:
			v.SetInt(int64(d.r))
		case reflect.String:
			v.SetString(string(d.r))
		default:
			return false
		}
	case DefaultByte, DefaultInt:
		switch {
		case isIntKind(k):
			if v.OverflowInt(d.i) {
				return false
			}
			v.SetInt(d.i)
		case isUintKind(k):
			if d.i < 0 || v.OverflowUint(uint64(d.i)) {
				return false
			}
			v.SetUint(uint64(d.i))
		case d.kind == DefaultInt && isFloatKind(k):
			v.SetFloat(float64(d.i))
		default:
			return false
		}
	case DefaultFloat:
		if !isFloatKind(k) || v.OverflowFloat(d.f) {
			return false
		}
		v.SetFloat(d.f)
	case DefaultString:
		if k == reflect.String {
			v.SetString(d.s)
			return true
		}
		return !IsNoResolver(res)
	default:
		return false
	}
	return true
}

func (d DefaultValue) mismatch(t reflect.Type) error {
	return fmt.Errorf("%w：%s 型默认值 %q 不能用于 %v", ErrDefaultMismatch, d.kind, d.String(), t)
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
