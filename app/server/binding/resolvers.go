package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
	"github.com/favbox/mvc/common/hlog"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// 内置解析器的名称。
const (
	CharResolverName = "char" // 取首个字符，结果为 rune
	UnixResolverName = "unix" // Unix 秒数，结果为 time.Time
)

func parseBool(raw string) (any, error) {
	return strconv.ParseBool(raw)
}

func parseString(raw string) (any, error) {
	return raw, nil
}

func intResolver(bitSize int, conv func(int64) any) ResolverFunc {
	return func(raw string) (any, error) {
		n, err := strconv.ParseInt(raw, 10, bitSize)
		if err != nil {
			return nil, err
		}
		return conv(n), nil
	}
}

func uintResolver(bitSize int, conv func(uint64) any) ResolverFunc {
	return func(raw string) (any, error) {
		n, err := strconv.ParseUint(raw, 10, bitSize)
		if err != nil {
			return nil, err
		}
		return conv(n), nil
	}
}

func floatResolver(bitSize int) ResolverFunc {
	return func(raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, bitSize)
		if err != nil {
			return nil, err
		}
		if bitSize == 32 {
			return float32(f), nil
		}
		return f, nil
	}
}

func parseTime(raw string) (any, error) {
	return time.Parse(time.RFC3339, raw)
}

func parseDuration(raw string) (any, error) {
	return time.ParseDuration(raw)
}

func parseChar(raw string) (any, error) {
	r, _ := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError {
		return nil, fmt.Errorf("无效的字符")
	}
	return r, nil
}

func parseUnix(raw string) (any, error) {
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return time.Unix(sec, 0), nil
}

func builtinKindResolvers() map[reflect.Kind]Resolver {
	return map[reflect.Kind]Resolver{
		reflect.Bool:    ResolverFunc(parseBool),
		reflect.String:  ResolverFunc(parseString),
		reflect.Int:     intResolver(strconv.IntSize, func(n int64) any { return int(n) }),
		reflect.Int8:    intResolver(8, func(n int64) any { return int8(n) }),
		reflect.Int16:   intResolver(16, func(n int64) any { return int16(n) }),
		reflect.Int32:   intResolver(32, func(n int64) any { return int32(n) }),
		reflect.Int64:   intResolver(64, func(n int64) any { return n }),
		reflect.Uint:    uintResolver(strconv.IntSize, func(n uint64) any { return uint(n) }),
		reflect.Uint8:   uintResolver(8, func(n uint64) any { return uint8(n) }),
		reflect.Uint16:  uintResolver(16, func(n uint64) any { return uint16(n) }),
		reflect.Uint32:  uintResolver(32, func(n uint64) any { return uint32(n) }),
		reflect.Uint64:  uintResolver(64, func(n uint64) any { return n }),
		reflect.Float32: floatResolver(32),
		reflect.Float64: floatResolver(64),
	}
}

// ResolverRegistry 按精确类型、类型种类和名称保存解析器。
//
// 查找顺序：精确类型优先，其次是类型种类。具名类型（如 type Age int）沿用其种类的解析器。
// 注册在启动期完成；查找可在请求期并发进行。
type ResolverRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]Resolver
	byKind map[reflect.Kind]Resolver
	byName map[string]Resolver
}

// NewResolverRegistry 创建已注册全部内置解析器的注册表。
func NewResolverRegistry() *ResolverRegistry {
	return &ResolverRegistry{
		byType: map[reflect.Type]Resolver{
			timeType:     ResolverFunc(parseTime),
			durationType: ResolverFunc(parseDuration),
		},
		byKind: builtinKindResolvers(),
		byName: map[string]Resolver{
			CharResolverName: ResolverFunc(parseChar),
			UnixResolverName: ResolverFunc(parseUnix),
		},
	}
}

// RegisterType 为精确类型 t 注册解析器，t 的指针会被去除。
//
// 同一类型重复注册返回 ErrDuplicateResolver。
func (r *ResolverRegistry) RegisterType(t reflect.Type, res Resolver) error {
	if t == nil || IsNoResolver(res) {
		return fmt.Errorf("%w：类型与解析器均不能为空", ErrNoResolver)
	}
	t, _ = decoder.Deref(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byType[t]; ok {
		return fmt.Errorf("%w：类型 %v", ErrDuplicateResolver, t)
	}
	r.byType[t] = res
	hlog.SystemLogger().Debugf("注册类型解析器：%v", t)
	return nil
}

// RegisterName 注册命名解析器，供 Param.ResolverName 与 resolver 标签引用。
//
// 同一名称重复注册返回 ErrDuplicateResolver。
func (r *ResolverRegistry) RegisterName(name string, res Resolver) error {
	if name == "" || IsNoResolver(res) {
		return fmt.Errorf("%w：名称与解析器均不能为空", ErrNoResolver)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w：名称 %s", ErrDuplicateResolver, name)
	}
	r.byName[name] = res
	hlog.SystemLogger().Debugf("注册命名解析器：%s", name)
	return nil
}

// Named 返回指定名称的解析器。
func (r *ResolverRegistry) Named(name string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byName[name]
	return res, ok
}

// Lookup 返回可解析 t 类型的解析器，t 的指针会被去除。
func (r *ResolverRegistry) Lookup(t reflect.Type) (Resolver, bool) {
	t, _ = decoder.Deref(t)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if res, ok := r.byType[t]; ok {
		return res, true
	}
	// 结构体等复合种类只接受精确类型
	res, ok := r.byKind[t.Kind()]
	return res, ok
}
