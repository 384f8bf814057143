package binding

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/favbox/mvc/common/hlog"
)

// Binder 将一组带相同前缀的请求参数转换为一个复合对象。
//
// Bind 读取键等于 name 或以 name+"." 开头的全部参数，其余参数一律忽略。
// 请求中没有任何相关参数时，应返回零值初始化的对象而非 nil。
//
// TargetType 在注册时固定，是同一声明内多个绑定器的唯一性键。
type Binder interface {
	TargetType() reflect.Type
	Bind(name string, params url.Values) (any, error)
}

type binderFunc struct {
	typ reflect.Type
	fn  func(name string, params url.Values) (any, error)
}

func (b *binderFunc) TargetType() reflect.Type {
	return b.typ
}

func (b *binderFunc) Bind(name string, params url.Values) (any, error) {
	return b.fn(name, params)
}

// NewBinderFunc 以函数创建目标类型为 t 的绑定器。
func NewBinderFunc(t reflect.Type, fn func(name string, params url.Values) (any, error)) Binder {
	return &binderFunc{typ: t, fn: fn}
}

// SubParams 返回 params 中以 name+"." 开头的参数，键去掉了该前缀。
//
// 供自定义绑定器按前缀拆分参数。
func SubParams(name string, params url.Values) url.Values {
	prefix := name + "."
	sub := make(url.Values)
	for k, vs := range params {
		if strings.HasPrefix(k, prefix) {
			sub[k[len(prefix):]] = vs
		}
	}
	return sub
}

// 报告 params 中是否存在 name 或以 name+"." 开头的键。
func hasPrefixed(name string, params url.Values) bool {
	if _, ok := params[name]; ok {
		return true
	}
	prefix := name + "."
	for k := range params {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// BinderRegistry 保存按目标类型索引的绑定器，每种类型至多一个。
type BinderRegistry struct {
	mu      sync.RWMutex
	binders map[reflect.Type]Binder
}

// NewBinderRegistry 创建空的绑定器注册表。
func NewBinderRegistry() *BinderRegistry {
	return &BinderRegistry{binders: make(map[reflect.Type]Binder)}
}

// Register 注册绑定器，目标类型重复时立即返回 ErrDuplicateBinder。
func (r *BinderRegistry) Register(b Binder) error {
	if b == nil || b.TargetType() == nil {
		return fmt.Errorf("%w：绑定器或其目标类型为空", ErrNoBinder)
	}
	t := b.TargetType()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.binders[t]; ok {
		return fmt.Errorf("%w：%v", ErrDuplicateBinder, t)
	}
	r.binders[t] = b
	hlog.SystemLogger().Debugf("注册绑定器：%v", t)
	return nil
}

// MustRegister 注册绑定器，出错则恐慌。
func (r *BinderRegistry) MustRegister(b Binder) {
	if err := r.Register(b); err != nil {
		panic(err)
	}
}

// Lookup 返回目标类型为 t 的绑定器。
func (r *BinderRegistry) Lookup(t reflect.Type) (Binder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.binders[t]
	return b, ok
}

// Len 返回已注册的绑定器数量。
func (r *BinderRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.binders)
}

// 检查一组绑定器的目标类型两两不同。
func checkDistinctBinders(binders []Binder) error {
	seen := make(map[reflect.Type]struct{}, len(binders))
	for _, b := range binders {
		if b == nil || b.TargetType() == nil {
			return fmt.Errorf("%w：绑定器或其目标类型为空", ErrNoBinder)
		}
		if _, ok := seen[b.TargetType()]; ok {
			return fmt.Errorf("%w：%v", ErrDuplicateBinder, b.TargetType())
		}
		seen[b.TargetType()] = struct{}{}
	}
	return nil
}
