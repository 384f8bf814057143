package binding

import "reflect"

// Param 声明一个从单个请求参数取值的处理器参数或控制器字段。
type Param struct {
	// Name 是请求参数的键，为空则使用处理器参数自身的名称。
	Name string

	// Default 是参数缺失或解析器没有返回值时的默认值，注册时对照目标类型检查。
	Default DefaultValue

	// Resolver 为空或 NoResolver 时按目标类型选择解析器。
	Resolver Resolver

	// ResolverName 引用注册表中的命名解析器，优先于按类型选择。
	ResolverName string

	// Required 为真时，参数缺失且没有默认值视为解析错误。
	Required bool
}

// Bind 声明一个由带前缀的一组请求参数绑定而成的复合对象。
//
// 同一个 Bind 值可复用于多个参数和字段。
type Bind struct {
	// Binders 中各绑定器的目标类型须两两不同。为空时使用注册表中的绑定器，
	// 仍找不到则为结构体类型创建 StructBinder。
	Binders []Binder

	// Model 是参数名的前缀，为空则使用处理器参数自身的名称。
	Model string
}

// Arg 描述处理器的一个参数。
//
// Param 与 Bind 都为空时，等同于按参数名称查找的 Param 声明。
type Arg struct {
	Name  string
	Type  reflect.Type
	Param *Param
	Bind  *Bind
}

// ParamArg 返回带 Param 声明的参数描述，类型由处理器签名推断或通过 WithType 指定。
func ParamArg(name string, p Param) Arg {
	return Arg{Name: name, Param: &p}
}

// BindArg 返回带 Bind 声明的参数描述。
func BindArg(name string, b Bind) Arg {
	return Arg{Name: name, Bind: &b}
}

// WithType 返回指定了参数类型的副本。
func (a Arg) WithType(t reflect.Type) Arg {
	a.Type = t
	return a
}

// 参数在请求中的有效名称。
func (a *Arg) sourceName() string {
	switch {
	case a.Bind != nil && a.Bind.Model != "":
		return a.Bind.Model
	case a.Bind == nil && a.Param != nil && a.Param.Name != "":
		return a.Param.Name
	}
	return a.Name
}
