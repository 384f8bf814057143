package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	werrors "github.com/favbox/mvc/common/errors"
)

// 注册期的配置错误。
var (
	ErrDuplicateBinder   = errors.New("重复的绑定器目标类型")
	ErrDuplicateResolver = errors.New("重复的解析器")
	ErrNoBinder          = errors.New("没有匹配的绑定器")
	ErrNoResolver        = errors.New("没有可用的解析器")
	ErrDefaultMismatch   = errors.New("默认值与目标类型不匹配")
	ErrNotPointer        = errors.New("接收器必须为非空指针")
)

// ErrMissingParam 表示必填参数在请求中缺失且没有默认值。
var ErrMissingParam = errors.New("缺少必填参数")

// ResolutionError 表示原始参数值无法转换为目标类型。
type ResolutionError struct {
	Name string       // 参数名称，复合对象的字段为完整的点号路径，如 u.age
	Raw  string       // 原始值
	Type reflect.Type // 目标类型
	Err  error
}

func (e *ResolutionError) Error() string {
	if errors.Is(e.Err, ErrMissingParam) {
		return fmt.Sprintf("参数 %s：%v", e.Name, e.Err)
	}
	return fmt.Sprintf("参数 %s 的值 %q 无法解析为 %v：%v", e.Name, e.Raw, e.Type, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ValidateError 表示复合对象绑定后未通过验证表达式。
type ValidateError struct {
	Name     string // 复合对象的模型名称
	FailPath string // 未通过验证的字段路径
	Msg      string
}

func (e *ValidateError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "无效参数：" + e.FailPath
	}
	if e.Name == "" {
		return msg
	}
	return e.Name + "：" + msg
}

func defaultValidateErrorFactory(failPath, msg string) error {
	return &ValidateError{
		FailPath: failPath,
		Msg:      msg,
	}
}

// BindErrors 是一次解析中按声明顺序收集的全部绑定错误。
type BindErrors []error

func (e BindErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e BindErrors) Unwrap() []error {
	return e
}

// Names 返回出错的参数名称。
func (e BindErrors) Names() []string {
	names := make([]string, 0, len(e))
	for _, err := range e {
		var re *ResolutionError
		var ve *ValidateError
		switch {
		case errors.As(err, &re):
			names = append(names, re.Name)
		case errors.As(err, &ve):
			names = append(names, ve.Name)
		}
	}
	return names
}

// Chain 将绑定错误转为 ErrorTypeBind 类型的错误链，元信息含参数名与原始值。
func (e BindErrors) Chain() werrors.ErrorChain {
	chain := make(werrors.ErrorChain, 0, len(e))
	for _, err := range e {
		var re *ResolutionError
		var ve *ValidateError
		switch {
		case errors.As(err, &re):
			chain = append(chain, werrors.New(err, werrors.ErrorTypeBind, map[string]any{
				"param": re.Name,
				"value": re.Raw,
			}))
		case errors.As(err, &ve):
			chain = append(chain, werrors.New(err, werrors.ErrorTypeBind, map[string]any{
				"param": ve.Name,
				"field": ve.FailPath,
			}))
		default:
			chain = append(chain, werrors.New(err, werrors.ErrorTypeBind, nil))
		}
	}
	return chain
}

// 将 err 展开追加到 errs，并为其中的解析错误的副本补齐参数名称。
//
// 复合对象内部的错误已带有相对名称，需加上 name 作为前缀。
func appendBindError(errs BindErrors, name string, err error) BindErrors {
	if err == nil {
		return errs
	}
	var nested BindErrors
	if errors.As(err, &nested) {
		for _, e := range nested {
			errs = appendBindError(errs, name, e)
		}
		return errs
	}
	var re *ResolutionError
	if errors.As(err, &re) {
		cp := *re
		switch {
		case cp.Name == "":
			cp.Name = name
		case name != "" && cp.Name != name && !strings.HasPrefix(cp.Name, name+"."):
			cp.Name = name + "." + cp.Name
		}
		return append(errs, &cp)
	}
	var ve *ValidateError
	if errors.As(err, &ve) {
		cp := *ve
		if cp.Name == "" {
			cp.Name = name
		}
		return append(errs, &cp)
	}
	return append(errs, &ResolutionError{Name: name, Err: err})
}
