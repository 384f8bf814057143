// Package decoder 提供结构体绑定所需的标签解析与反射辅助函数。
package decoder

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	paramTag    = "param"    // 字段的子键名
	defaultTag  = "default"  // 默认值标签
	resolverTag = "resolver" // 命名解析器标签
	bindTag     = "bind"     // 复合对象的模型名称
)

const (
	requiredTagOpt = "required" // 必填标签操作符
)

// TagInfo 是从字段标签中解析出的绑定信息。
type TagInfo struct {
	Key          string // 子键名，不含前缀
	Skip         bool
	Required     bool
	Default      string
	HasDefault   bool
	Resolver     string
	Model        string // bind 标签的值
	HasBind      bool
	HasParam     bool
	NeedValidate bool
}

// 返回将 str 按指定 sep 分割后的头部和尾部。
func head(str, sep string) (head, tail string) {
	idx := strings.Index(str, sep)
	if idx < 0 {
		return str, ""
	}
	return str[:idx], str[idx+len(sep):]
}

// LookupFieldTag 解析字段的 param、default、resolver、bind 及验证标签。
//
// 未声明 param 标签时，子键名为首字母小写的字段名，如 Name 变为 name。
func LookupFieldTag(field reflect.StructField, validateTag string) TagInfo {
	info := TagInfo{Key: LowerFirst(field.Name)}
	if validateTag != "" {
		_, info.NeedValidate = field.Tag.Lookup(validateTag)
	}
	info.Default, info.HasDefault = field.Tag.Lookup(defaultTag)
	info.Resolver = field.Tag.Get(resolverTag)

	if content, ok := field.Tag.Lookup(paramTag); ok {
		info.HasParam = true
		value, opts := head(content, ",")
		switch value {
		case "-":
			info.Skip = true
		case "":
		default:
			info.Key = value
		}
		var opt string
		for len(opts) > 0 {
			opt, opts = head(opts, ",")
			if opt == requiredTagOpt {
				info.Required = true
			}
		}
	}

	if model, ok := field.Tag.Lookup(bindTag); ok {
		info.HasBind = true
		info.Model = model
		if model == "" {
			info.Model = info.Key
		}
	}
	return info
}

// LowerFirst 将 s 的首字母转为小写。
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
