package utils

import (
	"reflect"
	"runtime"
	"strings"
)

// H 是 map[string]any 的快捷方式。
type H map[string]any

// NameOfFunction 获取函数名，去除包路径，如 app.(*Engine).Handle。
func NameOfFunction(f any) string {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	name := runtime.FuncForPC(v.Pointer()).Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
