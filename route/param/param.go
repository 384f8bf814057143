// Package param 定义由路由器匹配出的路径参数。
package param

import "net/url"

// Param 路径参数，如 /users/:id 中的 id。
type Param struct {
	Key   string
	Value string
}

// Params 路径参数切片，有序。
type Params []Param

// Get 返回与 name 匹配的第一个参数的值及是否存在。
func (ps Params) Get(name string) (string, bool) {
	for _, entry := range ps {
		if entry.Key == name {
			return entry.Value, true
		}
	}
	return "", false
}

// ByName 返回与 name 匹配的第一个参数的值。若无匹配，则返回空白字符串。
func (ps Params) ByName(name string) string {
	v, _ := ps.Get(name)
	return v
}

// AppendValues 将路径参数追加到 dst，同名的已有值排在前面。
func (ps Params) AppendValues(dst url.Values) {
	for _, entry := range ps {
		dst[entry.Key] = append(dst[entry.Key], entry.Value)
	}
}

// FromMap 由映射构造路径参数，便于测试与手工调用。
func FromMap(m map[string]string) Params {
	ps := make(Params, 0, len(m))
	for k, v := range m {
		ps = append(ps, Param{Key: k, Value: v})
	}
	return ps
}
