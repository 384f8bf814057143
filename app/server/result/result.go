// Package result 定义处理器返回的结果及其对响应的应用。
//
// 结果可按请求新建，也可作为进程级单例被并发请求共享。共享单例不在字段中保存
// 随请求变化的数据，这类数据经由 ctx 中的载荷传递，并在 Apply 返回前清空。
package result

import (
	"context"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// Result 是处理请求的结果。
type Result interface {
	// StatusCode 返回结果的响应状态码。
	StatusCode() int

	// Apply 将结果写入响应。
	//
	// 调度层保证每个请求只调用一次。读取载荷的结果须在返回前清空载荷，
	// 包括出错和恐慌的路径。
	Apply(c context.Context, req *protocol.Request, resp *protocol.Response) error
}

var (
	_ Result = (*NotModified)(nil)
	_ Result = (*Message)(nil)
	_ Result = Status{}
	_ Result = Redirect{}
	_ Result = Data{}
	_ Result = Text{}
	_ Result = JSON{}
	_ Result = HTML{}
)

// 设置响应的内容类型。
func writeContentType(resp *protocol.Response, value string) {
	resp.Header.SetContentType(value)
}

// 未指定状态码时使用 200。
func statusOr(code int) int {
	if code == 0 {
		return consts.StatusOK
	}
	return code
}
