package ut

import (
	"context"
	"io"

	"github.com/favbox/mvc/app"
)

// Header 表明一个 http 标头的键值对。
type Header struct {
	Key   string
	Value string
}

// Body 用于设置 Request.Body，Len 为 -1 时读取全部内容。
type Body struct {
	Body io.Reader
	Len  int
}

// PerformRequest 发送一个构造好的请求至给定处理器（无需网络传输）。
//
// 返回的 ResponseRecorder 已被刷新写入。
//
// 查看 ./request_test.go 了解更多示例。
func PerformRequest(h *app.Handler, method, url string, body *Body, headers ...Header) *ResponseRecorder {
	ctx := CreateUtRequestContext(method, url, body, headers...)
	h.Serve(context.Background(), ctx)
	return record(ctx)
}

// PerformEngineRequest 以引擎中名为 name 的处理器处理构造好的请求。
func PerformEngineRequest(engine *app.Engine, name, method, url string, body *Body, headers ...Header) *ResponseRecorder {
	ctx := createUtRequestContext(engine.NewContext(), method, url, body, headers...)
	engine.ServeHTTP(context.Background(), name, ctx)
	return record(ctx)
}

func record(ctx *app.RequestContext) *ResponseRecorder {
	w := NewRecorder()
	h := w.Header()
	ctx.Response.Header.VisitAll(func(key, value []byte) {
		h.Add(string(key), string(value))
	})

	w.WriteHeader(ctx.Response.StatusCode())
	w.Write(ctx.Response.Body())
	w.Flush()

	return w
}
