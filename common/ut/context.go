package ut

import (
	"io"

	"github.com/favbox/mvc/app"
	"github.com/favbox/mvc/route/param"
)

// CreateUtRequestContext 创建一个用于测试的请求上下文。
func CreateUtRequestContext(method, url string, body *Body, headers ...Header) *app.RequestContext {
	return createUtRequestContext(app.NewContext(0), method, url, body, headers...)
}

func createUtRequestContext(ctx *app.RequestContext, method, url string, body *Body, headers ...Header) *app.RequestContext {
	ctx.Request.SetMethod(method)
	ctx.Request.SetRequestURI(url)
	if body != nil && body.Body != nil {
		var r io.Reader = body.Body
		if body.Len >= 0 {
			r = &io.LimitedReader{R: body.Body, N: int64(body.Len)}
		}
		buf, err := io.ReadAll(r)
		if err != nil {
			panic(err)
		}
		ctx.Request.SetBody(buf)
	}

	for _, v := range headers {
		// 不为空就追加
		if ctx.Request.Header.Get(v.Key) != "" {
			ctx.Request.Header.Add(v.Key, v.Value)
		} else {
			// 为空就是第一次设置
			ctx.Request.Header.Set(v.Key, v.Value)
		}
	}

	return ctx
}

// WithParams 为上下文设置路由参数。
func WithParams(ctx *app.RequestContext, params map[string]string) *app.RequestContext {
	ctx.Params = append(ctx.Params[:0], param.FromMap(params)...)
	return ctx
}
