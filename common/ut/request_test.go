package ut

import (
	"bytes"
	"context"
	"testing"

	"github.com/favbox/mvc/app"
	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/app/server/result"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/stretchr/testify/assert"
)

type account struct {
	Name string
	Age  int `default:"18"`
}

func newTestEngine(t *testing.T) *app.Engine {
	engine := app.MustNew()
	engine.MustHandle("put", func(c context.Context, rc *app.RequestContext, user string, acc account) result.Result {
		switch string(rc.Request.Body()) {
		case "1":
			return result.JSON{Code: consts.StatusCreated, Data: map[string]any{"hi": user, "age": acc.Age}}
		case "":
			return result.UnauthorizedMsg(c, "未授权")
		}
		return result.Text{Code: consts.StatusAccepted, Format: "body:%v", Data: []any{string(rc.Request.Body())}}
	}, binding.Arg{Name: "user"}, binding.BindArg("acc", binding.Bind{Model: "a"}))
	engine.MustHandle("header", func(rc *app.RequestContext) result.Result {
		assert.Equal(t, "application/json", string(rc.Request.Header.ContentType()))
		assert.Equal(t, "a", rc.Request.Header.Get("dummy"))
		return result.NoContent
	})
	return engine
}

func TestPerformRequest(t *testing.T) {
	engine := newTestEngine(t)
	h, _ := engine.Handler("put")

	// 验证用户
	w := PerformRequest(h, "PUT", "/hey?user=dy&a.name=x", &Body{bytes.NewBufferString("1"), 1})
	resp := w.Result()
	assert.Equal(t, consts.StatusCreated, resp.StatusCode())
	assert.Equal(t, `{"age":18,"hi":"dy"}`, string(resp.Body()))
	assert.Equal(t, "application/json; charset=utf-8", string(resp.Header.ContentType()))

	// 未授权用户
	w = PerformRequest(h, "PUT", "/hey?user=dy", nil)
	_ = w.Result()
	resp = w.Result()
	assert.Equal(t, consts.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, "未授权", string(resp.Body()))
	assert.Equal(t, "text/plain; charset=utf-8", string(resp.Header.ContentType()))

	// 读取全部正文
	w = PerformRequest(h, "PUT", "/hey", &Body{bytes.NewBufferString("hello world!"), -1})
	resp = w.Result()
	assert.Equal(t, consts.StatusAccepted, resp.StatusCode())
	assert.Equal(t, "body:hello world!", string(resp.Body()))

	// 参数错误
	w = PerformRequest(h, "PUT", "/hey?a.age=old", nil)
	assert.Equal(t, consts.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"param":"a.age"`)
}

func TestPerformEngineRequest(t *testing.T) {
	engine := newTestEngine(t)

	// 特殊标头
	w := PerformEngineRequest(engine, "header", "GET", "/her/header", nil,
		Header{"content-type", "application/json"},
		Header{"dummy", "a"},
		Header{"dummy", "b"},
	)
	assert.Equal(t, consts.StatusNoContent, w.Code)

	// 未找到
	w = PerformEngineRequest(engine, "missing", "GET", "/hey", nil)
	resp := w.Result()
	assert.Equal(t, consts.StatusNotFound, resp.StatusCode())

	// 假冒的正文
	w = PerformEngineRequest(engine, "missing", "GET", "/hey", nil)
	_, err := w.WriteString("，仿冒者")
	resp = w.Result()
	assert.Nil(t, err)
	assert.Equal(t, consts.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Not Found，仿冒者", string(resp.Body()))
}

func TestCreateUtRequestContext(t *testing.T) {
	body := "1"
	method := "PUT"
	path := "/hey/dy"
	headerKey := "Connection"
	headerValue := "close"
	ctx := CreateUtRequestContext(method, path, &Body{bytes.NewBufferString(body), len(body)},
		Header{headerKey, headerValue})
	WithParams(ctx, map[string]string{"name": "dy"})

	assert.Equal(t, method, string(ctx.Request.Method()))
	assert.Equal(t, path, string(ctx.Request.Path()))
	assert.Equal(t, body, string(ctx.Request.Body()))
	assert.Equal(t, headerValue, string(ctx.Request.Header.Peek(headerKey)))
	assert.Equal(t, "dy", ctx.Param("name"))
}
