package app

import (
	"context"
	"html/template"
	"testing"

	"github.com/favbox/mvc/app/server/binding"
	"github.com/favbox/mvc/app/server/result"
	"github.com/favbox/mvc/common/errors"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/favbox/mvc/route/param"
	"github.com/stretchr/testify/assert"
)

func TestContextKeys(t *testing.T) {
	ctx := NewContext(0)
	ctx.Set("name", "wind")
	ctx.Set("age", 3)

	v, ok := ctx.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "wind", v)
	assert.Equal(t, "wind", ctx.GetString("name"))
	assert.Equal(t, 3, ctx.GetInt("age"))
	assert.Equal(t, "", ctx.GetString("age"))
	assert.Equal(t, 3, ctx.MustGet("age"))
	assert.Panics(t, func() { ctx.MustGet("missing") })

	n := 0
	ctx.ForEachKey(func(k string, v any) { n++ })
	assert.Equal(t, 2, n)
}

func TestContextError(t *testing.T) {
	ctx := NewContext(0)
	assert.Panics(t, func() { ctx.Error(nil) })

	e := ctx.Error(errors.ErrNilResult)
	assert.Equal(t, errors.ErrorTypePrivate, e.Type)
	ctx.Error(errors.NewPublic("公开"))
	assert.Len(t, ctx.Errors, 2)
	assert.Len(t, ctx.Errors.ByType(errors.ErrorTypePublic), 1)
}

func TestContextValues(t *testing.T) {
	ctx := NewContext(1)
	ctx.Request.SetRequestURI("/users/7?page=2&id=9")
	ctx.Request.SetFormData(map[string]string{"name": "Alice"})
	ctx.Params = append(ctx.Params, param.Param{Key: "id", Value: "7"})

	assert.Equal(t, "2", ctx.Query("page"))
	_, ok := ctx.GetQuery("size")
	assert.False(t, ok)
	assert.Equal(t, "Alice", ctx.PostForm("name"))
	assert.Equal(t, "7", ctx.Param("id"))

	values := ctx.Values()
	assert.Equal(t, []string{"9", "7"}, values["id"])
	assert.Equal(t, "Alice", values.Get("name"))
}

func TestContextBindController(t *testing.T) {
	type pager struct {
		Page int `param:"page" default:"1"`
		Size int `param:"size" default:"20"`
	}
	ctx := NewContext(0)
	ctx.Request.SetRequestURI("/list?page=3")

	var p pager
	assert.Nil(t, ctx.BindController(nil, &p))
	assert.Equal(t, pager{Page: 3, Size: 20}, p)

	reg := binding.NewRegistry(nil)
	ctx.Request.SetRequestURI("/list?page=x")
	err := ctx.BindController(reg, &p)
	assert.NotNil(t, err)
	assert.Equal(t, []string{"page"}, err.(binding.BindErrors).Names())
}

func TestContextApplyOnce(t *testing.T) {
	c := result.WithPayload(context.Background())
	ctx := NewContext(0)

	assert.Equal(t, errors.ErrNilResult, ctx.Apply(c, nil))
	assert.False(t, ctx.Applied())

	assert.Nil(t, ctx.Apply(c, result.NewNotModified("abc123")))
	assert.True(t, ctx.Applied())
	assert.Equal(t, consts.StatusNotModified, ctx.Response.StatusCode())
	assert.Equal(t, "abc123", ctx.Response.Header.Get(consts.HeaderETag))

	assert.Equal(t, errors.ErrResultApplied, ctx.Apply(c, result.OK))
	assert.Equal(t, consts.StatusNotModified, ctx.Response.StatusCode())

	ctx.Reset()
	assert.False(t, ctx.Applied())
	assert.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
}

type panicResult struct{}

func (panicResult) StatusCode() int { return consts.StatusOK }

func (panicResult) Apply(c context.Context, _ *protocol.Request, _ *protocol.Response) error {
	panic("写入失败")
}

func TestContextApplyFailure(t *testing.T) {
	c := result.WithPayload(context.Background())
	p, _ := result.PayloadFrom(c)

	ctx := NewContext(0)
	p.Message = "残留"
	err := ctx.Apply(c, result.JSON{Data: make(chan int)})
	assert.NotNil(t, err)
	assert.True(t, p.IsEmpty())
	assert.Len(t, ctx.Errors.ByType(errors.ErrorTypeApply), 1)

	ctx = NewContext(0)
	p.ETag = "残留"
	err = ctx.Apply(c, panicResult{})
	assert.ErrorIs(t, err, errors.ErrApplyPanic)
	assert.True(t, p.IsEmpty())
	assert.Equal(t, errors.ErrorTypeApply, ctx.Errors.Last().Type)
}

func TestContextHTML(t *testing.T) {
	e := MustNew()
	e.HTMLRender = result.HTMLProduction{Template: template.Must(template.New("").Parse(`<b>{{.}}</b>`))}
	defer e.Close()

	ctx := e.NewContext()
	c := result.WithPayload(context.Background())
	assert.Nil(t, ctx.Apply(c, ctx.HTML(consts.StatusOK, "", "hi")))
	assert.Equal(t, "<b>hi</b>", string(ctx.Response.Body()))
}
