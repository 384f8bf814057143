package result

import (
	"context"
	"testing"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/stretchr/testify/assert"
)

func TestMessageShared(t *testing.T) {
	resp := &protocol.Response{}
	assert.Nil(t, NotFound.Apply(context.Background(), nil, resp))
	assert.Equal(t, consts.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Not Found", string(resp.Body()))
	assert.Equal(t, consts.MIMETextPlainUTF8, string(resp.Header.ContentType()))
}

func TestMessageNew(t *testing.T) {
	tests := []struct {
		r    *Message
		code int
	}{
		{NewBadRequest("m"), consts.StatusBadRequest},
		{NewUnauthorized("m"), consts.StatusUnauthorized},
		{NewForbidden("m"), consts.StatusForbidden},
		{NewNotFound("m"), consts.StatusNotFound},
		{NewConflict("m"), consts.StatusConflict},
		{NewServerError("m"), consts.StatusInternalServerError},
	}
	for _, tt := range tests {
		resp := &protocol.Response{}
		assert.Nil(t, tt.r.Apply(context.Background(), nil, resp))
		assert.Equal(t, tt.code, resp.StatusCode())
		assert.Equal(t, "m", string(resp.Body()))
	}
}

func TestMessageFromPayload(t *testing.T) {
	ctx := WithPayload(context.Background())
	p, _ := PayloadFrom(ctx)

	r := BadRequestMsg(ctx, "缺少参数 %s", "id")
	assert.Same(t, payloadMessages[consts.StatusBadRequest], r)
	assert.Equal(t, "缺少参数 id", p.Message)

	resp := &protocol.Response{}
	assert.Nil(t, r.Apply(ctx, nil, resp))
	assert.Equal(t, consts.StatusBadRequest, resp.StatusCode())
	assert.Equal(t, "缺少参数 id", string(resp.Body()))
	assert.True(t, p.IsEmpty())

	// 载荷已清空，共享实例退回状态文本
	resp = &protocol.Response{}
	assert.Nil(t, r.Apply(ctx, nil, resp))
	assert.Equal(t, "Bad Request", string(resp.Body()))

	for _, fn := range []func(context.Context, string, ...any) *Message{
		UnauthorizedMsg, ForbiddenMsg, NotFoundMsg, ConflictMsg, ServerErrorMsg,
	} {
		r := fn(ctx, "x")
		assert.True(t, r.fromPayload)
		assert.Nil(t, r.Apply(ctx, nil, &protocol.Response{}))
		assert.True(t, p.IsEmpty())
	}

	// 没有载荷或没有共享实例的状态码
	r = NotFoundMsg(context.Background(), "%d 不存在", 7)
	assert.False(t, r.fromPayload)
	assert.Equal(t, "7 不存在", r.Text(context.Background()))
	r = MessageOf(ctx, consts.StatusUnprocessableEntity, "bad")
	assert.False(t, r.fromPayload)
	assert.Equal(t, consts.StatusUnprocessableEntity, r.StatusCode())
}

func TestMessageClearsPayloadOnPanic(t *testing.T) {
	ctx := WithPayload(context.Background())
	p, _ := PayloadFrom(ctx)
	r := ConflictMsg(ctx, "版本冲突")

	assert.Panics(t, func() {
		_ = r.Apply(ctx, nil, nil)
	})
	assert.True(t, p.IsEmpty())
}
