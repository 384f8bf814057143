package result

import (
	"context"
	"fmt"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// Message 是以纯文本消息为正文的错误结果。
//
// 与 NotModified 一样有三种构造方式：不带消息的共享实例（正文为状态文本）、
// 带消息的新实例，以及从载荷读取消息的共享实例。
type Message struct {
	code        int
	msg         string
	fromPayload bool
}

// 不带消息的共享实例。
var (
	BadRequest   = &Message{code: consts.StatusBadRequest}
	Unauthorized = &Message{code: consts.StatusUnauthorized}
	Forbidden    = &Message{code: consts.StatusForbidden}
	NotFound     = &Message{code: consts.StatusNotFound}
	Conflict     = &Message{code: consts.StatusConflict}
	ServerError  = &Message{code: consts.StatusInternalServerError}
)

// 从载荷读取消息的共享实例，初始化后只读。
var payloadMessages = map[int]*Message{
	consts.StatusBadRequest:          {code: consts.StatusBadRequest, fromPayload: true},
	consts.StatusUnauthorized:        {code: consts.StatusUnauthorized, fromPayload: true},
	consts.StatusForbidden:           {code: consts.StatusForbidden, fromPayload: true},
	consts.StatusNotFound:            {code: consts.StatusNotFound, fromPayload: true},
	consts.StatusConflict:            {code: consts.StatusConflict, fromPayload: true},
	consts.StatusInternalServerError: {code: consts.StatusInternalServerError, fromPayload: true},
}

// NewMessage 新建给定状态码和消息的实例。
func NewMessage(code int, msg string) *Message {
	return &Message{code: code, msg: msg}
}

// MessageOf 将格式化的消息存入 ctx 的载荷，并返回状态码对应的共享实例。
//
// ctx 中没有载荷或状态码没有共享实例时，退化为 NewMessage。
func MessageOf(ctx context.Context, code int, format string, args ...any) *Message {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	shared, ok := payloadMessages[code]
	if !ok {
		return NewMessage(code, msg)
	}
	p, ok := PayloadFrom(ctx)
	if !ok {
		return NewMessage(code, msg)
	}
	p.Message = msg
	return shared
}

func NewBadRequest(msg string) *Message   { return NewMessage(consts.StatusBadRequest, msg) }
func NewUnauthorized(msg string) *Message { return NewMessage(consts.StatusUnauthorized, msg) }
func NewForbidden(msg string) *Message    { return NewMessage(consts.StatusForbidden, msg) }
func NewNotFound(msg string) *Message     { return NewMessage(consts.StatusNotFound, msg) }
func NewConflict(msg string) *Message     { return NewMessage(consts.StatusConflict, msg) }
func NewServerError(msg string) *Message  { return NewMessage(consts.StatusInternalServerError, msg) }

func BadRequestMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusBadRequest, format, args...)
}

func UnauthorizedMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusUnauthorized, format, args...)
}

func ForbiddenMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusForbidden, format, args...)
}

func NotFoundMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusNotFound, format, args...)
}

func ConflictMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusConflict, format, args...)
}

func ServerErrorMsg(ctx context.Context, format string, args ...any) *Message {
	return MessageOf(ctx, consts.StatusInternalServerError, format, args...)
}

func (r *Message) StatusCode() int {
	return r.code
}

// Text 返回本次应用将写入的正文。
func (r *Message) Text(c context.Context) string {
	msg := r.msg
	if r.fromPayload {
		if p, ok := PayloadFrom(c); ok {
			msg = p.Message
		}
	}
	if msg == "" {
		msg = consts.StatusMessage(r.code)
	}
	return msg
}

// Apply 写入状态码与纯文本正文，返回时清空载荷。
func (r *Message) Apply(c context.Context, _ *protocol.Request, resp *protocol.Response) error {
	defer ClearPayload(c)

	resp.SetStatusCode(r.code)
	writeContentType(resp, consts.MIMETextPlainUTF8)
	resp.SetBodyString(r.Text(c))
	return nil
}
