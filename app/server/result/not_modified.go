package result

import (
	"context"
	"fmt"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// NotModified 表示客户端缓存仍然有效的 304 结果，可附带 ETag 标头。
type NotModified struct {
	etag        string
	fromPayload bool
}

// NotModifiedInstance 是不带 ETag 的共享实例。
var NotModifiedInstance = &NotModified{}

// 从载荷读取 ETag 的共享实例。
var notModifiedPayload = &NotModified{fromPayload: true}

// GetNotModified 返回不带 ETag 的共享实例。
func GetNotModified() *NotModified {
	return NotModifiedInstance
}

// NewNotModified 新建带有 etag 的实例。
func NewNotModified(etag string) *NotModified {
	return &NotModified{etag: etag}
}

// NewNotModifiedf 新建 ETag 为格式化字符串的实例。
func NewNotModifiedf(format string, args ...any) *NotModified {
	return NewNotModified(fmt.Sprintf(format, args...))
}

// NotModifiedETag 将 etag 存入 ctx 的载荷并返回共享实例。
//
// ctx 中没有载荷时退化为 NewNotModified(etag)。
func NotModifiedETag(ctx context.Context, etag string) *NotModified {
	p, ok := PayloadFrom(ctx)
	if !ok {
		return NewNotModified(etag)
	}
	p.ETag = etag
	return notModifiedPayload
}

// NotModifiedETagf 同 NotModifiedETag，etag 为格式化字符串。
func NotModifiedETagf(ctx context.Context, format string, args ...any) *NotModified {
	return NotModifiedETag(ctx, fmt.Sprintf(format, args...))
}

// StatusCode 返回 304。
func (r *NotModified) StatusCode() int {
	return consts.StatusNotModified
}

// ETag 返回本次应用将写入的 ETag。
func (r *NotModified) ETag(c context.Context) string {
	if !r.fromPayload {
		return r.etag
	}
	if p, ok := PayloadFrom(c); ok {
		return p.ETag
	}
	return ""
}

// Apply 先设置状态码，ETag 非空时再设置 ETag 标头，返回时清空载荷。
func (r *NotModified) Apply(c context.Context, _ *protocol.Request, resp *protocol.Response) error {
	defer ClearPayload(c)

	resp.SetStatusCode(consts.StatusNotModified)
	resp.ResetBody()
	if etag := r.ETag(c); etag != "" {
		resp.Header.Set(consts.HeaderETag, etag)
	}
	return nil
}
