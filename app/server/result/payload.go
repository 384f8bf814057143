package result

import "context"

type payloadKey struct{}

// Payload 是单个请求的临时载荷，供共享的结果单例读取随请求变化的数据。
//
// 载荷归属于一个请求，不可被并发的请求共享。
type Payload struct {
	Message string
	ETag    string
	attrs   map[string]any
}

// Set 设置附加属性。
func (p *Payload) Set(key string, value any) {
	if p.attrs == nil {
		p.attrs = make(map[string]any)
	}
	p.attrs[key] = value
}

// Get 返回附加属性。
func (p *Payload) Get(key string) (value any, exists bool) {
	value, exists = p.attrs[key]
	return
}

// IsEmpty 报告载荷是否为空。
func (p *Payload) IsEmpty() bool {
	return p.Message == "" && p.ETag == "" && len(p.attrs) == 0
}

// Reset 清空载荷。
func (p *Payload) Reset() {
	p.Message = ""
	p.ETag = ""
	p.attrs = nil
}

// WithPayload 返回带有新载荷槽位的 ctx，ctx 为空则基于 context.Background。
func WithPayload(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, payloadKey{}, &Payload{})
}

// PayloadFrom 返回 ctx 中的载荷。
func PayloadFrom(ctx context.Context) (*Payload, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(payloadKey{}).(*Payload)
	return p, ok
}

// ClearPayload 清空 ctx 中的载荷，没有载荷时什么也不做。
func ClearPayload(ctx context.Context) {
	if p, ok := PayloadFrom(ctx); ok {
		p.Reset()
	}
}
