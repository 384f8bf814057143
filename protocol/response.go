package protocol

import (
	"bytes"
	"io"
	"sync"

	"github.com/favbox/mvc/internal/nocopy"
	"github.com/favbox/mvc/protocol/consts"
)

// 响应实例池，减少 GC
var responsePool sync.Pool

// Response 表示 HTTP 响应。
//
// 禁止拷贝 Response 实例。
//
// # Response 实例不能用于并发协程。
type Response struct {
	noCopy nocopy.NoCopy

	// Response 标头
	//
	// 禁止值拷贝 Header。可使用 Header 指针。
	Header ResponseHeader

	body bytes.Buffer
}

// AcquireResponse 从响应池中返回一个空的响应实例。
func AcquireResponse() *Response {
	v := responsePool.Get()
	if v == nil {
		return &Response{}
	}
	return v.(*Response)
}

// ReleaseResponse 重置响应并放回响应池。
func ReleaseResponse(resp *Response) {
	resp.Reset()
	responsePool.Put(resp)
}

// StatusCode 返回响应状态码。
func (resp *Response) StatusCode() int {
	return resp.Header.StatusCode()
}

// SetStatusCode 设置响应状态码。
func (resp *Response) SetStatusCode(statusCode int) {
	resp.Header.SetStatusCode(statusCode)
}

// MustSkipBody 报告当前状态码的响应是否不得携带正文。
func (resp *Response) MustSkipBody() bool {
	return consts.MustSkipBody(resp.StatusCode())
}

// AppendBody 追加 p 至响应正文。
//
// 函数返回后，复用 p 是安全的。
func (resp *Response) AppendBody(p []byte) {
	resp.body.Write(p)
}

// AppendBodyString 追加 s 至响应正文。
func (resp *Response) AppendBodyString(s string) {
	resp.body.WriteString(s)
}

// SetBody 设置响应正文。
//
// 函数返回后，可安全复用 body。
func (resp *Response) SetBody(body []byte) {
	resp.body.Reset()
	resp.body.Write(body)
}

// SetBodyString 设置响应正文。
func (resp *Response) SetBodyString(body string) {
	resp.body.Reset()
	resp.body.WriteString(body)
}

// Body 返回响应正文。
func (resp *Response) Body() []byte {
	return resp.body.Bytes()
}

// BodyWriter 返回用于填充响应正文的写入器。
func (resp *Response) BodyWriter() io.Writer {
	return &resp.body
}

// ResetBody 只重置响应的正文。
func (resp *Response) ResetBody() {
	resp.body.Reset()
}

// Reset 重置响应。
func (resp *Response) Reset() {
	resp.Header.Reset()
	resp.ResetBody()
}

// String 返回响应的文本形式。
func (resp *Response) String() string {
	return resp.Header.String() + resp.body.String()
}
