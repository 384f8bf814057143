package result

import (
	"context"
	"fmt"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// Data 包含要写入的二进制数据和自定义内容类型。
type Data struct {
	Code        int
	ContentType string
	Data        []byte
}

func (r Data) StatusCode() int {
	return statusOr(r.Code)
}

// Apply 写入字节切片和自定义内容类型，未指定内容类型时为 application/octet-stream。
func (r Data) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	contentType := r.ContentType
	if contentType == "" {
		contentType = consts.MIMEApplicationOctetStream
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, contentType)
	resp.AppendBody(r.Data)
	return nil
}

// Text 包含要写入的字符串格式和数据。
type Text struct {
	Code   int
	Format string
	Data   []any
}

func (r Text) StatusCode() int {
	return statusOr(r.Code)
}

// Apply 写入纯文本，没有数据时格式原样输出。
func (r Text) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMETextPlainUTF8)
	output := r.Format
	if len(r.Data) > 0 {
		output = fmt.Sprintf(r.Format, r.Data...)
	}
	resp.AppendBodyString(output)
	return nil
}
