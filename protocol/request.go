package protocol

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"sync"

	"github.com/favbox/mvc/common/errors"
	"github.com/favbox/mvc/internal/bytesconv"
	"github.com/favbox/mvc/internal/nocopy"
	"github.com/favbox/mvc/protocol/consts"
)

// 请求实例池，减少 GC
var requestPool sync.Pool

// Request 表示 HTTP 请求。
//
// 禁止拷贝 Request 实例。
//
// # Request 实例不能用于并发协程。
type Request struct {
	noCopy nocopy.NoCopy

	// Request 标头
	//
	// 禁止值拷贝 Header。可使用 Header 指针。
	Header RequestHeader

	path      []byte
	queryArgs Args
	postArgs  Args
	body      bytes.Buffer

	multipartForm *multipart.Form

	// URI 是否已解析
	parsedURI bool
	// Post Args 是否已解析
	parsedPostArgs bool
}

// AcquireRequest 从请求池中返回一个空的请求实例。
//
// 不再使用时可调用 ReleaseRequest 将其放回池中。
func AcquireRequest() *Request {
	v := requestPool.Get()
	if v == nil {
		return &Request{}
	}
	return v.(*Request)
}

// ReleaseRequest 重置请求并放回请求池。
//
// 请求放回后禁止再访问。
func ReleaseRequest(req *Request) {
	req.Reset()
	requestPool.Put(req)
}

// NewRequest 新建指定方法、地址和正文的请求。
func NewRequest(method, uri string, body io.Reader) *Request {
	req := new(Request)
	req.SetMethod(method)
	req.SetRequestURI(uri)
	if body != nil {
		_, _ = io.Copy(req.BodyWriter(), body)
	}
	return req
}

// SetRequestURI 设置请求的原始 URI，如 /user?id=1。
func (req *Request) SetRequestURI(requestURI string) {
	req.Header.SetRequestURI(requestURI)
	req.parsedURI = false
}

// RequestURI 返回请求的原始 URI。
func (req *Request) RequestURI() []byte {
	return req.Header.RequestURI()
}

// Method 返回请求方法。
func (req *Request) Method() []byte {
	return req.Header.Method()
}

// SetMethod 设置请求方法。
func (req *Request) SetMethod(method string) {
	req.Header.SetMethod(method)
}

// Path 返回解码后的请求路径。
func (req *Request) Path() []byte {
	req.parseURI()
	return req.path
}

// QueryArgs 返回查询参数。
func (req *Request) QueryArgs() *Args {
	req.parseURI()
	return &req.queryArgs
}

// SetQueryString 以 queryString 替换请求的查询部分。
func (req *Request) SetQueryString(queryString string) {
	uri := bytesconv.B2s(req.Header.RequestURI())
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		uri = uri[:i]
	}
	req.SetRequestURI(uri + "?" + queryString)
}

func (req *Request) parseURI() {
	if req.parsedURI {
		return
	}
	req.parsedURI = true

	uri := bytesconv.B2s(req.Header.RequestURI())
	path, query, _ := strings.Cut(uri, "?")
	if p, err := url.PathUnescape(path); err == nil {
		path = p
	}
	req.path = append(req.path[:0], path...)
	req.queryArgs.ParseBytes([]byte(query))
}

// PostArgs 返回表单编码的 POST 参数。
//
// 内容类型不是 application/x-www-form-urlencoded 时为空。
func (req *Request) PostArgs() *Args {
	req.parsePostArgs()
	return &req.postArgs
}

func (req *Request) parsePostArgs() {
	if req.parsedPostArgs {
		return
	}
	req.parsedPostArgs = true

	if !bytes.HasPrefix(req.Header.ContentType(), []byte(consts.MIMEApplicationHTMLForm)) {
		return
	}
	req.postArgs.ParseBytes(req.Body())
}

// MultipartForm 解析请求正文中的请求表单。
//
// 若请求的内容类型不是 'multipart/form-data' 则返回 errors.ErrNoMultipartForm。
//
// 在返回的 multipart 表单被处理后，一定要调用 RemoveMultipartFormFiles。
func (req *Request) MultipartForm() (*multipart.Form, error) {
	if req.multipartForm != nil {
		return req.multipartForm, nil
	}
	boundary := req.Header.MultipartFormBoundary()
	if len(boundary) == 0 {
		return nil, errors.ErrNoMultipartForm
	}
	mr := multipart.NewReader(bytes.NewReader(req.Body()), string(boundary))
	f, err := mr.ReadForm(consts.DefaultMaxInMemoryFileSize)
	if err != nil {
		return nil, err
	}
	req.multipartForm = f
	return f, nil
}

// RemoveMultipartFormFiles 移除该请求关联的 multipart/form-data 临时文件。
func (req *Request) RemoveMultipartFormFiles() {
	if req.multipartForm != nil {
		_ = req.multipartForm.RemoveAll()
	}
	req.multipartForm = nil
}

// Body 返回请求正文。
func (req *Request) Body() []byte {
	return req.body.Bytes()
}

// SetBody 设置请求正文。
//
// 函数返回后，可安全复用 body。
func (req *Request) SetBody(body []byte) {
	req.ResetBody()
	req.body.Write(body)
}

// SetBodyString 设置请求正文。
func (req *Request) SetBodyString(body string) {
	req.ResetBody()
	req.body.WriteString(body)
}

// AppendBody 追加 p 至请求正文。
func (req *Request) AppendBody(p []byte) {
	req.body.Write(p)
	req.parsedPostArgs = false
}

// BodyWriter 返回用于填充请求正文的写入器。
func (req *Request) BodyWriter() io.Writer {
	return &req.body
}

// ResetBody 清空请求正文及由它解析出的表单。
func (req *Request) ResetBody() {
	req.body.Reset()
	req.parsedPostArgs = false
	req.postArgs.Reset()
	req.RemoveMultipartFormFiles()
}

// SetFormData 以表单编码设置请求正文，并设置相应的内容类型。
func (req *Request) SetFormData(data map[string]string) {
	values := make(url.Values, len(data))
	for k, v := range data {
		values.Set(k, v)
	}
	req.SetFormDataFromValues(values)
}

// SetFormDataFromValues 以表单编码设置请求正文，并设置相应的内容类型。
func (req *Request) SetFormDataFromValues(data url.Values) {
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationHTMLForm))
	req.SetBodyString(data.Encode())
}

// SetMultipartFormData 以 multipart/form-data 编码设置请求正文。
func (req *Request) SetMultipartFormData(data map[string]string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range data {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()
	req.Header.SetContentTypeBytes([]byte(w.FormDataContentType()))
	req.SetBody(buf.Bytes())
}

// Reset 清空请求。
func (req *Request) Reset() {
	req.Header.Reset()
	req.path = req.path[:0]
	req.queryArgs.Reset()
	req.parsedURI = false
	req.ResetBody()
}
