package protocol

import (
	"bytes"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/favbox/mvc/internal/bytesconv"
	"github.com/favbox/mvc/internal/nocopy"
	"github.com/favbox/mvc/protocol/consts"
)

// 规范化标头键名，如 content-type 变为 Content-Type。
func normalizeHeaderKey(key string) string {
	return textproto.CanonicalMIMEHeaderKey(key)
}

// headerKVs 是按插入顺序保存的标头列表。
type headerKVs []argsKV

func (h headerKVs) peek(key string) []byte {
	for i := range h {
		if string(h[i].key) == key {
			return h[i].value
		}
	}
	return nil
}

func (h headerKVs) visitAll(f func(key, value []byte)) {
	for i := range h {
		f(h[i].key, h[i].value)
	}
}

// RequestHeader 表示 HTTP 请求标头。
//
// 禁止值拷贝 RequestHeader。
type RequestHeader struct {
	noCopy nocopy.NoCopy

	method      []byte
	requestURI  []byte
	contentType []byte
	h           headerKVs

	cookies       []argsKV
	cookiesParsed bool
}

// Method 返回请求方法，默认为 GET。
func (h *RequestHeader) Method() []byte {
	if len(h.method) == 0 {
		return []byte(consts.MethodGet)
	}
	return h.method
}

// SetMethod 设置请求方法。
func (h *RequestHeader) SetMethod(method string) {
	h.method = append(h.method[:0], method...)
}

// RequestURI 返回请求的原始 URI。
func (h *RequestHeader) RequestURI() []byte {
	if len(h.requestURI) == 0 {
		return []byte("/")
	}
	return h.requestURI
}

// SetRequestURI 设置请求的原始 URI。
func (h *RequestHeader) SetRequestURI(requestURI string) {
	h.requestURI = append(h.requestURI[:0], requestURI...)
}

// ContentType 返回请求的内容类型。
func (h *RequestHeader) ContentType() []byte {
	return h.contentType
}

// SetContentTypeBytes 设置请求的内容类型。
func (h *RequestHeader) SetContentTypeBytes(contentType []byte) {
	h.contentType = append(h.contentType[:0], contentType...)
}

// MultipartFormBoundary 返回 'multipart/form-data; boundary=...' 中的边界字符串。
func (h *RequestHeader) MultipartFormBoundary() []byte {
	b := h.contentType
	if !bytes.HasPrefix(b, []byte(consts.MIMEMultipartPOSTForm)) {
		return nil
	}
	idx := bytes.Index(b, []byte("boundary="))
	if idx < 0 {
		return nil
	}
	b = b[idx+len("boundary="):]
	if n := bytes.IndexByte(b, ';'); n >= 0 {
		b = b[:n]
	}
	return bytes.Trim(b, `"`)
}

// Set 设置标头，覆盖同名的已有值。
func (h *RequestHeader) Set(key, value string) {
	key = normalizeHeaderKey(key)
	switch key {
	case consts.HeaderContentType:
		h.SetContentTypeBytes([]byte(value))
	case consts.HeaderCookie:
		h.cookiesParsed = false
		h.h = headerKVs(setArg(h.h, key, value, argsHasValue))
	default:
		h.h = headerKVs(setArg(h.h, key, value, argsHasValue))
	}
}

// Add 添加标头，同名的已有值保持不变。
func (h *RequestHeader) Add(key, value string) {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		h.SetContentTypeBytes([]byte(value))
		return
	}
	if key == consts.HeaderCookie {
		h.cookiesParsed = false
	}
	h.h = headerKVs(appendArg(h.h, key, value, argsHasValue))
}

// Peek 返回指定标头的值。
func (h *RequestHeader) Peek(key string) []byte {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		return h.contentType
	}
	return h.h.peek(key)
}

// Get 返回指定标头的字符串值。
func (h *RequestHeader) Get(key string) string {
	return string(h.Peek(key))
}

// VisitAll 对每个标头执行 f。
func (h *RequestHeader) VisitAll(f func(key, value []byte)) {
	if len(h.contentType) > 0 {
		f([]byte(consts.HeaderContentType), h.contentType)
	}
	h.h.visitAll(f)
}

// SetCookie 设置请求的 cookie。
func (h *RequestHeader) SetCookie(key, value string) {
	h.parseCookies()
	h.cookies = setArg(h.cookies, key, value, argsHasValue)
}

// Cookie 返回指定名称的 cookie 值。
func (h *RequestHeader) Cookie(key string) []byte {
	h.parseCookies()
	for i := range h.cookies {
		if string(h.cookies[i].key) == key {
			return h.cookies[i].value
		}
	}
	return nil
}

// VisitAllCookie 对每个 cookie 执行 f。
func (h *RequestHeader) VisitAllCookie(f func(key, value []byte)) {
	h.parseCookies()
	for i := range h.cookies {
		f(h.cookies[i].key, h.cookies[i].value)
	}
}

func (h *RequestHeader) parseCookies() {
	if h.cookiesParsed {
		return
	}
	h.cookiesParsed = true
	h.cookies = h.cookies[:0]
	h.h.visitAll(func(key, value []byte) {
		if string(key) != consts.HeaderCookie {
			return
		}
		for _, part := range strings.Split(bytesconv.B2s(value), ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			k, v, _ := strings.Cut(part, "=")
			h.cookies = appendArg(h.cookies, k, strings.Trim(v, `"`), argsHasValue)
		}
	})
}

// Reset 清空请求标头。
func (h *RequestHeader) Reset() {
	h.method = h.method[:0]
	h.requestURI = h.requestURI[:0]
	h.contentType = h.contentType[:0]
	h.h = h.h[:0]
	h.cookies = h.cookies[:0]
	h.cookiesParsed = false
}

// ResponseHeader 表示 HTTP 响应标头。
//
// 禁止值拷贝 ResponseHeader。
type ResponseHeader struct {
	noCopy nocopy.NoCopy

	statusCode  int
	contentType []byte
	h           headerKVs
}

// StatusCode 返回响应状态码，默认为 200。
func (h *ResponseHeader) StatusCode() int {
	if h.statusCode == 0 {
		return consts.StatusOK
	}
	return h.statusCode
}

// SetStatusCode 设置响应状态码。
func (h *ResponseHeader) SetStatusCode(statusCode int) {
	h.statusCode = statusCode
}

// ContentType 返回响应的内容类型。
func (h *ResponseHeader) ContentType() []byte {
	return h.contentType
}

// SetContentType 设置响应的内容类型。
func (h *ResponseHeader) SetContentType(contentType string) {
	h.contentType = append(h.contentType[:0], contentType...)
}

// SetContentTypeBytes 设置响应的内容类型。
func (h *ResponseHeader) SetContentTypeBytes(contentType []byte) {
	h.contentType = append(h.contentType[:0], contentType...)
}

// Set 设置标头，覆盖同名的已有值。
func (h *ResponseHeader) Set(key, value string) {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		h.SetContentType(value)
		return
	}
	h.h = headerKVs(setArg(h.h, key, value, argsHasValue))
}

// Add 添加标头，同名的已有值保持不变。
func (h *ResponseHeader) Add(key, value string) {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		h.SetContentType(value)
		return
	}
	h.h = headerKVs(appendArg(h.h, key, value, argsHasValue))
}

// Del 删除指定的标头。
func (h *ResponseHeader) Del(key string) {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		h.contentType = h.contentType[:0]
		return
	}
	h.h = headerKVs(delAllArgs(h.h, key))
}

// Peek 返回指定标头的值。
func (h *ResponseHeader) Peek(key string) []byte {
	key = normalizeHeaderKey(key)
	if key == consts.HeaderContentType {
		return h.contentType
	}
	return h.h.peek(key)
}

// Get 返回指定标头的字符串值。
func (h *ResponseHeader) Get(key string) string {
	return string(h.Peek(key))
}

// Len 返回标头的数量，含内容类型。
func (h *ResponseHeader) Len() int {
	n := len(h.h)
	if len(h.contentType) > 0 {
		n++
	}
	return n
}

// VisitAll 对每个标头执行 f。
func (h *ResponseHeader) VisitAll(f func(key, value []byte)) {
	if len(h.contentType) > 0 {
		f([]byte(consts.HeaderContentType), h.contentType)
	}
	h.h.visitAll(f)
}

// String 返回响应标头的文本形式，不含正文。
func (h *ResponseHeader) String() string {
	var b strings.Builder
	code := h.StatusCode()
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(code))
	b.WriteByte(' ')
	b.WriteString(consts.StatusMessage(code))
	b.WriteString("\r\n")
	h.VisitAll(func(key, value []byte) {
		b.Write(key)
		b.WriteString(": ")
		b.Write(value)
		b.WriteString("\r\n")
	})
	b.WriteString("\r\n")
	return b.String()
}

// Reset 清空响应标头。
func (h *ResponseHeader) Reset() {
	h.statusCode = 0
	h.contentType = h.contentType[:0]
	h.h = h.h[:0]
}
