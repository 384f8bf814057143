package consts

// 结果应用与参数绑定用到的 HTTP 标头名称。
const (
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderLocation      = "Location"
	HeaderETag          = "ETag"
	HeaderIfNoneMatch   = "If-None-Match"
	HeaderLastModified  = "Last-Modified"
	HeaderCacheControl  = "Cache-Control"
	HeaderCookie        = "Cookie"
)

// HTTP 请求方法。
const (
	MethodGet    = "GET"
	MethodHead   = "HEAD"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)
