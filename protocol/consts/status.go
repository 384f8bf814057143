package consts

// HTTP 状态码，来自 net/http 的部分。
const (
	StatusOK        = 200 // RFC 7231, 6.3.1
	StatusCreated   = 201 // RFC 7231, 6.3.2
	StatusAccepted  = 202 // RFC 7231, 6.3.3
	StatusNoContent = 204 // RFC 7231, 6.3.5

	StatusMovedPermanently  = 301 // RFC 7231, 6.4.2
	StatusFound             = 302 // RFC 7231, 6.4.3
	StatusSeeOther          = 303 // RFC 7231, 6.4.4
	StatusNotModified       = 304 // RFC 7232, 4.1 客户端缓存仍然有效，响应不含正文
	StatusTemporaryRedirect = 307 // RFC 7231, 6.4.7
	StatusPermanentRedirect = 308 // RFC 7538, 3

	StatusBadRequest           = 400 // RFC 7231, 6.5.1 客户端请求的语法错误，服务器无法理解
	StatusUnauthorized         = 401 // RFC 7235, 3.1 客户端未通过服务端的身份验证
	StatusForbidden            = 403 // RFC 7231, 6.5.3 客户端没有访问内容的权限
	StatusNotFound             = 404 // RFC 7231, 6.5.4 服务器找不到请求的资源
	StatusMethodNotAllowed     = 405 // RFC 7231, 6.5.5 目标资源不支持该请求方法
	StatusConflict             = 409 // RFC 7231, 6.5.8 请求与服务器当前状态相冲突
	StatusPreconditionFailed   = 412 // RFC 7232, 4.2 服务端无法满足客户端的先决条件
	StatusUnsupportedMediaType = 415 // RFC 7231, 6.5.13
	StatusUnprocessableEntity  = 422 // RFC 4918, 11.2

	StatusInternalServerError = 500 // RFC 7231, 6.6.1 服务器内部错误，无法完成请求
	StatusNotImplemented      = 501 // RFC 7231, 6.6.2 服务器不支持请求的功能，无法完成请求
	StatusServiceUnavailable  = 503 // RFC 7231, 6.6.4 因维护或超载而停机
)

var statusMessages = map[int]string{
	StatusOK:        "OK",
	StatusCreated:   "Created",
	StatusAccepted:  "Accepted",
	StatusNoContent: "No Content",

	StatusMovedPermanently:  "Moved Permanently",
	StatusFound:             "Found",
	StatusSeeOther:          "See Other",
	StatusNotModified:       "Not Modified",
	StatusTemporaryRedirect: "Temporary Redirect",
	StatusPermanentRedirect: "Permanent Redirect",

	StatusBadRequest:           "Bad Request",
	StatusUnauthorized:         "Unauthorized",
	StatusForbidden:            "Forbidden",
	StatusNotFound:             "Not Found",
	StatusMethodNotAllowed:     "Method Not Allowed",
	StatusConflict:             "Conflict",
	StatusPreconditionFailed:   "Precondition Failed",
	StatusUnsupportedMediaType: "Unsupported Media Type",
	StatusUnprocessableEntity:  "Unprocessable Entity",

	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusServiceUnavailable:  "Service Unavailable",
}

// StatusMessage 返回指定 HTTP 状态码的状态消息。
func StatusMessage(statusCode int) string {
	s := statusMessages[statusCode]
	if s == "" {
		s = "未知状态码"
	}
	return s
}

// MustSkipBody 报告指定状态码的响应是否不得携带正文。
func MustSkipBody(statusCode int) bool {
	return statusCode == StatusNoContent || statusCode == StatusNotModified || statusCode < StatusOK
}
