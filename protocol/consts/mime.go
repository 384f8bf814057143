package consts

// 常用的 MIME 内容类型。
const (
	MIMETextPlain              = "text/plain"
	MIMETextPlainUTF8          = "text/plain; charset=utf-8"
	MIMETextHtmlUTF8           = "text/html; charset=utf-8"
	MIMEApplicationJSON        = "application/json"
	MIMEApplicationJSONUTF8    = "application/json; charset=utf-8"
	MIMEApplicationXMLUTF8     = "application/xml; charset=utf-8"
	MIMEApplicationYAMLUTF8    = "application/x-yaml; charset=utf-8"
	MIMEApplicationTOMLUTF8    = "application/toml; charset=utf-8"
	MIMEApplicationMsgPack     = "application/msgpack"
	MIMEPROTOBUF               = "application/x-protobuf"
	MIMEApplicationHTMLForm    = "application/x-www-form-urlencoded"
	MIMEMultipartPOSTForm      = "multipart/form-data"
	MIMEApplicationOctetStream = "application/octet-stream"
)

// DefaultMaxInMemoryFileSize 定义解析多部分表单使用的内存文件大小，若超此值，则写入磁盘。
const DefaultMaxInMemoryFileSize = 16 * 1024 * 1024
