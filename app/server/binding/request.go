package binding

import (
	"net/url"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/route/param"
)

// RequestValues 合并请求的全部参数。
//
// 顺序依次为：查询参数、表单编码的 POST 参数、多部分表单的值、路径参数。
// 同名参数的值按此顺序追加，取单值时以先出现者为准。
func RequestValues(req *protocol.Request, pathParams param.Params) url.Values {
	values := make(url.Values)
	if req != nil {
		req.QueryArgs().AppendValues(values)
		req.PostArgs().AppendValues(values)
		if form, err := req.MultipartForm(); err == nil {
			for k, vs := range form.Value {
				values[k] = append(values[k], vs...)
			}
		}
	}
	pathParams.AppendValues(values)
	return values
}
