package result

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/bytedance/gopkg/lang/mcache"
	wjson "github.com/favbox/mvc/common/json"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

var jsonMarshalFunc JSONMarshaler

// JSONMarshaler 自定义 json.Marshal。
type JSONMarshaler func(v any) ([]byte, error)

func init() {
	ResetJSONMarshal(wjson.Marshal)
}

// ResetStdJSONMarshal 重置 JSON 编码函数为标准库实现。
func ResetStdJSONMarshal() {
	ResetJSONMarshal(json.Marshal)
}

// ResetJSONMarshal 重置 JSON 编码函数为给定的 fn。
func ResetJSONMarshal(fn JSONMarshaler) {
	jsonMarshalFunc = fn
}

// JSON 表示默认 JSON 结果（无缩进、启用 html 转义）。
type JSON struct {
	Code int
	Data any
}

func (r JSON) StatusCode() int {
	return statusOr(r.Code)
}

func (r JSON) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	jsonBytes, err := jsonMarshalFunc(r.Data)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationJSONUTF8)
	resp.AppendBody(jsonBytes)
	return nil
}

// PureJSON 表示纯 JSON 结果（无缩进、不启用 html 转义）。
type PureJSON struct {
	Code int
	Data any
}

func (r PureJSON) StatusCode() int {
	return statusOr(r.Code)
}

func (r PureJSON) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r.Data); err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationJSONUTF8)
	resp.AppendBody(buf.Bytes())
	return nil
}

// IndentedJSON 表示带缩进的 JSON 结果（缩进 4 个空格、启用 html 转义）。
type IndentedJSON struct {
	Code int
	Data any
}

func (r IndentedJSON) StatusCode() int {
	return statusOr(r.Code)
}

func (r IndentedJSON) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	jsonBytes, err := jsonMarshalFunc(r.Data)
	if err != nil {
		return err
	}

	// 缩进后的长度通常不超过原文的两倍
	scratch := mcache.Malloc(0, 2*len(jsonBytes))
	defer mcache.Free(scratch)
	buf := bytes.NewBuffer(scratch)
	if err = json.Indent(buf, jsonBytes, "", "    "); err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationJSONUTF8)
	resp.AppendBody(buf.Bytes())
	return nil
}
