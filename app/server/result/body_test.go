package result

import (
	"context"
	"encoding/xml"
	"testing"

	wjson "github.com/favbox/mvc/common/json"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type xmlmap map[string]any

// 使 xmlmap 可被 xml.Marshal 编码
func (h xmlmap) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{
		Space: "",
		Local: "map",
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for key, value := range h {
		elem := xml.StartElement{
			Name: xml.Name{Space: "", Local: key},
			Attr: []xml.Attr{},
		}
		if err := e.EncodeElement(value, elem); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func apply(t *testing.T, r Result) *protocol.Response {
	resp := &protocol.Response{}
	assert.Nil(t, r.Apply(context.Background(), nil, resp))
	assert.Equal(t, r.StatusCode(), resp.StatusCode())
	return resp
}

func TestResultJSON(t *testing.T) {
	data := map[string]any{
		"foo":  "bar",
		"html": "<b>",
	}

	resp := apply(t, JSON{Data: data})
	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.Equal(t, "{\"foo\":\"bar\",\"html\":\"\\u003cb\\u003e\"}", string(resp.Body()))
	assert.Equal(t, []byte(consts.MIMEApplicationJSONUTF8), resp.Header.Peek("Content-Type"))

	resp = apply(t, JSON{Code: consts.StatusCreated, Data: data})
	assert.Equal(t, consts.StatusCreated, resp.StatusCode())
}

func TestResultJSONError(t *testing.T) {
	resp := &protocol.Response{}
	// json: unsupported type: chan int
	assert.NotNil(t, JSON{Data: make(chan int)}.Apply(context.Background(), nil, resp))
	assert.Empty(t, resp.Body())
}

func TestResultPureJSON(t *testing.T) {
	resp := apply(t, PureJSON{Data: map[string]any{"html": "<b>"}})
	assert.Equal(t, "{\"html\":\"<b>\"}\n", string(resp.Body()))
	assert.Equal(t, consts.MIMEApplicationJSONUTF8, string(resp.Header.ContentType()))
}

func TestResultIndentedJSON(t *testing.T) {
	data := map[string]any{
		"foo":  "bar",
		"html": "h1",
	}
	t.Run("TestBody", func(t *testing.T) {
		ResetStdJSONMarshal()
		defer ResetJSONMarshal(wjson.Marshal)
		resp := apply(t, IndentedJSON{Data: data})
		assert.Equal(t, "{\n    \"foo\": \"bar\",\n    \"html\": \"h1\"\n}", string(resp.Body()))
		assert.Equal(t, []byte(consts.MIMEApplicationJSONUTF8), resp.Header.Peek("Content-Type"))
	})
	t.Run("TestError", func(t *testing.T) {
		resp := &protocol.Response{}
		assert.NotNil(t, IndentedJSON{Data: make(chan int)}.Apply(context.Background(), nil, resp))
	})
}

func TestDefaultJSONMarshal(t *testing.T) {
	table := map[string]string{
		"testA": "hello",
		"B":     "world",
	}

	jsonBytes, err := jsonMarshalFunc(table)
	assert.Nil(t, err)
	assert.Contains(t, string(jsonBytes), `"testA":"hello"`)
	assert.Contains(t, string(jsonBytes), `"B":"world"`)
}

func TestResultText(t *testing.T) {
	resp := apply(t, Text{Format: "hola %s %d", Data: []any{"manu", 2}})
	assert.Equal(t, "hola manu 2", string(resp.Body()))
	assert.Equal(t, []byte(consts.MIMETextPlainUTF8), resp.Header.Peek("Content-Type"))

	resp = apply(t, Text{Format: "hola %s %d"})
	assert.Equal(t, "hola %s %d", string(resp.Body()))
}

func TestResultData(t *testing.T) {
	resp := apply(t, Data{ContentType: "image/png", Data: []byte("#!PNG some raw data")})
	assert.Equal(t, "#!PNG some raw data", string(resp.Body()))
	assert.Equal(t, "image/png", string(resp.Header.ContentType()))

	resp = apply(t, Data{Data: []byte{1, 2}})
	assert.Equal(t, consts.MIMEApplicationOctetStream, string(resp.Header.ContentType()))
}

func TestResultXML(t *testing.T) {
	resp := apply(t, XML{Data: xmlmap{"foo": "bar"}})
	assert.Equal(t, "<map><foo>bar</foo></map>", string(resp.Body()))
	assert.Equal(t, []byte(consts.MIMEApplicationXMLUTF8), resp.Header.Peek("Content-Type"))
}

func TestResultProtoBuf(t *testing.T) {
	msg := wrapperspb.String("wind")
	want, err := proto.Marshal(msg)
	assert.Nil(t, err)

	resp := apply(t, ProtoBuf{Data: msg})
	assert.Equal(t, want, resp.Body())
	assert.Equal(t, consts.MIMEPROTOBUF, string(resp.Header.ContentType()))

	assert.NotNil(t, ProtoBuf{Data: "wind"}.Apply(context.Background(), nil, &protocol.Response{}))
}

func TestResultYAML(t *testing.T) {
	resp := apply(t, YAML{Data: map[string]string{"foo": "bar"}})
	assert.Equal(t, "foo: bar\n", string(resp.Body()))
	assert.Equal(t, consts.MIMEApplicationYAMLUTF8, string(resp.Header.ContentType()))
}

func TestResultTOML(t *testing.T) {
	resp := apply(t, TOML{Data: struct {
		Name string `toml:"name"`
	}{Name: "wind"}})
	assert.Contains(t, string(resp.Body()), `name = "wind"`)
	assert.Equal(t, consts.MIMEApplicationTOMLUTF8, string(resp.Header.ContentType()))
}

func TestResultMsgPack(t *testing.T) {
	resp := apply(t, MsgPack{Data: map[string]any{"foo": "bar"}})
	assert.Equal(t, consts.MIMEApplicationMsgPack, string(resp.Header.ContentType()))

	var out map[string]any
	assert.Nil(t, msgpack.Unmarshal(resp.Body(), &out))
	assert.Equal(t, "bar", out["foo"])
}
