package result

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"
)

// XML 包含要写入的 XML 数据。
type XML struct {
	Code int
	Data any
}

func (r XML) StatusCode() int {
	return statusOr(r.Code)
}

func (r XML) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	xmlBytes, err := xml.Marshal(r.Data)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationXMLUTF8)
	resp.AppendBody(xmlBytes)
	return nil
}

// ProtoBuf 包含要写入的 pb 数据，Data 须实现 proto.Message。
type ProtoBuf struct {
	Code int
	Data any
}

func (r ProtoBuf) StatusCode() int {
	return statusOr(r.Code)
}

func (r ProtoBuf) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	msg, ok := r.Data.(proto.Message)
	if !ok {
		return fmt.Errorf("ProtoBuf 结果的数据 %T 未实现 proto.Message", r.Data)
	}
	pbBytes, err := proto.Marshal(msg)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEPROTOBUF)
	resp.AppendBody(pbBytes)
	return nil
}

// YAML 包含要写入的 YAML 数据。
type YAML struct {
	Code int
	Data any
}

func (r YAML) StatusCode() int {
	return statusOr(r.Code)
}

func (r YAML) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	yamlBytes, err := yaml.Marshal(r.Data)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationYAMLUTF8)
	resp.AppendBody(yamlBytes)
	return nil
}

// TOML 包含要写入的 TOML 数据，Data 须为结构体或映射。
type TOML struct {
	Code int
	Data any
}

func (r TOML) StatusCode() int {
	return statusOr(r.Code)
}

func (r TOML) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	tomlBytes, err := toml.Marshal(r.Data)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationTOMLUTF8)
	resp.AppendBody(tomlBytes)
	return nil
}

// MsgPack 包含要写入的 MessagePack 数据。
type MsgPack struct {
	Code int
	Data any
}

func (r MsgPack) StatusCode() int {
	return statusOr(r.Code)
}

func (r MsgPack) Apply(_ context.Context, _ *protocol.Request, resp *protocol.Response) error {
	packed, err := msgpack.Marshal(r.Data)
	if err != nil {
		return err
	}
	resp.SetStatusCode(r.StatusCode())
	writeContentType(resp, consts.MIMEApplicationMsgPack)
	resp.AppendBody(packed)
	return nil
}
