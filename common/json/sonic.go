//go:build (linux || windows || darwin) && amd64 && !stdjson

// Package json 选择框架使用的 JSON 编解码实现：amd64 平台默认使用 sonic，其余平台或指定 stdjson 构建标签时使用标准库。
package json

import "github.com/bytedance/sonic"

// Name 是有效的JSON 包名。
const Name = "sonic"

var (
	json = sonic.ConfigStd
	// Marshal 用于渲染 JSON 结果。
	Marshal = json.Marshal
	// Unmarshal 用于解码以 JSON 文本提交的复合子对象。
	Unmarshal = json.Unmarshal
	// MarshalIndent 用于渲染带缩进格式的 JSON 结果。
	MarshalIndent = json.MarshalIndent
	// Valid 报告数据是否为合法的 JSON 文本。
	Valid = json.Valid
)
