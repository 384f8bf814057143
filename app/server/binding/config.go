package binding

import (
	stdJson "encoding/json"

	wjson "github.com/favbox/mvc/common/json"
)

// BindConfig 包含参数绑定的可选项。
type BindConfig struct {
	// 是否禁用复合对象绑定后的验证。
	//
	// 默认值：false，字段带有验证标签时执行验证。
	DisableValidation bool

	// 是否禁用结构体字段的 JSON 子对象解码。
	//
	// 亦即：若为 false，则 u.address={"city":"x"} 这样的参数会用 json.Unmarshal 解码到结构体字段。
	//
	// 默认值：false，解码 JSON 子对象。
	DisableStructJSON bool

	// 用于复合对象绑定后的验证，为空则使用默认验证器。
	Validator StructValidator
}

// NewBindConfig 创建新的绑定配置。
func NewBindConfig() *BindConfig {
	return &BindConfig{
		DisableValidation: false,
		DisableStructJSON: false,
		Validator:         DefaultValidator(),
	}
}

// UseThirdPartyJSONUnmarshaler 使用第三方 json 库解码 JSON 子对象。
// 备注：
//
//	一经调用，将持续生效。
func (c *BindConfig) UseThirdPartyJSONUnmarshaler(fn func(data []byte, v any) error) {
	wjson.Unmarshal = fn
}

// UseStdJSONUnmarshaler 使用 encoding/json 作为 json 库。
// 注意：
//
//	一经调用，将持续生效。
func (c *BindConfig) UseStdJSONUnmarshaler() {
	c.UseThirdPartyJSONUnmarshaler(stdJson.Unmarshal)
}

func (c *BindConfig) validateTag() string {
	if c.Validator != nil && c.Validator.ValidateTag() != "" {
		return c.Validator.ValidateTag()
	}
	return defaultValidateTag
}
