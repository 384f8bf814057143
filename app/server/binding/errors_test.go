package binding

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	werrors "github.com/favbox/mvc/common/errors"
)

func TestResolutionError(t *testing.T) {
	err := &ResolutionError{Name: "age", Raw: "notanumber", Type: reflect.TypeOf(0), Err: errors.New("invalid syntax")}
	assert.Equal(t, `参数 age 的值 "notanumber" 无法解析为 int：invalid syntax`, err.Error())

	missing := &ResolutionError{Name: "token", Err: ErrMissingParam}
	assert.Equal(t, "参数 token：缺少必填参数", missing.Error())
	assert.ErrorIs(t, missing, ErrMissingParam)
}

func TestValidateError(t *testing.T) {
	err := &ValidateError{FailPath: "Age"}
	assert.Equal(t, "无效参数：Age", err.Error())
	err.Name = "u"
	err.Msg = "年龄超出范围"
	assert.Equal(t, "u：年龄超出范围", err.Error())
}

func TestAppendBindError(t *testing.T) {
	var errs BindErrors
	plain := &ResolutionError{Raw: "x"}
	nested := &ResolutionError{Name: "age", Raw: "y"}
	invalid := &ValidateError{FailPath: "Age"}
	errs = appendBindError(errs, "age", plain)
	errs = appendBindError(errs, "u", BindErrors{
		nested,
		&ResolutionError{Name: "u.size", Raw: "z"},
	})
	errs = appendBindError(errs, "u", invalid)
	errs = appendBindError(errs, "plain", fmt.Errorf("boom"))
	errs = appendBindError(errs, "none", nil)

	assert.Equal(t, []string{"age", "u.age", "u.size", "u", "plain"}, errs.Names())
	assert.Len(t, errs.Unwrap(), 5)

	chain := errs.Chain()
	assert.Equal(t, 5, len(chain.ByType(werrors.ErrorTypeBind)))
	assert.Equal(t, map[string]any{"param": "u", "field": "Age"}, chain[3].Meta)
	assert.Contains(t, errs.Error(), "; ")

	// 补齐名称只作用于副本
	assert.Equal(t, "", plain.Name)
	assert.Equal(t, "age", nested.Name)
	assert.Equal(t, "", invalid.Name)
}
