package binding

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
	"github.com/favbox/mvc/common/hlog"
	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/route/param"
)

type controllerField struct {
	index int
	plan  *argPlan
}

// 控制器类型编译后的字段取值计划。
type controllerPlan struct {
	typ    reflect.Type
	fields []controllerField
}

// RegisterController 编译控制器的字段声明并缓存，ctrl 须为结构体指针，可为空指针。
//
// 字段以 param 标签（可配合 default、resolver 标签及 required 选项）声明单值参数，
// 以 bind 标签声明复合对象。没有这两种标签的字段不参与绑定。
func (r *Registry) RegisterController(ctrl any) error {
	rv, typeID := valueAndTypeID(ctrl)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || dereferPointer(rv).Kind() != reflect.Struct {
		return fmt.Errorf("%w：%T", ErrNotPointer, ctrl)
	}
	_, err := r.controllerPlan(rv, typeID)
	return err
}

// BindController 将请求参数绑定到控制器的字段。
func (r *Registry) BindController(req *protocol.Request, pathParams param.Params, ctrl any) error {
	return r.BindControllerValues(RequestValues(req, pathParams), ctrl)
}

// BindControllerValues 将已合并的请求参数绑定到控制器的字段。
//
// 与处理器参数相同，全部字段的解析错误会一并以 BindErrors 返回。
func (r *Registry) BindControllerValues(values url.Values, ctrl any) error {
	rv, typeID := valueAndTypeID(ctrl)
	if !rv.IsValid() {
		return ErrNotPointer
	}
	if err := checkPointer(rv); err != nil {
		return err
	}
	plan, err := r.controllerPlan(rv, typeID)
	if err != nil {
		return err
	}

	target := decoder.GetFieldValue(rv, nil)
	var errs BindErrors
	for _, f := range plan.fields {
		v, err := f.plan.resolve(values)
		if err != nil {
			errs = appendBindError(errs, f.plan.name, err)
			continue
		}
		target.Field(f.index).Set(v)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *Registry) controllerPlan(rv reflect.Value, typeID uintptr) (*controllerPlan, error) {
	if plan, ok := r.controllers.Load(typeID); ok {
		return plan.(*controllerPlan), nil
	}
	rt := dereferPointer(rv)
	plan := &controllerPlan{typ: rt}
	var errs []error
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := decoder.LookupFieldTag(field, "")
		if tag.Skip || (!tag.HasParam && !tag.HasBind) {
			continue
		}

		arg := Arg{Name: tag.Key, Type: field.Type}
		if tag.HasBind {
			arg.Name = tag.Model
			arg.Bind = &Bind{Model: tag.Model}
		} else {
			p := &Param{Name: tag.Key, ResolverName: tag.Resolver, Required: tag.Required}
			if tag.HasDefault {
				p.Default = DefString(tag.Default)
			}
			arg.Param = p
		}
		ap, err := r.compile(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("控制器 %v 的字段 %s：%w", rt, field.Name, err))
			continue
		}
		plan.fields = append(plan.fields, controllerField{index: i, plan: ap})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	actual, loaded := r.controllers.LoadOrStore(typeID, plan)
	if !loaded {
		hlog.SystemLogger().Debugf("注册控制器 %v，共 %d 个绑定字段", rt, len(plan.fields))
	}
	return actual.(*controllerPlan), nil
}
