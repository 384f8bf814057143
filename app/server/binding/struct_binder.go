package binding

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/favbox/mvc/app/server/binding/internal/decoder"
	"github.com/favbox/mvc/common/hlog"
	wjson "github.com/favbox/mvc/common/json"
	"github.com/favbox/mvc/internal/bytesconv"
)

type fieldKind uint8

const (
	scalarField fieldKind = iota
	sliceField
	jsonField
)

// 结构体中一个可绑定字段的编译结果。
type fieldInfo struct {
	kind        fieldKind
	key         string // 相对于模型名称的点号路径，如 address.city
	parentIndex []int
	index       int
	fieldType   reflect.Type
	resolver    Resolver
	def         reflect.Value
}

// StructBinder 是结构体类型的反射绑定器。
//
// 字段的子键名取 param 标签，否则为首字母小写的字段名；param:"-" 跳过该字段。
// resolver 标签指定命名解析器，default 标签给出默认值，均在创建时解析一次。
// 嵌套结构体以更深的前缀递归绑定，指针字段按需分配，自引用类型不再递归。
// 结构体字段也可作为一个 JSON 值整体提交，解码失败时记录日志并跳过。
type StructBinder struct {
	typ          reflect.Type
	fields       []*fieldInfo
	needValidate bool
	validator    StructValidator
	disableJSON  bool
}

var _ Binder = (*StructBinder)(nil)

// NewStructBinder 为结构体类型 t 创建绑定器，t 可为结构体指针。
//
// 未知的命名解析器或不兼容的默认值均在此返回配置错误。
func NewStructBinder(t reflect.Type, resolvers *ResolverRegistry, config *BindConfig) (*StructBinder, error) {
	elem, _ := decoder.Deref(t)
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w：%v 不是结构体", ErrNoBinder, t)
	}
	if resolvers == nil {
		resolvers = NewResolverRegistry()
	}
	if config == nil {
		config = NewBindConfig()
	}
	b := &StructBinder{
		typ:         elem,
		disableJSON: config.DisableStructJSON,
	}
	if !config.DisableValidation {
		b.validator = config.Validator
	}
	seen := map[reflect.Type]bool{elem: true}
	if err := b.collect(elem, "", nil, seen, resolvers, config.validateTag()); err != nil {
		return nil, err
	}
	if b.validator == nil {
		b.needValidate = false
	}
	return b, nil
}

func (b *StructBinder) collect(t reflect.Type, prefix string, parentIndex []int, seen map[reflect.Type]bool, resolvers *ResolverRegistry, validateTag string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		// 未导出字段只保留嵌入的结构体，以绑定其导出字段
		if !field.IsExported() && (!field.Anonymous || field.Type.Kind() != reflect.Struct) {
			continue
		}
		tag := decoder.LookupFieldTag(field, validateTag)
		if tag.Skip {
			continue
		}
		if tag.NeedValidate {
			b.needValidate = true
		}
		key := prefix + tag.Key
		elem, _ := decoder.Deref(field.Type)
		fi := &fieldInfo{
			key:         key,
			parentIndex: parentIndex,
			index:       i,
			fieldType:   field.Type,
		}

		res, err := lookupResolver(resolvers, tag.Resolver, elem)
		if err != nil {
			return fmt.Errorf("字段 %v.%s：%w", t, field.Name, err)
		}
		switch {
		case res != nil:
			fi.kind = scalarField
		case elem.Kind() == reflect.Slice && elem != reflect.TypeOf([]byte(nil)):
			if res, _ = resolvers.Lookup(elem.Elem()); res == nil {
				continue
			}
			fi.kind = sliceField
		case elem.Kind() == reflect.Struct:
			idx := append(append([]int(nil), parentIndex...), i)
			if !b.disableJSON && !field.Anonymous {
				fi.kind = jsonField
				b.fields = append(b.fields, fi)
			}
			if seen[elem] {
				continue
			}
			seen[elem] = true
			subPrefix := key + "."
			if field.Anonymous && !tag.HasParam {
				subPrefix = prefix
			}
			err := b.collect(elem, subPrefix, idx, seen, resolvers, validateTag)
			delete(seen, elem)
			if err != nil {
				return err
			}
			continue
		default:
			continue
		}
		fi.resolver = res

		if tag.HasDefault {
			def, err := DefString(tag.Default).Value(field.Type, res)
			if fi.kind == sliceField {
				def, err = sliceDefault(tag.Default, field.Type, res)
			}
			if err != nil {
				return fmt.Errorf("字段 %v.%s：%w", t, field.Name, err)
			}
			fi.def = def
		}
		b.fields = append(b.fields, fi)
	}
	return nil
}

// 按名称或类型查找解析器，命名解析器不存在时报错；类型不可解析时返回 nil。
func lookupResolver(resolvers *ResolverRegistry, name string, t reflect.Type) (Resolver, error) {
	if name != "" {
		res, ok := resolvers.Named(name)
		if !ok {
			return nil, fmt.Errorf("%w：名称 %s", ErrNoResolver, name)
		}
		return res, nil
	}
	res, _ := resolvers.Lookup(t)
	return res, nil
}

// 切片字段的默认值为单个元素的切片。
func sliceDefault(text string, t reflect.Type, res Resolver) (reflect.Value, error) {
	elem, ptrDepth := decoder.Deref(t)
	v, err := DefString(text).Value(elem.Elem(), res)
	if err != nil {
		return reflect.Value{}, err
	}
	s := reflect.Append(reflect.MakeSlice(elem, 0, 1), v)
	return decoder.ReferenceValue(s, ptrDepth), nil
}

// TargetType 返回绑定器产出的结构体类型。
func (b *StructBinder) TargetType() reflect.Type {
	return b.typ
}

// Bind 将以 name 为前缀的参数绑定到新的结构体值。
//
// 没有任何相关参数时返回零值结构体。字段解析失败会被收集为 BindErrors，
// 其中的参数名为完整的点号路径，如 u.age。
func (b *StructBinder) Bind(name string, params url.Values) (any, error) {
	rv := reflect.New(b.typ)
	if !hasPrefixed(name, params) {
		return rv.Elem().Interface(), nil
	}

	// 默认值最先写入，随后依次被整体 JSON 文本和点号参数覆盖
	for _, f := range b.fields {
		if f.def.IsValid() {
			b.fieldValue(rv, f).Set(freshCopy(f.def))
		}
	}

	// 整个对象以 JSON 文本提交
	if raw := first(params[name]); raw != "" && !b.disableJSON {
		if err := wjson.Unmarshal(bytesconv.S2b(raw), rv.Interface()); err != nil {
			hlog.SystemLogger().Infof("跳过参数 %s 的 JSON 解码：%v", name, err)
		}
	}

	var errs BindErrors
	for _, f := range b.fields {
		full := name + "." + f.key
		values, ok := params[full]
		switch f.kind {
		case scalarField:
			raw := first(values)
			if raw == "" {
				continue
			}
			v, ok, err := resolveTo(f.resolver, raw, f.fieldType)
			if err != nil {
				errs = appendBindError(errs, full, err)
				continue
			}
			if ok {
				b.fieldValue(rv, f).Set(v)
			}
		case sliceField:
			if !ok || len(values) == 0 {
				continue
			}
			v, err := resolveSlice(f.resolver, values, f.fieldType)
			if err != nil {
				errs = appendBindError(errs, full, err)
				continue
			}
			b.fieldValue(rv, f).Set(v)
		case jsonField:
			raw := first(values)
			if raw == "" {
				continue
			}
			target := reflect.New(f.fieldType)
			if err := wjson.Unmarshal(bytesconv.S2b(raw), target.Interface()); err != nil {
				hlog.SystemLogger().Infof("跳过参数 %s 的 JSON 解码：%v", full, err)
				continue
			}
			b.fieldValue(rv, f).Set(target.Elem())
		}
	}

	if len(errs) == 0 && b.needValidate {
		if err := b.validator.ValidateStruct(rv.Interface()); err != nil {
			errs = appendBindError(errs, name, err)
		}
	}
	if len(errs) > 0 {
		return rv.Elem().Interface(), errs
	}
	return rv.Elem().Interface(), nil
}

func (b *StructBinder) fieldValue(rv reflect.Value, f *fieldInfo) reflect.Value {
	return decoder.GetFieldValue(rv, f.parentIndex).Field(f.index)
}

// 逐个解析切片元素，空元素取元素类型的零值。
func resolveSlice(res Resolver, values []string, t reflect.Type) (reflect.Value, error) {
	elem, ptrDepth := decoder.Deref(t)
	s := reflect.MakeSlice(elem, len(values), len(values))
	var errs BindErrors
	for i, raw := range values {
		if raw == "" {
			continue
		}
		v, ok, err := resolveTo(res, raw, elem.Elem())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			s.Index(i).Set(v)
		}
	}
	if len(errs) > 0 {
		return reflect.Value{}, errs
	}
	return decoder.ReferenceValue(s, ptrDepth), nil
}

// 复制默认值，避免多个请求共享同一指针或切片底层数组。
func freshCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		return decoder.ReferenceValue(freshCopy(v.Elem()), 1)
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		s := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(s, v)
		return s
	}
	return v
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
