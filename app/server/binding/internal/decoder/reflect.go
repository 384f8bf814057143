package decoder

import "reflect"

// ReferenceValue 将 T 转为 *T，ptrDepth 为 '*' 的个数。
//
// ptrDepth 为负数时反向解引用。
func ReferenceValue(v reflect.Value, ptrDepth int) reflect.Value {
	switch {
	case ptrDepth > 0:
		for ; ptrDepth > 0; ptrDepth-- {
			vv := reflect.New(v.Type())
			vv.Elem().Set(v)
			v = vv
		}
	case ptrDepth < 0:
		for ; ptrDepth < 0 && v.Kind() == reflect.Ptr; ptrDepth++ {
			v = v.Elem()
		}
	}
	return v
}

// Deref 返回 t 去掉全部指针后的类型及指针层数。
func Deref(t reflect.Type) (reflect.Type, int) {
	var ptrDepth int
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
		ptrDepth++
	}
	return t, ptrDepth
}

// GetNonNilReferenceValue 返回 v 去指针后类型的可设置零值及指针层数。
func GetNonNilReferenceValue(v reflect.Value) (reflect.Value, int) {
	t, ptrDepth := Deref(v.Type())
	return reflect.New(t).Elem(), ptrDepth
}

// GetFieldValue 沿 parentIndex 逐级取得字段所在的结构体值，途经的空指针会被分配。
func GetFieldValue(refValue reflect.Value, parentIndex []int) reflect.Value {
	for _, idx := range parentIndex {
		refValue = settable(refValue).Field(idx)
	}
	return settable(refValue)
}

// 为空指针分配值并逐层解引用。
func settable(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			nonNil, ptrDepth := GetNonNilReferenceValue(v)
			v.Set(ReferenceValue(nonNil, ptrDepth))
		}
		v = v.Elem()
	}
	return v
}
