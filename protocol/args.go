package protocol

import (
	"bytes"
	"net/url"

	"github.com/favbox/mvc/internal/bytesconv"
	"github.com/favbox/mvc/internal/nocopy"
)

const (
	argsNoValue  = true
	argsHasValue = false
)

type argsKV struct {
	key     []byte
	value   []byte
	noValue bool
}

// Args 维护有序的键值对参数，同一个键可出现多次。
type Args struct {
	noCopy nocopy.NoCopy

	args []argsKV
	buf  []byte
}

// Set 设置 'key=value' 参数，已有的同名参数被覆盖。
func (a *Args) Set(key, value string) {
	a.args = setArg(a.args, key, value, argsHasValue)
}

// Add 添加键值对参数。
//
// 可以为同一个键添加多个值。
func (a *Args) Add(key, value string) {
	a.args = appendArg(a.args, key, value, argsHasValue)
}

// Reset 清除查询参数。
func (a *Args) Reset() {
	a.args = a.args[:0]
}

// Del 从查询参数中删除指定键的参数。
func (a *Args) Del(key string) {
	a.args = delAllArgs(a.args, key)
}

// Has 返回指定的键是否存在于 Args 中。
func (a *Args) Has(key string) bool {
	for i := range a.args {
		if key == string(a.args[i].key) {
			return true
		}
	}
	return false
}

// Peek 返回指定键的第一个参数值。
func (a *Args) Peek(key string) []byte {
	for i := range a.args {
		kv := &a.args[i]
		if string(kv.key) == key {
			return kv.value
		}
	}
	return nil
}

// PeekExists 返回指定键的参数值及是否存在。
func (a *Args) PeekExists(key string) (string, bool) {
	for i := range a.args {
		kv := &a.args[i]
		if string(kv.key) == key {
			return string(kv.value), true
		}
	}
	return "", false
}

// PeekAll 返回指定键的全部参数值。
func (a *Args) PeekAll(key string) [][]byte {
	var dst [][]byte
	for i := range a.args {
		kv := &a.args[i]
		if string(kv.key) == key {
			dst = append(dst, kv.value)
		}
	}
	return dst
}

// VisitAll 对每个参数执行 f，类似于map。
// f 在返回后不能保留对 key 和 value 的引用。
// 如果需要你得制作 key/value 的副本。
func (a *Args) VisitAll(f func(key, value []byte)) {
	for i := range a.args {
		kv := &a.args[i]
		f(kv.key, kv.value)
	}
}

// Len 返回查询参数的数量。
func (a *Args) Len() int {
	return len(a.args)
}

// String 返回查询参数的字符串表示形式。
func (a *Args) String() string {
	return string(a.QueryString())
}

// QueryString 返回参数的查询字符串。
func (a *Args) QueryString() []byte {
	a.buf = a.AppendBytes(a.buf[:0])
	return a.buf
}

// AppendBytes 附加到 dst 并返回。
func (a *Args) AppendBytes(dst []byte) []byte {
	for i, n := 0, len(a.args); i < n; i++ {
		kv := &a.args[i]
		dst = bytesconv.AppendQuotedArg(dst, kv.key)
		if !kv.noValue {
			dst = append(dst, '=')
			if len(kv.value) > 0 {
				dst = bytesconv.AppendQuotedArg(dst, kv.value)
			}
		}
		if i+1 < n {
			dst = append(dst, '&')
		}
	}
	return dst
}

// ParseBytes 解析包含查询参数的字节切片。
func (a *Args) ParseBytes(b []byte) {
	a.Reset()

	var s argsScanner
	s.b = b

	var kv *argsKV
	a.args, kv = allocArg(a.args)
	for s.next(kv) {
		if len(kv.key) > 0 || len(kv.value) > 0 {
			a.args, kv = allocArg(a.args)
		}
	}
	a.args = a.args[:len(a.args)-1]
}

// AppendValues 将全部参数按出现顺序追加到 dst。
func (a *Args) AppendValues(dst url.Values) {
	a.VisitAll(func(key, value []byte) {
		k := string(key)
		dst[k] = append(dst[k], string(value))
	})
}

type argsScanner struct {
	b []byte
}

func (s *argsScanner) next(kv *argsKV) bool {
	if len(s.b) == 0 {
		return false
	}
	kv.noValue = argsHasValue

	isKey := true
	k := 0
	for i, c := range s.b {
		switch c {
		case '=':
			if isKey {
				isKey = false
				kv.key = decodeArgAppend(kv.key[:0], s.b[:i])
				k = i + 1
			}
		case '&':
			if isKey {
				kv.key = decodeArgAppend(kv.key[:0], s.b[:i])
				kv.value = kv.value[:0]
				kv.noValue = argsNoValue
			} else {
				kv.value = decodeArgAppend(kv.value[:0], s.b[k:i])
			}
			s.b = s.b[i+1:]
			return true
		}
	}

	if isKey {
		kv.key = decodeArgAppend(kv.key[:0], s.b)
		kv.value = kv.value[:0]
		kv.noValue = argsNoValue
	} else {
		kv.value = decodeArgAppend(kv.value[:0], s.b[k:])
	}
	s.b = s.b[len(s.b):]
	return true
}

// 解码源参数字节切片并附加至目标。
func decodeArgAppend(dst, src []byte) []byte {
	if bytes.IndexByte(src, '%') < 0 && bytes.IndexByte(src, '+') < 0 {
		return append(dst, src...)
	}
	return bytesconv.AppendUnquotedArg(dst, src)
}

// 删除切片中所有与指定键相同的的参数。
func delAllArgs(args []argsKV, key string) []argsKV {
	for i, n := 0, len(args); i < n; i++ {
		kv := &args[i]
		if key == string(kv.key) {
			tmp := *kv
			copy(args[i:], args[i+1:])
			n--
			i--
			args[n] = tmp
			args = args[:n]
		}
	}
	return args
}

// 更新或追加参数切片 args 中指定 key 的 value。
func setArg(args []argsKV, key, value string, noValue bool) []argsKV {
	for i := range args {
		kv := &args[i]
		if key == string(kv.key) {
			if noValue {
				kv.value = kv.value[:0]
			} else {
				kv.value = append(kv.value[:0], value...)
			}
			kv.noValue = noValue
			return args
		}
	}
	return appendArg(args, key, value, noValue)
}

func appendArg(args []argsKV, key, value string, noValue bool) []argsKV {
	var kv *argsKV
	args, kv = allocArg(args)
	kv.key = append(kv.key[:0], key...)
	if noValue {
		kv.value = kv.value[:0]
	} else {
		kv.value = append(kv.value[:0], value...)
	}
	kv.noValue = noValue
	return args
}

// 按需扩容参数切片。
//
// 返回扩容后的完整切片及新增元素的指针。
func allocArg(args []argsKV) ([]argsKV, *argsKV) {
	n := len(args)
	if cap(args) > n {
		args = args[:n+1]
	} else {
		args = append(args, argsKV{})
	}
	return args, &args[n]
}
