// Package bytesconv 提供字节切片与字符串之间的零分配转换及参数转义工具。
package bytesconv

import (
	"net/url"
	"unsafe"
)

// B2s 将字节切片转为字符串，且不分配内存。
//
// 注意：返回的字符串与 b 共享底层数组，b 被修改后字符串也会改变。
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// S2b 将字符串转为字节切片，且不分配内存。
//
// 注意：返回的切片不可修改。
func S2b(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// AppendQuotedArg 向 dst 追加转义后的 src 参数。等效 url.QueryEscape。
func AppendQuotedArg(dst, src []byte) []byte {
	return append(dst, url.QueryEscape(B2s(src))...)
}

// AppendUnquotedArg 向 dst 追加解码后的 src 参数，'+' 视为空格。
//
// 非法的百分号转义原样保留。
func AppendUnquotedArg(dst, src []byte) []byte {
	for i, n := 0, len(src); i < n; i++ {
		c := src[i]
		switch {
		case c == '%' && i+2 < n && isHex(src[i+1]) && isHex(src[i+2]):
			dst = append(dst, unhex(src[i+1])<<4|unhex(src[i+2]))
			i += 2
		case c == '+':
			dst = append(dst, ' ')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
