package result

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/favbox/mvc/protocol"
	"github.com/favbox/mvc/protocol/consts"
)

// StrongETag 返回内容 b 的强校验 ETag，取 sha256 摘要的前 16 字节。
func StrongETag(b []byte) string {
	sum := sha256.Sum256(b)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// WeakETag 返回内容 b 的弱校验 ETag。
func WeakETag(b []byte) string {
	return "W/" + StrongETag(b)
}

// Matches 报告请求的 If-None-Match 是否命中 etag，按弱比较规则忽略 W/ 前缀。
func Matches(req *protocol.Request, etag string) bool {
	if req == nil || etag == "" {
		return false
	}
	header := req.Header.Get(consts.HeaderIfNoneMatch)
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// Conditional 在客户端缓存仍然有效时返回从载荷读取 ETag 的 NotModified，
// 否则返回附带 ETag 标头的 next。
func Conditional(ctx context.Context, req *protocol.Request, etag string, next Result) Result {
	if Matches(req, etag) {
		return NotModifiedETag(ctx, etag)
	}
	return WithHeader(next, consts.HeaderETag, etag)
}
