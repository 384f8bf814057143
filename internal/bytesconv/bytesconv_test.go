package bytesconv

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestB2sAndS2b(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", B2s(nil))
	assert.Equal(t, "wind", B2s([]byte("wind")))
	assert.Nil(t, S2b(""))
	assert.Equal(t, []byte("wind"), S2b("wind"))
}

func TestAppendQuotedArg(t *testing.T) {
	t.Parallel()

	// 与 url.QueryEscape 同步
	allCases := make([]byte, 256)
	for i := 0; i < 256; i++ {
		allCases[i] = byte(i)
	}
	res := B2s(AppendQuotedArg(nil, allCases))
	assert.Equal(t, url.QueryEscape(string(allCases)), res)
}

func TestAppendUnquotedArg(t *testing.T) {
	t.Parallel()

	for _, v := range []struct {
		in, out string
	}{
		{"abc", "abc"},
		{"a+b", "a b"},
		{"%E4%BD%A0%E5%A5%BD", "你好"},
		{"100%", "100%"},
		{"%zz", "%zz"},
		{"u.name%3DAlice", "u.name=Alice"},
	} {
		assert.Equal(t, v.out, string(AppendUnquotedArg(nil, []byte(v.in))))
	}
}
