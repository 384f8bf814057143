package param

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	ps := Params{{Key: "id", Value: "42"}, {Key: "name", Value: "Alice"}}

	v, ok := ps.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
	assert.Equal(t, "Alice", ps.ByName("name"))

	_, ok = ps.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", ps.ByName("missing"))
}

func TestParamsAppendValues(t *testing.T) {
	dst := url.Values{"id": {"1"}}
	Params{{Key: "id", Value: "42"}, {Key: "tab", Value: "info"}}.AppendValues(dst)
	assert.Equal(t, url.Values{"id": {"1", "42"}, "tab": {"info"}}, dst)

	ps := FromMap(map[string]string{"id": "7"})
	assert.Equal(t, "7", ps.ByName("id"))
}
