package protocol

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/favbox/mvc/protocol/consts"
)

func TestResponseBody(t *testing.T) {
	resp := AcquireResponse()
	defer ReleaseResponse(resp)

	resp.SetBodyString("a")
	resp.AppendBodyString("b")
	resp.AppendBody([]byte("c"))
	fmt.Fprint(resp.BodyWriter(), "d")
	assert.Equal(t, "abcd", string(resp.Body()))

	resp.SetBody([]byte("x"))
	assert.Equal(t, "x", string(resp.Body()))

	resp.ResetBody()
	assert.Empty(t, resp.Body())
}

func TestResponseStatus(t *testing.T) {
	var resp Response
	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.False(t, resp.MustSkipBody())

	resp.SetStatusCode(consts.StatusNotModified)
	assert.True(t, resp.MustSkipBody())
	resp.SetStatusCode(consts.StatusNoContent)
	assert.True(t, resp.MustSkipBody())

	resp.Header.Set(consts.HeaderLocation, "/home")
	resp.SetBodyString("body")
	resp.Reset()
	assert.Equal(t, consts.StatusOK, resp.StatusCode())
	assert.Empty(t, resp.Header.Get(consts.HeaderLocation))
	assert.Empty(t, resp.Body())
}
