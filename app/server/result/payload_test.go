package result

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload(t *testing.T) {
	_, ok := PayloadFrom(context.Background())
	assert.False(t, ok)
	_, ok = PayloadFrom(nil) //nolint:staticcheck
	assert.False(t, ok)
	ClearPayload(context.Background())

	ctx := WithPayload(nil) //nolint:staticcheck
	p, ok := PayloadFrom(ctx)
	assert.True(t, ok)
	assert.True(t, p.IsEmpty())

	p.Message = "hello"
	p.ETag = "abc"
	p.Set("user", 7)
	v, exists := p.Get("user")
	assert.True(t, exists)
	assert.Equal(t, 7, v)
	assert.False(t, p.IsEmpty())

	ClearPayload(ctx)
	assert.True(t, p.IsEmpty())
	_, exists = p.Get("user")
	assert.False(t, exists)
}

func TestPayloadPerContext(t *testing.T) {
	parent := WithPayload(context.Background())
	child := WithPayload(parent)
	pp, _ := PayloadFrom(parent)
	cp, _ := PayloadFrom(child)
	assert.NotSame(t, pp, cp)

	cp.ETag = "child"
	assert.Equal(t, "", pp.ETag)
}
