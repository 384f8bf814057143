package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() {}

func TestNameOfFunction(t *testing.T) {
	assert.Equal(t, "utils.sample", NameOfFunction(sample))
	assert.Equal(t, "utils.TestNameOfFunction", NameOfFunction(TestNameOfFunction))
	assert.Equal(t, "", NameOfFunction(42))
	assert.Equal(t, "", NameOfFunction((func())(nil)))
}

func TestH(t *testing.T) {
	h := H{"a": 1}
	assert.Equal(t, map[string]any{"a": 1}, map[string]any(h))
}
