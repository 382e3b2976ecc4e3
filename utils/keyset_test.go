package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	assert.True(t, s.Add("ChIJ1"), "first Add should return true")
	assert.False(t, s.Add("ChIJ1"), "second Add of same key should return false")
	assert.True(t, s.Add("ChIJ2"))
	assert.Equal(t, 2, s.Size())
}

func TestKeySetEmpty(t *testing.T) {
	assert.Zero(t, NewKeySet().Size())
}
