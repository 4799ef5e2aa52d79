package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNoKey(t *testing.T) {
	var k Key

	assert.False(t, k.Pressed())
	assert.Equal(t, NoKey, k)
	assert.False(t, k.Is(0))
	assert.Equal(t, "none", k.String())
}

func TestKeyOf(t *testing.T) {
	k := KeyOf(0x7)

	assert.True(t, k.Pressed())
	assert.Equal(t, uint8(0x7), k.Value())
	assert.True(t, k.Is(0x7))
	assert.False(t, k.Is(0x8))
	assert.Equal(t, "7", k.String())

	// only the low nibble is kept
	assert.Equal(t, uint8(0xA), KeyOf(0x1A).Value())
}
