// Package keypad defines the key state of the 16-key hexadecimal CHIP-8 keypad
// as seen by the interpreter. Mapping physical keys to keypad keys is the job of
// the input collaborators.
package keypad

import (
	"fmt"
)

// Key is either no key or a single pressed keypad key in the range 0x0-0xF.
// The zero value is NoKey.
type Key struct {
	value   uint8
	pressed bool
}

// NoKey represents that no key is currently pressed.
var NoKey = Key{}

// KeyOf returns the key for the given keypad value, only the low nibble is used.
func KeyOf(value uint8) Key {
	return Key{value: value & 0x0F, pressed: true}
}

// Pressed returns whether a key is pressed.
func (k Key) Pressed() bool {
	return k.pressed
}

// Value returns the keypad value of a pressed key.
func (k Key) Value() uint8 {
	return k.value
}

// Is returns whether the given keypad value is currently pressed.
func (k Key) Is(value uint8) bool {
	return k.pressed && k.value == value
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if !k.pressed {
		return "none"
	}
	return fmt.Sprintf("%X", k.value)
}
