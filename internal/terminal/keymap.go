package terminal

import (
	"unicode"

	"github.com/retroenv/retrochip8/internal/keypad"
)

// keymap maps the left side of a QWERTY keyboard to the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyForRune returns the keypad key for a typed character.
func KeyForRune(ch rune) (keypad.Key, bool) {
	value, ok := keymap[unicode.ToLower(ch)]
	if !ok {
		return keypad.NoKey, false
	}
	return keypad.KeyOf(value), true
}
