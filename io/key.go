package io

// Key codes written to the keypress cell for the arrow keys.
const (
	KEY_UP    = byte('w')
	KEY_LEFT  = byte('a')
	KEY_DOWN  = byte('s')
	KEY_RIGHT = byte('d')
)

const (
	ASCII_ESC = 0x1b
	ASCII_ETX = 0x03
)

// DecodeKey decodes the first key of a terminal input sequence.
//
// Arrow key escape sequences map to w, a, s and d. Printable bytes in
// 0x20 through 0x7F are returned as is. The size is the number of input
// bytes consumed, and is non-zero whenever input is non-empty.
func DecodeKey(input []byte) (key byte, size int, ok bool) {
	if len(input) == 0 {
		return
	}

	c := input[0]
	size = 1

	switch {
	case c == ASCII_ESC:
		if len(input) < 3 || (input[1] != '[' && input[1] != 'O') {
			return
		}
		size = 3
		switch input[2] {
		case 'A':
			key = KEY_UP
		case 'B':
			key = KEY_DOWN
		case 'C':
			key = KEY_RIGHT
		case 'D':
			key = KEY_LEFT
		default:
			return
		}
		ok = true
	case c >= 0x20 && c <= 0x7f:
		key = c
		ok = true
	}

	return
}
