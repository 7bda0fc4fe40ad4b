package cpu

import (
	"strings"
)

// parseNumber parses a decimal or $-prefixed hexadecimal literal.
//
// The returned size is the operand width in bytes: one or two hex
// digits, or a decimal up to 0xFF, fit in a single byte.
func parseNumber(word string) (value uint16, size int, err error) {
	digits := word
	base := 10

	if strings.HasPrefix(word, "$") {
		digits = word[1:]
		base = 16

		switch len(digits) {
		case 0:
			err = ErrNumberInvalid(word)
			return
		case 1, 2:
			size = 1
		case 3, 4:
			size = 2
		default:
			err = ErrNumberTooLarge(word)
			return
		}
	}

	if len(digits) == 0 {
		err = ErrNumberInvalid(word)
		return
	}

	var num int
	for _, c := range strings.ToLower(digits) {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			digit = int(c-'a') + 10
		default:
			err = ErrNumberInvalid(word)
			return
		}
		if num <= 0xffff {
			num = num*base + digit
		}
	}

	if num > 0xffff {
		err = ErrNumberTooLarge(word)
		return
	}

	if base == 10 {
		size = 1
		if num > 0xff {
			size = 2
		}
	}

	value = uint16(num)
	return
}

// isLabel reports whether word is a valid identifier.
func isLabel(word string) bool {
	if len(word) == 0 {
		return false
	}

	for n, c := range word {
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case n > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}

	return true
}
