// Package codec converts between Go strings and the fixed-width code units
// stored in string buffers. Narrow (1-byte) units carry Windows-1252 text,
// matching the legacy narrow-string convention; wide (2-byte) units carry
// UTF-16 with full surrogate-pair handling.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/text/encoding/charmap"
)

// CodeUnit constrains the storage unit of a string buffer to the supported
// widths: narrow bytes or wide 16-bit units.
type CodeUnit interface {
	~byte | ~uint16
}

// asciiThreshold is the first code point that is not plain ASCII.
const asciiThreshold = 0x80

// Width returns the size of C in bytes.
func Width[C CodeUnit]() int {
	var c C
	return int(unsafe.Sizeof(c))
}

// EncodeGoString converts s into code units. Narrow units use Windows-1252;
// a rune with no Windows-1252 mapping is an error rather than a silent
// substitution. Wide units use UTF-16, encoding supplementary-plane runes as
// surrogate pairs.
func EncodeGoString[C CodeUnit](s string) ([]C, error) {
	if Width[C]() == 1 {
		out := make([]C, 0, len(s))
		for _, r := range s {
			b, ok := charmap.Windows1252.EncodeRune(r)
			if !ok {
				return nil, fmt.Errorf("codec: rune %q has no narrow code unit", r)
			}
			out = append(out, C(b))
		}
		return out, nil
	}

	u := utf16.Encode([]rune(s))
	out := make([]C, len(u))
	for i, v := range u {
		out[i] = C(v)
	}
	return out, nil
}

// DecodeUnits converts code units back into a Go string. Narrow units decode
// as Windows-1252 (total: every byte maps to a rune). Wide units take an
// ASCII fast path and otherwise decode as UTF-16.
func DecodeUnits[C CodeUnit](units []C) string {
	if len(units) == 0 {
		return ""
	}

	if Width[C]() == 1 {
		var b strings.Builder
		b.Grow(len(units))
		for _, c := range units {
			b.WriteRune(charmap.Windows1252.DecodeByte(byte(c)))
		}
		return b.String()
	}

	// Fast path: all-ASCII wide text, the common case for identifiers.
	ascii := true
	for _, c := range units {
		if uint16(c) >= asciiThreshold {
			ascii = false
			break
		}
	}
	if ascii {
		var b strings.Builder
		b.Grow(len(units))
		for _, c := range units {
			b.WriteByte(byte(c))
		}
		return b.String()
	}

	u := make([]uint16, len(units))
	for i, c := range units {
		u[i] = uint16(c)
	}
	return string(utf16.Decode(u))
}
