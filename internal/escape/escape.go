// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape converts between raw strings and the contents of JSON
// string literals.
package escape

import (
	"errors"
	"unicode/utf8"

	"go4.org/mem"
)

var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel, sizes the array
}

const hexDigit = "0123456789abcdef"

// Quote escapes the contents of src for inclusion in a JSON string literal.
// The enclosing quotation marks are not added.
func Quote(src mem.RO) []byte {
	out := make([]byte, 0, src.Len())
	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r == '"' || r == '\\':
			out = append(out, '\\', byte(r))
		case r < ' ':
			if b := shortEsc[r]; b != 0 {
				out = append(out, '\\', b)
			} else {
				out = append(out, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == utf8.RuneError:
			out = append(out, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			// Legal in JSON strings, but breaks JavaScript consumers.
			out = append(out, `\u202`...)
			out = append(out, hexDigit[r&15])
		default:
			var buf [utf8.UTFMax]byte
			out = append(out, buf[:utf8.EncodeRune(buf[:], r)]...)
		}
	}
	return out
}

// Unquote decodes the contents of a JSON string literal, with the enclosing
// quotation marks already removed. Escape sequences are replaced by the text
// they denote. An invalid escape decodes as the Unicode replacement rune; an
// escape truncated by the end of input is an error.
func Unquote(src mem.RO) ([]byte, error) {
	out := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(out, src), nil
		}
		out = mem.Append(out, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("truncated escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			out = append(out, byte(r))
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("truncated Unicode escape")
			}
			v, ok := hex4(src)
			src = src.SliceFrom(4)
			if !ok {
				v = utf8.RuneError
			}
			out = utf8.AppendRune(out, v)
		default:
			out = utf8.AppendRune(out, utf8.RuneError)
		}
	}
}

// hex4 decodes the first four bytes of data as hexadecimal digits.
func hex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		d := hexVal(data.At(i))
		if d < 0 {
			return 0, false
		}
		v = v<<4 | rune(d)
	}
	return v, true
}

func hexVal(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b-'a') + 10
	case 'A' <= b && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
