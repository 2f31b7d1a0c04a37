// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"unicode"
	"unicode/utf16"

	"github.com/creachadair/jlax"
)

// scanString decodes the quoted string at the cursor. The content returned
// is partial if the literal was cut short by a bare newline, a NUL, an
// invalid escape, or the end of input.
func (p *parser) scanString() string {
	quote := p.src.Peek()
	if quote == '\'' {
		p.report("single-quoted string", jlax.JSON5)
		if p.cfg.Tolerance < jlax.JSON5 {
			p.src.Next()
			return ""
		}
	}
	p.src.Next() // opening quote

	var buf []uint16
	for p.src.More() {
		switch ch := p.src.Peek(); {
		case ch == quote:
			p.src.Next()
			return decode(buf)
		case ch == '\n':
			p.report("string contains newline", jlax.Bad)
			return decode(buf)
		case ch == 0:
			p.report("NUL character in string", jlax.Fatal)
			return decode(buf)
		case ch == '\\':
			units, keep, stop := p.scanEscape(quote)
			if stop {
				return decode(buf)
			}
			if keep {
				buf = append(buf, units...)
			}
		default:
			if ch < 0x20 {
				p.report("control character in string", jlax.OK)
			}
			buf = append(buf, uint16(p.src.Next()))
		}
	}
	p.report("unterminated string", jlax.Bad)
	return decode(buf)
}

// scanEscape decodes one backslash escape at the cursor and returns the code
// units it denotes. keep is false for escapes that contribute nothing (a
// line continuation); stop is true when the escape terminates the literal.
func (p *parser) scanEscape(quote rune) (units []uint16, keep, stop bool) {
	p.src.Next() // backslash
	if !p.src.More() {
		p.report("unterminated string", jlax.Bad)
		return nil, false, true
	}
	switch ch := p.src.Peek(); ch {
	case quote, '\\', '/':
		p.src.Next()
		return []uint16{uint16(ch)}, true, false
	case 'b':
		p.src.Next()
		return []uint16{'\b'}, true, false
	case 'f':
		p.src.Next()
		return []uint16{'\f'}, true, false
	case 'n':
		p.src.Next()
		return []uint16{'\n'}, true, false
	case 'r':
		p.src.Next()
		return []uint16{'\r'}, true, false
	case 't':
		p.src.Next()
		return []uint16{'\t'}, true, false
	case 'u':
		p.src.Next()
		v, ok := p.scanHex(4)
		if !ok {
			p.report("invalid Unicode escape", jlax.Fatal)
			return nil, false, true
		}
		return p.escapedUnit(v)
	case 'x':
		p.report(`'\x' escape`, jlax.JSON5)
		p.src.Next()
		v, ok := p.scanHex(2)
		if !ok {
			p.report("invalid hex escape", jlax.Fatal)
			return nil, false, true
		}
		return p.escapedUnit(v)
	case '\n':
		p.report("escaped newline", jlax.JSON5)
		p.src.Next()
		return nil, false, false
	default:
		p.report(fmt.Sprintf("invalid escape '\\%c'", ch), jlax.Bad)
		p.src.Next()
		return []uint16{uint16(ch)}, true, false
	}
}

// escapedUnit applies the control-character policy to a code unit decoded
// from a numeric escape.
func (p *parser) escapedUnit(v rune) ([]uint16, bool, bool) {
	switch {
	case v == 0:
		p.report("NUL character in string", jlax.Fatal)
		return nil, false, true
	case v == '\n':
		p.report("string contains newline", jlax.Bad)
	case v < 0x20:
		p.report("control character in string", jlax.OK)
	}
	return []uint16{uint16(v)}, true, false
}

// scanKey scans an object key at the cursor: a quoted string, or an unquoted
// identifier under the relaxed grammar. ok is false if the cursor does not
// start a key; the offending character has already been reported.
func (p *parser) scanKey() (key string, ok bool) {
	switch ch := p.src.Peek(); ch {
	case '"', '\'':
		return p.scanString(), true
	default:
		r, _ := p.src.PeekRune()
		if ch == '\\' || isIdentStart(r) {
			p.report("unquoted object key", jlax.JSON5)
			return p.scanIdent(), true
		}
		p.report(fmt.Sprintf("unexpected %s in object", jlax.CharLabel(r)), jlax.Bad)
		return "", false
	}
}

// scanIdent scans an unquoted identifier, resolving \uXXXX escapes to their
// literal characters. An escape must name an identifier character itself.
func (p *parser) scanIdent() string {
	var buf []uint16
	for p.src.More() {
		if p.src.Peek() == '\\' && p.src.PeekAt(1) == 'u' {
			p.src.Next()
			p.src.Next()
			v, ok := p.scanHex(4)
			if !ok {
				p.report("invalid Unicode escape", jlax.Fatal)
				break
			}
			if ident := isIdentPart(v) && (len(buf) > 0 || isIdentStart(v)); !ident {
				p.report("escape is not an identifier character", jlax.Bad)
			}
			buf = append(buf, uint16(v))
			continue
		}
		r, w := p.src.PeekRune()
		if len(buf) == 0 {
			if !isIdentStart(r) {
				break
			}
		} else if !isIdentPart(r) {
			break
		}
		for i := 0; i < w; i++ {
			buf = append(buf, uint16(p.src.Next()))
		}
	}
	return decode(buf)
}

// scanHex consumes exactly n hexadecimal digits.
func (p *parser) scanHex(n int) (rune, bool) {
	var v rune
	for i := 0; i < n; i++ {
		d := hexVal(p.src.Peek())
		if d < 0 {
			return 0, false
		}
		p.src.Next()
		v = v<<4 | rune(d)
	}
	return v, true
}

func hexVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

// decode converts collected code units to a string, combining surrogate
// pairs.
func decode(buf []uint16) string { return string(utf16.Decode(buf)) }

// isIdentStart reports whether r may begin an unquoted key.
func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

// isIdentPart reports whether r may continue an unquoted key: letters,
// marks, digits, and connector punctuation, plus '_' and '$'.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
