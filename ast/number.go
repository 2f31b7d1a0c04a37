// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jlax"

	"go4.org/mem"
)

// scanNumber parses a number or bare literal at the cursor: optional sign,
// integer, fraction, and exponent parts, plus the relaxed extensions —
// hexadecimal integers, rational fractions A/B, and the keyword literals
// true, false, null, NaN, Infinity, nan, inf, and None.
func (p *parser) scanNumber() Value {
	pos := p.src.Offset()
	var sign rune
	switch p.src.Peek() {
	case '-':
		sign = '-'
		p.src.Next()
	case '+':
		sign = '+'
		p.report("leading '+' in number", jlax.JSON5)
		p.src.Next()
	}

	if isLetter(p.src.Peek()) {
		return p.scanLiteral(pos, sign)
	}

	// A leading sign does not apply to hex integers.
	if p.src.Peek() == '0' && (p.src.PeekAt(1) == 'x' || p.src.PeekAt(1) == 'X') {
		return p.scanHexNumber(pos)
	}

	var sb strings.Builder
	if sign == '-' {
		sb.WriteByte('-')
	}
	intDigits := p.digits(&sb)
	isFloat := false

	if p.src.Peek() == '.' {
		if intDigits == 0 {
			p.report("number begins with '.'", jlax.JSON5)
		}
		sb.WriteByte('.')
		p.src.Next()
		if p.digits(&sb)+intDigits == 0 {
			p.report("expected digits in number", jlax.Fatal)
			return Null{pos: pos}
		}
		isFloat = true
	} else if intDigits == 0 {
		p.report(fmt.Sprintf("unexpected character %s", jlax.CharLabel(p.src.Peek())), jlax.Fatal)
		return Null{pos: pos}
	}

	if ch := p.src.Peek(); ch == 'e' || ch == 'E' {
		sb.WriteByte(byte(ch))
		p.src.Next()
		if s := p.src.Peek(); s == '+' || s == '-' {
			sb.WriteByte(byte(s))
			p.src.Next()
		}
		if p.digits(&sb) == 0 {
			p.report("incomplete exponent in number", jlax.Fatal)
			return Null{pos: pos}
		}
		isFloat = true
	}

	num := p.finishNumber(pos, sb.String(), isFloat)
	if p.src.Peek() == '/' {
		num = p.scanRational(pos, num)
	}
	return num
}

// digits consumes a run of decimal digits into sb, reporting how many.
func (p *parser) digits(sb *strings.Builder) int {
	n := 0
	for {
		ch := p.src.Peek()
		if ch < '0' || ch > '9' {
			return n
		}
		sb.WriteByte(byte(ch))
		p.src.Next()
		n++
	}
}

// finishNumber converts the collected text into an Integer or Number node.
// An integer literal that overflows int64 silently falls back to floating
// point.
func (p *parser) finishNumber(pos int, text string, isFloat bool) Value {
	if !isFloat {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Integer{pos: pos, value: v}
		}
	}
	v, _ := strconv.ParseFloat(text, 64)
	return Number{pos: pos, value: v}
}

// scanHexNumber parses a 0x literal at the cursor.
func (p *parser) scanHexNumber(pos int) Value {
	p.report("hexadecimal number", jlax.JSON5)
	p.src.Next() // '0'
	p.src.Next() // 'x'

	var i int64
	var f float64
	n := 0
	overflow := false
	for {
		d := hexVal(p.src.Peek())
		if d < 0 {
			break
		}
		p.src.Next()
		n++
		if i > (math.MaxInt64-int64(d))/16 {
			overflow = true
		} else {
			i = i*16 + int64(d)
		}
		f = f*16 + float64(d)
	}
	if n == 0 {
		p.report("expected hex digits", jlax.Fatal)
		return Null{pos: pos}
	}
	if overflow {
		return Number{pos: pos, value: f}
	}
	return Integer{pos: pos, value: i}
}

// scanRational handles the rational form A/B: the denominator is itself a
// full number, parsed recursively, and the result is the quotient.
func (p *parser) scanRational(pos int, num Value) Value {
	p.report("rational fraction", jlax.Bad)
	p.src.Next() // '/'
	den := p.scanNumber()
	return Number{pos: pos, value: toFloat(num) / toFloat(den)}
}

// toFloat converts a numeric node to its floating-point value. Non-numeric
// nodes (the null produced by a failed literal) become NaN.
func toFloat(v Value) float64 {
	switch t := v.(type) {
	case Integer:
		return float64(t.value)
	case Number:
		return t.value
	}
	return math.NaN()
}

// scanLiteral matches a bare keyword at the cursor. The first letters select
// the only keyword that may follow; any other spelling is fatal. A sign is
// meaningful only before the non-finite numeric keywords; the rest reject it.
func (p *parser) scanLiteral(pos int, sign rune) Value {
	neg := sign == '-'
	var word []byte
	for isLetter(p.src.Peek()) {
		word = append(word, byte(p.src.Next()))
	}
	got := mem.B(word)
	switch {
	case got.EqualString("true"):
		p.reportSign(sign, "'true'")
		return Bool{pos: pos, value: true}
	case got.EqualString("false"):
		p.reportSign(sign, "'false'")
		return Bool{pos: pos, value: false}
	case got.EqualString("null"):
		p.reportSign(sign, "'null'")
		return Null{pos: pos}
	case got.EqualString("NaN"):
		p.report("NaN literal", jlax.NaNInf)
		return Number{pos: pos, value: math.NaN()}
	case got.EqualString("Infinity"):
		p.report("Infinity literal", jlax.NaNInf)
		return Number{pos: pos, value: inf(neg)}
	case got.EqualString("nan"):
		p.report("'nan' literal", jlax.Bad)
		return Number{pos: pos, value: math.NaN()}
	case got.EqualString("inf"):
		p.report("'inf' literal", jlax.Bad)
		return Number{pos: pos, value: inf(neg)}
	case got.EqualString("None"):
		p.reportSign(sign, "'None'")
		p.report("'None' literal", jlax.Bad)
		return Null{pos: pos}
	}
	p.report(fmt.Sprintf("expected literal starting with %q to be %s",
		rune(word[0]), expectLiteral(word)), jlax.Fatal)
	return Null{pos: pos}
}

// reportSign flags a sign consumed ahead of a keyword that has no numeric
// value.
func (p *parser) reportSign(sign rune, word string) {
	if sign != 0 {
		p.report(fmt.Sprintf("'%c' sign before %s", sign, word), jlax.Bad)
	}
}

// expectLiteral names the keyword a literal beginning like word would have
// to be.
func expectLiteral(word []byte) string {
	switch word[0] {
	case 't':
		return "true"
	case 'f':
		return "false"
	case 'n':
		if len(word) > 1 && word[1] == 'a' {
			return "nan"
		}
		return "null"
	case 'N':
		if len(word) > 1 && word[1] == 'o' {
			return "None"
		}
		return "NaN"
	case 'i':
		return "inf"
	case 'I':
		return "Infinity"
	}
	return "a keyword"
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func inf(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
