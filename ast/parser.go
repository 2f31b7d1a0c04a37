// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"time"
	"unicode"

	"github.com/creachadair/jlax"
)

// maxDepth bounds structural recursion so that adversarially nested input
// fails predictably instead of exhausting the call stack.
const maxDepth = 512

// A Result is the outcome of one parse session: a best-effort tree, the lint
// log of deviations above the configured tolerance, the worst severity
// encountered (logged or not), and whether a fatal deviation occurred.
type Result struct {
	Value    Value
	Lints    []jlax.Lint
	Severity jlax.Severity
	Fatal    bool
}

// Parse parses a complete document from input. The input must hold exactly
// one value, optionally surrounded by insignificant characters; trailing
// garbage is a Bad deviation, but the parsed value is still returned.
//
// A Result is returned even on error. The error is non-nil exactly when the
// Config's FailFast or FailOnFatal policy aborted the parse; it then has
// concrete type *jlax.SyntaxError, and the Result carries whatever had been
// collected before the abort (its Value may be nil).
func Parse(input string, cfg jlax.Config) (*Result, error) {
	return run(input, cfg, (*parser).parseDocument)
}

// ParseLines parses input as a sequence of newline-delimited documents and
// collects their values into an array. Each line must hold exactly one
// complete value: a value spanning more than one line, or a line holding more
// than one value, is a fatal deviation.
func ParseLines(input string, cfg jlax.Config) (*Result, error) {
	return run(input, cfg, (*parser).parseLines)
}

func run(input string, cfg jlax.Config, root func(*parser) Value) (res *Result, err error) {
	p := &parser{src: jlax.NewSource(input), cfg: cfg}
	res = &Result{}
	defer func() {
		res.Lints = p.lints
		res.Severity = p.worst
		res.Fatal = p.fatal
		if v := recover(); v != nil {
			se, ok := v.(*jlax.SyntaxError)
			if !ok {
				panic(v)
			}
			err = se
		}
	}()
	res.Value = root(p)
	return res, nil
}

// A parser is the mutable state of one parse session. It is created fresh by
// each top-level call and owned exclusively by it; concurrent parses use
// independent sessions sharing only the immutable Config.
type parser struct {
	src   *jlax.Source
	cfg   jlax.Config
	worst jlax.Severity
	lints []jlax.Lint
	fatal bool
}

// report is the choke point through which every deviation from the strict
// grammar funnels. It advances the worst-severity tracker, then either
// tolerates the deviation silently, appends a lint entry, or aborts the
// parse by panicking with a *jlax.SyntaxError (recovered by the drivers),
// per the session Config. It reports whether sev is fatal, letting callers
// short-circuit.
func (p *parser) report(msg string, sev jlax.Severity) bool {
	if sev > p.worst {
		p.worst = sev
	}
	if sev == jlax.Fatal {
		p.fatal = true
	}
	tol := p.cfg.Tolerance
	if tol > jlax.JSON5 {
		tol = jlax.JSON5
	}
	if sev > tol {
		if p.cfg.FailFast || (sev == jlax.Fatal && p.cfg.FailOnFatal) {
			panic(&jlax.SyntaxError{
				Message:  msg,
				Offset:   p.src.Offset(),
				Char:     p.src.Peek(),
				Severity: sev,
			})
		}
		p.lints = append(p.lints, jlax.Lint{
			Message:  msg,
			Offset:   p.src.Offset(),
			Char:     p.src.Peek(),
			Severity: sev,
		})
	}
	return sev == jlax.Fatal
}

func (p *parser) parseDocument() Value {
	p.skipPadding()
	if !p.src.More() {
		p.report("empty input", jlax.Fatal)
		return Null{}
	}
	v := p.parseValue(0)
	p.skipPadding()
	if p.src.More() && !p.fatal {
		p.report("unexpected characters after the document", jlax.Bad)
	}
	return v
}

func (p *parser) parseLines() Value {
	arr := new(Array)
	p.skipPadding()
	if !p.src.More() {
		p.report("empty input", jlax.Fatal)
		return arr
	}
	last := p.src.Lines() // forgive line breaks before the first value
	for !p.fatal {
		p.skipPadding()
		if !p.src.More() {
			break
		}
		pre := p.src.Lines() - last // breaks ahead of this value
		arr.Values = append(arr.Values, p.parseValue(0))
		in := p.src.Lines() - last - pre // breaks inside the value

		// Each value after the first must be preceded by exactly one line
		// break, and no value may contain one.
		want := 0
		if len(arr.Values) > 1 {
			want = 1
		}
		switch {
		case in > 0:
			p.report("value spans multiple lines", jlax.Fatal)
		case pre > want:
			p.report("blank line between values", jlax.Fatal)
		case pre < want:
			p.report("more than one value on a line", jlax.Fatal)
		}
		last = p.src.Lines()
	}
	return arr
}

// parseValue consumes a single value of any type at the cursor.
func (p *parser) parseValue(depth int) Value {
	p.skipPadding()
	pos := p.src.Offset()
	if !p.src.More() {
		p.report("unexpected end of input", jlax.Fatal)
		return Null{pos: pos}
	}
	switch p.src.Peek() {
	case '{':
		return p.parseObject(depth)
	case '[':
		return p.parseArray(depth)
	case '"', '\'':
		return p.stringValue(pos, p.scanString())
	default:
		return p.scanNumber()
	}
}

// stringValue wraps a decoded string as a node, retagging it as a date or
// datetime when detection is enabled. Detection never reports: a string that
// fails the shape or calendar check stays a plain string.
func (p *parser) stringValue(pos int, s string) Value {
	if p.cfg.DetectDates {
		switch n := len(s); {
		case n == 10:
			if t, err := time.Parse(dateLayout, s); err == nil {
				return Date{pos: pos, value: t}
			}
		case n >= 19 && n <= 23:
			if t, err := time.Parse(dateTimeLayout, s); err == nil {
				return DateTime{pos: pos, value: t}
			}
		}
	}
	return String{pos: pos, value: s}
}

// parseArray consumes an array at the cursor. The closing bracket may be
// missing or mismatched; the elements collected so far are returned in every
// case.
func (p *parser) parseArray(depth int) Value {
	arr := &Array{pos: p.src.Offset()}
	if depth >= maxDepth {
		p.report("structure nested too deeply", jlax.Fatal)
		return arr
	}
	p.src.Next() // '['
	first, comma := true, false
	for !p.fatal {
		p.skipPadding()
		if !p.src.More() {
			p.report("unexpected end of input in array", jlax.Bad)
			return arr
		}
		switch p.src.Peek() {
		case ']':
			if comma {
				p.report("trailing comma", jlax.JSON5)
			}
			p.src.Next()
			return arr
		case '}':
			p.report("'}' closing an array", jlax.Bad)
			p.src.Next()
			return arr
		case ',':
			if first || comma {
				p.report("misplaced comma", jlax.Bad)
			}
			p.src.Next()
			comma = true
		default:
			if !first && !comma {
				p.report("missing comma between values", jlax.Bad)
			}
			arr.Values = append(arr.Values, p.parseValue(depth+1))
			first, comma = false, false
		}
	}
	return arr
}

// parseObject consumes an object at the cursor, using the same skeleton as
// parseArray with a key and colon ahead of each value. A repeated key is a
// Bad deviation and the later value wins.
func (p *parser) parseObject(depth int) Value {
	obj := &Object{pos: p.src.Offset()}
	if depth >= maxDepth {
		p.report("structure nested too deeply", jlax.Fatal)
		return obj
	}
	p.src.Next() // '{'
	first, comma := true, false
	for !p.fatal {
		p.skipPadding()
		if !p.src.More() {
			p.report("unexpected end of input in object", jlax.Bad)
			return obj
		}
		switch p.src.Peek() {
		case '}':
			if comma {
				p.report("trailing comma", jlax.JSON5)
			}
			p.src.Next()
			return obj
		case ']':
			p.report("']' closing an object", jlax.Bad)
			p.src.Next()
			return obj
		case ',':
			if first || comma {
				p.report("misplaced comma", jlax.Bad)
			}
			p.src.Next()
			comma = true
		default:
			if !first && !comma {
				p.report("missing comma between members", jlax.Bad)
			}
			pos := p.src.Offset()
			key, ok := p.scanKey()
			if !ok {
				p.src.Next() // resync past the offender
				continue
			}
			p.skipPadding()
			if p.src.Peek() == ':' {
				p.src.Next()
			} else {
				p.report("missing ':' after object key", jlax.Bad)
				p.skipPadding()
				if p.src.Peek() == ':' {
					p.src.Next()
				}
			}
			v := p.parseValue(depth + 1)
			if m := obj.Find(key); m != nil {
				p.report(fmt.Sprintf("duplicate object key %q", key), jlax.Bad)
				m.Value = v
			} else {
				obj.Members = append(obj.Members, &Member{pos: pos, Key: key, Value: v})
			}
			first, comma = false, false
		}
	}
	return obj
}

// skipPadding consumes insignificant characters at the cursor: ASCII
// whitespace always, comments and relaxed Unicode space or format characters
// per their dialect tiers.
func (p *parser) skipPadding() {
	for p.src.More() && !p.fatal {
		switch p.src.Peek() {
		case ' ', '\t', '\r', '\n':
			p.src.Next()
		case '/':
			if next := p.src.PeekAt(1); next != '/' && next != '*' {
				return
			}
			p.skipComment()
		case '#':
			p.report("'#' comment", jlax.Bad)
			p.skipLine()
		default:
			r, w := p.src.PeekRune()
			if !isPadRune(r) {
				return
			}
			p.report("non-standard whitespace", jlax.JSON5)
			for i := 0; i < w; i++ {
				p.src.Next()
			}
		}
	}
}

// skipComment consumes a line or block comment. The cursor is at the opening
// slash; the caller has already checked the second character.
func (p *parser) skipComment() {
	p.report("comment", jlax.JSONC)
	p.src.Next() // '/'
	if p.src.Next() == '/' {
		p.skipLine()
		return
	}
	for p.src.More() {
		if p.src.Next() == '*' && p.src.Peek() == '/' {
			p.src.Next()
			return
		}
	}
	p.report("unterminated comment", jlax.Bad)
}

// skipLine consumes input up to, but not including, the next newline.
func (p *parser) skipLine() {
	for p.src.More() && p.src.Peek() != '\n' {
		p.src.Next()
	}
}

// isPadRune reports whether r is one of the space or format characters the
// relaxed grammar treats as insignificant.
func isPadRune(r rune) bool {
	switch r {
	case '\v', '\f', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
