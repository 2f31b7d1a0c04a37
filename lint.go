// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jlax

import "fmt"

// A Lint records one tolerated deviation from the strict JSON grammar: what
// happened, where, which character triggered it, and how serious it was.
// Offsets are UTF-8 byte offsets into the document. A lint log is always in
// nondecreasing offset order, since parsing proceeds left to right.
type Lint struct {
	Message  string
	Offset   int
	Char     rune
	Severity Severity
}

func (l Lint) String() string {
	return fmt.Sprintf("%s: %s at offset %d (char %s)", l.Severity, l.Message, l.Offset, CharLabel(l.Char))
}

// A SyntaxError is the concrete type of errors reported when a parse is
// aborted by the FailFast or FailOnFatal policy. It carries the same message,
// offending character, and byte offset the corresponding lint entry would
// have carried; no entry is appended for an aborting deviation.
type SyntaxError struct {
	Message  string
	Offset   int
	Char     rune
	Severity Severity
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s (char %s)", e.Offset, e.Message, CharLabel(e.Char))
}

// CharLabel renders ch for diagnostics. Common control characters display as
// their escape sequences ('\n', '\t'), other control characters in hex
// ('\x00'), and everything else verbatim in single quotes.
func CharLabel(ch rune) string {
	switch ch {
	case '\b':
		return `'\b'`
	case '\t':
		return `'\t'`
	case '\n':
		return `'\n'`
	case '\f':
		return `'\f'`
	case '\r':
		return `'\r'`
	}
	if ch < 0x20 {
		return fmt.Sprintf(`'\x%02x'`, ch)
	}
	return "'" + string(ch) + "'"
}
