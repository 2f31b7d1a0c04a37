// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jlax

import "unicode/utf16"

// A Source is a cursor over the UTF-16 code units of an input document. It
// tracks two coordinates at once: the code-unit index of the cursor, and the
// UTF-8 byte offset of the same position. The byte offset is maintained
// incrementally as input is consumed, so diagnostics can be reported in byte
// terms without re-scanning the buffer.
//
// A Source is mutable, single-owner state: concurrent parses must each use
// their own Source.
type Source struct {
	u     []uint16
	pos   int // cursor, in code units
	extra int // accumulated bytes beyond one per code unit
	lines int // newlines consumed
}

// NewSource constructs a Source over the code units of text.
func NewSource(text string) *Source {
	return &Source{u: utf16.Encode([]rune(text))}
}

// More reports whether any input remains at the cursor.
func (s *Source) More() bool { return s.pos < len(s.u) }

// Pos returns the cursor position in code units.
func (s *Source) Pos() int { return s.pos }

// Offset returns the cursor position as a UTF-8 byte offset.
func (s *Source) Offset() int { return s.pos + s.extra }

// Lines returns the number of newline characters consumed so far.
func (s *Source) Lines() int { return s.lines }

// Peek returns the code unit at the cursor without consuming it, or 0 if no
// input remains.
func (s *Source) Peek() rune { return s.PeekAt(0) }

// PeekAt returns the code unit n positions past the cursor without consuming
// anything, or 0 if that position is past the end of input.
func (s *Source) PeekAt(n int) rune {
	if p := s.pos + n; p < len(s.u) {
		return rune(s.u[p])
	}
	return 0
}

// PeekRune decodes the code point at the cursor, combining surrogate pairs,
// and reports its width in code units. It returns (0, 0) at end of input; an
// unpaired surrogate is returned as-is with width 1.
func (s *Source) PeekRune() (rune, int) {
	if !s.More() {
		return 0, 0
	}
	r1 := rune(s.u[s.pos])
	if utf16.IsSurrogate(r1) && s.pos+1 < len(s.u) {
		if r := utf16.DecodeRune(r1, rune(s.u[s.pos+1])); r != '\ufffd' {
			return r, 2
		}
	}
	return r1, 1
}

// Next consumes and returns the code unit at the cursor, updating the byte
// and line accounting, or returns 0 if no input remains.
func (s *Source) Next() rune {
	if !s.More() {
		return 0
	}
	u := s.u[s.pos]
	s.pos++
	s.extra += extraBytes(u)
	if u == '\n' {
		s.lines++
	}
	return rune(u)
}

// extraBytes reports how many bytes beyond one the UTF-8 encoding of u
// occupies: 0 for ASCII, 1 for two-byte code points and for each half of a
// surrogate pair, and 2 for the rest of the basic plane.
func extraBytes(u uint16) int {
	switch {
	case u < 0x80:
		return 0
	case u < 0x800, utf16.IsSurrogate(rune(u)):
		return 1
	default:
		return 2
	}
}
