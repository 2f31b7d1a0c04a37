// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jlax

// A Config carries the tolerance policy for a parse session. A Config is a
// plain value: it is immutable once handed to a parser, and may be copied and
// shared freely between concurrent sessions, each of which owns its own
// mutable session state.
//
// The zero value tolerates only strict canonical JSON and collects every
// deviation into the lint log without failing.
type Config struct {
	// Tolerance is the most relaxed dialect tier accepted silently.
	// Deviations at or below this severity still advance the session's
	// worst-severity tracker, but produce no lint entry. Values above JSON5
	// are treated as JSON5: Bad and Fatal cannot be configured away.
	Tolerance Severity

	// FailFast aborts the parse with a *SyntaxError at the first deviation
	// that would otherwise be logged.
	FailFast bool

	// FailOnFatal aborts the parse with a *SyntaxError on fatal deviations
	// only, independent of FailFast. Leaving both unset yields a pure
	// collecting mode that reports even fatal conditions through the log.
	FailOnFatal bool

	// DetectDates retags string values of the form "2006-01-02" or
	// "2006-01-02 15:04:05[.999]" as date or datetime nodes when they also
	// denote a valid calendar value. Detection never reports a deviation;
	// strings that do not qualify are kept verbatim.
	DetectDates bool
}
