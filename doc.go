// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jlax implements a tolerant, multi-dialect JSON parser.
//
// # Dialects
//
// The parser accepts a graduated family of dialects, from strict JSON up
// through a JavaScript-like relaxed grammar. Every deviation from the strict
// grammar is classified on the Severity ladder:
//
//	Strict   canonical JSON
//	OK       valid but non-canonical JSON (e.g. raw control characters)
//	NaNInf   NaN and Infinity literals
//	JSONC    line and block comments
//	JSON5    single quotes, unquoted keys, trailing commas, hex numbers, ...
//	Bad      recoverable structural damage (missing commas, wrong brackets)
//	Fatal    unrecoverable for this parse (truncated escapes, depth limit)
//
// A Config selects the most relaxed tier that is tolerated silently.
// Deviations above that tier are appended to a lint log, or abort the parse
// immediately when the fail-fast policies are set. Bad and Fatal are never
// suppressed by configuration.
//
// Parsing lives in the ast subpackage:
//
//	res, err := ast.Parse(input, jlax.Config{Tolerance: jlax.JSON5})
//
// The parser is a single recursive-descent pass with no separate tokenizer.
// It recovers from most malformed input instead of stopping, and always
// returns a best-effort tree alongside the position-ordered lint log, even
// after a fatal deviation.
//
// # Positions
//
// Diagnostic positions are UTF-8 byte offsets, computed from a cursor that
// walks UTF-16 code units (see Source). Offsets are therefore bit-exact for
// tooling that addresses the UTF-8 serialization of a document, independent
// of the host's native string encoding.
package jlax
