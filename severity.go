// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jlax

// A Severity classifies how far a parsed construct deviates from strict
// canonical JSON. Severities are totally ordered: a higher value is further
// from the strict grammar. Values up to JSON5 are dialect tiers that a
// Config may tolerate; Bad and Fatal are always significant and are never
// suppressed by configuration.
type Severity byte

// Constants defining the valid Severity values, in increasing order.
const (
	Strict Severity = iota // canonical JSON, no deviation
	OK                     // valid JSON that canonical form avoids
	NaNInf                 // NaN and Infinity literals
	JSONC                  // comments
	JSON5                  // JavaScript-like relaxed grammar
	Bad                    // recoverable structural malformation
	Fatal                  // unrecoverable for the current parse
)

var severityStr = [...]string{
	Strict: "strict",
	OK:     "ok",
	NaNInf: "nan-inf",
	JSONC:  "jsonc",
	JSON5:  "json5",
	Bad:    "bad",
	Fatal:  "fatal",
}

func (s Severity) String() string {
	if int(s) >= len(severityStr) {
		return "invalid"
	}
	return severityStr[s]
}
