// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the value tree produced by parsing relaxed JSON
// documents, and the tolerant parser that constructs trees from source text.
package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jlax"
)

// Layouts for the date and datetime shapes recognized by detection.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05.999"
)

// A Value is a single node of a parsed document tree. Every node records the
// UTF-8 byte offset of its first character in the source text, and can render
// itself as JSON.
//
// Nodes are created during parsing and are otherwise immutable. Arrays and
// objects own their children exclusively; no node is shared or cyclic.
type Value interface {
	Offset() int  // byte offset of the node's first character
	JSON() string // JSON rendering of the node
}

// Null represents the null constant.
type Null struct{ pos int }

// Offset satisfies the Value interface.
func (z Null) Offset() int { return z.pos }

func (Null) JSON() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	pos   int
	value bool
}

// Offset satisfies the Value interface.
func (b Bool) Offset() int { return b.pos }

func (b Bool) Value() bool  { return b.value }
func (b Bool) JSON() string { return strconv.FormatBool(b.value) }

// An Integer is a number in the signed 64-bit range with no fractional or
// exponent part.
type Integer struct {
	pos   int
	value int64
}

// Offset satisfies the Value interface.
func (z Integer) Offset() int { return z.pos }

func (z Integer) Int64() int64 { return z.value }
func (z Integer) JSON() string { return strconv.FormatInt(z.value, 10) }

// A Number is a floating-point value. NaN and the infinities render as the
// NaN and Infinity literals, which parse back at the NaNInf tier.
type Number struct {
	pos   int
	value float64
}

// Offset satisfies the Value interface.
func (n Number) Offset() int { return n.pos }

func (n Number) Float64() float64 { return n.value }

func (n Number) JSON() string {
	switch {
	case math.IsNaN(n.value):
		return "NaN"
	case math.IsInf(n.value, 1):
		return "Infinity"
	case math.IsInf(n.value, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n.value, 'g', -1, 64)
}

// A String is a string value, stored in decoded (unescaped) form.
type String struct {
	pos   int
	value string
}

// Offset satisfies the Value interface.
func (s String) Offset() int { return s.pos }

func (s String) Text() string { return s.value }
func (s String) JSON() string { return jlax.Quote(s.value) }

// A Date is a string value recognized as a calendar date.
type Date struct {
	pos   int
	value time.Time
}

// Offset satisfies the Value interface.
func (d Date) Offset() int { return d.pos }

func (d Date) Time() time.Time { return d.value }
func (d Date) JSON() string    { return `"` + d.value.Format(dateLayout) + `"` }

// A DateTime is a string value recognized as a calendar timestamp with an
// optional fractional second.
type DateTime struct {
	pos   int
	value time.Time
}

// Offset satisfies the Value interface.
func (d DateTime) Offset() int { return d.pos }

func (d DateTime) Time() time.Time { return d.value }
func (d DateTime) JSON() string    { return `"` + d.value.Format(dateTimeLayout) + `"` }

// An Array is an ordered sequence of values.
type Array struct {
	pos    int
	Values []Value
}

// Offset satisfies the Value interface.
func (a *Array) Offset() int { return a.pos }

// Len reports the number of elements of a.
func (a *Array) Len() int { return len(a.Values) }

func (a *Array) JSON() string {
	if len(a.Values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos int

	Key   string
	Value Value
}

// Offset satisfies the Value interface.
func (m *Member) Offset() int { return m.pos }

func (m *Member) JSON() string { return jlax.Quote(m.Key) + ":" + m.Value.JSON() }

// An Object is a collection of key-value members. Keys are unique and
// insertion order is preserved.
type Object struct {
	pos     int
	Members []*Member
}

// Offset satisfies the Value interface.
func (o *Object) Offset() int { return o.pos }

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.Members) }

// Find returns the member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

func (o *Object) JSON() string {
	if len(o.Members) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// ToValue converts a plain Go value into a tree node. It supports nil, bool,
// string, int, int64, float32, float64, time.Time, []any, map[string]any
// (keys emitted in sorted order), and values that are already Values. It
// panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return Bool{value: t}
	case string:
		return String{value: t}
	case int:
		return Integer{value: int64(t)}
	case int64:
		return Integer{value: t}
	case float32:
		return Number{value: float64(t)}
	case float64:
		return Number{value: t}
	case time.Time:
		return DateTime{value: t}
	case []any:
		out := &Array{Values: make([]Value, len(t))}
		for i, elt := range t {
			out.Values[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := &Object{Members: make([]*Member, 0, len(t))}
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out.Members = append(out.Members, &Member{Key: key, Value: ToValue(t[key])})
		}
		return out
	}
	panic(fmt.Sprintf("cannot convert %T to a value", v))
}
