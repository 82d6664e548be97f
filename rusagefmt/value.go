// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"strconv"
	"strings"
)

// A Kind is the type of a decoded Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// A Value is a single decoded field of a report.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
}

// StringValue, IntValue and FloatValue construct Values of each kind.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func IntValue(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// String returns v in its default text form. Floats always carry a
// fractional part ("3723.0") so that a column of floats that happen to
// be whole numbers still reads back as floats.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".IN") {
			s += ".0"
		}
		return s
	}
	return v.Str
}
