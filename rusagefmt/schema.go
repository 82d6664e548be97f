// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"strconv"

	"golang.org/x/rusage/rusageunit"
)

// A Decoder converts the raw text of one field into a Value.
type Decoder func(raw string) (Value, error)

// A Field is one named, typed column of a Schema.
type Field struct {
	Name   string
	Decode Decoder
}

// A Schema is the ordered list of fields in a record. The order
// defines both how raw values are matched to decoders and the column
// order of the flattened table.
type Schema struct {
	Fields []Field
}

// Names returns the field names of s in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Index returns the position of the named field in s, or -1.
func (s *Schema) Index(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Decode matches raw values to the fields of s positionally and
// decodes each one. It returns a *MismatchError if the number of raw
// values differs from the number of fields, and a *DecodeError if a
// value cannot be decoded. path is used only in errors.
func (s *Schema) Decode(path string, raw []string) (*Record, error) {
	if len(raw) != len(s.Fields) {
		return nil, &MismatchError{Path: path, Got: len(raw), Want: len(s.Fields)}
	}
	rec := &Record{File: path, Values: make([]Value, len(raw))}
	for i, f := range s.Fields {
		v, err := f.Decode(raw[i])
		if err != nil {
			return nil, &DecodeError{Path: path, Field: f.Name, Value: raw[i], Err: err}
		}
		rec.Values[i] = v
	}
	return rec, nil
}

// Decoders for the units that appear in reports.
var (
	DecodeString Decoder = func(raw string) (Value, error) {
		return StringValue(raw), nil
	}
	DecodeInt Decoder = func(raw string) (Value, error) {
		v, err := strconv.ParseInt(raw, 10, 64)
		return IntValue(v), err
	}
	DecodeFloat Decoder = func(raw string) (Value, error) {
		v, err := strconv.ParseFloat(raw, 64)
		return FloatValue(v), err
	}
	DecodePercent Decoder = func(raw string) (Value, error) {
		v, err := rusageunit.ParsePercent(raw)
		return FloatValue(v), err
	}
	DecodeClock Decoder = func(raw string) (Value, error) {
		v, err := rusageunit.ParseClock(raw)
		return FloatValue(v), err
	}
	DecodeKilobytes Decoder = func(raw string) (Value, error) {
		v, err := rusageunit.ParseKilobytes(raw)
		return IntValue(v), err
	}
)

// metricFields are the fields decoded from the report body, in the
// order the timing wrapper prints them.
var metricFields = []Field{
	{"usr_time", DecodeFloat},
	{"sys_time", DecodeFloat},
	{"cpu%", DecodePercent},
	{"wall_clock", DecodeClock},
	{"avg_shared_text", DecodeKilobytes},
	{"avg_unshared_data", DecodeKilobytes},
	{"avg_stack", DecodeKilobytes},
	{"avg_total", DecodeKilobytes},
	{"max_resident_set", DecodeKilobytes},
	{"avg_resident_set", DecodeKilobytes},
	{"major_page_faults", DecodeInt},
	{"minor_page_faults", DecodeInt},
	{"voluntary_ctx_swt", DecodeInt},
	{"involuntary_ctx_swt", DecodeInt},
	{"swaps", DecodeInt},
	{"fs_input", DecodeInt},
	{"fs_output", DecodeInt},
	{"socket_sent", DecodeInt},
	{"socket_received", DecodeInt},
	{"signals_delivered", DecodeInt},
	{"page_size", DecodeInt},
	{"exit_status", DecodeInt},
}

func newSchema(params ...Field) *Schema {
	fields := []Field{{"category", DecodeString}}
	fields = append(fields, params...)
	fields = append(fields, metricFields...)
	return &Schema{fields}
}

// DefaultSchema is the schema for reports named
// version_thread_segment-size_iteration.
var DefaultSchema = newSchema(
	Field{"version", DecodeString},
	Field{"thread", DecodeInt},
	Field{"segment_size", DecodeInt},
	Field{"iteration", DecodeInt},
)

// BufferedSchema is the schema for reports named
// version_thread_segment-size_buffer-size_iteration.
var BufferedSchema = newSchema(
	Field{"version", DecodeString},
	Field{"thread", DecodeInt},
	Field{"segment_size", DecodeInt},
	Field{"buffer_size", DecodeInt},
	Field{"iteration", DecodeInt},
)

// A Record is one decoded report: one row of the flattened table.
type Record struct {
	File   string // Path of the report
	Values []Value
}

// Pos returns the path of the report r was decoded from.
func (r *Record) Pos() string {
	return r.File
}

// Strings returns the text form of each value in r.
func (r *Record) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.String()
	}
	return out
}
