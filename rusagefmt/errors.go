// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import "fmt"

// Each of the error types below describes why a single report was
// skipped. They never stop a Tree; batch failures are reported by
// Tree.Err.

// A LookupError is returned for a report whose directory name is not
// a known category hash.
type LookupError struct {
	Path string
	Hash string
}

func (e *LookupError) Pos() string { return e.Path }

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: unknown category %q", e.Path, e.Hash)
}

// A MismatchError is returned when the number of values in a report
// differs from the number of fields in the schema.
type MismatchError struct {
	Path      string
	Got, Want int
}

func (e *MismatchError) Pos() string { return e.Path }

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: got %d values, want %d", e.Path, e.Got, e.Want)
}

// A DecodeError is returned when a value cannot be decoded as the type
// of its field.
type DecodeError struct {
	Path  string
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Pos() string { return e.Path }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: field %s: bad value %q: %v", e.Path, e.Field, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// A SyntaxError represents a malformed line in a report.
type SyntaxError struct {
	Path string
	Line int
	Msg  string
}

func (e *SyntaxError) Pos() string { return e.Path }

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// A ReadError is returned when a report cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Pos() string { return e.Path }

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
