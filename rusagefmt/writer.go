// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Writer writes records as comma-separated lines, preceded by a
// header line of field names.
//
// Values are written without quoting or escaping; they must not
// contain commas or newlines.
type Writer struct {
	w      *bufio.Writer
	schema *Schema

	wroteHeader bool
}

// NewWriter returns a writer that writes records of schema s to w.
func NewWriter(w io.Writer, s *Schema) *Writer {
	return &Writer{w: bufio.NewWriter(w), schema: s}
}

func (w *Writer) writeHeader() {
	if w.wroteHeader {
		return
	}
	w.w.WriteString(strings.Join(w.schema.Names(), ","))
	w.w.WriteByte('\n')
	w.wroteHeader = true
}

// Write writes Entry e to w. Error entries are ignored.
func (w *Writer) Write(e Entry) error {
	switch e := e.(type) {
	case *Record:
		if len(e.Values) != len(w.schema.Fields) {
			return &MismatchError{Path: e.File, Got: len(e.Values), Want: len(w.schema.Fields)}
		}
		w.writeHeader()
		w.w.WriteString(strings.Join(e.Strings(), ","))
		w.w.WriteByte('\n')
	case error:
		// Ignore
		return nil
	default:
		return fmt.Errorf("unknown Entry type %T", e)
	}
	return nil
}

// Flush writes the header if no record has been written yet and
// flushes buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	w.writeHeader()
	return w.w.Flush()
}
