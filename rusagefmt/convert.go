// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"fmt"
	"io"
	"os"
)

// Convert writes every report in t to w as one CSV row and returns
// the number of rows written. Reports that cannot be decoded are
// passed to skip, if non-nil, and are otherwise ignored.
//
// Convert returns an error only if t cannot be walked or w cannot be
// written.
func Convert(t *Tree, w io.Writer, skip func(err error)) (int, error) {
	if t.Schema == nil {
		t.Schema = DefaultSchema
	}
	out := NewWriter(w, t.Schema)
	n := 0
	for t.Scan() {
		switch e := t.Entry().(type) {
		case *Record:
			if err := out.Write(e); err != nil {
				return n, err
			}
			n++
		case error:
			if skip != nil {
				skip(e)
			}
		}
	}
	if err := t.Err(); err != nil {
		return n, err
	}
	if err := out.Flush(); err != nil {
		return n, fmt.Errorf("writing table: %w", err)
	}
	return n, nil
}

// ConvertFile is like Convert, but creates (or truncates) the file
// named output and writes to it. If t cannot be walked, output is left
// untouched.
func ConvertFile(t *Tree, output string, skip func(err error)) (int, error) {
	if t.paths == nil {
		t.init()
	}
	if t.err != nil {
		return 0, t.err
	}
	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	n, err := Convert(t, f, skip)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return n, err
}
