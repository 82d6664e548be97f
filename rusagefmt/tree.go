// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// An Entry is one item produced by Tree: either a *Record or one of
// the per-report error types (*LookupError, *MismatchError,
// *DecodeError, *SyntaxError, *ReadError).
type Entry interface {
	// Pos returns the path of the report.
	Pos() string
}

// A Tree reads every report under a directory.
//
// Its API is modeled on bufio.Scanner. A report that fails to read,
// look up, or decode produces an error Entry and does not stop the
// Tree; only a failure to walk Root does.
type Tree struct {
	// Root is the directory to walk.
	Root string

	// Schema is the schema to decode reports with. If nil,
	// DefaultSchema is used.
	Schema *Schema

	// Categories maps directory names to category labels. If it
	// has no entries, DefaultCategories is used.
	Categories Categories

	// paths is the sequence of remaining reports, or nil if this
	// Tree has not started yet.
	paths []string

	entry Entry
	err   error
}

// init walks Root and collects the report paths in lexical order.
func (t *Tree) init() {
	t.paths = []string{}
	if t.Schema == nil {
		t.Schema = DefaultSchema
	}
	if t.Categories.Len() == 0 {
		t.Categories = DefaultCategories()
	}

	err := filepath.WalkDir(t.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == t.Root {
				return err
			}
			// Unreadable subdirectory. Report it like an
			// unreadable file.
			t.paths = append(t.paths, path)
			return fs.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		t.paths = append(t.paths, path)
		return nil
	})
	if err != nil {
		t.err = fmt.Errorf("reading report tree: %w", err)
	}
}

// Scan advances to the next report and reports whether there was one.
// The caller should use the Entry method to get the result. When Scan
// returns false, the caller should use the Err method to check for a
// batch failure.
func (t *Tree) Scan() bool {
	if t.paths == nil {
		t.init()
	}
	if t.err != nil || len(t.paths) == 0 {
		return false
	}
	path := t.paths[0]
	t.paths = t.paths[1:]
	t.entry = t.read(path)
	return true
}

func (t *Tree) read(path string) Entry {
	f, err := os.Open(path)
	if err != nil {
		return &ReadError{path, err}
	}
	defer f.Close()

	rep, err := ReadReport(path, f)
	if err != nil {
		return err.(Entry)
	}
	rec, err := rep.Decode(t.Schema, t.Categories)
	if err != nil {
		return err.(Entry)
	}
	return rec
}

// Entry returns the entry read by the last call to Scan.
func (t *Tree) Entry() Entry {
	return t.entry
}

// Err returns the error that stopped Scan, if any. Per-report errors
// are returned by Entry, not Err.
func (t *Tree) Err() error {
	return t.err
}
