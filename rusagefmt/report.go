// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rusagefmt reads resource-usage reports, as printed by
// "/usr/bin/time -v", and writes them as a flat comma-separated table.
//
// A report looks like:
//
//	Command being timed: "./target/release/download_manager"
//	User time (seconds): 3.24
//	System time (seconds): 17.13
//	Percent of CPU this job got: 54%
//	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:37.28
//	...
//	Exit status: 0
//
// The name of the directory holding a report identifies the run
// configuration (see Categories) and the file name carries the
// benchmark parameters separated by underscores, for example
// "v1_4_1024_0" for version v1, 4 threads, 1024-byte segments,
// iteration 0.
package rusagefmt

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// commandLabel is the label of the first line of every report.
const commandLabel = "Command being timed"

// A Report is the raw, undecoded content of one report file.
type Report struct {
	Path    string
	Hash    string   // Name of the parent directory
	Params  []string // File name split on "_"
	Metrics []string // Value text of each line after the command line
}

// ReadReport reads the report at path from r. path determines the
// report's Hash and Params and is used in errors.
//
// The first line must echo the timed command. Every following
// non-blank line must have the form "label: value"; the value is
// everything after the first ": ".
func ReadReport(path string, r io.Reader) (*Report, error) {
	rep := &Report{
		Path:   path,
		Hash:   filepath.Base(filepath.Dir(path)),
		Params: strings.Split(filepath.Base(path), "_"),
	}

	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if line == 1 {
			if !strings.HasPrefix(text, commandLabel+":") {
				return nil, &SyntaxError{path, line, "missing \"" + commandLabel + "\" line"}
			}
			continue
		}
		if text == "" {
			continue
		}
		label, value, ok := strings.Cut(text, ": ")
		if !ok || label == "" {
			return nil, &SyntaxError{path, line, "expected \"label: value\""}
		}
		rep.Metrics = append(rep.Metrics, strings.TrimSpace(value))
	}
	if err := s.Err(); err != nil {
		return nil, &ReadError{path, err}
	}
	if line == 0 {
		return nil, &SyntaxError{path, 0, "empty report"}
	}
	return rep, nil
}

// Decode looks up the category of rep in cats and decodes the
// category, parameters and metrics of rep positionally against s.
func (rep *Report) Decode(s *Schema, cats Categories) (*Record, error) {
	category, ok := cats.Lookup(rep.Hash)
	if !ok {
		return nil, &LookupError{rep.Path, rep.Hash}
	}
	raw := make([]string, 0, 1+len(rep.Params)+len(rep.Metrics))
	raw = append(raw, category)
	raw = append(raw, rep.Params...)
	raw = append(raw, rep.Metrics...)
	return s.Decode(rep.Path, raw)
}
