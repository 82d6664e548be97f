// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

// Categories maps the hash naming a benchmark run configuration (the
// name of the directory holding its reports) to a readable label.
//
// A Categories is immutable. With returns an extended copy.
type Categories struct {
	m map[string]string
}

// knownCategories is the table of run configurations.
var knownCategories = [...]struct{ hash, label string }{
	{"8d56af8a13b288f5df52110e7564f99981b2cc85", "read-write"},
}

// DefaultCategories returns the table of known run configurations.
func DefaultCategories() Categories {
	m := make(map[string]string, len(knownCategories))
	for _, c := range knownCategories {
		m[c.hash] = c.label
	}
	return Categories{m}
}

// Lookup returns the label for hash.
func (c Categories) Lookup(hash string) (label string, ok bool) {
	label, ok = c.m[hash]
	return
}

// Len returns the number of entries in c.
func (c Categories) Len() int {
	return len(c.m)
}

// With returns a copy of c that also maps hash to label.
func (c Categories) With(hash, label string) Categories {
	m := make(map[string]string, len(c.m)+1)
	for k, v := range c.m {
		m[k] = v
	}
	m[hash] = label
	return Categories{m}
}
