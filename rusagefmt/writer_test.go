// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"strings"
	"testing"
)

func TestWriter(t *testing.T) {
	s := &Schema{[]Field{{"name", DecodeString}, {"n", DecodeInt}, {"x", DecodeFloat}}}

	var buf strings.Builder
	w := NewWriter(&buf, s)
	recs := []Entry{
		&Record{"a", []Value{StringValue("a"), IntValue(1), FloatValue(2)}},
		&SyntaxError{"b", 1, "ignored"},
		&Record{"c", []Value{StringValue("c"), IntValue(-1), FloatValue(0.25)}},
	}
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "name,n,x\na,1,2.0\nc,-1,0.25\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// Records must match the schema width.
	if err := w.Write(&Record{"d", []Value{StringValue("d")}}); err == nil {
		t.Errorf("writing short record succeeded")
	}
}
