// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	check := func(q, want string) {
		t.Helper()
		n, err := Parse(q)
		if err != nil {
			t.Errorf("%s: unexpected error %s", q, err)
			return
		}
		if got := n.String(); got != want {
			t.Errorf("%s: got %s, want %s", q, got, want)
		}
	}
	check("1", "1")
	check("a+b*c", "(a + (b * c))")
	check("(a+b)*c", "((a + b) * c)")
	check("a-b-c", "((a - b) - c)")
	check("a/b/c", "((a / b) / c)")
	check("-a*b", "(-a * b)")
	check("-2**2", "-(2 ** 2)")
	check("2**3**2", "(2 ** (3 ** 2))")
	check("cpu% * 100", "(cpu% * 100)")
	check(`"max resident" / 1e6`, `("max resident" / 1e+06)`)
	check("log10(minor_page_faults)", "log10(minor_page_faults)")
	check("34709.942648 / wall_clock", "(34709.942648 / wall_clock)")
	check(" +a ", "a")
}

func TestParseErrors(t *testing.T) {
	check := func(q, want string, wantOff int) {
		t.Helper()
		_, err := Parse(q)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%s: got error %v, want *SyntaxError", q, err)
			return
		}
		if se.Msg != want || se.Off != wantOff {
			t.Errorf("%s: got error %q at %d, want %q at %d", q, se.Msg, se.Off, want, wantOff)
		}
	}
	check("", "unexpected end of expression", 0)
	check("a +", "unexpected end of expression", 3)
	check("(a", "missing \")\"", 2)
	check("a b", "unexpected \"b\"", 2)
	check("a == b", "unexpected '='", 2)
	check("a + 'b'", "unexpected '\\''", 4)
	check("__import__('os')", "unknown function \"__import__\"; want one of abs, log, log10, log2, sqrt", 0)
	check(`"abc`, "missing end quote", 0)
	check("1..2", "malformed number \"1..2\"", 0)
	check("exec(a)", "unknown function \"exec\"; want one of abs, log, log10, log2, sqrt", 0)
	check("log2(a", "missing \")\"", 6)
}

func TestSyntaxErrorString(t *testing.T) {
	_, err := Parse("a ! b")
	if err == nil {
		t.Fatal("want error")
	}
	want := "syntax error: unexpected '!'\n\ta ! b\n\t  ^"
	if got := err.Error(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEval(t *testing.T) {
	row := map[string]float64{
		"wall_clock":        37.28,
		"cpu%":              0.54,
		"minor_page_faults": 1000,
		"usr_time":          3,
		"sys_time":          17,
	}
	env := func(name string) (float64, bool) {
		v, ok := row[name]
		return v, ok
	}
	check := func(q string, want float64) {
		t.Helper()
		n, err := Parse(q)
		if err != nil {
			t.Fatalf("%s: %s", q, err)
		}
		got, err := n.Eval(env)
		if err != nil {
			t.Errorf("%s: %s", q, err)
		} else if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", q, got, want)
		}
	}
	check("usr_time + sys_time", 20)
	check("(usr_time + sys_time) / 2", 10)
	check("cpu% * 100", 54)
	check("log10(minor_page_faults)", 3)
	check("2 ** 10", 1024)
	check("-usr_time", -3)
	check("sqrt(abs(-16))", 4)

	n, err := Parse("usr_time / missing")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.Eval(env); err == nil || !strings.Contains(err.Error(), `unknown column "missing"`) {
		t.Errorf("got error %v, want unknown column", err)
	}

	n, _ = Parse("usr_time / 0")
	if got, _ := n.Eval(env); !math.IsInf(got, 1) {
		t.Errorf("usr_time / 0 = %v, want +Inf", got)
	}
}

func TestCols(t *testing.T) {
	n, err := Parse(`log2(b) + a * "c d" - a`)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c d"}, Cols(n)); diff != "" {
		t.Errorf("Cols mismatch (-want +got):\n%s", diff)
	}
}
