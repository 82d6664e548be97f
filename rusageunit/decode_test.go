// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusageunit

import "testing"

func TestParsePercent(t *testing.T) {
	check := func(s string, want float64, wantErr bool) {
		t.Helper()
		got, err := ParsePercent(s)
		if wantErr {
			if err == nil {
				t.Errorf("ParsePercent(%q) = %v, want error", s, got)
			}
			return
		}
		if err != nil {
			t.Errorf("ParsePercent(%q): %v", s, err)
		} else if got != want {
			t.Errorf("ParsePercent(%q) = %v, want %v", s, got, want)
		}
	}
	check("54%", 0.54, false)
	check("100%", 1, false)
	check("0%", 0, false)
	check("250%", 2.5, false)
	check("54", 0, true)
	check("x%", 0, true)
	check("%", 0, true)
}

func TestParseClock(t *testing.T) {
	check := func(s string, want float64, wantErr bool) {
		t.Helper()
		got, err := ParseClock(s)
		if wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) = %v, want error", s, got)
			}
			return
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", s, err)
		} else if got != want {
			t.Errorf("ParseClock(%q) = %v, want %v", s, got, want)
		}
	}
	check("0:37.28", 37.28, false)
	check("1:02:03", 3723, false)
	check("2:00", 120, false)
	check("12.5", 12.5, false)
	check("1:1:1:1", 0, true)
	check("a:10", 0, true)
	check("", 0, true)
}

func TestParseKilobytes(t *testing.T) {
	got, err := ParseKilobytes("14476")
	if err != nil {
		t.Fatal(err)
	}
	if got != 14476000 {
		t.Errorf("ParseKilobytes(\"14476\") = %d, want 14476000", got)
	}
	if _, err := ParseKilobytes("1.5"); err == nil {
		t.Errorf("ParseKilobytes(\"1.5\") succeeded, want error")
	}
}
