// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rusageunit decodes the units found in resource-usage
// reports and formats decoded values for display.
//
// Reports print CPU utilization as a percentage ("54%"), elapsed time
// as a clock reading ("1:02:03" or "0:37.28"), and memory sizes in
// kilobytes. The decoders in this package convert these to
// fractions, seconds, and bytes, respectively.
package rusageunit

import (
	"fmt"
	"strconv"
	"strings"
)

// KilobyteFactor is the scale applied to sizes reported in kilobytes.
const KilobyteFactor = 1000

// ParsePercent parses a percentage such as "54%" and returns it as a
// fraction (0.54).
func ParsePercent(s string) (float64, error) {
	num, ok := strings.CutSuffix(s, "%")
	if !ok {
		return 0, fmt.Errorf("percentage %q missing %%", s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// ParseClock parses an elapsed time of the form "h:mm:ss" or "m:ss"
// and returns the total number of seconds. The last component may be
// fractional, as in "0:37.28".
func ParseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("clock %q has too many components", s)
	}
	// Walk from seconds upward, scaling each component by 60.
	var secs float64
	mul := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, err
		}
		secs += v * mul
		mul *= 60
	}
	return secs, nil
}

// ParseKilobytes parses an integer number of kilobytes and returns
// the number of bytes.
func ParseKilobytes(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return v * KilobyteFactor, nil
}
