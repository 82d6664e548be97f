// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const report = `	Command being timed: "./target/release/download_manager"
	User time (seconds): 3.24
	System time (seconds): 17.13
	Percent of CPU this job got: 54%
	Elapsed (wall clock) time (h:mm:ss or m:ss): 0:37.28
	Average shared text size (kbytes): 0
	Average unshared data size (kbytes): 0
	Average stack size (kbytes): 0
	Average total size (kbytes): 0
	Maximum resident set size (kbytes): 14476
	Average resident set size (kbytes): 0
	Major (requiring I/O) page faults: 0
	Minor (reclaiming a frame) page faults: 18542
	Voluntary context switches: 2977583
	Involuntary context switches: 293
	Swaps: 0
	File system inputs: 0
	File system outputs: 8474256
	Socket messages sent: 0
	Socket messages received: 0
	Signals delivered: 0
	Page size (bytes): 4096
	Exit status: 0
`

const knownHash = "8d56af8a13b288f5df52110e7564f99981b2cc85"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Fatal(err)
	}
}

// run executes the command line args and returns its output and log.
func run(t *testing.T, args ...string) (out, logs string, err error) {
	t.Helper()
	var outBuf, logBuf strings.Builder
	cmd := newRootCmd(slog.New(slog.NewTextHandler(&logBuf, nil)))
	cmd.SetOut(&outBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), logBuf.String(), err
}

func TestCSV(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, knownHash, "v1_4_1024_0"), report)
	writeFile(t, filepath.Join(root, knownHash, "v1_8_1024_0"), report)
	bad := filepath.Join(root, "0000", "v1_4_1024_0")
	writeFile(t, bad, report)

	output := filepath.Join(t.TempDir(), "out.csv")
	_, logs, err := run(t, "csv", "-o", output, root)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and 2 rows, got:\n%s", data)
	}
	if n := len(strings.Split(lines[1], ",")); n != 27 {
		t.Errorf("want 27 columns, got %d", n)
	}
	if !strings.Contains(logs, bad) {
		t.Errorf("want skipped %s in log, got:\n%s", bad, logs)
	}
	if !strings.Contains(logs, "rows=2") {
		t.Errorf("want row count in log, got:\n%s", logs)
	}

	// An extra category makes the unknown directory readable.
	_, _, err = run(t, "csv", "-o", output, "--category", "0000=other", root)
	if err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\nother,v1,4,1024,0,") {
		t.Errorf("want other category row, got:\n%s", data)
	}
}

func TestCSVErrors(t *testing.T) {
	check := func(want string, args ...string) {
		t.Helper()
		_, _, err := run(t, args...)
		if err == nil {
			t.Errorf("%v: want error %q, got nil", args, want)
			return
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%v: want error containing %q, got %q", args, want, err)
		}
	}

	output := filepath.Join(t.TempDir(), "out.csv")
	check("reading report tree", "csv", "-o", output, filepath.Join(t.TempDir(), "missing"))
	check("want hash=label", "csv", "-o", output, "--category", "nolabel", t.TempDir())
	check("accepts 1 arg", "csv")
}

const table = `category,version,thread,segment_size,iteration,usr_time,sys_time,cpu%,wall_clock
read-write,v1,4,1024,0,1,0.5,0.25,2
read-write,v1,4,1024,1,3,1.5,0.75,4
read-write,v1,4,2048,0,2,1,0.5,1
read-write,v1,8,1024,0,2,1,0.5,1
read-write,v1,8,2048,0,4,2,1,0.5
`

func TestSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	writeFile(t, path, table)

	out, _, err := run(t, "summary", "--format", "csv", "--payload", "12", path)
	if err != nil {
		t.Fatal(err)
	}
	want := `version,thread,segment_size,usr_time,sys_time,cpu%,wall_clock,bandwidth
v1,4,1024,2,1,0.5,3,4.5
v1,4,2048,2,1,0.5,1,12
v1,8,1024,2,1,0.5,1,12
v1,8,2048,4,2,1,0.5,24
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	out, _, err = run(t, "summary", "--raw", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "version") || strings.Count(out, "\n") != 5 {
		t.Errorf("bad text summary:\n%s", out)
	}

	out, _, err = run(t, "summary", "--format", "html", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<table class='rusage'>") {
		t.Errorf("bad html summary:\n%s", out)
	}

	if _, _, err := run(t, "summary", "--format", "xml", path); err == nil {
		t.Errorf("want error for unknown format")
	}
	if _, _, err := run(t, "summary", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Errorf("want error for missing table")
	}
}

func TestHeatmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	writeFile(t, path, table)
	dir := filepath.Join(t.TempDir(), "graphs")

	_, logs, err := run(t, "heatmap", "--const-a", "version", "--const-b", "buffer_size", "--metric", "usr_time / wall_clock", "--dir", dir, path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"version=v1-buffer_size=-1-usr_time_wall_clock.png", "grid.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}
	if !strings.Contains(logs, "wrote grid") {
		t.Errorf("want grid in log, got:\n%s", logs)
	}

	_, _, err = run(t, "heatmap", "--const-a", "version", "--const-b", "thread", "--dir", dir, path)
	if err == nil || !strings.Contains(err.Error(), `"metric" not set`) {
		t.Errorf("want missing metric error, got %v", err)
	}
	_, _, err = run(t, "heatmap", "--const-a", "version", "--const-b", "thread", "--metric", "bogus", "--dir", dir, path)
	if err == nil || !strings.Contains(err.Error(), `unknown column "bogus"`) {
		t.Errorf("want unknown column error, got %v", err)
	}
}
