// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rusagefmt

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeReport creates the file name (slash-separated, relative to
// dir) holding content.
func writeReport(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestTree(t *testing.T) {
	dir := t.TempDir()
	short := strings.Replace(sampleReport, "\tExit status: 0\n", "", 1)
	writeReport(t, dir, knownHash+"/v1_4_1024_0", sampleReport)
	writeReport(t, dir, knownHash+"/v1_4_1024_1", short)
	writeReport(t, dir, knownHash+"/v1_8_2048_0", sampleReport)
	writeReport(t, dir, knownHash+"/v1_x_1024_0", sampleReport)
	writeReport(t, dir, "unknownhash/v1_4_1024_0", sampleReport)
	writeReport(t, dir, "nested/"+knownHash+"/v2_1_512_0", sampleReport)

	tree := &Tree{Root: dir}
	var got []string
	for tree.Scan() {
		rel, err := filepath.Rel(dir, tree.Entry().Pos())
		if err != nil {
			t.Fatal(err)
		}
		rel = filepath.ToSlash(rel)
		switch e := tree.Entry().(type) {
		case *Record:
			got = append(got, "ok "+rel)
		case *MismatchError:
			got = append(got, "mismatch "+rel)
		case *LookupError:
			got = append(got, "lookup "+rel)
		case *DecodeError:
			got = append(got, "decode "+rel)
		default:
			t.Errorf("unexpected entry %v", e)
		}
	}
	if err := tree.Err(); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"ok " + knownHash + "/v1_4_1024_0",
		"mismatch " + knownHash + "/v1_4_1024_1",
		"ok " + knownHash + "/v1_8_2048_0",
		"decode " + knownHash + "/v1_x_1024_0",
		"ok nested/" + knownHash + "/v2_1_512_0",
		"lookup unknownhash/v1_4_1024_0",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreeMissingRoot(t *testing.T) {
	tree := &Tree{Root: filepath.Join(t.TempDir(), "missing")}
	if tree.Scan() {
		t.Fatalf("Scan succeeded on missing root")
	}
	if err := tree.Err(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got error %v, want not-exist error", err)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, knownHash+"/v1_4_1024_0", sampleReport)
	writeReport(t, dir, knownHash+"/v1_4_1024_1", "garbage")
	writeReport(t, dir, "unknownhash/v1_4_1024_0", sampleReport)

	var buf strings.Builder
	var skipped []error
	n, err := Convert(&Tree{Root: dir}, &buf, func(err error) { skipped = append(skipped, err) })
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("wrote %d rows, want 1", n)
	}
	if len(skipped) != 2 {
		t.Errorf("skipped %d reports, want 2: %v", len(skipped), skipped)
	}

	want := strings.Join(DefaultSchema.Names(), ",") + "\n" + strings.Join(sampleRow, ",") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestConvertEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	n, err := ConvertFile(&Tree{Root: t.TempDir()}, out, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("wrote %d rows, want 0", n)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join(DefaultSchema.Names(), ",") + "\n"
	if string(data) != want {
		t.Errorf("got %q, want header only %q", data, want)
	}
}

func TestConvertBadOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "out.csv")
	if _, err := ConvertFile(&Tree{Root: t.TempDir()}, out, nil); err == nil {
		t.Errorf("ConvertFile to %s succeeded", out)
	}
}

func TestConvertMissingRootKeepsOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(out, []byte("previous\n"), 0o666); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(t.TempDir(), "missing")
	_, err := ConvertFile(&Tree{Root: root}, out, nil)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous\n" {
		t.Errorf("output overwritten with %q", data)
	}
}
