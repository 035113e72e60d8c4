// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"golang.org/x/tools/txtar"
)

// TestRun runs the archives in testdata.
// The archive comment holds the command line (a line starting with
// "letchain"), the expected exit status ("exit N", default 0), and
// "needs diff" if the test uses the diff tool. The other files are
// written to a temporary directory, except stdout and stderr, which
// hold the expected output, and want/NAME, which holds the expected
// content of NAME after the run.
func TestRun(t *testing.T) {
	color.NoColor = true

	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var args []string
			wantExit := 0
			for _, line := range strings.Split(string(ar.Comment), "\n") {
				f := strings.Fields(line)
				switch {
				case len(f) > 0 && f[0] == "letchain":
					args = f[1:]
				case len(f) == 2 && f[0] == "exit":
					n, err := strconv.Atoi(f[1])
					if err != nil {
						t.Fatal(err)
					}
					wantExit = n
				case line == "needs diff":
					if _, err := exec.LookPath("diff"); err != nil {
						t.Skip("diff tool not available")
					}
				}
			}
			if args == nil {
				t.Fatal("no command line")
			}

			dir := t.TempDir()
			var wantStdout, wantStderr []byte
			want := make(map[string][]byte)
			for _, f := range ar.Files {
				switch {
				case f.Name == "stdout":
					wantStdout = f.Data
					continue
				case f.Name == "stderr":
					wantStderr = f.Data
					continue
				case strings.HasPrefix(f.Name, "want/"):
					want[strings.TrimPrefix(f.Name, "want/")] = f.Data
					continue
				}
				targ := filepath.Join(dir, f.Name)
				if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(targ, f.Data, 0666); err != nil {
					t.Fatal(err)
				}
			}

			t.Chdir(dir)
			var stdout, stderr bytes.Buffer
			code, err := run(args, &stdout, &stderr)
			if err != nil {
				t.Fatal(err)
			}
			if code != wantExit {
				t.Errorf("exit status %d, want %d", code, wantExit)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr)
			cmp("stdout", stdout.Bytes(), wantStdout)
			for name, data := range want {
				have, err := os.ReadFile(name)
				if err != nil {
					t.Error(err)
					continue
				}
				cmp(name, have, data)
			}
		})
	}
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.Join(lines, []byte("\n"))
}

func TestUsage(t *testing.T) {
	var tests = []struct {
		args     []string
		exit     int
		toStdout bool
		msg      string
	}{
		{[]string{"-h"}, 0, true, ""},
		{[]string{"-help"}, 0, true, ""},
		{nil, 2, false, "letchain: usage: no files"},
		{[]string{"-d", "x", "a.rs"}, 2, false, `invalid value "x" for flag -d`},
		{[]string{"-d", "-1", "a.rs"}, 2, false, "letchain: usage: invalid deindent -1"},
		{[]string{"-j", "0", "a.rs"}, 2, false, "letchain: usage: invalid -j 0"},
		{[]string{"-name=", "a.rs"}, 2, false, "letchain: usage: empty macro name"},
		{[]string{"-bogus", "a.rs"}, 2, false, "flag provided but not defined: -bogus"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		code, err := run(tt.args, &stdout, &stderr)
		if err != nil {
			t.Fatalf("run(%q): %v", tt.args, err)
		}
		if code != tt.exit {
			t.Errorf("run(%q) = %d, want %d", tt.args, code, tt.exit)
		}
		out, other := stderr.String(), stdout.String()
		if tt.toStdout {
			out, other = other, out
		}
		if !strings.HasPrefix(strings.SplitN(out, "\n", 2)[0], "letchain: ") && !strings.HasPrefix(out, usageLine) {
			t.Errorf("run(%q) output does not start with a message or usage:\n%s", tt.args, out)
		}
		if !strings.Contains(out, usageLine) || !strings.Contains(out, "-deindent") {
			t.Errorf("run(%q) output lacks usage:\n%s", tt.args, out)
		}
		if !strings.Contains(out, tt.msg) {
			t.Errorf("run(%q) output lacks %q:\n%s", tt.args, tt.msg, out)
		}
		if other != "" {
			t.Errorf("run(%q) wrote to the other stream:\n%s", tt.args, other)
		}
	}
}
