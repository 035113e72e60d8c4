// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edit

import (
	"errors"
	"strings"
	"testing"
)

func TestApply(t *testing.T) {
	var tests = []struct {
		name string
		in   string
		do   func(*Buffer)
		out  string
	}{
		{
			name: "none",
			in:   "abc\ndef\n",
			do:   func(b *Buffer) {},
			out:  "abc\ndef\n",
		},
		{
			name: "replace",
			in:   "0123456789",
			do: func(b *Buffer) {
				b.Replace(1, 5, 7, "xx")
				b.Insert(1, 0, "[")
				b.Insert(1, 10, "]")
				b.Delete(1, 1, 3)
			},
			out: "[034xx789]",
		},
		{
			name: "order",
			in:   "abc",
			do: func(b *Buffer) {
				b.Insert(1, 1, "1")
				b.Insert(1, 1, "2")
				b.Replace(1, 1, 2, "B")
			},
			out: "a12Bc",
		},
		{
			name: "runes",
			in:   "let s = \"ñandú\"; x;",
			do: func(b *Buffer) {
				b.Replace(1, 15, 16, "")
				b.Insert(1, 17, "y")
			},
			out: "let s = \"ñandú\" yx;",
		},
		{
			name: "join",
			in:   "a\nb\nc\nd\n",
			do: func(b *Buffer) {
				b.Join(1, 3)
			},
			out: "ac\nb\nd\n",
		},
		{
			name: "chained-join",
			in:   "a\nb\nc\nd",
			do: func(b *Buffer) {
				b.Join(1, 2)
				b.Join(2, 4)
			},
			out: "abd\nc",
		},
		{
			name: "join-after-edit",
			in:   "    x! {\n        if a;\n    }\n",
			do: func(b *Buffer) {
				b.Delete(1, 4, 8)
				b.Replace(2, 0, 8, "")
				b.Replace(2, 12, 13, "")
				b.Join(1, 2)
			},
			out: "    if a\n    }\n",
		},
		{
			name: "crlf",
			in:   "a\r\nb\r\nc\r\n",
			do: func(b *Buffer) {
				b.Join(1, 2)
				b.Insert(3, 0, "C")
			},
			out: "ab\r\nCc\r\n",
		},
		{
			name: "join-last",
			in:   "a\nb",
			do: func(b *Buffer) {
				b.Join(1, 2)
			},
			out: "ab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.in)
			tt.do(b)
			out, err := b.Apply()
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.out {
				t.Errorf("Apply() = %q, want %q", out, tt.out)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	var tests = []struct {
		name string
		do   func(*Buffer)
		err  string
	}{
		{
			name: "overlap",
			do: func(b *Buffer) {
				b.Replace(1, 0, 3, "x")
				b.Replace(1, 2, 4, "y")
			},
			err: "1:3: overlapping edits",
		},
		{
			name: "past-end",
			do: func(b *Buffer) {
				b.Delete(2, 1, 9)
			},
			err: "2:2: range [1,9) past end of line (3 characters)",
		},
		{
			name: "bad-line",
			do: func(b *Buffer) {
				b.Insert(7, 0, "x")
			},
			err: "7:1: line out of range (3 lines)",
		},
		{
			name: "bad-range",
			do: func(b *Buffer) {
				b.Replace(1, 3, 2, "x")
			},
			err: "1:4: invalid range [3,2)",
		},
		{
			name: "first-error-sticks",
			do: func(b *Buffer) {
				b.Join(0, 1)
				b.Delete(1, 0, 99)
			},
			err: "0:1: line out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer("abcdef\nghi\n")
			tt.do(b)
			_, err := b.Apply()
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("Apply() error = %v, want *RangeError", err)
			}
			if !strings.HasPrefix(err.Error(), tt.err) {
				t.Errorf("Apply() error = %q, want prefix %q", err, tt.err)
			}
		})
	}
}

func TestLines(t *testing.T) {
	b := NewBuffer("ab\r\nñandú\n")
	if n := b.Lines(); n != 3 {
		t.Errorf("Lines() = %d, want 3", n)
	}
	if s := b.Line(1); s != "ab" {
		t.Errorf("Line(1) = %q, want %q", s, "ab")
	}
	if n := b.Len(2); n != 5 {
		t.Errorf("Len(2) = %d, want 5", n)
	}
	if s := b.Line(4); s != "" {
		t.Errorf("Line(4) = %q, want empty", s)
	}
}
