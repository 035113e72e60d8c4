// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// dump flattens trees into one line per token, with groups
// shown as their delimiters.
func dump(ts []*Tree) []string {
	var out []string
	for _, t := range ts {
		if t.Kind == Group {
			out = append(out, t.Delim.Open()+" "+t.Open.Start.String())
			out = append(out, dump(t.Trees)...)
			out = append(out, t.Delim.Close()+" "+t.Close.Start.String())
			continue
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Kind, t.Text, t.Span.Start))
	}
	return out
}

var parseTests = []struct {
	name string
	src  string
	want []string
}{
	{
		name: "macro",
		src:  "fn f() { x::y!(a); }",
		want: []string{
			"identifier fn 1:1",
			"identifier f 1:4",
			"( 1:5",
			") 1:6",
			"{ 1:8",
			"identifier x 1:10",
			"punctuation :: 1:11",
			"identifier y 1:13",
			"punctuation ! 1:14",
			"( 1:15",
			"identifier a 1:16",
			") 1:17",
			"punctuation ; 1:18",
			"} 1:20",
		},
	},
	{
		name: "literals",
		src: `'a 'b' b'c' "s\"}" r#"x"# // c
/* /* n */ */ 1.5e-3 ñ r#if
`,
		want: []string{
			"lifetime 'a 1:1",
			"literal 'b' 1:4",
			"literal b'c' 1:8",
			`literal "s\"}" 1:13`,
			`literal r#"x"# 1:20`,
			"literal 1.5e-3 2:15",
			"identifier ñ 2:22",
			"identifier r#if 2:24",
		},
	},
	{
		name: "escaped-quote",
		src:  `'\'' '\\' '}'`,
		want: []string{
			`literal '\'' 1:1`,
			`literal '\\' 1:6`,
			"literal '}' 1:11",
		},
	},
	{
		name: "shebang",
		src:  "#!/usr/bin/env run\n#![allow(x)]\n",
		want: []string{
			"punctuation # 2:1",
			"punctuation ! 2:2",
			"[ 2:3",
			"identifier allow 2:4",
			"( 2:9",
			"identifier x 2:10",
			") 2:11",
			"] 2:12",
		},
	},
	{
		name: "operators",
		src:  "a||b..=c != d;",
		want: []string{
			"identifier a 1:1",
			"punctuation || 1:2",
			"identifier b 1:4",
			"punctuation ..= 1:5",
			"identifier c 1:8",
			"punctuation != 1:10",
			"identifier d 1:13",
			"punctuation ; 1:14",
		},
	},
	{
		name: "crlf",
		src:  "a\r\n  b\r\n",
		want: []string{
			"identifier a 1:1",
			"identifier b 2:3",
		},
	},
}

func TestParse(t *testing.T) {
	for _, tt := range parseTests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse("x.rs", tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, dump(f.Trees)); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupSpan(t *testing.T) {
	f, err := Parse("x.rs", "x! {\n  a\n}")
	if err != nil {
		t.Fatal(err)
	}
	g := f.Trees[2]
	want := Span{Position{1, 3}, Position{3, 1}}
	if g.Span != want {
		t.Errorf("group span = %v, want %v", g.Span, want)
	}
	if g.Close != (Span{Position{3, 0}, Position{3, 1}}) {
		t.Errorf("group close = %v", g.Close)
	}
}

var errorTests = []struct {
	src string
	err string
}{
	{"fn f() { )", "x.rs:1:10: mismatched closing delimiter `)`, want `}` to close `{` at 1:8"},
	{"a }", "x.rs:1:3: unexpected closing delimiter `}`"},
	{"f(a\n", "x.rs:1:2: unclosed delimiter `(`"},
	{`let s = "abc`, "x.rs:1:9: unterminated string literal"},
	{"/* /* */", "x.rs:1:1: unterminated block comment"},
	{"` €", "x.rs:1:1: unexpected character '`'\nx.rs:1:3: unexpected character '€'"},
}

func TestParseErrors(t *testing.T) {
	for _, tt := range errorTests {
		_, err := Parse("x.rs", tt.src)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error", tt.src)
			continue
		}
		if err.Error() != tt.err {
			t.Errorf("Parse(%q) error:\n%s\nwant:\n%s", tt.src, err, tt.err)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error does not match ErrSyntax", tt.src)
		}
	}
}

func TestTreePredicates(t *testing.T) {
	f, err := Parse("x.rs", "if r#if then r#then macro_rules")
	if err != nil {
		t.Fatal(err)
	}
	ts := f.Trees
	if !ts[0].IsKeyword("if") || ts[1].IsKeyword("if") {
		t.Errorf("IsKeyword(if): want true for if, false for r#if")
	}
	if ts[0].IsIdent("if") || !ts[1].IsIdent("if") {
		t.Errorf("IsIdent(if): want false for if, true for r#if")
	}
	if !ts[2].IsIdent("then") || !ts[3].IsIdent("then") {
		t.Errorf("IsIdent(then): want true for then and r#then")
	}
	if ts[4].IsReserved() {
		t.Errorf("macro_rules reported as keyword")
	}
}
