// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grammar

import (
	"errors"
	"strings"
	"testing"

	"rsc.io/letchain/syntax"
)

func TestCheckFile(t *testing.T) {
	ok := `#![allow(dead_code)]
use std::fmt;

fn main() {
    if_chain! {
        if let Some(x) = y;
        then { println!("{}", x); }
    }
}
`
	if err := CheckFile("x.rs", ok); err != nil {
		t.Errorf("CheckFile(valid) = %v", err)
	}

	bad := "fn f() {\n    let = ;\n}\n"
	err := CheckFile("x.rs", bad)
	if err == nil {
		t.Fatal("CheckFile(invalid) succeeded")
	}
	if !errors.Is(err, syntax.ErrSyntax) {
		t.Errorf("CheckFile error does not match syntax.ErrSyntax")
	}
	if !strings.HasPrefix(err.Error(), "x.rs:2:") {
		t.Errorf("CheckFile error = %q, want error on line 2", err)
	}
}

func TestCheckCondition(t *testing.T) {
	var tests = []struct {
		expr string
		ok   bool
	}{
		{"a", true},
		{"a || b", true},
		{"x > 0 && y.is_some()", true},
		{"let Some(x) = y", true},
		{"v.iter().any(|e| *e == 0)", true},
		{"a\n            || b", true},
		{"a b", false},
		{"a +", false},
		{"a {} {}", false},
		{"", false},
	}
	for _, tt := range tests {
		if ok := CheckCondition(tt.expr); ok != tt.ok {
			t.Errorf("CheckCondition(%q) = %v, want %v", tt.expr, ok, tt.ok)
		}
	}
}

func TestCheckLet(t *testing.T) {
	var tests = []struct {
		stmt string
		init syntax.Position
		ok   bool
	}{
		{"let x = y", syntax.Position{Line: 1, Col: 8}, true},
		{"let Some(x) = a || b", syntax.Position{Line: 1, Col: 14}, true},
		{"let ok: Foo<Bar = bool> = a || b", syntax.Position{Line: 1, Col: 26}, true},
		{"let (a, b) =\n    pair()", syntax.Position{Line: 2, Col: 4}, true},
		{"let ñ = 1", syntax.Position{Line: 1, Col: 8}, true},
		{"let x", syntax.Position{}, false},
		{"let = y", syntax.Position{}, false},
		{"let Some(x) = y else { return }", syntax.Position{}, false},
		{"let (a b) = c", syntax.Position{}, false},
	}
	for _, tt := range tests {
		init, ok := CheckLet(tt.stmt)
		if ok != tt.ok || init != tt.init {
			t.Errorf("CheckLet(%q) = %v, %v, want %v, %v", tt.stmt, init, ok, tt.init, tt.ok)
		}
	}
}
