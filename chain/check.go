// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain

import (
	"strings"

	"rsc.io/letchain/grammar"
	"rsc.io/letchain/syntax"
)

// Check checks each condition of c, found in src, against the Rust
// grammar. A guard must be a complete if condition. A binding must be
// a let statement whose initializer starts where Parse split it.
// Errors are *ShapeError values.
func Check(c *Chain, src string) error {
	lines := strings.Split(src, "\n")
	for _, cond := range c.Conds {
		switch cond.Kind {
		case Guard:
			if !grammar.CheckCondition(text(lines, cond.Expr)) {
				return shapeErrorf(cond.ExprStart, "invalid condition expression")
			}
		case Binding:
			rel, ok := grammar.CheckLet(text(lines, syntax.Span{Start: cond.Start, End: cond.Semi.Start}))
			if !ok {
				return shapeErrorf(cond.Start, "invalid `let` binding")
			}
			if offset(cond.Start, rel) != cond.Expr.Start {
				return shapeErrorf(cond.Start, "ambiguous `=` in `let`")
			}
		}
	}
	return nil
}

// text returns the text of lines in sp.
func text(lines []string, sp syntax.Span) string {
	if sp.Start.Line == sp.End.Line {
		r := []rune(lines[sp.Start.Line-1])
		return string(r[sp.Start.Col:sp.End.Col])
	}
	var b strings.Builder
	b.WriteString(string([]rune(lines[sp.Start.Line-1])[sp.Start.Col:]))
	for l := sp.Start.Line + 1; l < sp.End.Line; l++ {
		b.WriteString("\n")
		b.WriteString(lines[l-1])
	}
	b.WriteString("\n")
	b.WriteString(string([]rune(lines[sp.End.Line-1])[:sp.End.Col]))
	return b.String()
}

// offset returns the absolute position of rel, a position relative to base.
func offset(base, rel syntax.Position) syntax.Position {
	if rel.Line == 1 {
		return syntax.Position{Line: base.Line, Col: base.Col + rel.Col}
	}
	return syntax.Position{Line: base.Line + rel.Line - 1, Col: rel.Col}
}
