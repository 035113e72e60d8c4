// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite collapses if_chain! invocations into let chains.
//
// An invocation
//
//	if_chain! {
//		if let Some(x) = y;
//		if x > 0 || all;
//		then {
//			use(x);
//		}
//	}
//
// becomes
//
//	if let Some(x) = y
//		&& (x > 0 || all)
//	{
//		use(x);
//	}
//
// All edits are made against the original text, line by line, so that
// comments and layout around and inside the invocation survive.
package rewrite

import (
	"errors"

	"rsc.io/letchain/chain"
	"rsc.io/letchain/edit"
)

// Rewrite returns text with the invocation at site, whose body parsed as c,
// replaced by the equivalent conditional. Lines of the then and else blocks
// lose up to deindent leading spaces or tabs.
//
// The returned diagnostics are warnings about the result.
// A layout the rewrite cannot handle is reported as a *chain.ShapeError;
// edits that do not fit text are reported as an *InternalError.
func Rewrite(path, text string, c *chain.Chain, site chain.Site, deindent int) (string, []Diagnostic, error) {
	b := edit.NewBuffer(text)
	first := c.Conds[0]

	var warns []Diagnostic
	if first.Start.Line > site.Bang.Start.Line+1 {
		warns = append(warns, Diagnostic{
			Path:     path,
			Line:     first.Start.Line - 1,
			Severity: Warning,
			Message:  "found leading comment or blank line, may require manual fixup",
		})
	}

	// Conditions become the operands of &&.
	for i, cond := range c.Conds {
		end := ""
		if cond.Form.NeedsParens() {
			b.Insert(cond.Expr.Start.Line, cond.Expr.Start.Col, "(")
			end = ")"
		}
		b.Replace(cond.Semi.Start.Line, cond.Semi.Start.Col, cond.Semi.End.Col, end)
		if i == 0 {
			continue
		}
		if cond.Start.Line != cond.ExprStart.Line {
			return "", nil, &chain.ShapeError{Pos: cond.Start, Msg: "condition expression must start on the line of its `if`"}
		}
		b.Replace(cond.Start.Line, cond.Start.Col, cond.ExprStart.Col, "&& ")
	}

	then := c.Then
	if then.Keyword.Start.Line != then.Block.Start.Line {
		return "", nil, &chain.ShapeError{Pos: then.Keyword.Start, Msg: "`then` and its block must be on the same line"}
	}
	b.Delete(then.Keyword.Start.Line, then.Keyword.Start.Col, then.Block.Start.Col)

	start, end := site.Start(), c.End()
	for n := then.Keyword.Start.Line; n <= end.Line; n++ {
		if n == start.Line || n == first.Start.Line {
			continue
		}
		if k := indent(b.Line(n), deindent); k > 0 {
			b.Delete(n, 0, k)
		}
	}

	// Header: the invocation up to the first condition.
	kw := ""
	if first.Kind == chain.Binding {
		kw = "if "
	}
	if start.Line == first.Start.Line {
		b.Replace(start.Line, start.Col, first.Start.Col, kw)
	} else {
		b.Delete(start.Line, start.Col, b.Len(start.Line))
		b.Replace(first.Start.Line, 0, first.Start.Col, kw)
		b.Join(start.Line, first.Start.Line)
	}

	// Tail: whatever follows the invocation moves up behind the final block.
	cl := site.Close.End
	if end.Line == cl.Line {
		b.Delete(end.Line, end.Col, cl.Col)
	} else {
		b.Delete(cl.Line, 0, cl.Col)
		b.Join(end.Line, cl.Line)
	}

	out, err := b.Apply()
	if err != nil {
		var re *edit.RangeError
		if errors.As(err, &re) {
			return "", nil, internalError(path, re)
		}
		return "", nil, err
	}
	return out, warns, nil
}

// indent returns how many leading characters of line to remove:
// up to width spaces or tabs, or none if line is shorter than width.
func indent(line string, width int) int {
	r := []rune(line)
	if len(r) < width {
		return 0
	}
	n := 0
	for n < width && (r[n] == ' ' || r[n] == '\t') {
		n++
	}
	return n
}
