// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain

import (
	"errors"

	pc "github.com/shibukawa/parsercombinator"

	"rsc.io/letchain/syntax"
)

// An item is a parser token: a raw tree on input, a parsed clause on output.
type item struct {
	tree *syntax.Tree
	cond *Condition
	then *Then
	els  *Else
}

func toTokens(trees []*syntax.Tree) []pc.Token[item] {
	toks := make([]pc.Token[item], len(trees))
	for i, t := range trees {
		toks[i] = pc.Token[item]{
			Type: "tree",
			Pos: &pc.Pos{
				Line:  t.Span.Start.Line,
				Col:   t.Span.Start.Col,
				Index: i,
			},
			Val: item{tree: t},
			Raw: t.Text,
		}
	}
	return toks
}

func trees(toks []pc.Token[item]) []*syntax.Tree {
	ts := make([]*syntax.Tree, len(toks))
	for i, tok := range toks {
		ts[i] = tok.Val.tree
	}
	return ts
}

func clauseToken(at pc.Token[item], v item) []pc.Token[item] {
	return []pc.Token[item]{{Type: "clause", Pos: at.Pos, Val: v}}
}

// semi returns the index of the first ; in toks, or -1.
func semi(toks []pc.Token[item]) int {
	for i, tok := range toks {
		if tok.Val.tree.IsPunct(";") {
			return i
		}
	}
	return -1
}

// condition splits off the expression following a condition keyword.
// toks starts after the keyword; end is the index of the ; in toks.
func condition(kw *syntax.Tree, toks []pc.Token[item]) (expr []*syntax.Tree, end int, err error) {
	i := semi(toks)
	if i < 0 {
		last := kw
		if len(toks) > 0 {
			last = toks[len(toks)-1].Val.tree
		}
		return nil, 0, shapeErrorf(last.Span.End, "missing `;` after %s condition", kw)
	}
	if i == 0 {
		return nil, 0, shapeErrorf(kw.Span.End, "empty %s condition", kw)
	}
	return trees(toks[:i]), i, nil
}

var guard = pc.Trace("guard", func(pctx *pc.ParseContext[item], toks []pc.Token[item]) (int, []pc.Token[item], error) {
	kw := toks[0].Val.tree
	if !kw.IsKeyword("if") {
		return 0, nil, pc.ErrNotMatch
	}
	expr, n, err := condition(kw, toks[1:])
	if err != nil {
		return 0, nil, err
	}
	c := &Condition{
		Kind:      Guard,
		Start:     kw.Span.Start,
		ExprStart: expr[0].Span.Start,
		Expr:      syntax.SpanOf(expr),
		Form:      formOf(expr),
		Semi:      toks[1+n].Val.tree.Span,
	}
	return 2 + n, clauseToken(toks[0], item{cond: c}), nil
})

var binding = pc.Trace("binding", func(pctx *pc.ParseContext[item], toks []pc.Token[item]) (int, []pc.Token[item], error) {
	kw := toks[0].Val.tree
	if !kw.IsKeyword("let") {
		return 0, nil, pc.ErrNotMatch
	}
	ts, n, err := condition(kw, toks[1:])
	if err != nil {
		return 0, nil, err
	}
	eq := assign(ts)
	switch {
	case eq < 0:
		return 0, nil, shapeErrorf(kw.Span.Start, "`let` without `=`")
	case eq == 0:
		return 0, nil, shapeErrorf(ts[0].Span.Start, "missing pattern in `let`")
	case eq == len(ts)-1:
		return 0, nil, shapeErrorf(ts[eq].Span.End, "empty initializer in `let`")
	}
	init := ts[eq+1:]
	if pos, ok := letElse(init); ok {
		return 0, nil, shapeErrorf(pos, "let-else is not supported in a chain")
	}
	c := &Condition{
		Kind:      Binding,
		Start:     kw.Span.Start,
		ExprStart: kw.Span.Start,
		Expr:      syntax.SpanOf(init),
		Form:      formOf(init),
		Semi:      toks[1+n].Val.tree.Span,
	}
	return 2 + n, clauseToken(toks[0], item{cond: c}), nil
})

// assign returns the index of the token holding the = that separates
// the pattern from the initializer in a binding, or -1.
// An = in the generic arguments of a type annotation, as in
// x: Iter<Item = u8> = y, does not count. A glued >= or >>= that
// closes the annotation's last < is the separator, as in x: Vec<u8>= y.
func assign(ts []*syntax.Tree) int {
	typed := false
	depth := 0
	for i, t := range ts {
		if t.Kind != syntax.Punct {
			continue
		}
		switch t.Text {
		case ":":
			typed = true
		case "<":
			if typed {
				depth++
			}
		case "<<":
			if typed {
				depth += 2
			}
		case ">":
			depth = max(depth-1, 0)
		case ">>":
			depth = max(depth-2, 0)
		case "=":
			if depth == 0 {
				return i
			}
		case ">=":
			if depth <= 1 {
				return i
			}
			depth--
		case ">>=":
			if depth <= 2 {
				return i
			}
			depth -= 2
		}
	}
	return -1
}

// letElse reports whether init ends in a diverging else block,
// as in let Some(x) = y else { return };
// An else that belongs to an if expression in init does not count.
func letElse(init []*syntax.Tree) (syntax.Position, bool) {
	ifs := 0
	for _, t := range init {
		switch {
		case t.IsKeyword("if"):
			ifs++
		case t.IsKeyword("else"):
			if ifs == 0 {
				return t.Span.Start, true
			}
		}
	}
	return syntax.Position{}, false
}

// block parses a keyword followed by a brace block.
func block(kw string, toks []pc.Token[item]) (syntax.Span, syntax.Span, error) {
	t := toks[0].Val.tree
	if len(toks) < 2 || !toks[1].Val.tree.IsGroup(syntax.Brace) {
		pos := t.Span.End
		if len(toks) >= 2 {
			pos = toks[1].Val.tree.Span.Start
		}
		return syntax.Span{}, syntax.Span{}, shapeErrorf(pos, "`%s` must be followed by a block", kw)
	}
	return t.Span, toks[1].Val.tree.Span, nil
}

var thenClause = pc.Trace("then", func(pctx *pc.ParseContext[item], toks []pc.Token[item]) (int, []pc.Token[item], error) {
	if !toks[0].Val.tree.IsIdent("then") {
		return 0, nil, pc.ErrNotMatch
	}
	kw, blk, err := block("then", toks)
	if err != nil {
		return 0, nil, err
	}
	return 2, clauseToken(toks[0], item{then: &Then{Keyword: kw, Block: blk}}), nil
})

var elseClause = pc.Trace("else", func(pctx *pc.ParseContext[item], toks []pc.Token[item]) (int, []pc.Token[item], error) {
	if !toks[0].Val.tree.IsKeyword("else") {
		return 0, nil, pc.ErrNotMatch
	}
	kw, blk, err := block("else", toks)
	if err != nil {
		return 0, nil, err
	}
	return 2, clauseToken(toks[0], item{els: &Else{Keyword: kw, Block: blk}}), nil
})

var clause = pc.Or(guard, binding, thenClause, elseClause)

// Parse parses the body of an invocation.
// body is the delimited group following the macro name and !.
// Errors are *ShapeError values.
func Parse(body *syntax.Tree) (*Chain, error) {
	pctx := pc.NewParseContext[item]()
	toks := toTokens(body.Trees)
	c := new(Chain)
	for len(toks) > 0 {
		t := toks[0].Val.tree
		if c.Else != nil {
			return nil, shapeErrorf(t.Span.Start, "unexpected %s after else block", t)
		}
		n, out, err := clause(pctx, toks)
		if err != nil {
			var se *ShapeError
			switch {
			case errors.As(err, &se):
				return nil, se
			case errors.Is(err, pc.ErrNotMatch):
				return nil, shapeErrorf(t.Span.Start, "unexpected %s, want `if`, `let`, `then` or `else`", t)
			}
			return nil, shapeErrorf(t.Span.Start, "%v", err)
		}
		v := out[0].Val
		switch {
		case v.cond != nil:
			if c.Then.Block.End.IsValid() {
				return nil, shapeErrorf(t.Span.Start, "condition after `then`")
			}
			c.Conds = append(c.Conds, *v.cond)
		case v.then != nil:
			if c.Then.Block.End.IsValid() {
				return nil, shapeErrorf(t.Span.Start, "duplicate `then`")
			}
			if len(c.Conds) == 0 {
				return nil, shapeErrorf(t.Span.Start, "no conditions before `then`")
			}
			c.Then = *v.then
		case v.els != nil:
			if !c.Then.Block.End.IsValid() {
				return nil, shapeErrorf(t.Span.Start, "`else` without `then`")
			}
			c.Else = v.els
		}
		toks = toks[n:]
	}
	switch {
	case len(c.Conds) == 0:
		return nil, shapeErrorf(body.Close.Start, "no conditions")
	case !c.Then.Block.End.IsValid():
		return nil, shapeErrorf(body.Close.Start, "missing `then`")
	}
	return c, nil
}

// formOf returns the top-level form of the expression ts.
func formOf(ts []*syntax.Tree) Form {
	first := ts[0]
	if first.IsKeyword("let") {
		return Let
	}
	i := 0
	for i < len(ts)-1 && (ts[i].IsKeyword("move") || ts[i].IsKeyword("async") || ts[i].IsKeyword("static")) {
		i++
	}
	if ts[i].IsPunct("|") || ts[i].IsPunct("||") {
		return Closure
	}
	switch {
	case first.IsKeyword("return"), first.IsKeyword("break"), first.IsKeyword("continue"), first.IsKeyword("yield"):
		return Plain
	}
	// Assignments and ranges bind more loosely than ||,
	// so a || under them is not at the top level.
	for _, t := range ts[1:] {
		if t.Kind == syntax.Punct && looser[t.Text] {
			return Plain
		}
	}
	for _, t := range ts[1:] {
		if t.IsPunct("||") {
			return Or
		}
	}
	return Plain
}

var looser = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"^=": true, "&=": true, "|=": true, "<<=": true, ">>=": true,
	"..": true, "..=": true,
}
