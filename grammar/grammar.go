// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grammar checks Rust source against the tree-sitter Rust grammar.
//
// The syntax package only balances delimiters. The checks here decide
// whether a whole file, a single condition expression, or a single let
// statement is actually Rust.
package grammar

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"rsc.io/letchain/syntax"
)

func parse(src []byte) (*sitter.Node, error) {
	p := sitter.NewParser()
	p.SetLanguage(rust.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, err
	}
	return tree.RootNode(), nil
}

// CheckFile reports the first place where src is not a valid Rust file.
// The error is a *syntax.ErrorList, so that it prints and sorts like
// the errors from syntax.Parse.
func CheckFile(name, src string) error {
	b := []byte(src)
	root, err := parse(b)
	if err != nil {
		return err
	}
	bad, msg := firstError(root, b)
	if bad == nil {
		return nil
	}
	var errs syntax.ErrorList
	errs.Add(&syntax.Error{
		Filename: name,
		Pos:      position(b, int(bad.StartByte())),
		Msg:      msg,
	})
	return errs.Err()
}

// firstError returns the first error or missing node under n,
// in source order, and a message describing it.
func firstError(n *sitter.Node, src []byte) (*sitter.Node, string) {
	switch {
	case n.IsMissing():
		return n, fmt.Sprintf("missing `%s`", n.Type())
	case n.IsError():
		return n, fmt.Sprintf("unexpected `%s`", firstToken(n, src))
	case !n.HasError():
		return nil, ""
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad, msg := firstError(n.Child(i), src); bad != nil {
			return bad, msg
		}
	}
	// HasError with no error child: the error is n itself.
	return n, fmt.Sprintf("unexpected `%s`", firstToken(n, src))
}

func firstToken(n *sitter.Node, src []byte) string {
	for n.ChildCount() > 0 {
		n = n.Child(0)
	}
	text := n.Content(src)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return text
}

// position converts a byte offset in src to a Position.
func position(src []byte, off int) syntax.Position {
	p := syntax.Position{Line: 1}
	for _, r := range string(src[:off]) {
		if r == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// A fragment is a piece of text embedded in a function body
// so that it can be parsed on its own.
type fragment struct {
	src        []byte
	start, end int // byte range of the piece in src
}

func embed(before, text, after string) fragment {
	src := "fn f() {\n" + before + text + after + "\n}\n"
	start := len("fn f() {\n") + len(before)
	return fragment{src: []byte(src), start: start, end: start + len(text)}
}

// find returns the first node of type typ under n in pre-order.
func find(n *sitter.Node, typ string) *sitter.Node {
	if n.Type() == typ {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if m := find(n.Child(i), typ); m != nil {
			return m
		}
	}
	return nil
}

// CheckCondition reports whether expr is a complete expression that can
// stand as the condition of an if, including let P = e.
func CheckCondition(expr string) bool {
	fr := embed("if ", expr, " {}")
	root, err := parse(fr.src)
	if err != nil || root.HasError() {
		return false
	}
	n := find(root, "if_expression")
	if n == nil {
		return false
	}
	cond := n.ChildByFieldName("condition")
	return cond != nil && int(cond.StartByte()) == fr.start && int(cond.EndByte()) == fr.end
}

// CheckLet checks that stmt, which starts with let and omits the final
// semicolon, is a let statement with an initializer and no else block.
// It returns the position of the initializer relative to the start of
// stmt, which is line 1, column 0.
func CheckLet(stmt string) (init syntax.Position, ok bool) {
	fr := embed("", stmt, ";")
	root, err := parse(fr.src)
	if err != nil || root.HasError() {
		return syntax.Position{}, false
	}
	n := find(root, "let_declaration")
	if n == nil || int(n.StartByte()) != fr.start || int(n.EndByte()) != fr.end+1 {
		return syntax.Position{}, false
	}
	value := n.ChildByFieldName("value")
	if value == nil || n.ChildByFieldName("alternative") != nil {
		return syntax.Position{}, false
	}
	return position([]byte(stmt), int(value.StartByte())-fr.start), true
}
