// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chain parses if_chain! invocations.
//
// The body of an invocation is a sequence of conditions, a then block,
// and an optional else block:
//
//	if_chain! {
//		if let Some(x) = y;
//		if x > 0;
//		then {
//			use(x);
//		} else {
//			other();
//		}
//	}
//
// Each condition is a guard (if EXPR;) or a binding (let PAT = INIT;).
// Locate finds the first invocation in a file and parses its body.
package chain

import (
	"errors"
	"fmt"

	pc "github.com/shibukawa/parsercombinator"

	"rsc.io/letchain/syntax"
)

// ErrUnsupportedShape is matched (with errors.Is) by every *ShapeError.
var ErrUnsupportedShape = errors.New("unsupported if_chain shape")

// A ShapeError reports an invocation body that is not a chain this
// package can parse, or a layout the rewriter cannot handle.
type ShapeError struct {
	Pos syntax.Position
	Msg string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Is reports whether target is ErrUnsupportedShape.
// A ShapeError is also a critical parse error, so that alternatives
// stop at the first clause that starts correctly but goes wrong.
func (e *ShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape || target == pc.ErrCritical
}

func shapeErrorf(pos syntax.Position, format string, args ...interface{}) *ShapeError {
	return &ShapeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Kind distinguishes the two kinds of condition.
type Kind int

const (
	Guard   Kind = iota // if EXPR;
	Binding             // let PAT = INIT;
)

func (k Kind) String() string {
	if k == Binding {
		return "binding"
	}
	return "guard"
}

// Form is the top-level shape of a condition's expression.
// It decides whether the expression needs parentheses once it is
// joined to its neighbors with &&.
type Form int

const (
	Plain   Form = iota
	Or           // a || b
	Closure      // |x| body, || body, move |x| body
	Let          // let P = e
)

var formNames = [...]string{
	Plain:   "plain",
	Or:      "or",
	Closure: "closure",
	Let:     "let",
}

func (f Form) String() string {
	return formNames[f]
}

// NeedsParens reports whether an expression of form f must be
// parenthesized when it appears as an operand of &&.
func (f Form) NeedsParens() bool {
	return f == Or || f == Closure
}

// A Condition is one link of a chain.
type Condition struct {
	Kind Kind

	// Start is the position of the leading keyword (if or let).
	// ExprStart is where the text kept in the conditional begins:
	// the expression after if, or the let keyword itself.
	Start     syntax.Position
	ExprStart syntax.Position

	Expr syntax.Span // guard expression, or binding initializer
	Form Form        // form of Expr
	Semi syntax.Span // terminating ;
}

// Then is the then clause of a chain.
type Then struct {
	Keyword syntax.Span
	Block   syntax.Span // including braces
}

// Else is the else clause of a chain.
type Else struct {
	Keyword syntax.Span
	Block   syntax.Span // including braces
}

// A Chain is the parsed body of an invocation.
// Conds is never empty and is in evaluation order.
type Chain struct {
	Conds []Condition
	Then  Then
	Else  *Else
}

// End returns the end of the chain's final block.
func (c *Chain) End() syntax.Position {
	if c.Else != nil {
		return c.Else.Block.End
	}
	return c.Then.Block.End
}

// A Site is the text of an invocation: path ! group.
type Site struct {
	Path  syntax.Span // from the first path segment through the macro name
	Bang  syntax.Span
	Open  syntax.Span // opening delimiter of the body
	Close syntax.Span // closing delimiter of the body
}

// Start returns the start of the invocation.
func (s Site) Start() syntax.Position { return s.Path.Start }

// End returns the end of the invocation.
func (s Site) End() syntax.Position { return s.Close.End }
