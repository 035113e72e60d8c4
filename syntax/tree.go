// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax parses Rust source into token trees.
//
// A token tree is either a single token or a group of trees enclosed in
// matching delimiters. This is the level at which macro invocations are
// written and matched: the body of a macro call is an opaque sequence of
// trees until the macro itself gives it meaning. Parse therefore checks
// that a file lexes and that its delimiters balance, and nothing more.
//
// Positions count characters (Unicode code points), not bytes, so that
// they can be used directly against the lines of the text.
package syntax

import (
	"fmt"
	"strings"
)

// A Position is a point in a file.
// Line counts from 1; Col counts characters from 0.
type Position struct {
	Line int
	Col  int
}

// IsValid reports whether p refers to a line.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// String formats p as line:col with a 1-based column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col+1)
}

// A Span is the half-open range [Start, End).
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Kind is the kind of a Tree.
type Kind int

const (
	Ident    Kind = iota // identifiers and keywords, including r#raw identifiers
	Lifetime             // 'a
	Literal              // numbers, strings, characters
	Punct                // operators and separators, multi-character ones as one token
	Group                // delimited group of trees
)

var kindNames = [...]string{
	Ident:    "identifier",
	Lifetime: "lifetime",
	Literal:  "literal",
	Punct:    "punctuation",
	Group:    "group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Delim is the delimiter of a Group.
type Delim int

const (
	Paren   Delim = iota // ( )
	Bracket              // [ ]
	Brace                // { }
)

var delims = [...]struct{ open, close string }{
	Paren:   {"(", ")"},
	Bracket: {"[", "]"},
	Brace:   {"{", "}"},
}

// Open returns the opening delimiter text.
func (d Delim) Open() string { return delims[d].open }

// Close returns the closing delimiter text.
func (d Delim) Close() string { return delims[d].close }

// A Tree is a token or a delimited group of trees.
type Tree struct {
	Kind Kind
	Text string // token text; the opening delimiter for a group
	Span Span   // whole token, or whole group including delimiters

	// Group only.
	Delim Delim
	Open  Span
	Close Span
	Trees []*Tree
}

// IsPunct reports whether t is the punctuation token text.
func (t *Tree) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsKeyword reports whether t is the keyword kw.
// A raw identifier such as r#if is never a keyword.
func (t *Tree) IsKeyword(kw string) bool {
	return t.Kind == Ident && t.Text == kw && keywords[kw]
}

// IsReserved reports whether t is any keyword.
func (t *Tree) IsReserved() bool {
	return t.Kind == Ident && keywords[t.Text]
}

// IsIdent reports whether t is the identifier name.
// Raw identifiers match their unprefixed name.
func (t *Tree) IsIdent(name string) bool {
	return t.Kind == Ident && !keywords[t.Text] && t.Name() == name
}

// IsGroup reports whether t is a group delimited by d.
func (t *Tree) IsGroup(d Delim) bool {
	return t.Kind == Group && t.Delim == d
}

// Name returns the identifier t names, without any r# prefix.
func (t *Tree) Name() string {
	return strings.TrimPrefix(t.Text, "r#")
}

// String returns a short description of t for messages.
func (t *Tree) String() string {
	if t.Kind == Group {
		return "`" + t.Delim.Open() + "...`"
	}
	return "`" + t.Text + "`"
}

// SpanOf returns the span covering trees, which must not be empty.
func SpanOf(trees []*Tree) Span {
	return Span{trees[0].Span.Start, trees[len(trees)-1].Span.End}
}

// A File is a parsed source file.
type File struct {
	Name  string
	Trees []*Tree
}

var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true,

	// reserved
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true, "try": true,
}
