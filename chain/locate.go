// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain

import "rsc.io/letchain/syntax"

// An Outcome is the kind of a Locate result.
type Outcome int

const (
	NotFound  Outcome = iota
	Found             // Chain and Site are set
	Malformed         // Site and Err are set
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Malformed:
		return "malformed"
	}
	return "not found"
}

// A Result is the result of Locate.
type Result struct {
	Outcome Outcome
	Chain   *Chain
	Site    Site
	Err     error // *ShapeError
}

// Locate returns the first invocation of the macro name in f,
// in depth-first pre-order, that starts at or after the position after.
// A zero after considers every invocation.
//
// The bodies of other macro invocations, of macro_rules! definitions,
// and of attributes are not searched: their contents are opaque tokens.
// The match is on the last segment of the macro path, so both
// if_chain! and if_chain::if_chain! are found.
func Locate(f *syntax.File, name string, after syntax.Position) Result {
	r, _ := locate(f.Trees, name, after)
	return r
}

func locate(ts []*syntax.Tree, name string, after syntax.Position) (Result, bool) {
	for i := 0; i < len(ts); i++ {
		t := ts[i]

		// #[attr] and #![attr]
		if t.IsPunct("#") {
			j := i + 1
			if j < len(ts) && ts[j].IsPunct("!") {
				j++
			}
			if j < len(ts) && ts[j].IsGroup(syntax.Bracket) {
				i = j
				continue
			}
		}

		// macro_rules! name { ... }
		if t.IsIdent("macro_rules") && i+3 < len(ts) && ts[i+1].IsPunct("!") && ts[i+2].Kind == syntax.Ident && ts[i+3].Kind == syntax.Group {
			i += 3
			continue
		}

		if t.Kind == syntax.Ident && !t.IsReserved() && i+2 < len(ts) && ts[i+1].IsPunct("!") && ts[i+2].Kind == syntax.Group {
			body := ts[i+2]
			if t.Name() != name {
				i += 2
				continue
			}
			site := Site{
				Path:  syntax.Span{Start: ts[pathStart(ts, i)].Span.Start, End: t.Span.End},
				Bang:  ts[i+1].Span,
				Open:  body.Open,
				Close: body.Close,
			}
			if site.Start().Before(after) {
				i += 2
				continue
			}
			c, err := Parse(body)
			if err != nil {
				return Result{Outcome: Malformed, Site: site, Err: err}, true
			}
			return Result{Outcome: Found, Chain: c, Site: site}, true
		}

		if t.Kind == syntax.Group {
			if r, ok := locate(t.Trees, name, after); ok {
				return r, true
			}
		}
	}
	return Result{Outcome: NotFound}, false
}

// pathStart returns the index of the first segment of the macro path
// ending at ts[i]: a::b::name, ::a::name, or $crate::name.
func pathStart(ts []*syntax.Tree, i int) int {
	for i >= 2 && ts[i-1].IsPunct("::") && ts[i-2].Kind == syntax.Ident {
		i -= 2
	}
	switch {
	case i >= 1 && ts[i-1].IsPunct("::"):
		i--
	case i >= 1 && ts[i-1].IsPunct("$"):
		i--
	}
	return i
}
