// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Parse parses src into token trees.
// If the source does not lex or its delimiters do not balance,
// Parse returns an *ErrorList describing every problem found.
func Parse(name, src string) (*File, error) {
	var errs ErrorList
	s := &scanner{name: name, src: []rune(src), line: 1, errs: &errs}
	toks := s.scan()
	trees := build(name, toks, &errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return &File{Name: name, Trees: trees}, nil
}

func delimOf(text string) Delim {
	switch text {
	case "(", ")":
		return Paren
	case "[", "]":
		return Bracket
	}
	return Brace
}

// build assembles tokens into trees. It stops at the first unbalanced
// delimiter, since nothing after it can be grouped reliably.
func build(name string, toks []token, errs *ErrorList) []*Tree {
	root := &Tree{Kind: Group}
	stack := []*Tree{root}
	for _, t := range toks {
		top := stack[len(stack)-1]
		switch t.kind {
		case openDelim:
			g := &Tree{Kind: Group, Text: t.text, Delim: delimOf(t.text), Open: t.span}
			top.Trees = append(top.Trees, g)
			stack = append(stack, g)
		case closeDelim:
			if len(stack) == 1 {
				errs.Add(&Error{Filename: name, Pos: t.span.Start, Msg: "unexpected closing delimiter `" + t.text + "`"})
				return root.Trees
			}
			if d := delimOf(t.text); d != top.Delim {
				errs.Add(&Error{Filename: name, Pos: t.span.Start, Msg: "mismatched closing delimiter `" + t.text + "`, want `" + top.Delim.Close() + "` to close `" + top.Text + "` at " + top.Open.Start.String()})
				return root.Trees
			}
			top.Close = t.span
			top.Span = Span{top.Open.Start, t.span.End}
			stack = stack[:len(stack)-1]
		default:
			top.Trees = append(top.Trees, &Tree{Kind: t.kind, Text: t.text, Span: t.span})
		}
	}
	if len(stack) > 1 {
		top := stack[len(stack)-1]
		errs.Add(&Error{Filename: name, Pos: top.Open.Start, Msg: "unclosed delimiter `" + top.Text + "`"})
	}
	return root.Trees
}
