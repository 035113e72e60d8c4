// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"
	"unicode"
)

const eof = -1

// token kinds used only between the scanner and the tree builder.
const (
	openDelim Kind = Group + 1 + iota
	closeDelim
)

type token struct {
	kind Kind
	text string
	span Span
}

type scanner struct {
	name string
	src  []rune
	off  int
	line int
	col  int
	errs *ErrorList
}

func (s *scanner) pos() Position {
	return Position{s.line, s.col}
}

func (s *scanner) peek(k int) rune {
	if s.off+k < len(s.src) {
		return s.src[s.off+k]
	}
	return eof
}

func (s *scanner) next() rune {
	r := s.src[s.off]
	s.off++
	if r == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return r
}

func (s *scanner) errorf(pos Position, format string, args ...interface{}) {
	s.errs.Add(&Error{Filename: s.name, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// scan returns the tokens of the source, dropping whitespace and comments.
func (s *scanner) scan() []token {
	var toks []token
	s.shebang()
	for s.off < len(s.src) {
		r := s.peek(0)
		start, begin := s.pos(), s.off
		kind := Punct
		switch {
		case isSpace(r):
			s.next()
			continue
		case r == '/' && s.peek(1) == '/':
			for s.off < len(s.src) && s.peek(0) != '\n' {
				s.next()
			}
			continue
		case r == '/' && s.peek(1) == '*':
			s.blockComment(start)
			continue
		case r == '"':
			kind = Literal
			s.str(start)
		case r == '\'':
			kind = s.quote(start)
		case isDigit(r):
			kind = Literal
			s.number()
		case isIdentStart(r):
			kind = s.word(start)
		case r == '(' || r == '[' || r == '{':
			kind = openDelim
			s.next()
		case r == ')' || r == ']' || r == '}':
			kind = closeDelim
			s.next()
		default:
			if !s.punct() {
				s.errorf(start, "unexpected character %q", r)
				s.next()
				continue
			}
		}
		toks = append(toks, token{kind, string(s.src[begin:s.off]), Span{start, s.pos()}})
	}
	return toks
}

// shebang skips a #! line at the start of the file.
// #![ begins an inner attribute instead.
func (s *scanner) shebang() {
	if s.peek(0) != '#' || s.peek(1) != '!' {
		return
	}
	for i := s.off + 2; i < len(s.src); i++ {
		r := s.src[i]
		if r == '[' {
			return
		}
		if !isSpace(r) {
			break
		}
	}
	for s.off < len(s.src) && s.peek(0) != '\n' {
		s.next()
	}
}

func (s *scanner) blockComment(start Position) {
	s.next()
	s.next()
	depth := 1
	for depth > 0 {
		switch {
		case s.off >= len(s.src):
			s.errorf(start, "unterminated block comment")
			return
		case s.peek(0) == '/' && s.peek(1) == '*':
			s.next()
			s.next()
			depth++
		case s.peek(0) == '*' && s.peek(1) == '/':
			s.next()
			s.next()
			depth--
		default:
			s.next()
		}
	}
}

// str scans a quoted string with escapes and an optional suffix.
func (s *scanner) str(start Position) {
	s.next()
	for {
		if s.off >= len(s.src) {
			s.errorf(start, "unterminated string literal")
			return
		}
		switch s.next() {
		case '\\':
			if s.off < len(s.src) {
				s.next()
			}
		case '"':
			s.suffix()
			return
		}
	}
}

// rawStr scans r"...", r#"..."# and friends, positioned after the prefix letters.
func (s *scanner) rawStr(start Position) {
	hashes := 0
	for s.peek(0) == '#' {
		s.next()
		hashes++
	}
	if s.peek(0) != '"' {
		s.errorf(start, "invalid raw string literal")
		return
	}
	s.next()
	for {
		if s.off >= len(s.src) {
			s.errorf(start, "unterminated raw string literal")
			return
		}
		if s.next() != '"' {
			continue
		}
		n := 0
		for n < hashes && s.peek(0) == '#' {
			s.next()
			n++
		}
		if n == hashes {
			s.suffix()
			return
		}
	}
}

// quote scans a character literal or a lifetime.
func (s *scanner) quote(start Position) Kind {
	s.next()
	switch r := s.peek(0); {
	case r == '\\':
		s.next()
		if s.off < len(s.src) && s.peek(0) != '\n' {
			s.next() // escaped character
		}
		for {
			r := s.peek(0)
			if r == eof || r == '\n' {
				s.errorf(start, "unterminated character literal")
				return Literal
			}
			s.next()
			if r == '\'' {
				s.suffix()
				return Literal
			}
		}
	case r != eof && r != '\n' && s.peek(1) == '\'':
		s.next()
		s.next()
		s.suffix()
		return Literal
	case isIdentStart(r):
		for isIdentPart(s.peek(0)) {
			s.next()
		}
		return Lifetime
	}
	s.errorf(start, "invalid character literal")
	return Literal
}

func (s *scanner) number() {
	hex := s.peek(0) == '0' && (s.peek(1) == 'x' || s.peek(1) == 'X')
	digits := func() {
		for {
			r := s.peek(0)
			switch {
			case isIdentPart(r):
				s.next()
			case !hex && (r == '+' || r == '-') && isDigit(s.peek(1)) && (s.src[s.off-1] == 'e' || s.src[s.off-1] == 'E'):
				s.next()
			default:
				return
			}
		}
	}
	digits()
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		s.next()
		digits()
	}
}

// word scans an identifier, a raw identifier, or a literal with a
// letter prefix (b'x', b"..", br"..", r"..", c"..", cr"..").
func (s *scanner) word(start Position) Kind {
	begin := s.off
	for isIdentPart(s.peek(0)) {
		s.next()
	}
	switch w := string(s.src[begin:s.off]); {
	case w == "r" && s.peek(0) == '#' && isIdentStart(s.peek(1)):
		s.next()
		for isIdentPart(s.peek(0)) {
			s.next()
		}
	case (w == "r" || w == "br" || w == "cr") && (s.peek(0) == '"' || s.peek(0) == '#'):
		s.rawStr(start)
		return Literal
	case (w == "b" || w == "c") && s.peek(0) == '"':
		s.str(start)
		return Literal
	case w == "b" && s.peek(0) == '\'':
		s.quote(start)
		return Literal
	}
	return Ident
}

func (s *scanner) suffix() {
	if isIdentStart(s.peek(0)) {
		for isIdentPart(s.peek(0)) {
			s.next()
		}
	}
}

var puncts = []string{
	"<<=", ">>=", "...", "..=",
	"::", "->", "=>", "==", "!=", "<=", ">=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "<<", ">>", "..",
	"+", "-", "*", "/", "%", "^", "!", "&", "|", "=", "<", ">",
	"@", ".", ",", ";", ":", "#", "$", "?", "~",
}

// punct scans the longest punctuation token at the current offset.
func (s *scanner) punct() bool {
	for _, p := range puncts {
		n := 0
		for _, r := range p {
			if s.peek(n) != r {
				break
			}
			n++
		}
		if n == len(p) {
			for ; n > 0; n-- {
				s.next()
			}
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\u0085', '\u200e', '\u200f', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}
