// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSyntax is matched (with errors.Is) by every error Parse returns.
var ErrSyntax = errors.New("syntax error")

// An Error is a syntax error at a particular position in a file.
type Error struct {
	Filename string
	Pos      Position
	Msg      string
}

func (e *Error) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}

type errorKey struct {
	pos Position
	msg string
}

// ErrorList is a set of Errors. It is also an error itself.
// The zero value is an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds e to l, suppressing duplicates (same position and message).
func (l *ErrorList) Add(e *Error) {
	k := errorKey{e.Pos, e.Msg}
	if l.set[k] {
		return
	}
	if l.set == nil {
		l.set = make(map[errorKey]bool)
	}
	l.errs = append(l.errs, e)
	l.set[k] = true
}

// Errors returns the errors in l, sorted by position.
func (l *ErrorList) Errors() []*Error {
	sort.SliceStable(l.errs, func(i, j int) bool {
		return l.errs[i].Pos.Before(l.errs[j].Pos)
	})
	return l.errs
}

// Error returns a "\n" separated list of the formatted errors.
// The result does not end in "\n".
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}
	var buf strings.Builder
	for i, e := range l.Errors() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

func (l *ErrorList) Unwrap() []error {
	errs := make([]error, len(l.errs))
	for i, e := range l.errs {
		errs[i] = e
	}
	return errs
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
