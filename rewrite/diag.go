// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"

	"rsc.io/letchain/chain"
	"rsc.io/letchain/edit"
	"rsc.io/letchain/syntax"
)

// Severity is the severity of a Diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// A Diagnostic is a message about a file.
type Diagnostic struct {
	Path     string
	Line     int // 1-based
	Col      int // 1-based; 0 if unknown
	Severity Severity
	Message  string
}

// String formats d as path:line:col: message, omitting an unknown column.
func (d Diagnostic) String() string {
	if d.Col > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Line, d.Col, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.Path, d.Line, d.Message)
}

func parseDiagnostics(path string, err error) []Diagnostic {
	var list *syntax.ErrorList
	if !errors.As(err, &list) {
		return []Diagnostic{{Path: path, Line: 1, Severity: Error, Message: err.Error()}}
	}
	var diags []Diagnostic
	for _, e := range list.Errors() {
		diags = append(diags, Diagnostic{
			Path:     path,
			Line:     e.Pos.Line,
			Col:      e.Pos.Col + 1,
			Severity: Error,
			Message:  "failed to parse: " + e.Msg,
		})
	}
	return diags
}

func shapeDiagnostic(path string, name string, err error) Diagnostic {
	var se *chain.ShapeError
	if !errors.As(err, &se) {
		return Diagnostic{Path: path, Line: 1, Severity: Error, Message: err.Error()}
	}
	return Diagnostic{
		Path:     path,
		Line:     se.Pos.Line,
		Col:      se.Pos.Col + 1,
		Severity: Error,
		Message:  fmt.Sprintf("cannot rewrite %s!: %s", name, se.Msg),
	}
}

// ErrInternal is matched (with errors.Is) by every *InternalError.
var ErrInternal = errors.New("internal span inconsistency")

// An InternalError reports edits computed from a chain that do not fit
// the text the chain was parsed from. It always indicates a bug.
// Formatting it with %+v prints where it was detected.
type InternalError struct {
	Path  string
	Err   *edit.RangeError
	frame xerrors.Frame
}

func internalError(path string, err *edit.RangeError) *InternalError {
	return &InternalError{Path: path, Err: err, frame: xerrors.Caller(1)}
}

func (e *InternalError) Error() string { return fmt.Sprint(e) }

func (e *InternalError) Format(s fmt.State, v rune) { xerrors.FormatError(e, s, v) }

func (e *InternalError) FormatError(p xerrors.Printer) error {
	p.Printf("%s:%d:%d: %v: %s", e.Path, e.Err.Line, e.Err.Col+1, ErrInternal, e.Err.Msg)
	e.frame.Format(p)
	return nil
}

func (e *InternalError) Is(target error) bool { return target == ErrInternal }

func (e *InternalError) Unwrap() error { return e.Err }
