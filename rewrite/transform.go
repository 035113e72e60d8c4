// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"

	"rsc.io/letchain/chain"
	"rsc.io/letchain/grammar"
	"rsc.io/letchain/syntax"
)

// DefaultName is the macro rewritten when Config.Name is empty.
const DefaultName = "if_chain"

// Config controls Transform.
type Config struct {
	Deindent int    // leading characters removed from block lines
	Name     string // macro name; DefaultName if empty

	// SkipMalformed makes Transform leave an invocation it cannot
	// rewrite in place and continue with the next one.
	// By default the first such invocation stops the transform.
	SkipMalformed bool
}

// A Result is the outcome of Transform.
type Result struct {
	Text        string
	Changed     bool
	Rewrites    int
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic in r is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Transform rewrites the invocations in text one at a time, reparsing
// after each, until none is left.
//
// A file that does not parse, or an invocation that cannot be rewritten,
// stops the process with an error diagnostic. Files are checked against
// the full Rust grammar only once an invocation has been found, so a file
// with nothing to rewrite is never reported. Rewrites made before that
// point are kept in Result.Text. With cfg.SkipMalformed, an invocation
// that cannot be rewritten is reported and left alone instead.
//
// The error result is reserved for internal inconsistencies
// (see InternalError); everything else is a diagnostic.
func Transform(path, text string, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}

	res := &Result{Text: text}
	for {
		f, err := syntax.Parse(path, res.Text)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, parseDiagnostics(path, err)...)
			return res, nil
		}

		var skipped []Diagnostic
		var after syntax.Position
		checked := false
		for {
			r := chain.Locate(f, name, after)
			if r.Outcome == chain.NotFound {
				res.Diagnostics = append(res.Diagnostics, skipped...)
				return res, nil
			}
			if !checked {
				if err := grammar.CheckFile(path, res.Text); err != nil {
					res.Diagnostics = append(res.Diagnostics, parseDiagnostics(path, err)...)
					return res, nil
				}
				checked = true
			}

			var out string
			var warns []Diagnostic
			err := r.Err
			if r.Outcome == chain.Found {
				err = chain.Check(r.Chain, res.Text)
				if err == nil {
					out, warns, err = Rewrite(path, res.Text, r.Chain, r.Site, cfg.Deindent)
				}
			}
			if err != nil {
				if !errors.Is(err, chain.ErrUnsupportedShape) {
					return nil, err
				}
				d := shapeDiagnostic(path, name, err)
				if !cfg.SkipMalformed {
					res.Diagnostics = append(res.Diagnostics, d)
					return res, nil
				}
				skipped = append(skipped, d)
				after = r.Site.End()
				continue
			}

			res.Text = out
			res.Changed = true
			res.Rewrites++
			res.Diagnostics = append(res.Diagnostics, warns...)
			break
		}
	}
}
