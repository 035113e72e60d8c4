// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"rsc.io/letchain/diff"
	"rsc.io/letchain/rewrite"
)

const usageLine = "usage: letchain [-d N] [-v] [-diff] [-name NAME] [-skip] [-j N] [-nocolor] file..."

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	modColor  = color.New(color.FgGreen)
)

func main() {
	log.SetPrefix("letchain: ")
	log.SetFlags(0)

	code, err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

type options struct {
	deindent int
	verbose  bool
	showDiff bool
	name     string
	skip     bool
	jobs     int
	noColor  bool
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("letchain", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&o.deindent, "d", 4, "remove up to `n` leading spaces or tabs from block lines; lines shorter than n are left alone")
	fs.IntVar(&o.deindent, "deindent", 4, "same as -d")
	fs.BoolVar(&o.verbose, "v", false, "print whether each file was modified")
	fs.BoolVar(&o.verbose, "verbose", false, "same as -v")
	fs.BoolVar(&o.showDiff, "diff", false, "show diff instead of writing files")
	fs.StringVar(&o.name, "name", rewrite.DefaultName, "name of the macro to rewrite")
	fs.BoolVar(&o.skip, "skip", false, "leave invocations that cannot be rewritten and continue")
	fs.IntVar(&o.jobs, "j", runtime.GOMAXPROCS(0), "number of files to process in parallel")
	fs.BoolVar(&o.noColor, "nocolor", false, "disable colored output")
	return fs
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, usageLine)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

func parseFlags(fs *flag.FlagSet, o *options, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, newErrUsage("%v", err)
	}
	switch {
	case o.deindent < 0:
		return nil, newErrUsage("invalid deindent %d", o.deindent)
	case o.jobs < 1:
		return nil, newErrUsage("invalid -j %d", o.jobs)
	case o.name == "":
		return nil, newErrUsage("empty macro name")
	case fs.NArg() == 0:
		return nil, newErrUsage("no files")
	}
	return fs.Args(), nil
}

// A fileResult is the outcome of processing one file.
type fileResult struct {
	path string
	res  *rewrite.Result
	diff []byte
	err  error // I/O problem
}

// run runs the command with the given arguments and returns its exit code.
// A non-nil error reports a bug detected while rewriting.
func run(args []string, stdout, stderr io.Writer) (int, error) {
	o := new(options)
	fs := newFlagSet(o)
	files, err := parseFlags(fs, o, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(stdout, fs)
			return 0, nil
		}
		fmt.Fprintf(stderr, "letchain: %v\n", err)
		usage(stderr, fs)
		return 2, nil
	}
	if o.noColor {
		color.NoColor = true
	}

	cfg := &rewrite.Config{
		Deindent:      o.deindent,
		Name:          o.name,
		SkipMalformed: o.skip,
	}
	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(o.jobs)
	for i, path := range files {
		g.Go(func() error {
			r, err := processFile(path, cfg, o.showDiff)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 1, err
	}

	code := 0
	for _, r := range results {
		if r.err != nil {
			errColor.Fprintf(stderr, "%v\n", r.err)
			code = 1
			continue
		}
		for _, d := range r.res.Diagnostics {
			c := warnColor
			if d.Severity == rewrite.Error {
				c = errColor
				code = 1
			}
			c.Fprintf(stderr, "%s\n", d)
		}
		if o.showDiff {
			stdout.Write(r.diff)
		}
		if o.verbose {
			if r.res.Changed {
				modColor.Fprintf(stdout, "modified %s\n", r.path)
			} else {
				fmt.Fprintf(stdout, "unchanged %s\n", r.path)
			}
		}
	}
	return code, nil
}

// processFile rewrites the file at path, or computes its diff if showDiff is set.
// Problems reading or writing the file are recorded in the result;
// the error is reserved for internal inconsistencies.
func processFile(path string, cfg *rewrite.Config, showDiff bool) (fileResult, error) {
	r := fileResult{path: path}
	info, err := os.Stat(path)
	if err != nil {
		r.err = err
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.err = err
		return r, nil
	}
	res, err := rewrite.Transform(path, string(data), cfg)
	if err != nil {
		return r, err
	}
	r.res = res
	if !res.Changed {
		return r, nil
	}
	if showDiff {
		r.diff, r.err = diff.Diff(path, data, []byte(res.Text))
		return r, nil
	}
	if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
		r.err = err
	}
	return r, nil
}
