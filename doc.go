// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Letchain rewrites if_chain! macro invocations in Rust source files
// into native let chains.
//
// Usage:
//
//	letchain [-d N] [-v] [-diff] [-name NAME] [-skip] [-j N] [-nocolor] file...
//
// For example, letchain turns
//
//	if_chain! {
//	    if let Some(x) = y;
//	    if x > 0;
//	    then {
//	        use(x);
//	    } else {
//	        other();
//	    }
//	}
//
// into
//
//	if let Some(x) = y
//	    && x > 0
//	{
//	    use(x);
//	} else {
//	    other();
//	}
//
// Conditions whose expression is an || operation or a closure are
// parenthesized so that they keep their meaning next to &&.
// Everything outside the invocation, and the comments and layout inside
// it, are left as they were, except that the lines of the blocks are
// deindented by up to N leading spaces or tabs (the -d flag, default 4).
// Other characters are never removed, and a line shorter than N
// characters is left alone.
// Nested invocations are rewritten from the outside in, one at a time,
// until none remain.
//
// By default, letchain writes changes back to the files.
// The -diff flag causes it to print a diff of the changes instead.
// The -v flag prints "modified" or "unchanged" for each file.
//
// An invocation that letchain cannot rewrite stops the processing of
// its file, keeping the rewrites made before it. The -skip flag leaves
// such invocations alone and continues with the rest of the file.
// In either case the problem is reported and the exit status is 1.
//
// The -name flag rewrites a macro with a different name but the same
// syntax, such as a re-export under another name.
package main
