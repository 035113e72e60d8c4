// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edit implements buffered edits to the lines of a text.
//
// A Buffer queues edits expressed in the coordinates of the original text:
// lines are numbered from 1 and columns count characters (runes) from 0.
// Because every edit refers to the original text, queued edits never shift
// one another; Apply sorts them, rejects overlaps, and produces the result
// in a single pass.
package edit

import (
	"fmt"
	"sort"
	"strings"
)

// A Buffer is a queue of edits to apply to the lines of a text.
type Buffer struct {
	lines []line
	q     edits
	joins []join
	err   error
}

type line struct {
	text []rune
	cr   bool // line was terminated by "\r\n"
}

// An edit replaces the characters [start, end) of a line.
type edit struct {
	line  int // index into Buffer.lines
	start int
	end   int
	new   string
}

type edits []edit

func (x edits) Len() int      { return len(x) }
func (x edits) Swap(i, j int) { x[i], x[j] = x[j], x[i] }
func (x edits) Less(i, j int) bool {
	if x[i].line != x[j].line {
		return x[i].line < x[j].line
	}
	if x[i].start != x[j].start {
		return x[i].start < x[j].start
	}
	return x[i].end < x[j].end
}

type join struct {
	dst, src int
}

// A RangeError reports an edit that does not fit the line it addresses,
// or that overlaps another edit of the same line.
type RangeError struct {
	Line int // 1-based
	Col  int // 0-based, in characters
	Msg  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// NewBuffer returns a Buffer holding the lines of text.
// Both "\n" and "\r\n" line endings are preserved.
func NewBuffer(text string) *Buffer {
	parts := strings.Split(text, "\n")
	b := &Buffer{lines: make([]line, len(parts))}
	for i, p := range parts {
		cr := false
		if i < len(parts)-1 && strings.HasSuffix(p, "\r") {
			p = p[:len(p)-1]
			cr = true
		}
		b.lines[i] = line{text: []rune(p), cr: cr}
	}
	return b
}

// Lines returns the number of lines in the original text.
// A text ending in a newline has a final empty line.
func (b *Buffer) Lines() int {
	return len(b.lines)
}

// Line returns the original text of line n, without its line ending.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return string(b.lines[n-1].text)
}

// Len returns the number of characters in line n of the original text.
func (b *Buffer) Len(n int) int {
	if n < 1 || n > len(b.lines) {
		return 0
	}
	return len(b.lines[n-1].text)
}

// Replace replaces the characters [start, end) of line n with new.
func (b *Buffer) Replace(n, start, end int, new string) {
	if !b.check(n, start, end) {
		return
	}
	b.q = append(b.q, edit{n - 1, start, end, new})
}

// Insert inserts new before character col of line n.
func (b *Buffer) Insert(n, col int, new string) {
	b.Replace(n, col, col, new)
}

// Delete deletes the characters [start, end) of line n.
func (b *Buffer) Delete(n, start, end int) {
	b.Replace(n, start, end, "")
}

// Join appends the text of line src to line dst and removes line src.
// Joins are applied after all character edits, in the order queued.
// A line that was already joined elsewhere is followed to the line now
// holding its text, so joins may be chained.
func (b *Buffer) Join(dst, src int) {
	if !b.check(dst, 0, 0) || !b.check(src, 0, 0) {
		return
	}
	b.joins = append(b.joins, join{dst - 1, src - 1})
}

func (b *Buffer) check(n, start, end int) bool {
	if b.err != nil {
		return false
	}
	switch {
	case n < 1 || n > len(b.lines):
		b.err = &RangeError{Line: n, Col: start, Msg: fmt.Sprintf("line out of range (%d lines)", len(b.lines))}
	case start < 0 || end < start:
		b.err = &RangeError{Line: n, Col: start, Msg: fmt.Sprintf("invalid range [%d,%d)", start, end)}
	case end > len(b.lines[n-1].text):
		b.err = &RangeError{Line: n, Col: start, Msg: fmt.Sprintf("range [%d,%d) past end of line (%d characters)", start, end, len(b.lines[n-1].text))}
	default:
		return true
	}
	return false
}

// Apply applies the queued edits and returns the resulting text.
// It reports the first invalid edit, or the first pair of overlapping
// edits, as a *RangeError.
func (b *Buffer) Apply() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	sort.Stable(b.q)

	text := make([]string, len(b.lines))
	for i, l := range b.lines {
		text[i] = string(l.text)
	}

	for i := 0; i < len(b.q); {
		n := b.q[i].line
		old := b.lines[n].text
		var sb strings.Builder
		offset := 0
		for ; i < len(b.q) && b.q[i].line == n; i++ {
			e := b.q[i]
			if e.start < offset {
				e0 := b.q[i-1]
				return "", &RangeError{
					Line: n + 1,
					Col:  e.start,
					Msg:  fmt.Sprintf("overlapping edits: [%d,%d)->%q, [%d,%d)->%q", e0.start, e0.end, e0.new, e.start, e.end, e.new),
				}
			}
			sb.WriteString(string(old[offset:e.start]))
			sb.WriteString(e.new)
			offset = e.end
		}
		sb.WriteString(string(old[offset:]))
		text[n] = sb.String()
	}

	holder := make([]int, len(b.lines))
	for i := range holder {
		holder[i] = i
	}
	find := func(i int) int {
		for holder[i] != i {
			i = holder[i]
		}
		return i
	}
	dead := make([]bool, len(b.lines))
	for _, j := range b.joins {
		dst, src := find(j.dst), find(j.src)
		if dst == src {
			continue
		}
		text[dst] += text[src]
		dead[src] = true
		holder[src] = dst
	}

	// Each surviving line keeps its own line ending. The last one keeps
	// none, like the final line of the original text.
	var out strings.Builder
	prev := -1
	for i := range text {
		if dead[i] {
			continue
		}
		if prev >= 0 {
			if b.lines[prev].cr {
				out.WriteString("\r")
			}
			out.WriteString("\n")
		}
		out.WriteString(text[i])
		prev = i
	}
	return out.String(), nil
}
