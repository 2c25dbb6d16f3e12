// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package diag provides source locations, templated diagnostics and the error accumulator shared by all
// analysis stages.
package diag

import "strconv"

// Loc is a source location assigned by the parser.
type Loc struct {
	File string
	Line int
	Col  int
}

// NoLoc is the location of synthesized or intrinsic nodes.
var NoLoc = Loc{}

// IsValid reports whether l was assigned by the parser.
func (l Loc) IsValid() bool { return l.Line > 0 }

// Compare orders locations by file, line, then column.
func (l Loc) Compare(other Loc) int {
	switch {
	case l.File < other.File:
		return -1
	case l.File > other.File:
		return 1
	case l.Line != other.Line:
		if l.Line < other.Line {
			return -1
		}
		return 1
	case l.Col != other.Col:
		if l.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether l precedes other.
func (l Loc) Before(other Loc) bool { return l.Compare(other) < 0 }

// Suffix returns a `_line_col` suffix used to disambiguate synthesized names.
func (l Loc) Suffix() string {
	return "_" + strconv.Itoa(l.Line) + "_" + strconv.Itoa(l.Col)
}

func (l Loc) String() string {
	if !l.IsValid() {
		if l.File == "" {
			return "<intrinsic>"
		}
		return l.File
	}
	s := strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
	if l.File == "" {
		return s
	}
	return l.File + ":" + s
}
