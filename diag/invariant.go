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

package diag

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// InternalError is raised (by panic) when an implementation invariant does not hold. It indicates
// a compiler bug rather than an error in the compiled program.
type InternalError struct {
	Msg    string
	Values string
}

func (e *InternalError) Error() string {
	if e.Values == "" {
		return "internal error: " + e.Msg
	}
	return "internal error: " + e.Msg + "\n" + e.Values
}

var dumper = spew.ConfigState{Indent: "  ", MaxDepth: 4, DisablePointerAddresses: true, SortKeys: true}

// Invariant panics with an InternalError describing the values involved when cond is false.
func Invariant(cond bool, msg string, values ...interface{}) {
	if cond {
		return
	}
	Fatal(msg, values...)
}

// Fatal panics with an InternalError describing the values involved.
func Fatal(msg string, values ...interface{}) {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(dumper.Sdump(v))
	}
	panic(&InternalError{Msg: msg, Values: strings.TrimRight(sb.String(), "\n")})
}
