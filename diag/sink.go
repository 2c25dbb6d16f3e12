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

import "sort"

// Sink accumulates diagnostics for one compilation. A stage or type-check group records the
// count at entry with Checkpoint and reports local success with OK.
//
// A Sink cannot be used concurrently.
type Sink struct {
	// Max limits the number of recorded errors. Errors beyond the limit are counted but dropped.
	Max   int
	count int
	errs  []*Error
}

// Create a sink recording at most max errors; max <= 0 means unlimited.
func NewSink(max int) *Sink { return &Sink{Max: max} }

// Report records a diagnostic.
func (s *Sink) Report(loc Loc, code Code, template string, args ...interface{}) *Error {
	e := &Error{Loc: loc, Code: code, Template: template, Args: args}
	s.count++
	if s.Max <= 0 || len(s.errs) < s.Max {
		s.errs = append(s.errs, e)
	}
	return e
}

// Count returns the number of errors reported, including dropped ones.
func (s *Sink) Count() int { return s.count }

// Checkpoint returns a marker for OK.
func (s *Sink) Checkpoint() int { return s.count }

// OK reports whether no errors were reported since the checkpoint.
func (s *Sink) OK(checkpoint int) bool { return s.count == checkpoint }

// Errors returns the recorded errors in reporting order.
func (s *Sink) Errors() []*Error { return s.errs }

// Since returns the recorded errors reported after the checkpoint.
func (s *Sink) Since(checkpoint int) []*Error {
	if checkpoint >= len(s.errs) {
		return nil
	}
	return s.errs[checkpoint:]
}

// Sorted returns a copy of the recorded errors ordered by location.
func (s *Sink) Sorted() []*Error {
	out := make([]*Error, len(s.errs))
	copy(out, s.errs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loc.Before(out[j].Loc) })
	return out
}
