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

package typeutil

import (
	"github.com/wdamron/kestrel/types"
)

// VarTracker allocates type-variables and tracks allocations.
//
// Ids are unique until the tracker is reset; the type checker resets the tracker (together with
// its substitution) after each top-level dependency group.
type VarTracker struct {
	NextId int
	count  int
}

func (vt *VarTracker) Reset() { vt.NextId, vt.count = 0, 0 }

// Count returns the number of variables allocated since the last reset.
func (vt *VarTracker) Count() int { return vt.count }

// New allocates a variable of kind k. Source is the declared parameter the variable was
// instantiated from, or nil.
func (vt *VarTracker) New(k types.Kind, source *types.Param) *types.Var {
	tv := types.NewVar(vt.NextId, k)
	tv.Source = source
	vt.NextId, vt.count = vt.NextId+1, vt.count+1
	return tv
}

// NewList allocates count variables of kind `*`.
func (vt *VarTracker) NewList(count int) []types.Type {
	vars := make([]types.Type, count)
	for i := range vars {
		vars[i] = vt.New(types.Star, nil)
	}
	return vars
}
