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

// intrinsic provides the registry of built-in values: their names, declared types, and the
// reducers used for constant folding.
package intrinsic

import (
	"sort"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/types"
)

// Reducer folds an application of an intrinsic to constant arguments. It returns false when no
// constant result can be computed.
type Reducer func(args []ast.Literal) (ast.Literal, bool)

// Intrinsic is a built-in value.
type Intrinsic struct {
	Name string
	// Type is the declared type; polymorphic intrinsics have a scheme.
	Type types.Type
	// Reduce is nil for intrinsics which are never folded.
	Reduce Reducer
}

// Registry exposes intrinsics by name.
type Registry interface {
	Lookup(name string) (*Intrinsic, bool)
	// Names returns the registered names in sorted order.
	Names() []string
}

// Table is a Registry backed by a map.
type Table map[string]*Intrinsic

func (t Table) Lookup(name string) (*Intrinsic, bool) {
	in, ok := t[name]
	return in, ok
}

func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers an intrinsic, replacing any intrinsic of the same name.
func (t Table) Add(in *Intrinsic) { t[in.Name] = in }

func fn(params []types.Type, result types.Type) types.Type { return types.NewFn(params, result) }

// poly creates a scheme over fresh parameters named by names.
func poly(names []string, body func(ps ...types.Type) types.Type) types.Type {
	params := make([]*types.Param, len(names))
	args := make([]types.Type, len(names))
	for i, name := range names {
		params[i] = types.NewParam(name, types.Star)
		args[i] = params[i]
	}
	return types.NewScheme(params, body(args...))
}

// Default returns a new table holding the standard intrinsics. Each table owns its own type parameters.
func Default() Table {
	t := Table{}
	var (
		Int, Long, Double, Bool, String = types.Int, types.Long, types.Double, types.Bool, types.String
	)
	ii := fn([]types.Type{Int, Int}, Int)
	ll := fn([]types.Type{Long, Long}, Long)
	dd := fn([]types.Type{Double, Double}, Double)
	cmp := fn([]types.Type{Int, Int}, Bool)
	bb := fn([]types.Type{Bool, Bool}, Bool)

	for _, in := range []*Intrinsic{
		{Name: "plus", Type: ii, Reduce: intOp(func(a, b int32) (int32, bool) { return a + b, true })},
		{Name: "minus", Type: ii, Reduce: intOp(func(a, b int32) (int32, bool) { return a - b, true })},
		{Name: "times", Type: ii, Reduce: intOp(func(a, b int32) (int32, bool) { return a * b, true })},
		{Name: "divide", Type: ii, Reduce: intOp(func(a, b int32) (int32, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})},
		{Name: "mod", Type: ii, Reduce: intOp(func(a, b int32) (int32, bool) {
			if b == 0 {
				return 0, false
			}
			return a % b, true
		})},
		{Name: "neg", Type: fn([]types.Type{Int}, Int), Reduce: reduceIntNeg},

		{Name: "lplus", Type: ll, Reduce: longOp(func(a, b int64) (int64, bool) { return a + b, true })},
		{Name: "lminus", Type: ll, Reduce: longOp(func(a, b int64) (int64, bool) { return a - b, true })},
		{Name: "ltimes", Type: ll, Reduce: longOp(func(a, b int64) (int64, bool) { return a * b, true })},
		{Name: "ldivide", Type: ll, Reduce: longOp(func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})},
		{Name: "lmod", Type: ll, Reduce: longOp(func(a, b int64) (int64, bool) {
			if b == 0 {
				return 0, false
			}
			return a % b, true
		})},
		{Name: "lneg", Type: fn([]types.Type{Long}, Long), Reduce: reduceLongNeg},

		{Name: "fplus", Type: dd, Reduce: doubleOp(func(a, b float64) float64 { return a + b })},
		{Name: "fminus", Type: dd, Reduce: doubleOp(func(a, b float64) float64 { return a - b })},
		{Name: "ftimes", Type: dd, Reduce: doubleOp(func(a, b float64) float64 { return a * b })},
		{Name: "fdivide", Type: dd, Reduce: reduceDoubleDivide},
		{Name: "fneg", Type: fn([]types.Type{Double}, Double), Reduce: reduceDoubleNeg},

		{Name: "lt", Type: cmp, Reduce: intCmp(func(a, b int32) bool { return a < b })},
		{Name: "le", Type: cmp, Reduce: intCmp(func(a, b int32) bool { return a <= b })},
		{Name: "gt", Type: cmp, Reduce: intCmp(func(a, b int32) bool { return a > b })},
		{Name: "ge", Type: cmp, Reduce: intCmp(func(a, b int32) bool { return a >= b })},
		{Name: "eq", Type: poly([]string{"A"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{ps[0], ps[0]}, Bool)
		}), Reduce: reduceEquality(true)},
		{Name: "ne", Type: poly([]string{"A"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{ps[0], ps[0]}, Bool)
		}), Reduce: reduceEquality(false)},

		{Name: "and", Type: bb, Reduce: boolOp(func(a, b bool) bool { return a && b })},
		{Name: "or", Type: bb, Reduce: boolOp(func(a, b bool) bool { return a || b })},
		{Name: "not", Type: fn([]types.Type{Bool}, Bool), Reduce: reduceNot},

		{Name: "i2l", Type: fn([]types.Type{Int}, Long), Reduce: reduceI2L},
		{Name: "l2i", Type: fn([]types.Type{Long}, Int), Reduce: reduceL2I},
		{Name: "i2f", Type: fn([]types.Type{Int}, Double), Reduce: reduceI2F},
		{Name: "f2i", Type: fn([]types.Type{Double}, Int), Reduce: reduceF2I},
		{Name: "l2f", Type: fn([]types.Type{Long}, Double), Reduce: reduceL2F},
		{Name: "f2l", Type: fn([]types.Type{Double}, Long), Reduce: reduceF2L},

		{Name: "size", Type: poly([]string{"A"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{types.NewListOf(ps[0])}, Int)
		})},
		{Name: "append", Type: poly([]string{"A"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{types.NewListOf(ps[0]), ps[0]}, types.NewListOf(ps[0]))
		})},
		{Name: "keys", Type: poly([]string{"K", "V"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{types.NewMapOf(ps[0], ps[1])}, types.NewListOf(ps[0]))
		})},
		{Name: "print", Type: poly([]string{"A"}, func(ps ...types.Type) types.Type {
			return fn([]types.Type{ps[0]}, types.Unit)
		})},
		{Name: "strcat", Type: fn([]types.Type{String, String}, String)},
	} {
		t.Add(in)
	}
	return t
}
