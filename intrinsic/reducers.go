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

package intrinsic

import (
	"math"

	"fortio.org/safecast"
	"github.com/wdamron/kestrel/ast"
)

func intArgs(args []ast.Literal) ([]int32, bool) {
	out := make([]int32, len(args))
	for i, a := range args {
		lit, ok := a.(*ast.IntLit)
		if !ok {
			return nil, false
		}
		out[i] = lit.Value
	}
	return out, true
}

func longArgs(args []ast.Literal) ([]int64, bool) {
	out := make([]int64, len(args))
	for i, a := range args {
		lit, ok := a.(*ast.LongLit)
		if !ok {
			return nil, false
		}
		out[i] = lit.Value
	}
	return out, true
}

func doubleArgs(args []ast.Literal) ([]float64, bool) {
	out := make([]float64, len(args))
	for i, a := range args {
		lit, ok := a.(*ast.DoubleLit)
		if !ok {
			return nil, false
		}
		out[i] = lit.Value
	}
	return out, true
}

func boolArgs(args []ast.Literal) ([]bool, bool) {
	out := make([]bool, len(args))
	for i, a := range args {
		lit, ok := a.(*ast.BoolLit)
		if !ok {
			return nil, false
		}
		out[i] = lit.Value
	}
	return out, true
}

// Int arithmetic wraps on overflow.
func intOp(op func(a, b int32) (int32, bool)) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		xs, ok := intArgs(args)
		if !ok || len(xs) != 2 {
			return nil, false
		}
		r, ok := op(xs[0], xs[1])
		if !ok {
			return nil, false
		}
		return &ast.IntLit{Value: r, Loc: args[0].Location()}, true
	}
}

func reduceIntNeg(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := intArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.IntLit{Value: -xs[0], Loc: args[0].Location()}, true
}

func longOp(op func(a, b int64) (int64, bool)) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		xs, ok := longArgs(args)
		if !ok || len(xs) != 2 {
			return nil, false
		}
		r, ok := op(xs[0], xs[1])
		if !ok {
			return nil, false
		}
		return &ast.LongLit{Value: r, Loc: args[0].Location()}, true
	}
}

func reduceLongNeg(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := longArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.LongLit{Value: -xs[0], Loc: args[0].Location()}, true
}

func doubleOp(op func(a, b float64) float64) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		xs, ok := doubleArgs(args)
		if !ok || len(xs) != 2 {
			return nil, false
		}
		return &ast.DoubleLit{Value: op(xs[0], xs[1]), Loc: args[0].Location()}, true
	}
}

func reduceDoubleDivide(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := doubleArgs(args)
	if !ok || len(xs) != 2 || xs[1] == 0 {
		return nil, false
	}
	return &ast.DoubleLit{Value: xs[0] / xs[1], Loc: args[0].Location()}, true
}

func reduceDoubleNeg(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := doubleArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.DoubleLit{Value: -xs[0], Loc: args[0].Location()}, true
}

func intCmp(op func(a, b int32) bool) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		xs, ok := intArgs(args)
		if !ok || len(xs) != 2 {
			return nil, false
		}
		return &ast.BoolLit{Value: op(xs[0], xs[1]), Loc: args[0].Location()}, true
	}
}

// Equality folds only for literals of the same kind.
func reduceEquality(eq bool) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		if len(args) != 2 || args[0].TermName() != args[1].TermName() {
			return nil, false
		}
		same := args[0].Key() == args[1].Key()
		return &ast.BoolLit{Value: same == eq, Loc: args[0].Location()}, true
	}
}

func boolOp(op func(a, b bool) bool) Reducer {
	return func(args []ast.Literal) (ast.Literal, bool) {
		xs, ok := boolArgs(args)
		if !ok || len(xs) != 2 {
			return nil, false
		}
		return &ast.BoolLit{Value: op(xs[0], xs[1]), Loc: args[0].Location()}, true
	}
}

func reduceNot(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := boolArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.BoolLit{Value: !xs[0], Loc: args[0].Location()}, true
}

func reduceI2L(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := intArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.LongLit{Value: int64(xs[0]), Loc: args[0].Location()}, true
}

func reduceL2I(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := longArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	v, err := safecast.Conv[int32](xs[0])
	if err != nil {
		return nil, false
	}
	return &ast.IntLit{Value: v, Loc: args[0].Location()}, true
}

func reduceI2F(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := intArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	return &ast.DoubleLit{Value: float64(xs[0]), Loc: args[0].Location()}, true
}

func reduceF2I(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := doubleArgs(args)
	if !ok || len(xs) != 1 || math.IsNaN(xs[0]) {
		return nil, false
	}
	v, err := safecast.Truncate[int32](xs[0])
	if err != nil {
		return nil, false
	}
	return &ast.IntLit{Value: v, Loc: args[0].Location()}, true
}

func reduceL2F(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := longArgs(args)
	if !ok || len(xs) != 1 {
		return nil, false
	}
	v, err := safecast.Convert[float64](xs[0])
	if err != nil {
		return nil, false
	}
	return &ast.DoubleLit{Value: v, Loc: args[0].Location()}, true
}

func reduceF2L(args []ast.Literal) (ast.Literal, bool) {
	xs, ok := doubleArgs(args)
	if !ok || len(xs) != 1 || math.IsNaN(xs[0]) {
		return nil, false
	}
	v, err := safecast.Truncate[int64](xs[0])
	if err != nil {
		return nil, false
	}
	return &ast.LongLit{Value: v, Loc: args[0].Location()}, true
}
