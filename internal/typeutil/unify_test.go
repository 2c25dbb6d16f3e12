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
	"strings"
	"testing"

	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

func groundTypes() []types.Type {
	return []types.Type{
		types.Int,
		types.Bool,
		types.NewListOf(types.Int),
		types.NewListOf(types.String),
		types.NewTup(types.Int, types.Bool),
		types.NewTup(types.Int),
		types.NewFn([]types.Type{types.Int}, types.Int),
		types.NewFn([]types.Type{types.Int, types.Int}, types.Int),
		types.NewMapOf(types.Symbol, types.Int),
		types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int}, nil)),
		types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int, "y": types.Double}, nil)),
	}
}

func TestUnifyGroundCommutative(t *testing.T) {
	ts := groundTypes()
	for _, a := range ts {
		for _, b := range ts {
			ab := NewContext().Unify(a, b) == nil
			ba := NewContext().Unify(b, a) == nil
			if ab != ba {
				t.Fatalf("unify(%s, %s) = %v, unify(%s, %s) = %v", types.TypeString(a), types.TypeString(b), ab, types.TypeString(b), types.TypeString(a), ba)
			}
			if ab != (a == b) {
				t.Fatalf("unexpected result %v unifying %s with %s", ab, types.TypeString(a), types.TypeString(b))
			}
		}
	}
}

func TestUnifyVarsMakesTypesEqual(t *testing.T) {
	ctx := NewContext()
	a, b := ctx.Fresh(types.Star, nil), ctx.Fresh(types.Star, nil)
	left := types.NewFn([]types.Type{a, types.Int}, b)
	right := types.NewFn([]types.Type{types.Bool, b}, a)
	if err := ctx.Unify(left, right); err == nil {
		t.Fatalf("expected Bool and Int to conflict through a and b")
	}

	ctx = NewContext()
	a, b = ctx.Fresh(types.Star, nil), ctx.Fresh(types.Star, nil)
	left = types.NewFn([]types.Type{a, types.Int}, types.NewListOf(a))
	right = types.NewFn([]types.Type{types.Bool, b}, types.NewListOf(types.Bool))
	if err := ctx.Unify(left, right); err != nil {
		t.Fatal(err)
	}
	l, r := types.TypeString(ctx.Apply(left)), types.TypeString(ctx.Apply(right))
	if l != r || l != "(Bool, Int) -> [Bool]" {
		t.Fatalf("expected equal types after unification, found %s and %s", l, r)
	}
}

func TestOccursCheck(t *testing.T) {
	ctx := NewContext()
	tv := ctx.Fresh(types.Star, nil)
	for _, u := range []types.Type{
		types.NewListOf(tv),
		types.NewFn([]types.Type{tv}, types.Int),
		types.NewRec(types.NewMap(map[string]types.Type{"self": tv}, nil)),
	} {
		err := ctx.Unify(tv, u)
		if err == nil {
			t.Fatalf("expected recursive type error for %s", types.TypeString(u))
		}
		if err.(*UnifyError).Code != diag.TypeRecursive {
			t.Fatalf("expected recursive type error, found %v", err)
		}
		if ctx.Subst.Len() != 0 {
			t.Fatalf("expected no bindings after a failed occurs check")
		}
	}
}

func TestKindMismatch(t *testing.T) {
	ctx := NewContext()
	row := ctx.Fresh(types.StarKeyed, nil)
	err := ctx.Unify(row, types.Int)
	if err == nil || err.(*UnifyError).Code != diag.TypeKindMismatch {
		t.Fatalf("expected kind mismatch, found %v", err)
	}
}

func TestUnifyOpenRows(t *testing.T) {
	ctx := NewContext()
	ra, rb := ctx.Fresh(types.StarKeyed, nil), ctx.Fresh(types.StarKeyed, nil)
	a := types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int}, ra))
	b := types.NewRec(types.NewMap(map[string]types.Type{"y": types.Bool}, rb))
	if err := ctx.Unify(a, b); err != nil {
		t.Fatal(err)
	}
	sa, sb := types.TypeString(ctx.Apply(a)), types.TypeString(ctx.Apply(b))
	if sa != sb {
		t.Fatalf("expected equal rows, found %s and %s", sa, sb)
	}

	closed := types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int, "y": types.Bool}, nil))
	if err := ctx.Unify(a, closed); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ctx.Apply(a)); s != "(x: Int, y: Bool)" {
		t.Fatalf("expected closed row, found %s", s)
	}
}

func TestUnifyClosedRowMissingField(t *testing.T) {
	ctx := NewContext()
	a := types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int}, nil))
	b := types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int, "z": types.Int, "y": types.Int}, nil))
	err := ctx.Unify(a, b)
	if err == nil || NewContext().Unify(b, a) == nil {
		t.Fatalf("expected closed rows with different labels to fail")
	}
	if ue, ok := err.(*UnifyError); !ok || ue.Code != diag.TypeNoField || !strings.HasSuffix(ue.Msg, "missing y, z") {
		t.Fatalf("expected the missing labels to be named, found %v", err)
	}
}

func TestUnifyRecursiveRow(t *testing.T) {
	ctx := NewContext()
	r := ctx.Fresh(types.StarKeyed, nil)
	a := types.NewRec(types.NewMap(map[string]types.Type{"x": types.Int}, r))
	b := types.NewRec(types.NewMap(map[string]types.Type{"y": types.Int}, r))
	err := ctx.Unify(a, b)
	if err == nil || err.(*UnifyError).Code != diag.TypeRecursive {
		t.Fatalf("expected recursive row error, found %v", err)
	}
}

func TestUnifyEnums(t *testing.T) {
	ctx := NewContext()
	if ctx.Unify(&types.Extent{Size: 2}, &types.Extent{Size: 2}) != nil {
		t.Fatalf("expected equal extents to unify")
	}
	if ctx.Unify(&types.Extent{Size: 2}, &types.Extent{Size: 3}) == nil {
		t.Fatalf("expected extents of different sizes to fail")
	}
}

func TestUnifyAbstraction(t *testing.T) {
	a := types.NewParam("A", types.Star)
	pair := types.NewAbstraction("Twice", []*types.Param{a}, types.NewTup(a, a))
	ctx := NewContext()
	tv := ctx.Fresh(types.Star, nil)
	if err := ctx.Unify(&types.App{Base: pair, Arg: tv}, types.NewTup(types.Int, types.Int)); err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ctx.Apply(tv)); s != "Int" {
		t.Fatalf("expected Int, found %s", s)
	}
}

func TestUnifyRecursiveAbstraction(t *testing.T) {
	// Stream(A) = (head: A, tail: Stream(A))
	a := types.NewParam("A", types.Star)
	self := &types.Ref{Name: "Stream"}
	body := types.NewRec(types.NewMap(map[string]types.Type{"head": a, "tail": &types.App{Base: self, Arg: a}}, nil))
	stream := types.NewAbstraction("Stream", []*types.Param{a}, body)
	self.Target = &types.Builtin{Const: stream}

	ctx := NewContext()
	x := &types.App{Base: stream, Arg: types.Int}
	y := &types.App{Base: stream, Arg: types.Int}
	if err := ctx.Unify(x, y); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Unify(x, &types.App{Base: stream, Arg: types.Bool}); err == nil {
		t.Fatalf("expected Stream(Int) and Stream(Bool) to fail")
	}
}

func TestUnifyAbstractionsSharingAName(t *testing.T) {
	// Stream(A) = (head: A, tail: Stream(A)), and an unrelated Stream(A) = (head: A)
	a := types.NewParam("A", types.Star)
	self := &types.Ref{Name: "Stream"}
	body := types.NewRec(types.NewMap(map[string]types.Type{"head": a, "tail": &types.App{Base: self, Arg: a}}, nil))
	stream := types.NewAbstraction("Stream", []*types.Param{a}, body)
	self.Target = &types.Builtin{Const: stream}
	b := types.NewParam("A", types.Star)
	other := types.NewAbstraction("Stream", []*types.Param{b}, types.NewRec(types.NewMap(map[string]types.Type{"head": b}, nil)))

	x := types.NewTup(&types.App{Base: stream, Arg: types.Int}, &types.App{Base: stream, Arg: types.Int})
	y := types.NewTup(&types.App{Base: stream, Arg: types.Int}, &types.App{Base: other, Arg: types.Int})
	if err := NewContext().Unify(x, y); err == nil {
		t.Fatalf("expected distinct abstractions named Stream to fail")
	}
}

func TestTryUnifyRollsBack(t *testing.T) {
	ctx := NewContext()
	tv := ctx.Fresh(types.Star, nil)
	err := ctx.TryUnify(types.NewTup(tv, types.Int), types.NewTup(types.Bool, types.String))
	if err == nil {
		t.Fatalf("expected failure")
	}
	if ctx.Subst.Len() != 0 {
		t.Fatalf("expected rollback, found %s", ctx.Subst.String())
	}
	if !ctx.CanUnify(tv, types.Int) || ctx.Subst.Len() != 0 {
		t.Fatalf("expected CanUnify to succeed without bindings")
	}
}

func TestSourcePreserved(t *testing.T) {
	ctx := NewContext()
	p := types.NewParam("T", types.Star)
	declared := ctx.Fresh(types.Star, p)
	inferred := ctx.Fresh(types.Star, nil)
	if err := ctx.Unify(declared, inferred); err != nil {
		t.Fatal(err)
	}
	tv, ok := ctx.Apply(inferred).(*types.Var)
	if !ok || tv.Source != p {
		t.Fatalf("expected the declared variable to survive unification")
	}
	if !ctx.IsGeneral([]*types.Var{declared}) {
		t.Fatalf("expected the declared variable to remain general")
	}
}
