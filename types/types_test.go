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

package types

import (
	"testing"

	"github.com/wdamron/kestrel/diag"
)

func TestTypeString(t *testing.T) {
	a, b := NewVar(1, Star), NewVar(2, Star)
	r := NewVar(3, StarKeyed)
	cases := []struct {
		t    Type
		want string
	}{
		{NewFn([]Type{Int}, Int), "Int -> Int"},
		{NewFn([]Type{Int, String}, Bool), "(Int, String) -> Bool"},
		{NewFn(nil, Unit), "() -> ()"},
		{NewFn([]Type{NewFn([]Type{a}, b)}, NewFn([]Type{a}, b)), "('a -> 'b) -> 'a -> 'b"},
		{NewListOf(a), "['a]"},
		{NewMapOf(Symbol, NewListOf(Int)), "[Symbol : [Int]]"},
		{NewTup(Int, b), "(Int, 'a)"},
		{NewTup(Int), "(Int,)"},
		{NewRec(NewMap(map[string]Type{"y": Int, "x": Double}, r)), "(x: Double, y: Int | 'a)"},
		{NewRec(NewMap(nil, nil)), "(:)"},
		{NewSum(NewMap(map[string]Type{"none": Unit, "some": Int}, nil)), "<none: (), some: Int>"},
		{&Extent{Size: 3}, "0..3"},
		{&Wildcard{}, "_"},
	}
	for _, c := range cases {
		if s := TypeString(c.t); s != c.want {
			t.Fatalf("expected %s, found %s", c.want, s)
		}
	}
}

func TestFormatterAmbientNames(t *testing.T) {
	outer, inner := NewVar(10, Star), NewVar(4, Star)
	f := NewFormatter([]*Var{outer})
	if s := f.Format(NewFn([]Type{inner}, outer)); s != "'b -> 'a" {
		t.Fatalf("type: %s", s)
	}
	if s := f.Format(inner); s != "'b" {
		t.Fatalf("expected consistent names across types, found %s", s)
	}
}

func TestKindCheck(t *testing.T) {
	if err := CheckKinds(NewMapOf(Symbol, Int)); err != nil {
		t.Fatal(err)
	}
	if err := CheckKinds(&App{Base: Int, Arg: Int}); err == nil {
		t.Fatalf("expected kind error applying Int")
	}
	if err := CheckKinds(&App{Base: ListC, Arg: NewList(Int)}); err == nil {
		t.Fatalf("expected kind error applying List to a type list")
	}
	if err := CheckKinds(&App{Base: TupC, Arg: NewTuple(Int, Bool)}); err != nil {
		t.Fatalf("expected Tup to accept a type tuple: %v", err)
	}
	if err := CheckKinds(&App{Base: RecC, Arg: Int}); err == nil {
		t.Fatalf("expected kind error applying Rec to Int")
	}
}

func TestSubstBindComposes(t *testing.T) {
	a, b := NewVar(1, Star), NewVar(2, Star)
	s := NewSubst().Bind(a, NewListOf(b))
	s = s.Bind(b, Int)
	if got := TypeString(s.Apply(a)); got != "[Int]" {
		t.Fatalf("expected composed binding, found %s", got)
	}
	if ta, _ := s.Get(1); TypeString(ta) != "[Int]" {
		t.Fatalf("expected earlier binding rewritten, found %s", TypeString(ta))
	}
}

func TestSubstApplySharesUnchanged(t *testing.T) {
	a, b := NewVar(1, Star), NewVar(2, Star)
	s := NewSubst().Bind(a, Int)
	fn := NewFn([]Type{b}, NewListOf(b))
	if s.Apply(fn) != Type(fn) {
		t.Fatalf("expected unchanged type to be shared")
	}
	fn2 := NewFn([]Type{b}, NewListOf(a))
	out := s.Apply(fn2).(*App)
	params, _, _ := FnParts(out)
	origParams, _, _ := FnParts(fn2)
	if params != origParams {
		t.Fatalf("expected unchanged parameter subtree to be shared")
	}
}

func TestSubstBindRecursivePanics(t *testing.T) {
	a := NewVar(1, Star)
	defer func() {
		r := recover()
		if _, ok := r.(*diag.InternalError); !ok {
			t.Fatalf("expected internal error, found %v", r)
		}
	}()
	NewSubst().Bind(a, NewListOf(a))
}

func TestQuantifyNames(t *testing.T) {
	a, b := NewVar(1, Star), NewVar(2, Star)
	q := NewQuantifier(nil, nil)
	s := q.Quantify(NewFn([]Type{a, b}, a))
	if got := TypeString(s); got != "(A, B) -> A" {
		t.Fatalf("type: %s", got)
	}
	sch := s.(*Scheme)
	if len(sch.Params) != 2 || sch.Params[0].Owner() != Type(sch) {
		t.Fatalf("expected the scheme to own its parameters")
	}
}

func TestQuantifySourceNameAndAmbient(t *testing.T) {
	outer := NewVar(1, Star)
	src := NewParam("T", Star)
	inner := NewVar(2, Star)
	inner.Source = src
	other := NewVar(3, Star)

	q := NewQuantifier([]*Var{outer}, nil)
	s := q.Quantify(NewFn([]Type{inner, other}, outer))
	if got := TypeString(s); got != "(T, B) -> 'a" {
		t.Fatalf("type: %s", got)
	}
	if !HasFreeVars(s) {
		t.Fatalf("expected ambient variable to remain free")
	}

	// A taken source name falls back to a generated name.
	q = NewQuantifier(nil, []string{"T", "A"})
	s = q.Quantify(NewListOf(inner))
	if got := TypeString(s); got != "[B]" {
		t.Fatalf("type: %s", got)
	}
}

func TestQuantifyIdempotent(t *testing.T) {
	q := NewQuantifier(nil, nil)
	s := q.Quantify(NewFn([]Type{NewVar(1, Star)}, Int))
	again := NewQuantifier(nil, nil).Quantify(s)
	if again != s {
		t.Fatalf("expected quantifying a closed type to return it unchanged")
	}
	if got := NewQuantifier(nil, nil).Quantify(Int); got != Type(Int) {
		t.Fatalf("expected ground type unchanged")
	}
}

func TestQuantifySharedVarCopiesParam(t *testing.T) {
	a := NewVar(1, Star)
	q := NewQuantifier(nil, nil)
	s1 := q.Quantify(NewListOf(a)).(*Scheme)
	s2 := q.Quantify(NewFn([]Type{a}, Int)).(*Scheme)
	if s1.Params[0] == s2.Params[0] {
		t.Fatalf("expected each scheme to own a distinct parameter")
	}
	if s1.Params[0].Name != s2.Params[0].Name {
		t.Fatalf("expected copied parameter to keep its name")
	}
}

func TestTransformSchemeCopiesParams(t *testing.T) {
	a := NewParam("A", Star)
	s := NewScheme([]*Param{a}, NewFn([]Type{a, NewVar(1, Star)}, a))
	replace := func(t Type) Type {
		if tv, ok := t.(*Var); ok && tv.Id == 1 {
			return Int
		}
		return t
	}
	first := Transform(s, replace).(*Scheme)
	second := Transform(s, replace).(*Scheme)
	if a.Owner() != s {
		t.Fatalf("expected the original scheme to keep its parameter")
	}
	if first.Params[0] == a || second.Params[0] == first.Params[0] {
		t.Fatalf("expected each transformed scheme to own a distinct parameter")
	}
	if got := TypeString(second); got != "(A, Int) -> A" {
		t.Fatalf("type: %s", got)
	}
	if ps := Params(first.Body); len(ps) != 1 || ps[0] != first.Params[0] {
		t.Fatalf("expected the body to refer to the copied parameter")
	}
}

func TestParamAdoptTwicePanics(t *testing.T) {
	p := NewParam("A", Star)
	NewScheme([]*Param{p}, p)
	defer func() {
		if _, ok := recover().(*diag.InternalError); !ok {
			t.Fatalf("expected internal error adopting an owned parameter")
		}
	}()
	NewScheme([]*Param{p}, NewListOf(p))
}

func TestInstantiate(t *testing.T) {
	p := NewParam("A", Star)
	s := NewScheme([]*Param{p}, NewFn([]Type{p, &Wildcard{}}, p))
	id := 0
	in := &Instantiator{
		Fresh: func(k Kind, source *Param) *Var {
			id++
			tv := NewVar(id, k)
			tv.Source = source
			return tv
		},
		Bound: map[*Param]Type{},
	}
	out := in.Instantiate(s)
	if got := TypeString(out); got != "('a, 'b) -> 'a" {
		t.Fatalf("type: %s", got)
	}
	if tv, ok := in.Bound[p].(*Var); !ok || tv.Source != p {
		t.Fatalf("expected bound parameter with source provenance")
	}
}

func TestEvaluateAbstraction(t *testing.T) {
	a, b := NewParam("A", Star), NewParam("B", Star)
	pair := NewAbstraction("Pair", []*Param{a, b}, NewTup(a, b))
	app := &App{Base: pair, Arg: NewTuple(Int, String)}
	if err := CheckKinds(app); err != nil {
		t.Fatal(err)
	}
	if got := TypeString(Evaluate(app)); got != "(Int, String)" {
		t.Fatalf("type: %s", got)
	}
	ref := &Ref{Name: "Pair", Target: &Builtin{Const: pair}}
	if got := TypeString(Evaluate(&App{Base: ref, Arg: NewTuple(Bool, Bool)})); got != "(Bool, Bool)" {
		t.Fatalf("type: %s", got)
	}
}

func TestFlattenRow(t *testing.T) {
	r := NewVar(1, StarKeyed)
	inner := NewMap(map[string]Type{"b": Int, "a": String}, r)
	row := FlattenRow(SingletonTypeMap("a", Bool), inner)
	if got := TypeString(NewRec(row)); got != "(a: Bool, b: Int | 'a)" {
		t.Fatalf("type: %s", got)
	}
}

func TestParamName(t *testing.T) {
	for i, want := range map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 52: "BA"} {
		if got := ParamName(i); got != want {
			t.Fatalf("ParamName(%d): expected %s, found %s", i, want, got)
		}
	}
}
