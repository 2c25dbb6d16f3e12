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

package analyze

import (
	"testing"

	"github.com/wdamron/kestrel/ast"
	. "github.com/wdamron/kestrel/construct"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/intrinsic"
)

func resolved(t *testing.T, m *ast.Module) *ast.Module {
	t.Helper()
	sink := diag.NewSink(0)
	reg := intrinsic.Default()
	ResolveImports(m, sink, reg, nil)
	CollectBindings(m, sink, reg)
	ResolveRefs(m, sink)
	if sink.Count() > 0 {
		for _, e := range sink.Errors() {
			t.Errorf("%s: %s", e.Code, e.Error())
		}
		t.FailNow()
	}
	return m
}

func TestUnreachedBinding(t *testing.T) {
	m := Module("m",
		Let("f", Block(Expr(Ref("a")))),
		Expr(Call(Ref("f"))),
		Let("a", Int(1)),
	)
	sink := run(m, nil)
	expectCodes(t, sink, diag.BindUnreached)
	if e := sink.Errors()[0]; e.Loc.Line != 2 {
		t.Fatalf("expected the error at the application on line 2, found %s", e.Loc)
	}
}

func TestUnreachedThroughCycle(t *testing.T) {
	m := Module("m",
		Let("a", Block(Expr(Call(Ref("b"))), Expr(Ref("d")))),
		Let("b", Block(Expr(Call(Ref("a"))))),
		Expr(Call(Ref("a"))),
		Expr(Call(Ref("b"))),
		Let("d", Int(1)),
	)
	sink := run(m, nil)
	expectCodes(t, sink, diag.BindUnreached, diag.BindUnreached)
	for i, e := range sink.Errors() {
		if e.Loc.Line != i+3 {
			t.Fatalf("expected error %d on line %d, found %s", i, i+3, e.Loc)
		}
	}
}

func TestReachedBindings(t *testing.T) {
	m := Module("m",
		Let("a", Int(1)),
		Let("f", Block(Expr(Ref("a")))),
		Expr(Call(Ref("f"))),
		// calls within function literals are not executed during initialization
		Let("g", Block(Expr(Call(Ref("h"))))),
		Let("h", Block(Expr(Ref("b")))),
		Let("b", Int(2)),
	)
	mustRun(t, m, nil)
}

func TestUnreachedNestedApplication(t *testing.T) {
	m := Module("m",
		Let("f", Block(Expr(Ref("a")))),
		Let("x", Call(Ref("plus"), Call(Ref("size"), List(Call(Ref("f")))), Int(1))),
		Let("a", Int(1)),
	)
	expectCodes(t, run(m, nil), diag.BindUnreached)
}

func TestLastReached(t *testing.T) {
	m := resolved(t, Module("m",
		Let("a", Block(Expr(Ref("b")))),
		Let("b", Block(Expr(Ref("c")))),
		Let("c", Block()),
		Let("x", Block(Expr(Ref("y")))),
		Let("y", Block(Expr(Ref("x")))),
		Let("z", Block(Expr(Ref("a")))),
	))
	let := func(name string) *ast.LetBinding { return m.Scope.Values[name].(*ast.LetBinding) }
	lr := NewLastReached(m.Scope)

	if r := lr.Of(let("a")); r.Binding != let("c") {
		t.Fatalf("expected a to reach c, found %s", r.Binding.Name)
	}
	if r := lr.Of(let("c")); r.Binding != let("c") {
		t.Fatalf("expected c to reach only itself, found %s", r.Binding.Name)
	}
	if r := lr.Of(let("x")); r.Binding != let("y") {
		t.Fatalf("expected x to reach y through the cycle, found %s", r.Binding.Name)
	}
	if r := lr.Of(let("y")); r.Binding != let("y") {
		t.Fatalf("expected y to reach itself through the cycle, found %s", r.Binding.Name)
	}
	if r := lr.Of(let("z")); r.Binding != let("z") {
		t.Fatalf("expected z to reach only itself, found %s", r.Binding.Name)
	}
	if _, ok := lr.Latest(Int(1)); ok {
		t.Fatalf("expected a literal to reach nothing")
	}
}
