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
	"strings"
	"testing"

	"github.com/wdamron/kestrel/ast"
	. "github.com/wdamron/kestrel/construct"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

func TestShadowingAcrossScopes(t *testing.T) {
	m := Module("m",
		Let("x", Int(1)),
		Let("f", Lambda([]string{"x"}, Expr(Ref("x")))),
		Let("g", Block(Let("x", Bool(true)), Expr(Ref("x")))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "f", "A -> A")
	expectType(t, m, "g", "() -> Bool")
}

func TestRedefinition(t *testing.T) {
	expectCodes(t, run(Module("m", Let("x", Int(1)), Let("x", Int(2))), nil), diag.BindRedefined)
	expectCodes(t, run(Module("m", Let("f", Lambda([]string{"a", "a"}, Expr(Ref("a"))))), nil), diag.BindRedefined)
	expectCodes(t, run(Module("m",
		TypeDef("T", nil, TRef("Int")),
		TypeDef("T", nil, TRef("Bool")),
	), nil), diag.BindTypeRedefined)
}

func TestForwardReferences(t *testing.T) {
	expectCodes(t, run(Module("m", Let("y", Ref("x")), Let("x", Int(1))), nil), diag.BindForwardRef)
	expectCodes(t, run(Module("m", Let("x", Call(Ref("plus"), Ref("x"), Int(1)))), nil), diag.BindSelfReference)

	// function literals may capture later module bindings
	m := Module("m",
		Let("g", Block(Expr(Ref("y")))),
		Let("y", Int(1)),
	)
	mustRun(t, m, nil)
	expectType(t, m, "g", "() -> Int")

	// but not later bindings of enclosing function literals
	m = Module("m",
		Let("f", Block(
			Let("g", Block(Expr(Ref("y")))),
			Let("y", Int(1)),
			Expr(Call(Ref("g"))),
		)),
	)
	expectCodes(t, run(m, nil), diag.BindForwardCapture)
}

func TestUnresolvedReferences(t *testing.T) {
	expectCodes(t, run(Module("m", Let("x", Ref("nope"))), nil), diag.BindUnresolved)
	expectCodes(t, run(Module("m", LetT("x", TRef("Nope"), Int(1))), nil), diag.BindTypeUnresolved)
	expectCodes(t, run(Module("m", Intrinsic("x", "nope")), nil), diag.BindUnresolved)
}

func TestCapturesThreeLevelsUp(t *testing.T) {
	inner := Block(Expr(Call(Ref("plus"), Ref("a"), Ref("b"))))
	middle := Block(Expr(inner))
	outer := Block(Let("b", Int(2)), Expr(middle))
	m := Module("m",
		Let("a", Int(1)),
		Let("f", outer),
	)
	mustRun(t, m, nil)

	a := m.Scope.Values["a"]
	b := outer.Scope.Values["b"]
	for _, l := range []*ast.LambdaScope{outer.Scope, middle.Scope, inner.Scope} {
		if !l.ModuleCaptures.Contains(a) {
			t.Fatalf("expected a to be captured by the function literal at %s", l.Loc)
		}
	}
	if outer.Scope.LambdaCaptures.Contains(b) {
		t.Fatalf("expected b not to be captured by its own scope")
	}
	for _, l := range []*ast.LambdaScope{middle.Scope, inner.Scope} {
		if !l.LambdaCaptures.Contains(b) {
			t.Fatalf("expected b to be captured by the function literal at %s", l.Loc)
		}
	}
	if middle.Scope.Parent != ast.Scope(outer.Scope) || outer.Scope.Parent != ast.Scope(m.Scope) {
		t.Fatalf("expected function literals to be linked to their parents")
	}
	expectType(t, m, "f", "() -> () -> () -> Int")
}

func TestInlineParams(t *testing.T) {
	f := Block(Expr(Call(Ref("plus"), Inline("$0"), Inline("$1"))))
	sparse := Block(Expr(Inline("$1")))
	inner := Block(Expr(Inline("$$0")))
	outer := Block(Expr(inner))
	m := Module("m",
		Let("f", f),
		Let("g", sparse),
		Let("h", outer),
	)
	mustRun(t, m, nil)
	expectType(t, m, "f", "(Int, Int) -> Int")

	params := sparse.Scope.Signature.Params
	if len(params) != 2 || !strings.HasPrefix(params[0].Name, "$0_") || params[1].Name != "$1"+sparse.Scope.Loc.Suffix() {
		t.Fatalf("expected a gap parameter before $1, found %d parameters", len(params))
	}
	if len(outer.Scope.Signature.Params) != 1 || len(inner.Scope.Signature.Params) != 0 {
		t.Fatalf("expected $$0 to belong to the outer function literal")
	}
	if !inner.Scope.LambdaCaptures.Contains(outer.Scope.Signature.Params[0]) {
		t.Fatalf("expected the inner function literal to capture the outer parameter")
	}
}

func TestInlineParamErrors(t *testing.T) {
	expectCodes(t, run(Module("m", Let("f", Lambda([]string{"x"}, Expr(Inline("$0"))))), nil), diag.BindInlineExplicit)
	expectCodes(t, run(Module("m", Expr(Inline("$0"))), nil), diag.BindInlineNoLambda)
	expectCodes(t, run(Module("m", Let("f", Block(Expr(Inline("$$0"))))), nil), diag.BindInlineNoLambda)
}

func TestUnitParams(t *testing.T) {
	l := Block(Expr(Inline("$0")))
	l.Scope.Signature.DeclaredParams = types.Unit
	expectCodes(t, run(Module("m", Let("f", l)), nil), diag.TypeUnitParams)
}

func TestDependencyEdges(t *testing.T) {
	m := Module("m",
		Let("a", Int(1)),
		Let("f", Block(Expr(Ref("a")))),
		TypeDef("T", nil, TRef("Int")),
		LetT("t", TRef("T"), Int(1)),
	)
	mustRun(t, m, nil)
	a, f := m.Scope.Values["a"].(*ast.LetBinding), m.Scope.Values["f"].(*ast.LetBinding)
	deps := m.Scope.Deps[f.Stmt]
	if len(deps) != 1 || deps[0] != ast.Dependency(a) {
		t.Fatalf("expected f to depend on a through its function literal")
	}
	tt := m.Scope.Values["t"].(*ast.LetBinding)
	td := m.Scope.Types["T"].(*ast.TypeDef)
	deps = m.Scope.Deps[tt.Stmt]
	if len(deps) != 1 || deps[0] != ast.Dependency(td) {
		t.Fatalf("expected t to depend on the definition of T")
	}
}
