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
	"github.com/wdamron/kestrel/internal/astutil"
	"github.com/wdamron/kestrel/types"
)

func TestLetPolymorphism(t *testing.T) {
	m := Module("m",
		Let("id", Lambda([]string{"x"}, Expr(Ref("x")))),
		Let("a", Call(Ref("id"), Int(1))),
		Let("b", Call(Ref("id"), Bool(true))),
		Let("pair", Lambda([]string{"x", "y"}, Expr(Tuple(Ref("x"), Ref("y"))))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "id", "A -> A")
	expectType(t, m, "a", "Int")
	expectType(t, m, "b", "Bool")
	expectType(t, m, "pair", "(A, B) -> (A, B)")
}

func TestMutualRecursion(t *testing.T) {
	m := Module("m",
		Let("even", Lambda([]string{"n"}, Expr(Cond(
			Call(Ref("eq"), Ref("n"), Int(0)),
			Bool(true),
			Call(Ref("odd"), Call(Ref("minus"), Ref("n"), Int(1))),
		)))),
		Let("odd", Lambda([]string{"n"}, Expr(Cond(
			Call(Ref("eq"), Ref("n"), Int(0)),
			Bool(false),
			Call(Ref("even"), Call(Ref("minus"), Ref("n"), Int(1))),
		)))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "even", "Int -> Bool")
	expectType(t, m, "odd", "Int -> Bool")
}

func TestDeferredGeneralization(t *testing.T) {
	g := Lambda([]string{"y"}, Expr(Ref("x")))
	f := Lambda([]string{"x"}, Let("g", g), Expr(Ref("g")))
	m := Module("m", Let("f", f))
	mustRun(t, m, nil)
	expectType(t, m, "f", "A -> B -> A")

	gb := f.Scope.Values["g"].(*ast.LetBinding)
	if types.HasFreeVars(gb.Type) {
		t.Fatalf("expected g to be generalized with f, found %s", types.TypeString(gb.Type))
	}
	// x is free within g while f is checked, so g is not polymorphic in x
	if _, ok := gb.Type.(*types.Scheme); !ok {
		t.Fatalf("expected g to be generalized by the enclosing group")
	}
}

func TestRecords(t *testing.T) {
	m := Module("m",
		Let("r", Record(Field("a", Int(1)), Field("b", Bool(true)))),
		Let("v", Dot(Ref("r"), "a")),
		Let("get", Lambda([]string{"r"}, Expr(Dot(Ref("r"), "a")))),
		Let("n", Call(Ref("get"), Ref("r"))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "r", "(a: Int, b: Bool)")
	expectType(t, m, "v", "Int")
	expectType(t, m, "get", "(a: A | B) -> A")
	expectType(t, m, "n", "Int")

	m = Module("m",
		Let("get", Lambda([]string{"r"}, Expr(Dot(Ref("r"), "a")))),
		Let("n", Call(Ref("get"), Record(Field("b", Int(1))))),
	)
	sink := run(m, nil)
	if sink.Count() != 1 || sink.Errors()[0].Code.Category() != "type" {
		t.Fatalf("expected one type error for a missing field, found %v", sink.Errors())
	}

	expectCodes(t, run(Module("m",
		Let("r", Record(Field("a", Int(1)))),
		Let("v", Dot(Ref("r"), "b")),
	), nil), diag.TypeNoField)
}

func TestRecordKeys(t *testing.T) {
	expectCodes(t, run(Module("m",
		Let("k", Symbol("a")),
		Let("r", Record(E(Ref("k"), Int(1)))),
	), nil), diag.TypeNonConstantKey)
	expectCodes(t, run(Module("m",
		Let("r", Record(Field("a", Int(1)), Field("a", Int(2)))),
	), nil), diag.TypeDuplicateKey)
}

func TestTuplesAndAddresses(t *testing.T) {
	m := Module("m",
		Let("t", Tuple(Int(1), Bool(true))),
		Let("second", Addr(Ref("t"), Int(1))),
		Let("first", Lambda([]string{"p"}, Expr(Addr(Ref("p"), Int(0))))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "second", "Bool")
	expectType(t, m, "first", "(A,) -> A")

	expectCodes(t, run(Module("m",
		Let("t", Tuple(Int(1), Int(2))),
		Let("z", Addr(Ref("t"), Int(5))),
	), nil), diag.TypeAddressRange)
	expectCodes(t, run(Module("m",
		Let("i", Int(0)),
		Let("t", Tuple(Int(1), Int(2))),
		Let("z", Addr(Ref("t"), Ref("i"))),
	), nil), diag.TypeBadAddress)
}

func TestCollections(t *testing.T) {
	m := Module("m",
		Let("xs", List(Int(1), Int(2))),
		Let("x", Index(Ref("xs"), Int(0))),
		Let("ys", Map(E(Symbol("a"), Int(1)))),
		Let("y", Index(Ref("ys"), Symbol("a"))),
		Let("ks", Call(Ref("keys"), Ref("ys"))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "xs", "[Int]")
	expectType(t, m, "x", "Int")
	expectType(t, m, "ys", "[Symbol : Int]")
	expectType(t, m, "y", "Int")
	expectType(t, m, "ks", "[Symbol]")

	expectCodes(t, run(Module("m", Let("xs", List(Int(1), Bool(true)))), nil), diag.TypeMismatch)
}

func TestVariants(t *testing.T) {
	m := Module("m",
		Let("some", Lambda([]string{"x"}, Expr(Variant("some", Ref("x"))))),
		Let("v", List(Call(Ref("some"), Int(1)), Variant("none", Tuple()))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "some", "A -> <some: A | B>")
}

func TestOccursCheck(t *testing.T) {
	m := Module("m", Let("f", Lambda([]string{"x"}, Expr(Call(Ref("x"), Ref("x"))))))
	expectCodes(t, run(m, nil), diag.TypeRecursive)
}

func TestNotApplicable(t *testing.T) {
	m := Module("m", Let("x", Int(1)), Let("y", Call(Ref("x"), Int(2))))
	expectCodes(t, run(m, nil), diag.TypeNotApplicable)
}

func TestDeclaredTypes(t *testing.T) {
	a := TParam("A")
	m := Module("m",
		LetT("id", TScheme([]*types.Param{a}, TFn1(a, a)), Lambda([]string{"x"}, Expr(Ref("x")))),
		LetT("n", TRef("Int"), Int(1)),
		LetT("inline", TFn1(TParam("T"), TParam("T")), Lambda([]string{"x"}, Expr(Ref("x")))),
		LetT("partial", TFn1(TWild(), TRef("Int")), Lambda([]string{"x"}, Expr(Call(Ref("plus"), Ref("x"), Int(1))))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "id", "A -> A")
	expectType(t, m, "n", "Int")
	expectType(t, m, "inline", "T -> T")
	expectType(t, m, "partial", "Int -> Int")
}

func TestDeclaredTypeTooGeneral(t *testing.T) {
	a := TParam("A")
	m := Module("m",
		LetT("inc", TScheme([]*types.Param{a}, TFn1(a, a)), Lambda([]string{"x"}, Expr(Call(Ref("plus"), Ref("x"), Int(1))))),
	)
	expectCodes(t, run(m, nil), diag.TypeDeclared)
}

func TestDeclaredTypeMismatch(t *testing.T) {
	m := Module("m", LetT("n", TRef("Bool"), Int(1)))
	expectCodes(t, run(m, nil), diag.TypeMismatch)
}

func TestHigherRankRejected(t *testing.T) {
	b := TParam("B")
	m := Module("m",
		LetT("f", TFn1(TScheme([]*types.Param{b}, TFn1(b, b)), TRef("Int")), Lambda([]string{"g"}, Expr(Int(1)))),
	)
	expectCodes(t, run(m, nil), diag.TypeHigherRank)
}

func TestTypeAliases(t *testing.T) {
	m := Module("m",
		TypeDef("Pair", []string{"A", "B"}, TTup(TRef("A"), TRef("B"))),
		TypeDef("IntPair", nil, TApp(TRef("Pair"), TRef("Int"), TRef("Int"))),
		LetT("p", TRef("IntPair"), Tuple(Int(1), Int(2))),
		Let("x", Addr(Ref("p"), Int(0))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "x", "Int")

	// the cycle is broken at the first alias found in it
	expectCodes(t, run(Module("m",
		TypeDef("A", nil, TRef("B")),
		TypeDef("B", nil, TRef("A")),
	), nil), diag.TypeRecursive)
}

func TestTermTypesAreFinal(t *testing.T) {
	body := Call(Ref("plus"), Ref("x"), Int(1))
	f := Lambda([]string{"x"}, Expr(body))
	empty := List()
	m := Module("m", Let("f", f), Expr(empty))
	mustRun(t, m, nil)
	if s := types.TypeString(body.Type()); s != "Int" {
		t.Fatalf("expected the call to have type Int, found %s", s)
	}
	if s := types.TypeString(f.Type()); s != "Int -> Int" {
		t.Fatalf("expected the literal to have type Int -> Int, found %s", s)
	}
	// unconstrained type-variables default to the unit type
	if s := types.TypeString(empty.Type()); s != "[()]" {
		t.Fatalf("expected [()], found %s", s)
	}
}

func TestIllKindedAnnotations(t *testing.T) {
	pair := func() *ast.TypeDefStmt { return TypeDef("Pair", []string{"A", "B"}, TTup(TRef("A"), TRef("B"))) }
	bad := func() types.Type { return TApp(TRef("Pair"), TRef("Int")) }

	param := LambdaP([]*ast.ParamBinding{Param("x", bad())}, Expr(Ref("x")))
	expectCodes(t, run(Module("m", pair(), Let("f", param)), nil), diag.TypeKindMismatch)

	result := Lambda([]string{"x"}, Expr(Ref("x")))
	result.Scope.Signature.Declared = bad()
	expectCodes(t, run(Module("m", pair(), Let("f", result)), nil), diag.TypeKindMismatch)

	expectCodes(t, run(Module("m", pair(), Let("c", Coerce(Int(1), bad()))), nil), diag.TypeKindMismatch)

	// an ill-kinded alias denotes the unit type
	expectCodes(t, run(Module("m", pair(), TypeDef("Bad", nil, bad()), LetT("x", TRef("Bad"), Int(1))), nil),
		diag.TypeKindMismatch, diag.TypeMismatch)
}

func TestVariablesResetPerTopLevelGroup(t *testing.T) {
	m := resolved(t, Module("m",
		Let("id", Lambda([]string{"x"}, Expr(Ref("x")))),
		Let("a", Call(Ref("id"), Int(1))),
		Let("pair", Lambda([]string{"x", "y"}, Expr(Tuple(Ref("x"), Ref("y"))))),
	))
	c := newChecker(diag.NewSink(0))
	for _, stmts := range astutil.Groups(m.Scope.Base()) {
		c.checkGroup(astutil.LetsFirst(stmts))
		if n := c.ctx.VarTracker.Count(); n != 0 {
			t.Fatalf("expected no type-variables after a top-level group, found %d", n)
		}
		if len(c.terms) != 0 || len(c.lets) != 0 || len(c.quantified) != 0 {
			t.Fatalf("expected inference state to be cleared after a top-level group")
		}
	}
	expectType(t, m, "id", "A -> A")
	expectType(t, m, "a", "Int")
	expectType(t, m, "pair", "(A, B) -> (A, B)")
}

func TestEnumKeyedMaps(t *testing.T) {
	colors := func() types.Type { return TMap(TSymbols("red", "green"), TRef("Int")) }
	m := Module("m",
		LetT("w", colors(), Map(E(Symbol("red"), Int(1)), E(Symbol("green"), Int(2)))),
		Let("r", Index(Ref("w"), Symbol("red"))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "w", "[{#green, #red} : Int]")
	expectType(t, m, "r", "Int")

	expectCodes(t, run(Module("m", LetT("w", colors(), Map(E(Symbol("blue"), Int(1))))), nil), diag.TypeKeyDomain)
	expectCodes(t, run(Module("m",
		LetT("w", colors(), Map(E(Symbol("red"), Int(1)))),
		Let("b", Index(Ref("w"), Symbol("blue"))),
	), nil), diag.TypeKeyDomain)
	expectCodes(t, run(Module("m", LetT("w", colors(), Map(E(Int(0), Int(1))))), nil), diag.TypeMismatch)

	// enum-keyed maps unify only with maps over the same domain
	expectCodes(t, run(Module("m",
		LetT("w", colors(), Map()),
		LetT("s", TMap(TRef("Symbol"), TRef("Int")), Ref("w")),
	), nil), diag.TypeMismatch)
}
