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
	"fmt"
	"testing"

	"github.com/wdamron/kestrel/ast"
	. "github.com/wdamron/kestrel/construct"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/loader"
	"github.com/wdamron/kestrel/types"
)

type modules map[string]*ast.Module

func (ms modules) Module(name string) (*ast.Module, error) {
	m, ok := ms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", loader.ErrNotFound, name)
	}
	return m, nil
}

func run(m *ast.Module, src ModuleSource) *diag.Sink {
	sink := diag.NewSink(0)
	Run(m, sink, Options{Modules: src})
	return sink
}

func mustRun(t *testing.T, m *ast.Module, src ModuleSource) {
	t.Helper()
	sink := run(m, src)
	for _, e := range sink.Errors() {
		t.Errorf("%s: %s", e.Code, e.Error())
	}
	if sink.Count() > 0 {
		t.FailNow()
	}
}

func expectCodes(t *testing.T, sink *diag.Sink, codes ...diag.Code) {
	t.Helper()
	errs := sink.Errors()
	if len(errs) != len(codes) {
		for _, e := range errs {
			t.Logf("%s: %s", e.Code, e.Error())
		}
		t.Fatalf("expected %d errors, found %d", len(codes), len(errs))
	}
	for i, e := range errs {
		if e.Code != codes[i] {
			t.Fatalf("expected error %d to be %s, found %s: %s", i, codes[i], e.Code, e.Error())
		}
	}
}

func typeOf(t *testing.T, m *ast.Module, name string) string {
	t.Helper()
	b, ok := m.Lookup(name)
	if !ok {
		t.Fatalf("%s is not defined", name)
	}
	return types.TypeString(b.ValueType())
}

func expectType(t *testing.T, m *ast.Module, name, expected string) {
	t.Helper()
	if s := typeOf(t, m, name); s != expected {
		t.Fatalf("expected %s: %s, found %s", name, expected, s)
	}
}

func TestRunStopsAfterFailedStage(t *testing.T) {
	m := Module("m",
		Let("x", Ref("missing")),
		Let("y", Call(Ref("plus"), Bool(true), Int(1))),
	)
	sink := run(m, nil)
	expectCodes(t, sink, diag.BindUnresolved)
	if m.Scope.Values["y"].(*ast.LetBinding).Type != nil {
		t.Fatalf("expected type checking to be skipped")
	}
}

func TestConstantsEndToEnd(t *testing.T) {
	m := Module("m",
		Let("x", Int(1)),
		Let("y", Call(Ref("plus"), Ref("x"), Int(1))),
		Expr(Ref("y")),
	)
	mustRun(t, m, nil)
	expectType(t, m, "y", "Int")
	lit, ok := m.Scope.Values["y"].(*ast.LetBinding).Init.(*ast.IntLit)
	if !ok || lit.Value != 2 {
		t.Fatalf("expected y = 2, found %s", ast.StmtString(m.Scope.Values["y"].(*ast.LetBinding).Stmt))
	}
	expr := m.Scope.Body[2].(*ast.ExprStmt)
	if lit, ok := expr.Term.(*ast.IntLit); !ok || lit.Value != 2 {
		t.Fatalf("expected the reference to y to fold to 2, found %s", ast.TermString(expr.Term))
	}
}

func TestNominalTypeEndToEnd(t *testing.T) {
	m := Module("m",
		TypeDef("T", nil, TNew(TRef("Int"))),
		Let("t", Call(Ref("T"), Int(1))),
		Let("i", Call(Ref("_T"), Ref("t"))),
	)
	mustRun(t, m, nil)

	for _, stmt := range m.Scope.Body {
		if _, ok := stmt.(*ast.TypeDefStmt); ok {
			t.Fatalf("expected type definitions to be removed from the module body")
		}
	}
	if s := ast.BindingString(m.Scope.Values["T"]); s != "T: Int -> T" {
		t.Fatalf("expected T: Int -> T, found %s", s)
	}
	if s := ast.BindingString(m.Scope.Values["_T"]); s != "_T: T -> Int" {
		t.Fatalf("expected _T: T -> Int, found %s", s)
	}
	expectType(t, m, "t", "T")
	expectType(t, m, "i", "Int")
}

func TestNominalTypeIsDistinct(t *testing.T) {
	m := Module("m",
		TypeDef("T", nil, TNew(TRef("Int"))),
		Let("i", Call(Ref("_T"), Int(1))),
	)
	expectCodes(t, run(m, nil), diag.TypeMismatch)
}

func TestParameterizedNominalType(t *testing.T) {
	m := Module("m",
		TypeDef("Box", []string{"A"}, TNew(TList(TRef("A")))),
		Let("b", Call(Ref("Box"), List(Int(1)))),
		Let("xs", Call(Ref("_Box"), Ref("b"))),
	)
	mustRun(t, m, nil)
	expectType(t, m, "Box", "[A] -> Box(A)")
	expectType(t, m, "b", "Box(Int)")
	expectType(t, m, "xs", "[Int]")
}

func TestImports(t *testing.T) {
	lib := Module("lib",
		Let("one", Int(1)),
		TypeDef("T", nil, TNew(TRef("Int"))),
	)
	mustRun(t, lib, nil)

	m := Module("main",
		Import("lib", "one", "T"),
		Let("x", Call(Ref("plus"), Ref("one"), Int(1))),
		LetT("t", TRef("T"), Call(QRef("lib", "T"), Int(2))),
		Let("y", Call(Ref("plus"), Dot(Ref("lib"), "one"), Int(2))),
	)
	mustRun(t, m, modules{"lib": lib})
	expectType(t, m, "x", "Int")
	expectType(t, m, "t", "T")
	expectType(t, m, "y", "Int")
	if lit, ok := m.Scope.Values["x"].(*ast.LetBinding).Init.(*ast.IntLit); !ok || lit.Value != 2 {
		t.Fatalf("expected the imported constant to fold")
	}
	if lit, ok := m.Scope.Values["y"].(*ast.LetBinding).Init.(*ast.IntLit); !ok || lit.Value != 3 {
		t.Fatalf("expected the qualified constant to fold")
	}
}

func TestImportErrors(t *testing.T) {
	lib := Module("lib", Let("one", Int(1)))
	mustRun(t, lib, nil)
	src := modules{"lib": lib}

	expectCodes(t, run(Module("m", Import("missing")), src), diag.ModImportMissing)
	expectCodes(t, run(Module("m", Import("lib", "two")), src), diag.BindNotExported)
	expectCodes(t, run(Module("m", Let("x", Int(1)), Import("lib")), src), diag.ModImportLate)
	expectCodes(t, run(Module("m", Let("x", QRef("other", "one"))), src), diag.BindUnknownModule)
	expectCodes(t, run(Module("m", Import("lib"), Let("x", QRef("lib", "two"))), src), diag.BindQualifiedLookup)
}

func TestWildcardImport(t *testing.T) {
	lib := Module("lib", Let("id", Lambda([]string{"x"}, Expr(Ref("x")))))
	mustRun(t, lib, nil)
	m := Module("main",
		ImportAll("lib"),
		Let("a", Call(Ref("id"), Int(1))),
		Let("b", Call(Ref("id"), Bool(true))),
	)
	mustRun(t, m, modules{"lib": lib})
	expectType(t, m, "a", "Int")
	expectType(t, m, "b", "Bool")
}

func TestExports(t *testing.T) {
	m := Module("m", Let("a", Int(1)), Let("b", Int(2)), Export("a"))
	mustRun(t, m, nil)
	if _, ok := m.Exports["a"]; !ok || len(m.Exports) != 1 {
		t.Fatalf("expected only a to be exported, found %v", m.Exports)
	}

	m = Module("m", Let("a", Int(1)))
	mustRun(t, m, nil)
	if _, ok := m.Exports["a"]; !ok {
		t.Fatalf("expected module bindings to be exported by default")
	}

	expectCodes(t, run(Module("m", Let("a", Int(1)), Export("z")), nil), diag.ModExportUnknown)
	expectCodes(t, run(Module("m", Let("a", Int(1)), Export("a"), ExportOpen()), nil), diag.ModExportDuplicate)
}

func TestOpenExportIncludesImports(t *testing.T) {
	lib := Module("lib", Let("one", Int(1)))
	mustRun(t, lib, nil)
	m := Module("m", Import("lib", "one"), ExportOpen())
	mustRun(t, m, modules{"lib": lib})
	if _, ok := m.Exports["one"]; !ok {
		t.Fatalf("expected imported bindings to be exported")
	}
	if _, ok := m.Exports["plus"]; ok {
		t.Fatalf("expected intrinsics not to be exported")
	}
}
