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
	"github.com/wdamron/kestrel/intrinsic"
	"github.com/wdamron/kestrel/types"
)

func initOf(m *ast.Module, name string) ast.Term {
	return m.Scope.Values[name].(*ast.LetBinding).Init
}

func TestReduceFoldsIntrinsics(t *testing.T) {
	m := Module("m",
		Let("a", Call(Ref("plus"), Int(1), Int(2))),
		Let("b", Call(Ref("times"), Ref("a"), Call(Ref("minus"), Int(5), Int(1)))),
		Let("c", Call(Ref("lt"), Ref("a"), Ref("b"))),
		Let("d", Call(Ref("divide"), Int(1), Int(0))),
		Let("e", Call(Ref("fplus"), Double(0.5), Double(0.25))),
	)
	mustRun(t, m, nil)

	a, ok := initOf(m, "a").(*ast.IntLit)
	if !ok || a.Value != 3 {
		t.Fatalf("expected a = 3, found %s", ast.TermString(initOf(m, "a")))
	}
	if s := types.TypeString(a.Type()); s != "Int" {
		t.Fatalf("expected the folded literal to have type Int, found %s", s)
	}
	if a.Loc.Line != 1 {
		t.Fatalf("expected the folded literal to keep the location of the call, found %s", a.Loc)
	}
	if b, ok := initOf(m, "b").(*ast.IntLit); !ok || b.Value != 12 {
		t.Fatalf("expected b = 12, found %s", ast.TermString(initOf(m, "b")))
	}
	if c, ok := initOf(m, "c").(*ast.BoolLit); !ok || !c.Value {
		t.Fatalf("expected c = true, found %s", ast.TermString(initOf(m, "c")))
	}
	if _, ok := initOf(m, "d").(*ast.AppTerm); !ok {
		t.Fatalf("expected division by zero not to be folded, found %s", ast.TermString(initOf(m, "d")))
	}
	if e, ok := initOf(m, "e").(*ast.DoubleLit); !ok || e.Value != 0.75 {
		t.Fatalf("expected e = 0.75, found %s", ast.TermString(initOf(m, "e")))
	}
}

func TestReduceWithinFunctionLiterals(t *testing.T) {
	body := Expr(Call(Ref("plus"), Ref("k"), Ref("x")))
	f := Lambda([]string{"x"}, Let("k", Int(2)), body)
	m := Module("m", Let("f", f))
	mustRun(t, m, nil)
	app, ok := body.Term.(*ast.AppTerm)
	if !ok {
		t.Fatalf("expected the call with a parameter not to be folded, found %s", ast.TermString(body.Term))
	}
	if k, ok := app.Args[0].(*ast.IntLit); !ok || k.Value != 2 {
		t.Fatalf("expected the local constant to be inlined, found %s", ast.TermString(app.Args[0]))
	}
	if _, ok := app.Args[1].(*ast.Ref); !ok {
		t.Fatalf("expected the parameter reference to remain")
	}
}

func TestReduceKeepsNonNumericConstants(t *testing.T) {
	m := Module("m",
		Let("s", String("a")),
		Let("t", Call(Ref("strcat"), Ref("s"), String("b"))),
		Let("xs", List(Int(1))),
		Let("n", Call(Ref("size"), Ref("xs"))),
	)
	mustRun(t, m, nil)
	if _, ok := initOf(m, "t").(*ast.AppTerm); !ok {
		t.Fatalf("expected references to string constants to remain, found %s", ast.TermString(initOf(m, "t")))
	}
	if _, ok := initOf(m, "n").(*ast.AppTerm); !ok {
		t.Fatalf("expected calls with non-literal arguments to remain, found %s", ast.TermString(initOf(m, "n")))
	}
}

func TestReduceIsIdempotent(t *testing.T) {
	m := Module("m",
		Let("a", Call(Ref("plus"), Int(1), Int(2))),
		Let("f", Lambda([]string{"x"}, Expr(Call(Ref("times"), Ref("x"), Ref("a"))))),
		Expr(Call(Ref("f"), Call(Ref("neg"), Ref("a")))),
	)
	mustRun(t, m, nil)
	before := make([]string, len(m.Scope.Body))
	for i, stmt := range m.Scope.Body {
		before[i] = ast.StmtString(stmt)
	}
	Reduce(m, intrinsic.Default())
	for i, stmt := range m.Scope.Body {
		if s := ast.StmtString(stmt); s != before[i] {
			t.Fatalf("expected reducing twice to change nothing:\n%s\n%s", before[i], s)
		}
	}
}
