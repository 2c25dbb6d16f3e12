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

package yamlast

import (
	"errors"
	"strings"
	"testing"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

func TestParseType(t *testing.T) {
	for _, tc := range []struct{ src, expected string }{
		{"Int", "Int"},
		{"m.T", "m.T"},
		{"Box(Int)", "Box(Int)"},
		{"Pair(A, [B])", "Pair(A, [B])"},
		{"New([Int])", "New([Int])"},
		{"'a -> 'a", "a -> a"},
		{"_ -> Int", "_ -> Int"},
		{"[Int]", "[Int]"},
		{"[Symbol : Int]", "[Symbol : Int]"},
		{"{#green, #red}", "{#green, #red}"},
		{"[{#b, #a} : Int]", "[{#a, #b} : Int]"},
		{"{0, 1, 2}", "{0, 1, 2}"},
		{"()", "()"},
		{"(Int)", "Int"},
		{"(Int,)", "(Int,)"},
		{"(Int, Bool)", "(Int, Bool)"},
		{"(a: Int, b: Bool)", "(a: Int, b: Bool)"},
		{"(a: Int | 'r)", "(a: Int | r)"},
		{"(:)", "(:)"},
		{"<some: Int, none: ()>", "<none: (), some: Int>"},
		{"(Int, Int) -> Int", "(Int, Int) -> Int"},
		{"() -> Int", "() -> Int"},
		{"Int -> Int -> Int", "Int -> Int -> Int"},
		{"(Int -> Int) -> Int", "(Int -> Int) -> Int"},
		{"((Int, Bool)) -> Int", "(Int, Bool) -> Int"},
		{"forall A B. (A, B) -> A", "(A, B) -> A"},
	} {
		ty, err := ParseType(tc.src, diag.Loc{Line: 1, Col: 1})
		if err != nil {
			t.Fatalf("parsing %q: %v", tc.src, err)
		}
		if s := types.TypeString(ty); s != tc.expected {
			t.Fatalf("expected %q to parse as %s, found %s", tc.src, tc.expected, s)
		}
	}
}

func TestParseTypeBindings(t *testing.T) {
	ty, err := ParseType("forall A. A -> 'b -> 'b", diag.Loc{})
	if err != nil {
		t.Fatal(err)
	}
	s, ok := ty.(*types.Scheme)
	if !ok || len(s.Params) != 1 {
		t.Fatalf("expected a scheme with 1 parameter, found %s", types.TypeString(ty))
	}
	params, result, _ := types.FnParts(s.Body)
	items, _ := types.TupItems(params)
	if items.Get(0) != types.Type(s.Params[0]) {
		t.Fatalf("expected A to resolve to the scheme's parameter")
	}
	inner, _, _ := types.FnParts(result)
	innerItems, _ := types.TupItems(inner)
	_, r, _ := types.FnParts(result)
	if innerItems.Get(0) != r {
		t.Fatalf("expected both occurrences of 'b to be the same parameter")
	}

	rec, err := ParseType("(a: Int | 'r)", diag.Loc{})
	if err != nil {
		t.Fatal(err)
	}
	row, _ := types.RecRow(rec)
	if !types.KindsEqual(row.Rest.Kind(), types.StarKeyed) {
		t.Fatalf("expected the rest of a row to have kind %s, found %s", types.KindString(types.StarKeyed), types.KindString(row.Rest.Kind()))
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{"", "(Int", "Int ->", "forall . A", "forall A A. A", "(a: Int, a: Bool)", "Int Int", "'", "Box()", "Int $", "(a: Int | Int)", "{}", "{#a, 1}", "{#a, #a}", "{#}", "{Int}", "{#a"} {
		_, err := ParseType(src, diag.Loc{File: "t", Line: 3, Col: 5})
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("expected a syntax error for %q, found %v", src, err)
		}
		if se.Loc.Line != 3 || se.Loc.Col < 5 {
			t.Fatalf("expected the error for %q within the type, found %s", src, se.Loc)
		}
	}
}

const source = `
module: main
body:
  - import: lib
    symbols: [one, T]
  - import: std.list
    as: l
    symbols: "*"
  - type: Box
    params: [A]
    is: New([A])
  - let: add
    intrinsic: plus
  - let: two
    type: Int
    value: {add: [one, 1]}
  - let: r
    value: {record: {a: 1, b: "x"}}
  - let: f
    value: {fn: [x, {y: Int}], returns: Int, body: [{add: [x, y]}]}
  - let: g
    value: {block: [{add: [$0, 1]}]}
  - do: {if: [[true, r.a]], else: 2L}
  - print:
      - :sym
      - {symbol: other}
      - 1.5
      - t.0
      - {list: []}
      - {tuple: [{ref: one, in: lib}]}
      - {map: [[{symbol: k}, {variant: {some: 1}}]]}
      - {coerce: x, to: "[Int]"}
      - {index: [xs, 0]}
  - export: "*"
`

func TestParseModule(t *testing.T) {
	m, err := Parse("ignored", "main.yaml", []byte(source))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "main" {
		t.Fatalf("expected the module to be named main, found %s", m.Name)
	}
	expected := []string{
		"import lib (one, T)",
		"import std.list as l *",
		"type Box(A) = New([A])",
		"let add = intrinsic plus",
		"let two: Int = add(one, 1)",
		`let r = (a: 1, b: "x")`,
		"let f = { x, y: Int => add(x, y) }",
		"let g = { add($0, 1) }",
		"(true ? r.a : 2L)",
		`print(#sym, #other, 1.5, t.(0), [], (lib.one,), [#k: <some: 1>], coerce(x, [Int]), xs[0])`,
		"export *",
	}
	if len(m.Scope.Body) != len(expected) {
		t.Fatalf("expected %d statements, found %d", len(expected), len(m.Scope.Body))
	}
	for i, stmt := range m.Scope.Body {
		if s := ast.StmtString(stmt); s != expected[i] {
			t.Fatalf("expected statement %d to be %s, found %s", i, expected[i], s)
		}
	}

	let := m.Scope.Body[4].(*ast.LetStmt)
	if loc := let.Binding.Loc; loc.File != "main.yaml" || loc.Line != 14 || loc.Col != 5 {
		t.Fatalf("expected two at main.yaml:14:5, found %s", loc)
	}
	g := m.Scope.Body[7].(*ast.LetStmt).Binding.Init.(*ast.LambdaTerm)
	if g.Scope.Explicit {
		t.Fatalf("expected a block to accept inline parameters")
	}
	f := m.Scope.Body[6].(*ast.LetStmt).Binding.Init.(*ast.LambdaTerm)
	if !f.Scope.Explicit || types.TypeString(f.Scope.Signature.Declared) != "Int" {
		t.Fatalf("expected f to declare its parameters and result")
	}
}

func TestParseModuleErrors(t *testing.T) {
	for _, src := range []string{
		"[1, 2]",
		"unknown: 1",
		"body: {let: x}",
		"body:\n  - let: x\n",
		"body:\n  - let: x\n    value: 1\n    intrinsic: plus\n",
		"body:\n  - let: x\n    value: 3000000000\n",
		"body:\n  - let: x\n    value: {variant: [1]}\n",
		"body:\n  - let: x\n    value: {list: [1], extra: 2}\n",
		"body:\n  - let: x\n    value: a..b\n",
		"body:\n  - let: x\n    type: \"Int ->\"\n    value: 1\n",
		"body:\n  - type: T\n",
		"body:\n  - let: x\n    value: null\n",
	} {
		_, err := Parse("m", "m.yaml", []byte(src))
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("expected a syntax error for %q, found %v", src, err)
		}
		if !strings.HasPrefix(se.Error(), "m.yaml:") {
			t.Fatalf("expected the error to be located in m.yaml, found %s", se.Error())
		}
	}
}

func TestLoadModule(t *testing.T) {
	m, err := Parser{}.LoadModule("lib.yaml", "lib", strings.NewReader("body:\n  - let: one\n    value: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "lib" || m.Path != "lib.yaml" || len(m.Scope.Body) != 1 {
		t.Fatalf("unexpected module %s from %s", m.Name, m.Path)
	}

	m, err = Parse("empty", "", nil)
	if err != nil || m.Name != "empty" || len(m.Scope.Body) != 0 {
		t.Fatalf("expected an empty document to define an empty module")
	}
}
