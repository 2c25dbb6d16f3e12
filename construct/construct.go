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

// construct provides helpers for building terms, statements, modules and types by hand.
package construct

import (
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// Types

// Reference to a named type: `Int`, `T`, `A`
func TRef(name string) *types.Ref { return &types.Ref{Name: name} }

// Qualified reference to a named type: `m.T`
func TQRef(qualifier, name string) *types.Ref {
	return &types.Ref{Name: name, Qualifier: qualifier}
}

// Type application: `Box(Int)`, `Pair(Int, String)`
func TApp(base types.Type, args ...types.Type) *types.App {
	if len(args) == 1 {
		return &types.App{Base: base, Arg: args[0]}
	}
	return &types.App{Base: base, Arg: types.NewTuple(args...)}
}

// Nominal type: `New(Int)`
func TNew(rep types.Type) *types.App { return &types.App{Base: TRef("New"), Arg: rep} }

// Function type: `(Int, Int) -> Int`
func TFn(params []types.Type, result types.Type) *types.App { return types.NewFn(params, result) }

// Function type: `Int -> Int`
func TFn1(param, result types.Type) *types.App {
	return types.NewFn([]types.Type{param}, result)
}

// List type: `[Int]`
func TList(elem types.Type) *types.App { return types.NewListOf(elem) }

// Map type: `[Symbol : Int]`
func TMap(key, value types.Type) *types.App { return types.NewMapOf(key, value) }

// Tuple type: `(Int, String)`
func TTup(items ...types.Type) *types.App { return types.NewTup(items...) }

// Record type: `(a: Int, b: String)`
func TRec(fields map[string]types.Type) *types.App {
	return types.NewRec(types.NewMap(fields, nil))
}

// Sum type: `<none: (), some: Int>`
func TSum(cases map[string]types.Type) *types.App {
	return types.NewSum(types.NewMap(cases, nil))
}

// Enum type over symbols: `{#red, #green}`
func TSymbols(names ...string) *types.Enum {
	values := make([]types.Value, len(names))
	for i, name := range names {
		values[i] = &ast.SymbolLit{Value: name}
	}
	return &types.Enum{Base: types.Symbol, Values: values}
}

// Unowned type parameter: `A`
func TParam(name string) *types.Param { return types.NewParam(name, types.Star) }

// Quantified type: `<A> A -> A`
func TScheme(params []*types.Param, body types.Type) *types.Scheme {
	return types.NewScheme(params, body)
}

// Wildcard: `_`
func TWild() *types.Wildcard { return &types.Wildcard{} }

// Terms

// Reference: `x`
func Ref(name string) *ast.Ref { return &ast.Ref{Name: name} }

// Qualified reference: `m.x`
func QRef(qualifier, name string) *ast.Ref { return &ast.Ref{Name: name, Qualifier: qualifier} }

// Inline parameter reference: `$0`, `$$1`
func Inline(name string) *ast.Ref {
	return &ast.Ref{Name: name, Binding: &ast.ParamBinding{Name: name, Inline: true}}
}

func Bool(v bool) *ast.BoolLit           { return &ast.BoolLit{Value: v} }
func Int(v int32) *ast.IntLit            { return &ast.IntLit{Value: v} }
func Long(v int64) *ast.LongLit          { return &ast.LongLit{Value: v} }
func Double(v float64) *ast.DoubleLit    { return &ast.DoubleLit{Value: v} }
func String(v string) *ast.StringLit     { return &ast.StringLit{Value: v} }
func Symbol(v string) *ast.SymbolLit     { return &ast.SymbolLit{Value: v} }
func List(items ...ast.Term) *ast.ListTerm { return &ast.ListTerm{Items: items} }
func Tuple(items ...ast.Term) *ast.TupleTerm {
	return &ast.TupleTerm{Items: items}
}

// Map: `[#a: 1, #b: 2]`
func Map(entries ...ast.Entry) *ast.MapTerm { return &ast.MapTerm{Entries: entries} }

// Record: `(a: 1, b: "x")`
func Record(entries ...ast.Entry) *ast.RecordTerm { return &ast.RecordTerm{Entries: entries} }

// Key/value entry
func E(key, value ast.Term) ast.Entry { return ast.Entry{Key: key, Value: value} }

// Labeled record field: `a: 1`
func Field(label string, value ast.Term) ast.Entry {
	return ast.Entry{Key: Symbol(label), Value: value}
}

// Variant: `<some: 1>`
func Variant(label string, value ast.Term) *ast.VariantTerm {
	return &ast.VariantTerm{Label: label, Value: value}
}

// Conditional selection: `c ? a : b`
func Cond(cond, then, otherwise ast.Term) *ast.CondTerm {
	return &ast.CondTerm{Cases: []ast.CondCase{{Cond: cond, Value: then}}, Else: otherwise}
}

// Parameter with an optional declared type.
func Param(name string, declared types.Type) *ast.ParamBinding {
	return &ast.ParamBinding{Name: name, Declared: declared}
}

// Function literal with an explicit parameter list: `{ x, y => body }`
func Lambda(params []string, body ...ast.Stmt) *ast.LambdaTerm {
	ps := make([]*ast.ParamBinding, len(params))
	for i, name := range params {
		ps[i] = Param(name, nil)
	}
	return LambdaP(ps, body...)
}

// Function literal with declared parameters.
func LambdaP(params []*ast.ParamBinding, body ...ast.Stmt) *ast.LambdaTerm {
	if params == nil {
		params = []*ast.ParamBinding{}
	}
	return &ast.LambdaTerm{Scope: ast.NewLambdaScope(diag.NoLoc, params, body)}
}

// Function literal without a parameter list, which may use inline parameters: `{ plus($0, 1) }`
func Block(body ...ast.Stmt) *ast.LambdaTerm {
	return &ast.LambdaTerm{Scope: ast.NewLambdaScope(diag.NoLoc, nil, body)}
}

// Function call: `f(x, y)`
func Call(f ast.Term, args ...ast.Term) *ast.AppTerm {
	return &ast.AppTerm{Flavor: ast.Call, Base: f, Args: args}
}

// Collection index: `xs[i]`
func Index(base, index ast.Term) *ast.AppTerm {
	return &ast.AppTerm{Flavor: ast.Index, Base: base, Args: []ast.Term{index}}
}

// Structure address: `t.0`
func Addr(base, key ast.Term) *ast.AppTerm {
	return &ast.AppTerm{Flavor: ast.Address, Base: base, Args: []ast.Term{key}}
}

// Field address: `r.x`
func Dot(base ast.Term, label string) *ast.AppTerm { return Addr(base, Symbol(label)) }

// Unchecked type override
func Coerce(t ast.Term, to types.Type) *ast.CoerceTerm { return &ast.CoerceTerm{Term: t, To: to} }

// Statements

// Let-binding: `let x = init`
func Let(name string, init ast.Term) *ast.LetStmt { return ast.NewLet(name, diag.NoLoc, nil, init) }

// Let-binding with a declared type: `let x: T = init`
func LetT(name string, declared types.Type, init ast.Term) *ast.LetStmt {
	return ast.NewLet(name, diag.NoLoc, declared, init)
}

// Intrinsic binding: `let plus = intrinsic plus`
func Intrinsic(name, intrinsic string) *ast.LetStmt {
	s := ast.NewLet(name, diag.NoLoc, nil, nil)
	s.Binding.Intrinsic = intrinsic
	return s
}

// Type definition: `type Pair(A, B) = (A, B)`. References to params within value resolve to the
// definition's parameters.
func TypeDef(name string, params []string, value types.Type) *ast.TypeDefStmt {
	ps := make([]*ast.TypeParam, len(params))
	for i, p := range params {
		ps[i] = types.NewParam(p, types.Star)
	}
	return &ast.TypeDefStmt{Def: &ast.TypeDef{Name: name, Params: ps, Value: value}}
}

// Bare expression statement
func Expr(t ast.Term) *ast.ExprStmt { return &ast.ExprStmt{Term: t} }

// Import of listed symbols: `import a.b (x, T)`
func Import(module string, symbols ...string) *ast.ImportStmt {
	return &ast.ImportStmt{Module: module, Symbols: symbols}
}

// Wildcard import: `import a.b *`
func ImportAll(module string) *ast.ImportStmt {
	return &ast.ImportStmt{Module: module, Wildcard: true}
}

// Export of listed symbols: `export (x, T)`
func Export(symbols ...string) *ast.ExportStmt {
	return &ast.ExportStmt{Mode: ast.ExportList, Symbols: symbols}
}

// Open export: `export *`
func ExportOpen() *ast.ExportStmt { return &ast.ExportStmt{Mode: ast.ExportOpen} }

// Module with the given statements. Nodes without a location are located by Locate.
func Module(name string, body ...ast.Stmt) *ast.Module {
	Locate(name, body)
	return ast.NewModule(name, body)
}
