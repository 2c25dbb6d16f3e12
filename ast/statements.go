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

package ast

import (
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// Stmt is the base for all statements.
type Stmt interface {
	StmtName() string
	Location() diag.Loc
}

var (
	_ Stmt = (*ImportStmt)(nil)
	_ Stmt = (*ExportStmt)(nil)
	_ Stmt = (*LetStmt)(nil)
	_ Stmt = (*TypeDefStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
)

// Import: `import a.b`, `import a.b (x, T)`, `import a.b *`
type ImportStmt struct {
	Module string
	// Symbols lists the imported names; ignored for wildcard imports.
	Symbols  []string
	Wildcard bool
	// Alias is the qualifier of the imported namespace; Module when empty.
	Alias string
	Loc   diag.Loc
}

func (s *ImportStmt) StmtName() string   { return "Import" }
func (s *ImportStmt) Location() diag.Loc { return s.Loc }

// QualifierName returns the alias under which the module's exports are reachable.
func (s *ImportStmt) QualifierName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Module
}

// ExportMode selects the symbols exported by a module.
type ExportMode uint8

const (
	// Export the module's own top-level bindings.
	ExportLocals ExportMode = iota
	// Export every symbol visible at the top level, including imported symbols.
	ExportOpen
	// Export the enumerated symbols.
	ExportList
)

// Export: `export`, `export *`, `export (x, T)`
type ExportStmt struct {
	Mode    ExportMode
	Symbols []string
	Loc     diag.Loc
}

func (s *ExportStmt) StmtName() string   { return "Export" }
func (s *ExportStmt) Location() diag.Loc { return s.Loc }

// Let-binding: `let x: T = init`
type LetStmt struct {
	Binding *LetBinding
}

func (s *LetStmt) StmtName() string   { return "Let" }
func (s *LetStmt) Location() diag.Loc { return s.Binding.Loc }

// Type definition: `type T = New(Int)`. Type definitions are removed from scope bodies by binding
// collection and live only in the scope's type bindings afterward.
type TypeDefStmt struct {
	Def *TypeDef
}

func (s *TypeDefStmt) StmtName() string   { return "TypeDef" }
func (s *TypeDefStmt) Location() diag.Loc { return s.Def.Loc }

// Bare expression statement. The last expression statement of a function literal is its result.
type ExprStmt struct {
	Term Term
}

func (s *ExprStmt) StmtName() string   { return "Expr" }
func (s *ExprStmt) Location() diag.Loc { return s.Term.Location() }

// ValueBinding is a name bound to a value within exactly one owning scope.
type ValueBinding interface {
	BindingName() string
	Location() diag.Loc
	// ValueType is the calculated (or declared, for intrinsics) type of the binding.
	ValueType() types.Type
}

var (
	_ ValueBinding = (*LetBinding)(nil)
	_ ValueBinding = (*ParamBinding)(nil)

	_ types.Binding = (*TypeDef)(nil)
	_ types.Binding = (*TypeParam)(nil)
)

// LetBinding binds a name to the value of an initializer term.
type LetBinding struct {
	Name string
	Loc  diag.Loc
	Init Term
	// Intrinsic names the registry entry of a binding without a source-level initializer.
	Intrinsic string
	// Declared is the optional declared type: a scheme when it has type parameters.
	Declared types.Type
	// Type is the calculated type, assigned by the type checker.
	Type types.Type
	// Owner is the scope which binds the name; nil for intrinsics.
	Owner Scope
	// Stmt is the statement which introduces the binding; nil for intrinsics.
	Stmt *LetStmt
}

// Create a let-binding and its statement.
func NewLet(name string, loc diag.Loc, declared types.Type, init Term) *LetStmt {
	b := &LetBinding{Name: name, Loc: loc, Declared: declared, Init: init}
	b.Stmt = &LetStmt{Binding: b}
	return b.Stmt
}

func (b *LetBinding) BindingName() string  { return b.Name }
func (b *LetBinding) Location() diag.Loc   { return b.Loc }
func (b *LetBinding) IsIntrinsic() bool    { return b.Intrinsic != "" }
func (b *LetBinding) ValueType() types.Type {
	if b.Type != nil {
		return b.Type
	}
	return b.Declared
}

// ParamBinding is a parameter of a function literal. Its type is read from the literal's signature
// by position; it has no independent type storage.
type ParamBinding struct {
	Name     string
	Loc      diag.Loc
	Declared types.Type
	Index    int
	// Lambda is nil for inline parameters which are not yet resolved to their owning literal.
	Lambda *LambdaScope
	// Inline parameters are introduced by `$`-numbered references rather than a parameter list.
	Inline bool
}

func (b *ParamBinding) BindingName() string   { return b.Name }
func (b *ParamBinding) Location() diag.Loc    { return b.Loc }
func (b *ParamBinding) ValueType() types.Type { return b.Lambda.ParamType(b.Index) }

// TypeDef binds a name to a type: an alias, a parameterized abstraction, or a nominal type when
// the right-hand side applies `New`.
type TypeDef struct {
	Name   string
	Loc    diag.Loc
	Params []*TypeParam
	Value  types.Type
	// Const is the abstraction or nominal constructor created for parameterized and nominal definitions.
	Const   *types.Const
	Nominal bool
	// Ctor and Dtor are the synthesized constructor `T` and destructor `_T` of a nominal type.
	Ctor, Dtor *LetBinding
	Owner      Scope
}

func (d *TypeDef) BindingName() string { return d.Name }

// The denotation of a definition without its own constructor is its right-hand side.
func (d *TypeDef) Denotation() types.Type {
	if d.Const != nil {
		return d.Const
	}
	return d.Value
}

// TypeParam is a type parameter binding, owned by a scheme, abstraction or nominal type.
type TypeParam = types.Param
