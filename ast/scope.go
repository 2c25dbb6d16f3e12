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
	"sort"

	"github.com/hashicorp/go-set/v3"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// Scope is a lexical scope: a module or a function literal.
type Scope interface {
	Base() *ScopeBase
	// ParentScope returns the enclosing scope, or nil for a module scope.
	ParentScope() Scope
}

var (
	_ Scope = (*ModuleScope)(nil)
	_ Scope = (*LambdaScope)(nil)
)

// Dependency is the target of a dependency edge: a LetBinding or a TypeDef.
type Dependency interface {
	BindingName() string
}

// ScopeBase holds the binding tables, body and dependency structure shared by all scopes.
type ScopeBase struct {
	Values map[string]ValueBinding
	Types  map[string]types.Binding
	// TypeDefs lists the scope's type definitions in declaration order.
	TypeDefs []*TypeDef
	Body     []Stmt
	// Deps maps each statement of the body to the bindings of this scope it references, directly
	// or from nested function literals.
	Deps map[Stmt][]Dependency
	// Groups partitions the body into mutually referential statements, in dependency order.
	Groups [][]Stmt

	index map[Stmt]int
}

func (s *ScopeBase) Base() *ScopeBase { return s }

func (s *ScopeBase) init() {
	if s.Values == nil {
		s.Values = make(map[string]ValueBinding)
	}
	if s.Types == nil {
		s.Types = make(map[string]types.Binding)
	}
	if s.Deps == nil {
		s.Deps = make(map[Stmt][]Dependency)
	}
}

// SetBody replaces the statements of the scope.
func (s *ScopeBase) SetBody(body []Stmt) {
	s.Body = body
	s.index = nil
}

// IndexOf returns the position of a statement within the body, or -1.
func (s *ScopeBase) IndexOf(stmt Stmt) int {
	if s.index == nil || len(s.index) != len(s.Body) {
		s.index = make(map[Stmt]int, len(s.Body))
		for i, st := range s.Body {
			s.index[st] = i
		}
	}
	if i, ok := s.index[stmt]; ok {
		return i
	}
	return -1
}

// AddDep records a dependency edge from stmt to a binding of this scope. Duplicate edges are ignored.
func (s *ScopeBase) AddDep(stmt Stmt, dep Dependency) {
	for _, d := range s.Deps[stmt] {
		if d == dep {
			return
		}
	}
	s.Deps[stmt] = append(s.Deps[stmt], dep)
}

// ModuleScope is the top-level scope of a module.
type ModuleScope struct {
	ScopeBase
	Module *Module
}

func NewModuleScope(body []Stmt) *ModuleScope {
	s := &ModuleScope{}
	s.init()
	s.Body = body
	return s
}

func (s *ModuleScope) ParentScope() Scope { return nil }

// Signature is the parameter list and function type of a function literal.
type Signature struct {
	Params []*ParamBinding
	// DeclaredParams is the aggregate declared parameter type, built when the parameter list is
	// committed, or set by the parser (`{ () => ... }` declares unit parameters).
	DeclaredParams types.Type
	// Declared is the optional declared result type.
	Declared types.Type
	// Type is the calculated function type.
	Type types.Type
}

// LambdaScope is the scope of a function literal.
type LambdaScope struct {
	ScopeBase
	Parent Scope
	Loc    diag.Loc
	// Explicit is set when the literal declares a parameter list; inline parameters are then an error.
	Explicit bool
	// LambdaCaptures holds bindings captured from enclosing function literals.
	LambdaCaptures *set.Set[ValueBinding]
	// ModuleCaptures holds bindings captured from the module scope.
	ModuleCaptures *set.Set[ValueBinding]
	Signature      Signature

	inline    map[string]*ParamBinding
	committed bool
}

// Create a function literal scope with an explicit parameter list (which may be empty).
func NewLambdaScope(loc diag.Loc, params []*ParamBinding, body []Stmt) *LambdaScope {
	s := &LambdaScope{Loc: loc, Explicit: params != nil}
	s.init()
	s.Body = body
	s.Signature.Params = params
	s.LambdaCaptures = set.New[ValueBinding](0)
	s.ModuleCaptures = set.New[ValueBinding](0)
	return s
}

func (s *LambdaScope) ParentScope() Scope { return s.Parent }

// Result returns the result term of the literal: the final expression statement of its body, or nil.
func (s *LambdaScope) Result() Term {
	if len(s.Body) == 0 {
		return nil
	}
	if e, ok := s.Body[len(s.Body)-1].(*ExprStmt); ok {
		return e.Term
	}
	return nil
}

// ParamType returns the calculated type of the parameter at index i.
func (s *LambdaScope) ParamType(i int) types.Type {
	params, _, ok := types.FnParts(s.Signature.Type)
	if !ok {
		return nil
	}
	items, ok := types.TupItems(params)
	if !ok || i >= items.Len() {
		return nil
	}
	return items.Get(i)
}

// InlineParam returns the inline parameter installed under name.
func (s *LambdaScope) InlineParam(name string) (*ParamBinding, bool) {
	p, ok := s.inline[name]
	return p, ok
}

// InstallInline installs an inline parameter at the given position.
func (s *LambdaScope) InstallInline(p *ParamBinding) {
	if s.inline == nil {
		s.inline = make(map[string]*ParamBinding)
	}
	p.Lambda = s
	s.inline[p.Name] = p
	s.Values[p.Name] = p
}

// Committed reports whether the parameter list was committed.
func (s *LambdaScope) Committed() bool { return s.committed }

// Commit finalizes the parameter list exactly once: inline parameters are placed by index, gaps
// left by sparse numbering are filled with unused parameters named by gap, and the aggregate
// declared parameter type is built.
func (s *LambdaScope) Commit(gapName func(index int) string) {
	diag.Invariant(!s.committed, "parameter list committed twice", s.Loc)
	s.committed = true
	if len(s.inline) > 0 {
		max := -1
		for _, p := range s.inline {
			if p.Index > max {
				max = p.Index
			}
		}
		params := make([]*ParamBinding, max+1)
		for _, p := range s.inline {
			params[p.Index] = p
		}
		for i, p := range params {
			if p == nil {
				p = &ParamBinding{Name: gapName(i), Loc: s.Loc, Inline: true, Index: i}
				p.Lambda = s
				params[i] = p
			}
		}
		s.Signature.Params = params
	}
	for i, p := range s.Signature.Params {
		p.Index, p.Lambda = i, s
	}
	if s.Signature.DeclaredParams != nil {
		return
	}
	items := make([]types.Type, len(s.Signature.Params))
	for i, p := range s.Signature.Params {
		if p.Declared != nil {
			items[i] = p.Declared
		} else {
			items[i] = &types.Wildcard{Loc: p.Loc}
		}
	}
	s.Signature.DeclaredParams = types.NewTup(items...)
}

// SortedCaptures returns captured bindings ordered by location and name.
func SortedCaptures(captures *set.Set[ValueBinding]) []ValueBinding {
	bs := captures.Slice()
	sort.Slice(bs, func(i, j int) bool {
		li, lj := bs[i].Location(), bs[j].Location()
		if c := li.Compare(lj); c != 0 {
			return c < 0
		}
		return bs[i].BindingName() < bs[j].BindingName()
	})
	return bs
}

// EnclosingLambda returns the innermost function literal scope enclosing (or equal to) s.
func EnclosingLambda(s Scope) *LambdaScope {
	for ; s != nil; s = s.ParentScope() {
		if l, ok := s.(*LambdaScope); ok {
			return l
		}
	}
	return nil
}
