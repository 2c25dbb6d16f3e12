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
	"github.com/wdamron/kestrel/types"
)

// Module is a parsed module: its top-level scope, the symbols it imports, and the symbols it exports.
type Module struct {
	// Name is the dotted module name, `a.b.c`.
	Name string
	// Path is the file the module was loaded from, if any.
	Path  string
	Scope *ModuleScope

	// Namespace holds value bindings visible at the top level without being defined by the
	// module: intrinsics and imported symbols.
	Namespace map[string]ValueBinding
	// TypeNamespace holds imported type bindings.
	TypeNamespace map[string]types.Binding
	// Qualified maps import aliases to imported modules.
	Qualified map[string]*Module

	Export      *ExportStmt
	Exports     map[string]ValueBinding
	ExportTypes map[string]types.Binding
}

// Create a module with the given top-level statements.
func NewModule(name string, body []Stmt) *Module {
	m := &Module{
		Name:          name,
		Namespace:     make(map[string]ValueBinding),
		TypeNamespace: make(map[string]types.Binding),
		Qualified:     make(map[string]*Module),
		Exports:       make(map[string]ValueBinding),
		ExportTypes:   make(map[string]types.Binding),
	}
	m.Scope = NewModuleScope(body)
	m.Scope.Module = m
	return m
}

// Lookup returns the top-level value binding for name: a binding of the module scope, then a
// namespace binding.
func (m *Module) Lookup(name string) (ValueBinding, bool) {
	if b, ok := m.Scope.Values[name]; ok {
		return b, true
	}
	b, ok := m.Namespace[name]
	return b, ok
}

// LookupType returns the top-level type binding for name.
func (m *Module) LookupType(name string) (types.Binding, bool) {
	if b, ok := m.Scope.Types[name]; ok {
		return b, true
	}
	b, ok := m.TypeNamespace[name]
	return b, ok
}
