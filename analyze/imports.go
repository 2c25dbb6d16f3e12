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
	"errors"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/intrinsic"
	"github.com/wdamron/kestrel/loader"
)

// ResolveImports installs the intrinsics of reg into the module namespace, then loads each
// imported module from src and merges the imported symbols. Imports must precede every
// definition and expression of the module.
func ResolveImports(m *ast.Module, sink *diag.Sink, reg intrinsic.Registry, src ModuleSource) {
	for _, name := range reg.Names() {
		in, _ := reg.Lookup(name)
		m.Namespace[name] = &ast.LetBinding{Name: name, Loc: diag.NoLoc, Intrinsic: name, Declared: in.Type}
	}

	var first ast.Stmt
	for _, stmt := range m.Scope.Body {
		switch stmt := stmt.(type) {
		case *ast.ImportStmt:
			if first != nil {
				sink.Report(stmt.Loc, diag.ModImportLate, "import of {0} must precede the definition at {1}", stmt.Module, first.Location())
				continue
			}
			resolveImport(m, sink, src, stmt)
		case *ast.LetStmt, *ast.TypeDefStmt, *ast.ExprStmt:
			if first == nil {
				first = stmt
			}
		}
	}
}

func resolveImport(m *ast.Module, sink *diag.Sink, src ModuleSource, imp *ast.ImportStmt) {
	if src == nil {
		sink.Report(imp.Loc, diag.ModImportMissing, "module {0} could not be found", imp.Module)
		return
	}
	dep, err := src.Module(imp.Module)
	if err != nil {
		switch {
		case errors.Is(err, loader.ErrNotFound):
			sink.Report(imp.Loc, diag.ModImportMissing, "module {0} could not be found", imp.Module)
		case errors.Is(err, loader.ErrUnreadable):
			sink.Report(imp.Loc, diag.ModImportUnreadable, "module {0} could not be read: {1}", imp.Module, err)
		default:
			sink.Report(imp.Loc, diag.ModImportFailed, "module {0} failed to load: {1}", imp.Module, err)
		}
		return
	}
	m.Qualified[imp.QualifierName()] = dep

	if imp.Wildcard {
		for name, b := range dep.Exports {
			m.Namespace[name] = b
		}
		for name, b := range dep.ExportTypes {
			m.TypeNamespace[name] = b
		}
		return
	}
	for _, name := range imp.Symbols {
		found := false
		if b, ok := dep.Exports[name]; ok {
			m.Namespace[name] = b
			found = true
		}
		if b, ok := dep.ExportTypes[name]; ok {
			m.TypeNamespace[name] = b
			found = true
		}
		if !found {
			sink.Report(imp.Loc, diag.BindNotExported, "{0} is not exported by module {1}", name, imp.Module)
		}
	}
}

// ResolveExports computes the exported symbols of a module. Without an export statement the
// module exports its own top-level bindings.
func ResolveExports(m *ast.Module, sink *diag.Sink) {
	for _, stmt := range m.Scope.Body {
		e, ok := stmt.(*ast.ExportStmt)
		if !ok {
			continue
		}
		if m.Export != nil {
			sink.Report(e.Loc, diag.ModExportDuplicate, "duplicate export; the module is already exported at {0}", m.Export.Loc)
			continue
		}
		m.Export = e
	}

	mode := ast.ExportLocals
	if m.Export != nil {
		mode = m.Export.Mode
	}
	switch mode {
	case ast.ExportLocals, ast.ExportOpen:
		if mode == ast.ExportOpen {
			for name, b := range m.Namespace {
				if let, ok := b.(*ast.LetBinding); ok && let.IsIntrinsic() && let.Owner == nil {
					continue
				}
				m.Exports[name] = b
			}
			for name, b := range m.TypeNamespace {
				m.ExportTypes[name] = b
			}
		}
		for name, b := range m.Scope.Values {
			m.Exports[name] = b
		}
		for name, b := range m.Scope.Types {
			m.ExportTypes[name] = b
		}
	case ast.ExportList:
		for _, name := range m.Export.Symbols {
			found := false
			if b, ok := m.Scope.Values[name]; ok {
				m.Exports[name] = b
				found = true
			}
			if b, ok := m.Scope.Types[name]; ok {
				m.ExportTypes[name] = b
				found = true
			}
			if !found {
				sink.Report(m.Export.Loc, diag.ModExportUnknown, "{0} is not defined in module {1}", name, m.Name)
			}
		}
	}
}
