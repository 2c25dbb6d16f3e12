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
	"strings"

	"github.com/wdamron/kestrel/types"
)

// TermString returns a string representation of a term.
func TermString(t Term) string {
	var sb strings.Builder
	termString(&sb, t)
	return sb.String()
}

// StmtString returns a string representation of a statement.
func StmtString(s Stmt) string {
	var sb strings.Builder
	stmtString(&sb, s)
	return sb.String()
}

func termString(sb *strings.Builder, t Term) {
	switch t := t.(type) {
	case nil:
		sb.WriteString("()")

	case *Ref:
		sb.WriteString(t.QualifiedName())

	case Literal:
		sb.WriteString(t.String())

	case *ListTerm:
		sb.WriteByte('[')
		termList(sb, t.Items)
		sb.WriteByte(']')

	case *TupleTerm:
		sb.WriteByte('(')
		termList(sb, t.Items)
		if len(t.Items) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')

	case *MapTerm:
		sb.WriteByte('[')
		if len(t.Entries) == 0 {
			sb.WriteByte(':')
		}
		entries(sb, t.Entries, false)
		sb.WriteByte(']')

	case *RecordTerm:
		sb.WriteByte('(')
		if len(t.Entries) == 0 {
			sb.WriteByte(':')
		}
		entries(sb, t.Entries, true)
		sb.WriteByte(')')

	case *VariantTerm:
		sb.WriteByte('<')
		sb.WriteString(t.Label)
		sb.WriteString(": ")
		termString(sb, t.Value)
		sb.WriteByte('>')

	case *CondTerm:
		sb.WriteByte('(')
		for _, c := range t.Cases {
			termString(sb, c.Cond)
			sb.WriteString(" ? ")
			termString(sb, c.Value)
			sb.WriteString(" : ")
		}
		termString(sb, t.Else)
		sb.WriteByte(')')

	case *LambdaTerm:
		lambdaString(sb, t.Scope)

	case *AppTerm:
		termString(sb, t.Base)
		switch t.Flavor {
		case Call:
			sb.WriteByte('(')
			termList(sb, t.Args)
			sb.WriteByte(')')
		case Index:
			sb.WriteByte('[')
			termList(sb, t.Args)
			sb.WriteByte(']')
		case Address:
			sb.WriteByte('.')
			if len(t.Args) == 1 {
				if sym, ok := t.Args[0].(*SymbolLit); ok {
					sb.WriteString(sym.Value)
					break
				}
			}
			sb.WriteByte('(')
			termList(sb, t.Args)
			sb.WriteByte(')')
		}

	case *CoerceTerm:
		sb.WriteString("coerce(")
		termString(sb, t.Term)
		sb.WriteString(", ")
		sb.WriteString(types.TypeString(t.To))
		sb.WriteByte(')')

	default:
		sb.WriteString(t.TermName())
	}
}

func termList(sb *strings.Builder, ts []Term) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		termString(sb, t)
	}
}

func entries(sb *strings.Builder, es []Entry, labeled bool) {
	for i, e := range es {
		if i > 0 {
			sb.WriteString(", ")
		}
		if sym, ok := e.Key.(*SymbolLit); ok && labeled {
			sb.WriteString(sym.Value)
		} else {
			termString(sb, e.Key)
		}
		sb.WriteString(": ")
		termString(sb, e.Value)
	}
}

func lambdaString(sb *strings.Builder, s *LambdaScope) {
	sb.WriteString("{ ")
	for i, p := range s.Signature.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.Declared != nil {
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(p.Declared))
		}
	}
	if len(s.Signature.Params) > 0 || s.Explicit {
		sb.WriteString(" => ")
	}
	for i, stmt := range s.Body {
		if i > 0 {
			sb.WriteString("; ")
		}
		stmtString(sb, stmt)
	}
	sb.WriteString(" }")
}

func stmtString(sb *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ImportStmt:
		sb.WriteString("import ")
		sb.WriteString(s.Module)
		if s.Alias != "" {
			sb.WriteString(" as ")
			sb.WriteString(s.Alias)
		}
		if s.Wildcard {
			sb.WriteString(" *")
		} else if len(s.Symbols) > 0 {
			sb.WriteString(" (")
			sb.WriteString(strings.Join(s.Symbols, ", "))
			sb.WriteByte(')')
		}

	case *ExportStmt:
		sb.WriteString("export")
		switch s.Mode {
		case ExportOpen:
			sb.WriteString(" *")
		case ExportList:
			sb.WriteString(" (")
			sb.WriteString(strings.Join(s.Symbols, ", "))
			sb.WriteByte(')')
		}

	case *LetStmt:
		b := s.Binding
		sb.WriteString("let ")
		sb.WriteString(b.Name)
		if b.Declared != nil {
			sb.WriteString(": ")
			sb.WriteString(types.TypeString(b.Declared))
		}
		sb.WriteString(" = ")
		if b.IsIntrinsic() {
			sb.WriteString("intrinsic ")
			sb.WriteString(b.Intrinsic)
		} else {
			termString(sb, b.Init)
		}

	case *TypeDefStmt:
		sb.WriteString("type ")
		sb.WriteString(s.Def.Name)
		if len(s.Def.Params) > 0 {
			sb.WriteByte('(')
			for i, p := range s.Def.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.Name)
			}
			sb.WriteByte(')')
		}
		sb.WriteString(" = ")
		sb.WriteString(types.TypeString(s.Def.Value))

	case *ExprStmt:
		termString(sb, s.Term)

	default:
		sb.WriteString(s.StmtName())
	}
}

// BindingString renders a binding with its calculated type: `x: Int`.
func BindingString(b ValueBinding) string {
	t := b.ValueType()
	if t == nil {
		return b.BindingName()
	}
	return b.BindingName() + ": " + types.TypeString(t)
}
