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

package types

import (
	"strconv"
	"strings"
)

// TypeString returns a string representation of a Type.
func TypeString(t Type) string { return NewFormatter(nil).Format(t) }

// Formatter renders types with consistent names for unification variables. Ambient variables are
// named first, so the same variable receives the same name in every type rendered by one formatter.
type Formatter struct {
	names map[int]string
	next  int
}

func NewFormatter(ambient []*Var) *Formatter {
	f := &Formatter{names: make(map[int]string)}
	for _, tv := range ambient {
		f.varName(tv)
	}
	return f
}

// Format renders t.
func (f *Formatter) Format(t Type) string {
	var sb strings.Builder
	f.write(&sb, t, false)
	return sb.String()
}

func (f *Formatter) varName(tv *Var) string {
	if name, ok := f.names[tv.Id]; ok {
		return name
	}
	name := getVarName(f.next)
	f.next++
	f.names[tv.Id] = name
	return name
}

func getVarName(i int) string {
	if i >= 26 {
		return "'" + string(byte(97+i%26)) + strconv.Itoa(i/26)
	}
	return "'" + string(byte(97+i%26))
}

// simple reports whether t renders without spaces at the top level.
func simple(t Type) bool {
	_, _, isFn := FnParts(t)
	return !isFn
}

func (f *Formatter) write(sb *strings.Builder, t Type, nested bool) {
	switch t := t.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Const:
		sb.WriteString(t.Name)
	case *Param:
		sb.WriteString(t.Name)
	case *Var:
		sb.WriteString(f.varName(t))
	case *Ref:
		if t.Qualifier != "" {
			sb.WriteString(t.Qualifier)
			sb.WriteByte('.')
		}
		sb.WriteString(t.Name)
	case *Wildcard:
		sb.WriteByte('_')
	case *Scheme:
		f.write(sb, t.Body, nested)
	case *Enum:
		sb.WriteString(enumString(t))
	case *Extent:
		sb.WriteString(extentString(t))
	case *List:
		sb.WriteByte('[')
		f.writeItems(sb, t.Items)
		sb.WriteByte(']')
	case *Tuple:
		sb.WriteByte('(')
		f.writeItems(sb, t.Items)
		sb.WriteByte(')')
	case *Map:
		sb.WriteByte('{')
		f.writeRow(sb, t)
		sb.WriteByte('}')
	case *App:
		f.writeApp(sb, t, nested)
	default:
		sb.WriteString(t.TypeName())
	}
}

func (f *Formatter) writeItems(sb *strings.Builder, items TypeList) {
	items.Range(func(i int, item Type) bool {
		if i > 0 {
			sb.WriteString(", ")
		}
		f.write(sb, item, false)
		return true
	})
}

func (f *Formatter) writeRow(sb *strings.Builder, row *Map) {
	i := 0
	row.Fields.Range(func(label string, t Type) bool {
		if i > 0 {
			sb.WriteString(", ")
		}
		i++
		sb.WriteString(label)
		sb.WriteString(": ")
		f.write(sb, t, false)
		return true
	})
	if row.Rest != nil {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("| ")
		f.write(sb, row.Rest, false)
	} else if i == 0 {
		sb.WriteByte(':')
	}
}

func (f *Formatter) writeApp(sb *strings.Builder, t *App, nested bool) {
	if params, result, ok := FnParts(t); ok {
		if nested {
			sb.WriteByte('(')
		}
		if items, ok := TupItems(params); ok && items.Len() == 1 && simple(items.Get(0)) {
			f.write(sb, items.Get(0), true)
		} else if ok {
			sb.WriteByte('(')
			f.writeItems(sb, items)
			sb.WriteByte(')')
		} else {
			f.write(sb, params, true)
		}
		sb.WriteString(" -> ")
		f.write(sb, result, false)
		if nested {
			sb.WriteByte(')')
		}
		return
	}
	if items, ok := TupItems(t); ok {
		sb.WriteByte('(')
		f.writeItems(sb, items)
		if items.Len() == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
		return
	}
	if elem, ok := ListElem(t); ok {
		sb.WriteByte('[')
		f.write(sb, elem, false)
		sb.WriteByte(']')
		return
	}
	if k, v, ok := MapParts(t); ok {
		sb.WriteByte('[')
		f.write(sb, k, false)
		sb.WriteString(" : ")
		f.write(sb, v, false)
		sb.WriteByte(']')
		return
	}
	if row, ok := RecRow(t); ok {
		sb.WriteByte('(')
		f.writeRow(sb, row)
		sb.WriteByte(')')
		return
	}
	if row, ok := SumRow(t); ok {
		sb.WriteByte('<')
		f.writeRow(sb, row)
		sb.WriteByte('>')
		return
	}
	f.write(sb, t.Base, true)
	sb.WriteByte('(')
	if tuple, ok := t.Arg.(*Tuple); ok {
		f.writeItems(sb, tuple.Items)
	} else {
		f.write(sb, t.Arg, false)
	}
	sb.WriteByte(')')
}

// KindString returns a string representation of a Kind.
func KindString(k Kind) string {
	if k == nil {
		return "<nil>"
	}
	return k.KindString()
}
