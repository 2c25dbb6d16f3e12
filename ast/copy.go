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

// ShallowCopy returns a copy of t which shares nested terms and keeps the calculated type of t.
// Function literals are not copied: their scopes are identified by reference.
func ShallowCopy(t Term) Term {
	switch t := t.(type) {
	case *Ref:
		c := *t
		return &c
	case *BoolLit:
		c := *t
		return &c
	case *IntLit:
		c := *t
		return &c
	case *LongLit:
		c := *t
		return &c
	case *DoubleLit:
		c := *t
		return &c
	case *StringLit:
		c := *t
		return &c
	case *SymbolLit:
		c := *t
		return &c
	case *ListTerm:
		c := *t
		c.Items = append([]Term(nil), t.Items...)
		return &c
	case *TupleTerm:
		c := *t
		c.Items = append([]Term(nil), t.Items...)
		return &c
	case *MapTerm:
		c := *t
		c.Entries = append([]Entry(nil), t.Entries...)
		return &c
	case *RecordTerm:
		c := *t
		c.Entries = append([]Entry(nil), t.Entries...)
		return &c
	case *VariantTerm:
		c := *t
		return &c
	case *CondTerm:
		c := *t
		c.Cases = append([]CondCase(nil), t.Cases...)
		return &c
	case *LambdaTerm:
		return t
	case *AppTerm:
		c := *t
		c.Args = append([]Term(nil), t.Args...)
		return &c
	case *CoerceTerm:
		c := *t
		return &c
	}
	panic("unknown term type: " + t.TermName())
}

// Transform rebuilds t bottom-up: nested terms are transformed first, then f is called with t (or
// with a copy of t holding the changed nested terms). A term is copied only when a nested term
// changed; unchanged subtrees are shared. Statements of function literals are not transformed.
func Transform(t Term, f func(Term) Term) Term {
	if t == nil {
		return nil
	}
	var c Term
	// edit returns the copy of t, creating it on first use.
	edit := func() Term {
		if c == nil {
			c = ShallowCopy(t)
		}
		return c
	}
	switch tt := t.(type) {
	case *ListTerm:
		for i, item := range tt.Items {
			if u := Transform(item, f); u != item {
				edit().(*ListTerm).Items[i] = u
			}
		}
	case *TupleTerm:
		for i, item := range tt.Items {
			if u := Transform(item, f); u != item {
				edit().(*TupleTerm).Items[i] = u
			}
		}
	case *MapTerm:
		for i, e := range tt.Entries {
			k, v := Transform(e.Key, f), Transform(e.Value, f)
			if k != e.Key || v != e.Value {
				edit().(*MapTerm).Entries[i] = Entry{Key: k, Value: v}
			}
		}
	case *RecordTerm:
		for i, e := range tt.Entries {
			k, v := Transform(e.Key, f), Transform(e.Value, f)
			if k != e.Key || v != e.Value {
				edit().(*RecordTerm).Entries[i] = Entry{Key: k, Value: v}
			}
		}
	case *VariantTerm:
		if u := Transform(tt.Value, f); u != tt.Value {
			edit().(*VariantTerm).Value = u
		}
	case *CondTerm:
		for i, cc := range tt.Cases {
			cond, value := Transform(cc.Cond, f), Transform(cc.Value, f)
			if cond != cc.Cond || value != cc.Value {
				edit().(*CondTerm).Cases[i] = CondCase{Cond: cond, Value: value}
			}
		}
		if u := Transform(tt.Else, f); u != tt.Else {
			edit().(*CondTerm).Else = u
		}
	case *AppTerm:
		if u := Transform(tt.Base, f); u != tt.Base {
			edit().(*AppTerm).Base = u
		}
		for i, arg := range tt.Args {
			if u := Transform(arg, f); u != arg {
				edit().(*AppTerm).Args[i] = u
			}
		}
	case *CoerceTerm:
		if u := Transform(tt.Term, f); u != tt.Term {
			edit().(*CoerceTerm).Term = u
		}
	}
	if c != nil {
		return f(c)
	}
	return f(t)
}
