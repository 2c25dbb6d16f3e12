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

// Visit calls f for t and each term nested within t in depth-first order, including the statements
// of nested function literals. If f returns false, terms nested within the current term are skipped.
func Visit(t Term, f func(Term) bool) {
	if t == nil || !f(t) {
		return
	}
	switch t := t.(type) {
	case *Ref, *BoolLit, *IntLit, *LongLit, *DoubleLit, *StringLit, *SymbolLit:

	case *ListTerm:
		for _, item := range t.Items {
			Visit(item, f)
		}

	case *TupleTerm:
		for _, item := range t.Items {
			Visit(item, f)
		}

	case *MapTerm:
		for _, e := range t.Entries {
			Visit(e.Key, f)
			Visit(e.Value, f)
		}

	case *RecordTerm:
		for _, e := range t.Entries {
			Visit(e.Key, f)
			Visit(e.Value, f)
		}

	case *VariantTerm:
		Visit(t.Value, f)

	case *CondTerm:
		for _, c := range t.Cases {
			Visit(c.Cond, f)
			Visit(c.Value, f)
		}
		Visit(t.Else, f)

	case *LambdaTerm:
		VisitStmts(t.Scope.Body, f)

	case *AppTerm:
		Visit(t.Base, f)
		for _, arg := range t.Args {
			Visit(arg, f)
		}

	case *CoerceTerm:
		Visit(t.Term, f)

	default:
		panic("unknown term type: " + t.TermName())
	}
}

// VisitStmts calls Visit for the terms of each statement.
func VisitStmts(body []Stmt, f func(Term) bool) {
	for _, stmt := range body {
		switch stmt := stmt.(type) {
		case *LetStmt:
			Visit(stmt.Binding.Init, f)
		case *ExprStmt:
			Visit(stmt.Term, f)
		}
	}
}

// Frame is one level of the scope stack maintained by a ScopeWalker: a scope and the statement of
// its body currently being walked.
type Frame struct {
	Scope Scope
	Stmt  Stmt
}

// ScopeWalker walks scopes and the terms of their statements, maintaining the stack of lexical
// scopes and the current statement at each level. Function literal scopes are entered as they are
// reached. Every hook is optional.
type ScopeWalker struct {
	Frames []Frame

	// EnterScope is called before the body of a scope is walked.
	EnterScope func(w *ScopeWalker, s Scope)
	// LeaveScope is called after the body of a scope is walked, before its frame is popped.
	LeaveScope func(w *ScopeWalker, s Scope)
	// Stmt is called before the terms of a statement; returning false skips them.
	Stmt func(w *ScopeWalker, s Stmt) bool
	// Term is called before the terms nested within t. It returns a replacement for t (or t), and
	// whether to walk the nested terms of the replacement.
	Term func(w *ScopeWalker, t Term) (Term, bool)
}

// Scope returns the innermost scope.
func (w *ScopeWalker) Scope() Scope { return w.Frames[len(w.Frames)-1].Scope }

// Frame returns the innermost frame.
func (w *ScopeWalker) Frame() *Frame { return &w.Frames[len(w.Frames)-1] }

// Depth returns the number of scopes on the stack.
func (w *ScopeWalker) Depth() int { return len(w.Frames) }

// IndexOf returns the index of the frame of scope s, or -1 if s is not on the stack.
func (w *ScopeWalker) IndexOf(s Scope) int {
	for i := len(w.Frames) - 1; i >= 0; i-- {
		if w.Frames[i].Scope == s {
			return i
		}
	}
	return -1
}

// Walk walks the body of s within a new frame.
func (w *ScopeWalker) Walk(s Scope) {
	w.Frames = append(w.Frames, Frame{Scope: s})
	if w.EnterScope != nil {
		w.EnterScope(w, s)
	}
	body := s.Base().Body
	for _, stmt := range body {
		w.WalkStmt(stmt)
	}
	if w.LeaveScope != nil {
		w.LeaveScope(w, s)
	}
	w.Frames = w.Frames[:len(w.Frames)-1]
}

// WalkStmt walks the terms of a statement of the innermost scope.
func (w *ScopeWalker) WalkStmt(stmt Stmt) {
	f := w.Frame()
	prev := f.Stmt
	f.Stmt = stmt
	defer func() { w.Frame().Stmt = prev }()
	if w.Stmt != nil && !w.Stmt(w, stmt) {
		return
	}
	switch stmt := stmt.(type) {
	case *LetStmt:
		if stmt.Binding.Init != nil {
			stmt.Binding.Init = w.WalkTerm(stmt.Binding.Init)
		}
	case *ExprStmt:
		stmt.Term = w.WalkTerm(stmt.Term)
	}
}

// WalkTerm walks t and its nested terms, returning the replacement for t.
func (w *ScopeWalker) WalkTerm(t Term) Term {
	if t == nil {
		return nil
	}
	if w.Term != nil {
		var descend bool
		if t, descend = w.Term(w, t); !descend {
			return t
		}
	}
	switch t := t.(type) {
	case *ListTerm:
		for i := range t.Items {
			t.Items[i] = w.WalkTerm(t.Items[i])
		}
	case *TupleTerm:
		for i := range t.Items {
			t.Items[i] = w.WalkTerm(t.Items[i])
		}
	case *MapTerm:
		for i := range t.Entries {
			t.Entries[i].Key = w.WalkTerm(t.Entries[i].Key)
			t.Entries[i].Value = w.WalkTerm(t.Entries[i].Value)
		}
	case *RecordTerm:
		for i := range t.Entries {
			t.Entries[i].Key = w.WalkTerm(t.Entries[i].Key)
			t.Entries[i].Value = w.WalkTerm(t.Entries[i].Value)
		}
	case *VariantTerm:
		t.Value = w.WalkTerm(t.Value)
	case *CondTerm:
		for i := range t.Cases {
			t.Cases[i].Cond = w.WalkTerm(t.Cases[i].Cond)
			t.Cases[i].Value = w.WalkTerm(t.Cases[i].Value)
		}
		t.Else = w.WalkTerm(t.Else)
	case *LambdaTerm:
		w.Walk(t.Scope)
	case *AppTerm:
		t.Base = w.WalkTerm(t.Base)
		for i := range t.Args {
			t.Args[i] = w.WalkTerm(t.Args[i])
		}
	case *CoerceTerm:
		t.Term = w.WalkTerm(t.Term)
	}
	return t
}
