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

package typeutil

import (
	"strings"

	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// UnifyError describes the innermost pair of types which failed to unify.
type UnifyError struct {
	Code diag.Code
	A, B types.Type
	Msg  string
}

func (e *UnifyError) Error() string { return e.Msg }

func mismatch(a, b types.Type) *UnifyError {
	return &UnifyError{Code: diag.TypeMismatch, A: a, B: b, Msg: "Failed to unify " + types.TypeString(a) + " with " + types.TypeString(b)}
}

type visitedPair struct{ a, b types.Type }

type unifier struct {
	ctx *Context
	// Pairs of abstraction applications already being unified, compared by type identity.
	// Recursive abstractions otherwise unfold without bound.
	visited []visitedPair
}

// Unify unifies a and b, composing the resulting bindings into the context's substitution.
//
// Constructors unify only with themselves. Applications of type abstractions are evaluated before
// they are compared. A failed unification may leave partial bindings in the substitution; use
// TryUnify to discard them.
func (ctx *Context) Unify(a, b types.Type) error {
	u := unifier{ctx: ctx}
	return u.unify(a, b)
}

// Types must be instantiated before unification.
func (u *unifier) resolve(t types.Type) types.Type {
	for {
		diag.Invariant(t != nil, "unifying a nil type")
		switch t.(type) {
		case *types.Scheme:
			diag.Fatal("unifying a quantified type", t)
		case *types.Wildcard:
			diag.Fatal("unifying a wildcard", t)
		}
		next := types.Evaluate(u.ctx.Subst.Resolve(t))
		if next == t {
			return t
		}
		t = next
	}
}

// Abstraction applications are keyed before evaluation.
func (u *unifier) isAbstractionApp(t types.Type) bool {
	app, ok := t.(*types.App)
	if !ok {
		return false
	}
	c, ok := types.Evaluate(app.Base).(*types.Const)
	return ok && c.IsAbstraction()
}

func (u *unifier) enter(a, b types.Type) (seen bool) {
	if !u.isAbstractionApp(a) && !u.isAbstractionApp(b) {
		return false
	}
	a, b = u.ctx.Apply(a), u.ctx.Apply(b)
	for _, p := range u.visited {
		if types.Equal(p.a, a) && types.Equal(p.b, b) || types.Equal(p.a, b) && types.Equal(p.b, a) {
			return true
		}
	}
	u.visited = append(u.visited, visitedPair{a, b})
	return false
}

func (u *unifier) unify(a, b types.Type) error {
	diag.Invariant(a != nil && b != nil, "unifying a nil type", a, b)
	if a == b {
		return nil
	}
	if u.enter(a, b) {
		return nil
	}
	a, b = u.resolve(a), u.resolve(b)
	if a == b {
		return nil
	}

	// unify type variables:

	avar, _ := a.(*types.Var)
	bvar, _ := b.(*types.Var)
	switch {
	case avar != nil && bvar != nil:
		if avar.Id == bvar.Id {
			return nil
		}
		// keep the variable which remembers its declared parameter:
		if avar.Source != nil && bvar.Source == nil {
			return u.bindVar(bvar, avar)
		}
		return u.bindVar(avar, bvar)
	case avar != nil:
		return u.bindVar(avar, b)
	case bvar != nil:
		return u.bindVar(bvar, a)
	}

	// unify types:

	switch a := a.(type) {
	case *types.Const:
		// constructors are equal only by identity

	case *types.Param:
		// parameters are equal only by identity

	case *types.Ref:
		if types.Equal(a, b) {
			return nil
		}

	case *types.App:
		b, ok := b.(*types.App)
		if !ok {
			break
		}
		if err := u.unify(a.Base, b.Base); err != nil {
			return err
		}
		return u.unify(a.Arg, b.Arg)

	case *types.List:
		if b, ok := b.(*types.List); ok {
			return u.unifyLists(a, b, a.Items, b.Items)
		}

	case *types.Tuple:
		if b, ok := b.(*types.Tuple); ok {
			return u.unifyLists(a, b, a.Items, b.Items)
		}

	case *types.Map:
		if b, ok := b.(*types.Map); ok {
			return u.unifyRows(a, b)
		}

	case *types.Enum, *types.Extent:
		if types.EnumsEqual(a, b) {
			return nil
		}
	}

	return mismatch(a, b)
}

func (u *unifier) bindVar(tv *types.Var, t types.Type) error {
	t = u.ctx.Apply(t)
	if !types.KindsEqual(tv.Kind(), t.Kind()) {
		return &UnifyError{
			Code: diag.TypeKindMismatch, A: tv, B: t,
			Msg: "Failed to unify type-variable of kind " + tv.Kind().KindString() + " with " + types.TypeString(t) + " of kind " + t.Kind().KindString(),
		}
	}
	// prevent cyclical types:
	if types.ContainsVar(t, tv.Id) {
		return &UnifyError{Code: diag.TypeRecursive, A: tv, B: t, Msg: "Implicitly recursive types are not supported"}
	}
	u.ctx.Subst = u.ctx.Subst.Bind(tv, t)
	return nil
}

func (u *unifier) unifyLists(a, b types.Type, la, lb types.TypeList) error {
	if la.Len() != lb.Len() {
		return &UnifyError{Code: diag.TypeArity, A: a, B: b, Msg: "Cannot unify " + types.TypeString(a) + " with " + types.TypeString(b) + " of differing arity"}
	}
	for i := 0; i < la.Len(); i++ {
		if err := u.unify(la.Get(i), lb.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

var emptyRow = &types.Map{}

// flatten merges the rows reachable through bound row variables.
func (u *unifier) flatten(m *types.Map) (types.TypeMap, types.Type) {
	fields, rest := m.Fields, m.Rest
	for rest != nil {
		rest = u.resolve(rest)
		inner, ok := rest.(*types.Map)
		if !ok {
			break
		}
		merged := types.FlattenRow(fields, inner)
		fields, rest = merged.Fields, merged.Rest
	}
	return fields, rest
}

func (u *unifier) unifyRows(a, b *types.Map) error {
	fieldsA, restA := u.flatten(a)
	fieldsB, restB := u.flatten(b)

	// labels missing from fieldsA/fieldsB:
	missingA, missingB := types.NewTypeMapBuilder(), types.NewTypeMapBuilder()
	var err error
	fieldsA.Range(func(label string, ta types.Type) bool {
		if _, ok := fieldsB.Get(label); !ok {
			missingB.Set(label, ta)
		}
		return true
	})
	fieldsB.Range(func(label string, tb types.Type) bool {
		ta, ok := fieldsA.Get(label)
		if !ok {
			missingA.Set(label, tb)
			return true
		}
		err = u.unify(ta, tb)
		return err == nil
	})
	if err != nil {
		return err
	}

	za, zb := missingA.Len() == 0, missingB.Len() == 0
	switch {
	case za && zb: // all labels match
		if restA == nil && restB == nil {
			return nil
		}
		return u.unify(orEmpty(restA), orEmpty(restB))
	case za && !zb: // labels missing in fieldsB
		return u.unifyRest(a, b, restB, &types.Map{Fields: missingB.Build(), Rest: restA})
	case !za && zb: // labels missing in fieldsA
		return u.unifyRest(a, b, restA, &types.Map{Fields: missingA.Build(), Rest: restB})
	}
	// labels missing in both fieldsA/fieldsB:
	va, okA := restA.(*types.Var)
	vb, okB := restB.(*types.Var)
	if !okA || !okB {
		return mismatch(a, b)
	}
	if va.Id == vb.Id {
		return &UnifyError{Code: diag.TypeRecursive, A: a, B: b, Msg: "Invalid recursive row-types"}
	}
	tv := u.ctx.Fresh(types.StarKeyed, nil)
	if err := u.unify(va, &types.Map{Fields: missingA.Build(), Rest: tv}); err != nil {
		return err
	}
	return u.unify(vb, &types.Map{Fields: missingB.Build(), Rest: tv})
}

// unifyRest extends an open row with the labels it lacks. A closed row cannot be extended.
func (u *unifier) unifyRest(a, b *types.Map, rest types.Type, ext *types.Map) error {
	if rest == nil {
		return &UnifyError{Code: diag.TypeNoField, A: a, B: b,
			Msg: "Row " + types.TypeString(a) + " does not match row " + types.TypeString(b) + ": missing " + strings.Join(ext.Fields.Labels(), ", ")}
	}
	return u.unify(rest, ext)
}

func orEmpty(rest types.Type) types.Type {
	if rest == nil {
		return emptyRow
	}
	return rest
}
