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
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// The largest tuple inferred from an address into a value of unknown type.
const maxInferredTuple = 1 << 10

func (c *checker) assign(t ast.Typed, ty types.Type) types.Type {
	t.SetType(ty)
	c.terms = append(c.terms, t)
	return ty
}

// resolved returns t in head-normal form under the current substitution.
func (c *checker) resolved(t types.Type) types.Type {
	return types.Evaluate(c.ctx.Apply(t))
}

func (c *checker) infer(t ast.Term) types.Type {
	switch t := t.(type) {
	case ast.Literal:
		return t.Type()

	case *ast.Ref:
		return c.assign(t, c.inferRef(t))

	case *ast.ListTerm:
		elem := types.Type(c.fresh())
		for _, item := range t.Items {
			c.unify(item.Location(), elem, c.infer(item))
		}
		return c.assign(t, types.NewListOf(elem))

	case *ast.TupleTerm:
		items := make([]types.Type, len(t.Items))
		for i, item := range t.Items {
			items[i] = c.infer(item)
		}
		return c.assign(t, types.NewTup(items...))

	case *ast.MapTerm:
		k, v := types.Type(c.fresh()), types.Type(c.fresh())
		for _, e := range t.Entries {
			c.unify(e.Key.Location(), k, c.infer(e.Key))
			c.unify(e.Value.Location(), v, c.infer(e.Value))
		}
		return c.assign(t, types.NewMapOf(k, v))

	case *ast.RecordTerm:
		fields := make(map[string]types.Type, len(t.Entries))
		for _, e := range t.Entries {
			vt := c.infer(e.Value)
			sym, ok := e.Key.(*ast.SymbolLit)
			if !ok {
				c.infer(e.Key)
				c.sink.Report(e.Key.Location(), diag.TypeNonConstantKey, "record keys must be constant symbols, found {0}", ast.TermString(e.Key))
				continue
			}
			if _, dup := fields[sym.Value]; dup {
				c.sink.Report(sym.Loc, diag.TypeDuplicateKey, "duplicate record key {0}", sym.Value)
				continue
			}
			fields[sym.Value] = vt
		}
		return c.assign(t, types.NewRec(types.NewMap(fields, nil)))

	case *ast.VariantTerm:
		row := &types.Map{
			Fields: types.SingletonTypeMap(t.Label, c.infer(t.Value)),
			Rest:   c.ctx.Fresh(types.StarKeyed, nil),
		}
		return c.assign(t, types.NewSum(row))

	case *ast.CondTerm:
		result := types.Type(c.fresh())
		for _, cc := range t.Cases {
			c.unify(cc.Cond.Location(), types.Bool, c.infer(cc.Cond))
			c.unify(cc.Value.Location(), result, c.infer(cc.Value))
		}
		if t.Else != nil {
			c.unify(t.Else.Location(), result, c.infer(t.Else))
		} else {
			c.unify(t.Loc, result, types.Unit)
		}
		return c.assign(t, result)

	case *ast.LambdaTerm:
		return c.assign(t, c.inferLambda(t.Scope))

	case *ast.AppTerm:
		return c.assign(t, c.inferApp(t))

	case *ast.CoerceTerm:
		c.infer(t.Term)
		if t.To == nil || !c.kindsAgree(t.Loc, t.To) {
			return c.assign(t, c.fresh())
		}
		return c.assign(t, c.ctx.Instantiate(t.To, c.bound))
	}
	diag.Fatal("unknown term type", t)
	return nil
}

func (c *checker) inferRef(ref *ast.Ref) types.Type {
	switch b := ref.Binding.(type) {
	case *ast.LetBinding:
		if it, ok := c.pending[b]; ok {
			return it.seed
		}
		t := b.ValueType()
		diag.Invariant(t != nil, "reference to a binding without a type", b.Name, ref.Loc)
		return c.ctx.Instantiate(t, nil)
	case *ast.ParamBinding:
		diag.Invariant(b.Lambda != nil, "reference to an uninstalled parameter", b.Name, ref.Loc)
		t := b.ValueType()
		diag.Invariant(t != nil, "reference to a parameter before its literal is checked", b.Name, ref.Loc)
		return t
	}
	diag.Fatal("unresolved reference", ref.QualifiedName(), ref.Loc)
	return nil
}

// declaredType instantiates a declared type of a function literal. Declared types of literals
// must not be quantified.
func (c *checker) declaredType(loc diag.Loc, t types.Type) types.Type {
	if _, ok := t.(*types.Scheme); ok || types.IsHigherRank(t) {
		c.sink.Report(loc, diag.TypeHigherRank, "declared type {0} has nested type parameters", types.TypeString(t))
		return c.fresh()
	}
	if !c.kindsAgree(loc, t) {
		return c.fresh()
	}
	return c.ctx.Instantiate(t, c.bound)
}

// kindsAgree reports a declared type containing an ill-kinded application.
func (c *checker) kindsAgree(loc diag.Loc, t types.Type) bool {
	if err := types.CheckKinds(t); err != nil {
		c.sink.Report(loc, diag.TypeKindMismatch, "invalid declared type {0}: {1}", types.TypeString(t), err)
		return false
	}
	return true
}

func (c *checker) inferLambda(s *ast.LambdaScope) types.Type {
	diag.Invariant(s.Committed(), "function literal checked before its parameters were committed", s.Loc)
	sig := &s.Signature
	params := c.declaredType(s.Loc, sig.DeclaredParams)
	if items, ok := types.TupItems(params); !ok || items.Len() != len(sig.Params) {
		if types.IsUnit(sig.DeclaredParams) && len(sig.Params) > 0 {
			c.sink.Report(s.Loc, diag.TypeUnitParams, "function literal declares no parameters but uses {0}", sig.Params[0].Name)
		}
		items := make([]types.Type, len(sig.Params))
		for i := range items {
			items[i] = c.fresh()
		}
		params = types.NewTup(items...)
	}
	var result types.Type
	if sig.Declared != nil {
		result = c.declaredType(s.Loc, sig.Declared)
	} else {
		result = c.fresh()
	}
	fn := types.NewFnOf(params, result)
	sig.Type = fn
	c.group.ambient = append(c.group.ambient, fn)

	c.checkScope(s)

	var rt types.Type = types.Unit
	loc := s.Loc
	if r := s.Result(); r != nil {
		rt, loc = r.Type(), r.Location()
	}
	c.unify(loc, result, rt)
	return fn
}

func (c *checker) inferApp(t *ast.AppTerm) types.Type {
	switch t.Flavor {
	case ast.Call:
		return c.inferCall(t)
	case ast.Index:
		return c.inferIndex(t)
	case ast.Address:
		return c.inferAddress(t)
	}
	diag.Fatal("unknown application flavor", t.Flavor)
	return nil
}

func (c *checker) inferCall(t *ast.AppTerm) types.Type {
	bt := c.infer(t.Base)
	args := make([]types.Type, len(t.Args))
	for i, arg := range t.Args {
		args[i] = c.infer(arg)
	}
	base := c.resolved(bt)
	if _, isVar := base.(*types.Var); !isVar {
		if _, _, ok := types.FnParts(base); !ok {
			c.sink.Report(t.Loc, diag.TypeNotApplicable, "{0} of type {1} is not a function", ast.TermString(t.Base), c.formatter().Format(base))
			return types.Unit
		}
	}
	result := c.fresh()
	if !c.unify(t.Loc, bt, types.NewFn(args, result)) {
		return types.Unit
	}
	return result
}

func (c *checker) inferIndex(t *ast.AppTerm) types.Type {
	bt := c.infer(t.Base)
	if len(t.Args) != 1 {
		for _, arg := range t.Args {
			c.infer(arg)
		}
		c.sink.Report(t.Loc, diag.TypeArity, "index expects 1 argument, found {0}", len(t.Args))
		return types.Unit
	}
	key := t.Args[0]
	kt := c.infer(key)
	if k, v, ok := types.MapParts(c.resolved(bt)); ok {
		if dom, ok := c.resolved(k).(*types.Enum); ok {
			c.checkKey(key, kt, dom)
			return v
		}
		c.unify(key.Location(), k, kt)
		return v
	}
	elem := c.fresh()
	if !c.unify(t.Loc, bt, types.NewListOf(elem)) {
		return types.Unit
	}
	c.unify(key.Location(), types.Int, kt)
	return elem
}

func (c *checker) inferAddress(t *ast.AppTerm) types.Type {
	bt := c.infer(t.Base)
	if len(t.Args) != 1 {
		for _, arg := range t.Args {
			c.infer(arg)
		}
		c.sink.Report(t.Loc, diag.TypeArity, "address expects 1 key, found {0}", len(t.Args))
		return types.Unit
	}
	key := t.Args[0]
	lit, ok := key.(ast.Literal)
	if !ok {
		c.infer(key)
		c.sink.Report(key.Location(), diag.TypeBadAddress, "address must be a constant, found {0}", ast.TermString(key))
		return types.Unit
	}
	base := c.resolved(bt)

	if row, ok := types.RecRow(base); ok {
		if sym, ok := lit.(*ast.SymbolLit); ok {
			return c.field(t, bt, row, sym)
		}
	} else if items, ok := types.TupItems(base); ok {
		if i, ok := lit.(*ast.IntLit); ok {
			if ext := (&types.Extent{Size: items.Len()}); !ext.Contains(i.Key()) {
				c.sink.Report(key.Location(), diag.TypeAddressRange, "index {0} is out of range {1} for {2}", i.Value, types.TypeString(ext), c.formatter().Format(base))
				return types.Unit
			}
			return items.Get(int(i.Value))
		}
	} else if _, ok := base.(*types.Var); ok {
		switch k := lit.(type) {
		case *ast.SymbolLit:
			v := c.fresh()
			row := &types.Map{Fields: types.SingletonTypeMap(k.Value, v), Rest: c.ctx.Fresh(types.StarKeyed, nil)}
			if !c.unify(t.Loc, bt, types.NewRec(row)) {
				return types.Unit
			}
			return v
		case *ast.IntLit:
			if k.Value < 0 || k.Value >= maxInferredTuple {
				c.sink.Report(key.Location(), diag.TypeAddressRange, "index {0} is out of range", k.Value)
				return types.Unit
			}
			items := c.ctx.VarTracker.NewList(int(k.Value) + 1)
			if !c.unify(t.Loc, bt, types.NewTup(items...)) {
				return types.Unit
			}
			return items[k.Value]
		}
	}
	c.sink.Report(t.Loc, diag.TypeBadAddress, "cannot address {0} of type {1} with {2}", ast.TermString(t.Base), c.formatter().Format(base), ast.TermString(key))
	return types.Unit
}

// checkAgainst infers t and unifies its type with expected. A map literal expected to be keyed by
// an enum must have constant keys within the enum.
func (c *checker) checkAgainst(t ast.Term, expected types.Type) {
	if m, ok := t.(*ast.MapTerm); ok {
		if k, v, ok := types.MapParts(c.resolved(expected)); ok {
			if dom, ok := c.resolved(k).(*types.Enum); ok {
				for _, e := range m.Entries {
					c.checkKey(e.Key, c.infer(e.Key), dom)
					c.unify(e.Value.Location(), v, c.infer(e.Value))
				}
				c.assign(m, expected)
				return
			}
		}
	}
	c.unify(t.Location(), expected, c.infer(t))
}

// checkKey checks a key of a map keyed by dom.
func (c *checker) checkKey(key ast.Term, kt types.Type, dom *types.Enum) {
	lit, ok := key.(ast.Literal)
	if !ok {
		c.sink.Report(key.Location(), diag.TypeNonConstantKey, "keys of {0} must be constants, found {1}", types.TypeString(dom), ast.TermString(key))
		return
	}
	if c.unify(key.Location(), dom.Base, kt) && !dom.Contains(lit.Key()) {
		c.sink.Report(key.Location(), diag.TypeKeyDomain, "key {0} is not in {1}", lit.String(), types.TypeString(dom))
	}
}

// field selects a field of a record, extending an open row with the field when it is missing.
func (c *checker) field(t *ast.AppTerm, bt types.Type, row *types.Map, sym *ast.SymbolLit) types.Type {
	if ft, ok := row.Fields.Get(sym.Value); ok {
		return ft
	}
	if row.Rest == nil {
		c.sink.Report(sym.Loc, diag.TypeNoField, "{0} has no field {1}", c.formatter().Format(c.ctx.Apply(bt)), sym.Value)
		return types.Unit
	}
	v := c.fresh()
	ext := &types.Map{Fields: types.SingletonTypeMap(sym.Value, v), Rest: c.ctx.Fresh(types.StarKeyed, nil)}
	if !c.unify(t.Loc, bt, types.NewRec(ext)) {
		return types.Unit
	}
	return v
}
