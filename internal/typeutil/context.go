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
	"github.com/wdamron/kestrel/types"
)

// Context holds the state of one type-check run: the variable allocator and the substitution
// accumulated by unification.
type Context struct {
	VarTracker VarTracker
	Subst      types.Subst
}

func NewContext() *Context { return &Context{Subst: types.NewSubst()} }

// Reset discards all variables and substitutions. Types which still mention variables of the
// previous run become meaningless.
func (ctx *Context) Reset() {
	ctx.VarTracker.Reset()
	ctx.Subst = types.NewSubst()
}

// Fresh allocates a new type-variable.
func (ctx *Context) Fresh(k types.Kind, source *types.Param) *types.Var {
	return ctx.VarTracker.New(k, source)
}

// Apply applies the current substitution to t.
func (ctx *Context) Apply(t types.Type) types.Type { return ctx.Subst.Apply(t) }

// UnifyTxn marks a point to which unification may be rolled back.
type UnifyTxn struct {
	subst types.Subst
}

func (ctx *Context) NewUnifyTxn() UnifyTxn { return UnifyTxn{ctx.Subst} }

func (ctx *Context) Rollback(txn UnifyTxn) { ctx.Subst = txn.subst }

// CanUnify reports whether a and b unify, without recording any substitution.
func (ctx *Context) CanUnify(a, b types.Type) bool {
	txn := ctx.NewUnifyTxn()
	err := ctx.Unify(a, b)
	ctx.Rollback(txn)
	return err == nil
}

// TryUnify unifies a and b, recording substitutions only on success.
func (ctx *Context) TryUnify(a, b types.Type) error {
	txn := ctx.NewUnifyTxn()
	if err := ctx.Unify(a, b); err != nil {
		ctx.Rollback(txn)
		return err
	}
	return nil
}
