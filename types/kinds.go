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
	"errors"
	"strings"
)

// Kind classifies types: `*`, `* -> *`, tuples of kinds, and the kinds of aggregate shapes.
type Kind interface {
	KindString() string
}

type starKind struct{}

func (starKind) KindString() string { return "*" }

// Star is the kind of value types.
var Star Kind = starKind{}

// Kind of constructors: `* -> *`
type ArrowKind struct {
	From, To Kind
}

func (k *ArrowKind) KindString() string {
	from := k.From.KindString()
	if _, ok := k.From.(*ArrowKind); ok {
		from = "(" + from + ")"
	}
	return from + " -> " + k.To.KindString()
}

// Kind of a fixed-arity type tuple: `(*, *)`
type TupleKind struct {
	Items []Kind
}

func (k *TupleKind) KindString() string {
	parts := make([]string, len(k.Items))
	for i, item := range k.Items {
		parts[i] = item.KindString()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Kind of a type list of any length: `[*]`
type StreamKind struct {
	Elem Kind
}

func (k *StreamKind) KindString() string { return "[" + k.Elem.KindString() + "]" }

// Kind of a type map (record and sum rows): `{*}`
type KeyedKind struct {
	Elem Kind
}

func (k *KeyedKind) KindString() string { return "{" + k.Elem.KindString() + "}" }

var (
	StarStream = &StreamKind{Elem: Star}
	StarKeyed  = &KeyedKind{Elem: Star}
)

// KindsEqual reports structural equality of kinds.
func KindsEqual(a, b Kind) bool {
	switch a := a.(type) {
	case starKind:
		_, ok := b.(starKind)
		return ok
	case *ArrowKind:
		b, ok := b.(*ArrowKind)
		return ok && KindsEqual(a.From, b.From) && KindsEqual(a.To, b.To)
	case *TupleKind:
		b, ok := b.(*TupleKind)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !KindsEqual(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case *StreamKind:
		b, ok := b.(*StreamKind)
		return ok && KindsEqual(a.Elem, b.Elem)
	case *KeyedKind:
		b, ok := b.(*KeyedKind)
		return ok && KindsEqual(a.Elem, b.Elem)
	}
	return false
}

// KindAccepts reports whether an argument of kind arg may be applied where kind param is expected.
// A stream kind accepts any tuple of its element kind.
func KindAccepts(param, arg Kind) bool {
	if KindsEqual(param, arg) {
		return true
	}
	if s, ok := param.(*StreamKind); ok {
		if t, ok := arg.(*TupleKind); ok {
			for _, item := range t.Items {
				if !KindsEqual(s.Elem, item) {
					return false
				}
			}
			return true
		}
	}
	return false
}

// CheckApp checks kind agreement of a type application.
func CheckApp(app *App) error {
	base, ok := app.Base.Kind().(*ArrowKind)
	if !ok {
		return errors.New("type " + TypeString(app.Base) + " of kind " + app.Base.Kind().KindString() + " cannot be applied")
	}
	arg := app.Arg.Kind()
	if !KindAccepts(base.From, arg) {
		return errors.New("type " + TypeString(app.Base) + " expects an argument of kind " + base.From.KindString() + ", found " + arg.KindString())
	}
	return nil
}

// CheckKinds checks kind agreement at every application within t.
func CheckKinds(t Type) error {
	var err error
	Walk(t, func(t Type) bool {
		if err != nil {
			return false
		}
		if app, ok := t.(*App); ok {
			err = CheckApp(app)
		}
		return err == nil
	})
	return err
}
