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

package yamlast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// ParseType parses a type expression:
//
//	Int, m.T, Box(Int), Pair(A, B), New(Int)       references and applications
//	'a                                             unowned type parameter
//	_                                              wildcard
//	[T], [K : V]                                   list, map
//	{#red, #green}, {0, 1, 2}                      enums of symbols or integers
//	(), (A,), (A, B)                               tuples
//	(a: Int, b: Bool), (a: Int | 'r), (:)          records, open records
//	<some: A, none: ()>, <a: Int | 'r>             sums
//	A -> B, (A, B) -> C, () -> C                   functions
//	forall A B. (A, B) -> A                        quantified types
//
// Names bound by forall resolve to the scheme's parameters. loc is the location of the first
// character of src.
func ParseType(src string, loc diag.Loc) (types.Type, error) {
	toks, err := tokenize(src, loc)
	if err != nil {
		return nil, err
	}
	p := &typeParser{toks: toks, end: loc}
	p.end.Col += len(src)
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return t, nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokParam
	tokPunct
	tokSymbol
	tokInt
)

type token struct {
	kind tokKind
	text string
	loc  diag.Loc
}

func tokenize(src string, loc diag.Loc) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		at := loc
		at.Col += i
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '-' && i+1 < len(rs) && rs[i+1] == '>':
			toks = append(toks, token{tokPunct, "->", at})
			i += 2
		case strings.ContainsRune("()[]<>{},:|.", r):
			toks = append(toks, token{tokPunct, string(r), at})
			i++
		case r == '\'' || isIdentStart(r):
			j := i + 1
			for j < len(rs) && isIdentPart(rs[j]) {
				j++
			}
			kind := tokIdent
			if r == '\'' {
				kind = tokParam
				if j == i+1 {
					return nil, &SyntaxError{Loc: at, Msg: "expected a parameter name after '"}
				}
			}
			toks = append(toks, token{kind, string(rs[i:j]), at})
			i = j
		case r == '#':
			j := i + 1
			for j < len(rs) && isIdentPart(rs[j]) {
				j++
			}
			if j == i+1 {
				return nil, &SyntaxError{Loc: at, Msg: "expected a symbol name after #"}
			}
			toks = append(toks, token{tokSymbol, string(rs[i+1 : j]), at})
			i = j
		case unicode.IsDigit(r):
			j := i + 1
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			toks = append(toks, token{tokInt, string(rs[i:j]), at})
			i = j
		default:
			return nil, &SyntaxError{Loc: at, Msg: fmt.Sprintf("unexpected character %q in type", r)}
		}
	}
	return toks, nil
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentPart(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

type typeParser struct {
	toks []token
	pos  int
	end  diag.Loc
	// scopes of names bound by forall, innermost last
	bound []map[string]*types.Param
	// inline parameters by name; the same name denotes the same parameter
	inline map[string]*types.Param
}

func (p *typeParser) peek() token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token{kind: tokEOF, loc: p.end}
}

func (p *typeParser) next() token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *typeParser) is(text string) bool {
	tok := p.peek()
	return tok.kind == tokPunct && tok.text == text
}

func (p *typeParser) accept(text string) bool {
	if p.is(text) {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(text string) error {
	if tok := p.next(); tok.kind != tokPunct || tok.text != text {
		if tok.kind == tokEOF {
			return p.errorf(tok, "expected %q, found end of type", text)
		}
		return p.errorf(tok, "expected %q, found %q", text, tok.text)
	}
	return nil
}

func (p *typeParser) errorf(tok token, format string, args ...interface{}) error {
	return &SyntaxError{Loc: tok.loc, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) parseType() (types.Type, error) {
	if tok := p.peek(); tok.kind == tokIdent && tok.text == "forall" {
		return p.parseForall()
	}
	return p.parseArrow()
}

func (p *typeParser) parseForall() (types.Type, error) {
	p.next()
	scope := make(map[string]*types.Param)
	var params []*types.Param
	for p.peek().kind == tokIdent {
		tok := p.next()
		if _, dup := scope[tok.text]; dup {
			return nil, p.errorf(tok, "type parameter %s is bound twice", tok.text)
		}
		tp := types.NewParam(tok.text, types.Star)
		tp.Loc = tok.loc
		scope[tok.text] = tp
		params = append(params, tp)
	}
	if len(params) == 0 {
		return nil, p.errorf(p.peek(), "expected type parameters after forall")
	}
	if err := p.expect("."); err != nil {
		return nil, err
	}
	p.bound = append(p.bound, scope)
	body, err := p.parseArrow()
	p.bound = p.bound[:len(p.bound)-1]
	if err != nil {
		return nil, err
	}
	return types.NewScheme(params, body), nil
}

func (p *typeParser) parseArrow() (types.Type, error) {
	if p.is("(") && !p.recordAhead() {
		items, trailing, err := p.parseParenItems()
		if err != nil {
			return nil, err
		}
		if p.accept("->") {
			result, err := p.parseArrow()
			if err != nil {
				return nil, err
			}
			return types.NewFn(items, result), nil
		}
		if len(items) == 1 && !trailing {
			return items[0], nil
		}
		return types.NewTup(items...), nil
	}
	t, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.accept("->") {
		result, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		return types.NewFn([]types.Type{t}, result), nil
	}
	return t, nil
}

// recordAhead reports whether the next tokens open a record: `(label:` or `(:)`.
func (p *typeParser) recordAhead() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	next := p.toks[p.pos+1]
	if next.kind == tokPunct && next.text == ":" {
		return true
	}
	if next.kind != tokIdent || p.pos+2 >= len(p.toks) {
		return false
	}
	colon := p.toks[p.pos+2]
	return colon.kind == tokPunct && colon.text == ":"
}

// parseParenItems parses a parenthesized list of types, reporting whether it ends with a comma.
func (p *typeParser) parseParenItems() (items []types.Type, trailing bool, err error) {
	p.next()
	for !p.is(")") {
		t, err := p.parseType()
		if err != nil {
			return nil, false, err
		}
		items = append(items, t)
		trailing = false
		if !p.accept(",") {
			break
		}
		trailing = true
	}
	if err := p.expect(")"); err != nil {
		return nil, false, err
	}
	return items, trailing, nil
}

func (p *typeParser) parseOperand() (types.Type, error) {
	tok := p.peek()
	switch tok.kind {
	case tokEOF:
		return nil, p.errorf(tok, "expected a type, found end of type")
	case tokParam:
		p.next()
		return p.param(tok, types.Star), nil
	case tokIdent:
		return p.parseNamed()
	}
	switch tok.text {
	case "(":
		row, err := p.parseRow("(", ")")
		if err != nil {
			return nil, err
		}
		return types.NewRec(row), nil
	case "<":
		row, err := p.parseRow("<", ">")
		if err != nil {
			return nil, err
		}
		return types.NewSum(row), nil
	case "{":
		return p.parseEnum()
	case "[":
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.accept(":") {
			value, err := p.parseType()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			return types.NewMapOf(elem, value), nil
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		return types.NewListOf(elem), nil
	}
	return nil, p.errorf(tok, "unexpected %q", tok.text)
}

// parseRow parses the labeled fields of a record or sum, with an optional rest after `|`.
func (p *typeParser) parseRow(open, close string) (*types.Map, error) {
	if err := p.expect(open); err != nil {
		return nil, err
	}
	fields := make(map[string]types.Type)
	if p.accept(":") {
		if err := p.expect(close); err != nil {
			return nil, err
		}
		return types.NewMap(fields, nil), nil
	}
	var rest types.Type
	for !p.is(close) {
		if p.accept("|") {
			tok := p.next()
			if tok.kind != tokParam {
				return nil, p.errorf(tok, "expected a row parameter after |")
			}
			rest = p.param(tok, types.StarKeyed)
			break
		}
		label := p.next()
		if label.kind != tokIdent {
			return nil, p.errorf(label, "expected a label, found %q", label.text)
		}
		if _, dup := fields[label.text]; dup {
			return nil, p.errorf(label, "duplicate label %s", label.text)
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields[label.text] = t
		if !p.accept(",") && !p.is("|") {
			break
		}
	}
	if err := p.expect(close); err != nil {
		return nil, err
	}
	return types.NewMap(fields, rest), nil
}

// parseEnum parses the values of an enum, which share one type.
func (p *typeParser) parseEnum() (types.Type, error) {
	open := p.next()
	enum := &types.Enum{}
	for !p.is("}") {
		tok := p.next()
		var v ast.Literal
		switch tok.kind {
		case tokSymbol:
			v = &ast.SymbolLit{Value: tok.text, Loc: tok.loc}
		case tokInt:
			n, err := strconv.ParseInt(tok.text, 10, 32)
			if err != nil {
				return nil, p.errorf(tok, "integer %s is out of range for Int", tok.text)
			}
			v = &ast.IntLit{Value: int32(n), Loc: tok.loc}
		default:
			return nil, p.errorf(tok, "expected a symbol or an integer, found %q", tok.text)
		}
		if enum.Base == nil {
			enum.Base = v.ValueType()
		} else if enum.Base != v.ValueType() {
			return nil, p.errorf(tok, "enum values of type %s and %s", types.TypeString(enum.Base), types.TypeString(v.ValueType()))
		}
		if enum.Contains(v.Key()) {
			return nil, p.errorf(tok, "duplicate enum value %s", v.String())
		}
		enum.Values = append(enum.Values, v)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	if len(enum.Values) == 0 {
		return nil, p.errorf(open, "enum has no values")
	}
	return enum, nil
}

func (p *typeParser) parseNamed() (types.Type, error) {
	tok := p.next()
	if tok.text == "_" {
		return &types.Wildcard{Loc: tok.loc}, nil
	}
	var base types.Type
	if bp := p.lookupBound(tok.text); bp != nil {
		base = bp
	} else {
		ref := &types.Ref{Name: tok.text, Loc: tok.loc}
		if p.accept(".") {
			name := p.next()
			if name.kind != tokIdent {
				return nil, p.errorf(name, "expected a type name after %s.", tok.text)
			}
			ref.Qualifier, ref.Name = tok.text, name.text
		}
		base = ref
	}
	if !p.accept("(") {
		return base, nil
	}
	var args []types.Type
	for !p.is(")") {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if !p.accept(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	switch len(args) {
	case 0:
		return nil, p.errorf(tok, "type application of %s has no arguments", tok.text)
	case 1:
		return &types.App{Base: base, Arg: args[0]}, nil
	}
	return &types.App{Base: base, Arg: types.NewTuple(args...)}, nil
}

func (p *typeParser) lookupBound(name string) *types.Param {
	for i := len(p.bound) - 1; i >= 0; i-- {
		if tp, ok := p.bound[i][name]; ok {
			return tp
		}
	}
	return nil
}

func (p *typeParser) param(tok token, k types.Kind) *types.Param {
	name := tok.text[1:]
	if p.inline == nil {
		p.inline = make(map[string]*types.Param)
	}
	if tp, ok := p.inline[name]; ok {
		return tp
	}
	tp := types.NewParam(name, k)
	tp.Loc = tok.loc
	p.inline[name] = tp
	return tp
}
