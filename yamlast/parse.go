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

// Package yamlast reads modules from a YAML interchange form.
//
// A document is a mapping with an optional `module` name and a `body` sequence of statements:
//
//	module: main
//	body:
//	  - import: lib          # symbols: [a, T] selects names, symbols: "*" imports everything
//	    as: l
//	  - type: Box
//	    params: [A]
//	    is: New([A])
//	  - let: one
//	    type: Int
//	    value: 1
//	  - let: add
//	    intrinsic: plus
//	  - export: [one, Box]   # or export: "*"
//	  - do: {print: [one]}   # expression statement; `do:` may be omitted
//
// Terms are scalars or single-form mappings. Plain scalars are references (`x`, `$0`), field and
// tuple addresses (`r.a`, `t.0`), symbols (`:a`), numbers (`1`, `2L`, `1.5`) or booleans; quoted
// scalars are strings. Mappings select a form by their first key:
//
//	{list: [1, 2]}  {tuple: [1, true]}  {map: [[:a, 1]]}  {record: {a: 1}}  {variant: {some: 1}}
//	{if: [[c, a]], else: b}  {fn: [x, y], returns: Int, body: [...]}  {block: [...]}
//	{index: [xs, 0]}  {addr: [t, 0]}  {call: [f, x]}  {ref: x, in: m}  {coerce: x, to: Int}
//	{symbol: a}
//
// Within flow collections a leading `:` is a YAML value indicator, so symbols there are written
// with the symbol form.
//
// Any other single-key mapping `{f: [args]}` calls the reference f. Types are written as type
// expressions (see ParseType); expressions starting with `[` or `{`, or containing `: ` or ` #`, must be quoted.
package yamlast

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/types"
)

// SyntaxError is a malformed document.
type SyntaxError struct {
	Loc diag.Loc
	Msg string
}

func (e *SyntaxError) Error() string { return e.Loc.String() + ": " + e.Msg }

// Parser reads modules. The zero Parser is ready to use.
type Parser struct{}

// LoadModule implements loader.Loader.
func (Parser) LoadModule(path, name string, r io.Reader) (*ast.Module, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Parse(name, path, src)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse reads a module. name is used when the document does not name the module; file names the
// locations of the module's nodes.
func Parse(name, file string, src []byte) (*ast.Module, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(src))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return ast.NewModule(name, nil), nil
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if file == "" {
		file = name
	}
	p := &parser{file: file}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, p.errorf(root, "expected a module mapping")
	}
	var body []ast.Stmt
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "module":
			if value.Kind != yaml.ScalarNode || value.Value == "" {
				return nil, p.errorf(value, "expected a module name")
			}
			name = value.Value
		case "body":
			stmts, err := p.stmts(value)
			if err != nil {
				return nil, err
			}
			body = stmts
		default:
			return nil, p.errorf(key, "unknown module key %q", key.Value)
		}
	}
	return ast.NewModule(name, body), nil
}

type parser struct {
	file string
}

func (p *parser) loc(n *yaml.Node) diag.Loc {
	return diag.Loc{File: p.file, Line: n.Line, Col: n.Column}
}

func (p *parser) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &SyntaxError{Loc: p.loc(n), Msg: fmt.Sprintf(format, args...)}
}

// fields returns the entries of a mapping node in order, rejecting duplicate keys.
func (p *parser) fields(n *yaml.Node) (keys []string, values map[string]*yaml.Node, err error) {
	values = make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, nil, p.errorf(k, "expected a scalar key")
		}
		if _, dup := values[k.Value]; dup {
			return nil, nil, p.errorf(k, "duplicate key %q", k.Value)
		}
		keys = append(keys, k.Value)
		values[k.Value] = n.Content[i+1]
	}
	return keys, values, nil
}

func (p *parser) names(n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "expected a list of names")
	}
	names := make([]string, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.ScalarNode || item.Value == "" {
			return nil, p.errorf(item, "expected a name")
		}
		names[i] = item.Value
	}
	return names, nil
}

func (p *parser) typ(n *yaml.Node) (types.Type, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, p.errorf(n, "expected a type expression")
	}
	return ParseType(n.Value, p.loc(n))
}

// Statements

func (p *parser) stmts(n *yaml.Node) ([]ast.Stmt, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "expected a list of statements")
	}
	stmts := make([]ast.Stmt, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := p.stmt(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *parser) stmt(n *yaml.Node) (ast.Stmt, error) {
	if n.Kind == yaml.MappingNode && len(n.Content) > 0 {
		switch n.Content[0].Value {
		case "import":
			return p.importStmt(n)
		case "export":
			return p.exportStmt(n)
		case "type":
			return p.typeDef(n)
		case "let":
			return p.let(n)
		case "do":
			if len(n.Content) != 2 {
				return nil, p.errorf(n, "unexpected keys in expression statement")
			}
			t, err := p.term(n.Content[1])
			if err != nil {
				return nil, err
			}
			return &ast.ExprStmt{Term: t}, nil
		}
	}
	t, err := p.term(n)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Term: t}, nil
}

func (p *parser) importStmt(n *yaml.Node) (ast.Stmt, error) {
	keys, f, err := p.fields(n)
	if err != nil {
		return nil, err
	}
	s := &ast.ImportStmt{Module: f["import"].Value, Loc: p.loc(n)}
	for _, k := range keys {
		v := f[k]
		switch k {
		case "import":
		case "as":
			s.Alias = v.Value
		case "symbols":
			if v.Kind == yaml.ScalarNode && v.Value == "*" {
				s.Wildcard = true
				continue
			}
			if s.Symbols, err = p.names(v); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(v, "unknown import key %q", k)
		}
	}
	return s, nil
}

func (p *parser) exportStmt(n *yaml.Node) (ast.Stmt, error) {
	if len(n.Content) != 2 {
		return nil, p.errorf(n, "unexpected keys in export")
	}
	v := n.Content[1]
	s := &ast.ExportStmt{Loc: p.loc(n)}
	if v.Kind == yaml.ScalarNode && v.Value == "*" {
		s.Mode = ast.ExportOpen
		return s, nil
	}
	symbols, err := p.names(v)
	if err != nil {
		return nil, err
	}
	s.Mode, s.Symbols = ast.ExportList, symbols
	return s, nil
}

func (p *parser) typeDef(n *yaml.Node) (ast.Stmt, error) {
	keys, f, err := p.fields(n)
	if err != nil {
		return nil, err
	}
	d := &ast.TypeDef{Name: f["type"].Value, Loc: p.loc(n)}
	for _, k := range keys {
		v := f[k]
		switch k {
		case "type":
		case "params":
			if v.Kind != yaml.SequenceNode {
				return nil, p.errorf(v, "expected a list of type parameters")
			}
			for _, item := range v.Content {
				tp := types.NewParam(item.Value, types.Star)
				tp.Loc = p.loc(item)
				d.Params = append(d.Params, tp)
			}
		case "is":
			if d.Value, err = p.typ(v); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(v, "unknown type definition key %q", k)
		}
	}
	if d.Value == nil {
		return nil, p.errorf(n, "type %s has no definition", d.Name)
	}
	return &ast.TypeDefStmt{Def: d}, nil
}

func (p *parser) let(n *yaml.Node) (ast.Stmt, error) {
	keys, f, err := p.fields(n)
	if err != nil {
		return nil, err
	}
	var declared types.Type
	var init ast.Term
	intrinsic := ""
	for _, k := range keys {
		v := f[k]
		switch k {
		case "let":
		case "type":
			if declared, err = p.typ(v); err != nil {
				return nil, err
			}
		case "value":
			if init, err = p.term(v); err != nil {
				return nil, err
			}
		case "intrinsic":
			intrinsic = v.Value
		default:
			return nil, p.errorf(v, "unknown let key %q", k)
		}
	}
	name := f["let"].Value
	if (init == nil) == (intrinsic == "") {
		return nil, p.errorf(n, "let %s needs exactly one of value or intrinsic", name)
	}
	s := ast.NewLet(name, p.loc(n), declared, init)
	s.Binding.Intrinsic = intrinsic
	return s, nil
}

// Terms

func (p *parser) terms(n *yaml.Node) ([]ast.Term, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "expected a list of terms")
	}
	ts := make([]ast.Term, len(n.Content))
	for i, item := range n.Content {
		t, err := p.term(item)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

func (p *parser) term(n *yaml.Node) (ast.Term, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return p.scalar(n)
	case yaml.SequenceNode:
		items, err := p.terms(n)
		if err != nil {
			return nil, err
		}
		return &ast.ListTerm{Items: items, Loc: p.loc(n)}, nil
	case yaml.MappingNode:
		return p.form(n)
	case yaml.AliasNode:
		return p.term(n.Alias)
	}
	return nil, p.errorf(n, "expected a term")
}

func (p *parser) scalar(n *yaml.Node) (ast.Term, error) {
	loc := p.loc(n)
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return &ast.StringLit{Value: n.Value, Loc: loc}, nil
	}
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, p.errorf(n, "invalid boolean %q", n.Value)
		}
		return &ast.BoolLit{Value: b, Loc: loc}, nil
	case "!!int":
		v, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
			return nil, p.errorf(n, "integer %s is out of range for Int; use %sL", n.Value, n.Value)
		}
		return &ast.IntLit{Value: int32(v), Loc: loc}, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, p.errorf(n, "invalid number %q", n.Value)
		}
		return &ast.DoubleLit{Value: f, Loc: loc}, nil
	case "!!null":
		return nil, p.errorf(n, "expected a term, found null")
	}
	s := n.Value
	switch {
	case strings.HasPrefix(s, ":") && len(s) > 1:
		return &ast.SymbolLit{Value: s[1:], Loc: loc}, nil
	case strings.HasSuffix(s, "L") && len(s) > 1 && isNumber(s[:len(s)-1]):
		v, err := strconv.ParseInt(s[:len(s)-1], 0, 64)
		if err != nil {
			return nil, p.errorf(n, "invalid Long %q", s)
		}
		return &ast.LongLit{Value: v, Loc: loc}, nil
	}
	return p.path(n, s)
}

func isNumber(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// path reads a reference followed by addresses: `x`, `r.a`, `t.0.b`, `$0.a`.
func (p *parser) path(n *yaml.Node, s string) (ast.Term, error) {
	segs := strings.Split(s, ".")
	loc := p.loc(n)
	for _, seg := range segs {
		if seg == "" {
			return nil, p.errorf(n, "invalid reference %q", s)
		}
	}
	ref := &ast.Ref{Name: segs[0], Loc: loc}
	if strings.HasPrefix(ref.Name, "$") {
		ref.Binding = &ast.ParamBinding{Name: ref.Name, Inline: true}
	}
	var t ast.Term = ref
	col := loc.Col + len(segs[0])
	for _, seg := range segs[1:] {
		keyLoc := loc
		keyLoc.Col = col + 1
		var key ast.Term = &ast.SymbolLit{Value: seg, Loc: keyLoc}
		if isNumber(seg) {
			i, err := strconv.ParseInt(seg, 10, 32)
			if err != nil {
				return nil, p.errorf(n, "invalid address %q", seg)
			}
			key = &ast.IntLit{Value: int32(i), Loc: keyLoc}
		}
		appLoc := loc
		appLoc.Col = col
		t = &ast.AppTerm{Flavor: ast.Address, Base: t, Args: []ast.Term{key}, Loc: appLoc}
		col += len(seg) + 1
	}
	return t, nil
}

func (p *parser) form(n *yaml.Node) (ast.Term, error) {
	keys, f, err := p.fields(n)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, p.errorf(n, "expected a term")
	}
	loc := p.loc(n)
	allow := func(extra ...string) error {
		for _, k := range keys[1:] {
			ok := false
			for _, e := range extra {
				ok = ok || k == e
			}
			if !ok {
				return p.errorf(f[k], "unexpected key %q in %s", k, keys[0])
			}
		}
		return nil
	}
	head, v := keys[0], f[keys[0]]
	switch head {
	case "list", "tuple":
		if err := allow(); err != nil {
			return nil, err
		}
		items, err := p.terms(v)
		if err != nil {
			return nil, err
		}
		if head == "list" {
			return &ast.ListTerm{Items: items, Loc: loc}, nil
		}
		return &ast.TupleTerm{Items: items, Loc: loc}, nil

	case "map":
		if err := allow(); err != nil {
			return nil, err
		}
		if v.Kind != yaml.SequenceNode {
			return nil, p.errorf(v, "expected a list of [key, value] entries")
		}
		t := &ast.MapTerm{Loc: loc}
		for _, e := range v.Content {
			kv, err := p.terms(e)
			if err != nil {
				return nil, err
			}
			if len(kv) != 2 {
				return nil, p.errorf(e, "expected a [key, value] entry")
			}
			t.Entries = append(t.Entries, ast.Entry{Key: kv[0], Value: kv[1]})
		}
		return t, nil

	case "record":
		if err := allow(); err != nil {
			return nil, err
		}
		if v.Kind != yaml.MappingNode {
			return nil, p.errorf(v, "expected a mapping of fields")
		}
		t := &ast.RecordTerm{Loc: loc}
		for i := 0; i+1 < len(v.Content); i += 2 {
			k := v.Content[i]
			value, err := p.term(v.Content[i+1])
			if err != nil {
				return nil, err
			}
			t.Entries = append(t.Entries, ast.Entry{Key: &ast.SymbolLit{Value: k.Value, Loc: p.loc(k)}, Value: value})
		}
		return t, nil

	case "variant":
		if err := allow(); err != nil {
			return nil, err
		}
		if v.Kind != yaml.MappingNode || len(v.Content) != 2 {
			return nil, p.errorf(v, "expected a single labeled value")
		}
		value, err := p.term(v.Content[1])
		if err != nil {
			return nil, err
		}
		return &ast.VariantTerm{Label: v.Content[0].Value, Value: value, Loc: loc}, nil

	case "if":
		if err := allow("else"); err != nil {
			return nil, err
		}
		if v.Kind != yaml.SequenceNode || len(v.Content) == 0 {
			return nil, p.errorf(v, "expected a list of [condition, value] cases")
		}
		t := &ast.CondTerm{Loc: loc}
		for _, c := range v.Content {
			cv, err := p.terms(c)
			if err != nil {
				return nil, err
			}
			if len(cv) != 2 {
				return nil, p.errorf(c, "expected a [condition, value] case")
			}
			t.Cases = append(t.Cases, ast.CondCase{Cond: cv[0], Value: cv[1]})
		}
		if e, ok := f["else"]; ok {
			if t.Else, err = p.term(e); err != nil {
				return nil, err
			}
		}
		return t, nil

	case "fn":
		if err := allow("returns", "body"); err != nil {
			return nil, err
		}
		params, err := p.params(v)
		if err != nil {
			return nil, err
		}
		var body []ast.Stmt
		if b, ok := f["body"]; ok {
			if body, err = p.stmts(b); err != nil {
				return nil, err
			}
		}
		s := ast.NewLambdaScope(loc, params, body)
		if r, ok := f["returns"]; ok {
			if s.Signature.Declared, err = p.typ(r); err != nil {
				return nil, err
			}
		}
		return &ast.LambdaTerm{Scope: s}, nil

	case "block":
		if err := allow("returns"); err != nil {
			return nil, err
		}
		body, err := p.stmts(v)
		if err != nil {
			return nil, err
		}
		s := ast.NewLambdaScope(loc, nil, body)
		if r, ok := f["returns"]; ok {
			if s.Signature.Declared, err = p.typ(r); err != nil {
				return nil, err
			}
		}
		return &ast.LambdaTerm{Scope: s}, nil

	case "index", "addr", "call":
		if err := allow(); err != nil {
			return nil, err
		}
		items, err := p.terms(v)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, p.errorf(v, "%s needs a base term", head)
		}
		flavor := ast.Call
		switch head {
		case "index":
			flavor = ast.Index
		case "addr":
			flavor = ast.Address
		}
		if flavor != ast.Call && len(items) != 2 {
			return nil, p.errorf(v, "%s expects [base, key]", head)
		}
		return &ast.AppTerm{Flavor: flavor, Base: items[0], Args: items[1:], Loc: loc}, nil

	case "ref":
		if err := allow("in"); err != nil {
			return nil, err
		}
		ref := &ast.Ref{Name: v.Value, Loc: loc}
		if q, ok := f["in"]; ok {
			ref.Qualifier = q.Value
		}
		return ref, nil

	case "symbol":
		if err := allow(); err != nil {
			return nil, err
		}
		if v.Kind != yaml.ScalarNode || v.Value == "" {
			return nil, p.errorf(v, "expected a symbol name")
		}
		return &ast.SymbolLit{Value: v.Value, Loc: loc}, nil

	case "coerce":
		if err := allow("to"); err != nil {
			return nil, err
		}
		t, err := p.term(v)
		if err != nil {
			return nil, err
		}
		c := &ast.CoerceTerm{Term: t, Loc: loc}
		if to, ok := f["to"]; ok {
			if c.To, err = p.typ(to); err != nil {
				return nil, err
			}
		}
		return c, nil
	}

	// {f: [args]} calls f
	if err := allow(); err != nil {
		return nil, err
	}
	base, err := p.path(n.Content[0], head)
	if err != nil {
		return nil, err
	}
	var args []ast.Term
	if v.Kind == yaml.SequenceNode {
		if args, err = p.terms(v); err != nil {
			return nil, err
		}
	} else {
		arg, err := p.term(v)
		if err != nil {
			return nil, err
		}
		args = []ast.Term{arg}
	}
	return &ast.AppTerm{Flavor: ast.Call, Base: base, Args: args, Loc: loc}, nil
}

// params reads explicit parameters: names, or single-key mappings from names to declared types.
func (p *parser) params(n *yaml.Node) ([]*ast.ParamBinding, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "expected a list of parameters")
	}
	params := make([]*ast.ParamBinding, 0, len(n.Content))
	for _, item := range n.Content {
		switch {
		case item.Kind == yaml.ScalarNode:
			params = append(params, &ast.ParamBinding{Name: item.Value, Loc: p.loc(item)})
		case item.Kind == yaml.MappingNode && len(item.Content) == 2:
			t, err := p.typ(item.Content[1])
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.ParamBinding{Name: item.Content[0].Value, Loc: p.loc(item), Declared: t})
		default:
			return nil, p.errorf(item, "expected a parameter")
		}
	}
	return params, nil
}
