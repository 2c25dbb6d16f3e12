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

package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// Code identifies a class of diagnostic.
type Code uint16

const (
	UnknownCode Code = 0

	// Binding errors
	BindRedefined       Code = 1001
	BindTypeRedefined   Code = 1002
	BindUnresolved      Code = 1003
	BindTypeUnresolved  Code = 1004
	BindSelfReference   Code = 1005
	BindForwardRef      Code = 1006
	BindForwardCapture  Code = 1007
	BindInlineExplicit  Code = 1008
	BindInlineNoLambda  Code = 1009
	BindUnreached       Code = 1010
	BindNotExported     Code = 1011
	BindUnknownModule   Code = 1012
	BindQualifiedLookup Code = 1013

	// Type errors
	TypeMismatch        Code = 2001
	TypeKindMismatch    Code = 2002
	TypeRecursive       Code = 2003
	TypeDeclared        Code = 2004
	TypeBadAddress      Code = 2005
	TypeAddressRange    Code = 2006
	TypeNonConstantKey  Code = 2007
	TypeNoField         Code = 2008
	TypeUnitParams      Code = 2009
	TypeArity           Code = 2010
	TypeNotAbstraction  Code = 2011
	TypeDuplicateKey    Code = 2012
	TypeNotApplicable   Code = 2013
	TypeHigherRank      Code = 2014
	TypeKeyDomain       Code = 2015

	// Module errors
	ModImportMissing    Code = 3001
	ModImportUnreadable Code = 3002
	ModImportFailed     Code = 3003
	ModImportLate       Code = 3004
	ModExportDuplicate  Code = 3005
	ModExportUnknown    Code = 3006
)

var codeNames = map[Code]string{
	BindRedefined:       "redefined",
	BindTypeRedefined:   "type-redefined",
	BindUnresolved:      "unresolved",
	BindTypeUnresolved:  "type-unresolved",
	BindSelfReference:   "self-reference",
	BindForwardRef:      "forward-reference",
	BindForwardCapture:  "forward-capture",
	BindInlineExplicit:  "inline-param-explicit",
	BindInlineNoLambda:  "inline-param-scope",
	BindUnreached:       "unreached",
	BindNotExported:     "not-exported",
	BindUnknownModule:   "unknown-module",
	BindQualifiedLookup: "qualified-lookup",
	TypeMismatch:        "type-mismatch",
	TypeKindMismatch:    "kind-mismatch",
	TypeRecursive:       "recursive-type",
	TypeDeclared:        "declared-type",
	TypeBadAddress:      "bad-address",
	TypeAddressRange:    "address-range",
	TypeNonConstantKey:  "non-constant-key",
	TypeNoField:         "no-field",
	TypeUnitParams:      "unit-params",
	TypeArity:           "arity",
	TypeNotAbstraction:  "not-abstraction",
	TypeDuplicateKey:    "duplicate-key",
	TypeNotApplicable:   "not-applicable",
	TypeHigherRank:      "higher-rank",
	TypeKeyDomain:       "key-domain",
	ModImportMissing:    "import-missing",
	ModImportUnreadable: "import-unreadable",
	ModImportFailed:     "import-failed",
	ModImportLate:       "import-late",
	ModExportDuplicate:  "export-duplicate",
	ModExportUnknown:    "export-unknown",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "E" + strconv.Itoa(int(c))
}

// Category of a code: "binding", "type", or "module".
func (c Code) Category() string {
	switch {
	case c >= 1000 && c < 2000:
		return "binding"
	case c >= 2000 && c < 3000:
		return "type"
	case c >= 3000 && c < 4000:
		return "module"
	}
	return "unknown"
}

// Error is a user-facing diagnostic. Template contains positional placeholders `{0}`, `{1}`, ...
// which are replaced by the formatted Args.
type Error struct {
	Loc      Loc
	Code     Code
	Template string
	Args     []interface{}
}

// Message renders the template with its arguments.
func (e *Error) Message() string { return Expand(e.Template, e.Args...) }

func (e *Error) Error() string { return e.Loc.String() + ": " + e.Message() }

// Expand replaces positional placeholders in template with args.
func Expand(template string, args ...interface{}) string {
	if len(args) == 0 || strings.IndexByte(template, '{') < 0 {
		return template
	}
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' {
			sb.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			sb.WriteString(template[i:])
			break
		}
		n, err := strconv.Atoi(template[i+1 : i+end])
		if err != nil || n < 0 || n >= len(args) {
			sb.WriteString(template[i : i+end+1])
		} else {
			sb.WriteString(formatArg(args[n]))
		}
		i += end
	}
	return sb.String()
}

func formatArg(arg interface{}) string {
	switch a := arg.(type) {
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	case error:
		return a.Error()
	}
	return fmt.Sprint(arg)
}
