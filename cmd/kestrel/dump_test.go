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

package main

import (
	"bytes"
	"testing"

	"github.com/wdamron/kestrel"
	. "github.com/wdamron/kestrel/construct"
)

func TestDump(t *testing.T) {
	s := kestrel.NewSession(kestrel.Options{})
	m := Module("m",
		TypeDef("T", nil, TNew(TRef("Int"))),
		Let("one", Call(Ref("plus"), Int(0), Int(1))),
		Let("t", Call(Ref("T"), Ref("one"))),
		Export("t", "T"),
	)
	if err := s.Add(m); err != nil {
		t.Fatal(err)
	}
	e, err := s.Check("m")
	if err != nil {
		t.Fatal(err)
	}
	if !e.OK {
		t.Fatalf("expected m to check, found %v", s.Errors())
	}

	var buf bytes.Buffer
	dump(&buf, e, dumpOptions{body: true})
	expected := "module m\n" +
		"  type T = T\n" +
		"  T: Int -> T\n" +
		"  _T: T -> Int\n" +
		"  one: Int\n" +
		"  t: T\n" +
		"  ---\n" +
		"  let one = 1\n" +
		"  let t = T(1)\n" +
		"  export (t, T)\n"
	if buf.String() != expected {
		t.Fatalf("expected:\n%s\nfound:\n%s", expected, buf.String())
	}

	buf.Reset()
	dump(&buf, e, dumpOptions{exportsOnly: true})
	expected = "module m\n" +
		"  type T = T\n" +
		"  T: Int -> T\n" +
		"  t: T\n"
	if buf.String() != expected {
		t.Fatalf("expected:\n%s\nfound:\n%s", expected, buf.String())
	}
}

func TestDumpCaptures(t *testing.T) {
	s := kestrel.NewSession(kestrel.Options{})
	m := Module("m",
		Let("one", Int(1)),
		Let("two", Int(2)),
		Let("f", Block(Expr(Call(Ref("plus"), Ref("two"), Ref("one"))))),
	)
	if err := s.Add(m); err != nil {
		t.Fatal(err)
	}
	e, err := s.Check("m")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	dump(&buf, e, dumpOptions{captures: true})
	expected := "module m\n" +
		"  f: () -> Int\n" +
		"    captures one, two\n" +
		"  one: Int\n" +
		"  two: Int\n"
	if buf.String() != expected {
		t.Fatalf("expected:\n%s\nfound:\n%s", expected, buf.String())
	}
}

func TestIsFile(t *testing.T) {
	for arg, expected := range map[string]bool{
		"main":         false,
		"std.lib":      false,
		"main.yaml":    true,
		"src/main.kes": true,
	} {
		if isFile(arg, "") != expected {
			t.Fatalf("expected isFile(%q) = %v", arg, expected)
		}
	}
}
