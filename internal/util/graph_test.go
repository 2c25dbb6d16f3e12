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

package util

import (
	"reflect"
	"testing"
)

func TestSCCDependencyOrder(t *testing.T) {
	// 0 -> 2, 1 <-> 3, 3 -> 2
	g := NewGraph(5)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(3, 1)
	g.AddEdge(3, 2)
	g.AddEdge(3, 2)
	if len(g[3]) != 2 {
		t.Fatalf("expected duplicate edge to be ignored")
	}
	sccs := g.SCC()
	expected := [][]int{{2}, {0}, {1, 3}, {4}}
	if !reflect.DeepEqual(sccs, expected) {
		t.Fatalf("expected %v, found %v", expected, sccs)
	}
}

func TestSCCWithoutEdgesKeepsOrder(t *testing.T) {
	sccs := NewGraph(3).SCC()
	expected := [][]int{{0}, {1}, {2}}
	if !reflect.DeepEqual(sccs, expected) {
		t.Fatalf("expected %v, found %v", expected, sccs)
	}
}

func TestSCCNestedCycles(t *testing.T) {
	// 0 -> 1 -> 2 -> 0, 2 -> 3 -> 4 -> 3
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	g.AddEdge(2, 3)
	g.AddEdge(3, 4)
	g.AddEdge(4, 3)
	sccs := g.SCC()
	expected := [][]int{{3, 4}, {0, 1, 2}}
	if !reflect.DeepEqual(sccs, expected) {
		t.Fatalf("expected %v, found %v", expected, sccs)
	}
}

func TestSCCLongChain(t *testing.T) {
	const n = 200000
	g := NewGraph(n)
	for v := 0; v+1 < n; v++ {
		g.AddEdge(v, v+1)
	}
	sccs := g.SCC()
	if len(sccs) != n || sccs[0][0] != n-1 || sccs[n-1][0] != 0 {
		t.Fatalf("expected %d singleton components in dependency order", n)
	}
}
