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

import "sort"

// Graph is a directed graph over vertices 0..n-1, stored as successor lists.
type Graph [][]int

func NewGraph(numVerts int) Graph { return Graph(make([][]int, numVerts)) }

// AddEdge adds an edge once; repeated edges are ignored.
func (g Graph) AddEdge(from, to int) {
	for _, succ := range g[from] {
		if succ == to {
			return
		}
	}
	g[from] = append(g[from], to)
}

// SCC returns the strongly connected components of g. When edges point from dependents to their
// dependencies, components are ordered so that every component follows the components it depends
// on; unrelated components keep vertex order. Vertices within a component are sorted.
func (g Graph) SCC() [][]int {
	t := tarjan{
		g:       g,
		index:   make([]int, len(g)),
		low:     make([]int, len(g)),
		onStack: make([]bool, len(g)),
	}
	for v := range g {
		if t.index[v] == 0 {
			t.visit(v)
		}
	}
	for _, c := range t.sccs {
		sort.Ints(c)
	}
	return t.sccs
}

// frame is a suspended visit of v; next is the position of the successor to visit next.
type frame struct{ v, next int }

type tarjan struct {
	g       Graph
	counter int
	// index is 0 for unvisited vertices
	index   []int
	low     []int
	onStack []bool

	stack []int
	sccs  [][]int
}

// visit runs Tarjan's algorithm from root with an explicit stack of frames. A component is emitted
// only after every component reachable from it.
func (t *tarjan) visit(root int) {
	t.enter(root)
	calls := []frame{{v: root}}
	for len(calls) > 0 {
		top := len(calls) - 1
		v := calls[top].v
		if next := calls[top].next; next < len(t.g[v]) {
			calls[top].next++
			w := t.g[v][next]
			switch {
			case t.index[w] == 0:
				t.enter(w)
				calls = append(calls, frame{v: w})
			case t.onStack[w]:
				t.low[v] = min(t.low[v], t.index[w])
			}
			continue
		}
		calls = calls[:top]
		if top > 0 {
			parent := calls[top-1].v
			t.low[parent] = min(t.low[parent], t.low[v])
		}
		if t.low[v] == t.index[v] {
			t.emit(v)
		}
	}
}

func (t *tarjan) enter(v int) {
	t.counter++
	t.index[v], t.low[v] = t.counter, t.counter
	t.stack = append(t.stack, v)
	t.onStack[v] = true
}

// emit pops the component rooted at v.
func (t *tarjan) emit(v int) {
	var c []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		c = append(c, w)
		if w == v {
			break
		}
	}
	t.sccs = append(t.sccs, c)
}
