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

// kestrel provides the semantic core of a compiler front end for a small functional language:
// module loading and import resolution, scoping, capture tracking, forward-reference checks,
// Hindley-Milner type inference with row-polymorphic records and sums, nominal types, and
// constant folding.
//
// A Session loads modules by dotted name from a list of search roots, parses them, and runs the
// analysis pipeline (package analyze) over each module once. Imported modules are loaded and
// analyzed on demand, before the modules which import them.
//
//
// Supported Features:
//
//   * Let-polymorphism with dependency-ordered, mutually recursive binding groups
//   * Row-polymorphic records and variants
//   * Transparent (parameterized) type aliases and nominal types with constructors/destructors
//   * Declared types, partially declared types (wildcards), and inline type parameters
//   * Function literals with explicit or inline parameters (`$0`, `$$1`)
//   * Capture tracking across nested function literals
//   * Rejection of applications which may observe uninitialized module bindings
//   * Folding of intrinsic operations on constants
//
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
package kestrel
