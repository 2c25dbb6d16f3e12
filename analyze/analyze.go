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

// analyze provides the semantic analysis pipeline for parsed modules: import and export
// resolution, binding collection, reference resolution with capture tracking, forward-reference
// checks, type inference with deferred generalization, and constant folding.
//
// Stages run in a fixed order over one module. Each stage records user-facing errors in a
// diag.Sink and continues, so one run reports as many errors as possible; a stage which records
// any error stops the pipeline before later stages run. Violated implementation invariants panic
// with a *diag.InternalError.
//
// Links:
//
// * Hindley-Milner type system (Wikipedia): https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// * Extensible Records with Scoped Labels (Leijen, 2005): https://www.microsoft.com/en-us/research/publication/extensible-records-with-scoped-labels/
//
// * Relaxed dependency analysis (Haskell Prime): https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
package analyze

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/intrinsic"
)

// ModuleSource supplies imported modules by dotted name. Implementations load each module at
// most once and return only modules which were analyzed without errors.
type ModuleSource interface {
	Module(name string) (*ast.Module, error)
}

// Options configures a pipeline run.
type Options struct {
	// Registry supplies intrinsic values. The default registry is used when nil.
	Registry intrinsic.Registry
	// Modules supplies imported modules. Every import fails when nil.
	Modules ModuleSource
	Log     *slog.Logger
}

func (o *Options) registry() intrinsic.Registry {
	if o.Registry == nil {
		o.Registry = intrinsic.Default()
	}
	return o.Registry
}

func (o *Options) logger() *slog.Logger {
	if o.Log == nil {
		o.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Log
}

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	Run  func(m *ast.Module, sink *diag.Sink, opts *Options)
}

// Stages lists the pipeline in execution order.
var Stages = []Stage{
	{"imports", func(m *ast.Module, sink *diag.Sink, opts *Options) {
		ResolveImports(m, sink, opts.registry(), opts.Modules)
	}},
	{"bindings", func(m *ast.Module, sink *diag.Sink, opts *Options) {
		CollectBindings(m, sink, opts.registry())
	}},
	{"exports", func(m *ast.Module, sink *diag.Sink, _ *Options) { ResolveExports(m, sink) }},
	{"refs", func(m *ast.Module, sink *diag.Sink, _ *Options) { ResolveRefs(m, sink) }},
	{"refcheck", func(m *ast.Module, sink *diag.Sink, _ *Options) { CheckRefs(m, sink) }},
	{"typecheck", func(m *ast.Module, sink *diag.Sink, _ *Options) { CheckTypes(m, sink) }},
	{"reduce", func(m *ast.Module, sink *diag.Sink, opts *Options) { Reduce(m, opts.registry()) }},
}

// Run runs every stage over m until a stage records an error. It reports whether all stages succeeded.
func Run(m *ast.Module, sink *diag.Sink, opts Options) bool {
	log := opts.logger().With("module", m.Name)
	for _, stage := range Stages {
		start := time.Now()
		cp := sink.Checkpoint()
		stage.Run(m, sink, &opts)
		ok := sink.OK(cp)
		log.LogAttrs(context.Background(), slog.LevelDebug, "stage finished",
			slog.String("stage", stage.Name),
			slog.Bool("ok", ok),
			slog.Int("errors", sink.Count()-cp),
			slog.Duration("elapsed", time.Since(start)))
		if !ok {
			return false
		}
	}
	return true
}
