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

package kestrel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wdamron/kestrel/analyze"
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/config"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/intrinsic"
	"github.com/wdamron/kestrel/loader"
	"github.com/wdamron/kestrel/yamlast"
)

var (
	// ErrImportCycle is returned when a module imports itself, directly or through other modules.
	ErrImportCycle = errors.New("import cycle")
	// ErrInvalidModule is returned when an imported module was loaded but failed analysis.
	ErrInvalidModule = errors.New("module has errors")
)

// Options configures a Session.
type Options struct {
	// SearchPaths lists the roots modules are loaded from, in priority order.
	SearchPaths []string
	// Extension of module files; loader.DefaultExtension when empty.
	Extension string
	// Parser reads module files; yamlast.Parser when nil.
	Parser loader.Loader
	// Registry supplies intrinsics; intrinsic.Default() when nil.
	Registry intrinsic.Registry
	// MaxErrors limits the errors recorded per module; 0 records every error.
	MaxErrors int
	Log       *slog.Logger
}

// FromConfig returns the session options described by a project configuration.
func FromConfig(cfg *config.Config, log *slog.Logger) Options {
	return Options{
		SearchPaths: cfg.SearchPaths(),
		Extension:   cfg.Modules.Extension,
		MaxErrors:   cfg.Diagnostics.MaxErrors,
		Log:         log,
	}
}

// Entry is a module loaded by a session, with the errors found while analyzing it.
type Entry struct {
	Module *ast.Module
	Errors *diag.Sink
	// OK reports whether the module was analyzed without errors.
	OK bool

	checking bool
}

// Session loads and analyzes modules. Each module is loaded and analyzed at most once.
//
// A Session cannot be used concurrently.
type Session struct {
	resolver  *loader.Resolver
	parser    loader.Loader
	registry  intrinsic.Registry
	maxErrors int
	log       *slog.Logger

	sources map[string]*ast.Module
	entries map[string]*Entry
	order   []*Entry
	// names of the modules being analyzed, outermost first
	stack []string
}

// Create a session.
func NewSession(opts Options) *Session {
	s := &Session{
		resolver:  &loader.Resolver{Roots: opts.SearchPaths, Extension: opts.Extension},
		parser:    opts.Parser,
		registry:  opts.Registry,
		maxErrors: opts.MaxErrors,
		log:       opts.Log,
		sources:   make(map[string]*ast.Module),
		entries:   make(map[string]*Entry),
	}
	if s.parser == nil {
		s.parser = yamlast.Parser{}
	}
	if s.registry == nil {
		s.registry = intrinsic.Default()
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Add makes a parsed module available to the session under its name. The module is analyzed
// when it is first checked or imported.
func (s *Session) Add(m *ast.Module) error {
	if _, ok := s.entries[m.Name]; ok {
		return fmt.Errorf("module %s is already loaded", m.Name)
	}
	if _, ok := s.sources[m.Name]; ok {
		return fmt.Errorf("module %s is already added", m.Name)
	}
	s.sources[m.Name] = m
	return nil
}

// Check loads and analyzes a module and the modules it imports. The returned error describes a
// failure to load the module; errors found by analysis are recorded in the entry.
func (s *Session) Check(name string) (*Entry, error) {
	return s.load(name)
}

// CheckFile parses and analyzes the module stored in a file, named after the file.
func (s *Session) CheckFile(path string) (*Entry, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if e, ok := s.entries[name]; ok {
		return e, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loader.ErrUnreadable, err)
	}
	defer f.Close()
	m, err := s.parser.LoadModule(path, name, f)
	if err != nil {
		return nil, err
	}
	s.log.Info("module loaded", "module", m.Name, "path", path)
	return s.check(m), nil
}

// Module implements analyze.ModuleSource.
func (s *Session) Module(name string) (*ast.Module, error) {
	e, err := s.load(name)
	if err != nil {
		return nil, err
	}
	if !e.OK {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModule, name)
	}
	return e.Module, nil
}

// Entries returns the analyzed modules in the order their analysis finished; imported modules
// precede the modules importing them.
func (s *Session) Entries() []*Entry { return s.order }

// Errors returns the recorded errors of every analyzed module, ordered by module and location.
func (s *Session) Errors() []*diag.Error {
	var errs []*diag.Error
	for _, e := range s.order {
		errs = append(errs, e.Errors.Sorted()...)
	}
	return errs
}

// OK reports whether every analyzed module is free of errors.
func (s *Session) OK() bool {
	for _, e := range s.order {
		if !e.OK {
			return false
		}
	}
	return true
}

func (s *Session) load(name string) (*Entry, error) {
	if e, ok := s.entries[name]; ok {
		if e.checking {
			return nil, fmt.Errorf("%w: %s", ErrImportCycle, s.cycle(name))
		}
		return e, nil
	}
	m, ok := s.sources[name]
	if ok {
		delete(s.sources, name)
	} else {
		var err error
		if m, err = s.resolver.Load(name, s.parser); err != nil {
			return nil, err
		}
		if m.Name != name {
			return nil, fmt.Errorf("%s declares module %s, expected %s", m.Path, m.Name, name)
		}
		s.log.Info("module loaded", "module", name, "path", m.Path)
	}
	return s.check(m), nil
}

func (s *Session) check(m *ast.Module) *Entry {
	e := &Entry{Module: m, Errors: diag.NewSink(s.maxErrors), checking: true}
	s.entries[m.Name] = e
	s.stack = append(s.stack, m.Name)
	e.OK = analyze.Run(m, e.Errors, analyze.Options{
		Registry: s.registry,
		Modules:  s,
		Log:      s.log,
	})
	s.stack = s.stack[:len(s.stack)-1]
	e.checking = false
	s.order = append(s.order, e)
	if !e.OK {
		s.log.Info("module has errors", "module", m.Name, "errors", e.Errors.Count())
	}
	return e
}

// cycle renders the import chain from name back to itself.
func (s *Session) cycle(name string) string {
	for i, n := range s.stack {
		if n == name {
			return strings.Join(append(append([]string(nil), s.stack[i:]...), name), " -> ")
		}
	}
	return name
}
