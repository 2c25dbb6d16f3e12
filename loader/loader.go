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

// Package loader locates module source files and hands them to a parser.
//
// A module named `a.b.c` is stored at `a/b/c` plus the source extension, relative to one of the
// search roots. Roots are probed in order; the first regular file found wins.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wdamron/kestrel/ast"
)

// The default extension of module source files.
const DefaultExtension = ".yaml"

var (
	// ErrNotFound is returned when no search root contains a module.
	ErrNotFound = errors.New("module not found")
	// ErrUnreadable is returned when a module's file exists but cannot be read.
	ErrUnreadable = errors.New("module is unreadable")
)

// Loader parses the source of a module. Path is the file the source was read from.
type Loader interface {
	LoadModule(path, name string, r io.Reader) (*ast.Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path, name string, r io.Reader) (*ast.Module, error)

func (f LoaderFunc) LoadModule(path, name string, r io.Reader) (*ast.Module, error) {
	return f(path, name, r)
}

// Resolver maps module names to files within a list of search roots.
type Resolver struct {
	Roots []string
	// Extension of source files, including the leading dot. DefaultExtension when empty.
	Extension string
}

func (r *Resolver) extension() string {
	if r.Extension == "" {
		return DefaultExtension
	}
	return r.Extension
}

// PathFragment returns the path of a module relative to a search root: `a.b.c` -> `a/b/c.ext`.
func PathFragment(name, ext string) string {
	return filepath.Join(strings.Split(name, ".")...) + ext
}

// ValidName reports whether name is a dotted module name with non-empty segments and no path
// separators.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" || strings.ContainsAny(seg, `/\`) {
			return false
		}
	}
	return true
}

// Find returns the path of the first file within the search roots which stores the module.
func (r *Resolver) Find(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: invalid module name %q", ErrNotFound, name)
	}
	frag := PathFragment(name, r.extension())
	for _, root := range r.Roots {
		path := filepath.Join(root, frag)
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
		case !info.Mode().IsRegular():
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s (searched %s)", ErrNotFound, name, strings.Join(r.Roots, ", "))
}

// Open finds a module and opens its file. The caller closes the returned file.
func (r *Resolver) Open(name string) (path string, f io.ReadCloser, err error) {
	path, err = r.Find(name)
	if err != nil {
		return "", nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return path, file, nil
}

// Load finds a module, opens its file and parses it.
func (r *Resolver) Load(name string, l Loader) (*ast.Module, error) {
	path, f, err := r.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := l.LoadModule(path, name, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s from %s: %w", name, path, err)
	}
	if m.Path == "" {
		m.Path = path
	}
	return m, nil
}
