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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdamron/kestrel"
	"github.com/wdamron/kestrel/ast"
	"github.com/wdamron/kestrel/types"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <module|file>...",
	Short: "Print the inferred types of module bindings",
	Long:  `Check each module, then print its bindings with their inferred types and its reduced statements`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("body", false, "print the reduced module body")
	dumpCmd.Flags().Bool("exports", false, "print only exported bindings")
	dumpCmd.Flags().Bool("imports", false, "also dump imported modules")
	dumpCmd.Flags().Bool("captures", false, "print the bindings captured by function literals")
}

type dumpOptions struct {
	body, exportsOnly, captures bool
}

func runDump(cmd *cobra.Command, args []string) error {
	var opts dumpOptions
	var err error
	if opts.body, err = cmd.Flags().GetBool("body"); err != nil {
		return fmt.Errorf("failed to get body flag: %w", err)
	}
	if opts.exportsOnly, err = cmd.Flags().GetBool("exports"); err != nil {
		return fmt.Errorf("failed to get exports flag: %w", err)
	}
	if opts.captures, err = cmd.Flags().GetBool("captures"); err != nil {
		return fmt.Errorf("failed to get captures flag: %w", err)
	}
	imports, err := cmd.Flags().GetBool("imports")
	if err != nil {
		return fmt.Errorf("failed to get imports flag: %w", err)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	s := kestrel.NewSession(kestrel.FromConfig(cfg, log))
	entries, err := checkAll(s, cfg, args)
	if err != nil {
		return err
	}
	if err := report(s, cfg); err != nil {
		return err
	}
	if imports {
		entries = s.Entries()
	}
	w := cmd.OutOrStdout()
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		dump(w, e, opts)
	}
	if !s.OK() {
		return errFailed
	}
	return nil
}

func dump(w io.Writer, e *kestrel.Entry, opts dumpOptions) {
	m := e.Module
	fmt.Fprintf(w, "module %s", m.Name)
	if m.Path != "" {
		fmt.Fprintf(w, " (%s)", m.Path)
	}
	fmt.Fprintln(w)
	if !e.OK {
		fmt.Fprintln(w, "  (has errors)")
	}

	typeScope := m.Scope.Types
	if opts.exportsOnly {
		typeScope = m.ExportTypes
	}
	for _, name := range sortedKeys(typeScope) {
		fmt.Fprintf(w, "  type %s\n", typeBindingString(name, typeScope[name]))
	}

	values := m.Scope.Values
	if opts.exportsOnly {
		values = m.Exports
	}
	for _, name := range sortedKeys(values) {
		fmt.Fprintf(w, "  %s\n", ast.BindingString(values[name]))
		if opts.captures {
			if names := captureNames(values[name]); len(names) > 0 {
				fmt.Fprintf(w, "    captures %s\n", strings.Join(names, ", "))
			}
		}
	}

	if opts.body {
		fmt.Fprintln(w, "  ---")
		for _, stmt := range m.Scope.Body {
			fmt.Fprintf(w, "  %s\n", ast.StmtString(stmt))
		}
	}
}

// captureNames lists the module bindings captured by a function literal bound to b.
func captureNames(b ast.ValueBinding) []string {
	let, ok := b.(*ast.LetBinding)
	if !ok {
		return nil
	}
	lambda, ok := let.Init.(*ast.LambdaTerm)
	if !ok {
		return nil
	}
	var names []string
	for _, c := range ast.SortedCaptures(lambda.Scope.ModuleCaptures) {
		names = append(names, c.BindingName())
	}
	return names
}

func typeBindingString(name string, b types.Binding) string {
	if t := b.Denotation(); t != nil {
		return name + " = " + types.TypeString(t)
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
