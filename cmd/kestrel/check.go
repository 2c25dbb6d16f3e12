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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wdamron/kestrel"
	"github.com/wdamron/kestrel/config"
	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/loader"
)

// errFailed is returned after errors were already reported.
var errFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check <module|file>...",
	Short: "Check modules and report errors",
	Long:  `Load each module and its imports, then report binding, type and module errors`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	s := kestrel.NewSession(kestrel.FromConfig(cfg, log))
	if _, err := checkAll(s, cfg, args); err != nil {
		return err
	}
	if err := report(s, cfg); err != nil {
		return err
	}
	if !s.OK() {
		return errFailed
	}
	log.Debug("modules checked", "count", len(s.Entries()))
	return nil
}

// checkAll checks each argument: a path to a module file, or a dotted module name.
func checkAll(s *kestrel.Session, cfg *config.Config, args []string) ([]*kestrel.Entry, error) {
	entries := make([]*kestrel.Entry, 0, len(args))
	for _, arg := range args {
		var e *kestrel.Entry
		var err error
		if isFile(arg, cfg.Modules.Extension) {
			e, err = s.CheckFile(arg)
		} else {
			e, err = s.Check(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func isFile(arg, ext string) bool {
	if ext == "" {
		ext = loader.DefaultExtension
	}
	return strings.ContainsRune(arg, filepath.Separator) || strings.HasSuffix(arg, ext)
}

// report renders every recorded error to stderr.
func report(s *kestrel.Session, cfg *config.Config) error {
	errs := s.Errors()
	if len(errs) == 0 {
		return nil
	}
	if err := diag.Render(os.Stderr, errs, cfg.Diagnostics.Color.Enabled(os.Stderr)); err != nil {
		return err
	}
	n := 0
	for _, e := range s.Entries() {
		if !e.OK {
			n++
		}
	}
	fmt.Fprintf(os.Stderr, "%d error(s) in %d module(s)\n", len(errs), n)
	return nil
}
