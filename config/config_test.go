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

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/loader"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, FileName), `
[modules]
paths = ["src", "/opt/kestrel"]
extension = ".kes"

[diagnostics]
max_errors = 5
color = "off"

[log]
level = "debug"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != filepath.Join(root, FileName) {
		t.Fatalf("expected the configuration from %s, found %s", root, cfg.Path)
	}
	paths := cfg.SearchPaths()
	if len(paths) != 2 || paths[0] != filepath.Join(root, "src") || paths[1] != filepath.FromSlash("/opt/kestrel") {
		t.Fatalf("unexpected search paths %v", paths)
	}
	if cfg.Modules.Extension != ".kes" || cfg.Diagnostics.MaxErrors != 5 || cfg.Diagnostics.Color != diag.ColorOff {
		t.Fatalf("unexpected settings %+v", cfg)
	}
	if level, err := cfg.LogLevel(); err != nil || level != slog.LevelDebug {
		t.Fatalf("expected the debug level, found %v (%v)", level, err)
	}
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if paths := cfg.SearchPaths(); len(paths) != 1 || paths[0] != dir {
		t.Fatalf("expected modules to be searched in %s, found %v", dir, paths)
	}
	if cfg.Modules.Extension != loader.DefaultExtension || cfg.Diagnostics.Color != diag.ColorAuto {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	// partial files keep the remaining defaults
	path := filepath.Join(dir, FileName)
	write(t, path, "[diagnostics]\nmax_errors = 3\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diagnostics.MaxErrors != 3 || cfg.Modules.Extension != loader.DefaultExtension || cfg.Log.Level != "warn" {
		t.Fatalf("unexpected settings %+v", cfg)
	}
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	for src, msg := range map[string]string{
		"[modules\n":                          "invalid TOML",
		"[modules]\nroots = [\"a\"]\n":        "unknown settings: modules.roots",
		"[modules]\npaths = []\n":             "paths is empty",
		"[modules]\nextension = \"yaml\"\n":   "must start with a dot",
		"[diagnostics]\nmax_errors = -1\n":    "must not be negative",
		"[diagnostics]\ncolor = \"always\"\n": "must be auto, on or off",
		"[log]\nlevel = \"loud\"\n":           "[log].level",
	} {
		write(t, path, src)
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), msg) {
			t.Fatalf("expected an error containing %q for %q, found %v", msg, src, err)
		}
	}
}
