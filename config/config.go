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

// Package config loads project settings from kestrel.toml.
//
//	[modules]
//	paths = ["src", "vendor"]   # search roots, relative to the file's directory
//	extension = ".yaml"
//
//	[diagnostics]
//	max_errors = 50             # 0 reports every error
//	color = "auto"              # auto, on or off
//
//	[log]
//	level = "warn"              # debug, info, warn or error
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wdamron/kestrel/diag"
	"github.com/wdamron/kestrel/loader"
)

// FileName is the name of project configuration files.
const FileName = "kestrel.toml"

// Config is a project configuration.
type Config struct {
	// Path of the file the configuration was loaded from; empty for defaults.
	Path string `toml:"-"`
	// Root is the directory relative paths are resolved against.
	Root string `toml:"-"`

	Modules     Modules     `toml:"modules"`
	Diagnostics Diagnostics `toml:"diagnostics"`
	Log         Log         `toml:"log"`
}

type Modules struct {
	Paths     []string `toml:"paths"`
	Extension string   `toml:"extension"`
}

type Diagnostics struct {
	MaxErrors int            `toml:"max_errors"`
	Color     diag.ColorMode `toml:"color"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used without a kestrel.toml: modules are searched in dir.
func Default(dir string) *Config {
	return &Config{
		Root: dir,
		Modules: Modules{
			Paths:     []string{"."},
			Extension: loader.DefaultExtension,
		},
		Diagnostics: Diagnostics{Color: diag.ColorAuto},
		Log:         Log{Level: "warn"},
	}
}

// Find walks up from dir to the nearest kestrel.toml.
func Find(dir string) (path string, found bool, err error) {
	if dir == "" {
		dir = "."
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("checking %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover loads the nearest kestrel.toml above dir, or the defaults for dir when there is none.
func Discover(dir string) (*Config, error) {
	path, found, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if !found {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		return Default(abs), nil
	}
	return Load(path)
}

// Load reads a configuration file. Settings missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))
	cfg.Path = path
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown settings: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings which the TOML decoder accepts but which are meaningless.
func (c *Config) Validate() error {
	if len(c.Modules.Paths) == 0 {
		return errors.New("[modules].paths is empty")
	}
	if ext := c.Modules.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("[modules].extension %q must start with a dot", ext)
	}
	if c.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("[diagnostics].max_errors must not be negative, found %d", c.Diagnostics.MaxErrors)
	}
	switch c.Diagnostics.Color {
	case diag.ColorAuto, diag.ColorOn, diag.ColorOff:
	default:
		return fmt.Errorf("[diagnostics].color must be auto, on or off, found %q", c.Diagnostics.Color)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// SearchPaths returns the module search roots as absolute or root-relative paths.
func (c *Config) SearchPaths() []string {
	paths := make([]string, len(c.Modules.Paths))
	for i, p := range c.Modules.Paths {
		p = filepath.FromSlash(p)
		if !filepath.IsAbs(p) && c.Root != "" {
			p = filepath.Join(c.Root, p)
		}
		paths[i] = p
	}
	return paths
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("[log].level: %w", err)
	}
	return level, nil
}
