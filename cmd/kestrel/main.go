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

// Command kestrel checks modules and prints their inferred types.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wdamron/kestrel/config"
	"github.com/wdamron/kestrel/diag"
)

var rootCmd = &cobra.Command{
	Use:           "kestrel",
	Short:         "Semantic checker for kestrel modules",
	Long:          `kestrel resolves imports and references, infers types, and folds constants in kestrel modules`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: discovered from the working directory)")
	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-errors", -1, "maximum number of errors recorded per module (0=unlimited)")
	rootCmd.PersistentFlags().StringSliceP("path", "I", nil, "additional module search path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	if err := rootCmd.Execute(); err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, "kestrel:", err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and applies command-line overrides.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	color, err := flags.GetString("color")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if color != "" {
		cfg.Diagnostics.Color = diag.ColorMode(color)
	}
	maxErrors, err := flags.GetInt("max-errors")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get max-errors flag: %w", err)
	}
	if maxErrors >= 0 {
		cfg.Diagnostics.MaxErrors = maxErrors
	}
	paths, err := flags.GetStringSlice("path")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get path flag: %w", err)
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, err
		}
		cfg.Modules.Paths = append(cfg.Modules.Paths, abs)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.Debug("configuration loaded", "path", cfg.Path, "root", cfg.Root)
	return cfg, log, nil
}
