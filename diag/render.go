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

package diag

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects colored rendering.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// Enabled resolves the mode for the given output file.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func palette() (loc, label, code *color.Color) {
	loc, label, code = color.New(color.Bold), color.New(color.FgRed, color.Bold), color.New(color.FgYellow)
	// forced on: colored is decided by the caller, not by the stdout check in fatih/color
	loc.EnableColor()
	label.EnableColor()
	code.EnableColor()
	return
}

// Render writes one line per error: `loc: error[code]: message`.
func Render(w io.Writer, errs []*Error, colored bool) error {
	var sb strings.Builder
	var locColor, errColor, codeColor *color.Color
	if colored {
		locColor, errColor, codeColor = palette()
	}
	for _, e := range errs {
		loc, label, code := e.Loc.String(), "error", "["+e.Code.String()+"]"
		if colored {
			loc, label, code = locColor.Sprint(loc), errColor.Sprint(label), codeColor.Sprint(code)
		}
		sb.WriteString(loc)
		sb.WriteString(": ")
		sb.WriteString(label)
		sb.WriteString(code)
		sb.WriteString(": ")
		sb.WriteString(e.Message())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
