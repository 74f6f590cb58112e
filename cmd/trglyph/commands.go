// seehuhn.de/go/trglyph - geometry and codec for TypeRig glyph files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/unicode/runenames"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/trglyph/glyph"
	"seehuhn.de/go/trglyph/internal/float"
	"seehuhn.de/go/trglyph/outline"
	"seehuhn.de/go/trglyph/sfntimport"
	"seehuhn.de/go/trglyph/trxml"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// runFmt prints the canonical form of every file, or rewrites the files
// in place if -w is given.
func runFmt(out io.Writer, args []string) error {
	fs := newFlagSet("fmt")
	write := fs.Bool("w", false, "write result to the source file")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return errUsage
	}

	for _, fname := range fs.Args() {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		res, err := trxml.Format(data)
		if err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
		if !*write {
			if _, err := out.Write(res); err != nil {
				return err
			}
			continue
		}
		if string(res) == string(data) {
			continue
		}
		info, err := os.Stat(fname)
		if err != nil {
			return err
		}
		if err := os.WriteFile(fname, res, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// runCheck parses every file and builds the outlines of all layers.
func runCheck(out io.Writer, args []string) error {
	fs := newFlagSet("check")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return errUsage
	}

	failed := 0
	for _, fname := range fs.Args() {
		problems := checkFile(fname)
		for _, p := range problems {
			fmt.Fprintf(out, "%s: %v\n", fname, p)
		}
		if len(problems) > 0 {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files have errors", failed, fs.NArg())
	}
	return nil
}

func checkFile(fname string) []error {
	fd, err := os.Open(fname)
	if err != nil {
		return []error{err}
	}
	defer fd.Close()

	g, lines, err := trxml.ParseLines(fd)
	if err != nil {
		return []error{err}
	}

	var res []error
	for li, l := range g.Layers {
		_, err := outline.Layer(l, outline.ShapeSpace)
		if err == nil {
			continue
		}
		for _, e := range unjoin(err) {
			var ce *outline.ContourError
			if errors.As(e, &ce) {
				id := glyph.NodeID{Contour: ce.Contour}
				if line, ok := lines.Line(li, id); ok {
					e = fmt.Errorf("line %d: layer %q: %w", line, l.Name, e)
				} else {
					e = fmt.Errorf("layer %q: %w", l.Name, e)
				}
			}
			res = append(res, e)
		}
	}
	return res
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// runInfo prints a summary of a glyph file.
func runInfo(out io.Writer, args []string) error {
	fs := newFlagSet("info")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	fd, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer fd.Close()
	g, err := trxml.Parse(fd)
	if err != nil {
		return err
	}

	w := &lineWriter{w: out, width: termWidth(out)}
	w.printf("glyph %q", g.Name)
	for _, r := range g.Runes() {
		w.printf("  %U %c %s", r, printable(r), runenames.Name(r))
	}
	for _, l := range g.Layers {
		on, off := l.NodeCount()
		kind := "layer"
		if l.IsMask() {
			kind = "mask"
		}
		w.printf("%s %q: width %s, %d contours, %d on / %d off",
			kind, l.Name, float.Format(l.Width), l.NumContours(), on, off)
		if bbox, ok := l.OutlineBounds(); ok {
			w.printf("  bbox [%s %s %s %s]",
				float.Format(bbox.LLx), float.Format(bbox.LLy),
				float.Format(bbox.URx), float.Format(bbox.URy))
		}
		for _, a := range l.Anchors {
			w.printf("  anchor %q (%s, %s)", a.Name, float.Format(a.X), float.Format(a.Y))
		}
	}
	return w.err
}

func printable(r rune) rune {
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return '.'
	}
	return r
}

// runImport converts a glyph from a font file and prints the XML.
func runImport(out io.Writer, args []string) error {
	fs := newFlagSet("import")
	fontName := fs.String("font", "", "font file")
	key := fs.String("glyph", "", "glyph name or code point")
	layer := fs.String("layer", "", "layer name")
	upem := fs.Float64("upem", 0, "units per em of the result")
	if err := fs.Parse(args); err != nil || *fontName == "" || *key == "" || fs.NArg() != 0 {
		return errUsage
	}

	data, err := os.ReadFile(*fontName)
	if err != nil {
		return err
	}
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", *fontName, err)
	}
	gid, rr, err := sfntimport.Lookup(f, *key)
	if err != nil {
		return err
	}
	g, err := sfntimport.Convert(f, gid, rr, &sfntimport.Options{
		Layer:      *layer,
		UnitsPerEm: *upem,
	})
	if err != nil {
		return err
	}
	return trxml.Write(out, g)
}

// lineWriter prints lines, truncated to the terminal width.
type lineWriter struct {
	w     io.Writer
	width int
	err   error
}

func (w *lineWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if w.width > 1 {
		if rr := []rune(line); len(rr) > w.width {
			line = string(rr[:w.width-1]) + "…"
		}
	}
	_, w.err = io.WriteString(w.w, strings.TrimRight(line, " ")+"\n")
}

// termWidth returns the width of the terminal connected to w, or 0 if w
// is not a terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
