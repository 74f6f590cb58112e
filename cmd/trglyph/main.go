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


// Trglyph formats, checks and inspects TypeRig glyph files, and converts
// font glyphs into that format.
//
// Usage:
//
//	trglyph [-v] fmt [-w] file...
//	trglyph [-v] check file...
//	trglyph [-v] info file
//	trglyph [-v] import -font f.ttf -glyph name|U+XXXX [-layer name] [-upem n]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/trglyph"
)

var errUsage = errors.New("usage error")

type command struct {
	name  string
	usage string
	run   func(out io.Writer, args []string) error
}

var commands = []command{
	{"fmt", "[-w] file...", runFmt},
	{"check", "file...", runCheck},
	{"info", "file", runInfo},
	{"import", "-font f.ttf -glyph name|U+XXXX [-layer name] [-upem n]", runImport},
}

func main() {
	verbose := flag.Bool("v", false, "print debug messages")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		trglyph.SetLogger(slog.New(h))
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(os.Stdout, flag.Args()[1:])
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: %s %s %s\n", os.Args[0], cmd.name, cmd.usage)
			os.Exit(2)
		} else if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [-v] command [arguments]\n\nCommands:\n", os.Args[0])
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %s %s\n", cmd.name, cmd.usage)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}
