// seehuhn.de/go/dxf - a library for reading and writing DXF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Dxfrecover loads a damaged DXF file in lenient mode, reports every
// repair, and writes the repaired drawing to a new file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"seehuhn.de/go/dxf"
)

func main() {
	output := flag.String("o", "", "output file (default: print the report only)")
	verStr := flag.String("v", "", "output DXF version (default: keep the input version)")
	quiet := flag.Bool("q", false, "only log errors")
	flag.Parse()

	log := newLogger(*quiet)

	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [options] input.dxf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	input := flag.Arg(0)

	doc, report, err := dxf.RecoverFile(input)
	if report == nil {
		report = &dxf.Report{}
	}
	for _, r := range report.Repairs {
		ev := log.Warn().Str("kind", r.Kind.String())
		if r.Line > 0 {
			ev = ev.Int("line", r.Line)
		}
		ev.Msg(r.Message)
	}
	if err != nil {
		log.Error().Err(err).Str("file", input).Msg("file is beyond repair")
		os.Exit(1)
	}
	if report.Clean() {
		log.Info().Str("file", input).Msg("no repairs needed")
	} else {
		log.Info().Str("file", input).
			Int("repairs", len(report.Repairs)).
			Msg("recovery finished")
	}

	if *output == "" {
		return
	}

	version := doc.Version
	if *verStr != "" {
		version, err = dxf.ParseVersion(*verStr)
		if err != nil {
			log.Error().Err(err).Msg("invalid output version")
			os.Exit(1)
		}
	}
	if err := doc.SaveAs(*output, version); err != nil {
		log.Error().Err(err).Str("file", *output).Msg("cannot write output")
		os.Exit(1)
	}
	log.Info().Str("file", *output).Stringer("version", version).Msg("repaired file written")
}

// newLogger builds a zerolog logger, using the human readable console
// format when stderr is a terminal.
func newLogger(quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.ErrorLevel
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		w := zerolog.ConsoleWriter{Out: os.Stderr}
		return zerolog.New(w).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
