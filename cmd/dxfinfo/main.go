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

// Dxfinfo prints a summary of a DXF file: version, extents, tables,
// blocks and entity counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"seehuhn.de/go/dxf"
)

func main() {
	entities := flag.Bool("e", false, "list the entity types with counts")
	layers := flag.Bool("l", false, "list the layers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Printf("Usage: %s [options] input.dxf\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	doc, err := dxf.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	fmt.Printf("version:  %s\n", doc.Version)
	extMin, extMax := doc.Header.ExtMin(), doc.Header.ExtMax()
	fmt.Printf("extents:  (%g, %g) - (%g, %g)\n",
		extMin.X, extMin.Y, extMax.X, extMax.Y)
	fmt.Printf("layers:   %d\n", doc.Tables.Layers.Len())
	fmt.Printf("blocks:   %d\n", doc.Blocks.Len())
	fmt.Printf("handles:  %d\n", doc.NumEntities())
	for _, l := range doc.Layouts() {
		fmt.Printf("layout %q: %d entities\n", l.Name(), l.Len())
	}

	if *layers {
		fmt.Println()
		for _, e := range doc.Tables.Layers.All() {
			layer := e.(*dxf.Layer)
			state := "on"
			if !layer.On() {
				state = "off"
			}
			fmt.Printf("layer %q: color %d, linetype %q, %s\n",
				layer.Name(), layer.Color, layer.Linetype, state)
		}
	}

	if *entities {
		counts := make(map[string]int)
		for _, l := range doc.Layouts() {
			for _, e := range l.Entities() {
				counts[e.DXFType()]++
			}
		}
		types := make([]string, 0, len(counts))
		for name := range counts {
			types = append(types, name)
		}
		sort.Strings(types)
		fmt.Println()
		for _, name := range types {
			fmt.Printf("%-12s %d\n", name, counts[name])
		}
	}
}
