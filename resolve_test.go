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

package dxf

import "testing"

func TestResolvedAttributes(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	walls := NewLayer("Walls")
	walls.Color = 1
	walls.Linetype = "Dashed2"
	walls.Lineweight = 50
	if err := doc.Tables.Layers.Add(walls); err != nil {
		t.Fatal(err)
	}
	if err := doc.Tables.Linetypes.Add(NewLinetype("Dashed2", "", 0.5, -0.25)); err != nil {
		t.Fatal(err)
	}

	line := NewLine(Point{}, Point{X: 1})
	line.Layer = "Walls"
	if err := doc.Modelspace().Append(line); err != nil {
		t.Fatal(err)
	}

	// by-layer values resolve through the layer
	if got := doc.ResolvedColor(line); got != 1 {
		t.Errorf("color %d, want 1", got)
	}
	if got := doc.ResolvedLinetype(line); got != "Dashed2" {
		t.Errorf("linetype %q, want \"Dashed2\"", got)
	}
	if got := doc.ResolvedLineweight(line); got != 50 {
		t.Errorf("lineweight %d, want 50", got)
	}

	// by-block values fall back to the fixed defaults
	line.Color = ColorByBlock
	line.Linetype = LinetypeByBlock
	if got := doc.ResolvedColor(line); got != 7 {
		t.Errorf("by-block color %d, want 7", got)
	}
	if got := doc.ResolvedLinetype(line); got != "Continuous" {
		t.Errorf("by-block linetype %q, want \"Continuous\"", got)
	}

	// explicit values win
	line.Color = 3
	line.Linetype = "Continuous"
	line.Lineweight = 18
	if got := doc.ResolvedColor(line); got != 3 {
		t.Errorf("explicit color %d, want 3", got)
	}
	if got := doc.ResolvedLineweight(line); got != 18 {
		t.Errorf("explicit lineweight %d, want 18", got)
	}

	// a layer which is off stores a negative color
	walls.Color = -1
	line.Color = ColorByLayer
	if got := doc.ResolvedColor(line); got != 1 {
		t.Errorf("color of off layer %d, want 1", got)
	}
}
