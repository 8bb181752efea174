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

// graphicalEntity is satisfied by all entities with the common
// graphical attributes (layer, color, linetype, lineweight).
type graphicalEntity interface {
	Entity
	graphics() *graphicsData
}

func (d *Document) layerOf(g *graphicsData) *Layer {
	e, ok := d.Tables.Layers.Get(g.Layer)
	if !ok {
		return nil
	}
	layer, _ := e.(*Layer)
	return layer
}

// ResolvedColor returns the effective ACI color of an entity, with
// by-layer values resolved through the layer table.  By-block values
// and entities without graphical attributes resolve to color 7.
func (d *Document) ResolvedColor(e Entity) int {
	g, ok := e.(graphicalEntity)
	if !ok {
		return 7
	}
	gd := g.graphics()
	switch gd.Color {
	case ColorByLayer:
		if layer := d.layerOf(gd); layer != nil {
			if layer.Color < 0 {
				return -layer.Color
			}
			return layer.Color
		}
		return 7
	case ColorByBlock:
		return 7
	default:
		return gd.Color
	}
}

// ResolvedLinetype returns the effective linetype name of an entity,
// with by-layer values resolved through the layer table.
func (d *Document) ResolvedLinetype(e Entity) string {
	g, ok := e.(graphicalEntity)
	if !ok {
		return "Continuous"
	}
	gd := g.graphics()
	if gd.Linetype == LinetypeByLayer {
		if layer := d.layerOf(gd); layer != nil {
			return layer.Linetype
		}
		return "Continuous"
	}
	if gd.Linetype == LinetypeByBlock {
		return "Continuous"
	}
	return gd.Linetype
}

// ResolvedLineweight returns the effective lineweight of an entity in
// 1/100 mm.  By-layer values are resolved through the layer table;
// unresolvable values fall back to 25 (0.25 mm, AutoCAD's default).
func (d *Document) ResolvedLineweight(e Entity) int {
	const defaultLineweight = 25

	g, ok := e.(graphicalEntity)
	if !ok {
		return defaultLineweight
	}
	gd := g.graphics()
	w := gd.Lineweight
	if w == LineweightByLayer {
		if layer := d.layerOf(gd); layer != nil {
			w = layer.Lineweight
		}
	}
	if w < 0 {
		return defaultLineweight
	}
	return w
}
