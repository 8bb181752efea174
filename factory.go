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

// entityTypes maps DXF type names to constructors.  Types not listed
// here are loaded as [Unknown].
var entityTypes = map[string]func() Entity{
	"LINE":       func() Entity { return &Line{} },
	"POINT":      func() Entity { return &PointEntity{} },
	"CIRCLE":     func() Entity { return &Circle{} },
	"ARC":        func() Entity { return &Arc{} },
	"SOLID":      func() Entity { return &Solid{} },
	"TRACE":      func() Entity { return &Solid{trace: true} },
	"TEXT":       func() Entity { return &Text{} },
	"MTEXT":      func() Entity { return &MText{} },
	"LWPOLYLINE": func() Entity { return &LWPolyline{} },
	"POLYLINE":   func() Entity { return &Polyline{} },
	"VERTEX":     func() Entity { return &Vertex{} },
	"SEQEND":     func() Entity { return &SeqEnd{} },
	"INSERT":     func() Entity { return &Insert{} },
	"ATTRIB":     func() Entity { return &Attrib{} },
	"SPLINE":     func() Entity { return &Spline{} },
	"DIMENSION":  func() Entity { return &Dimension{} },

	"LAYER":        func() Entity { return &Layer{} },
	"LTYPE":        func() Entity { return &Linetype{} },
	"STYLE":        func() Entity { return &TextStyle{} },
	"DIMSTYLE":     func() Entity { return &DimStyle{} },
	"APPID":        func() Entity { return &AppID{} },
	"VPORT":        func() Entity { return &VPort{} },
	"UCS":          func() Entity { return &UCS{} },
	"VIEW":         func() Entity { return &View{} },
	"BLOCK_RECORD": func() Entity { return &BlockRecord{} },

	"BLOCK":      func() Entity { return &Block{} },
	"ENDBLK":     func() Entity { return &EndBlk{} },
	"DICTIONARY": func() Entity { return &Dictionary{} },
	"XRECORD":    func() Entity { return &XRecord{} },
	"LAYOUT":     func() Entity { return &LayoutObject{} },
}

// buildEntity turns one tag group into an entity.  The entity's
// handle and owner are filled in from the tags; unknown types fall
// back to [Unknown].
func buildEntity(g tagGroup) (Entity, error) {
	x := splitTags(g)

	var e Entity
	if mk, ok := entityTypes[x.dxftype]; ok {
		e = mk()
	} else {
		e = &Unknown{}
	}
	if g, ok := e.(graphicalEntity); ok {
		*g.graphics() = defaultGraphics()
	}
	e.common().fromXtags(x)
	if err := e.load(x); err != nil {
		return nil, err
	}
	return e, nil
}
