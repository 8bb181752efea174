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

// Insert is the INSERT entity, a reference to a block definition.  The
// block definition is resolved by name through the document's block
// table; a stale name degrades to an unresolvable reference, not an
// error.
type Insert struct {
	graphicsData
	BlockName string
	Position  Point
	XScale    float64
	YScale    float64
	ZScale    float64
	Rotation  float64
	// Attribs holds the owned ATTRIB entities, terminated in the file
	// by a SEQEND entity.
	Attribs []*Attrib
	SeqEnd  *SeqEnd

	// Row and column counts and spacing of a minsert (multiple
	// insert).
	Columns       int
	Rows          int
	ColumnSpacing float64
	RowSpacing    float64

	Extrusion Point
}

// NewInsert creates a block reference with default attributes.
func NewInsert(blockName string, position Point) *Insert {
	return &Insert{
		graphicsData: defaultGraphics(),
		BlockName:    blockName,
		Position:     position,
		XScale:       1,
		YScale:       1,
		ZScale:       1,
		Columns:      1,
		Rows:         1,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Insert) DXFType() string { return "INSERT" }

func (e *Insert) minVersion() Version { return R12 }

// AppendAttrib attaches an attribute to the block reference.
func (e *Insert) AppendAttrib(a *Attrib) {
	if e.SeqEnd == nil {
		e.SeqEnd = &SeqEnd{graphicsData: defaultGraphics()}
	}
	e.Attribs = append(e.Attribs, a)
}

func (e *Insert) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	e.XScale, e.YScale, e.ZScale = 1, 1, 1
	e.Columns, e.Rows = 1, 1
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 2:
			e.BlockName = t.Text()
		case 10:
			e.Position = t.Point()
		case 41:
			e.XScale = t.Float()
		case 42:
			e.YScale = t.Float()
		case 43:
			e.ZScale = t.Float()
		case 50:
			e.Rotation = t.Float()
		case 70:
			e.Columns = t.Int()
		case 71:
			e.Rows = t.Int()
		case 44:
			e.ColumnSpacing = t.Float()
		case 45:
			e.RowSpacing = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Insert) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbBlockReference")
	if len(e.Attribs) > 0 {
		tw.intTag(66, 1) // attributes follow
	}
	tw.str(2, e.BlockName)
	tw.point(10, e.Position)
	if e.XScale != 1 {
		tw.real(41, e.XScale)
	}
	if e.YScale != 1 {
		tw.real(42, e.YScale)
	}
	if e.ZScale != 1 {
		tw.real(43, e.ZScale)
	}
	if e.Rotation != 0 {
		tw.real(50, e.Rotation)
	}
	if e.Columns > 1 {
		tw.intTag(70, e.Columns)
		tw.real(44, e.ColumnSpacing)
	}
	if e.Rows > 1 {
		tw.intTag(71, e.Rows)
		tw.real(45, e.RowSpacing)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Attrib is the ATTRIB entity, a named text attribute attached to a
// block reference.
type Attrib struct {
	graphicsData
	// Tag is the attribute's name.
	Tag   string
	Value string

	Insert      Point
	Height      float64
	Rotation    float64
	WidthFactor float64
	Style       string
	Flags       int
	Extrusion   Point
}

// NewAttrib creates an attribute with default attributes.
func NewAttrib(tag, value string, insert Point, height float64) *Attrib {
	return &Attrib{
		graphicsData: defaultGraphics(),
		Tag:          tag,
		Value:        value,
		Insert:       insert,
		Height:       height,
		WidthFactor:  1,
		Style:        "Standard",
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Attrib) DXFType() string { return "ATTRIB" }

func (e *Attrib) minVersion() Version { return R12 }

func (e *Attrib) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	e.WidthFactor = 1
	e.Style = "Standard"
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 1:
			e.Value = t.Text()
		case 2:
			e.Tag = t.Text()
		case 10:
			e.Insert = t.Point()
		case 40:
			e.Height = t.Float()
		case 50:
			e.Rotation = t.Float()
		case 41:
			e.WidthFactor = t.Float()
		case 7:
			e.Style = t.Text()
		case 70:
			e.Flags = t.Int()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Attrib) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbText")
	tw.point(10, e.Insert)
	tw.real(40, e.Height)
	tw.str(1, e.Value)
	if e.Rotation != 0 {
		tw.real(50, e.Rotation)
	}
	if e.WidthFactor != 1 {
		tw.real(41, e.WidthFactor)
	}
	if e.Style != "Standard" {
		tw.str(7, e.Style)
	}
	tw.subclass("AcDbAttribute")
	tw.str(2, e.Tag)
	tw.intTag(70, e.Flags)
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}
