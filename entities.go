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

import "unicode/utf8"

// defaultExtrusion is the extrusion vector of planar entities drawn in
// the world XY plane.
var defaultExtrusion = Point{X: 0, Y: 0, Z: 1}

func isDefaultExtrusion(p Point) bool {
	return p.X == 0 && p.Y == 0 && (p.Z == 1 || p.Z == 0)
}

// Line is the LINE entity, a straight segment between two points.
type Line struct {
	graphicsData
	Start     Point
	End       Point
	Thickness float64
	Extrusion Point
}

// NewLine creates a line with default attributes.
func NewLine(start, end Point) *Line {
	return &Line{
		graphicsData: defaultGraphics(),
		Start:        start,
		End:          end,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Line) DXFType() string { return "LINE" }

func (e *Line) minVersion() Version { return R12 }

func (e *Line) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Start = t.Point()
		case 11:
			e.End = t.Point()
		case 39:
			e.Thickness = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Line) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbLine")
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	tw.point(10, e.Start)
	tw.point(11, e.End)
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// PointEntity is the POINT entity, a single marker in space.
type PointEntity struct {
	graphicsData
	Location  Point
	Thickness float64
	Extrusion Point
	// Angle is the rotation of the PDMODE symbol, in degrees.
	Angle float64
}

// NewPoint creates a point marker with default attributes.
func NewPoint(location Point) *PointEntity {
	return &PointEntity{
		graphicsData: defaultGraphics(),
		Location:     location,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *PointEntity) DXFType() string { return "POINT" }

func (e *PointEntity) minVersion() Version { return R12 }

func (e *PointEntity) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Location = t.Point()
		case 39:
			e.Thickness = t.Float()
		case 50:
			e.Angle = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *PointEntity) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbPoint")
	tw.point(10, e.Location)
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
	if e.Angle != 0 {
		tw.real(50, e.Angle)
	}
}

// Circle is the CIRCLE entity.
type Circle struct {
	graphicsData
	Center    Point
	Radius    float64
	Thickness float64
	Extrusion Point
}

// NewCircle creates a circle with default attributes.
func NewCircle(center Point, radius float64) *Circle {
	return &Circle{
		graphicsData: defaultGraphics(),
		Center:       center,
		Radius:       radius,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Circle) DXFType() string { return "CIRCLE" }

func (e *Circle) minVersion() Version { return R12 }

func (e *Circle) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Center = t.Point()
		case 40:
			e.Radius = t.Float()
		case 39:
			e.Thickness = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Circle) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbCircle")
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	tw.point(10, e.Center)
	tw.real(40, e.Radius)
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Arc is the ARC entity, a circular arc drawn counter-clockwise from
// StartAngle to EndAngle (in degrees, in the entity's object coordinate
// system).
type Arc struct {
	graphicsData
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Thickness  float64
	Extrusion  Point
}

// NewArc creates an arc with default attributes.
func NewArc(center Point, radius, startAngle, endAngle float64) *Arc {
	return &Arc{
		graphicsData: defaultGraphics(),
		Center:       center,
		Radius:       radius,
		StartAngle:   startAngle,
		EndAngle:     endAngle,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Arc) DXFType() string { return "ARC" }

func (e *Arc) minVersion() Version { return R12 }

func (e *Arc) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Center = t.Point()
		case 40:
			e.Radius = t.Float()
		case 50:
			e.StartAngle = t.Float()
		case 51:
			e.EndAngle = t.Float()
		case 39:
			e.Thickness = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Arc) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbCircle")
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	tw.point(10, e.Center)
	tw.real(40, e.Radius)
	tw.subclass("AcDbArc")
	tw.real(50, e.StartAngle)
	tw.real(51, e.EndAngle)
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Solid is the SOLID entity, a filled triangle or quadrilateral.  For a
// triangle the fourth corner repeats the third.
type Solid struct {
	graphicsData
	Corners   [4]Point
	Thickness float64
	Extrusion Point

	// trace marks entities read from a TRACE group.  TRACE is
	// identical to SOLID on the wire and is kept only so that the
	// original type name survives a load/store cycle.
	trace bool
}

// NewSolid creates a solid with default attributes.  For a triangle,
// pass the third corner twice.
func NewSolid(p0, p1, p2, p3 Point) *Solid {
	return &Solid{
		graphicsData: defaultGraphics(),
		Corners:      [4]Point{p0, p1, p2, p3},
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Solid) DXFType() string {
	if e.trace {
		return "TRACE"
	}
	return "SOLID"
}

func (e *Solid) minVersion() Version { return R12 }

func (e *Solid) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	seen3 := false
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10, 11, 12:
			e.Corners[t.Code-10] = t.Point()
		case 13:
			e.Corners[3] = t.Point()
			seen3 = true
		case 39:
			e.Thickness = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	if !seen3 {
		e.Corners[3] = e.Corners[2]
	}
	return nil
}

func (e *Solid) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbTrace")
	for i, p := range e.Corners {
		tw.point(10+i, p)
	}
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Text is the TEXT entity, a single line of text.
type Text struct {
	graphicsData
	Value    string
	Insert   Point
	Height   float64
	Rotation float64
	// WidthFactor stretches or compresses the glyphs, default 1.
	WidthFactor float64
	Oblique     float64
	Style       string
	// HAlign and VAlign select the alignment mode; if either is
	// non-zero, AlignPoint is the effective insertion point.
	HAlign     int
	VAlign     int
	AlignPoint Point
	Mirror     int
	Extrusion  Point
}

// NewText creates a text entity with default attributes.
func NewText(value string, insert Point, height float64) *Text {
	return &Text{
		graphicsData: defaultGraphics(),
		Value:        value,
		Insert:       insert,
		Height:       height,
		WidthFactor:  1,
		Style:        "Standard",
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *Text) DXFType() string { return "TEXT" }

func (e *Text) minVersion() Version { return R12 }

func (e *Text) load(x *xtags) error {
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
		case 10:
			e.Insert = t.Point()
		case 40:
			e.Height = t.Float()
		case 50:
			e.Rotation = t.Float()
		case 41:
			e.WidthFactor = t.Float()
		case 51:
			e.Oblique = t.Float()
		case 7:
			e.Style = t.Text()
		case 71:
			e.Mirror = t.Int()
		case 72:
			e.HAlign = t.Int()
		case 73:
			e.VAlign = t.Int()
		case 11:
			e.AlignPoint = t.Point()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Text) export(tw *tagWriter) {
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
	if e.Oblique != 0 {
		tw.real(51, e.Oblique)
	}
	if e.Style != "Standard" {
		tw.str(7, e.Style)
	}
	if e.Mirror != 0 {
		tw.intTag(71, e.Mirror)
	}
	if e.HAlign != 0 {
		tw.intTag(72, e.HAlign)
	}
	if e.HAlign != 0 || e.VAlign != 0 {
		tw.point(11, e.AlignPoint)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
	// the vertical alignment lives in a second AcDbText subclass
	tw.subclass("AcDbText")
	if e.VAlign != 0 {
		tw.intTag(73, e.VAlign)
	}
}

// MText is the MTEXT entity, a multi-line text block with inline
// formatting codes.
type MText struct {
	graphicsData
	Text     string
	Insert   Point
	Height   float64
	Width    float64
	Rotation float64
	// Attachment selects the anchor corner, 1 (top left) .. 9 (bottom
	// right).
	Attachment int
	// FlowDirection is the drawing direction, default 1 (left to
	// right).
	FlowDirection int
	Style         string
	LineSpacing   float64
	Extrusion     Point
}

// NewMText creates a multi-line text entity with default attributes.
func NewMText(text string, insert Point, height float64) *MText {
	return &MText{
		graphicsData:  defaultGraphics(),
		Text:          text,
		Insert:        insert,
		Height:        height,
		Attachment:    1,
		FlowDirection: 1,
		Style:         "Standard",
		Extrusion:     defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *MText) DXFType() string { return "MTEXT" }

func (e *MText) minVersion() Version { return R13 }

func (e *MText) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	e.Attachment = 1
	e.FlowDirection = 1
	e.Style = "Standard"
	var text string
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 1, 3:
			// code 3 continuation chunks precede the final code 1
			// chunk in file order
			text += t.Text()
		case 10:
			e.Insert = t.Point()
		case 40:
			e.Height = t.Float()
		case 41:
			e.Width = t.Float()
		case 50:
			e.Rotation = t.Float()
		case 71:
			e.Attachment = t.Int()
		case 72:
			e.FlowDirection = t.Int()
		case 7:
			e.Style = t.Text()
		case 44:
			e.LineSpacing = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	if text != "" {
		e.Text = text
	}
	return nil
}

func (e *MText) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbMText")
	tw.point(10, e.Insert)
	tw.real(40, e.Height)
	if e.Width != 0 {
		tw.real(41, e.Width)
	}
	tw.intTag(71, e.Attachment)
	tw.intTag(72, e.FlowDirection)

	// long text is split into continuation chunks of at most 250
	// bytes, never cutting a UTF-8 rune in half
	text := e.Text
	for len(text) > 250 {
		n := 250
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		tw.str(3, text[:n])
		text = text[n:]
	}
	tw.str(1, text)

	if e.Style != "Standard" {
		tw.str(7, e.Style)
	}
	if e.Rotation != 0 {
		tw.real(50, e.Rotation)
	}
	if e.LineSpacing != 0 {
		tw.real(44, e.LineSpacing)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}
