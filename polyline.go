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

// LWPoint is one vertex of a lightweight polyline: a 2D location with
// optional start/end width and bulge.
type LWPoint struct {
	X, Y       float64
	StartWidth float64
	EndWidth   float64
	// Bulge is the tangent of a quarter of the included angle of the
	// arc segment following this vertex, 0 for a straight segment.
	Bulge float64
}

// Polyline flags (group code 70).
const (
	PolylineClosed = 1
	Polyline3D     = 8
)

// LWPolyline is the LWPOLYLINE entity, a planar polyline stored in a
// packed single-entity form.
type LWPolyline struct {
	graphicsData
	points []LWPoint

	Flags      int
	ConstWidth float64
	Elevation  float64
	Thickness  float64
	Extrusion  Point
}

// NewLWPolyline creates a lightweight polyline with default attributes.
func NewLWPolyline(points ...LWPoint) *LWPolyline {
	return &LWPolyline{
		graphicsData: defaultGraphics(),
		points:       points,
		Extrusion:    defaultExtrusion,
	}
}

// DXFType implements the [Entity] interface.
func (e *LWPolyline) DXFType() string { return "LWPOLYLINE" }

func (e *LWPolyline) minVersion() Version { return R2000 }

// Closed reports whether the polyline is closed.
func (e *LWPolyline) Closed() bool { return e.Flags&PolylineClosed != 0 }

// SetClosed sets or clears the closed flag.
func (e *LWPolyline) SetClosed(closed bool) {
	if closed {
		e.Flags |= PolylineClosed
	} else {
		e.Flags &^= PolylineClosed
	}
}

// Len returns the number of vertices.
func (e *LWPolyline) Len() int { return len(e.points) }

// Points returns a copy of the vertex list.  Mutating the returned
// slice does not change the entity; use [LWPolyline.EditPoints] for
// that.
func (e *LWPolyline) Points() []LWPoint {
	res := make([]LWPoint, len(e.points))
	copy(res, e.points)
	return res
}

// EditPoints returns a detached editing buffer for the vertex list.
// Changes become visible on the entity only when Commit is called on
// the editor; an editor which goes out of scope without Commit leaves
// the entity unchanged.
func (e *LWPolyline) EditPoints() *PointsEditor {
	return &PointsEditor{target: e, Points: e.Points()}
}

// PointsEditor is a staging buffer for editing the vertices of a
// lightweight polyline.  The buffer is never a live view of the entity.
type PointsEditor struct {
	// Points is the staged vertex list.  It may be modified freely.
	Points []LWPoint

	target *LWPolyline
	done   bool
}

// Append adds a vertex to the staging buffer.
func (ed *PointsEditor) Append(points ...LWPoint) {
	ed.Points = append(ed.Points, points...)
}

// Commit writes the staged vertex list back into the entity.  After
// Commit the editor is spent and further calls have no effect.
func (ed *PointsEditor) Commit() {
	if ed.done {
		return
	}
	ed.done = true
	ed.target.points = make([]LWPoint, len(ed.Points))
	copy(ed.target.points, ed.Points)
}

// Discard abandons the staged changes.
func (ed *PointsEditor) Discard() {
	ed.done = true
}

func (e *LWPolyline) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	var cur *LWPoint
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			p := t.Point()
			e.points = append(e.points, LWPoint{X: p.X, Y: p.Y})
			cur = &e.points[len(e.points)-1]
		case 40:
			if cur != nil {
				cur.StartWidth = t.Float()
			}
		case 41:
			if cur != nil {
				cur.EndWidth = t.Float()
			}
		case 42:
			if cur != nil {
				cur.Bulge = t.Float()
			}
		case 70:
			e.Flags = t.Int()
		case 43:
			e.ConstWidth = t.Float()
		case 38:
			e.Elevation = t.Float()
		case 39:
			e.Thickness = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *LWPolyline) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbPolyline")
	tw.intTag(90, len(e.points))
	tw.intTag(70, e.Flags)
	if e.ConstWidth != 0 {
		tw.real(43, e.ConstWidth)
	}
	if e.Elevation != 0 {
		tw.real(38, e.Elevation)
	}
	if e.Thickness != 0 {
		tw.real(39, e.Thickness)
	}
	for _, p := range e.points {
		tw.point(10, Point{X: p.X, Y: p.Y, Flat: true})
		if p.StartWidth != 0 || p.EndWidth != 0 {
			tw.real(40, p.StartWidth)
			tw.real(41, p.EndWidth)
		}
		if p.Bulge != 0 {
			tw.real(42, p.Bulge)
		}
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Polyline is the legacy POLYLINE entity.  Its vertices are separate
// VERTEX entities which follow the polyline in the entity space,
// terminated by a SEQEND entity.
type Polyline struct {
	graphicsData
	Flags     int
	Elevation float64
	// Vertices holds the owned VERTEX entities in drawing order.
	Vertices []*Vertex
	// SeqEnd is the terminating SEQEND entity.
	SeqEnd *SeqEnd

	DefaultStartWidth float64
	DefaultEndWidth   float64
	Extrusion         Point
}

// NewPolyline creates an empty legacy polyline.
func NewPolyline() *Polyline {
	return &Polyline{
		graphicsData: defaultGraphics(),
		Extrusion:    defaultExtrusion,
		SeqEnd:       &SeqEnd{graphicsData: defaultGraphics()},
	}
}

// DXFType implements the [Entity] interface.
func (e *Polyline) DXFType() string { return "POLYLINE" }

func (e *Polyline) minVersion() Version { return R12 }

// Is3D reports whether the polyline is a 3D polyline.
func (e *Polyline) Is3D() bool { return e.Flags&Polyline3D != 0 }

// AppendVertex adds a vertex at the given location.
func (e *Polyline) AppendVertex(location Point) *Vertex {
	v := &Vertex{
		graphicsData: defaultGraphics(),
		Location:     location,
	}
	e.Vertices = append(e.Vertices, v)
	return v
}

func (e *Polyline) load(x *xtags) error {
	e.Extrusion = defaultExtrusion
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 70:
			e.Flags = t.Int()
		case 10:
			e.Elevation = t.Point().Z
		case 30:
			e.Elevation = t.Float()
		case 40:
			e.DefaultStartWidth = t.Float()
		case 41:
			e.DefaultEndWidth = t.Float()
		case 210:
			e.Extrusion = t.Point()
		}
	}
	return nil
}

func (e *Polyline) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	if e.Is3D() {
		tw.subclass("AcDb3dPolyline")
	} else {
		tw.subclass("AcDb2dPolyline")
	}
	tw.intTag(66, 1) // vertices follow
	tw.point(10, Point{Z: e.Elevation})
	if e.Flags != 0 {
		tw.intTag(70, e.Flags)
	}
	if e.DefaultStartWidth != 0 {
		tw.real(40, e.DefaultStartWidth)
	}
	if e.DefaultEndWidth != 0 {
		tw.real(41, e.DefaultEndWidth)
	}
	if !isDefaultExtrusion(e.Extrusion) {
		tw.point(210, e.Extrusion)
	}
}

// Vertex is the VERTEX entity, one vertex of a legacy POLYLINE.
type Vertex struct {
	graphicsData
	Location   Point
	StartWidth float64
	EndWidth   float64
	Bulge      float64
	Flags      int
	Tangent    float64
}

// DXFType implements the [Entity] interface.
func (e *Vertex) DXFType() string { return "VERTEX" }

func (e *Vertex) minVersion() Version { return R12 }

func (e *Vertex) load(x *xtags) error {
	for _, t := range x.flat() {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Location = t.Point()
		case 40:
			e.StartWidth = t.Float()
		case 41:
			e.EndWidth = t.Float()
		case 42:
			e.Bulge = t.Float()
		case 70:
			e.Flags = t.Int()
		case 50:
			e.Tangent = t.Float()
		}
	}
	return nil
}

func (e *Vertex) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbVertex")
	if e.Flags&32 != 0 || e.Flags&64 == 0 {
		tw.subclass("AcDb2dVertex")
	} else {
		tw.subclass("AcDb3dPolylineVertex")
	}
	tw.point(10, e.Location)
	if e.StartWidth != 0 {
		tw.real(40, e.StartWidth)
	}
	if e.EndWidth != 0 {
		tw.real(41, e.EndWidth)
	}
	if e.Bulge != 0 {
		tw.real(42, e.Bulge)
	}
	if e.Flags != 0 {
		tw.intTag(70, e.Flags)
	}
	if e.Tangent != 0 {
		tw.real(50, e.Tangent)
	}
}

// SeqEnd is the SEQEND entity which terminates a VERTEX or ATTRIB
// sequence.
type SeqEnd struct {
	graphicsData
}

// DXFType implements the [Entity] interface.
func (e *SeqEnd) DXFType() string { return "SEQEND" }

func (e *SeqEnd) minVersion() Version { return R12 }

func (e *SeqEnd) load(x *xtags) error {
	for _, t := range x.flat() {
		e.graphicsData.readTag(t)
	}
	return nil
}

func (e *SeqEnd) export(tw *tagWriter) {
	e.graphicsData.export(tw)
}
