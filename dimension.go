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

import (
	"errors"
	"fmt"
	"math"
)

// Dimension type codes (low bits of group code 70).
const (
	DimLinear   = 0
	DimAligned  = 1
	DimAngular  = 2
	DimDiameter = 3
	DimRadius   = 4
	DimOrdinate = 6

	// DimBlockReference is set when the dimension refers to a rendered
	// geometry block.
	dimBlockReference = 32
)

// Dimension is the DIMENSION entity.  The measurement-specific
// attributes of the dimension subtypes (aligned, angular, ...) beyond
// the common set are preserved verbatim in SubtypeTags, so that
// dimension flavours without a typed representation round-trip
// losslessly.
type Dimension struct {
	graphicsData
	// DimType is the dimension type, one of the Dim* constants.
	DimType int
	// GeometryBlock names the anonymous block holding the rendered
	// dimension geometry, or is empty if the dimension has not been
	// rendered.
	GeometryBlock string
	Style         string

	// DefPoint is the definition point (the dimension line location).
	DefPoint Point
	// TextMid is the middle point of the dimension text.
	TextMid Point
	// Base and the two extension line origins for linear and aligned
	// dimensions.
	ExtLine1 Point
	ExtLine2 Point

	Angle float64
	Text  string

	// SubtypeName is the subclass marker of the dimension subtype,
	// e.g. "AcDbAlignedDimension".
	SubtypeName string
	// SubtypeTags preserves the subtype attributes verbatim.
	SubtypeTags Tags
}

// NewAlignedDimension creates an aligned dimension measuring the
// distance between p1 and p2, with the dimension line offset from the
// measured line.
func NewAlignedDimension(p1, p2 Point, offset float64) *Dimension {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	var nx, ny float64
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}
	return &Dimension{
		graphicsData: defaultGraphics(),
		DimType:      DimAligned,
		Style:        "Standard",
		ExtLine1:     p1,
		ExtLine2:     p2,
		DefPoint: Point{
			X: p2.X + nx*offset,
			Y: p2.Y + ny*offset,
		},
		SubtypeName: "AcDbAlignedDimension",
	}
}

// DXFType implements the [Entity] interface.
func (e *Dimension) DXFType() string { return "DIMENSION" }

func (e *Dimension) minVersion() Version { return R12 }

// Measurement returns the measured distance for linear and aligned
// dimensions.
func (e *Dimension) Measurement() float64 {
	return math.Hypot(e.ExtLine2.X-e.ExtLine1.X, e.ExtLine2.Y-e.ExtLine1.Y)
}

func (e *Dimension) load(x *xtags) error {
	e.Style = "Standard"

	// the common attributes live in AcDbDimension (or, in legacy
	// files, in the flat tag sequence); the subtype subclass is
	// preserved verbatim
	subtype := -1
	for i, sc := range x.subclasses {
		if sc.name != "" && sc.name != "AcDbEntity" && sc.name != "AcDbDimension" {
			subtype = i
			break
		}
	}

	var common Tags
	if subtype >= 0 {
		e.SubtypeName = x.subclasses[subtype].name
		e.SubtypeTags = x.subclasses[subtype].tags.Clone()
		for i, sc := range x.subclasses {
			if i != subtype {
				common = append(common, sc.tags...)
			}
		}
	} else {
		common = x.flat()
	}

	for _, t := range common {
		if e.graphicsData.readTag(t) {
			continue
		}
		switch t.Code {
		case 2:
			e.GeometryBlock = t.Text()
		case 3:
			e.Style = t.Text()
		case 70:
			e.DimType = t.Int() &^ dimBlockReference
		case 10:
			e.DefPoint = t.Point()
		case 11:
			e.TextMid = t.Point()
		case 13:
			e.ExtLine1 = t.Point()
		case 14:
			e.ExtLine2 = t.Point()
		case 50:
			e.Angle = t.Float()
		case 1:
			e.Text = t.Text()
		}
	}

	// legacy files carry the extension line points in the flat
	// sequence; if no subtype subclass was present, keep 13/14 only
	return nil
}

func (e *Dimension) export(tw *tagWriter) {
	e.graphicsData.export(tw)
	tw.subclass("AcDbDimension")
	if e.GeometryBlock != "" {
		tw.str(2, e.GeometryBlock)
	}
	tw.point(10, e.DefPoint)
	tw.point(11, e.TextMid)
	flags := e.DimType
	if e.GeometryBlock != "" {
		flags |= dimBlockReference
	}
	tw.intTag(70, flags)
	if e.Text != "" {
		tw.str(1, e.Text)
	}
	if e.Style != "Standard" || tw.version >= R2000 {
		tw.str(3, e.Style)
	}

	if e.SubtypeName != "" {
		tw.subclass(e.SubtypeName)
	}
	if len(e.SubtypeTags) > 0 {
		for _, t := range e.SubtypeTags {
			tw.tag(t)
		}
	} else {
		tw.point(13, e.ExtLine1)
		tw.point(14, e.ExtLine2)
		if e.Angle != 0 {
			tw.real(50, e.Angle)
		}
	}
}

// DimensionBuilder renders dimension geometry in two explicit phases.
// A fresh builder is in the configured state: measurement points and
// style overrides may still be adjusted, and no entities exist in the
// document yet.  Render is the only transition to the rendered state;
// it creates the anonymous geometry block, inserts the primitive
// entities through the document's standard block operations, and adds
// the dimension entity to the target layout.
type DimensionBuilder struct {
	doc    *Document
	layout *Layout
	dim    *Dimension

	// Overrides maps DIMSTYLE attribute names to override values,
	// applied to the rendered geometry.
	Overrides map[string]float64

	rendered bool
}

// NewDimensionBuilder starts building a dimension on the given layout.
func (d *Document) NewDimensionBuilder(layout *Layout, dim *Dimension) *DimensionBuilder {
	return &DimensionBuilder{
		doc:       d,
		layout:    layout,
		dim:       dim,
		Overrides: make(map[string]float64),
	}
}

// Dimension returns the dimension entity being built.  Before Render it
// may be modified freely.
func (b *DimensionBuilder) Dimension() *Dimension { return b.dim }

// Render transitions the builder to the rendered state.  It creates an
// anonymous "*D" block containing the dimension lines and text, inserts
// the block and the dimension entity into the document, and returns the
// dimension.  Calling Render a second time is an error.
func (b *DimensionBuilder) Render() (*Dimension, error) {
	if b.rendered {
		return nil, errors.New("dimension has already been rendered")
	}
	b.rendered = true

	name := b.doc.Blocks.nextAnonymousName("D")
	block, err := b.doc.Blocks.New(name)
	if err != nil {
		return nil, err
	}

	dim := b.dim
	textHeight := 0.18
	if h, ok := b.Overrides["DIMTXT"]; ok {
		textHeight = h
	}

	// dimension line and extension lines
	if err := block.Append(NewLine(dim.ExtLine1, dim.DefPoint)); err != nil {
		return nil, err
	}
	end2 := Point{
		X: dim.DefPoint.X + (dim.ExtLine2.X - dim.ExtLine1.X),
		Y: dim.DefPoint.Y + (dim.ExtLine2.Y - dim.ExtLine1.Y),
		Z: dim.DefPoint.Z,
	}
	if err := block.Append(NewLine(dim.ExtLine2, end2)); err != nil {
		return nil, err
	}
	if err := block.Append(NewLine(dim.DefPoint, end2)); err != nil {
		return nil, err
	}

	// measurement text at the middle of the dimension line
	text := dim.Text
	if text == "" {
		text = fmt.Sprintf("%.4g", dim.Measurement())
	}
	mid := Point{
		X: (dim.DefPoint.X + end2.X) / 2,
		Y: (dim.DefPoint.Y + end2.Y) / 2,
		Z: dim.DefPoint.Z,
	}
	if err := block.Append(NewText(text, mid, textHeight)); err != nil {
		return nil, err
	}
	dim.TextMid = mid
	dim.GeometryBlock = name

	if err := b.layout.Append(dim); err != nil {
		return nil, err
	}
	return dim, nil
}
