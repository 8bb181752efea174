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

// LayoutObject is the LAYOUT object from the OBJECTS section.  It
// links a layout tab to its block record and stores the plot settings.
// The plot settings have no typed representation and are preserved
// verbatim.
type LayoutObject struct {
	commonData

	name string

	// TabOrder is the position of the layout tab, 0 for modelspace.
	TabOrder int

	// BlockRecordHandle points to the BLOCK_RECORD owning the layout's
	// entities.
	BlockRecordHandle Handle

	// PlotSettings preserves the AcDbPlotSettings subclass tags.
	PlotSettings Tags

	extra Tags
}

// DXFType implements the [Entity] interface.
func (e *LayoutObject) DXFType() string { return "LAYOUT" }

func (e *LayoutObject) minVersion() Version { return R2000 }

// Name returns the layout tab name, for example "Model" or "Layout1".
func (e *LayoutObject) Name() string { return e.name }

func (e *LayoutObject) load(x *xtags) error {
	if sub := x.subclass("AcDbPlotSettings"); sub != nil {
		e.PlotSettings = sub.Clone()
	}
	sub := x.subclass("AcDbLayout")
	if sub == nil {
		sub = x.flat()
	}
	for _, t := range sub {
		switch t.Code {
		case 1:
			e.name = t.Text()
		case 71:
			e.TabOrder = t.Int()
		case 330:
			e.BlockRecordHandle = t.Handle()
		default:
			e.extra = append(e.extra, t)
		}
	}
	return nil
}

func (e *LayoutObject) export(tw *tagWriter) {
	tw.subclass("AcDbPlotSettings")
	for _, t := range e.PlotSettings {
		tw.tag(t)
	}
	tw.subclass("AcDbLayout")
	tw.str(1, e.name)
	tw.intTag(71, e.TabOrder)
	for _, t := range e.extra {
		tw.tag(t)
	}
	tw.handle(330, e.BlockRecordHandle)
}

// A Layout is one entity space of the document: modelspace or a
// paperspace tab.  Entities added through a layout get their handle
// assigned and their owner set in one step.
type Layout struct {
	doc *Document

	// Object is the LAYOUT object, or nil for documents loaded from
	// R12 files.
	Object *LayoutObject

	block *BlockDefinition
}

// Name returns the layout tab name.
func (l *Layout) Name() string {
	if l.Object != nil {
		return l.Object.Name()
	}
	return l.block.Name()
}

// Block returns the block definition holding the layout's entities.
func (l *Layout) Block() *BlockDefinition { return l.block }

// Len returns the number of entities in the layout.
func (l *Layout) Len() int { return l.block.Len() }

// Entities returns the layout's entities in insertion order.  The
// returned slice must not be modified.
func (l *Layout) Entities() []Entity { return l.block.Entities() }

// Append adds an entity to the layout.
func (l *Layout) Append(e Entity) error {
	return l.block.Append(e)
}
