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
	"fmt"
	"strings"
)

// RepairKind classifies the repairs applied while recovering or
// auditing a document.
type RepairKind int

const (
	RepairStrayTag RepairKind = iota + 1
	RepairUnsupportedSection
	RepairMalformedTag
	RepairStructure
	RepairDuplicateHandle
	RepairMissingHandle
	RepairDanglingPointer
	RepairMissingTable
	RepairUndefinedResource
	RepairMissingSeqEnd
)

var repairNames = map[RepairKind]string{
	RepairStrayTag:           "stray tag",
	RepairUnsupportedSection: "unsupported section",
	RepairMalformedTag:       "malformed tag",
	RepairStructure:          "structure",
	RepairDuplicateHandle:    "duplicate handle",
	RepairMissingHandle:      "missing handle",
	RepairDanglingPointer:    "dangling pointer",
	RepairMissingTable:       "missing table",
	RepairUndefinedResource:  "undefined resource",
	RepairMissingSeqEnd:      "missing seqend",
}

func (k RepairKind) String() string {
	if s, ok := repairNames[k]; ok {
		return s
	}
	return fmt.Sprintf("RepairKind(%d)", int(k))
}

// A Repair describes one fix applied to a damaged document.  Line is
// the source line the problem was found at, or 0 when the problem was
// found after loading.
type Repair struct {
	Kind    RepairKind
	Line    int
	Message string
}

func (r Repair) String() string {
	if r.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", r.Line, r.Kind, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// A Report lists the repairs applied by [Recover] or [Document.Audit].
type Report struct {
	Repairs []Repair
}

// Clean reports whether no repairs were needed.
func (r *Report) Clean() bool { return len(r.Repairs) == 0 }

func (r *Report) add(kind RepairKind, line int, format string, args ...any) {
	r.Repairs = append(r.Repairs, Repair{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Report) String() string {
	if r.Clean() {
		return "no repairs"
	}
	var sb strings.Builder
	for i, rep := range r.Repairs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(rep.String())
	}
	return sb.String()
}

// Audit checks the document for consistency problems a strict load
// does not catch, and fixes them in place: pointers to handles with no
// registered entity are cleared, and references to undefined layers,
// linetypes and text styles are replaced by the standard fallback
// resources ("0", "Continuous" and "Standard").  The returned report
// lists every applied fix.
func (d *Document) Audit() *Report {
	report := &Report{}
	d.auditPointers(report)
	d.auditResources(report)
	return report
}

func (d *Document) auditPointers(report *Report) {
	var all []Entity
	d.db.all(func(e Entity) { all = append(all, e) })

	// Table heads have handles but are not entities, so pointers to
	// them must not be treated as dangling.
	tableHeads := make(map[Handle]bool)
	for _, name := range tableOrder {
		if t := d.Tables.Get(name); t != nil && t.handle != 0 {
			tableHeads[t.handle] = true
		}
	}

	for _, e := range all {
		c := e.common()
		for _, h := range c.pointers() {
			if tableHeads[h] {
				continue
			}
			if d.db.Get(h) == nil {
				c.removeReference(h)
				report.add(RepairDanglingPointer, 0,
					"%s %s: pointer to missing entity %s cleared",
					e.DXFType(), c.handle, h)
			}
		}
		if dict, ok := e.(*Dictionary); ok {
			for _, entry := range dict.Entries() {
				if d.db.Get(entry.Handle) == nil {
					dict.removeHandle(entry.Handle)
					report.add(RepairDanglingPointer, 0,
						"dictionary %s: entry %q pointed to missing entity %s",
						c.handle, entry.Name, entry.Handle)
				}
			}
		}
	}
}

func (d *Document) auditResources(report *Report) {
	fixLayer := func(e Entity, g *graphicsData) {
		if !d.Tables.Layers.Has(g.Layer) {
			report.add(RepairUndefinedResource, 0,
				"%s %s: undefined layer %q replaced by \"0\"",
				e.DXFType(), e.Handle(), g.Layer)
			g.Layer = "0"
		}
		if g.Linetype != LinetypeByLayer && g.Linetype != LinetypeByBlock &&
			!d.Tables.Linetypes.Has(g.Linetype) {
			report.add(RepairUndefinedResource, 0,
				"%s %s: undefined linetype %q replaced by \"Continuous\"",
				e.DXFType(), e.Handle(), g.Linetype)
			g.Linetype = "Continuous"
		}
	}

	d.db.all(func(e Entity) {
		if g, ok := e.(graphicalEntity); ok {
			fixLayer(e, g.graphics())
		}
		switch e := e.(type) {
		case *Text:
			if e.Style != "" && !d.Tables.TextStyles.Has(e.Style) {
				report.add(RepairUndefinedResource, 0,
					"TEXT %s: undefined style %q replaced by \"Standard\"",
					e.Handle(), e.Style)
				e.Style = "Standard"
			}
		case *MText:
			if e.Style != "" && !d.Tables.TextStyles.Has(e.Style) {
				report.add(RepairUndefinedResource, 0,
					"MTEXT %s: undefined style %q replaced by \"Standard\"",
					e.Handle(), e.Style)
				e.Style = "Standard"
			}
		case *Dimension:
			if e.Style != "" && !d.Tables.DimStyles.Has(e.Style) {
				report.add(RepairUndefinedResource, 0,
					"DIMENSION %s: undefined dimension style %q replaced by \"Standard\"",
					e.Handle(), e.Style)
				e.Style = "Standard"
			}
		case *Layer:
			if !d.Tables.Linetypes.Has(e.Linetype) {
				report.add(RepairUndefinedResource, 0,
					"LAYER %q: undefined linetype %q replaced by \"Continuous\"",
					e.Name(), e.Linetype)
				e.Linetype = "Continuous"
			}
		}
	})
}
