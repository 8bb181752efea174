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
	"io"
	"os"
	"sort"
)

// Open loads a DXF file.  The load is strict: structural damage and
// inconsistent handles make the load fail.  Use [RecoverFile] for
// damaged files.
func Open(fname string) (*Document, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data)
}

// Read loads a DXF document from r.  The load is strict; use [Recover]
// for damaged files.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadBytes(data)
}

// ReadBytes loads a DXF document from a byte slice.  Both the ASCII
// and the binary flavour are recognized.
func ReadBytes(data []byte) (*Document, error) {
	ts, err := loadTagStream(data)
	if err != nil {
		return nil, err
	}
	l := &loader{report: &Report{}}
	doc, err := l.load(ts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// loader assembles a document from a tag stream.  In lenient mode
// problems are recorded as repairs and the load continues; in strict
// mode the first problem aborts the load.
type loader struct {
	doc     *Document
	report  *Report
	lenient bool
}

// problem either records a repair or aborts, depending on the mode.
func (l *loader) problem(err error, kind RepairKind, line int, format string, args ...any) error {
	if !l.lenient {
		return err
	}
	l.report.add(kind, line, format, args...)
	return nil
}

func (l *loader) load(ts *tagStream) (*Document, error) {
	sections, warnings, err := assembleSections(ts)
	if err != nil {
		if !l.lenient {
			return nil, err
		}
		l.report.add(RepairStructure, 0, "%v", err)
		sections, warnings = salvageSections(ts)
	}
	l.report.Repairs = append(l.report.Repairs, warnings...)

	doc := &Document{
		Header: NewHeader(),
		db:     newEntityDB(),
	}
	doc.Tables = newTables(doc)
	doc.Blocks = newBlocks(doc)
	l.doc = doc

	if err := l.loadHeader(sections["HEADER"]); err != nil {
		return nil, err
	}
	if err := l.loadTables(sections["TABLES"]); err != nil {
		return nil, err
	}
	if err := l.loadBlocks(sections["BLOCKS"]); err != nil {
		return nil, err
	}
	if err := l.loadObjects(sections["OBJECTS"]); err != nil {
		return nil, err
	}
	if err := l.finishLayouts(); err != nil {
		return nil, err
	}
	if err := l.loadEntities(sections["ENTITIES"]); err != nil {
		return nil, err
	}
	l.loadThumbnail(sections["THUMBNAILIMAGE"])
	doc.classes = sectionTags(sections["CLASSES"])
	doc.acdsData = sectionTags(sections["ACDSDATA"])

	return doc, nil
}

// sectionTags flattens a section back into its raw tag sequence, for
// sections which are carried verbatim rather than parsed.
func sectionTags(sec *section) Tags {
	if sec == nil {
		return nil
	}
	tags := sec.head.Clone()
	for _, g := range sec.groups {
		tags = append(tags, g.tags...)
	}
	return tags
}

func (l *loader) loadHeader(sec *section) error {
	if sec == nil {
		l.doc.Version = R12
		return l.problem(
			&StructureError{Msg: "missing HEADER section"},
			RepairStructure, 0, "missing HEADER section, assuming R12 defaults")
	}

	// group the header payload into $-variables
	var name string
	var tags Tags
	flush := func() {
		if name != "" {
			l.doc.Header.Set(name, tags...)
		}
		tags = nil
	}
	for _, t := range sec.head {
		if t.Code == 9 {
			flush()
			name = t.Text()
			continue
		}
		tags = append(tags, t)
	}
	flush()

	l.doc.Version = R12
	if tags, ok := l.doc.Header.Get("$ACADVER"); ok {
		if t, ok := tags.Get(1); ok {
			v, err := ParseVersion(t.Text())
			if err != nil {
				if err := l.problem(err, RepairStructure, sec.line,
					"unknown version %q, assuming R12", t.Text()); err != nil {
					return err
				}
			} else {
				l.doc.Version = v
			}
		}
	}
	l.doc.db.reserve(l.doc.Header.HandSeed())
	return nil
}

// register puts a loaded entity into the handle index.  Entities
// without a handle (R12 files) get a fresh one.  In lenient mode a
// duplicate handle is resolved by assigning a fresh handle to the
// second entity.
func (l *loader) register(e Entity, line int) error {
	if e.Handle() == 0 {
		e.common().setHandle(l.doc.db.NextHandle())
	}
	err := l.doc.db.Insert(e)
	var dup *DuplicateHandleError
	if errors.As(err, &dup) && l.lenient {
		l.report.add(RepairDuplicateHandle, line,
			"%s: handle %s already in use, assigned a fresh handle",
			e.DXFType(), e.Handle())
		e.common().setHandle(l.doc.db.NextHandle())
		return l.doc.db.Insert(e)
	}
	return err
}

func (l *loader) loadTables(sec *section) error {
	if sec == nil {
		return l.problem(
			&StructureError{Msg: "missing TABLES section"},
			RepairMissingTable, 0, "missing TABLES section")
	}

	raw, err := assembleTables(sec)
	if err != nil {
		if e := l.problem(err, RepairStructure, 0, "%v", err); e != nil {
			return e
		}
	}
	for _, rt := range raw {
		table := l.doc.Tables.Get(rt.name)
		if table == nil {
			if err := l.problem(
				&StructureError{Line: rt.line, Msg: "unknown table " + rt.name},
				RepairUnsupportedSection, rt.line,
				"unknown table %s discarded", rt.name); err != nil {
				return err
			}
			continue
		}
		if t, ok := rt.head.Get(codeHandle); ok {
			table.handle = t.Handle()
			l.doc.db.reserve(table.handle)
		}
		for _, g := range rt.entries {
			e, err := buildEntity(g)
			if err != nil {
				if err := l.problem(err, RepairMalformedTag, g.line, "%v", err); err != nil {
					return err
				}
				continue
			}
			entry, ok := e.(TableEntry)
			if !ok {
				continue
			}
			if err := l.register(entry, g.line); err != nil {
				return err
			}
			if err := l.addTableEntry(table, entry, g.line); err != nil {
				return err
			}
		}
	}

	if l.doc.Tables.Layers.Len() == 0 && !l.lenient {
		return &StructureError{Line: sec.line, Msg: "missing LAYER table"}
	}
	return nil
}

// addTableEntry appends an already registered entry to its table,
// bypassing the handle assignment of Table.Add.
func (l *loader) addTableEntry(t *Table, e TableEntry, line int) error {
	key := tableKey(e.Name())
	if _, exists := t.index[key]; exists {
		if err := l.problem(
			&StructureError{Line: line, Msg: "duplicate " + t.name + " entry " + e.Name()},
			RepairStructure, line,
			"duplicate %s entry %q discarded", t.name, e.Name()); err != nil {
			return err
		}
		l.doc.db.Delete(e.Handle())
		return nil
	}
	t.entries = append(t.entries, e)
	t.index[key] = e
	return nil
}

// assembleEntities builds entities from tag groups, stitching the
// VERTEX/SEQEND run after a POLYLINE and the ATTRIB/SEQEND run after
// an INSERT to their parent entity.
func (l *loader) assembleEntities(groups []tagGroup) ([]Entity, error) {
	var res []Entity

	i := 0
	next := func() (Entity, int, error) {
		g := groups[i]
		i++
		e, err := buildEntity(g)
		return e, g.line, err
	}

	for i < len(groups) {
		e, line, err := next()
		if err != nil {
			if err := l.problem(err, RepairMalformedTag, line, "%v", err); err != nil {
				return nil, err
			}
			continue
		}
		if err := l.register(e, line); err != nil {
			return nil, err
		}

		switch e := e.(type) {
		case *Polyline:
			for i < len(groups) && groups[i].dxfType() == "VERTEX" {
				v, vline, err := next()
				if err != nil {
					if err := l.problem(err, RepairMalformedTag, vline, "%v", err); err != nil {
						return nil, err
					}
					continue
				}
				if err := l.register(v, vline); err != nil {
					return nil, err
				}
				e.Vertices = append(e.Vertices, v.(*Vertex))
			}
			if i < len(groups) && groups[i].dxfType() == "SEQEND" {
				s, sline, err := next()
				if err == nil {
					if err := l.register(s, sline); err != nil {
						return nil, err
					}
					e.SeqEnd = s.(*SeqEnd)
				}
			} else if err := l.problem(
				&StructureError{Line: line, Msg: "POLYLINE without SEQEND"},
				RepairMissingSeqEnd, line, "POLYLINE without SEQEND"); err != nil {
				return nil, err
			}
		case *Insert:
			for i < len(groups) && groups[i].dxfType() == "ATTRIB" {
				a, aline, err := next()
				if err != nil {
					if err := l.problem(err, RepairMalformedTag, aline, "%v", err); err != nil {
						return nil, err
					}
					continue
				}
				if err := l.register(a, aline); err != nil {
					return nil, err
				}
				e.Attribs = append(e.Attribs, a.(*Attrib))
			}
			if i < len(groups) && groups[i].dxfType() == "SEQEND" {
				s, sline, err := next()
				if err == nil {
					if err := l.register(s, sline); err != nil {
						return nil, err
					}
					e.SeqEnd = s.(*SeqEnd)
				}
			}
		case *Vertex, *Attrib, *SeqEnd:
			if err := l.problem(
				&StructureError{Line: line, Msg: e.DXFType() + " outside of any sequence"},
				RepairStructure, line,
				"%s outside of any sequence discarded", e.DXFType()); err != nil {
				return nil, err
			}
			l.doc.db.Delete(e.Handle())
			continue
		}
		res = append(res, e)
	}
	return res, nil
}

func (l *loader) loadBlocks(sec *section) error {
	if sec == nil {
		// R12-era files commonly have no BLOCKS section at all
		if l.lenient {
			l.report.add(RepairStructure, 0, "missing BLOCKS section")
		}
		return nil
	}

	i := 0
	groups := sec.groups
	for i < len(groups) {
		g := groups[i]
		if g.dxfType() != "BLOCK" {
			if err := l.problem(
				&StructureError{Line: g.line, Msg: "entity outside of any block: " + g.dxfType()},
				RepairStructure, g.line,
				"entity outside of any block discarded: %s", g.dxfType()); err != nil {
				return err
			}
			i++
			continue
		}

		e, err := buildEntity(g)
		if err != nil {
			if err := l.problem(err, RepairMalformedTag, g.line, "%v", err); err != nil {
				return err
			}
			i++
			continue
		}
		head := e.(*Block)
		if err := l.register(head, g.line); err != nil {
			return err
		}
		i++

		// collect the block content up to the ENDBLK
		start := i
		for i < len(groups) && groups[i].dxfType() != "ENDBLK" && groups[i].dxfType() != "BLOCK" {
			i++
		}
		entities, err := l.assembleEntities(groups[start:i])
		if err != nil {
			return err
		}

		tail := &EndBlk{Layer: head.Layer}
		if i < len(groups) && groups[i].dxfType() == "ENDBLK" {
			te, err := buildEntity(groups[i])
			if err == nil {
				tail = te.(*EndBlk)
			}
			i++
		} else if err := l.problem(
			&StructureError{Line: g.line, Msg: "block " + head.Name() + " is missing its ENDBLK"},
			RepairStructure, g.line,
			"block %q is missing its ENDBLK", head.Name()); err != nil {
			return err
		}
		if err := l.register(tail, g.line); err != nil {
			return err
		}

		record, err := l.blockRecord(head)
		if err != nil {
			return err
		}
		def := &BlockDefinition{
			doc:      l.doc,
			Record:   record,
			Head:     head,
			Tail:     tail,
			entities: entities,
		}
		if prev := l.doc.Blocks.Get(head.Name()); prev != nil {
			if err := l.problem(
				&StructureError{Line: g.line, Msg: "duplicate block " + head.Name()},
				RepairStructure, g.line,
				"duplicate block %q discarded", head.Name()); err != nil {
				return err
			}
			continue
		}
		l.doc.Blocks.add(def)
	}
	return nil
}

// blockRecord finds the BLOCK_RECORD for a block head, creating one
// when the file has none (R12 files, damaged files).
func (l *loader) blockRecord(head *Block) (*BlockRecord, error) {
	if e, ok := l.doc.Tables.BlockRecords.Get(head.Name()); ok {
		if record, ok := e.(*BlockRecord); ok {
			return record, nil
		}
	}
	record := NewBlockRecord(head.Name())
	if err := l.register(record, 0); err != nil {
		return nil, err
	}
	record.SetOwner(l.doc.Tables.BlockRecords.Handle())
	if err := l.addTableEntry(l.doc.Tables.BlockRecords, record, 0); err != nil {
		return nil, err
	}
	return record, nil
}

func (l *loader) loadEntities(sec *section) error {
	if sec == nil {
		return nil
	}
	entities, err := l.assembleEntities(sec.groups)
	if err != nil {
		return err
	}

	// distribute by owner block record, falling back to the paper
	// space flag
	byRecord := make(map[Handle]*Layout)
	for _, layout := range l.doc.layouts {
		byRecord[layout.block.Record.Handle()] = layout
	}
	model := l.doc.Modelspace()
	paper := l.doc.Paperspace()
	for _, e := range entities {
		layout := byRecord[e.Owner()]
		if layout == nil {
			layout = model
			if g, ok := e.(graphicalEntity); ok && g.graphics().PaperSpace && paper != nil {
				layout = paper
			}
		}
		e.SetOwner(layout.block.Record.Handle())
		layout.block.entities = append(layout.block.entities, e)
	}
	return nil
}

func (l *loader) loadObjects(sec *section) error {
	if sec == nil {
		return nil
	}
	for _, g := range sec.groups {
		e, err := buildEntity(g)
		if err != nil {
			if err := l.problem(err, RepairMalformedTag, g.line, "%v", err); err != nil {
				return err
			}
			continue
		}
		if err := l.register(e, g.line); err != nil {
			return err
		}
		l.doc.objects = append(l.doc.objects, e)
		if l.doc.rootDict == nil {
			if dict, ok := e.(*Dictionary); ok {
				l.doc.rootDict = dict
			}
		}
	}
	return nil
}

// finishLayouts builds the layout wrappers.  Files with LAYOUT objects
// get one wrapper per object, ordered by tab order; older files get
// wrappers synthesized from the *Model_Space and *Paper_Space blocks.
func (l *loader) finishLayouts() error {
	doc := l.doc

	var objs []*LayoutObject
	for _, e := range doc.objects {
		if lo, ok := e.(*LayoutObject); ok {
			objs = append(objs, lo)
		}
	}
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].TabOrder < objs[j].TabOrder
	})

	byRecord := make(map[Handle]*BlockDefinition)
	for _, def := range doc.Blocks.All() {
		byRecord[def.Record.Handle()] = def
	}
	for _, obj := range objs {
		def := byRecord[obj.BlockRecordHandle]
		if def == nil {
			if err := l.problem(
				&DanglingPointerError{Handle: obj.BlockRecordHandle, Owner: obj.Handle()},
				RepairDanglingPointer, 0,
				"layout %q points to missing block record %s",
				obj.Name(), obj.BlockRecordHandle); err != nil {
				return err
			}
			continue
		}
		doc.layouts = append(doc.layouts, &Layout{doc: doc, Object: obj, block: def})
	}

	// make sure modelspace exists
	if doc.Modelspace() == nil {
		def := doc.Blocks.Get("*Model_Space")
		if def == nil {
			var err error
			def, err = doc.Blocks.New("*Model_Space")
			if err != nil {
				return err
			}
		}
		doc.layouts = append([]*Layout{{doc: doc, block: def}}, doc.layouts...)
	}
	if doc.Paperspace() == nil {
		if def := doc.Blocks.Get("*Paper_Space"); def != nil {
			doc.layouts = append(doc.layouts, &Layout{doc: doc, block: def})
		}
	}
	return nil
}

func (l *loader) loadThumbnail(sec *section) {
	if sec == nil {
		return
	}
	var data []byte
	for _, t := range sec.head {
		if t.Code >= 310 && t.Code <= 319 {
			if b, ok := t.Value.(Binary); ok {
				data = append(data, b...)
			}
		}
	}
	l.doc.Thumbnail = data
}
