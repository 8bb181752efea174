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
	"strings"
)

// Block flags (group code 70 of the BLOCK entity).
const (
	BlockAnonymous   = 1
	BlockHasAttribs  = 2
	BlockIsXref      = 4
	BlockXrefOverlay = 8
)

// Block is the BLOCK entity which opens a block definition.
type Block struct {
	commonData

	name string

	// Layer is the layer of the block head, almost always "0".
	Layer string

	// Flags is the block type flag word.
	Flags int

	// Base is the block base point.
	Base Point

	// XrefPath is the path of an external reference, empty for normal
	// blocks.
	XrefPath string

	// Description is an optional comment.
	Description string
}

// DXFType implements the [Entity] interface.
func (e *Block) DXFType() string { return "BLOCK" }

func (e *Block) minVersion() Version { return R12 }

// Name returns the block name.
func (e *Block) Name() string { return e.name }

func (e *Block) load(x *xtags) error {
	e.Layer = "0"
	for _, t := range x.flat() {
		switch t.Code {
		case codeName, 3:
			e.name = t.Text()
		case 8:
			e.Layer = t.Text()
		case 70:
			e.Flags = t.Int()
		case 10:
			e.Base = t.Point()
		case 1:
			e.XrefPath = t.Text()
		case 4:
			e.Description = t.Text()
		}
	}
	return nil
}

func (e *Block) export(tw *tagWriter) {
	tw.subclass("AcDbEntity")
	tw.str(8, e.Layer)
	tw.subclass("AcDbBlockBegin")
	tw.str(codeName, e.name)
	tw.intTag(70, e.Flags)
	tw.point(10, e.Base)
	tw.str(3, e.name)
	tw.str(1, e.XrefPath)
	if e.Description != "" {
		tw.str(4, e.Description)
	}
}

// EndBlk is the ENDBLK entity which closes a block definition.
type EndBlk struct {
	commonData

	Layer string
}

// DXFType implements the [Entity] interface.
func (e *EndBlk) DXFType() string { return "ENDBLK" }

func (e *EndBlk) minVersion() Version { return R12 }

func (e *EndBlk) load(x *xtags) error {
	e.Layer = "0"
	for _, t := range x.flat() {
		if t.Code == 8 {
			e.Layer = t.Text()
		}
	}
	return nil
}

func (e *EndBlk) export(tw *tagWriter) {
	tw.subclass("AcDbEntity")
	tw.str(8, e.Layer)
	tw.subclass("AcDbBlockEnd")
}

// A BlockDefinition groups the block record, the BLOCK/ENDBLK pair and
// the contained entities.  Modelspace and paperspace are block
// definitions, too; use [Document.Modelspace] and [Document.Paperspace]
// to access them.
type BlockDefinition struct {
	doc *Document

	Record *BlockRecord
	Head   *Block
	Tail   *EndBlk

	entities []Entity
}

// Name returns the block name.
func (b *BlockDefinition) Name() string { return b.Head.Name() }

// Base returns the block base point.
func (b *BlockDefinition) Base() Point { return b.Head.Base }

// Len returns the number of entities in the block.
func (b *BlockDefinition) Len() int { return len(b.entities) }

// Entities returns the block's entities in insertion order.  The
// returned slice must not be modified.
func (b *BlockDefinition) Entities() []Entity { return b.entities }

// Append adds an entity to the block.  The entity is assigned a handle
// and its owner is set to the block record, both in the same step, so
// no entity is ever registered without an owner.
func (b *BlockDefinition) Append(e Entity) error {
	if err := b.doc.addEntity(e); err != nil {
		return err
	}
	e.SetOwner(b.Record.Handle())

	// owned sub-entities are registered along with their parent
	addSub := func(sub Entity) error {
		if err := b.doc.addEntity(sub); err != nil {
			return err
		}
		sub.SetOwner(e.Handle())
		return nil
	}
	switch e := e.(type) {
	case *Polyline:
		for _, v := range e.Vertices {
			if err := addSub(v); err != nil {
				return err
			}
		}
		if e.SeqEnd != nil {
			if err := addSub(e.SeqEnd); err != nil {
				return err
			}
		}
	case *Insert:
		for _, a := range e.Attribs {
			if err := addSub(a); err != nil {
				return err
			}
		}
		if e.SeqEnd != nil {
			if err := addSub(e.SeqEnd); err != nil {
				return err
			}
		}
	}

	b.entities = append(b.entities, e)
	return nil
}

// remove drops the entity from the block's entity list.  The entity
// database is not touched; this is a helper for [Document.Delete].
func (b *BlockDefinition) remove(e Entity) {
	for i, cur := range b.entities {
		if cur == e {
			b.entities = append(b.entities[:i], b.entities[i+1:]...)
			return
		}
	}
}

// Blocks is the collection of all block definitions of a document,
// including modelspace and paperspace.
type Blocks struct {
	doc *Document

	defs  []*BlockDefinition
	index map[string]*BlockDefinition

	anonCount map[string]int
}

func newBlocks(doc *Document) *Blocks {
	return &Blocks{
		doc:       doc,
		index:     make(map[string]*BlockDefinition),
		anonCount: make(map[string]int),
	}
}

func blockKey(name string) string { return strings.ToUpper(name) }

// Len returns the number of block definitions.
func (bs *Blocks) Len() int { return len(bs.defs) }

// All returns all block definitions in file order.  The returned slice
// must not be modified.
func (bs *Blocks) All() []*BlockDefinition { return bs.defs }

// Get returns the block definition with the given name, or nil.  Names
// are compared case-insensitively.
func (bs *Blocks) Get(name string) *BlockDefinition {
	return bs.index[blockKey(name)]
}

// New creates an empty block definition with the given name.  The block
// record, BLOCK and ENDBLK entities are created and registered in the
// entity database.
func (bs *Blocks) New(name string) (*BlockDefinition, error) {
	if bs.Get(name) != nil {
		return nil, fmt.Errorf("block %q already exists", name)
	}

	record := NewBlockRecord(name)
	if err := bs.doc.addEntity(record); err != nil {
		return nil, err
	}
	record.SetOwner(bs.doc.Tables.BlockRecords.Handle())
	if err := bs.doc.Tables.BlockRecords.Add(record); err != nil {
		return nil, err
	}

	head := &Block{name: name, Layer: "0"}
	if strings.HasPrefix(name, "*") && !isLayoutBlockName(name) {
		head.Flags |= BlockAnonymous
	}
	if err := bs.doc.addEntity(head); err != nil {
		return nil, err
	}
	head.SetOwner(record.Handle())

	tail := &EndBlk{Layer: "0"}
	if err := bs.doc.addEntity(tail); err != nil {
		return nil, err
	}
	tail.SetOwner(record.Handle())

	def := &BlockDefinition{
		doc:    bs.doc,
		Record: record,
		Head:   head,
		Tail:   tail,
	}
	bs.add(def)
	return def, nil
}

// add registers an already constructed definition.  Used by New and by
// the file reader.
func (bs *Blocks) add(def *BlockDefinition) {
	def.doc = bs.doc
	bs.defs = append(bs.defs, def)
	bs.index[blockKey(def.Name())] = def
}

// Delete removes a block definition.  Modelspace, paperspace and
// blocks still referenced by an INSERT cannot be deleted.
func (bs *Blocks) Delete(name string) error {
	def := bs.Get(name)
	if def == nil {
		return nil
	}
	if isLayoutBlockName(name) {
		return errors.New("cannot delete a layout block")
	}
	if bs.doc.blockInUse(name) {
		return fmt.Errorf("block %q is still referenced", name)
	}

	for _, e := range def.entities {
		bs.doc.db.Delete(e.Handle())
	}
	bs.doc.db.Delete(def.Head.Handle())
	bs.doc.db.Delete(def.Tail.Handle())
	bs.doc.Tables.BlockRecords.Remove(name)
	bs.doc.db.Delete(def.Record.Handle())

	delete(bs.index, blockKey(name))
	for i, cur := range bs.defs {
		if cur == def {
			bs.defs = append(bs.defs[:i], bs.defs[i+1:]...)
			break
		}
	}
	return nil
}

// nextAnonymousName returns an unused anonymous block name with the
// given prefix letter, for example "*D17" for prefix "D".
func (bs *Blocks) nextAnonymousName(prefix string) string {
	for {
		bs.anonCount[prefix]++
		name := "*" + prefix + fmt.Sprint(bs.anonCount[prefix])
		if bs.Get(name) == nil {
			return name
		}
	}
}

func isLayoutBlockName(name string) bool {
	key := blockKey(name)
	return key == "*MODEL_SPACE" || strings.HasPrefix(key, "*PAPER_SPACE")
}
