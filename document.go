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
	"strings"
)

// Document is an in-memory DXF drawing.  Use [New] to create an empty
// drawing, or [Read] and [Open] to load one from a file.
//
// A Document may be read from several goroutines at the same time, but
// mutation requires exclusive access.
type Document struct {
	// Version is the drawing's DXF version.  [Document.Write] uses
	// this version unless overridden with WriteAs.
	Version Version

	Header *Header
	Tables *Tables
	Blocks *Blocks

	db *entityDB

	rootDict *Dictionary
	objects  []Entity

	layouts []*Layout

	// Thumbnail is the raw THUMBNAILIMAGE section payload, or nil.
	Thumbnail []byte

	// raw payloads of the CLASSES and ACDSDATA sections, preserved
	// verbatim across a load/save cycle
	classes  Tags
	acdsData Tags
}

// New creates an empty document with the mandatory resources: layer
// "0", the three built-in linetypes, the "Standard" text and dimension
// styles, modelspace and one paperspace layout.
func New(version Version) (*Document, error) {
	doc := &Document{
		Version: version,
		Header:  NewHeader(),
		db:      newEntityDB(),
	}
	doc.Tables = newTables(doc)
	for _, name := range tableOrder {
		doc.Tables.Get(name).handle = doc.db.NextHandle()
	}
	doc.Blocks = newBlocks(doc)

	doc.rootDict = &Dictionary{}
	if err := doc.addEntity(doc.rootDict); err != nil {
		return nil, err
	}
	doc.objects = append(doc.objects, doc.rootDict)

	layoutDict := &Dictionary{HardOwned: true}
	if err := doc.AddObject(doc.rootDict.Handle(), layoutDict); err != nil {
		return nil, err
	}
	doc.rootDict.Put("ACAD_LAYOUT", layoutDict.Handle())

	for _, lt := range []*Linetype{
		NewLinetype("ByBlock", ""),
		NewLinetype("ByLayer", ""),
		NewLinetype("Continuous", "Solid line"),
	} {
		if err := doc.Tables.Linetypes.Add(lt); err != nil {
			return nil, err
		}
	}
	if err := doc.Tables.Layers.Add(NewLayer("0")); err != nil {
		return nil, err
	}
	if err := doc.Tables.TextStyles.Add(NewTextStyle("Standard", "txt")); err != nil {
		return nil, err
	}
	if err := doc.Tables.DimStyles.Add(NewDimStyle("Standard")); err != nil {
		return nil, err
	}
	if err := doc.Tables.AppIDs.Add(NewAppID("ACAD")); err != nil {
		return nil, err
	}
	if err := doc.Tables.VPorts.Add(NewVPort("*Active")); err != nil {
		return nil, err
	}

	if err := doc.newLayout("Model", "*Model_Space", 0, layoutDict); err != nil {
		return nil, err
	}
	if err := doc.newLayout("Layout1", "*Paper_Space", 1, layoutDict); err != nil {
		return nil, err
	}

	doc.Header.Set("$INSUNITS", Tag{Code: 70, Value: Integer(0)})
	doc.Header.Set("$MEASUREMENT", Tag{Code: 70, Value: Integer(0)})
	doc.Header.SetExtents(Point{}, Point{})

	return doc, nil
}

// newLayout creates a layout block, its LAYOUT object and the wrapper,
// and registers the layout in the layout dictionary.
func (d *Document) newLayout(name, blockName string, tabOrder int, layoutDict *Dictionary) error {
	block, err := d.Blocks.New(blockName)
	if err != nil {
		return err
	}
	obj := &LayoutObject{
		name:              name,
		TabOrder:          tabOrder,
		BlockRecordHandle: block.Record.Handle(),
	}
	if err := d.AddObject(layoutDict.Handle(), obj); err != nil {
		return err
	}
	layoutDict.Put(name, obj.Handle())
	block.Record.LayoutHandle = obj.Handle()

	d.layouts = append(d.layouts, &Layout{doc: d, Object: obj, block: block})
	return nil
}

// addEntity assigns a handle to the entity if it has none and
// registers it in the handle index.  Re-adding a registered entity is
// a no-op.
func (d *Document) addEntity(e Entity) error {
	if e.Handle() == 0 {
		e.common().setHandle(d.db.NextHandle())
	}
	return d.db.Insert(e)
}

// AddObject registers an object for the OBJECTS section, with the
// given owner.  Use the root dictionary's handle to place the object
// at the top level.
func (d *Document) AddObject(owner Handle, e Entity) error {
	if err := d.addEntity(e); err != nil {
		return err
	}
	e.SetOwner(owner)
	d.objects = append(d.objects, e)
	return nil
}

// RootDictionary returns the drawing's root dictionary.
func (d *Document) RootDictionary() *Dictionary { return d.rootDict }

// Objects returns the objects of the OBJECTS section in file order.
// The returned slice must not be modified.
func (d *Document) Objects() []Entity { return d.objects }

// Entity returns the entity with the given handle, or nil.
func (d *Document) Entity(h Handle) Entity {
	return d.db.Get(h)
}

// ResolvePointer returns the entity a pointer tag refers to.  A zero
// handle and a handle with no registered entity both yield a
// [DanglingPointerError].
func (d *Document) ResolvePointer(h Handle) (Entity, error) {
	if h == 0 {
		return nil, &DanglingPointerError{Handle: h}
	}
	e := d.db.Get(h)
	if e == nil {
		return nil, &DanglingPointerError{Handle: h}
	}
	return e, nil
}

// NumEntities returns the number of registered entities and objects.
func (d *Document) NumEntities() int { return d.db.Len() }

// Layouts returns all layouts, modelspace first.
func (d *Document) Layouts() []*Layout { return d.layouts }

// Layout returns the layout with the given tab name, or nil.
func (d *Document) Layout(name string) *Layout {
	for _, l := range d.layouts {
		if strings.EqualFold(l.Name(), name) {
			return l
		}
	}
	return nil
}

// Modelspace returns the modelspace layout.
func (d *Document) Modelspace() *Layout {
	if l := d.Layout("Model"); l != nil {
		return l
	}
	if len(d.layouts) > 0 {
		return d.layouts[0]
	}
	return nil
}

// Paperspace returns the first paperspace layout, or nil for documents
// without one.
func (d *Document) Paperspace() *Layout {
	for _, l := range d.layouts {
		if l != d.Modelspace() {
			return l
		}
	}
	return nil
}

// Delete removes an entity from the document.  All back references to
// the entity are scrubbed in the same step: reactor lists and
// extension dictionary pointers of other entities, and dictionary
// entries pointing at the deleted handle.  Sub-entities (polyline
// vertices, block attributes) are deleted along with their parent.
// Deleting an entity twice, or an entity that was never added, is a
// no-op.
func (d *Document) Delete(e Entity) {
	h := e.Handle()
	if h == 0 || d.db.Get(h) != e {
		return
	}

	switch e := e.(type) {
	case *Polyline:
		for _, v := range e.Vertices {
			d.Delete(v)
		}
		if e.SeqEnd != nil {
			d.Delete(e.SeqEnd)
		}
	case *Insert:
		for _, a := range e.Attribs {
			d.Delete(a)
		}
		if e.SeqEnd != nil {
			d.Delete(e.SeqEnd)
		}
	}

	d.db.Delete(h)
	for _, def := range d.Blocks.All() {
		def.remove(e)
	}
	for i, cur := range d.objects {
		if cur == e {
			d.objects = append(d.objects[:i], d.objects[i+1:]...)
			break
		}
	}

	d.db.all(func(other Entity) {
		other.common().removeReference(h)
		if dict, ok := other.(*Dictionary); ok {
			dict.removeHandle(h)
		}
	})
}

// blockInUse reports whether any INSERT or DIMENSION in the document
// references the named block.
func (d *Document) blockInUse(name string) bool {
	inUse := false
	d.db.all(func(e Entity) {
		switch e := e.(type) {
		case *Insert:
			if strings.EqualFold(e.BlockName, name) {
				inUse = true
			}
		case *Dimension:
			if strings.EqualFold(e.GeometryBlock, name) {
				inUse = true
			}
		}
	})
	return inUse
}
