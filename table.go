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

// tableOrder is the order in which tables are written to the TABLES
// section.
var tableOrder = []string{
	"VPORT", "LTYPE", "LAYER", "STYLE", "VIEW", "UCS",
	"APPID", "DIMSTYLE", "BLOCK_RECORD",
}

// A Table is one table of the TABLES section, for example the layer
// table.  Entries keep their file order; lookup by name is
// case-insensitive.
type Table struct {
	doc  *Document
	name string

	handle  Handle
	entries []TableEntry
	index   map[string]TableEntry
}

func tableKey(name string) string { return strings.ToUpper(name) }

func newTable(doc *Document, name string) *Table {
	return &Table{
		doc:   doc,
		name:  name,
		index: make(map[string]TableEntry),
	}
}

// Name returns the table's type name, for example "LAYER".
func (t *Table) Name() string { return t.name }

// Handle returns the handle of the table head.
func (t *Table) Handle() Handle { return t.handle }

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// All returns the entries in file order.  The returned slice must not
// be modified.
func (t *Table) All() []TableEntry { return t.entries }

// Get returns the entry with the given name.  Names are compared
// case-insensitively.
func (t *Table) Get(name string) (TableEntry, bool) {
	e, ok := t.index[tableKey(name)]
	return e, ok
}

// Has reports whether an entry with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Add appends an entry to the table.  The entry is assigned a handle
// if it does not have one yet, and its owner is set to the table head.
// Entry names must be unique within the table.
func (t *Table) Add(e TableEntry) error {
	key := tableKey(e.Name())
	if key == "" {
		return fmt.Errorf("%s table: entry has no name", t.name)
	}
	if _, exists := t.index[key]; exists {
		return fmt.Errorf("%s table: duplicate entry %q", t.name, e.Name())
	}
	if err := t.doc.addEntity(e); err != nil {
		return err
	}
	e.SetOwner(t.handle)
	t.entries = append(t.entries, e)
	t.index[key] = e
	return nil
}

// Remove deletes the entry with the given name from the table and from
// the entity database.  Removing a missing entry is a no-op.
func (t *Table) Remove(name string) {
	key := tableKey(name)
	e, ok := t.index[key]
	if !ok {
		return
	}
	delete(t.index, key)
	for i, cur := range t.entries {
		if cur == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	t.doc.db.Delete(e.Handle())
}

// Tables is the set of resource tables of a document.
type Tables struct {
	VPorts       *Table
	Linetypes    *Table
	Layers       *Table
	TextStyles   *Table
	Views        *Table
	UCSs         *Table
	AppIDs       *Table
	DimStyles    *Table
	BlockRecords *Table

	byName map[string]*Table
}

func newTables(doc *Document) *Tables {
	ts := &Tables{
		VPorts:       newTable(doc, "VPORT"),
		Linetypes:    newTable(doc, "LTYPE"),
		Layers:       newTable(doc, "LAYER"),
		TextStyles:   newTable(doc, "STYLE"),
		Views:        newTable(doc, "VIEW"),
		UCSs:         newTable(doc, "UCS"),
		AppIDs:       newTable(doc, "APPID"),
		DimStyles:    newTable(doc, "DIMSTYLE"),
		BlockRecords: newTable(doc, "BLOCK_RECORD"),
	}
	ts.byName = map[string]*Table{
		"VPORT":        ts.VPorts,
		"LTYPE":        ts.Linetypes,
		"LAYER":        ts.Layers,
		"STYLE":        ts.TextStyles,
		"VIEW":         ts.Views,
		"UCS":          ts.UCSs,
		"APPID":        ts.AppIDs,
		"DIMSTYLE":     ts.DimStyles,
		"BLOCK_RECORD": ts.BlockRecords,
	}
	return ts
}

// Get returns the table with the given type name, or nil for unknown
// names.
func (ts *Tables) Get(name string) *Table {
	return ts.byName[tableKey(name)]
}
