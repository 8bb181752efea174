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

// DictEntry is one name/handle pair of a dictionary.
type DictEntry struct {
	Name   string
	Handle Handle
}

// Dictionary is the DICTIONARY object, an ordered mapping from names to
// object handles.  Dictionaries do not own their targets in the memory
// management sense; all entries are handle references resolved through
// the document database.
type Dictionary struct {
	commonData
	// HardOwned records whether entries are hard-owner references
	// (group code 360) or soft-owner references (group code 350).
	HardOwned bool
	// CloningFlags is the duplicate record cloning behaviour (group
	// code 281).
	CloningFlags int

	entries []DictEntry
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{CloningFlags: 1}
}

// DXFType implements the [Entity] interface.
func (e *Dictionary) DXFType() string { return "DICTIONARY" }

func (e *Dictionary) minVersion() Version { return R13 }

// Len returns the number of entries.
func (e *Dictionary) Len() int { return len(e.entries) }

// Entries returns a copy of the entry list in file order.
func (e *Dictionary) Entries() []DictEntry {
	res := make([]DictEntry, len(e.entries))
	copy(res, e.entries)
	return res
}

// Get returns the handle stored under the given name.
func (e *Dictionary) Get(name string) (Handle, bool) {
	for _, entry := range e.entries {
		if entry.Name == name {
			return entry.Handle, true
		}
	}
	return 0, false
}

// Put stores a handle under the given name, replacing any existing
// entry with that name.
func (e *Dictionary) Put(name string, h Handle) {
	for i, entry := range e.entries {
		if entry.Name == name {
			e.entries[i].Handle = h
			return
		}
	}
	e.entries = append(e.entries, DictEntry{Name: name, Handle: h})
}

// Remove deletes the entry with the given name, if present.
func (e *Dictionary) Remove(name string) {
	for i, entry := range e.entries {
		if entry.Name == name {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

// removeHandle deletes all entries pointing at the given handle.  This
// is called when the target entity is deleted from the document.
func (e *Dictionary) removeHandle(h Handle) {
	keep := e.entries[:0]
	for _, entry := range e.entries {
		if entry.Handle != h {
			keep = append(keep, entry)
		}
	}
	e.entries = keep
}

func (e *Dictionary) load(x *xtags) error {
	var name string
	haveName := false
	for _, t := range x.flat() {
		switch t.Code {
		case 3:
			name = t.Text()
			haveName = true
		case 350, 360, 340:
			if haveName {
				e.entries = append(e.entries, DictEntry{
					Name:   name,
					Handle: t.Handle(),
				})
				haveName = false
			}
			if t.Code == 360 {
				e.HardOwned = true
			}
		case 280:
			e.HardOwned = t.Int() != 0
		case 281:
			e.CloningFlags = t.Int()
		}
	}
	return nil
}

func (e *Dictionary) export(tw *tagWriter) {
	tw.subclass("AcDbDictionary")
	if e.HardOwned {
		tw.intTag(280, 1)
	}
	tw.intTag(281, e.CloningFlags)
	code := 350
	if e.HardOwned {
		code = 360
	}
	for _, entry := range e.entries {
		tw.str(3, entry.Name)
		tw.handle(code, entry.Handle)
	}
}

// XRecord is the XRECORD object, a container for arbitrary tags used by
// applications to store custom data below an extension dictionary.
type XRecord struct {
	commonData
	// CloningFlags is the duplicate record cloning behaviour (group
	// code 280).
	CloningFlags int

	tags Tags
}

// NewXRecord creates an empty xrecord.
func NewXRecord() *XRecord {
	return &XRecord{CloningFlags: 1}
}

// DXFType implements the [Entity] interface.
func (e *XRecord) DXFType() string { return "XRECORD" }

func (e *XRecord) minVersion() Version { return R2000 }

// Tags returns a copy of the xrecord's content tags.  Use
// [XRecord.Edit] to modify the content.
func (e *XRecord) Tags() Tags {
	return e.tags.Clone()
}

// Edit returns a detached editing buffer for the xrecord content.  The
// buffer is a copy; changes are written back only by Commit.
func (e *XRecord) Edit() *XRecordEditor {
	return &XRecordEditor{target: e, Tags: e.tags.Clone()}
}

// XRecordEditor is a staging buffer for editing xrecord content.
type XRecordEditor struct {
	// Tags is the staged content.  It may be modified freely.
	Tags Tags

	target *XRecord
	done   bool
}

// Append adds a tag to the staging buffer.
func (ed *XRecordEditor) Append(code int, value Value) {
	ed.Tags = append(ed.Tags, Tag{Code: code, Value: value})
}

// Commit writes the staged content back into the xrecord.  After
// Commit the editor is spent and further calls have no effect.
func (ed *XRecordEditor) Commit() {
	if ed.done {
		return
	}
	ed.done = true
	ed.target.tags = ed.Tags.Clone()
}

// Discard abandons the staged changes.
func (ed *XRecordEditor) Discard() {
	ed.done = true
}

func (e *XRecord) load(x *xtags) error {
	for _, t := range x.flat() {
		if t.Code == 280 {
			e.CloningFlags = t.Int()
			continue
		}
		e.tags = append(e.tags, t)
	}
	return nil
}

func (e *XRecord) export(tw *tagWriter) {
	tw.subclass("AcDbXrecord")
	tw.intTag(280, e.CloningFlags)
	for _, t := range e.tags {
		tw.tag(t)
	}
}
