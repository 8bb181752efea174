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
	"bufio"
	"io"
	"os"
)

// Write stores the document in ASCII DXF format, using the document's
// own version.
func (d *Document) Write(w io.Writer) error {
	return d.WriteAs(w, d.Version)
}

// WriteAs stores the document in ASCII DXF format, targeting the given
// version.  Entities which require a newer version than the target are
// silently omitted; everything else is written with the tag layout of
// the target version.
func (d *Document) WriteAs(w io.Writer, v Version) error {
	if _, err := v.Token(); err != nil {
		return err
	}

	tw := newTagWriter(w, v)
	d.writeHeader(tw)
	if v >= R13 && len(d.classes) > 0 {
		writeRawSection(tw, "CLASSES", d.classes)
	}
	d.writeTables(tw)
	d.writeBlocks(tw)
	d.writeEntities(tw)
	if v >= R13 {
		d.writeObjects(tw)
	}
	if v >= R2013 && len(d.acdsData) > 0 {
		writeRawSection(tw, "ACDSDATA", d.acdsData)
	}
	if v >= R2000 && len(d.Thumbnail) > 0 {
		d.writeThumbnail(tw)
	}
	tw.typeTag("EOF")
	return tw.flush()
}

// SaveAs writes the document to the named file.
func (d *Document) SaveAs(fname string, v Version) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := d.WriteAs(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save writes the document to the named file using the document's own
// version.
func (d *Document) Save(fname string) error {
	return d.SaveAs(fname, d.Version)
}

func (d *Document) writeHeader(tw *tagWriter) {
	token, _ := tw.version.Token()

	tw.typeTag("SECTION")
	tw.str(codeName, "HEADER")

	tw.str(9, "$ACADVER")
	tw.str(1, token)
	if tw.version < R2007 {
		tw.str(9, "$DWGCODEPAGE")
		tw.str(3, codePageToken())
	}
	tw.str(9, "$HANDSEED")
	tw.handle(codeHandle, d.db.seed())

	for _, v := range d.Header.All() {
		switch headerKey(v.Name) {
		case "$ACADVER", "$DWGCODEPAGE", "$HANDSEED":
			continue
		}
		tw.str(9, v.Name)
		for _, t := range v.Tags {
			tw.tag(t)
		}
	}
	tw.typeTag("ENDSEC")
}

func (d *Document) writeTables(tw *tagWriter) {
	tw.typeTag("SECTION")
	tw.str(codeName, "TABLES")
	for _, name := range tableOrder {
		if name == "BLOCK_RECORD" && tw.version < R13 {
			continue
		}
		d.writeTable(tw, d.Tables.Get(name))
	}
	tw.typeTag("ENDSEC")
}

func (d *Document) writeTable(tw *tagWriter, t *Table) {
	tw.typeTag("TABLE")
	tw.str(codeName, t.Name())
	tw.handle(codeHandle, t.Handle())
	tw.subclass("AcDbSymbolTable")
	tw.intTag(70, t.Len())
	for _, e := range t.All() {
		tw.entity(e)
	}
	tw.typeTag("ENDTAB")
}

func (d *Document) writeBlocks(tw *tagWriter) {
	tw.typeTag("SECTION")
	tw.str(codeName, "BLOCKS")
	for _, def := range d.Blocks.All() {
		tw.entity(def.Head)
		if !isLayoutBlockName(def.Name()) {
			for _, e := range def.Entities() {
				tw.entity(e)
			}
		}
		tw.entity(def.Tail)
	}
	tw.typeTag("ENDSEC")
}

func (d *Document) writeEntities(tw *tagWriter) {
	tw.typeTag("SECTION")
	tw.str(codeName, "ENTITIES")
	for _, l := range d.Layouts() {
		for _, e := range l.Entities() {
			tw.entity(e)
		}
	}
	tw.typeTag("ENDSEC")
}

func (d *Document) writeObjects(tw *tagWriter) {
	tw.typeTag("SECTION")
	tw.str(codeName, "OBJECTS")
	for _, e := range d.objects {
		tw.entity(e)
	}
	tw.typeTag("ENDSEC")
}

// writeRawSection replays a section payload which is carried verbatim.
func writeRawSection(tw *tagWriter, name string, tags Tags) {
	tw.typeTag("SECTION")
	tw.str(codeName, name)
	for _, t := range tags {
		tw.tag(t)
	}
	tw.typeTag("ENDSEC")
}

func (d *Document) writeThumbnail(tw *tagWriter) {
	tw.typeTag("SECTION")
	tw.str(codeName, "THUMBNAILIMAGE")
	tw.intTag(90, len(d.Thumbnail))
	data := d.Thumbnail
	for len(data) > 0 {
		n := min(len(data), 128)
		tw.tag(Tag{Code: 310, Value: Binary(data[:n])})
		data = data[n:]
	}
	tw.typeTag("ENDSEC")
}

// tagWriter serializes tags in ASCII DXF format.  Write errors are
// sticky; serialization continues after an error but only the first
// error is reported by flush.
type tagWriter struct {
	w       *bufio.Writer
	version Version
	encode  func(string) []byte
	err     error

	buf []byte
}

func newTagWriter(w io.Writer, v Version) *tagWriter {
	return &tagWriter{
		w:       bufio.NewWriter(w),
		version: v,
		encode:  stringEncoder(v),
	}
}

func (tw *tagWriter) flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Flush()
}

func (tw *tagWriter) line(code int, value []byte) {
	tw.buf = appendTagLine(tw.buf[:0], code, value)
	if _, err := tw.w.Write(tw.buf); err != nil && tw.err == nil {
		tw.err = err
	}
}

// typeTag writes a group code 0 tag, starting a new tag group.
func (tw *tagWriter) typeTag(name string) {
	tw.line(codeType, []byte(name))
}

func (tw *tagWriter) str(code int, s string) {
	tw.line(code, tw.encode(s))
}

func (tw *tagWriter) intTag(code, x int) {
	tw.line(code, Integer(x).DXF(nil))
}

func (tw *tagWriter) real(code int, x float64) {
	tw.line(code, Real(x).DXF(nil))
}

func (tw *tagWriter) handle(code int, h Handle) {
	tw.line(code, h.DXF(nil))
}

// point writes a point as two or three tags.  The Z tag is omitted for
// flat points.
func (tw *tagWriter) point(code int, p Point) {
	tw.real(code, p.X)
	tw.real(code+10, p.Y)
	if !p.Flat {
		tw.real(code+20, p.Z)
	}
}

// subclass writes a subclass marker.  Versions before R13 have no
// subclass markers; the call is a no-op there.
func (tw *tagWriter) subclass(name string) {
	if tw.version < R13 {
		return
	}
	tw.line(codeSubclass, []byte(name))
}

// tag writes a single tag, expanding points and encoding strings.
func (tw *tagWriter) tag(t Tag) {
	switch v := t.Value.(type) {
	case String:
		tw.str(t.Code, string(v))
	case Point:
		tw.point(t.Code, v)
	default:
		tw.line(t.Code, t.Value.DXF(nil))
	}
}

// entity writes a complete tag group for the entity, including the
// common groups.  Entities requiring a newer version than the writer's
// target are skipped.
func (tw *tagWriter) entity(e Entity) {
	if e.minVersion() > tw.version {
		return
	}

	tw.typeTag(e.DXFType())
	c := e.common()

	if c.handle != 0 {
		handleCode := codeHandle
		if e.DXFType() == "DIMSTYLE" {
			handleCode = codeDimStyleHandle
		}
		tw.handle(handleCode, c.handle)
	}

	if tw.version >= R13 {
		if len(c.Reactors) > 0 {
			tw.str(codeAppData, appReactors)
			for _, h := range c.Reactors {
				tw.handle(330, h)
			}
			tw.str(codeAppData, "}")
		}
		if c.XDict != 0 {
			tw.str(codeAppData, appXDict)
			tw.handle(360, c.XDict)
			tw.str(codeAppData, "}")
		}
		for _, ad := range c.AppData {
			tw.str(codeAppData, "{"+ad.AppID)
			for _, t := range ad.Tags {
				tw.tag(t)
			}
			tw.str(codeAppData, "}")
		}
		if c.owner != 0 {
			tw.handle(codeOwner, c.owner)
		}
	}

	e.export(tw)

	for _, xd := range c.XData {
		tw.str(codeXData, xd.AppID)
		for _, t := range xd.Tags {
			tw.tag(t)
		}
	}

	// VERTEX and ATTRIB sequences are separate entities in the file,
	// following their parent and terminated by a SEQEND.
	switch e := e.(type) {
	case *Polyline:
		for _, v := range e.Vertices {
			tw.entity(v)
		}
		tw.seqEnd(e.SeqEnd, &e.graphicsData)
	case *Insert:
		if len(e.Attribs) > 0 {
			for _, a := range e.Attribs {
				tw.entity(a)
			}
			tw.seqEnd(e.SeqEnd, &e.graphicsData)
		}
	}
}

// seqEnd writes the SEQEND terminating a sub-entity run, synthesizing
// one on the parent's layer if the sequence has none.
func (tw *tagWriter) seqEnd(s *SeqEnd, parent *graphicsData) {
	if s == nil {
		s = &SeqEnd{graphicsData: defaultGraphics()}
		s.Layer = parent.Layer
		s.owner = parent.owner
	}
	tw.entity(s)
}
