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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// cycle writes doc at the given version and loads the result again.
func cycle(t *testing.T, doc *Document, v Version) *Document {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := doc.WriteAs(buf, v); err != nil {
		t.Fatal(err)
	}
	doc2, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return doc2
}

var entityDiffOpts = []cmp.Option{
	cmp.AllowUnexported(commonData{}, graphicsData{}, OptionalInt{},
		Line{}, Circle{}, Arc{}, Text{}, MText{}, LWPolyline{}, Insert{},
		Spline{}, Solid{}, PointEntity{}),
}

func TestRoundTripEntities(t *testing.T) {
	entities := []Entity{
		NewLine(Point{X: 1, Y: 2, Z: 3}, Point{X: 4, Y: 5, Z: 6}),
		NewCircle(Point{X: 1, Y: 1, Flat: true}, 2.5),
		NewArc(Point{Flat: true}, 1, 30, 120),
		NewText("hello", Point{X: 2, Y: 3, Flat: true}, 0.25),
		NewMText("first line\\Psecond line", Point{Flat: true}, 0.25),
		NewLWPolyline(
			LWPoint{X: 0, Y: 0},
			LWPoint{X: 1, Y: 0, Bulge: 0.5},
			LWPoint{X: 1, Y: 1},
		),
		NewSpline(3,
			[]Point{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: -1}, {X: 3}},
			[]float64{0, 0, 0, 0, 1, 1, 1, 1}),
	}

	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()
	for _, e := range entities {
		if err := ms.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	doc2 := cycle(t, doc, R2018)
	ms2 := doc2.Modelspace()
	if ms2.Len() != len(entities) {
		t.Fatalf("got %d entities, want %d", ms2.Len(), len(entities))
	}
	for i, want := range entities {
		got := ms2.Entities()[i]
		if d := cmp.Diff(want, got, entityDiffOpts...); d != "" {
			t.Errorf("entity %d differs (-want +got):\n%s", i, d)
		}
	}
}

func TestRoundTripKeepsHandles(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	line := NewLine(Point{}, Point{X: 1})
	if err := doc.Modelspace().Append(line); err != nil {
		t.Fatal(err)
	}

	doc2 := cycle(t, doc, R2018)
	got := doc2.Entity(line.Handle())
	if got == nil {
		t.Fatalf("handle %s lost in round trip", line.Handle())
	}
	if got.DXFType() != "LINE" {
		t.Errorf("handle %s now refers to %s", line.Handle(), got.DXFType())
	}
	if got.Owner() != doc2.Modelspace().Block().Record.Handle() {
		t.Error("owner does not point to the modelspace block record")
	}
}

func TestVersionGating(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()
	if err := ms.Append(NewLine(Point{}, Point{X: 1})); err != nil {
		t.Fatal(err)
	}
	if err := ms.Append(NewLWPolyline(LWPoint{}, LWPoint{X: 1})); err != nil {
		t.Fatal(err)
	}

	// LWPOLYLINE requires R2000 and must be dropped from an R12 file
	doc2 := cycle(t, doc, R12)
	var types []string
	for _, e := range doc2.Modelspace().Entities() {
		types = append(types, e.DXFType())
	}
	if d := cmp.Diff([]string{"LINE"}, types); d != "" {
		t.Errorf("wrong R12 entities (-want +got):\n%s", d)
	}

	doc3 := cycle(t, doc, R2018)
	if doc3.Modelspace().Len() != 2 {
		t.Errorf("got %d R2018 entities, want 2", doc3.Modelspace().Len())
	}
}

func TestWriteVersionTags(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	line := NewLine(Point{}, Point{X: 1})
	line.Lineweight = 50
	line.TrueColor.Set(0x336699)
	if err := doc.Modelspace().Append(line); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		version Version
		tag     string
		want    bool
	}{
		{R12, "100\r\n", false},  // no subclass markers before R13
		{R13, "100\r\n", true},
		{R12, "370\r\n", false},  // lineweight needs R2000
		{R2000, "370\r\n", true},
		{R2000, "420\r\n", false}, // true color needs R2004
		{R2004, "420\r\n", true},
	}
	for _, test := range cases {
		buf := &bytes.Buffer{}
		if err := doc.WriteAs(buf, test.version); err != nil {
			t.Fatal(err)
		}
		got := strings.Contains(buf.String(), test.tag)
		if got != test.want {
			t.Errorf("%s: contains(%q) = %t, want %t",
				test.version, strings.TrimSpace(test.tag), got, test.want)
		}
	}
}

func TestUnknownEntityPreserved(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "HEADER",
		"  9", "$ACADVER", "  1", "AC1015",
		"  0", "ENDSEC",
		"  0", "SECTION", "  2", "TABLES",
		"  0", "TABLE", "  2", "LAYER", " 70", "1",
		"  0", "LAYER", "  5", "10", "  2", "0", " 70", "0",
		"  0", "ENDTAB",
		"  0", "ENDSEC",
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "WIPEOUT",
		"  5", "20",
		"100", "AcDbEntity",
		"  8", "0",
		"100", "AcDbWipeout",
		" 90", "3",
		"  0", "ENDSEC",
		"  0", "EOF",
	}, "\r\n")

	doc, err := ReadBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()
	if ms.Len() != 1 {
		t.Fatalf("got %d entities, want 1", ms.Len())
	}
	u, ok := ms.Entities()[0].(*Unknown)
	if !ok {
		t.Fatalf("got %T, want *Unknown", ms.Entities()[0])
	}
	if u.DXFType() != "WIPEOUT" {
		t.Errorf("wrong type %q", u.DXFType())
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, snippet := range []string{"WIPEOUT", "AcDbWipeout"} {
		if !strings.Contains(out, snippet) {
			t.Errorf("output is missing %q", snippet)
		}
	}

	doc2, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	u2 := doc2.Modelspace().Entities()[0].(*Unknown)
	if d := cmp.Diff(u.Tags(), u2.Tags()); d != "" {
		t.Errorf("unknown entity tags differ (-want +got):\n%s", d)
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()

	pl := NewPolyline()
	if err := ms.Append(pl); err != nil {
		t.Fatal(err)
	}
	pl.AppendVertex(Point{})
	pl.AppendVertex(Point{X: 1})
	pl.AppendVertex(Point{X: 1, Y: 1})
	for _, v := range pl.Vertices {
		if err := doc.addEntity(v); err != nil {
			t.Fatal(err)
		}
	}

	doc2 := cycle(t, doc, R2018)
	pl2, ok := doc2.Modelspace().Entities()[0].(*Polyline)
	if !ok {
		t.Fatalf("got %T, want *Polyline", doc2.Modelspace().Entities()[0])
	}
	if len(pl2.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(pl2.Vertices))
	}
	if pl2.SeqEnd == nil {
		t.Error("missing SEQEND after round trip")
	}
}

func TestInsertRoundTrip(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	block, err := doc.Blocks.New("Door")
	if err != nil {
		t.Fatal(err)
	}
	if err := block.Append(NewLine(Point{}, Point{X: 1})); err != nil {
		t.Fatal(err)
	}

	ins := NewInsert("Door", Point{X: 5, Y: 5, Flat: true})
	ins.Rotation = 90
	if err := doc.Modelspace().Append(ins); err != nil {
		t.Fatal(err)
	}
	attrib := NewAttrib("ROOM", "101", Point{X: 5, Y: 6, Flat: true}, 0.2)
	if err := doc.addEntity(attrib); err != nil {
		t.Fatal(err)
	}
	ins.Attribs = append(ins.Attribs, attrib)

	doc2 := cycle(t, doc, R2018)
	if doc2.Blocks.Get("Door") == nil {
		t.Fatal("block lost in round trip")
	}
	ins2, ok := doc2.Modelspace().Entities()[0].(*Insert)
	if !ok {
		t.Fatalf("got %T, want *Insert", doc2.Modelspace().Entities()[0])
	}
	if ins2.BlockName != "Door" || ins2.Rotation != 90 {
		t.Errorf("wrong insert: block %q, rotation %g", ins2.BlockName, ins2.Rotation)
	}
	if len(ins2.Attribs) != 1 || ins2.Attribs[0].Tag != "ROOM" || ins2.Attribs[0].Value != "101" {
		t.Errorf("wrong attribs: %v", ins2.Attribs)
	}
}

func TestObjectsRoundTrip(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}

	xr := NewXRecord()
	ed := xr.Edit()
	ed.Append(1, String("marker"))
	ed.Append(40, Real(1.25))
	ed.Commit()
	if err := doc.AddObject(doc.RootDictionary().Handle(), xr); err != nil {
		t.Fatal(err)
	}
	doc.RootDictionary().Put("MY_DATA", xr.Handle())

	doc2 := cycle(t, doc, R2018)
	h, ok := doc2.RootDictionary().Get("MY_DATA")
	if !ok {
		t.Fatal("dictionary entry lost in round trip")
	}
	xr2, ok := doc2.Entity(h).(*XRecord)
	if !ok {
		t.Fatalf("got %T, want *XRecord", doc2.Entity(h))
	}
	want := Tags{
		{Code: 1, Value: String("marker")},
		{Code: 40, Value: Real(1.25)},
	}
	if d := cmp.Diff(want, xr2.Tags()); d != "" {
		t.Errorf("xrecord tags differ (-want +got):\n%s", d)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	doc.Header.SetExtents(
		Point{X: -1, Y: -2, Z: 0},
		Point{X: 10, Y: 20, Z: 0},
	)
	doc.Header.SetInsUnits(4)
	doc.Header.SetCurrentLayer("0")

	doc2 := cycle(t, doc, R2018)
	if doc2.Version != R2018 {
		t.Errorf("wrong version %s", doc2.Version)
	}
	if got := doc2.Header.InsUnits(); got != 4 {
		t.Errorf("wrong units %d", got)
	}
	if got := doc2.Header.ExtMax(); got.X != 10 || got.Y != 20 {
		t.Errorf("wrong extents %v", got)
	}
}

func TestMTextChunking(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	// 420 bytes of text whose 250 byte boundary falls inside a rune
	text := strings.Repeat("Grüße", 60)
	mt := NewMText(text, Point{Flat: true}, 0.25)
	if err := doc.Modelspace().Append(mt); err != nil {
		t.Fatal(err)
	}

	doc2 := cycle(t, doc, R2018)
	mt2, ok := doc2.Modelspace().Entities()[0].(*MText)
	if !ok {
		t.Fatalf("got %T, want *MText", doc2.Modelspace().Entities()[0])
	}
	if mt2.Text != text {
		t.Errorf("text damaged by chunking (%d bytes, want %d)",
			len(mt2.Text), len(text))
	}

	// MTEXT exists since R13 and must not be dropped there
	buf := &bytes.Buffer{}
	if err := doc.WriteAs(buf, R13); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "MTEXT") {
		t.Error("MTEXT dropped at R13")
	}
}

func TestClassesPreserved(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "HEADER",
		"  9", "$ACADVER", "  1", "AC1027",
		"  0", "ENDSEC",
		"  0", "SECTION", "  2", "CLASSES",
		"  0", "CLASS",
		"  1", "ACDBDICTIONARYWDFLT",
		"  2", "AcDbDictionaryWithDefault",
		" 90", "0",
		"280", "0",
		"281", "0",
		"  0", "ENDSEC",
		"  0", "SECTION", "  2", "TABLES",
		"  0", "TABLE", "  2", "LAYER", " 70", "1",
		"  0", "LAYER", "  5", "10", "  2", "0", " 70", "0",
		"  0", "ENDTAB",
		"  0", "ENDSEC",
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "ENDSEC",
		"  0", "EOF",
	}, "\r\n")

	doc, err := ReadBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.classes) == 0 {
		t.Fatal("CLASSES payload not preserved on load")
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, snippet := range []string{"CLASSES", "ACDBDICTIONARYWDFLT"} {
		if !strings.Contains(out, snippet) {
			t.Errorf("output is missing %q", snippet)
		}
	}

	doc2, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(doc.classes, doc2.classes); d != "" {
		t.Errorf("CLASSES payload differs (-want +got):\n%s", d)
	}
}
