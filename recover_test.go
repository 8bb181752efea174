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
	"testing"
)

func hasRepair(report *Report, kind RepairKind) bool {
	for _, r := range report.Repairs {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

func TestRecoverCleanFile(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Modelspace().Append(NewLine(Point{}, Point{X: 1})); err != nil {
		t.Fatal(err)
	}
	buf := &strings.Builder{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}

	doc2, report, err := RecoverBytes([]byte(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !report.Clean() {
		t.Errorf("unexpected repairs:\n%s", report)
	}
	if doc2.Modelspace().Len() != 1 {
		t.Errorf("got %d entities, want 1", doc2.Modelspace().Len())
	}
}

func TestRecoverMalformedTags(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "LINE",
		" 10", "not a number",
		" 11", "3.0", " 21", "4.0", " 31", "0.0",
		"  0", "ENDSEC",
		"  0", "EOF",
	}, "\r\n")

	// the strict loader must refuse the file
	if _, err := ReadBytes([]byte(src)); err == nil {
		t.Error("strict load of a damaged file succeeded")
	}

	doc, report, err := RecoverBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if !hasRepair(report, RepairMalformedTag) {
		t.Errorf("missing malformed tag repair:\n%s", report)
	}
	if doc.Modelspace().Len() != 1 {
		t.Fatalf("got %d entities, want 1", doc.Modelspace().Len())
	}
	line := doc.Modelspace().Entities()[0].(*Line)
	if line.End.X != 3 || line.End.Y != 4 {
		t.Errorf("end point %v after recovery", line.End)
	}
}

func TestRecoverMissingEndsec(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "LINE",
		" 10", "0.0", " 20", "0.0",
		" 11", "1.0", " 21", "0.0",
		"  0", "EOF",
	}, "\r\n")

	if _, err := ReadBytes([]byte(src)); err == nil {
		t.Error("strict load of an unterminated section succeeded")
	}

	doc, report, err := RecoverBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if !hasRepair(report, RepairStructure) {
		t.Errorf("missing structure repair:\n%s", report)
	}
	if doc.Modelspace().Len() != 1 {
		t.Errorf("got %d entities, want 1", doc.Modelspace().Len())
	}
}

func TestRecoverDuplicateHandles(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "LINE", "  5", "20",
		" 10", "0.0", " 20", "0.0",
		" 11", "1.0", " 21", "0.0",
		"  0", "LINE", "  5", "20",
		" 10", "2.0", " 20", "0.0",
		" 11", "3.0", " 21", "0.0",
		"  0", "ENDSEC",
		"  0", "EOF",
	}, "\r\n")

	if _, err := ReadBytes([]byte(src)); err == nil {
		t.Error("strict load with duplicate handles succeeded")
	}

	doc, report, err := RecoverBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if !hasRepair(report, RepairDuplicateHandle) {
		t.Errorf("missing duplicate handle repair:\n%s", report)
	}
	ms := doc.Modelspace()
	if ms.Len() != 2 {
		t.Fatalf("got %d entities, want 2", ms.Len())
	}
	if ms.Entities()[0].Handle() == ms.Entities()[1].Handle() {
		t.Error("duplicate handle not reassigned")
	}
}

func TestRecoverFabricatesDefaults(t *testing.T) {
	src := strings.Join([]string{
		"  0", "SECTION", "  2", "ENTITIES",
		"  0", "CIRCLE",
		"  8", "MissingLayer",
		" 10", "0.0", " 20", "0.0",
		" 40", "1.0",
		"  0", "ENDSEC",
		"  0", "EOF",
	}, "\r\n")

	doc, report, err := RecoverBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if !hasRepair(report, RepairMissingTable) {
		t.Errorf("missing fabricated table repair:\n%s", report)
	}
	if !doc.Tables.Layers.Has("0") {
		t.Error("layer 0 not fabricated")
	}
	if !doc.Tables.Linetypes.Has("Continuous") {
		t.Error("linetype Continuous not fabricated")
	}

	// the undefined layer reference must have been redirected
	if !hasRepair(report, RepairUndefinedResource) {
		t.Errorf("missing undefined resource repair:\n%s", report)
	}
	circle := doc.Modelspace().Entities()[0].(*Circle)
	if circle.Layer != "0" {
		t.Errorf("layer %q, want \"0\"", circle.Layer)
	}
}

func TestRecoverDanglingPointer(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	line := NewLine(Point{}, Point{X: 1})
	if err := doc.Modelspace().Append(line); err != nil {
		t.Fatal(err)
	}
	line.Reactors = append(line.Reactors, Handle(0xBEEF))

	buf := &strings.Builder{}
	if err := doc.Write(buf); err != nil {
		t.Fatal(err)
	}

	doc2, report, err := RecoverBytes([]byte(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !hasRepair(report, RepairDanglingPointer) {
		t.Errorf("missing dangling pointer repair:\n%s", report)
	}
	line2 := doc2.Entity(line.Handle()).(*Line)
	if len(line2.Reactors) != 0 {
		t.Error("dangling reactor survived recovery")
	}
}

func TestRecoverGarbage(t *testing.T) {
	cases := []string{
		"",
		"complete nonsense\nwithout any structure\n",
		"  0\nEOF\n",
	}
	for _, src := range cases {
		_, _, err := RecoverBytes([]byte(src))
		if err == nil {
			t.Errorf("%q: recovery succeeded on garbage", src)
		}
	}
}
