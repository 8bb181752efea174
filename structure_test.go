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
	"strings"
	"testing"
)

func section2(name string, body ...string) string {
	lines := []string{"  0", "SECTION", "  2", name}
	lines = append(lines, body...)
	lines = append(lines, "  0", "ENDSEC")
	return strings.Join(lines, "\n") + "\n"
}

func TestAssembleSections(t *testing.T) {
	src := section2("HEADER", "  9", "$ACADVER", "  1", "AC1015") +
		section2("ENTITIES",
			"  0", "LINE", " 10", "0.0", " 20", "0.0",
			"  0", "CIRCLE", " 40", "2.0")
	ts, err := loadTagStream([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	sections, warnings, err := assembleSections(ts)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	// the section name tag is not part of the head
	if got := len(sections["HEADER"].head); got != 2 {
		t.Errorf("HEADER head has %d tags, want 2", got)
	}
	if tag, ok := sections["HEADER"].head.Get(9); !ok || tag.Text() != "$ACADVER" {
		t.Errorf("HEADER head starts with %v", sections["HEADER"].head)
	}
	ent := sections["ENTITIES"]
	if len(ent.groups) != 2 {
		t.Fatalf("ENTITIES has %d groups, want 2", len(ent.groups))
	}
	if ent.groups[0].dxfType() != "LINE" || ent.groups[1].dxfType() != "CIRCLE" {
		t.Errorf("wrong group types %q, %q",
			ent.groups[0].dxfType(), ent.groups[1].dxfType())
	}
}

func TestAssembleSectionErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "duplicate section",
			src:  section2("ENTITIES") + section2("ENTITIES"),
		},
		{
			name: "stray ENDSEC",
			src:  "  0\nENDSEC\n" + section2("ENTITIES"),
		},
		{
			name: "missing ENDSEC",
			src:  "  0\nSECTION\n  2\nENTITIES\n",
		},
		{
			name: "nested SECTION",
			src:  "  0\nSECTION\n  2\nENTITIES\n  0\nSECTION\n  2\nBLOCKS\n  0\nENDSEC\n",
		},
		{
			name: "no sections",
			src:  "  0\nLINE\n",
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			ts, err := loadTagStream([]byte(test.src))
			if err != nil {
				t.Fatal(err)
			}
			_, _, err = assembleSections(ts)
			if err == nil {
				t.Error("missing error")
			}
			var sErr *StructureError
			var mErr *MalformedFileError
			if !errors.As(err, &sErr) && !errors.As(err, &mErr) {
				t.Errorf("unexpected error type %T", err)
			}
		})
	}
}

func TestStrayTagWarning(t *testing.T) {
	src := " 62\n7\n" + section2("ENTITIES")
	ts, err := loadTagStream([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	_, warnings, err := assembleSections(ts)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Kind != RepairStrayTag {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestAssembleTables(t *testing.T) {
	src := section2("TABLES",
		"  0", "TABLE", "  2", "LAYER", " 70", "2",
		"  0", "LAYER", "  2", "0", " 70", "0",
		"  0", "LAYER", "  2", "Walls", " 70", "0",
		"  0", "ENDTAB")
	ts, err := loadTagStream([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	sections, _, err := assembleSections(ts)
	if err != nil {
		t.Fatal(err)
	}
	tables, err := assembleTables(sections["TABLES"])
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	if tables[0].name != "LAYER" || len(tables[0].entries) != 2 {
		t.Errorf("got table %q with %d entries",
			tables[0].name, len(tables[0].entries))
	}
}

func TestAssembleTableErrors(t *testing.T) {
	cases := []struct {
		name string
		body []string
	}{
		{
			name: "entry outside table",
			body: []string{"  0", "LAYER", "  2", "0"},
		},
		{
			name: "mismatched entry type",
			body: []string{
				"  0", "TABLE", "  2", "LAYER",
				"  0", "LTYPE", "  2", "Dashed",
				"  0", "ENDTAB",
			},
		},
		{
			name: "missing ENDTAB",
			body: []string{"  0", "TABLE", "  2", "LAYER"},
		},
		{
			name: "stray ENDTAB",
			body: []string{"  0", "ENDTAB"},
		},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			ts, err := loadTagStream([]byte(section2("TABLES", test.body...)))
			if err != nil {
				t.Fatal(err)
			}
			sections, _, err := assembleSections(ts)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := assembleTables(sections["TABLES"]); err == nil {
				t.Error("missing error")
			}
		})
	}
}
