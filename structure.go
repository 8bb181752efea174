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

import "io"

// Section names in conventional file order.
var sectionOrder = []string{
	"HEADER", "CLASSES", "TABLES", "BLOCKS", "ENTITIES", "OBJECTS",
	"THUMBNAILIMAGE", "ACDSDATA",
}

var knownSections = map[string]bool{
	"HEADER": true, "CLASSES": true, "TABLES": true, "BLOCKS": true,
	"ENTITIES": true, "OBJECTS": true, "THUMBNAILIMAGE": true,
	"ACDSDATA": true,
}

// tagStream is a compiled tag sequence together with the source line of
// each tag, used for error reporting during structural assembly.
type tagStream struct {
	tags  Tags
	lines []int
}

// tagGroup is the tag run of a single entity or structural unit.  The
// first tag always has group code 0.
type tagGroup struct {
	tags Tags
	line int
}

// dxfType returns the entity type name of the group.
func (g tagGroup) dxfType() string {
	if len(g.tags) == 0 {
		return ""
	}
	return g.tags[0].Text()
}

// section is one SECTION/ENDSEC unit.  head holds the tags between the
// section name and the first code 0 tag; for the HEADER and
// THUMBNAILIMAGE sections this is the entire payload.
type section struct {
	name   string
	line   int
	head   Tags
	groups []tagGroup
}

// assembleSections groups a flat tag sequence into sections, validating
// the SECTION/ENDSEC structure.  Tags found outside any section are
// discarded with a warning rather than aborting the load, since files in
// the wild routinely contain stray tags.
func assembleSections(ts *tagStream) (map[string]*section, []Repair, error) {
	sections := make(map[string]*section)
	var warnings []Repair

	lineOf := func(i int) int {
		if i < len(ts.lines) {
			return ts.lines[i]
		}
		return 0
	}

	i := 0
	n := len(ts.tags)
	for i < n {
		t := ts.tags[i]
		if t.Code != 0 {
			warnings = append(warnings, Repair{
				Kind:    RepairStrayTag,
				Line:    lineOf(i),
				Message: "tag outside of any section discarded: " + t.String(),
			})
			i++
			continue
		}
		switch t.Text() {
		case "SECTION":
			sec, next, err := readSection(ts, i)
			if err != nil {
				return nil, warnings, err
			}
			if _, exists := sections[sec.name]; exists {
				return nil, warnings, &StructureError{
					Line: sec.line,
					Msg:  "duplicate section " + sec.name,
				}
			}
			if !knownSections[sec.name] {
				warnings = append(warnings, Repair{
					Kind:    RepairUnsupportedSection,
					Line:    sec.line,
					Message: "unsupported section " + sec.name + " discarded",
				})
			} else {
				sections[sec.name] = sec
			}
			i = next
		case "ENDSEC":
			return nil, warnings, &StructureError{
				Line: lineOf(i),
				Msg:  "ENDSEC without matching SECTION",
			}
		default:
			warnings = append(warnings, Repair{
				Kind:    RepairStrayTag,
				Line:    lineOf(i),
				Message: "tag outside of any section discarded: " + t.String(),
			})
			i++
		}
	}

	if len(sections) == 0 {
		return nil, warnings, &MalformedFileError{
			Err: &StructureError{Msg: "no sections found"},
		}
	}
	return sections, warnings, nil
}

// readSection assembles one section starting at the (0, SECTION) tag at
// index i.  It returns the section and the index of the first tag after
// the matching ENDSEC.
func readSection(ts *tagStream, i int) (*section, int, error) {
	lineOf := func(j int) int {
		if j < len(ts.lines) {
			return ts.lines[j]
		}
		return 0
	}

	secLine := lineOf(i)
	i++ // skip (0, SECTION)
	if i >= len(ts.tags) || ts.tags[i].Code != codeName {
		return nil, 0, &StructureError{
			Line: secLine,
			Msg:  "SECTION tag without section name",
		}
	}
	sec := &section{name: ts.tags[i].Text(), line: secLine}
	i++

	// head: tags before the first code 0 tag
	start := i
	for i < len(ts.tags) && ts.tags[i].Code != 0 {
		i++
	}
	sec.head = ts.tags[start:i]

	// groups: code 0 delimited entity runs
	for i < len(ts.tags) {
		t := ts.tags[i]
		switch t.Text() {
		case "ENDSEC":
			return sec, i + 1, nil
		case "SECTION":
			return nil, 0, &StructureError{
				Line: lineOf(i),
				Msg:  "SECTION inside section " + sec.name,
			}
		}
		group := tagGroup{line: lineOf(i)}
		start := i
		i++
		for i < len(ts.tags) && ts.tags[i].Code != 0 {
			i++
		}
		group.tags = ts.tags[start:i]
		sec.groups = append(sec.groups, group)
	}
	return nil, 0, &StructureError{
		Line: secLine,
		Msg:  "section " + sec.name + " is missing its ENDSEC tag",
	}
}

// rawTable is one TABLE/ENDTAB unit from the TABLES section.
type rawTable struct {
	name    string
	line    int
	head    Tags // tags of the table header itself (handle, owner, 70)
	entries []tagGroup
}

// assembleTables validates the TABLE/ENDTAB structure of the TABLES
// section and groups the contained table entries.  A table may contain
// only entries matching its declared type.
func assembleTables(sec *section) ([]*rawTable, error) {
	var tables []*rawTable
	var cur *rawTable

	for _, g := range sec.groups {
		switch g.dxfType() {
		case "TABLE":
			if cur != nil {
				return nil, &StructureError{
					Line: g.line,
					Msg:  "TABLE inside table " + cur.name,
				}
			}
			name, ok := g.tags.Get(codeName)
			if !ok {
				return nil, &StructureError{
					Line: g.line,
					Msg:  "TABLE tag without table name",
				}
			}
			cur = &rawTable{
				name: name.Text(),
				line: g.line,
				head: g.tags[1:],
			}
		case "ENDTAB":
			if cur == nil {
				return nil, &StructureError{
					Line: g.line,
					Msg:  "ENDTAB without matching TABLE",
				}
			}
			tables = append(tables, cur)
			cur = nil
		default:
			if cur == nil {
				return nil, &StructureError{
					Line: g.line,
					Msg:  "table entry outside of any table: " + g.dxfType(),
				}
			}
			if g.dxfType() != cur.name {
				return nil, &StructureError{
					Line: g.line,
					Msg: "entry of type " + g.dxfType() +
						" in table " + cur.name,
				}
			}
			cur.entries = append(cur.entries, g)
		}
	}
	if cur != nil {
		return nil, &StructureError{
			Line: cur.line,
			Msg:  "table " + cur.name + " is missing its ENDTAB tag",
		}
	}
	return tables, nil
}

// loadTagStream compiles raw bytes into a tag stream, detecting the
// binary flavour and the text code page.
func loadTagStream(data []byte) (*tagStream, error) {
	if isBinaryDXF(data) {
		bs, err := newBinaryScanner(data)
		if err != nil {
			return nil, err
		}
		version, codePage := detectParameters(data)
		return collectTags(bs.readTag, stringDecoder(version, codePage))
	}

	version, codePage := detectParameters(data)
	s := newScanner(data)
	return collectTags(s.readTag, stringDecoder(version, codePage))
}

func collectTags(src func() (rawTag, error), decode func([]byte) (string, error)) (*tagStream, error) {
	c := newTagCompiler(src, decode)
	ts := &tagStream{}
	for {
		tag, line, err := c.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ts.tags = append(ts.tags, tag)
		ts.lines = append(ts.lines, line)
	}
	return ts, nil
}
