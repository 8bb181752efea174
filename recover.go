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
)

// RecoverFile loads a damaged DXF file, repairing what can be
// repaired.  See [Recover].
func RecoverFile(fname string) (*Document, *Report, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, nil, err
	}
	return RecoverBytes(data)
}

// Recover loads a DXF document from r in lenient mode.  Malformed
// tags are skipped, structural damage is patched over, duplicate
// handles are reassigned, missing mandatory resources are fabricated
// and dangling pointers are cleared.  Every applied fix is listed in
// the returned report.
//
// An error is returned only when the data is beyond repair, for
// example when no section structure can be found at all.  The report
// is valid even in that case.
func Recover(r io.Reader) (*Document, *Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return RecoverBytes(data)
}

// RecoverBytes is [Recover] for in-memory data.
func RecoverBytes(data []byte) (*Document, *Report, error) {
	report := &Report{}

	ts, err := loadTagStreamLenient(data, report)
	if err != nil {
		return nil, report, err
	}
	if len(ts.tags) == 0 {
		return nil, report, &MalformedFileError{
			Err: errors.New("no usable tags found"),
		}
	}

	l := &loader{report: report, lenient: true}
	doc, err := l.load(ts)
	if err != nil {
		return nil, report, err
	}

	ensureDefaults(doc, report)

	audit := doc.Audit()
	report.Repairs = append(report.Repairs, audit.Repairs...)

	return doc, report, nil
}

// loadTagStreamLenient compiles raw bytes into a tag stream, skipping
// malformed tags instead of aborting.  After a malformed tag the
// scanner resynchronizes at the next line that parses as a group code.
func loadTagStreamLenient(data []byte, report *Report) (*tagStream, error) {
	var src func() (rawTag, error)
	if isBinaryDXF(data) {
		bs, err := newBinaryScanner(data)
		if err != nil {
			return nil, err
		}
		src = bs.readTag
	} else {
		src = newScanner(data).readTag
	}

	version, codePage := detectParameters(data)
	c := newTagCompiler(src, stringDecoder(version, codePage))
	ts := &tagStream{}
	for {
		tag, line, err := c.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var tagErr *TagError
			if errors.As(err, &tagErr) {
				report.add(RepairMalformedTag, tagErr.Line, "tag skipped: %v", tagErr.Err)
				continue
			}
			report.add(RepairMalformedTag, 0, "tag skipped: %v", err)
			continue
		}
		ts.tags = append(ts.tags, tag)
		ts.lines = append(ts.lines, line)
	}
	return ts, nil
}

// salvageSections is the lenient counterpart of assembleSections.  It
// never fails: duplicate sections are merged into the first occurrence,
// stray ENDSEC tags are dropped and an unterminated section is closed
// at the next SECTION tag or at the end of input.
func salvageSections(ts *tagStream) (map[string]*section, []Repair) {
	sections := make(map[string]*section)
	var warnings []Repair

	lineOf := func(i int) int {
		if i < len(ts.lines) {
			return ts.lines[i]
		}
		return 0
	}

	var cur *section
	flush := func() {
		if cur == nil {
			return
		}
		if prev, exists := sections[cur.name]; exists {
			prev.head = append(prev.head, cur.head...)
			prev.groups = append(prev.groups, cur.groups...)
			warnings = append(warnings, Repair{
				Kind:    RepairStructure,
				Line:    cur.line,
				Message: "duplicate section " + cur.name + " merged",
			})
		} else if knownSections[cur.name] {
			sections[cur.name] = cur
		} else {
			warnings = append(warnings, Repair{
				Kind:    RepairUnsupportedSection,
				Line:    cur.line,
				Message: "unsupported section " + cur.name + " discarded",
			})
		}
		cur = nil
	}

	i := 0
	n := len(ts.tags)
	for i < n {
		t := ts.tags[i]
		if t.Code != 0 {
			if cur != nil && len(cur.groups) == 0 {
				cur.head = append(cur.head, t)
			} else if cur == nil {
				warnings = append(warnings, Repair{
					Kind:    RepairStrayTag,
					Line:    lineOf(i),
					Message: "tag outside of any section discarded: " + t.String(),
				})
			}
			i++
			continue
		}
		switch t.Text() {
		case "SECTION":
			if cur != nil {
				warnings = append(warnings, Repair{
					Kind:    RepairStructure,
					Line:    lineOf(i),
					Message: "section " + cur.name + " closed at next SECTION tag",
				})
				flush()
			}
			i++
			if i < n && ts.tags[i].Code == codeName {
				cur = &section{name: ts.tags[i].Text(), line: lineOf(i - 1)}
				i++
			} else {
				warnings = append(warnings, Repair{
					Kind:    RepairStructure,
					Line:    lineOf(i - 1),
					Message: "SECTION tag without section name discarded",
				})
			}
		case "ENDSEC":
			if cur == nil {
				warnings = append(warnings, Repair{
					Kind:    RepairStructure,
					Line:    lineOf(i),
					Message: "stray ENDSEC tag discarded",
				})
			}
			flush()
			i++
		default:
			if cur == nil {
				warnings = append(warnings, Repair{
					Kind:    RepairStrayTag,
					Line:    lineOf(i),
					Message: "tag outside of any section discarded: " + t.String(),
				})
				i++
				continue
			}
			group := tagGroup{line: lineOf(i)}
			start := i
			i++
			for i < n && ts.tags[i].Code != 0 {
				i++
			}
			group.tags = ts.tags[start:i]
			cur.groups = append(cur.groups, group)
		}
	}
	if cur != nil {
		warnings = append(warnings, Repair{
			Kind:    RepairStructure,
			Line:    cur.line,
			Message: "section " + cur.name + " closed at end of input",
		})
		flush()
	}
	return sections, warnings
}

// ensureDefaults fabricates the mandatory resources a valid document
// cannot do without.
func ensureDefaults(doc *Document, report *Report) {
	for _, name := range tableOrder {
		t := doc.Tables.Get(name)
		if t.handle == 0 {
			t.handle = doc.db.NextHandle()
		}
	}

	if !doc.Tables.Linetypes.Has("Continuous") {
		report.add(RepairMissingTable, 0, "linetype \"Continuous\" fabricated")
		doc.Tables.Linetypes.Add(NewLinetype("Continuous", "Solid line"))
	}
	if !doc.Tables.Layers.Has("0") {
		report.add(RepairMissingTable, 0, "layer \"0\" fabricated")
		doc.Tables.Layers.Add(NewLayer("0"))
	}
	if !doc.Tables.TextStyles.Has("Standard") {
		report.add(RepairMissingTable, 0, "text style \"Standard\" fabricated")
		doc.Tables.TextStyles.Add(NewTextStyle("Standard", "txt"))
	}
	if !doc.Tables.DimStyles.Has("Standard") {
		report.add(RepairMissingTable, 0, "dimension style \"Standard\" fabricated")
		doc.Tables.DimStyles.Add(NewDimStyle("Standard"))
	}
}
