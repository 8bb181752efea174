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

// Unknown represents an entity or object type this library has no
// typed representation for.  All tags after the common group are
// preserved verbatim, so unknown entities survive a load/store cycle
// unchanged.
type Unknown struct {
	commonData

	dxftype string
	tags    Tags
}

// DXFType implements the [Entity] interface.
func (e *Unknown) DXFType() string { return e.dxftype }

func (e *Unknown) minVersion() Version { return R12 }

// Tags returns a copy of the entity's raw tags, excluding the common
// group (handle, owner, reactors, extension dictionary, application
// data and XDATA).
func (e *Unknown) Tags() Tags { return e.tags.Clone() }

func (e *Unknown) load(x *xtags) error {
	e.dxftype = x.dxftype
	for _, sub := range x.subclasses {
		if sub.name != "" {
			e.tags = append(e.tags, Tag{Code: codeSubclass, Value: String(sub.name)})
		}
		e.tags = append(e.tags, sub.tags...)
	}
	return nil
}

func (e *Unknown) export(tw *tagWriter) {
	for _, t := range e.tags {
		tw.tag(t)
	}
}
