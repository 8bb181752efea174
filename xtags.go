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

import "strings"

// Markers for the application defined data groups which carry the
// persistent reactors and the extension dictionary handle.
const (
	appReactors = "{ACAD_REACTORS"
	appXDict    = "{ACAD_XDICTIONARY"
)

// subclassTags is the tag run of one subclass marker group.
type subclassTags struct {
	name string // "AcDbEntity", "AcDbLine", ...; empty for the base class
	tags Tags
}

// AppData is an application defined data group (code 102), delimited by
// "{APPID" and "}" markers.
type AppData struct {
	AppID string // without the leading "{"
	Tags  Tags
}

// XData is the extended data attached to an entity for one registered
// application.
type XData struct {
	AppID string
	Tags  Tags // group codes 1000-1071, excluding the leading 1001 tag
}

// xtags is an entity's tag group partitioned into its structural parts.
// A version-agnostic loader must tolerate subclass markers being absent
// in legacy documents, so all non-extended tags are also available as a
// single flat sequence via noSubclasses.
type xtags struct {
	dxftype    string
	line       int
	handle     Handle
	owner      Handle
	reactors   []Handle
	xdict      Handle
	appData    []AppData
	subclasses []subclassTags // subclasses[0] is the unnamed base class
	xdata      []XData
}

// splitTags partitions the tags of one entity.  group must start with
// the code 0 type tag.
func splitTags(group tagGroup) *xtags {
	x := &xtags{
		dxftype: group.dxfType(),
		line:    group.line,
		subclasses: []subclassTags{{}},
	}

	tags := group.tags[1:] // skip the type tag
	i := 0
	n := len(tags)

	// base class and subclasses, interrupted by app data groups
	cur := 0 // index into x.subclasses
	for i < n {
		t := tags[i]
		switch {
		case t.Code == codeXData:
			// start of extended data, handled below
			goto xdataLoop
		case t.Code == codeSubclass:
			x.subclasses = append(x.subclasses, subclassTags{name: t.Text()})
			cur = len(x.subclasses) - 1
			i++
		case t.Code == codeAppData && strings.HasPrefix(t.Text(), "{"):
			app := AppData{AppID: strings.TrimPrefix(t.Text(), "{")}
			i++
			for i < n && !(tags[i].Code == codeAppData && tags[i].Text() == "}") {
				app.Tags = append(app.Tags, tags[i])
				i++
			}
			if i < n {
				i++ // closing "}"
			}
			x.addAppData(app)
		case t.Code == codeHandle && x.handle == 0 && cur == 0:
			x.handle = t.Handle()
			i++
		case t.Code == codeDimStyleHandle && x.dxftype == "DIMSTYLE" && x.handle == 0:
			x.handle = t.Handle()
			i++
		case t.Code == codeOwner && x.owner == 0 && cur == 0:
			x.owner = t.Handle()
			i++
		default:
			x.subclasses[cur].tags = append(x.subclasses[cur].tags, t)
			i++
		}
	}

xdataLoop:
	for i < n {
		t := tags[i]
		if t.Code == codeXData {
			x.xdata = append(x.xdata, XData{AppID: t.Text()})
			i++
			continue
		}
		if len(x.xdata) == 0 {
			// extended data tags before any 1001 tag are malformed;
			// collect them under an empty app id so they round-trip
			x.xdata = append(x.xdata, XData{})
		}
		last := &x.xdata[len(x.xdata)-1]
		last.Tags = append(last.Tags, t)
		i++
	}

	return x
}

// addAppData files an app data group, extracting the persistent
// reactors and the extension dictionary handle from their well-known
// groups.
func (x *xtags) addAppData(app AppData) {
	switch "{" + app.AppID {
	case appReactors:
		for _, t := range app.Tags {
			if h := t.Handle(); h != 0 {
				x.reactors = append(x.reactors, h)
			}
		}
	case appXDict:
		for _, t := range app.Tags {
			if h := t.Handle(); h != 0 {
				x.xdict = h
			}
		}
	default:
		x.appData = append(x.appData, app)
	}
}

// flat returns all subclass tags as a single sequence, for legacy
// documents written without subclass markers and for type specific
// loaders which dispatch on group codes alone.
func (x *xtags) flat() Tags {
	var res Tags
	for _, sc := range x.subclasses {
		res = append(res, sc.tags...)
	}
	return res
}

// subclass returns the tags of the named subclass, or nil.
func (x *xtags) subclass(name string) Tags {
	for _, sc := range x.subclasses {
		if sc.name == name {
			return sc.tags
		}
	}
	return nil
}
