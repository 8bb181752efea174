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

import "strconv"

// Version represents a DXF version (a release family of the file format).
type Version int

// DXF versions supported by this library.
const (
	_ Version = iota
	R12
	R13
	R14
	R2000
	R2004
	R2007
	R2010
	R2013
	R2018
	tooHighVersion
)

var versionTokens = map[Version]string{
	R12:   "AC1009",
	R13:   "AC1012",
	R14:   "AC1014",
	R2000: "AC1015",
	R2004: "AC1018",
	R2007: "AC1021",
	R2010: "AC1024",
	R2013: "AC1027",
	R2018: "AC1032",
}

var versionNames = map[Version]string{
	R12:   "R12",
	R13:   "R13",
	R14:   "R14",
	R2000: "R2000",
	R2004: "R2004",
	R2007: "R2007",
	R2010: "R2010",
	R2013: "R2013",
	R2018: "R2018",
}

// ParseVersion parses a DXF version string.  Both release names ("R2000")
// and $ACADVER tokens ("AC1015") are accepted.
func ParseVersion(s string) (Version, error) {
	for v, tok := range versionTokens {
		if s == tok || s == versionNames[v] {
			return v, nil
		}
	}
	return 0, errVersion
}

// Token returns the $ACADVER header token for ver, e.g. "AC1015".
// If ver is not a supported DXF version, an error is returned.
func (ver Version) Token() (string, error) {
	tok, ok := versionTokens[ver]
	if !ok {
		return "", errVersion
	}
	return tok, nil
}

func (ver Version) String() string {
	name, ok := versionNames[ver]
	if !ok {
		return "dxf.Version(" + strconv.Itoa(int(ver)) + ")"
	}
	return name
}
