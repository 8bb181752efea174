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

// Structural group codes.
const (
	codeType           = 0   // entity/section/table type name
	codeName           = 2   // symbol or section name
	codeHandle         = 5   // entity handle
	codeDimStyleHandle = 105 // DIMSTYLE entries use 105 instead of 5
	codeSubclass       = 100 // subclass marker
	codeAppData        = 102 // application defined data marker
	codeOwner          = 330 // owner handle (soft pointer)
	codeXData          = 1001
	codeComment        = 999

	maxGroupCode = 1071
)

// valueKind describes the value type implied by a group code.
type valueKind int

const (
	kindString valueKind = iota
	kindInt16
	kindInt32
	kindInt64
	kindBool
	kindDouble
	kindPoint
	kindHandle
	kindBinary
)

// isInteger reports whether k is one of the integer kinds.
func (k valueKind) isInteger() bool {
	switch k {
	case kindInt16, kindInt32, kindInt64, kindBool:
		return true
	}
	return false
}

// kindOf returns the value kind for a group code.  The bands follow the
// DXF reference; codes outside any band decode as strings.
func kindOf(code int) valueKind {
	switch {
	case code < 0:
		return kindString
	case code == codeHandle:
		return kindHandle
	case code <= 9:
		return kindString
	case code <= 18:
		// 10-18 start a coordinate group; the Y and Z components use
		// codes 20-38 which only occur inside a point group.
		return kindPoint
	case code <= 59:
		return kindDouble
	case code <= 79:
		return kindInt16
	case code <= 99 && code >= 90:
		return kindInt32
	case code == 102, code == 100:
		return kindString
	case code == 105:
		return kindHandle
	case code >= 110 && code <= 112:
		return kindPoint
	case code >= 113 && code <= 149:
		return kindDouble
	case code >= 160 && code <= 169:
		return kindInt64
	case code >= 170 && code <= 179:
		return kindInt16
	case code >= 210 && code <= 213:
		return kindPoint
	case code >= 214 && code <= 239:
		return kindDouble
	case code >= 270 && code <= 289:
		return kindInt16
	case code >= 290 && code <= 299:
		return kindBool
	case code >= 300 && code <= 309:
		return kindString
	case code >= 310 && code <= 319:
		return kindBinary
	case code >= 320 && code <= 369:
		return kindHandle
	case code >= 370 && code <= 389:
		return kindInt16
	case code >= 390 && code <= 399:
		return kindHandle
	case code >= 400 && code <= 409:
		return kindInt16
	case code >= 410 && code <= 419:
		return kindString
	case code >= 420 && code <= 429:
		return kindInt32
	case code >= 430 && code <= 439:
		return kindString
	case code >= 440 && code <= 459:
		return kindInt32
	case code >= 460 && code <= 469:
		return kindDouble
	case code >= 470 && code <= 481:
		if code >= 480 {
			return kindHandle
		}
		return kindString
	case code == 999:
		return kindString
	case code >= 1000 && code <= 1003:
		return kindString
	case code == 1004:
		return kindBinary
	case code == 1005:
		return kindHandle
	case code >= 1010 && code <= 1013:
		return kindPoint
	case code >= 1014 && code <= 1059:
		return kindDouble
	case code >= 1060 && code <= 1070:
		return kindInt16
	case code == 1071:
		return kindInt32
	}
	return kindString
}

// isPointCode reports whether code starts an X/Y[/Z] coordinate group.
func isPointCode(code int) bool {
	return kindOf(code) == kindPoint
}

// isPointerCode reports whether code holds a handle reference to another
// entity rather than the entity's own handle.
func isPointerCode(code int) bool {
	switch {
	case code >= 320 && code <= 369:
		return true
	case code >= 390 && code <= 399:
		return true
	case code == 480, code == 481, code == 1005:
		return true
	}
	return false
}
