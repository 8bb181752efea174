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
	"strconv"
)

var (
	errVersion = errors.New("unsupported DXF version")
)

// MalformedFileError indicates that the DXF file could not be parsed at
// all, for example because no sections could be identified.
type MalformedFileError struct {
	Pos int64 // byte offset into the input, if known
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid DXF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// TagError indicates that a single tag could not be decoded: the group
// code was not numeric, or the value could not be coerced to the type
// required by the group code.  In lenient mode the recovery layer skips
// the damaged span and resynchronizes; in strict mode the error aborts
// the load.
type TagError struct {
	Line int   // 1-based line number of the offending tag
	Pos  int64 // byte offset of the offending tag
	Code int   // group code, or -1 if the code itself was malformed
	Err  error
}

func (err *TagError) Error() string {
	msg := "invalid tag"
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Line > 0 {
		msg += " (line " + strconv.Itoa(err.Line) +
			", byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return msg
}

func (err *TagError) Unwrap() error {
	return err.Err
}

// StructureError indicates that the section/table/block structure of the
// file is violated, for example an ENDTAB tag without a matching TABLE.
type StructureError struct {
	Line int
	Msg  string
}

func (err *StructureError) Error() string {
	msg := "invalid DXF structure: " + err.Msg
	if err.Line > 0 {
		msg += " (line " + strconv.Itoa(err.Line) + ")"
	}
	return msg
}

// DuplicateHandleError is returned when an entity with an explicit handle
// is inserted into a document which already contains that handle.
type DuplicateHandleError struct {
	Handle Handle
}

func (err *DuplicateHandleError) Error() string {
	return "duplicate handle #" + err.Handle.String()
}

// DanglingPointerError indicates that a pointer tag refers to a handle
// which is not present in the document.
type DanglingPointerError struct {
	Handle Handle // the unresolved target
	Owner  Handle // the entity holding the pointer, if known
}

func (err *DanglingPointerError) Error() string {
	msg := "dangling pointer #" + err.Handle.String()
	if err.Owner != 0 {
		msg += " in entity #" + err.Owner.String()
	}
	return msg
}
