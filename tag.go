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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Value represents a decoded tag value.  There are six native value
// types, which implement this interface: [String], [Integer], [Real],
// [Point], [Handle], and [Binary].
type Value interface {
	// DXF appends the DXF file representation of the value to buf.
	DXF(buf []byte) []byte
}

// String represents a text value in a DXF file.
type String string

// DXF implements the [Value] interface.
func (x String) DXF(buf []byte) []byte {
	return append(buf, x...)
}

// Integer represents an integer value in a DXF file.  All integer group
// code bands (16, 32 and 64 bit as well as boolean flags) decode to this
// type.
type Integer int64

// DXF implements the [Value] interface.
func (x Integer) DXF(buf []byte) []byte {
	return strconv.AppendInt(buf, int64(x), 10)
}

// Real represents a floating point value in a DXF file.
type Real float64

// DXF implements the [Value] interface.
func (x Real) DXF(buf []byte) []byte {
	return appendFloat(buf, float64(x))
}

// Handle identifies an entity or object within one document.  Handles
// are written as upper-case hexadecimal strings without leading zeros.
// The zero Handle is the null handle and never refers to an entity.
type Handle uint64

// DXF implements the [Value] interface.
func (x Handle) DXF(buf []byte) []byte {
	return append(buf, x.String()...)
}

func (x Handle) String() string {
	return strings.ToUpper(strconv.FormatUint(uint64(x), 16))
}

// ParseHandle parses the hexadecimal representation of a handle.
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty handle")
	}
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return Handle(h), nil
}

// Point represents a 2D or 3D coordinate value, assembled from the X, Y
// and (optionally) Z component tags of one group code family.
type Point struct {
	X, Y, Z float64

	// Flat records that the source file stored only X and Y components.
	// Flat points are written back without a Z component tag.
	Flat bool
}

// DXF implements the [Value] interface.  Only the X component is
// appended; the tag writer is responsible for emitting the Y and Z
// component tags.
func (x Point) DXF(buf []byte) []byte {
	return appendFloat(buf, x.X)
}

// Binary represents a chunk of binary data, written as a hexadecimal
// string.
type Binary []byte

// DXF implements the [Value] interface.
func (x Binary) DXF(buf []byte) []byte {
	dst := make([]byte, hex.EncodedLen(len(x)))
	hex.Encode(dst, x)
	for i, c := range dst {
		if c >= 'a' && c <= 'f' {
			dst[i] = c - 'a' + 'A'
		}
	}
	return append(buf, dst...)
}

// Tag is a single group code/value pair, the atomic unit of the DXF
// format.
type Tag struct {
	Code  int
	Value Value
}

// NewTag creates a tag from a group code and a decoded value.
func NewTag(code int, value Value) Tag {
	return Tag{Code: code, Value: value}
}

func (t Tag) String() string {
	return fmt.Sprintf("(%d, %v)", t.Code, t.Value)
}

// DXF writes the two-line file representation of the tag to w.  Point
// values expand into two or three component tags.
func (t Tag) DXF(w io.Writer) error {
	var buf []byte
	if p, ok := t.Value.(Point); ok {
		buf = appendTagLine(buf, t.Code, appendFloat(nil, p.X))
		buf = appendTagLine(buf, t.Code+10, appendFloat(nil, p.Y))
		if !p.Flat {
			buf = appendTagLine(buf, t.Code+20, appendFloat(nil, p.Z))
		}
	} else {
		buf = appendTagLine(buf, t.Code, t.Value.DXF(nil))
	}
	_, err := w.Write(buf)
	return err
}

// Text returns the string form of the tag value.
func (t Tag) Text() string {
	if s, ok := t.Value.(String); ok {
		return string(s)
	}
	return string(t.Value.DXF(nil))
}

// Int returns the tag value as an int.
func (t Tag) Int() int {
	switch v := t.Value.(type) {
	case Integer:
		return int(v)
	case Real:
		return int(v)
	case Handle:
		return int(v)
	}
	return 0
}

// Float returns the tag value as a float64.
func (t Tag) Float() float64 {
	switch v := t.Value.(type) {
	case Real:
		return float64(v)
	case Integer:
		return float64(v)
	}
	return 0
}

// Point returns the tag value as a point.  Scalar values yield the zero
// point.
func (t Tag) Point() Point {
	if p, ok := t.Value.(Point); ok {
		return p
	}
	return Point{}
}

// Handle returns the tag value as a handle, or the null handle if the
// value has a different type.
func (t Tag) Handle() Handle {
	switch v := t.Value.(type) {
	case Handle:
		return v
	case String:
		h, err := ParseHandle(string(v))
		if err == nil {
			return h
		}
	}
	return 0
}

// Tags is a sequence of tags, usually the tags of a single entity or
// structural unit.
type Tags []Tag

// Clone returns a copy of the tag sequence.  Tag values are immutable,
// so a shallow copy of the slice suffices.
func (tags Tags) Clone() Tags {
	res := make(Tags, len(tags))
	copy(res, tags)
	return res
}

// Get returns the first tag with the given group code.
func (tags Tags) Get(code int) (Tag, bool) {
	for _, t := range tags {
		if t.Code == code {
			return t, true
		}
	}
	return Tag{}, false
}

// appendTagLine appends one "code\r\nvalue\r\n" record.  Group codes are
// written right-aligned in a three character field, the way AutoCAD
// writes them.
func appendTagLine(buf []byte, code int, value []byte) []byte {
	s := strconv.Itoa(code)
	for n := len(s); n < 3; n++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, s...)
	buf = append(buf, '\r', '\n')
	buf = append(buf, value...)
	buf = append(buf, '\r', '\n')
	return buf
}

// appendFloat appends the shortest decimal representation of x which
// parses back to the same value.  Exponent notation is avoided since not
// all DXF consumers accept it.
func appendFloat(buf []byte, x float64) []byte {
	res := strconv.AppendFloat(buf, x, 'f', -1, 64)
	if !containsDot(res[len(buf):]) {
		res = append(res, '.', '0')
	}
	return res
}

func containsDot(b []byte) bool {
	for _, c := range b {
		if c == '.' {
			return true
		}
	}
	return false
}
