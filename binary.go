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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"strconv"
)

// binarySentinel introduces a binary DXF file.
var binarySentinel = []byte("AutoCAD Binary DXF\r\n\x1a\x00")

// isBinaryDXF reports whether data starts with the binary DXF sentinel.
func isBinaryDXF(data []byte) bool {
	return bytes.HasPrefix(data, binarySentinel)
}

// binaryScanner splits a binary DXF byte stream into raw tags.  Values
// are converted to their canonical text form, so that the regular tag
// compiler can be used for both file flavours.
//
// Files written before R13 use one byte group codes with an escape byte
// of 255 for the extended data range; later files use two byte little
// endian group codes throughout.
type binaryScanner struct {
	data    []byte
	pos     int64
	oneByte bool
}

func newBinaryScanner(data []byte) (*binaryScanner, error) {
	if !isBinaryDXF(data) {
		return nil, &MalformedFileError{Err: errors.New("binary DXF sentinel not found")}
	}
	s := &binaryScanner{data: data, pos: int64(len(binarySentinel))}
	s.oneByte = s.detectR12()
	return s, nil
}

// detectR12 looks for the $ACADVER header variable near the start of the
// file to decide the group code width.
func (s *binaryScanner) detectR12() bool {
	limit := len(s.data)
	if limit > 1024 {
		limit = 1024
	}
	idx := bytes.Index(s.data[:limit], []byte("$ACADVER"))
	if idx < 0 {
		return true
	}
	start := idx + len("$ACADVER") + 2 // skip the group code of the value tag
	if start < len(s.data) && s.data[start] != 'A' {
		start++ // two byte group code
	}
	if start+6 > len(s.data) {
		return true
	}
	version := string(s.data[start : start+6])
	return version <= "AC1009"
}

func (s *binaryScanner) readTag() (rawTag, error) {
	if s.pos >= int64(len(s.data)) {
		return rawTag{}, io.EOF
	}
	tagPos := s.pos

	code, err := s.readCode()
	if err != nil {
		return rawTag{}, err
	}
	if code > maxGroupCode || code < 0 {
		return rawTag{}, &TagError{
			Pos:  tagPos,
			Code: code,
			Err:  errors.New("group code out of range"),
		}
	}

	value, err := s.readValue(code)
	if err != nil {
		return rawTag{}, &TagError{Pos: tagPos, Code: code, Err: err}
	}

	if code == codeComment {
		return s.readTag()
	}
	if code == 0 && string(value) == "EOF" {
		return rawTag{}, io.EOF
	}
	return rawTag{code: code, value: value, pos: tagPos}, nil
}

func (s *binaryScanner) readCode() (int, error) {
	if s.oneByte {
		c := int(s.data[s.pos])
		if c == 255 { // extended data escape
			if s.pos+3 > int64(len(s.data)) {
				return 0, io.ErrUnexpectedEOF
			}
			c = int(s.data[s.pos+1]) | int(s.data[s.pos+2])<<8
			s.pos += 3
		} else {
			s.pos++
		}
		return c, nil
	}
	if s.pos+2 > int64(len(s.data)) {
		return 0, io.ErrUnexpectedEOF
	}
	c := int(s.data[s.pos]) | int(s.data[s.pos+1])<<8
	s.pos += 2
	return c, nil
}

func (s *binaryScanner) readValue(code int) ([]byte, error) {
	kind := kindOf(code)
	switch kind {
	case kindBinary:
		if s.pos >= int64(len(s.data)) {
			return nil, io.ErrUnexpectedEOF
		}
		length := int64(s.data[s.pos])
		s.pos++
		if s.pos+length > int64(len(s.data)) {
			return nil, io.ErrUnexpectedEOF
		}
		chunk := s.data[s.pos : s.pos+length]
		s.pos += length
		dst := make([]byte, hex.EncodedLen(len(chunk)))
		hex.Encode(dst, chunk)
		return dst, nil
	case kindInt16:
		v, err := s.take(2)
		if err != nil {
			return nil, err
		}
		x := int16(binary.LittleEndian.Uint16(v))
		return strconv.AppendInt(nil, int64(x), 10), nil
	case kindInt32:
		v, err := s.take(4)
		if err != nil {
			return nil, err
		}
		x := int32(binary.LittleEndian.Uint32(v))
		return strconv.AppendInt(nil, int64(x), 10), nil
	case kindInt64:
		v, err := s.take(8)
		if err != nil {
			return nil, err
		}
		x := int64(binary.LittleEndian.Uint64(v))
		return strconv.AppendInt(nil, x, 10), nil
	case kindBool:
		v, err := s.take(1)
		if err != nil {
			return nil, err
		}
		return strconv.AppendInt(nil, int64(v[0]), 10), nil
	case kindDouble, kindPoint:
		v, err := s.take(8)
		if err != nil {
			return nil, err
		}
		x := math.Float64frombits(binary.LittleEndian.Uint64(v))
		return strconv.AppendFloat(nil, x, 'f', -1, 64), nil
	default:
		// zero terminated string, also used for handle values
		end := bytes.IndexByte(s.data[s.pos:], 0)
		if end < 0 {
			return nil, io.ErrUnexpectedEOF
		}
		v := s.data[s.pos : s.pos+int64(end)]
		s.pos += int64(end) + 1
		return v, nil
	}
}

func (s *binaryScanner) take(n int64) ([]byte, error) {
	if s.pos+n > int64(len(s.data)) {
		return nil, io.ErrUnexpectedEOF
	}
	v := s.data[s.pos : s.pos+n]
	s.pos += n
	return v, nil
}
