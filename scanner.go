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
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"strings"
)

// rawTag is an undecoded group code/value pair together with its
// position in the input.
type rawTag struct {
	code  int
	value []byte
	line  int
	pos   int64
}

// scanner splits a byte stream into raw tags.  A tag occupies two
// logical lines: the group code line and the value line.
type scanner struct {
	data []byte
	pos  int64
	line int
	eof  bool
}

func newScanner(data []byte) *scanner {
	return &scanner{data: data, line: 1}
}

// readLine returns the next input line with the trailing line break
// removed.  The second return value is false at the end of input.
func (s *scanner) readLine() ([]byte, bool) {
	if s.pos >= int64(len(s.data)) {
		return nil, false
	}
	rest := s.data[s.pos:]
	var line []byte
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		line = rest[:idx]
		s.pos += int64(idx) + 1
	} else {
		line = rest
		s.pos += int64(len(rest))
	}
	s.line++
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, true
}

// readTag returns the next raw tag.  Comment tags (group code 999) are
// skipped and never surfaced.  At the end of input, or after a (0, EOF)
// tag has been seen, io.EOF is returned.
func (s *scanner) readTag() (rawTag, error) {
	for {
		if s.eof {
			return rawTag{}, io.EOF
		}

		tagLine := s.line
		tagPos := s.pos
		codeLine, ok := s.readLine()
		if !ok {
			return rawTag{}, io.EOF
		}
		codeStr := strings.TrimSpace(string(codeLine))
		if codeStr == "" && s.pos >= int64(len(s.data)) {
			// trailing blank line
			return rawTag{}, io.EOF
		}

		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return rawTag{}, &TagError{
				Line: tagLine,
				Pos:  tagPos,
				Code: -1,
				Err:  errors.New("invalid group code " + strconv.Quote(codeStr)),
			}
		}
		if code < -5 || code > maxGroupCode {
			return rawTag{}, &TagError{
				Line: tagLine,
				Pos:  tagPos,
				Code: code,
				Err:  errors.New("group code out of range"),
			}
		}

		value, ok := s.readLine()
		if !ok {
			return rawTag{}, &TagError{
				Line: tagLine,
				Pos:  tagPos,
				Code: code,
				Err:  io.ErrUnexpectedEOF,
			}
		}

		if code == codeComment {
			continue
		}
		if code == 0 && string(bytes.TrimSpace(value)) == "EOF" {
			// ignore any data beyond the EOF tag
			s.eof = true
			return rawTag{}, io.EOF
		}
		return rawTag{code: code, value: value, line: tagLine, pos: tagPos}, nil
	}
}

// tagCompiler turns raw tags into typed tags: values are coerced
// according to their group code band, X/Y[/Z] component tags are
// combined into point values, and string values are decoded from the
// document's code page.
type tagCompiler struct {
	src    func() (rawTag, error)
	decode func([]byte) (string, error)

	peeked  *rawTag
	peekErr error
}

func newTagCompiler(src func() (rawTag, error), decode func([]byte) (string, error)) *tagCompiler {
	if decode == nil {
		decode = func(b []byte) (string, error) { return string(b), nil }
	}
	return &tagCompiler{src: src, decode: decode}
}

func (c *tagCompiler) read() (rawTag, error) {
	if c.peeked != nil || c.peekErr != nil {
		t, err := c.peeked, c.peekErr
		c.peeked, c.peekErr = nil, nil
		if err != nil {
			return rawTag{}, err
		}
		return *t, nil
	}
	return c.src()
}

func (c *tagCompiler) unread(t rawTag, err error) {
	if err != nil {
		c.peekErr = err
	} else {
		c.peeked = &t
	}
}

// next returns the next compiled tag and its source line, or io.EOF at
// the end of input.
func (c *tagCompiler) next() (Tag, int, error) {
	raw, err := c.read()
	if err != nil {
		return Tag{}, 0, err
	}
	tag, err := c.compile(raw)
	return tag, raw.line, err
}

func (c *tagCompiler) compile(raw rawTag) (Tag, error) {
	kind := kindOf(raw.code)
	if kind == kindPoint {
		return c.compilePoint(raw)
	}
	val, err := c.compileScalar(raw, kind)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Code: raw.code, Value: val}, nil
}

func (c *tagCompiler) compileScalar(raw rawTag, kind valueKind) (Value, error) {
	text := strings.TrimSpace(string(raw.value))
	fail := func(err error) (Value, error) {
		return nil, &TagError{Line: raw.line, Pos: raw.pos, Code: raw.code, Err: err}
	}

	switch kind {
	case kindDouble:
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fail(err)
		}
		return Real(x), nil
	case kindHandle:
		h, err := ParseHandle(text)
		if err != nil {
			return fail(err)
		}
		return h, nil
	case kindBinary:
		b, err := hex.DecodeString(text)
		if err != nil {
			return fail(err)
		}
		return Binary(b), nil
	default:
		if kind.isInteger() {
			x, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				// AutoCAD tolerates floats in integer fields
				f, ferr := strconv.ParseFloat(text, 64)
				if ferr != nil {
					return fail(err)
				}
				x = int64(f)
			}
			return Integer(x), nil
		}
		s, err := c.decode(raw.value)
		if err != nil {
			return fail(err)
		}
		return String(s), nil
	}
}

// compilePoint assembles an X component tag and its Y and optional Z
// component tags into a single point value.
func (c *tagCompiler) compilePoint(raw rawTag) (Tag, error) {
	fail := func(err error) (Tag, error) {
		return Tag{}, &TagError{Line: raw.line, Pos: raw.pos, Code: raw.code, Err: err}
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(string(raw.value)), 64)
	if err != nil {
		return fail(err)
	}

	yTag, err := c.read()
	if err != nil {
		return fail(errors.New("missing y-component tag"))
	}
	if yTag.code != raw.code+10 {
		c.unread(yTag, nil)
		return fail(errors.New("missing y-component tag"))
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(string(yTag.value)), 64)
	if err != nil {
		return fail(err)
	}

	p := Point{X: x, Y: y, Flat: true}

	zTag, err := c.read()
	switch {
	case err == io.EOF:
		// input may end with a flat point
	case err != nil:
		c.unread(rawTag{}, err)
	case zTag.code == raw.code+20:
		z, err := strconv.ParseFloat(strings.TrimSpace(string(zTag.value)), 64)
		if err != nil {
			return fail(err)
		}
		p.Z = z
		p.Flat = false
	default:
		c.unread(zTag, nil)
	}

	return Tag{Code: raw.code, Value: p}, nil
}

