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

// A HeaderVar is one $-variable of the HEADER section, with its value
// tags.
type HeaderVar struct {
	Name string
	Tags Tags
}

// Header holds the variables of the HEADER section.  Variables keep
// their file order; lookup by name is case-insensitive.  Unknown
// variables are preserved unchanged.
type Header struct {
	vars  []*HeaderVar
	index map[string]*HeaderVar
}

// NewHeader creates an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]*HeaderVar)}
}

func headerKey(name string) string { return strings.ToUpper(name) }

// Len returns the number of header variables.
func (h *Header) Len() int { return len(h.vars) }

// All returns the variables in file order.  The returned slice must
// not be modified.
func (h *Header) All() []*HeaderVar { return h.vars }

// Get returns the value tags of a variable.
func (h *Header) Get(name string) (Tags, bool) {
	v, ok := h.index[headerKey(name)]
	if !ok {
		return nil, false
	}
	return v.Tags, true
}

// Has reports whether the variable is present.
func (h *Header) Has(name string) bool {
	_, ok := h.index[headerKey(name)]
	return ok
}

// Set stores a variable, replacing any previous value.  New variables
// are appended at the end.
func (h *Header) Set(name string, tags ...Tag) {
	if v, ok := h.index[headerKey(name)]; ok {
		v.Tags = tags
		return
	}
	v := &HeaderVar{Name: name, Tags: tags}
	h.vars = append(h.vars, v)
	h.index[headerKey(name)] = v
}

// Delete removes a variable.  Deleting a missing variable is a no-op.
func (h *Header) Delete(name string) {
	key := headerKey(name)
	v, ok := h.index[key]
	if !ok {
		return
	}
	delete(h.index, key)
	for i, cur := range h.vars {
		if cur == v {
			h.vars = append(h.vars[:i], h.vars[i+1:]...)
			break
		}
	}
}

func (h *Header) getString(name string, code int) string {
	tags, ok := h.Get(name)
	if !ok {
		return ""
	}
	if t, ok := tags.Get(code); ok {
		return t.Text()
	}
	return ""
}

func (h *Header) getInt(name string, code int) int {
	tags, ok := h.Get(name)
	if !ok {
		return 0
	}
	if t, ok := tags.Get(code); ok {
		return t.Int()
	}
	return 0
}

func (h *Header) getPoint(name string) Point {
	tags, ok := h.Get(name)
	if !ok {
		return Point{}
	}
	if t, ok := tags.Get(10); ok {
		return t.Point()
	}
	return Point{}
}

// HandSeed returns the $HANDSEED variable, the next unused handle.
func (h *Header) HandSeed() Handle {
	tags, ok := h.Get("$HANDSEED")
	if !ok {
		return 0
	}
	if t, ok := tags.Get(codeHandle); ok {
		return t.Handle()
	}
	return 0
}

// SetHandSeed stores the $HANDSEED variable.
func (h *Header) SetHandSeed(seed Handle) {
	h.Set("$HANDSEED", Tag{Code: codeHandle, Value: seed})
}

// CodePage returns the $DWGCODEPAGE token, or "ANSI_1252" if the
// variable is missing.
func (h *Header) CodePage() string {
	if s := h.getString("$DWGCODEPAGE", 3); s != "" {
		return s
	}
	return "ANSI_1252"
}

// InsUnits returns the $INSUNITS drawing units code (0 for unitless,
// 1 for inches, 4 for millimeters, 6 for meters).
func (h *Header) InsUnits() int { return h.getInt("$INSUNITS", 70) }

// SetInsUnits stores the $INSUNITS drawing units code.
func (h *Header) SetInsUnits(units int) {
	h.Set("$INSUNITS", Tag{Code: 70, Value: Integer(units)})
}

// ExtMin returns the $EXTMIN drawing extents corner.
func (h *Header) ExtMin() Point { return h.getPoint("$EXTMIN") }

// ExtMax returns the $EXTMAX drawing extents corner.
func (h *Header) ExtMax() Point { return h.getPoint("$EXTMAX") }

// SetExtents stores the $EXTMIN and $EXTMAX drawing extents.
func (h *Header) SetExtents(min, max Point) {
	h.Set("$EXTMIN", Tag{Code: 10, Value: min})
	h.Set("$EXTMAX", Tag{Code: 10, Value: max})
}

// CurrentLayer returns the $CLAYER variable, the layer new entities
// default to in interactive editors.
func (h *Header) CurrentLayer() string {
	if s := h.getString("$CLAYER", 8); s != "" {
		return s
	}
	return "0"
}

// SetCurrentLayer stores the $CLAYER variable.
func (h *Header) SetCurrentLayer(layer string) {
	h.Set("$CLAYER", Tag{Code: 8, Value: String(layer)})
}

// Measurement returns the $MEASUREMENT variable: 0 for imperial, 1 for
// metric.
func (h *Header) Measurement() int { return h.getInt("$MEASUREMENT", 70) }
