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

// Entity is a database resident of a DXF document: a graphical entity,
// a table entry, or a non-graphical object.  All concrete entity types
// are defined in this package; unrecognized DXF types are represented by
// [*Unknown], which preserves their tags verbatim.
type Entity interface {
	// DXFType returns the DXF type name, e.g. "LINE".
	DXFType() string

	// Handle returns the entity's handle, or 0 if the entity has not
	// been inserted into a document yet.
	Handle() Handle

	// Owner returns the handle of the owning space, table or
	// dictionary.
	Owner() Handle

	// SetOwner sets the owner handle.  Use the document's entity space
	// operations instead of calling this directly, so that space
	// membership and the owner pointer change together.
	SetOwner(Handle)

	common() *commonData
	load(x *xtags) error
	export(tw *tagWriter)
	minVersion() Version
}

// commonData holds the attributes shared by every database resident:
// handle, owner pointer, reactors, extension dictionary link, and the
// extension mechanisms (application data and XDATA).
type commonData struct {
	handle Handle
	owner  Handle

	// Reactors lists the handles of objects to be notified when this
	// entity changes.
	Reactors []Handle

	// XDict is the handle of the entity's extension dictionary, or 0.
	XDict Handle

	// AppData holds application defined data groups other than the
	// reactors and extension dictionary groups.
	AppData []AppData

	// XData holds the extended data attached to the entity, one entry
	// per registered application.
	XData []XData
}

func (c *commonData) common() *commonData { return c }

// Handle returns the entity's handle.
func (c *commonData) Handle() Handle { return c.handle }

func (c *commonData) setHandle(h Handle) { c.handle = h }

// Owner returns the owner handle.
func (c *commonData) Owner() Handle { return c.owner }

// SetOwner sets the owner handle.
func (c *commonData) SetOwner(h Handle) { c.owner = h }

// fromXtags copies the structural parts extracted by splitTags.
func (c *commonData) fromXtags(x *xtags) {
	c.handle = x.handle
	c.owner = x.owner
	c.Reactors = x.reactors
	c.XDict = x.xdict
	c.AppData = x.appData
	c.XData = x.xdata
}

// removeReference clears every pointer to the given handle in the
// common data.  It is called when the referenced entity is deleted.
func (c *commonData) removeReference(h Handle) {
	if c.owner == h {
		c.owner = 0
	}
	if c.XDict == h {
		c.XDict = 0
	}
	keep := c.Reactors[:0]
	for _, r := range c.Reactors {
		if r != h {
			keep = append(keep, r)
		}
	}
	c.Reactors = keep
}

// pointers returns all handle references held in the common data, used
// by the pointer resolution checks of the audit pass.
func (c *commonData) pointers() []Handle {
	var res []Handle
	if c.owner != 0 {
		res = append(res, c.owner)
	}
	if c.XDict != 0 {
		res = append(res, c.XDict)
	}
	res = append(res, c.Reactors...)
	return res
}

// Color values with special meaning in the ACI color model.
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// Linetype references with special meaning on graphical entities.
// "ByLayer" is the default.
const (
	LinetypeByLayer = "ByLayer"
	LinetypeByBlock = "ByBlock"
)

// graphicsData holds the attributes shared by all graphical entities
// (the AcDbEntity subclass).
type graphicsData struct {
	commonData

	// Layer is the name of the entity's layer.  The default layer is
	// "0".
	Layer string

	// Linetype is the entity's linetype name, "ByLayer" or "ByBlock".
	Linetype string

	// Color is the ACI color index.  0 means by-block, 256 means
	// by-layer; negative values are not used on entities.
	Color int

	// LinetypeScale is the linetype scale factor, default 1.
	LinetypeScale float64

	// Lineweight is the line weight in 1/100 mm, or one of the special
	// values -1 (by layer), -2 (by block), -3 (default).  Supported for
	// R2000 and later.
	Lineweight int

	// TrueColor is an optional 24 bit RGB value.  Supported for R2004
	// and later.
	TrueColor OptionalInt

	// Transparency is the optional raw transparency value.  Supported
	// for R2004 and later.
	Transparency OptionalInt

	// Invisible is set for entities which are loaded but not shown.
	Invisible bool

	// PaperSpace is set for entities owned by a paper space layout.
	PaperSpace bool
}

func (g *graphicsData) graphics() *graphicsData { return g }

func defaultGraphics() graphicsData {
	return graphicsData{
		Layer:         "0",
		Linetype:      LinetypeByLayer,
		Color:         ColorByLayer,
		LinetypeScale: 1,
		Lineweight:    LineweightByLayer,
	}
}

// Lineweight special values.
const (
	LineweightByLayer = -1
	LineweightByBlock = -2
	LineweightDefault = -3
)

// readTag consumes one tag of the AcDbEntity subclass.  It reports
// whether the tag was recognized.
func (g *graphicsData) readTag(t Tag) bool {
	switch t.Code {
	case 8:
		g.Layer = t.Text()
	case 6:
		g.Linetype = t.Text()
	case 62:
		g.Color = t.Int()
	case 48:
		g.LinetypeScale = t.Float()
	case 370:
		g.Lineweight = t.Int()
	case 420:
		g.TrueColor.Set(t.Int())
	case 440:
		g.Transparency.Set(t.Int())
	case 60:
		g.Invisible = t.Int() != 0
	case 67:
		g.PaperSpace = t.Int() != 0
	default:
		return false
	}
	return true
}

// export writes the AcDbEntity subclass.  Attributes not legal for the
// target version are omitted.
func (g *graphicsData) export(tw *tagWriter) {
	tw.subclass("AcDbEntity")
	if g.PaperSpace {
		tw.intTag(67, 1)
	}
	tw.str(8, g.Layer)
	if g.Linetype != LinetypeByLayer {
		tw.str(6, g.Linetype)
	}
	if g.Color != ColorByLayer {
		tw.intTag(62, g.Color)
	}
	if g.LinetypeScale != 1 {
		tw.real(48, g.LinetypeScale)
	}
	if g.Invisible {
		tw.intTag(60, 1)
	}
	if tw.version >= R2000 && g.Lineweight != LineweightByLayer {
		tw.intTag(370, g.Lineweight)
	}
	if tw.version >= R2004 {
		if v, ok := g.TrueColor.Get(); ok {
			tw.intTag(420, v)
		}
		if v, ok := g.Transparency.Get(); ok {
			tw.intTag(440, v)
		}
	}
}

// OptionalInt is an integer attribute which distinguishes "not set"
// from any set value.  Attributes whose introduction postdates the
// document's version are left unset rather than defaulted.
type OptionalInt struct {
	isSet bool
	val   int
}

// Get returns the value and whether it is set.
func (o OptionalInt) Get() (int, bool) { return o.val, o.isSet }

// Set sets the value.
func (o *OptionalInt) Set(v int) {
	o.isSet = true
	o.val = v
}

// Clear clears the value.
func (o *OptionalInt) Clear() {
	o.isSet = false
	o.val = 0
}
