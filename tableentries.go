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

// TableEntry is implemented by all table entry types (layers,
// linetypes, text styles, ...).
type TableEntry interface {
	Entity

	// Name returns the entry's name.  Names are unique per table,
	// compared case-insensitively.
	Name() string
}

// tableEntryData holds the fields shared by all table entries.
type tableEntryData struct {
	commonData
	name string

	// Flags is the standard flag word (group code 70).
	Flags int
}

// Name returns the entry's name.
func (d *tableEntryData) Name() string { return d.name }

// SetName renames the entry.  Renaming an entry which is already part
// of a table must go through the table, so that the name index stays
// consistent.
func (d *tableEntryData) SetName(name string) { d.name = name }

func (d *tableEntryData) readTag(t Tag) bool {
	switch t.Code {
	case codeName:
		d.name = t.Text()
	case 70:
		d.Flags = t.Int()
	default:
		return false
	}
	return true
}

func (d *tableEntryData) export(tw *tagWriter, subclass string) {
	tw.subclass("AcDbSymbolTableRecord")
	tw.subclass(subclass)
	tw.str(codeName, d.name)
	tw.intTag(70, d.Flags)
}

// Layer is a LAYER table entry.
type Layer struct {
	tableEntryData

	// Color is the ACI color index of the layer; a negative value
	// means the layer is switched off.
	Color int

	// Linetype is the name of the layer's default linetype.
	Linetype string

	// Plot selects whether entities on this layer are plotted.
	// Supported for R2000 and later.
	Plot bool

	// Lineweight is the default lineweight in 1/100 mm.  Supported for
	// R2000 and later.
	Lineweight int

	// TrueColor is an optional 24 bit RGB value.  Supported for R2004
	// and later.
	TrueColor OptionalInt

	// PlotStyleHandle and MaterialHandle are pointers to optional
	// companion objects.
	PlotStyleHandle Handle
	MaterialHandle  Handle
}

// NewLayer creates a layer with the documented defaults: color 7,
// linetype "Continuous", plotted.
func NewLayer(name string) *Layer {
	return &Layer{
		tableEntryData: tableEntryData{name: name},
		Color:          7,
		Linetype:       "Continuous",
		Plot:           true,
		Lineweight:     LineweightDefault,
	}
}

// DXFType implements the [Entity] interface.
func (e *Layer) DXFType() string { return "LAYER" }

func (e *Layer) minVersion() Version { return R12 }

// On reports whether the layer is switched on.
func (e *Layer) On() bool { return e.Color >= 0 }

func (e *Layer) load(x *xtags) error {
	e.Color = 7
	e.Linetype = "Continuous"
	e.Plot = true
	e.Lineweight = LineweightDefault
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 62:
			e.Color = t.Int()
		case 6:
			e.Linetype = t.Text()
		case 290:
			e.Plot = t.Int() != 0
		case 370:
			e.Lineweight = t.Int()
		case 420:
			e.TrueColor.Set(t.Int())
		case 390:
			e.PlotStyleHandle = t.Handle()
		case 347:
			e.MaterialHandle = t.Handle()
		}
	}
	return nil
}

func (e *Layer) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbLayerTableRecord")
	tw.intTag(62, e.Color)
	tw.str(6, e.Linetype)
	if tw.version >= R2000 {
		if !e.Plot {
			tw.intTag(290, 0)
		}
		tw.intTag(370, e.Lineweight)
		if e.PlotStyleHandle != 0 {
			tw.handle(390, e.PlotStyleHandle)
		}
	}
	if tw.version >= R2004 {
		if v, ok := e.TrueColor.Get(); ok {
			tw.intTag(420, v)
		}
	}
	if tw.version >= R2007 && e.MaterialHandle != 0 {
		tw.handle(347, e.MaterialHandle)
	}
}

// LinetypeElement is one dash, dot or gap of a linetype pattern.  The
// length is positive for a dash, negative for a gap and zero for a dot.
type LinetypeElement struct {
	Length float64
}

// Linetype is an LTYPE table entry.
type Linetype struct {
	tableEntryData

	// Description is the human readable pattern description.
	Description string

	// Pattern holds the dash/dot/gap lengths.
	Pattern []LinetypeElement
}

// NewLinetype creates a linetype with the given pattern.
func NewLinetype(name, description string, pattern ...float64) *Linetype {
	lt := &Linetype{
		tableEntryData: tableEntryData{name: name},
		Description:    description,
	}
	for _, l := range pattern {
		lt.Pattern = append(lt.Pattern, LinetypeElement{Length: l})
	}
	return lt
}

// DXFType implements the [Entity] interface.
func (e *Linetype) DXFType() string { return "LTYPE" }

func (e *Linetype) minVersion() Version { return R12 }

// PatternLength returns the total length of one pattern repetition.
func (e *Linetype) PatternLength() float64 {
	var sum float64
	for _, el := range e.Pattern {
		if el.Length >= 0 {
			sum += el.Length
		} else {
			sum -= el.Length
		}
	}
	return sum
}

func (e *Linetype) load(x *xtags) error {
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 3:
			e.Description = t.Text()
		case 49:
			e.Pattern = append(e.Pattern, LinetypeElement{Length: t.Float()})
		}
	}
	return nil
}

func (e *Linetype) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbLinetypeTableRecord")
	tw.str(3, e.Description)
	tw.intTag(72, 65) // alignment code, always 'A'
	tw.intTag(73, len(e.Pattern))
	tw.real(40, e.PatternLength())
	for _, el := range e.Pattern {
		tw.real(49, el.Length)
		if tw.version >= R13 {
			tw.intTag(74, 0)
		}
	}
}

// TextStyle is a STYLE table entry.
type TextStyle struct {
	tableEntryData

	// FixedHeight is the text height, or 0 for variable height.
	FixedHeight float64

	// WidthFactor stretches or compresses the glyphs, default 1.
	WidthFactor float64

	// Oblique is the slant angle in degrees.
	Oblique float64

	// Font is the primary font file name.
	Font string

	// BigFont is the asian big font file name, usually empty.
	BigFont string

	// LastHeight is the height last used with this style.
	LastHeight float64

	// GenerationFlags holds the mirror flags (group code 71).
	GenerationFlags int
}

// NewTextStyle creates a text style using the given font file.
func NewTextStyle(name, font string) *TextStyle {
	return &TextStyle{
		tableEntryData: tableEntryData{name: name},
		WidthFactor:    1,
		Font:           font,
	}
}

// DXFType implements the [Entity] interface.
func (e *TextStyle) DXFType() string { return "STYLE" }

func (e *TextStyle) minVersion() Version { return R12 }

func (e *TextStyle) load(x *xtags) error {
	e.WidthFactor = 1
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 40:
			e.FixedHeight = t.Float()
		case 41:
			e.WidthFactor = t.Float()
		case 50:
			e.Oblique = t.Float()
		case 71:
			e.GenerationFlags = t.Int()
		case 42:
			e.LastHeight = t.Float()
		case 3:
			e.Font = t.Text()
		case 4:
			e.BigFont = t.Text()
		}
	}
	return nil
}

func (e *TextStyle) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbTextStyleTableRecord")
	tw.real(40, e.FixedHeight)
	tw.real(41, e.WidthFactor)
	tw.real(50, e.Oblique)
	tw.intTag(71, e.GenerationFlags)
	tw.real(42, e.LastHeight)
	tw.str(3, e.Font)
	tw.str(4, e.BigFont)
}

// DimStyle is a DIMSTYLE table entry.  Only the attributes needed by
// the dimension renderer have a typed representation; everything else
// is preserved verbatim in Overrides.
type DimStyle struct {
	tableEntryData

	// TextHeight is the dimension text height ($DIMTXT).
	TextHeight float64

	// ArrowSize is the arrow head size ($DIMASZ).
	ArrowSize float64

	// ExtBeyond is the extension of the extension lines beyond the
	// dimension line ($DIMEXE).
	ExtBeyond float64

	// TextStyle names the STYLE entry used for dimension text.
	// Supported for R2000 and later (group code 340 references the
	// style by handle; the name form uses group code 7 in legacy
	// files).
	TextStyle string

	// Overrides preserves all dimension variables without a typed
	// field.
	Overrides Tags
}

// NewDimStyle creates a dimension style with AutoCAD's imperial
// defaults.
func NewDimStyle(name string) *DimStyle {
	return &DimStyle{
		tableEntryData: tableEntryData{name: name},
		TextHeight:     0.18,
		ArrowSize:      0.18,
		ExtBeyond:      0.18,
		TextStyle:      "Standard",
	}
}

// DXFType implements the [Entity] interface.
func (e *DimStyle) DXFType() string { return "DIMSTYLE" }

func (e *DimStyle) minVersion() Version { return R12 }

func (e *DimStyle) load(x *xtags) error {
	e.TextHeight = 0.18
	e.ArrowSize = 0.18
	e.ExtBeyond = 0.18
	e.TextStyle = "Standard"
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 140:
			e.TextHeight = t.Float()
		case 41:
			e.ArrowSize = t.Float()
		case 44:
			e.ExtBeyond = t.Float()
		case 7:
			e.TextStyle = t.Text()
		default:
			e.Overrides = append(e.Overrides, t)
		}
	}
	return nil
}

func (e *DimStyle) export(tw *tagWriter) {
	tw.subclass("AcDbSymbolTableRecord")
	tw.subclass("AcDbDimStyleTableRecord")
	tw.str(codeName, e.name)
	tw.intTag(70, e.Flags)
	tw.real(140, e.TextHeight)
	tw.real(41, e.ArrowSize)
	tw.real(44, e.ExtBeyond)
	if tw.version < R2000 {
		tw.str(7, e.TextStyle)
	}
	for _, t := range e.Overrides {
		tw.tag(t)
	}
}

// AppID is an APPID table entry, registering an application name for
// use in XDATA.
type AppID struct {
	tableEntryData
}

// NewAppID registers an application name.
func NewAppID(name string) *AppID {
	return &AppID{tableEntryData: tableEntryData{name: name}}
}

// DXFType implements the [Entity] interface.
func (e *AppID) DXFType() string { return "APPID" }

func (e *AppID) minVersion() Version { return R12 }

func (e *AppID) load(x *xtags) error {
	for _, t := range x.flat() {
		e.tableEntryData.readTag(t)
	}
	return nil
}

func (e *AppID) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbRegAppTableRecord")
}

// VPort is a VPORT table entry describing a modelspace viewport
// configuration.
type VPort struct {
	tableEntryData

	LowerLeft   Point
	UpperRight  Point
	Center      Point
	Height      float64
	AspectRatio float64
}

// NewVPort creates a viewport configuration.
func NewVPort(name string) *VPort {
	return &VPort{
		tableEntryData: tableEntryData{name: name},
		UpperRight:     Point{X: 1, Y: 1, Flat: true},
		Height:         1,
		AspectRatio:    1,
	}
}

// DXFType implements the [Entity] interface.
func (e *VPort) DXFType() string { return "VPORT" }

func (e *VPort) minVersion() Version { return R12 }

func (e *VPort) load(x *xtags) error {
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.LowerLeft = t.Point()
		case 11:
			e.UpperRight = t.Point()
		case 12:
			e.Center = t.Point()
		case 40:
			e.Height = t.Float()
		case 41:
			e.AspectRatio = t.Float()
		}
	}
	return nil
}

func (e *VPort) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbViewportTableRecord")
	tw.point(10, e.LowerLeft)
	tw.point(11, e.UpperRight)
	tw.point(12, e.Center)
	tw.real(40, e.Height)
	tw.real(41, e.AspectRatio)
}

// UCS is a UCS table entry, a named user coordinate system.
type UCS struct {
	tableEntryData

	Origin Point
	XAxis  Point
	YAxis  Point
}

// NewUCS creates a user coordinate system aligned with the world axes.
func NewUCS(name string) *UCS {
	return &UCS{
		tableEntryData: tableEntryData{name: name},
		XAxis:          Point{X: 1},
		YAxis:          Point{Y: 1},
	}
}

// DXFType implements the [Entity] interface.
func (e *UCS) DXFType() string { return "UCS" }

func (e *UCS) minVersion() Version { return R12 }

func (e *UCS) load(x *xtags) error {
	e.XAxis = Point{X: 1}
	e.YAxis = Point{Y: 1}
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Origin = t.Point()
		case 11:
			e.XAxis = t.Point()
		case 12:
			e.YAxis = t.Point()
		}
	}
	return nil
}

func (e *UCS) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbUCSTableRecord")
	tw.point(10, e.Origin)
	tw.point(11, e.XAxis)
	tw.point(12, e.YAxis)
}

// View is a VIEW table entry, a named view of the drawing.
type View struct {
	tableEntryData

	Center    Point
	Height    float64
	Width     float64
	Direction Point
	Target    Point
}

// NewView creates a named view.
func NewView(name string) *View {
	return &View{
		tableEntryData: tableEntryData{name: name},
		Height:         1,
		Width:          1,
		Direction:      Point{Z: 1},
	}
}

// DXFType implements the [Entity] interface.
func (e *View) DXFType() string { return "VIEW" }

func (e *View) minVersion() Version { return R12 }

func (e *View) load(x *xtags) error {
	e.Direction = Point{Z: 1}
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 10:
			e.Center = t.Point()
		case 40:
			e.Height = t.Float()
		case 41:
			e.Width = t.Float()
		case 11:
			e.Direction = t.Point()
		case 12:
			e.Target = t.Point()
		}
	}
	return nil
}

func (e *View) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbViewTableRecord")
	tw.real(40, e.Height)
	tw.point(10, e.Center)
	tw.real(41, e.Width)
	tw.point(11, e.Direction)
	tw.point(12, e.Target)
}

// BlockRecord is a BLOCK_RECORD table entry.  Block records link block
// names to the handle space and own the entities of their block or
// layout; they were introduced with R13 and are synthesized when older
// files are loaded.
type BlockRecord struct {
	tableEntryData

	// LayoutHandle points to the LAYOUT object for modelspace and
	// paperspace records.
	LayoutHandle Handle

	// Units is the block insertion units (group code 70 of the
	// AcDbBlockTableRecord subclass in R2007+, group code 281 before).
	Units int

	// Explodable and Scalability are R2007+ block behaviour flags.
	Explodable bool
	Scalable   bool
}

// NewBlockRecord creates a block record.
func NewBlockRecord(name string) *BlockRecord {
	return &BlockRecord{
		tableEntryData: tableEntryData{name: name},
		Explodable:     true,
	}
}

// DXFType implements the [Entity] interface.
func (e *BlockRecord) DXFType() string { return "BLOCK_RECORD" }

func (e *BlockRecord) minVersion() Version { return R13 }

func (e *BlockRecord) load(x *xtags) error {
	e.Explodable = true
	for _, t := range x.flat() {
		if e.tableEntryData.readTag(t) {
			continue
		}
		switch t.Code {
		case 340:
			e.LayoutHandle = t.Handle()
		case 281:
			e.Explodable = t.Int() != 0
		case 280:
			e.Scalable = t.Int() != 0
		}
	}
	return nil
}

func (e *BlockRecord) export(tw *tagWriter) {
	e.tableEntryData.export(tw, "AcDbBlockTableRecord")
	if e.LayoutHandle != 0 {
		tw.handle(340, e.LayoutHandle)
	}
	if tw.version >= R2007 {
		tw.intTag(280, boolInt(e.Scalable))
		tw.intTag(281, boolInt(e.Explodable))
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
