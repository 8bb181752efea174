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

// Setup adds the standard set of linetypes and text styles to a
// document.  [New] only creates the resources a valid file cannot do
// without; Setup installs the set interactive editors expect, the way
// AutoCAD's template drawings do.  Resources already present keep
// their definitions.
func Setup(doc *Document) error {
	linetypes := []*Linetype{
		NewLinetype("Dashed", "Dashed __ __ __ __ __ __", 0.6, -0.2),
		NewLinetype("Dashed2", "Dashed (.5x) _ _ _ _ _ _", 0.3, -0.1),
		NewLinetype("Dot", "Dot . . . . . . . . . . .", 0.0, -0.2),
		NewLinetype("Dot2", "Dot (.5x) . . . . . . . .", 0.0, -0.1),
		NewLinetype("DashDot", "Dash dot __ . __ . __ .", 0.5, -0.25, 0.0, -0.25),
		NewLinetype("Center", "Center ____ _ ____ _ ___", 1.25, -0.25, 0.25, -0.25),
		NewLinetype("Hidden", "Hidden __ __ __ __ __ __", 0.25, -0.125),
		NewLinetype("Phantom", "Phantom ____ _ _ ____", 1.25, -0.25, 0.25, -0.25, 0.25, -0.25),
	}
	for _, lt := range linetypes {
		if doc.Tables.Linetypes.Has(lt.Name()) {
			continue
		}
		if err := doc.Tables.Linetypes.Add(lt); err != nil {
			return err
		}
	}

	styles := []*TextStyle{
		NewTextStyle("OpenSans", "OpenSans-Regular.ttf"),
		NewTextStyle("LiberationMono", "LiberationMono-Regular.ttf"),
	}
	for _, st := range styles {
		if doc.Tables.TextStyles.Has(st.Name()) {
			continue
		}
		if err := doc.Tables.TextStyles.Add(st); err != nil {
			return err
		}
	}

	return nil
}
