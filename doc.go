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

// Package dxf implements reading and writing of DXF (Drawing eXchange
// Format) files.
//
// A DXF file is a stream of tagged values, organised into sections which
// hold header variables, resource tables, block definitions, entities and
// non-graphical objects.  This package parses such a stream into a typed
// [Document], allows the document to be inspected and modified, and writes
// it back out for a chosen DXF version.
//
// Use [Open] or [Read] to load a file in strict mode, where any defect in
// the input aborts the load.  Use [Recover] or [RecoverFile] to load
// damaged files on a best-effort basis; these return a [Report] listing
// every repair which was applied.
//
// All cross-references between entities use [Handle] values which are
// resolved through the document's entity database.  Entities are owned by
// exactly one entity space (the model space, a paper space, or a block
// definition) at any time.
package dxf
