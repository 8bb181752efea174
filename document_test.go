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
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"ByBlock", "ByLayer", "Continuous"} {
		if !doc.Tables.Linetypes.Has(name) {
			t.Errorf("missing linetype %q", name)
		}
	}
	if !doc.Tables.Layers.Has("0") {
		t.Error("missing layer 0")
	}
	if !doc.Tables.TextStyles.Has("Standard") {
		t.Error("missing text style Standard")
	}
	if doc.Modelspace() == nil {
		t.Fatal("missing modelspace")
	}
	if doc.Paperspace() == nil {
		t.Fatal("missing paperspace")
	}
	if doc.Modelspace() == doc.Paperspace() {
		t.Error("modelspace and paperspace are the same layout")
	}
}

func TestHandleUniqueness(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()

	seen := make(map[Handle]bool)
	doc.db.all(func(e Entity) {
		if e.Handle() == 0 {
			t.Errorf("%s has no handle", e.DXFType())
		}
		if seen[e.Handle()] {
			t.Errorf("handle %s used twice", e.Handle())
		}
		seen[e.Handle()] = true
	})

	line := NewLine(Point{}, Point{X: 1})
	if err := ms.Append(line); err != nil {
		t.Fatal(err)
	}
	if line.Handle() == 0 || seen[line.Handle()] {
		t.Errorf("bad handle %s for new entity", line.Handle())
	}

	// a handle must never be reused, even after a delete
	h := line.Handle()
	doc.Delete(line)
	circle := NewCircle(Point{}, 1)
	if err := ms.Append(circle); err != nil {
		t.Fatal(err)
	}
	if circle.Handle() <= h {
		t.Errorf("handle %s reissued after delete", circle.Handle())
	}
}

func TestDuplicateHandle(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	a := NewLine(Point{}, Point{X: 1})
	if err := doc.Modelspace().Append(a); err != nil {
		t.Fatal(err)
	}

	b := NewLine(Point{}, Point{X: 2})
	b.setHandle(a.Handle())
	err = doc.db.Insert(b)
	var dup *DuplicateHandleError
	if !errors.As(err, &dup) || dup.Handle != a.Handle() {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()
	line := NewLine(Point{}, Point{X: 1})
	if err := ms.Append(line); err != nil {
		t.Fatal(err)
	}

	n := ms.Len()
	doc.Delete(line)
	if ms.Len() != n-1 {
		t.Errorf("modelspace has %d entities, want %d", ms.Len(), n-1)
	}
	if doc.Entity(line.Handle()) != nil {
		t.Error("deleted entity still registered")
	}

	doc.Delete(line) // no-op
	if ms.Len() != n-1 {
		t.Error("second delete changed the document")
	}
}

func TestDeleteScrubsReferences(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()

	target := NewCircle(Point{}, 1)
	if err := ms.Append(target); err != nil {
		t.Fatal(err)
	}
	watcher := NewLine(Point{}, Point{X: 1})
	if err := ms.Append(watcher); err != nil {
		t.Fatal(err)
	}
	watcher.Reactors = append(watcher.Reactors, target.Handle())

	xr := NewXRecord()
	if err := doc.AddObject(doc.RootDictionary().Handle(), xr); err != nil {
		t.Fatal(err)
	}
	doc.RootDictionary().Put("TEST_ENTRY", target.Handle())

	doc.Delete(target)

	if len(watcher.Reactors) != 0 {
		t.Error("reactor list still references the deleted entity")
	}
	if _, ok := doc.RootDictionary().Get("TEST_ENTRY"); ok {
		t.Error("dictionary entry still references the deleted entity")
	}
	if _, err := doc.ResolvePointer(target.Handle()); err == nil {
		t.Error("deleted handle still resolves")
	}
}

func TestDeleteRemovesSubEntities(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()

	pl := NewPolyline()
	if err := ms.Append(pl); err != nil {
		t.Fatal(err)
	}
	v1 := pl.AppendVertex(Point{})
	v2 := pl.AppendVertex(Point{X: 1})
	for _, v := range []*Vertex{v1, v2} {
		if err := doc.addEntity(v); err != nil {
			t.Fatal(err)
		}
	}

	doc.Delete(pl)
	if doc.Entity(v1.Handle()) != nil || doc.Entity(v2.Handle()) != nil {
		t.Error("vertices survived deleting their polyline")
	}
}

func TestResolvePointer(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	line := NewLine(Point{}, Point{X: 1})
	if err := doc.Modelspace().Append(line); err != nil {
		t.Fatal(err)
	}

	e, err := doc.ResolvePointer(line.Handle())
	if err != nil || e != Entity(line) {
		t.Errorf("ResolvePointer: got %v, %v", e, err)
	}

	var dangling *DanglingPointerError
	if _, err := doc.ResolvePointer(0); !errors.As(err, &dangling) {
		t.Errorf("zero handle: unexpected error %v", err)
	}
	if _, err := doc.ResolvePointer(Handle(0xFFFFF)); !errors.As(err, &dangling) {
		t.Errorf("unknown handle: unexpected error %v", err)
	}
}

func TestBlocks(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}

	block, err := doc.Blocks.New("Door")
	if err != nil {
		t.Fatal(err)
	}
	if err := block.Append(NewLine(Point{}, Point{X: 1})); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Blocks.New("door"); err == nil {
		t.Error("case-insensitive duplicate block name accepted")
	}

	ins := NewInsert("Door", Point{X: 5, Y: 5, Flat: true})
	if err := doc.Modelspace().Append(ins); err != nil {
		t.Fatal(err)
	}
	if err := doc.Blocks.Delete("Door"); err == nil {
		t.Error("deleting a referenced block succeeded")
	}

	doc.Delete(ins)
	if err := doc.Blocks.Delete("Door"); err != nil {
		t.Errorf("deleting an unreferenced block failed: %v", err)
	}
	if doc.Blocks.Get("Door") != nil {
		t.Error("block still present after delete")
	}

	if err := doc.Blocks.Delete("*Model_Space"); err == nil {
		t.Error("deleting modelspace succeeded")
	}
}

func TestDimensionBuilder(t *testing.T) {
	doc, err := New(R2018)
	if err != nil {
		t.Fatal(err)
	}
	ms := doc.Modelspace()

	dim := NewAlignedDimension(Point{Flat: true}, Point{X: 10, Flat: true}, 2)
	b := doc.NewDimensionBuilder(ms, dim)
	b.Overrides["DIMTXT"] = 0.25

	got, err := b.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got.GeometryBlock == "" {
		t.Fatal("no geometry block assigned")
	}
	block := doc.Blocks.Get(got.GeometryBlock)
	if block == nil {
		t.Fatal("geometry block not registered")
	}
	if block.Len() == 0 {
		t.Error("geometry block is empty")
	}
	if m := got.Measurement(); m != 10 {
		t.Errorf("measurement %g, want 10", m)
	}

	if _, err := b.Render(); err == nil {
		t.Error("second Render succeeded")
	}
}
