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
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// entityDB is the handle index of a document.  Every entity and object
// with a handle is registered here exactly once.  Reads may happen
// concurrently; all mutation goes through the document which holds the
// write side.
type entityDB struct {
	mu         sync.RWMutex
	entities   map[Handle]Entity
	lastHandle Handle
}

func newEntityDB() *entityDB {
	return &entityDB{entities: make(map[Handle]Entity)}
}

// Len returns the number of registered entities.
func (db *entityDB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.entities)
}

// Get returns the entity with the given handle, or nil.
func (db *entityDB) Get(h Handle) Entity {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.entities[h]
}

// Insert registers an entity under its handle.  Inserting a second
// entity with the same handle fails with [DuplicateHandleError];
// re-inserting the same entity is a no-op.
func (db *entityDB) Insert(e Entity) error {
	h := e.Handle()
	db.mu.Lock()
	defer db.mu.Unlock()
	if prev, ok := db.entities[h]; ok {
		if prev == e {
			return nil
		}
		return &DuplicateHandleError{Handle: h}
	}
	db.entities[h] = e
	if h > db.lastHandle {
		db.lastHandle = h
	}
	return nil
}

// Delete removes the entity with the given handle.  The handle is not
// reused; deleting a missing handle is a no-op.
func (db *entityDB) Delete(h Handle) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.entities, h)
}

// NextHandle returns a fresh, never used handle.
func (db *entityDB) NextHandle() Handle {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.lastHandle++
	return db.lastHandle
}

// reserve makes sure NextHandle never returns a value at or below h.
func (db *entityDB) reserve(h Handle) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if h > db.lastHandle {
		db.lastHandle = h
	}
}

// seed returns the next handle that would be issued, without issuing
// it.  This is the value written to $HANDSEED.
func (db *entityDB) seed() Handle {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.lastHandle + 1
}

// all calls f for every registered entity, in increasing handle order.
func (db *entityDB) all(f func(Entity)) {
	db.mu.RLock()
	handles := maps.Keys(db.entities)
	db.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	for _, h := range handles {
		if e := db.Get(h); e != nil {
			f(e)
		}
	}
}
